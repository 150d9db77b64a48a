package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freshbasket/api/internal/domain/entity"
	"github.com/freshbasket/api/internal/domain/repository"
)

// WishlistRepository mirrors CartRepository: one JSONB row per owner with a
// version column for conditional updates.
type WishlistRepository struct {
	pool *pgxpool.Pool
}

func NewWishlistRepository(pool *pgxpool.Pool) *WishlistRepository {
	return &WishlistRepository{pool: pool}
}

func (r *WishlistRepository) GetByUser(ctx context.Context, userID string) (*entity.Wishlist, error) {
	w := &entity.Wishlist{}
	var items []byte
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, items, version
		FROM wishlists
		WHERE user_id = $1
	`, userID)
	if err := row.Scan(&w.ID, &w.UserID, &items, &w.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(items, &w.Items); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *WishlistRepository) Save(ctx context.Context, w *entity.Wishlist) error {
	items, err := json.Marshal(itemsOrEmpty(w.Items))
	if err != nil {
		return err
	}
	if w.ID == "" {
		row := r.pool.QueryRow(ctx, `
			INSERT INTO wishlists (user_id, items)
			VALUES ($1, $2)
			ON CONFLICT (user_id) DO NOTHING
			RETURNING id, version
		`, w.UserID, items)
		if err := row.Scan(&w.ID, &w.Version); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return repository.ErrVersionConflict
			}
			return err
		}
		return nil
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE wishlists
		SET items = $1, version = version + 1, updated_at = now()
		WHERE id = $2 AND version = $3
		RETURNING version
	`, items, w.ID, w.Version)
	if err := row.Scan(&w.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrVersionConflict
		}
		return err
	}
	return nil
}

var _ repository.WishlistRepository = (*WishlistRepository)(nil)
