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

// CartRepository keeps one row per owner: the item list lives in a JSONB
// column and a version column arbitrates concurrent saves.
type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) GetByUser(ctx context.Context, userID string) (*entity.Cart, error) {
	c := &entity.Cart{}
	var items []byte
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, items, version
		FROM carts
		WHERE user_id = $1
	`, userID)
	if err := row.Scan(&c.ID, &c.UserID, &items, &c.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(items, &c.Items); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CartRepository) Save(ctx context.Context, c *entity.Cart) error {
	items, err := json.Marshal(itemsOrEmpty(c.Items))
	if err != nil {
		return err
	}
	if c.ID == "" {
		// First materialization. The unique user_id index turns a racing
		// insert into a conflict the service can retry on.
		row := r.pool.QueryRow(ctx, `
			INSERT INTO carts (user_id, items)
			VALUES ($1, $2)
			ON CONFLICT (user_id) DO NOTHING
			RETURNING id, version
		`, c.UserID, items)
		if err := row.Scan(&c.ID, &c.Version); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return repository.ErrVersionConflict
			}
			return err
		}
		return nil
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE carts
		SET items = $1, version = version + 1, updated_at = now()
		WHERE id = $2 AND version = $3
		RETURNING version
	`, items, c.ID, c.Version)
	if err := row.Scan(&c.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrVersionConflict
		}
		return err
	}
	return nil
}

func itemsOrEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

var _ repository.CartRepository = (*CartRepository)(nil)
