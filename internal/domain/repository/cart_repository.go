package repository

import (
	"context"

	"github.com/freshbasket/api/internal/domain/entity"
)

// CartRepository stores one cart aggregate per owner.
type CartRepository interface {
	// GetByUser returns the owner's cart or ErrNotFound if none was
	// materialized yet.
	GetByUser(ctx context.Context, userID string) (*entity.Cart, error)
	// Save persists the whole aggregate. A cart with no ID is inserted; an
	// existing cart is updated only if its Version still matches the stored
	// row. On success the cart's ID and Version are refreshed in place.
	// Returns ErrVersionConflict when a concurrent writer got there first.
	Save(ctx context.Context, c *entity.Cart) error
}

// WishlistRepository stores one wishlist aggregate per owner, with the same
// save contract as CartRepository.
type WishlistRepository interface {
	GetByUser(ctx context.Context, userID string) (*entity.Wishlist, error)
	Save(ctx context.Context, w *entity.Wishlist) error
}
