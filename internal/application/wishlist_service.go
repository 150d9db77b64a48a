package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/freshbasket/api/internal/domain/entity"
	repo "github.com/freshbasket/api/internal/domain/repository"
)

// Action labels returned by Toggle.
const (
	AddedToWishlist     = "Added to wishlist"
	RemovedFromWishlist = "Removed from wishlist"
)

// WishlistService owns the per-user wishlist aggregate. Structurally the
// cart's twin, with boolean membership instead of quantities.
type WishlistService struct {
	Wishlists repo.WishlistRepository
	Products  repo.ProductRepository
	Logger    *logrus.Logger
}

func NewWishlistService(wishlists repo.WishlistRepository, products repo.ProductRepository, logger *logrus.Logger) *WishlistService {
	return &WishlistService{Wishlists: wishlists, Products: products, Logger: logger}
}

// Toggle flips the product's membership in the owner's wishlist and returns
// the resulting resolved product list plus a human-readable action label.
// Calling it twice with the same product restores the original state.
func (s *WishlistService) Toggle(ctx context.Context, ownerID, productID string) ([]entity.Product, string, error) {
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrProductNotFound
		}
		return nil, "", err
	}

	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		wl, err := s.Wishlists.GetByUser(ctx, ownerID)
		if errors.Is(err, repo.ErrNotFound) {
			wl = &entity.Wishlist{UserID: ownerID}
		} else if err != nil {
			return nil, "", err
		}

		added := wl.Toggle(productID)
		if err := s.Wishlists.Save(ctx, wl); err != nil {
			if errors.Is(err, repo.ErrVersionConflict) {
				if s.Logger != nil {
					s.Logger.WithFields(logrus.Fields{"user_id": ownerID, "attempt": attempt + 1}).
						Debug("wishlist save conflict, retrying")
				}
				continue
			}
			return nil, "", err
		}

		products, err := s.resolve(ctx, wl)
		if err != nil {
			return nil, "", err
		}
		action := RemovedFromWishlist
		if added {
			action = AddedToWishlist
		}
		return products, action, nil
	}
	return nil, "", errTooMuchContention
}

// GetWishlist returns the resolved products for all current lines, or an
// empty slice if the aggregate was never created. Dangling references are
// filtered out.
func (s *WishlistService) GetWishlist(ctx context.Context, ownerID string) ([]entity.Product, error) {
	wl, err := s.Wishlists.GetByUser(ctx, ownerID)
	if errors.Is(err, repo.ErrNotFound) {
		return []entity.Product{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, wl)
}

func (s *WishlistService) resolve(ctx context.Context, wl *entity.Wishlist) ([]entity.Product, error) {
	ids := make([]string, 0, len(wl.Items))
	for _, it := range wl.Items {
		ids = append(ids, it.ProductID)
	}
	resolved, err := s.Products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(wl.Items))
	for _, it := range wl.Items {
		if p, ok := resolved[it.ProductID]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}
