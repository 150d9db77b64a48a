package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/freshbasket/api/internal/domain/entity"
	repo "github.com/freshbasket/api/internal/domain/repository"
)

// maxSaveRetries bounds the load-mutate-persist retry loop on aggregate
// version conflicts.
const maxSaveRetries = 3

var errTooMuchContention = errors.New("aggregate contention, retries exhausted")

// CartService owns the per-user cart aggregate.
type CartService struct {
	Carts    repo.CartRepository
	Products repo.ProductRepository
	Logger   *logrus.Logger
}

func NewCartService(carts repo.CartRepository, products repo.ProductRepository, logger *logrus.Logger) *CartService {
	return &CartService{Carts: carts, Products: products, Logger: logger}
}

// SetQuantityResult reports the post-operation state for the product.
type SetQuantityResult struct {
	CartID    string `json:"cartId,omitempty"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// ResolvedCartItem is a cart line joined against the live catalog.
type ResolvedCartItem struct {
	Product  *entity.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// CartView is the read model returned to clients.
type CartView struct {
	ID    string             `json:"id,omitempty"`
	Items []ResolvedCartItem `json:"items"`
}

// SetQuantity applies an absolute quantity for a product in the owner's
// cart: qty <= 0 removes the line, otherwise it is inserted or overwritten.
// The whole aggregate is persisted through a version compare-and-swap;
// losing the swap reloads and reapplies, so concurrent writers serialize per
// owner instead of silently dropping updates. Idempotent.
func (s *CartService) SetQuantity(ctx context.Context, ownerID, productID string, qty int) (*SetQuantityResult, error) {
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		cart, err := s.Carts.GetByUser(ctx, ownerID)
		if errors.Is(err, repo.ErrNotFound) {
			cart = &entity.Cart{UserID: ownerID}
		} else if err != nil {
			return nil, err
		}

		// Removing from a cart that was never materialized is a no-op;
		// don't create an empty aggregate just to record it.
		if cart.ID == "" && qty <= 0 {
			return &SetQuantityResult{ProductID: productID, Quantity: 0}, nil
		}

		result := cart.SetQuantity(productID, qty)
		if err := s.Carts.Save(ctx, cart); err != nil {
			if errors.Is(err, repo.ErrVersionConflict) {
				if s.Logger != nil {
					s.Logger.WithFields(logrus.Fields{"user_id": ownerID, "attempt": attempt + 1}).
						Debug("cart save conflict, retrying")
				}
				continue
			}
			return nil, err
		}
		return &SetQuantityResult{CartID: cart.ID, ProductID: productID, Quantity: result}, nil
	}
	return nil, errTooMuchContention
}

// GetCart returns the owner's cart with every line resolved to its live
// product snapshot. Lines whose product has been deleted are filtered out.
// A missing aggregate reads as an empty cart.
func (s *CartService) GetCart(ctx context.Context, ownerID string) (*CartView, error) {
	cart, err := s.Carts.GetByUser(ctx, ownerID)
	if errors.Is(err, repo.ErrNotFound) {
		return &CartView{Items: []ResolvedCartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(cart.Items))
	for _, it := range cart.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.Products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	view := &CartView{ID: cart.ID, Items: make([]ResolvedCartItem, 0, len(cart.Items))}
	for _, it := range cart.Items {
		p, ok := products[it.ProductID]
		if !ok {
			continue
		}
		view.Items = append(view.Items, ResolvedCartItem{Product: p, Quantity: it.Quantity})
	}
	return view, nil
}
