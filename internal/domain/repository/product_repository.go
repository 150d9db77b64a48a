package repository

import (
	"context"

	"github.com/freshbasket/api/internal/domain/entity"
)

// ProductRepository defines catalog-store operations.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDs resolves a set of product ids; missing ids are simply absent
	// from the result, which is how dangling cart/wishlist references get
	// filtered at read time.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
}
