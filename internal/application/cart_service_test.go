package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshbasket/api/internal/domain/entity"
)

func newCartFixture(t *testing.T) (*CartService, *fakeCartRepo, *entity.Product) {
	t.Helper()
	products := newFakeProductRepo()
	p := &entity.Product{Name: "Organic Bananas", Price: 1.99, Category: "fruits", InStock: true}
	require.NoError(t, products.Create(context.Background(), p))
	carts := newFakeCartRepo()
	return NewCartService(carts, products, nil), carts, p
}

func TestSetQuantityUnknownProduct(t *testing.T) {
	svc, _, _ := newCartFixture(t)

	_, err := svc.SetQuantity(context.Background(), "user-1", "no-such-product", 2)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSetQuantityRemoveFromEmptyCartIsNoop(t *testing.T) {
	svc, carts, p := newCartFixture(t)

	res, err := svc.SetQuantity(context.Background(), "user-1", p.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Quantity)
	assert.Empty(t, res.CartID)
	// No aggregate should have been materialized for a pure removal.
	assert.Zero(t, carts.saveCalls)
}

func TestSetQuantityInsertAndOverwrite(t *testing.T) {
	svc, _, p := newCartFixture(t)
	ctx := context.Background()

	res, err := svc.SetQuantity(ctx, "user-1", p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Quantity)
	assert.NotEmpty(t, res.CartID)

	// Absolute set, not a delta.
	res, err = svc.SetQuantity(ctx, "user-1", p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Quantity)

	view, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, p.ID, view.Items[0].Product.ID)
	assert.Equal(t, 5, view.Items[0].Quantity)
}

func TestSetQuantityIdempotent(t *testing.T) {
	svc, carts, p := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.SetQuantity(ctx, "user-1", p.ID, 3)
	require.NoError(t, err)
	first := carts.carts["user-1"]
	firstItems := append([]entity.CartItem(nil), first.Items...)

	_, err = svc.SetQuantity(ctx, "user-1", p.ID, 3)
	require.NoError(t, err)
	second := carts.carts["user-1"]

	assert.Equal(t, firstItems, second.Items)
	assert.Equal(t, first.ID, second.ID)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	svc, _, p := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.SetQuantity(ctx, "user-1", p.ID, 4)
	require.NoError(t, err)

	res, err := svc.SetQuantity(ctx, "user-1", p.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Quantity)

	view, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	// Negative quantities behave like zero.
	_, err = svc.SetQuantity(ctx, "user-1", p.ID, 2)
	require.NoError(t, err)
	res, err = svc.SetQuantity(ctx, "user-1", p.ID, -7)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Quantity)
}

func TestCartLineUniqueness(t *testing.T) {
	svc, carts, p := newCartFixture(t)
	ctx := context.Background()

	p2 := &entity.Product{Name: "Fuji Apples", Price: 3.49, Category: "fruits", InStock: true}
	require.NoError(t, svc.Products.Create(ctx, p2))

	for _, qty := range []int{1, 3, 2, 9, 2} {
		_, err := svc.SetQuantity(ctx, "user-1", p.ID, qty)
		require.NoError(t, err)
		_, err = svc.SetQuantity(ctx, "user-1", p2.ID, qty)
		require.NoError(t, err)
	}

	stored := carts.carts["user-1"]
	seen := map[string]bool{}
	for _, it := range stored.Items {
		assert.False(t, seen[it.ProductID], "duplicate line for %s", it.ProductID)
		seen[it.ProductID] = true
		assert.GreaterOrEqual(t, it.Quantity, 1)
	}
	assert.Len(t, stored.Items, 2)
}

func TestSetQuantityRetriesOnVersionConflict(t *testing.T) {
	svc, carts, p := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.SetQuantity(ctx, "user-1", p.ID, 1)
	require.NoError(t, err)

	carts.conflictsLeft = 1
	res, err := svc.SetQuantity(ctx, "user-1", p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Quantity)
}

func TestSetQuantityGivesUpAfterRetries(t *testing.T) {
	svc, carts, p := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.SetQuantity(ctx, "user-1", p.ID, 1)
	require.NoError(t, err)

	carts.conflictsLeft = maxSaveRetries
	_, err = svc.SetQuantity(ctx, "user-1", p.ID, 2)
	assert.ErrorIs(t, err, errTooMuchContention)
}

func TestGetCartEmptyWhenAbsent(t *testing.T) {
	svc, _, _ := newCartFixture(t)

	view, err := svc.GetCart(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.NotNil(t, view.Items)
	assert.Empty(t, view.Items)
}

func TestGetCartFiltersDeletedProducts(t *testing.T) {
	svc, _, p := newCartFixture(t)
	ctx := context.Background()

	p2 := &entity.Product{Name: "Baby Spinach", Price: 2.79, Category: "vegetables", InStock: true}
	require.NoError(t, svc.Products.Create(ctx, p2))

	_, err := svc.SetQuantity(ctx, "user-1", p.ID, 1)
	require.NoError(t, err)
	_, err = svc.SetQuantity(ctx, "user-1", p2.ID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Products.Delete(ctx, p.ID))

	view, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, p2.ID, view.Items[0].Product.ID)
}

func TestGetCartReflectsLivePrice(t *testing.T) {
	svc, _, p := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.SetQuantity(ctx, "user-1", p.ID, 1)
	require.NoError(t, err)

	p.Price = 2.49
	require.NoError(t, svc.Products.Update(ctx, p))

	view, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2.49, view.Items[0].Product.Price)
}
