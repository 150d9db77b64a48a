package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshbasket/api/internal/application"
	"github.com/freshbasket/api/internal/domain/entity"
	repo "github.com/freshbasket/api/internal/domain/repository"
	"github.com/freshbasket/api/internal/interface/middleware"
	"github.com/freshbasket/api/pkg/helpers"
	"github.com/freshbasket/api/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	m.Run()
}

// In-memory repositories. Same contracts as the postgres implementations,
// minus the conflict injection the application-layer fakes have.

type memUserRepo struct {
	seq   int
	users map[string]*entity.User
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, e := range m.users {
		if strings.EqualFold(e.Email, u.Email) {
			return repo.ErrDuplicateEmail
		}
	}
	m.seq++
	u.ID = "user-" + strconv.Itoa(m.seq)
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

type memProductRepo struct {
	seq      int
	products map[string]*entity.Product
}

func (m *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	m.seq++
	p.ID = "prod-" + strconv.Itoa(m.seq)
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := m.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memProductRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			cp := *p
			out[id] = &cp
		}
	}
	return out, nil
}

func (m *memProductRepo) List(_ context.Context) ([]entity.Product, error) {
	out := make([]entity.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

type memCartRepo struct {
	seq   int
	carts map[string]*entity.Cart
}

func (m *memCartRepo) GetByUser(_ context.Context, userID string) (*entity.Cart, error) {
	if c, ok := m.carts[userID]; ok {
		cp := *c
		cp.Items = append([]entity.CartItem(nil), c.Items...)
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memCartRepo) Save(_ context.Context, c *entity.Cart) error {
	stored, exists := m.carts[c.UserID]
	if c.ID == "" {
		if exists {
			return repo.ErrVersionConflict
		}
		m.seq++
		c.ID = "cart-" + strconv.Itoa(m.seq)
		c.Version = 1
	} else {
		if !exists || stored.Version != c.Version {
			return repo.ErrVersionConflict
		}
		c.Version++
	}
	cp := *c
	cp.Items = append([]entity.CartItem(nil), c.Items...)
	m.carts[c.UserID] = &cp
	return nil
}

type memWishlistRepo struct {
	seq   int
	lists map[string]*entity.Wishlist
}

func (m *memWishlistRepo) GetByUser(_ context.Context, userID string) (*entity.Wishlist, error) {
	if w, ok := m.lists[userID]; ok {
		cp := *w
		cp.Items = append([]entity.WishlistItem(nil), w.Items...)
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memWishlistRepo) Save(_ context.Context, w *entity.Wishlist) error {
	stored, exists := m.lists[w.UserID]
	if w.ID == "" {
		if exists {
			return repo.ErrVersionConflict
		}
		m.seq++
		w.ID = "wl-" + strconv.Itoa(m.seq)
		w.Version = 1
	} else {
		if !exists || stored.Version != w.Version {
			return repo.ErrVersionConflict
		}
		w.Version++
	}
	cp := *w
	cp.Items = append([]entity.WishlistItem(nil), w.Items...)
	m.lists[w.UserID] = &cp
	return nil
}

type apiFixture struct {
	engine   *gin.Engine
	products *memProductRepo
}

// newAPIFixture wires the full HTTP surface against in-memory storage,
// mirroring the production route layout.
func newAPIFixture() *apiFixture {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := &memUserRepo{users: map[string]*entity.User{}}
	products := &memProductRepo{products: map[string]*entity.Product{}}
	carts := &memCartRepo{carts: map[string]*entity.Cart{}}
	wishlists := &memWishlistRepo{lists: map[string]*entity.Wishlist{}}

	jwt := helpers.NewJWTManager("scenario-secret", time.Hour)

	authSvc := application.NewAuthService(users, jwt, nil, logger, "admin@freshbasket.test")
	catalogSvc := application.NewCatalogService(products, nil, "", nil, "", logger)
	cartSvc := application.NewCartService(carts, products, logger)
	wishlistSvc := application.NewWishlistService(wishlists, products, logger)

	authH := NewAuthHandler(authSvc, logger)
	productH := NewProductHandler(catalogSvc, logger)
	cartH := NewCartHandler(cartSvc, logger)
	wishlistH := NewWishlistHandler(wishlistSvc, logger)

	authed := middleware.Auth(users, jwt)

	r := gin.New()
	r.POST("/signup", authH.Signup)
	r.POST("/login", authH.Login)
	r.GET("/profile", authed, authH.Profile)

	api := r.Group("/api")
	api.GET("/products", productH.List)
	api.GET("/products/search", productH.Search)
	api.GET("/products/:id", productH.Get)

	vendor := api.Group("/products", authed, middleware.RequireRoles(entity.RoleVendor, entity.RoleAdmin))
	vendor.POST("", productH.Create)
	vendor.PUT("/:id", productH.Update)

	admin := api.Group("/products", authed, middleware.RequireRoles(entity.RoleAdmin))
	admin.DELETE("/:id", productH.Delete)

	cart := api.Group("/cart", authed)
	cart.GET("", cartH.Get)
	cart.POST("", cartH.SetQuantity)

	wishlist := api.Group("/wishlist", authed)
	wishlist.GET("", wishlistH.Get)
	wishlist.POST("", wishlistH.Toggle)

	return &apiFixture{engine: r, products: products}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, payload any) (int, map[string]any) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w.Code, parsed
}

func (f *apiFixture) seedProduct(t *testing.T, name string, price float64) string {
	t.Helper()
	p := &entity.Product{Name: name, Price: price, Category: "fruits", InStock: true}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p.ID
}

func TestCustomerJourney(t *testing.T) {
	f := newAPIFixture()
	p1 := f.seedProduct(t, "Organic Bananas", 1.99)

	// Signup issues a token and assigns the customer role.
	code, body := f.do(t, http.MethodPost, "/signup", "", gin.H{
		"name": "Alice", "email": "alice@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, entity.RoleCustomer, user["role"])
	assert.NotContains(t, user, "password")

	// Login returns a fresh token.
	code, body = f.do(t, http.MethodPost, "/login", "", gin.H{
		"email": "alice@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, code)
	token := body["token"].(string)
	require.NotEmpty(t, token)

	// Set a cart line, read it back.
	code, body = f.do(t, http.MethodPost, "/api/cart", token, gin.H{
		"productId": p1, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, body["quantity"])

	code, body = f.do(t, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, code)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	line := items[0].(map[string]any)
	assert.EqualValues(t, 2, line["quantity"])
	assert.Equal(t, p1, line["product"].(map[string]any)["id"])

	// Quantity zero clears the line.
	code, _ = f.do(t, http.MethodPost, "/api/cart", token, gin.H{
		"productId": p1, "quantity": 0,
	})
	require.Equal(t, http.StatusOK, code)

	code, body = f.do(t, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["items"])

	// Toggling a wishlist entry twice lands back on empty.
	code, body = f.do(t, http.MethodPost, "/api/wishlist", token, gin.H{"productId": p1})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, application.AddedToWishlist, body["message"])
	assert.Len(t, body["items"], 1)

	code, body = f.do(t, http.MethodPost, "/api/wishlist", token, gin.H{"productId": p1})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, application.RemovedFromWishlist, body["message"])
	assert.Empty(t, body["items"])
}

func TestSignupValidationAndDuplicates(t *testing.T) {
	f := newAPIFixture()

	code, body := f.do(t, http.MethodPost, "/signup", "", gin.H{
		"name": "Alice", "email": "not-an-email", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])

	code, _ = f.do(t, http.MethodPost, "/signup", "", gin.H{
		"name": "Alice", "email": "alice@x.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = f.do(t, http.MethodPost, "/signup", "", gin.H{
		"name": "Alice", "email": "alice@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, code)

	code, body = f.do(t, http.MethodPost, "/signup", "", gin.H{
		"name": "Mallory", "email": "Alice@X.com", "password": "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email already registered", body["message"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newAPIFixture()

	code, _ := f.do(t, http.MethodPost, "/signup", "", gin.H{
		"name": "Alice", "email": "alice@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, code)

	code, body := f.do(t, http.MethodPost, "/login", "", gin.H{
		"email": "alice@x.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", body["message"])

	code, body = f.do(t, http.MethodPost, "/login", "", gin.H{
		"email": "nobody@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", body["message"])
}

func TestOwnerScopedRoutesRequireAuth(t *testing.T) {
	f := newAPIFixture()
	p1 := f.seedProduct(t, "Fuji Apples", 3.49)

	for _, tc := range []struct {
		method, path string
		payload      any
	}{
		{http.MethodGet, "/api/cart", nil},
		{http.MethodPost, "/api/cart", gin.H{"productId": p1, "quantity": 1}},
		{http.MethodGet, "/api/wishlist", nil},
		{http.MethodPost, "/api/wishlist", gin.H{"productId": p1}},
		{http.MethodGet, "/profile", nil},
	} {
		code, body := f.do(t, tc.method, tc.path, "", tc.payload)
		assert.Equal(t, http.StatusUnauthorized, code, "%s %s", tc.method, tc.path)
		assert.Equal(t, "authentication required", body["message"])
	}
}

func TestCartsAreIsolatedPerOwner(t *testing.T) {
	f := newAPIFixture()
	p1 := f.seedProduct(t, "Baby Spinach", 2.79)

	tokens := map[string]string{}
	for _, email := range []string{"alice@x.com", "bob@x.com"} {
		code, body := f.do(t, http.MethodPost, "/signup", "", gin.H{
			"name": "User", "email": email, "password": "secret1",
		})
		require.Equal(t, http.StatusCreated, code)
		tokens[email] = body["token"].(string)
	}

	code, _ := f.do(t, http.MethodPost, "/api/cart", tokens["alice@x.com"], gin.H{
		"productId": p1, "quantity": 3,
	})
	require.Equal(t, http.StatusOK, code)

	code, body := f.do(t, http.MethodGet, "/api/cart", tokens["bob@x.com"], nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["items"])
}

func TestProductWritesAreRoleGated(t *testing.T) {
	f := newAPIFixture()

	code, body := f.do(t, http.MethodPost, "/signup", "", gin.H{
		"name": "Alice", "email": "alice@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, code)
	customerToken := body["token"].(string)

	// The reserved email signs up straight into the admin role.
	code, body = f.do(t, http.MethodPost, "/signup", "", gin.H{
		"name": "Root", "email": "admin@freshbasket.test", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, code)
	adminToken := body["token"].(string)

	newProduct := gin.H{"name": "Cheddar", "price": 5.5, "category": "dairy"}

	code, body = f.do(t, http.MethodPost, "/api/products", customerToken, newProduct)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "insufficient permissions", body["message"])

	code, body = f.do(t, http.MethodPost, "/api/products", adminToken, newProduct)
	require.Equal(t, http.StatusCreated, code)
	created := body["product"].(map[string]any)
	productID := created["id"].(string)

	// Catalog reads stay public.
	code, body = f.do(t, http.MethodGet, "/api/products/"+productID, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Cheddar", body["product"].(map[string]any)["name"])

	code, _ = f.do(t, http.MethodDelete, "/api/products/"+productID, customerToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = f.do(t, http.MethodDelete, "/api/products/"+productID, adminToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = f.do(t, http.MethodGet, "/api/products/"+productID, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCartRejectsUnknownProduct(t *testing.T) {
	f := newAPIFixture()

	code, body := f.do(t, http.MethodPost, "/signup", "", gin.H{
		"name": "Alice", "email": "alice@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, code)
	token := body["token"].(string)

	code, body = f.do(t, http.MethodPost, "/api/cart", token, gin.H{
		"productId": "no-such-product", "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Product not found", body["message"])
}
