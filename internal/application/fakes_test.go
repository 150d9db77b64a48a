package application

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/freshbasket/api/internal/domain/entity"
	repo "github.com/freshbasket/api/internal/domain/repository"
)

// In-memory repositories mirroring the postgres implementations, including
// the version compare-and-swap on aggregate saves.

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repo.ErrDuplicateEmail
		}
	}
	f.seq++
	u.ID = "user-" + strconv.Itoa(f.seq)
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

type fakeProductRepo struct {
	mu       sync.Mutex
	seq      int
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	p.ID = "prod-" + strconv.Itoa(f.seq)
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakeProductRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			cp := *p
			out[id] = &cp
		}
	}
	return out, nil
}

func (f *fakeProductRepo) List(_ context.Context) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[p.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

type fakeCartRepo struct {
	mu    sync.Mutex
	seq   int
	carts map[string]*entity.Cart // by user id
	// conflictsLeft forces the next N saves to fail with ErrVersionConflict.
	conflictsLeft int
	saveCalls     int
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*entity.Cart{}}
}

func (f *fakeCartRepo) GetByUser(_ context.Context, userID string) (*entity.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.carts[userID]; ok {
		cp := *c
		cp.Items = append([]entity.CartItem(nil), c.Items...)
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakeCartRepo) Save(_ context.Context, c *entity.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls++
	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		return repo.ErrVersionConflict
	}
	stored, exists := f.carts[c.UserID]
	if c.ID == "" {
		if exists {
			return repo.ErrVersionConflict
		}
		f.seq++
		c.ID = "cart-" + strconv.Itoa(f.seq)
		c.Version = 1
	} else {
		if !exists || stored.Version != c.Version {
			return repo.ErrVersionConflict
		}
		c.Version++
	}
	cp := *c
	cp.Items = append([]entity.CartItem(nil), c.Items...)
	f.carts[c.UserID] = &cp
	return nil
}

type fakeWishlistRepo struct {
	mu            sync.Mutex
	seq           int
	lists         map[string]*entity.Wishlist
	conflictsLeft int
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{lists: map[string]*entity.Wishlist{}}
}

func (f *fakeWishlistRepo) GetByUser(_ context.Context, userID string) (*entity.Wishlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.lists[userID]; ok {
		cp := *w
		cp.Items = append([]entity.WishlistItem(nil), w.Items...)
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakeWishlistRepo) Save(_ context.Context, w *entity.Wishlist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		return repo.ErrVersionConflict
	}
	stored, exists := f.lists[w.UserID]
	if w.ID == "" {
		if exists {
			return repo.ErrVersionConflict
		}
		f.seq++
		w.ID = "wl-" + strconv.Itoa(f.seq)
		w.Version = 1
	} else {
		if !exists || stored.Version != w.Version {
			return repo.ErrVersionConflict
		}
		w.Version++
	}
	cp := *w
	cp.Items = append([]entity.WishlistItem(nil), w.Items...)
	f.lists[w.UserID] = &cp
	return nil
}
