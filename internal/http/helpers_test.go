package http

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Sushanthnayak-eng/FashionCart/internal/cart"
	"github.com/Sushanthnayak-eng/FashionCart/internal/catalog"
	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
	"github.com/Sushanthnayak-eng/FashionCart/internal/order"
)

// --- in-memory backends for handler tests ---

type productStore struct {
	mu       sync.Mutex
	products map[string]domain.Product
}

func newProductStore(products ...domain.Product) *productStore {
	s := &productStore{products: make(map[string]domain.Product)}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *productStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *productStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return &p, nil
}

func (s *productStore) CreateProduct(ctx context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = *p
	return nil
}

func (s *productStore) UpdateProduct(ctx context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return catalog.ErrProductNotFound
	}
	s.products[p.ID] = *p
	return nil
}

func (s *productStore) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return catalog.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *productStore) RunMigrations(migrationsPath string) error { return nil }
func (s *productStore) Close() error                              { return nil }

type cartStore struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func newCartStore() *cartStore {
	return &cartStore{carts: make(map[string]*domain.Cart)}
}

func (s *cartStore) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	return cloneCart(c), nil
}

func (s *cartStore) UpsertCart(ctx context.Context, c *domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[c.UserID] = cloneCart(c)
	return nil
}

func cloneCart(c *domain.Cart) *domain.Cart {
	clone := *c
	clone.Lines = c.Snapshot()
	return &clone
}

func (s *cartStore) DeleteCart(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[userID]; !ok {
		return cart.ErrCartNotFound
	}
	delete(s.carts, userID)
	return nil
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	return nil, cart.ErrCacheMiss
}
func (noopCache) Set(ctx context.Context, userID string, c *domain.Cart) error { return nil }
func (noopCache) Delete(ctx context.Context, userID string) error              { return nil }

type orderStore struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*domain.Order
	byKey  map[string]uuid.UUID
}

func newOrderStore() *orderStore {
	return &orderStore{
		orders: make(map[uuid.UUID]*domain.Order),
		byKey:  make(map[string]uuid.UUID),
	}
}

func (s *orderStore) CreateOrder(ctx context.Context, o *domain.Order, idempotencyKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *o
	s.orders[o.ID] = &clone
	if idempotencyKey != "" {
		s.byKey[idempotencyKey] = o.ID
	}
	return nil
}

func (s *orderStore) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (s *orderStore) GetOrderByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byKey[key]
	if !ok {
		return nil, order.ErrIdempotencyKeyNotFound
	}
	clone := *s.orders[id]
	return &clone, nil
}

func (s *orderStore) ListOrdersByUserID(ctx context.Context, userID string) ([]*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			clone := *o
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *orderStore) ListAllOrders(ctx context.Context) ([]*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Order
	for _, o := range s.orders {
		clone := *o
		out = append(out, &clone)
	}
	return out, nil
}

func (s *orderStore) UpdateOrderStatus(ctx context.Context, id uuid.UUID, next domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return order.ErrOrderNotFound
	}
	if !o.Status.CanTransitionTo(next) {
		return order.ErrIllegalTransition
	}
	o.Status = next
	return nil
}

func (s *orderStore) GetUnprocessedEvents(ctx context.Context, limit int) ([]*order.OutboxEvent, error) {
	return nil, nil
}
func (s *orderStore) MarkEventAsProcessed(ctx context.Context, id int64) error { return nil }
func (s *orderStore) RunMigrations(*order.Credentials) error                   { return nil }
func (s *orderStore) Close() error                                             { return nil }

// --- request helpers ---

func withIdentity(r *http.Request, id Identity) *http.Request {
	ctx := context.WithValue(r.Context(), identityContextKey, id)
	return r.WithContext(ctx)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func sampleProduct(id string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     "Sequin Dress",
		Price:    899,
		Category: domain.CategoryParty,
		AgeGroup: domain.AgeGroupYoung,
	}
}
