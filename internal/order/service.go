package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
	"github.com/Sushanthnayak-eng/FashionCart/internal/watch"
)

var (
	ErrEmptyCart     = errors.New("cart is empty, nothing to checkout")
	ErrInvalidStatus = errors.New("invalid order status")
)

// PlaceOrderInput is a checkout submission. Lines must be the caller's
// cart snapshot; the service keeps its own copy.
type PlaceOrderInput struct {
	UserID         string
	UserEmail      string
	Lines          []domain.CartLine
	Address        domain.Address
	Status         domain.OrderStatus // defaults to Paid
	IdempotencyKey string
}

type Service struct {
	repo OrderRepository
	hub  *watch.Hub[[]*domain.Order]
}

func NewService(repo OrderRepository) *Service {
	return &Service{
		repo: repo,
		hub:  watch.NewHub[[]*domain.Order](),
	}
}

// PlaceOrder validates the submission, then creates the order with its
// outbox event in one transaction. All preconditions are checked before
// any store call so a rejected submission costs nothing and the caller's
// cart stays intact. An order either fully exists or does not; there is
// no draft state.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	if len(in.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if err := in.Address.Validate(); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.OrderStatusPaid
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}

	userID, userEmail := in.UserID, in.UserEmail
	if userID == "" {
		userID = domain.GuestUserID
	}
	if userEmail == "" {
		userEmail = domain.GuestEmail
	}

	if in.IdempotencyKey != "" {
		existing, err := s.repo.GetOrderByIdempotencyKey(ctx, in.IdempotencyKey)
		if err != nil && !errors.Is(err, ErrIdempotencyKeyNotFound) {
			return nil, fmt.Errorf("failed to check idempotency: %w", err)
		}
		if existing != nil {
			log.Printf("duplicate order submission, idempotency_key=%s order_id=%s", in.IdempotencyKey, existing.ID)
			return existing, nil
		}
	}

	// The order owns an independent copy of the lines; later cart
	// mutations must not reach into stored history.
	items := make([]domain.CartLine, len(in.Lines))
	copy(items, in.Lines)

	var total int64
	for _, l := range items {
		total += l.Subtotal()
	}

	now := time.Now()
	order := &domain.Order{
		ID:        uuid.New(),
		UserID:    userID,
		UserEmail: userEmail,
		Items:     items,
		Total:     total,
		Address:   in.Address,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateOrder(ctx, order, in.IdempotencyKey); err != nil {
		if errors.Is(err, ErrDuplicateOrder) && in.IdempotencyKey != "" {
			// Lost a race with an identical submission; hand back the winner.
			return s.repo.GetOrderByIdempotencyKey(ctx, in.IdempotencyKey)
		}
		return nil, err
	}

	s.publishSnapshot(ctx)
	return order, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.repo.ListOrdersByUserID(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.ListAllOrders(ctx)
}

// UpdateStatus advances the order along Pending -> Paid -> Shipped.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, next domain.OrderStatus) error {
	if !next.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}
	if err := s.repo.UpdateOrderStatus(ctx, id, next); err != nil {
		return err
	}
	s.publishSnapshot(ctx)
	return nil
}

// Watch subscribes to full order-list snapshots, newest first. The
// current snapshot is returned directly; the caller must cancel on
// teardown.
func (s *Service) Watch(ctx context.Context) ([]*domain.Order, <-chan []*domain.Order, func(), error) {
	feed, cancel := s.hub.Subscribe()

	snapshot, err := s.repo.ListAllOrders(ctx)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}
	return snapshot, feed, cancel, nil
}

func (s *Service) Close() {
	s.hub.Close()
}

func (s *Service) publishSnapshot(ctx context.Context) {
	snapshot, err := s.repo.ListAllOrders(ctx)
	if err != nil {
		log.Printf("order snapshot reload failed: %v", err)
		return
	}
	s.hub.Publish(snapshot)
}
