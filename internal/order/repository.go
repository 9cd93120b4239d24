package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
)

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrDuplicateOrder         = errors.New("order for this idempotency key already exists")
	ErrIdempotencyKeyNotFound = errors.New("idempotency key not found")
	ErrIllegalTransition      = errors.New("illegal transition of order status")
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// OutboxEvent is a pending order event awaiting publication.
type OutboxEvent struct {
	ID          int64
	AggregateID string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
}

// OrderRepository defines the interface for order persistence. The order
// row and its outbox event are written in one transaction so an order
// never exists without its event.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order, idempotencyKey string) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetOrderByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	ListOrdersByUserID(ctx context.Context, userID string) ([]*domain.Order, error)
	ListAllOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, next domain.OrderStatus) error
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id int64) error
	RunMigrations(*Credentials) error
	Close() error
}
