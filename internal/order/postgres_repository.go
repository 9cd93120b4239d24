package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
)

const eventTypeOrderPlaced = "order.placed"

type Repository struct {
	db *sql.DB
}

func NewRepository(cred *Credentials) (*Repository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "orders_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

// placedEvent is the outbox payload shape for order.placed.
type placedEvent struct {
	OrderID   string            `json:"order_id"`
	UserID    string            `json:"user_id"`
	UserEmail string            `json:"user_email"`
	Items     []domain.CartLine `json:"items"`
	Total     int64             `json:"total"`
	Status    string            `json:"status"`
	PlacedAt  time.Time         `json:"placed_at"`
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order, idempotencyKey string) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}
	addressJSON, err := json.Marshal(order.Address)
	if err != nil {
		return fmt.Errorf("failed to marshal order address: %w", err)
	}
	payload, err := json.Marshal(placedEvent{
		OrderID:   order.ID.String(),
		UserID:    order.UserID,
		UserEmail: order.UserEmail,
		Items:     order.Items,
		Total:     order.Total,
		Status:    order.Status.String(),
		PlacedAt:  order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal outbox payload: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create order tx: %w", err)
	}
	defer tx.Rollback()

	var key sql.NullString
	if idempotencyKey != "" {
		key = sql.NullString{String: idempotencyKey, Valid: true}
	}

	insertOrder := `INSERT INTO orders (id, user_id, user_email, items, total, address, status, idempotency_key, created_at, updated_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`
	_, insertErr := tx.ExecContext(ctx, insertOrder,
		order.ID,
		order.UserID,
		order.UserEmail,
		itemsJSON,
		order.Total,
		addressJSON,
		order.Status,
		key,
		order.CreatedAt)
	if insertErr != nil {
		var pqErr *pq.Error
		if errors.As(insertErr, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateOrder
		}
		return fmt.Errorf("insert order: %w", insertErr)
	}

	insertEvent := `INSERT INTO order_outbox (aggregate_id, event_type, payload, created_at)
	                VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, insertEvent, order.ID.String(), eventTypeOrderPlaced, payload, order.CreatedAt); err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create order tx: %w", err)
	}
	return nil
}

const orderColumns = `id, user_id, user_email, items, total, address, status, created_at, updated_at`

func (r *Repository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}
	return order, nil
}

func (r *Repository) GetOrderByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE idempotency_key = $1`
	order, err := scanOrder(r.db.QueryRowContext(ctx, query, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrIdempotencyKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by idempotency key: %w", err)
	}
	return order, nil
}

func (r *Repository) ListOrdersByUserID(ctx context.Context, userID string) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	return r.listOrders(ctx, query, userID)
}

func (r *Repository) ListAllOrders(ctx context.Context) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.listOrders(ctx, query)
}

func (r *Repository) listOrders(ctx context.Context, query string, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var itemsJSON, addressJSON []byte
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.UserEmail,
		&itemsJSON,
		&order.Total,
		&addressJSON,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	if err := json.Unmarshal(addressJSON, &order.Address); err != nil {
		return nil, fmt.Errorf("unmarshal order address: %w", err)
	}

	return &order, nil
}

// UpdateOrderStatus moves the order to next, holding the row lock while
// checking the transition so concurrent updates cannot skip a step.
func (r *Repository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, next domain.OrderStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin status tx: %w", err)
	}
	defer tx.Rollback()

	var current domain.OrderStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("query order status: %w", err)
	}

	if !current.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current, next)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, next); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit status tx: %w", err)
	}
	return nil
}

func (r *Repository) GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	query := `SELECT id, aggregate_id, event_type, payload, created_at
	          FROM order_outbox WHERE NOT processed ORDER BY id LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox events: %w", err)
	}
	defer rows.Close()

	var events []*OutboxEvent
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(&e.ID, &e.AggregateID, &e.EventType, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return events, nil
}

func (r *Repository) MarkEventAsProcessed(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE order_outbox SET processed = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("mark event as processed: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
