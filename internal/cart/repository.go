package cart

import (
	"context"
	"errors"

	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
)

var ErrCartNotFound = errors.New("cart not found")

// CartRepository defines the interface for cart persistence. Consumers
// define this interface, not the MongoDB implementation.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	UpsertCart(ctx context.Context, cart *domain.Cart) error
	DeleteCart(ctx context.Context, userID string) error
}
