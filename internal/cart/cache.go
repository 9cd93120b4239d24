package cart

import (
	"context"
	"errors"

	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

type CartCache interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Set(ctx context.Context, userID string, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}
