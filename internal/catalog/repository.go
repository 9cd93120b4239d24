package catalog

import (
	"context"
	"errors"

	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for catalog data operations.
// Consumers define this interface, not the SQLite implementation.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	RunMigrations(migrationsPath string) error
	Close() error
}
