package catalog

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

var ErrInvalidProduct = errors.New("invalid product")

// Service exposes catalog reads, admin mutations and a live snapshot
// feed. Writes go through the repository first; watchers only ever see
// confirmed state.
type Service struct {
	repo ProductRepository
	hub  *watch.Hub[[]domain.Product]
}

func NewService(repo ProductRepository) *Service {
	return &Service{
		repo: repo,
		hub:  watch.NewHub[[]domain.Product](),
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// Search lists the catalog and applies the filter client-side, same as
// the shop view does.
func (s *Service) Search(ctx context.Context, f Filter) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return Apply(products, f), nil
}

func (s *Service) AddProduct(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return err
	}
	s.publishSnapshot(ctx)
	return nil
}

func (s *Service) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidProduct)
	}
	if err := validateProduct(p); err != nil {
		return err
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return err
	}
	s.publishSnapshot(ctx)
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.publishSnapshot(ctx)
	return nil
}

// Watch subscribes to full catalog snapshots. The current snapshot is
// returned directly; the feed then carries one snapshot per confirmed
// mutation. The caller must call cancel on teardown.
func (s *Service) Watch(ctx context.Context) ([]domain.Product, <-chan []domain.Product, func(), error) {
	feed, cancel := s.hub.Subscribe()

	snapshot, err := s.repo.ListProducts(ctx)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}
	return snapshot, feed, cancel, nil
}

// Close tears down all watchers.
func (s *Service) Close() {
	s.hub.Close()
}

func (s *Service) publishSnapshot(ctx context.Context) {
	snapshot, err := s.repo.ListProducts(ctx)
	if err != nil {
		log.Printf("catalog snapshot reload failed: %v", err)
		return
	}
	s.hub.Publish(snapshot)
}

func validateProduct(p *domain.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidProduct, p.Category)
	}
	if !p.AgeGroup.Valid() {
		return fmt.Errorf("%w: unknown age group %q", ErrInvalidProduct, p.AgeGroup)
	}
	return nil
}
