package cart

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
)

// Service owns the session carts. Reads are cache-aside over Redis with
// singleflight stampede protection; mutations write through the
// repository and invalidate the cache.
type Service struct {
	repo  CartRepository
	cache CartCache
	sfg   singleflight.Group
}

func NewService(repo CartRepository, cache CartCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// GetCart returns the user's cart. A user without a stored cart gets a
// fresh empty one; that is not an error.
func (s *Service) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cart cache get error: %v", err)
		}

		cart, errGet := s.repo.GetCart(ctx, userID)
		if errors.Is(errGet, ErrCartNotFound) {
			return emptyCart(userID), nil
		}
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), userID, cart); errSet != nil {
				log.Printf("cart cache set error: %v", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddToCart puts one unit of product into the cart, incrementing the
// existing line when the product is already there.
func (s *Service) AddToCart(ctx context.Context, userID string, product domain.Product) (*domain.Cart, error) {
	cart, err := s.loadForWrite(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.AddProduct(product)
	if err := s.store(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity applies delta to the product's line. A resulting
// quantity of zero or less removes the line; an unknown product is a
// no-op and nothing is written.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, delta int) (*domain.Cart, error) {
	cart, err := s.loadForWrite(ctx, userID)
	if err != nil {
		return nil, err
	}

	before := len(cart.Lines)
	cart.UpdateQuantity(productID, delta)
	if len(cart.Lines) == before && !hasLine(cart, productID) {
		return cart, nil
	}

	if err := s.store(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveFromCart drops the product's line; removing an absent product is
// a no-op.
func (s *Service) RemoveFromCart(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	cart, err := s.loadForWrite(ctx, userID)
	if err != nil {
		return nil, err
	}

	before := len(cart.Lines)
	cart.RemoveLine(productID)
	if len(cart.Lines) == before {
		return cart, nil
	}

	if err := s.store(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart empties the user's cart. Clearing an already-absent cart
// succeeds.
func (s *Service) ClearCart(ctx context.Context, userID string) error {
	err := s.repo.DeleteCart(ctx, userID)
	if err != nil && !errors.Is(err, ErrCartNotFound) {
		log.Printf("cart delete error: %v", err)
		return err
	}

	s.invalidateCache(userID)
	return nil
}

func (s *Service) loadForWrite(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetCart(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		return emptyCart(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Service) store(ctx context.Context, userID string, cart *domain.Cart) error {
	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		log.Printf("cart upsert error: %v", err)
		return err
	}
	s.invalidateCache(userID)
	return nil
}

func (s *Service) invalidateCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		log.Printf("cart cache invalidate error: %v", err)
	}
}

func hasLine(cart *domain.Cart, productID string) bool {
	for i := range cart.Lines {
		if cart.Lines[i].ID == productID {
			return true
		}
	}
	return false
}

func emptyCart(userID string) *domain.Cart {
	now := time.Now()
	return &domain.Cart{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
