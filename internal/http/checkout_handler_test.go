package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Sushanthnayak-eng/FashionCart/internal/cart"
	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
	"github.com/Sushanthnayak-eng/FashionCart/internal/order"
)

func newCheckoutFixture(t *testing.T) (*CheckoutHandler, *cart.Service) {
	t.Helper()
	carts := cart.NewService(newCartStore(), noopCache{})
	orders := order.NewService(newOrderStore())
	t.Cleanup(orders.Close)
	return NewCheckoutHandler(orders, carts, 5*time.Second), carts
}

const validCheckoutBody = `{"address":{"full_name":"A Shopper","phone":"9999999999","street":"1 Main St","city":"Mumbai","state":"MH","pincode":"400001"}}`

func TestCheckout_PlacesOrderAndClearsCart(t *testing.T) {
	handler, carts := newCheckoutFixture(t)

	_, err := carts.AddToCart(context.Background(), "u1", sampleProduct("p1"))
	if err != nil {
		t.Fatalf("failed to seed cart: %v", err)
	}

	recorder := httptest.NewRecorder()
	request := withIdentity(httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(validCheckoutBody)), shopper())

	handler.Checkout(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d: %s", http.StatusCreated, recorder.Code, recorder.Body.String())
	}

	var placed domain.Order
	if err := json.NewDecoder(recorder.Body).Decode(&placed); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if placed.UserID != "u1" {
		t.Errorf("expected user 'u1', got %q", placed.UserID)
	}
	if placed.Total != 899 {
		t.Errorf("expected total 899, got %d", placed.Total)
	}
	if placed.Status != domain.OrderStatusPaid {
		t.Errorf("expected status %q, got %q", domain.OrderStatusPaid, placed.Status)
	}

	after, err := carts.GetCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("failed to read cart: %v", err)
	}
	if !after.IsEmpty() {
		t.Errorf("expected cart cleared after checkout, got %d lines", len(after.Lines))
	}
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	handler, _ := newCheckoutFixture(t)

	recorder := httptest.NewRecorder()
	request := withIdentity(httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(validCheckoutBody)), shopper())

	handler.Checkout(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestCheckout_FailedSubmissionLeavesCartIntact(t *testing.T) {
	handler, carts := newCheckoutFixture(t)

	_, err := carts.AddToCart(context.Background(), "u1", sampleProduct("p1"))
	if err != nil {
		t.Fatalf("failed to seed cart: %v", err)
	}

	// missing pincode
	body := `{"address":{"full_name":"A Shopper","phone":"9999999999","street":"1 Main St","city":"Mumbai","state":"MH"}}`
	recorder := httptest.NewRecorder()
	request := withIdentity(httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(body)), shopper())

	handler.Checkout(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	after, err := carts.GetCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("failed to read cart: %v", err)
	}
	if after.IsEmpty() {
		t.Error("expected cart untouched after failed checkout")
	}
}

func TestCheckout_IdempotencyKeyReturnsSameOrder(t *testing.T) {
	handler, carts := newCheckoutFixture(t)

	place := func() domain.Order {
		t.Helper()
		if _, err := carts.AddToCart(context.Background(), "u1", sampleProduct("p1")); err != nil {
			t.Fatalf("failed to seed cart: %v", err)
		}
		recorder := httptest.NewRecorder()
		request := withIdentity(httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(validCheckoutBody)), shopper())
		request.Header.Set("Idempotency-Key", "submit-1")

		handler.Checkout(recorder, request)

		if recorder.Code != http.StatusCreated {
			t.Fatalf("expected %d, got %d: %s", http.StatusCreated, recorder.Code, recorder.Body.String())
		}
		var placed domain.Order
		if err := json.NewDecoder(recorder.Body).Decode(&placed); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		return placed
	}

	first := place()
	second := place()

	if first.ID != second.ID {
		t.Errorf("expected same order for repeated key, got %s and %s", first.ID, second.ID)
	}
}
