package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "Pending"
	OrderStatusPaid    OrderStatus = "Paid"
	OrderStatusShipped OrderStatus = "Shipped"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is the allowed forward step.
// Progression is Pending -> Paid -> Shipped with no rollback.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusPaid
	case OrderStatusPaid:
		return next == OrderStatusShipped
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// Sentinel identity for anonymous/guest checkout.
const (
	GuestUserID = "guest"
	GuestEmail  = "guest@example.com"
)

var ErrIncompleteAddress = errors.New("incomplete shipping address")

// Address is the shipping destination. Every field is required.
type Address struct {
	FullName string `json:"full_name" bson:"full_name"`
	Phone    string `json:"phone" bson:"phone"`
	Street   string `json:"street" bson:"street"`
	City     string `json:"city" bson:"city"`
	State    string `json:"state" bson:"state"`
	Pincode  string `json:"pincode" bson:"pincode"`
}

// Validate rejects the address if any field is empty, naming the first
// offending field so it can be surfaced next to the form input.
func (a Address) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"full_name", a.FullName},
		{"phone", a.Phone},
		{"street", a.Street},
		{"city", a.City},
		{"state", a.State},
		{"pincode", a.Pincode},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrIncompleteAddress, f.name)
		}
	}
	return nil
}

// Order is an immutable record of a submitted cart. Items, Total and
// Address never change after creation; only Status moves, forward.
type Order struct {
	ID        uuid.UUID   `json:"id"`
	UserID    string      `json:"user_id"`
	UserEmail string      `json:"user_email"`
	Items     []CartLine  `json:"items"`
	Total     int64       `json:"total"`
	Address   Address     `json:"address"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
