package domain

import "time"

// CartLine is a product copied into the cart plus a quantity. Orders keep
// these copies, so later catalog edits never rewrite history.
type CartLine struct {
	Product  `bson:",inline"`
	Quantity int       `json:"quantity" bson:"quantity"`
	AddedAt  time.Time `json:"added_at" bson:"added_at"`
}

// Subtotal is price times quantity for this line.
func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Cart holds one shopper's in-progress selection. Lines are ordered by
// first add and keyed by product ID: a product appears at most once and
// re-adding increments the existing line.
type Cart struct {
	UserID    string     `json:"user_id" bson:"user_id"`
	Lines     []CartLine `json:"lines" bson:"lines"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// AddProduct increments the line for p if one exists, otherwise appends a
// new line with quantity 1.
func (c *Cart) AddProduct(p Product) {
	for i := range c.Lines {
		if c.Lines[i].ID == p.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{
		Product:  p,
		Quantity: 1,
		AddedAt:  time.Now(),
	})
}

// UpdateQuantity adds delta to the line's quantity. A resulting quantity
// of zero or less removes the line entirely rather than clamping. An
// unknown productID is a silent no-op.
func (c *Cart) UpdateQuantity(productID string, delta int) {
	for i := range c.Lines {
		if c.Lines[i].ID != productID {
			continue
		}
		if c.Lines[i].Quantity+delta <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
		c.Lines[i].Quantity += delta
		return
	}
}

// RemoveLine drops the line for productID if present.
func (c *Cart) RemoveLine(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalPrice is derived from the lines on every call and is never stored,
// so it cannot drift from the sum of line subtotals.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}

// Snapshot returns an independent copy of the lines. Mutating the cart
// afterwards does not affect the snapshot.
func (c *Cart) Snapshot() []CartLine {
	if len(c.Lines) == 0 {
		return nil
	}
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return lines
}
