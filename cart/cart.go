// Package cart aggregates add/update/remove operations into a consistent list of
// line items and a derived total.
package cart

import (
	"errors"
	"fmt"

	"github.com/junaidrashid-git/smartcart-api/models"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrInvalidProduct     = errors.New("product must have an id and a non-negative price")
	ErrInvariantViolation = errors.New("cart invariant violated")
)

// Line pairs a product with a quantity of at least one.
type Line struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Subtotal is price × quantity for the line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is a point-in-time copy of an aggregator's state.
type Cart struct {
	Items []Line          `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Empty reports whether the cart has no lines.
func (c Cart) Empty() bool {
	return len(c.Items) == 0
}

// ItemCount is the sum of all line quantities.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Items {
		n += l.Quantity
	}
	return n
}

// Aggregator owns the lines of one cart. It is not safe for concurrent use; callers
// serialise access per session.
type Aggregator struct {
	items []Line
	total decimal.Decimal
}

// New returns an empty aggregator.
func New() *Aggregator {
	return &Aggregator{items: []Line{}, total: decimal.Zero}
}

// Add merges quantity units of product into the cart, appending a new line when the
// product is not present yet.
func (a *Aggregator) Add(product models.Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if product.ID == "" || product.Price.IsNegative() {
		return ErrInvalidProduct
	}

	next := make([]Line, 0, len(a.items)+1)
	merged := false
	for _, l := range a.items {
		if l.Product.ID == product.ID {
			l.Quantity += quantity
			merged = true
		}
		next = append(next, l)
	}
	if !merged {
		next = append(next, Line{Product: product, Quantity: quantity})
	}
	return a.commit(next)
}

// Remove deletes the line for productID. Removing an absent product is a no-op.
func (a *Aggregator) Remove(productID string) error {
	next := make([]Line, 0, len(a.items))
	for _, l := range a.items {
		if l.Product.ID != productID {
			next = append(next, l)
		}
	}
	return a.commit(next)
}

// UpdateQuantity sets the absolute quantity of an existing line. A quantity of zero or
// less removes the line; an absent product is left alone.
func (a *Aggregator) UpdateQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		return a.Remove(productID)
	}
	next := make([]Line, len(a.items))
	copy(next, a.items)
	for i := range next {
		if next[i].Product.ID == productID {
			next[i].Quantity = quantity
		}
	}
	return a.commit(next)
}

// Clear resets the cart to empty.
func (a *Aggregator) Clear() {
	a.items = []Line{}
	a.total = decimal.Zero
}

// Cart returns a copy of the current lines and total.
func (a *Aggregator) Cart() Cart {
	items := make([]Line, len(a.items))
	copy(items, a.items)
	return Cart{Items: items, Total: a.total}
}

// Total is the current cart total.
func (a *Aggregator) Total() decimal.Decimal {
	return a.total
}

// Len is the number of distinct lines.
func (a *Aggregator) Len() int {
	return len(a.items)
}

// Quantity returns the quantity held for productID, or zero.
func (a *Aggregator) Quantity(productID string) int {
	for _, l := range a.items {
		if l.Product.ID == productID {
			return l.Quantity
		}
	}
	return 0
}

// commit validates the candidate state and swaps it in. The previous state survives a
// failed validation untouched.
func (a *Aggregator) commit(next []Line) error {
	total := Sum(next)
	if err := verify(next, total); err != nil {
		return err
	}
	a.items = next
	a.total = total
	return nil
}

// Sum recomputes the total of lines from scratch.
func Sum(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func verify(lines []Line, total decimal.Decimal) error {
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return fmt.Errorf("%w: product %s has quantity %d", ErrInvariantViolation, l.Product.ID, l.Quantity)
		}
		if _, dup := seen[l.Product.ID]; dup {
			return fmt.Errorf("%w: product %s appears twice", ErrInvariantViolation, l.Product.ID)
		}
		seen[l.Product.ID] = struct{}{}
	}
	if !Sum(lines).Equal(total) {
		return fmt.Errorf("%w: total %s diverges from lines", ErrInvariantViolation, total)
	}
	return nil
}
