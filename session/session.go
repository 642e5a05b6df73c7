// Package session holds the per-shopper state: one cart, one scanner and one checkout,
// all reading from the shared catalog snapshot.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/junaidrashid-git/smartcart-api/cart"
	"github.com/junaidrashid-git/smartcart-api/catalog"
	"github.com/junaidrashid-git/smartcart-api/checkout"
	"github.com/junaidrashid-git/smartcart-api/payment"
	"github.com/junaidrashid-git/smartcart-api/recommend"
	"github.com/junaidrashid-git/smartcart-api/scanner"
)

var (
	ErrNotFound       = errors.New("session not found")
	ErrUnknownProduct = errors.New("product not in catalog")
	ErrOutOfStock     = errors.New("product is out of stock")
)

// Session is one shopper. Cart work is serialised through Do.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	cart     *cart.Aggregator
	scanner  *scanner.Scanner
	checkout *checkout.Orchestrator
	catalog  *catalog.Snapshot
	selector *recommend.Selector

	seenMu   sync.Mutex
	lastSeen time.Time
}

// Do runs fn with exclusive access to the cart. It fails with checkout.ErrInProgress
// while a payment is running so a paid cart cannot change underneath it.
func (s *Session) Do(fn func(c *cart.Aggregator) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkout.Processing() {
		return checkout.ErrInProgress
	}
	return fn(s.cart)
}

func (s *Session) Cart() cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Cart()
}

// AddProduct adds quantity units of a catalog product. Out-of-stock products are refused.
func (s *Session) AddProduct(id string, quantity int) error {
	p, ok := s.catalog.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProduct, id)
	}
	if !p.InStock() {
		return fmt.Errorf("%w: %s", ErrOutOfStock, p.Name)
	}
	return s.Do(func(c *cart.Aggregator) error {
		return c.Add(p, quantity)
	})
}

// AddProducts adds one unit of each id, skipping unknown or out-of-stock products. It
// returns the ids that were added.
func (s *Session) AddProducts(ids []string) ([]string, error) {
	added := []string{}
	err := s.Do(func(c *cart.Aggregator) error {
		for _, id := range ids {
			p, ok := s.catalog.Find(id)
			if !ok || !p.InStock() {
				continue
			}
			if err := c.Add(p, 1); err != nil {
				return err
			}
			added = append(added, id)
		}
		return nil
	})
	return added, err
}

func (s *Session) UpdateQuantity(id string, quantity int) error {
	return s.Do(func(c *cart.Aggregator) error {
		return c.UpdateQuantity(id, quantity)
	})
}

func (s *Session) Remove(id string) error {
	return s.Do(func(c *cart.Aggregator) error {
		return c.Remove(id)
	})
}

func (s *Session) Clear() error {
	return s.Do(func(c *cart.Aggregator) error {
		c.Clear()
		return nil
	})
}

// Scan resolves decoded text and adds one unit of a found product.
func (s *Session) Scan(ctx context.Context, text string) (scanner.Result, error) {
	res := s.scanner.HandleDecode(ctx, text)
	if res.Status != scanner.StatusFound {
		return res, nil
	}
	err := s.Do(func(c *cart.Aggregator) error {
		return c.Add(*res.Product, 1)
	})
	if err != nil {
		// Nothing was added, so the same code must be accepted again right away.
		s.scanner.Reset()
	}
	return res, err
}

// Recommend runs the selector over the current catalog.
func (s *Session) Recommend(req recommend.Request) recommend.Result {
	return s.selector.Select(s.catalog.Products(), req)
}

func (s *Session) Quote() checkout.Summary {
	return s.checkout.Quote()
}

func (s *Session) Checkout(ctx context.Context, method payment.Method) (checkout.Receipt, error) {
	return s.checkout.Checkout(ctx, method)
}

func (s *Session) CheckoutStatus() checkout.Status {
	return s.checkout.Status()
}

func (s *Session) touch(now time.Time) {
	s.seenMu.Lock()
	s.lastSeen = now
	s.seenMu.Unlock()
}

// LastSeen is when the session was last looked up.
func (s *Session) LastSeen() time.Time {
	s.seenMu.Lock()
	defer s.seenMu.Unlock()
	return s.lastSeen
}
