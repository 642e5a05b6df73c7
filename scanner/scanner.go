// Package scanner turns decoded barcode or QR text into catalog products.
package scanner

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/junaidrashid-git/smartcart-api/catalog"
	"github.com/junaidrashid-git/smartcart-api/models"
	"go.uber.org/zap"
)

type Status string

const (
	StatusFound    Status = "found"
	StatusNotFound Status = "not_found"
	StatusIgnored  Status = "ignored"
)

// Lookup is the slice of the catalog store a scanner needs.
type Lookup interface {
	GetByBarcode(ctx context.Context, code string) (models.Product, error)
	GetByQRCode(ctx context.Context, code string) (models.Product, error)
}

type Result struct {
	Status  Status          `json:"status"`
	Code    string          `json:"code"`
	Product *models.Product `json:"product,omitempty"`
}

// Scanner resolves one decode at a time. Decodes that arrive while a lookup is running
// are ignored, as are repeats of the last found code inside the cooldown window.
type Scanner struct {
	lookup   Lookup
	cooldown time.Duration
	now      func() time.Time
	log      *zap.SugaredLogger

	inFlight atomic.Bool

	mu       sync.Mutex
	lastCode string
	lastAt   time.Time
}

type Option func(*Scanner)

// WithCooldown sets how long a found code is ignored after it resolved. Zero disables it.
func WithCooldown(d time.Duration) Option {
	return func(s *Scanner) { s.cooldown = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Scanner) { s.now = now }
}

func New(lookup Lookup, opts ...Option) *Scanner {
	s := &Scanner{
		lookup: lookup,
		now:    time.Now,
		log:    zap.S().With("namespace", "scanner"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleDecode resolves text by barcode and then by QR code.
func (s *Scanner) HandleDecode(ctx context.Context, text string) Result {
	code := strings.TrimSpace(text)
	if code == "" {
		return Result{Status: StatusNotFound}
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return Result{Status: StatusIgnored, Code: code}
	}
	defer s.inFlight.Store(false)

	if s.recentlyFound(code) {
		return Result{Status: StatusIgnored, Code: code}
	}

	product, err := s.resolve(ctx, code)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			s.log.Warnw("scan lookup failed", "code", code, "error", err)
		}
		return Result{Status: StatusNotFound, Code: code}
	}

	s.mu.Lock()
	s.lastCode, s.lastAt = code, s.now()
	s.mu.Unlock()
	return Result{Status: StatusFound, Code: code, Product: &product}
}

// Busy reports whether a lookup is in flight.
func (s *Scanner) Busy() bool {
	return s.inFlight.Load()
}

// Reset forgets the last found code.
func (s *Scanner) Reset() {
	s.mu.Lock()
	s.lastCode, s.lastAt = "", time.Time{}
	s.mu.Unlock()
}

func (s *Scanner) recentlyFound(code string) bool {
	if s.cooldown <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return code == s.lastCode && s.now().Sub(s.lastAt) < s.cooldown
}

func (s *Scanner) resolve(ctx context.Context, code string) (models.Product, error) {
	product, err := s.lookup.GetByBarcode(ctx, code)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		s.log.Warnw("barcode lookup failed, trying QR code", "code", code, "error", err)
	}
	return s.lookup.GetByQRCode(ctx, code)
}
