// Package checkout quotes a cart and drives it through one payment attempt.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/smartcart-api/cart"
	"github.com/junaidrashid-git/smartcart-api/payment"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrInProgress    = errors.New("checkout already in progress")
	ErrPaymentFailed = errors.New("payment failed")
)

// TaxRate is applied to the cart subtotal.
var TaxRate = decimal.RequireFromString("0.08")

type Status string

const (
	StatusIdle       Status = "idle"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Summary is the price breakdown shown before paying.
type Summary struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	ItemCount  int             `json:"item_count"`
}

// Quote prices c. Tax is rounded to cents.
func Quote(c cart.Cart) Summary {
	tax := c.Total.Mul(TaxRate).Round(2)
	return Summary{
		Subtotal:   c.Total,
		Tax:        tax,
		GrandTotal: c.Total.Add(tax),
		ItemCount:  c.ItemCount(),
	}
}

// Receipt describes a paid checkout.
type Receipt struct {
	OrderRef     string               `json:"order_ref"`
	SessionID    string               `json:"session_id"`
	Items        []cart.Line          `json:"items"`
	Summary      Summary              `json:"summary"`
	Method       payment.Method       `json:"payment_method"`
	Confirmation payment.Confirmation `json:"confirmation"`
	CompletedAt  time.Time            `json:"completed_at"`
}

// Recorder persists a paid checkout.
type Recorder interface {
	Record(ctx context.Context, r Receipt) error
}

// Orchestrator runs checkouts for one cart. Cart reads and writes happen under guard,
// which callers share with whatever else mutates the cart.
type Orchestrator struct {
	cart       *cart.Aggregator
	step       payment.Step
	recorder   Recorder
	onComplete func(Receipt)
	guard      sync.Locker
	sessionID  string
	currency   string
	log        *zap.SugaredLogger

	mu      sync.Mutex
	status  Status
	lastErr error
}

type Option func(*Orchestrator)

func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

// WithOnComplete registers a callback fired after a successful checkout.
func WithOnComplete(fn func(Receipt)) Option {
	return func(o *Orchestrator) { o.onComplete = fn }
}

// WithGuard sets the lock held while the cart is read and cleared.
func WithGuard(l sync.Locker) Option {
	return func(o *Orchestrator) { o.guard = l }
}

func WithSessionID(id string) Option {
	return func(o *Orchestrator) { o.sessionID = id }
}

func WithCurrency(currency string) Option {
	return func(o *Orchestrator) { o.currency = currency }
}

func New(c *cart.Aggregator, step payment.Step, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cart:   c,
		step:   step,
		guard:  &sync.Mutex{},
		status: StatusIdle,
		log:    zap.S().With("namespace", "checkout"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// LastError is the cause of the most recent failed attempt, if any.
func (o *Orchestrator) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// Processing reports whether a payment is running.
func (o *Orchestrator) Processing() bool {
	return o.Status() == StatusProcessing
}

// Quote prices the current cart.
func (o *Orchestrator) Quote() Summary {
	o.guard.Lock()
	defer o.guard.Unlock()
	return Quote(o.cart.Cart())
}

// Checkout pays for the current cart once. Once the payment step has been invoked ctx no
// longer cancels it. On success the order is recorded, the cart cleared and the
// completion callback fired. On failure the cart is left as it was.
func (o *Orchestrator) Checkout(ctx context.Context, method payment.Method) (Receipt, error) {
	o.guard.Lock()
	snapshot := o.cart.Cart()
	o.mu.Lock()
	if o.status == StatusProcessing {
		o.mu.Unlock()
		o.guard.Unlock()
		return Receipt{}, ErrInProgress
	}
	if snapshot.Empty() {
		o.mu.Unlock()
		o.guard.Unlock()
		return Receipt{}, ErrEmptyCart
	}
	o.status = StatusProcessing
	o.lastErr = nil
	o.mu.Unlock()
	o.guard.Unlock()

	summary := Quote(snapshot)
	intent := payment.Intent{
		ID:        uuid.NewString(),
		SessionID: o.sessionID,
		Amount:    summary.GrandTotal,
		Currency:  o.currency,
		Method:    method,
	}
	o.log.Infow("payment started", "session", o.sessionID, "intent", intent.ID, "amount", intent.Amount.StringFixed(2), "method", method)

	confirmation, err := o.step.Pay(context.WithoutCancel(ctx), intent)
	if err != nil {
		o.mu.Lock()
		o.status = StatusFailed
		o.lastErr = err
		o.mu.Unlock()
		o.log.Warnw("payment failed", "session", o.sessionID, "intent", intent.ID, "error", err)
		return Receipt{}, fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}

	receipt := Receipt{
		OrderRef:     generateOrderRef(),
		SessionID:    o.sessionID,
		Items:        snapshot.Items,
		Summary:      summary,
		Method:       method,
		Confirmation: confirmation,
		CompletedAt:  time.Now(),
	}
	if o.recorder != nil {
		if err := o.recorder.Record(context.WithoutCancel(ctx), receipt); err != nil {
			o.log.Errorw("failed to record paid order", "order_ref", receipt.OrderRef, "error", err)
		}
	}

	o.guard.Lock()
	o.cart.Clear()
	o.mu.Lock()
	o.status = StatusCompleted
	o.mu.Unlock()
	o.guard.Unlock()

	o.log.Infow("checkout completed", "session", o.sessionID, "order_ref", receipt.OrderRef, "grand_total", summary.GrandTotal.StringFixed(2))
	if o.onComplete != nil {
		o.onComplete(receipt)
	}
	return receipt, nil
}

// Reset returns a completed or failed orchestrator to idle.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.status != StatusProcessing {
		o.status = StatusIdle
		o.lastErr = nil
	}
}

// generateOrderRef looks like 20250908130500-<uuid4>.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}
