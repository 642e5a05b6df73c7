// Package payment charges a checkout. Implementations either complete exactly once or
// report why they did not.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrDeclined      = errors.New("payment declined")
	ErrInvalidMethod = errors.New("unsupported payment method")
)

type Method string

const (
	MethodCard Method = "card"
	MethodCash Method = "cash"
)

// ParseMethod maps a case-insensitive label onto a Method.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodCard, MethodCash:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
}

// Intent is one attempt to collect Amount.
type Intent struct {
	ID        string          `json:"id"`
	SessionID string          `json:"session_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Method    Method          `json:"method"`
}

// Confirmation is what a successful step reports back.
type Confirmation struct {
	Reference string    `json:"reference"`
	Provider  string    `json:"provider"`
	PaidAt    time.Time `json:"paid_at"`
}

// Step is invoked once per checkout attempt. A nil error means the payment succeeded.
type Step interface {
	Pay(ctx context.Context, intent Intent) (Confirmation, error)
}
