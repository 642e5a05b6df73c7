package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// GatewayResponse is the body a hosted payment gateway answers with.
type GatewayResponse struct {
	Order struct {
		Ref    string `json:"ref"`
		Status string `json:"status"`
	} `json:"order"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Gateway charges through a remote JSON endpoint.
type Gateway struct {
	URL      string
	StoreID  string
	AuthKey  string
	Currency string
	TestMode bool
	Client   *http.Client
}

func (g *Gateway) client() *http.Client {
	if g.Client != nil {
		return g.Client
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (g *Gateway) Pay(ctx context.Context, intent Intent) (Confirmation, error) {
	currency := intent.Currency
	if currency == "" {
		currency = g.Currency
	}
	test := 0
	if g.TestMode {
		test = 1
	}

	payload := map[string]interface{}{
		"method":  "charge",
		"store":   g.StoreID,
		"authkey": g.AuthKey,
		"order": map[string]interface{}{
			"cartid":      intent.ID,
			"test":        test,
			"amount":      intent.Amount.StringFixed(2),
			"currency":    currency,
			"description": "Smart cart checkout " + intent.SessionID,
			"tender":      string(intent.Method),
		},
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return Confirmation{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return Confirmation{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client().Do(req)
	if err != nil {
		return Confirmation{}, fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Confirmation{}, fmt.Errorf("failed to read gateway response: %w", err)
	}
	if resp.StatusCode >= 500 {
		return Confirmation{}, fmt.Errorf("payment gateway error (%d): %s", resp.StatusCode, string(body))
	}

	var gr GatewayResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return Confirmation{}, fmt.Errorf("failed to parse gateway response: %w", err)
	}
	if gr.Error != nil {
		zap.S().Infow("payment declined by gateway", "namespace", "payment", "intent", intent.ID, "code", gr.Error.Code)
		return Confirmation{}, fmt.Errorf("%w: %s", ErrDeclined, gr.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return Confirmation{}, fmt.Errorf("%w: gateway answered %d", ErrDeclined, resp.StatusCode)
	}

	switch strings.ToLower(gr.Order.Status) {
	case "paid", "authorised", "captured":
	default:
		return Confirmation{}, fmt.Errorf("%w: status %q", ErrDeclined, gr.Order.Status)
	}
	if gr.Order.Ref == "" {
		return Confirmation{}, fmt.Errorf("payment gateway returned empty reference")
	}

	return Confirmation{Reference: gr.Order.Ref, Provider: "gateway", PaidAt: time.Now()}, nil
}
