package payment

import (
	"context"
	"time"
)

// Simulated stands in for a card terminal: it waits Delay and then succeeds, unless
// Decline is set.
type Simulated struct {
	Delay   time.Duration
	Decline bool
}

func (s Simulated) Pay(ctx context.Context, intent Intent) (Confirmation, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Confirmation{}, ctx.Err()
		case <-timer.C:
		}
	}
	if s.Decline {
		return Confirmation{}, ErrDeclined
	}
	return Confirmation{
		Reference: "SIM-" + intent.ID,
		Provider:  "simulated",
		PaidAt:    time.Now(),
	}, nil
}
