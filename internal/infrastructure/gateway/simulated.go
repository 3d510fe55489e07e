// Package gateway holds the payment processor used by the API process.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"renthive-backend/internal/domain/payment"
)

var ErrUnknownTransaction = errors.New("gateway: unknown transaction")

// Simulated approves every valid charge after Delay. It keeps its ledger in memory.
type Simulated struct {
	Delay time.Duration

	mu       sync.Mutex
	charges  map[string]payment.ChargeRequest
	refunded map[string]bool
}

var _ payment.Gateway = (*Simulated)(nil)

func NewSimulated(delay time.Duration) *Simulated {
	return &Simulated{
		Delay:    delay,
		charges:  make(map[string]payment.ChargeRequest),
		refunded: make(map[string]bool),
	}
}

func (g *Simulated) Charge(ctx context.Context, req payment.ChargeRequest) (string, error) {
	if !req.Method.Enabled() {
		return "", fmt.Errorf("%w: %q", payment.ErrUnsupportedMethod, req.Method)
	}
	if req.Amount <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", payment.ErrDeclined)
	}
	if err := g.wait(ctx); err != nil {
		return "", err
	}

	ref := "txn_" + uuid.NewString()
	g.mu.Lock()
	g.charges[ref] = req
	g.mu.Unlock()
	return ref, nil
}

// Refund is idempotent per transaction.
func (g *Simulated) Refund(ctx context.Context, txnRef string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.charges[txnRef]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTransaction, txnRef)
	}
	g.refunded[txnRef] = true
	return nil
}

// Refunded reports whether txnRef was reversed.
func (g *Simulated) Refunded(txnRef string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.refunded[txnRef]
}

func (g *Simulated) wait(ctx context.Context) error {
	if g.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(g.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
