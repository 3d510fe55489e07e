package paymentmock

import (
	"context"
	"sync"

	domain "renthive-backend/internal/domain/payment"
)

var (
	_ domain.Repository = (*Repo)(nil)
	_ domain.Gateway    = (*Gateway)(nil)
)

type Repo struct {
	CreateFn            func(ctx context.Context, p *domain.Payment) error
	ListByApplicationFn func(ctx context.Context, applicationNumericID uint64) ([]domain.Payment, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) ListByApplication(ctx context.Context, applicationNumericID uint64) ([]domain.Payment, error) {
	if m.ListByApplicationFn != nil {
		return m.ListByApplicationFn(ctx, applicationNumericID)
	}
	return nil, context.Canceled
}

// Gateway records calls. Unset Charge succeeds with ref "txn-1".
type Gateway struct {
	ChargeFn func(ctx context.Context, req domain.ChargeRequest) (string, error)
	RefundFn func(ctx context.Context, txnRef string) error

	mu      sync.Mutex
	Charges []domain.ChargeRequest
	Refunds []string
}

func (g *Gateway) Charge(ctx context.Context, req domain.ChargeRequest) (string, error) {
	g.mu.Lock()
	g.Charges = append(g.Charges, req)
	g.mu.Unlock()
	if g.ChargeFn != nil {
		return g.ChargeFn(ctx, req)
	}
	return "txn-1", nil
}

func (g *Gateway) Refund(ctx context.Context, txnRef string) error {
	g.mu.Lock()
	g.Refunds = append(g.Refunds, txnRef)
	g.mu.Unlock()
	if g.RefundFn != nil {
		return g.RefundFn(ctx, txnRef)
	}
	return nil
}
