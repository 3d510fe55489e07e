package payment

import "context"

// Repository is insert and read only; payments form a ledger.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	ListByApplication(ctx context.Context, applicationNumericID uint64) ([]Payment, error)
}
