package payment

import "context"

type ChargeRequest struct {
	Reference string // public application id
	PayerID   string
	Amount    float64
	Method    Method
}

// Gateway is the external payment processor.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (txnRef string, err error)
	// Refund reverses a successful charge.
	Refund(ctx context.Context, txnRef string) error
}
