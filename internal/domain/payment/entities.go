package payment

import (
	"fmt"
	"time"

	"renthive-backend/internal/domain/apperr"
)

var (
	ErrUnsupportedMethod = fmt.Errorf("%w: payment method not supported", apperr.ErrValidation)
	ErrDeclined          = fmt.Errorf("%w: payment declined by gateway", apperr.ErrPayment)
)

type Method string

const (
	MethodWallet Method = "wallet"
	MethodCard   Method = "card"
)

// Enabled reports whether the method can be used at checkout. Only wallet is live.
func (m Method) Enabled() bool { return m == MethodWallet }

// Table: payments. Append-only: rows are inserted once and never updated or deleted.
type Payment struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"-"`
	PaymentID      string    `gorm:"size:32;uniqueIndex;not null" json:"payment_id"`
	ApplicationID  uint64    `gorm:"not null;index" json:"-"`
	RentalID       uint64    `gorm:"not null;index" json:"-"`
	PayerID        string    `gorm:"size:32;not null;index" json:"payer_id"`
	Amount         float64   `gorm:"type:decimal(20,6);not null" json:"amount"`
	Method         Method    `gorm:"size:16;not null" json:"method"`
	TransactionRef string    `gorm:"size:64;not null;uniqueIndex" json:"transaction_ref"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
