package payment

import "time"

type PayInput struct {
	Method string `json:"method" validate:"required,oneof=wallet card"`
}

// ReceiptDTO is what the renter gets back after a successful payment.
type ReceiptDTO struct {
	RentalID       string    `json:"rental_id"`
	ApplicationID  string    `json:"application_id"`
	Status         string    `json:"status"`
	PaymentID      string    `json:"payment_id"`
	TransactionRef string    `json:"transaction_ref"`
	Amount         float64   `json:"amount"`
	Method         string    `json:"method"`
	PaidAt         time.Time `json:"paid_at"`
}
