package event

import (
	"context"
	"time"
)

type Type string

const (
	ApplicationCreated   Type = "application.created"
	ApplicationUpdated   Type = "application.updated"
	ApplicationCancelled Type = "application.cancelled"
	ApplicationApproved  Type = "application.approved"
	ApplicationRejected  Type = "application.rejected"
	ApplicationPaid      Type = "application.paid"
	RentalCompleted      Type = "rental.completed"
)

// Event is a status change pushed to one user's live sessions.
type Event struct {
	Type          Type      `json:"type"`
	RecipientID   string    `json:"recipient_id"`
	ApplicationID string    `json:"application_id,omitempty"`
	RentalID      string    `json:"rental_id,omitempty"`
	Status        string    `json:"status,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	At            time.Time `json:"at"`
}

// Publisher delivers events best-effort. Callers log errors and move on.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
