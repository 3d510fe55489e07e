package rental

import (
	"fmt"
	"time"

	"renthive-backend/internal/domain/apperr"
	"renthive-backend/internal/domain/listing"
)

var (
	ErrNotFound      = fmt.Errorf("%w: rental not found", apperr.ErrNotFound)
	ErrAlreadyExists = fmt.Errorf("%w: rental already exists for application", apperr.ErrConflict)
	ErrNotActive     = fmt.Errorf("%w: rental is not active", apperr.ErrConflict)
	ErrNotOwner      = fmt.Errorf("%w: rental belongs to another owner", apperr.ErrForbidden)
	ErrListingBusy   = fmt.Errorf("%w: listing is not available for rent", apperr.ErrConflict)
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Table: rentals. One row per paid application (unique application FK).
type Rental struct {
	ID             uint64       `gorm:"primaryKey;column:id" json:"-"`
	RentalID       string       `gorm:"size:32;uniqueIndex;not null" json:"rental_id"`
	ApplicationID  uint64       `gorm:"not null;uniqueIndex" json:"-"`
	ApplicationRef string       `gorm:"size:32;not null" json:"application_id"`
	ListingKind    listing.Kind `gorm:"size:16;not null;index:idx_rentals_listing" json:"listing_type"`
	ListingID      string       `gorm:"size:32;not null;index:idx_rentals_listing" json:"listing_id"`
	RenterID       string       `gorm:"size:32;not null;index" json:"renter_id"`
	OwnerID        string       `gorm:"size:32;not null;index" json:"owner_id"`
	StartDate      time.Time    `gorm:"not null" json:"start_date"`
	EndDate        time.Time    `gorm:"not null" json:"end_date"`
	TotalAmount    float64      `gorm:"type:decimal(20,6);not null" json:"total_amount"`
	Status         Status       `gorm:"size:16;not null;index" json:"status"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Rental) TableName() string { return "rentals" }

func (r *Rental) ListingRef() listing.Ref { return listing.Ref{Kind: r.ListingKind, ID: r.ListingID} }
