package application

import (
	"fmt"
	"time"

	"renthive-backend/internal/domain/apperr"
	"renthive-backend/internal/domain/listing"
)

var (
	ErrNotFound = fmt.Errorf("%w: application not found", apperr.ErrNotFound)

	ErrInvalidDateRange   = fmt.Errorf("%w: end_date must be after start_date", apperr.ErrValidation)
	ErrListingUnavailable = fmt.Errorf("%w: listing is not available for rent", apperr.ErrValidation)

	ErrNotRenter   = fmt.Errorf("%w: application belongs to another renter", apperr.ErrForbidden)
	ErrNotOwner    = fmt.Errorf("%w: listing belongs to another owner", apperr.ErrForbidden)
	ErrOwnListing  = fmt.Errorf("%w: cannot apply to your own listing", apperr.ErrForbidden)
	ErrNotEditable = fmt.Errorf("%w: only pending applications can be changed", apperr.ErrForbidden)

	ErrAlreadyDecided    = fmt.Errorf("%w: application already decided", apperr.ErrConflict)
	ErrNotApproved       = fmt.Errorf("%w: application is not approved", apperr.ErrConflict)
	ErrNotActive         = fmt.Errorf("%w: application is not active", apperr.ErrConflict)
	ErrDuplicatePending  = fmt.Errorf("%w: a pending application for this listing already exists", apperr.ErrConflict)
	ErrStaleVersion      = fmt.Errorf("%w: application was modified concurrently", apperr.ErrConflict)
	ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", apperr.ErrConflict)
)

// Decision is the owner's verdict on a pending application.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Table: applications
type Application struct {
	ID            uint64       `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID string       `gorm:"size:32;uniqueIndex;not null" json:"application_id"`
	ListingKind   listing.Kind `gorm:"size:16;not null;index:idx_applications_listing" json:"listing_type"`
	ListingID     string       `gorm:"size:32;not null;index:idx_applications_listing" json:"listing_id"`
	RenterID      string       `gorm:"size:32;not null;index" json:"renter_id"`
	OwnerID       string       `gorm:"size:32;not null;index" json:"owner_id"`

	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	Duration  int       `gorm:"not null" json:"duration"`

	RateTier   string  `gorm:"size:16" json:"rate_tier"`
	BaseCost   float64 `gorm:"type:decimal(20,6);not null" json:"base_cost"`
	ServiceFee float64 `gorm:"type:decimal(20,6);not null" json:"service_fee"`
	Tax        float64 `gorm:"type:decimal(20,6);not null" json:"tax"`
	Deposit    float64 `gorm:"type:decimal(20,6);not null" json:"deposit"`
	GrandTotal float64 `gorm:"type:decimal(20,6);not null" json:"grand_total"`

	Status          Status     `gorm:"size:16;not null;index" json:"status"`
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason,omitempty"`
	Version         int64      `gorm:"not null;default:1" json:"version"`
	StatusUpdatedAt time.Time  `json:"status_updated_at"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`

	// PendingKey is set only while pending; its unique index allows one open
	// application per renter and listing.
	PendingKey *string `gorm:"size:96;uniqueIndex" json:"-"`

	// listing snapshot and renter contact, shown on the owner's applicant cards
	ListingTitle    string   `gorm:"size:255" json:"listing_title"`
	ListingLocation string   `gorm:"size:255" json:"listing_location"`
	ListingImages   []string `gorm:"serializer:json;type:text" json:"listing_images"`
	RenterName      string   `gorm:"size:255" json:"renter_name"`
	RenterEmail     string   `gorm:"size:255" json:"renter_email"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string { return "applications" }

func (a *Application) ListingRef() listing.Ref {
	return listing.Ref{Kind: a.ListingKind, ID: a.ListingID}
}

// MoveTo sets the new status after checking the lifecycle edge.
func (a *Application) MoveTo(to Status, at time.Time) error {
	if !CanTransition(a.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, to)
	}
	a.Status = to
	a.StatusUpdatedAt = at
	return nil
}
