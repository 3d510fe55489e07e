package review

import (
	"fmt"
	"time"

	"renthive-backend/internal/domain/apperr"
	"renthive-backend/internal/domain/listing"
)

var (
	ErrNotFound      = fmt.Errorf("%w: review not found", apperr.ErrNotFound)
	ErrInvalidRating = fmt.Errorf("%w: rating must be between 1 and 5", apperr.ErrValidation)
	ErrNotEligible   = fmt.Errorf("%w: only renters with a completed rental can review", apperr.ErrForbidden)
	ErrAlreadyExists = fmt.Errorf("%w: review already exists", apperr.ErrConflict)
)

// Table: reviews. One row per (user, listing).
type Review struct {
	ID          uint64       `gorm:"primaryKey;column:id" json:"-"`
	ReviewID    string       `gorm:"size:32;uniqueIndex;not null" json:"review_id"`
	ListingKind listing.Kind `gorm:"size:16;not null;uniqueIndex:ux_reviews_user_listing" json:"listing_type"`
	ListingID   string       `gorm:"size:32;not null;uniqueIndex:ux_reviews_user_listing" json:"listing_id"`
	UserID      string       `gorm:"size:32;not null;uniqueIndex:ux_reviews_user_listing" json:"user_id"`
	UserName    string       `gorm:"size:255" json:"user_name"`
	Rating      int          `gorm:"not null" json:"rating"`
	Comment     string       `gorm:"type:text" json:"comment"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Review) TableName() string { return "reviews" }
