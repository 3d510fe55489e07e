package application

import (
	"time"

	domain "renthive-backend/internal/domain/application"
)

type CreateInput struct {
	ListingType string `json:"listing_type" validate:"required,listingtype"`
	ListingID   string `json:"listing_id" validate:"required,hex32"`
	StartDate   string `json:"start_date" validate:"required,date"`
	EndDate     string `json:"end_date" validate:"required,date"`
}

type UpdateInput struct {
	StartDate string `json:"start_date" validate:"required,date"`
	EndDate   string `json:"end_date" validate:"required,date"`
}

type DecideInput struct {
	Decision domain.Decision `json:"-"`
	Reason   string          `json:"reason" validate:"max=500"`
}

type ApplicationDTO struct {
	ApplicationID   string     `json:"application_id"`
	ListingType     string     `json:"listing_type"`
	ListingID       string     `json:"listing_id"`
	RenterID        string     `json:"renter_id"`
	OwnerID         string     `json:"owner_id"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	Duration        int        `json:"duration"`
	RateTier        string     `json:"rate_tier"`
	BaseCost        float64    `json:"base_cost"`
	ServiceFee      float64    `json:"service_fee"`
	Tax             float64    `json:"tax"`
	Deposit         float64    `json:"deposit"`
	GrandTotal      float64    `json:"grand_total"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	Version         int64      `json:"version"`
	ListingTitle    string     `json:"listing_title"`
	ListingLocation string     `json:"listing_location"`
	ListingImages   []string   `json:"listing_images"`
	RenterName      string     `json:"renter_name,omitempty"`
	RenterEmail     string     `json:"renter_email,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
