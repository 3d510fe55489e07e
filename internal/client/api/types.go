package api

import (
	"time"

	"renthive-backend/internal/domain/application"
	"renthive-backend/internal/domain/listing"
)

type Listing struct {
	ListingType     string   `json:"listing_type"`
	ListingID       string   `json:"listing_id"`
	OwnerID         string   `json:"owner_id"`
	Title           string   `json:"title"`
	Location        string   `json:"location"`
	Images          []string `json:"images"`
	SecurityDeposit float64  `json:"security_deposit"`
	Status          string   `json:"status"`
	RentPrice       float64  `json:"rent_price"`
	DailyRate       float64  `json:"daily_rate"`
	WeeklyRate      float64  `json:"weekly_rate"`
	MonthlyRate     float64  `json:"monthly_rate"`
}

// Domain converts the wire listing into the tagged union the pricing calculator takes.
func (l *Listing) Domain() (listing.Listing, error) {
	kind, err := listing.ParseKind(l.ListingType)
	if err != nil {
		return nil, err
	}
	base := listing.Base{
		ListingID:       l.ListingID,
		OwnerID:         l.OwnerID,
		Title:           l.Title,
		Location:        l.Location,
		Images:          l.Images,
		SecurityDeposit: l.SecurityDeposit,
		Status:          listing.Status(l.Status),
	}
	if kind == listing.KindProperty {
		return &listing.Property{Base: base, RentPrice: l.RentPrice}, nil
	}
	return &listing.Vehicle{Base: base, DailyRate: l.DailyRate, WeeklyRate: l.WeeklyRate, MonthlyRate: l.MonthlyRate}, nil
}

type Quote struct {
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Duration   int     `json:"duration"`
	RateTier   string  `json:"rate_tier"`
	BaseCost   float64 `json:"base_cost"`
	ServiceFee float64 `json:"service_fee"`
	Tax        float64 `json:"tax"`
	Deposit    float64 `json:"deposit"`
	GrandTotal float64 `json:"grand_total"`
}

// Application mirrors the server DTO. Status decoding folds the legacy
// "available" value into pending.
type Application struct {
	ApplicationID   string             `json:"application_id"`
	ListingType     string             `json:"listing_type"`
	ListingID       string             `json:"listing_id"`
	RenterID        string             `json:"renter_id"`
	OwnerID         string             `json:"owner_id"`
	StartDate       string             `json:"start_date"`
	EndDate         string             `json:"end_date"`
	Duration        int                `json:"duration"`
	BaseCost        float64            `json:"base_cost"`
	ServiceFee      float64            `json:"service_fee"`
	Tax             float64            `json:"tax"`
	Deposit         float64            `json:"deposit"`
	GrandTotal      float64            `json:"grand_total"`
	Status          application.Status `json:"status"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
	Version         int64              `json:"version"`
	ListingTitle    string             `json:"listing_title"`
	RenterName      string             `json:"renter_name,omitempty"`
	RenterEmail     string             `json:"renter_email,omitempty"`
	DecidedAt       *time.Time         `json:"decided_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

type CreateApplication struct {
	ListingType string `json:"listing_type"`
	ListingID   string `json:"listing_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type Receipt struct {
	RentalID       string    `json:"rental_id"`
	ApplicationID  string    `json:"application_id"`
	Status         string    `json:"status"`
	PaymentID      string    `json:"payment_id"`
	TransactionRef string    `json:"transaction_ref"`
	Amount         float64   `json:"amount"`
	Method         string    `json:"method"`
	PaidAt         time.Time `json:"paid_at"`
}
