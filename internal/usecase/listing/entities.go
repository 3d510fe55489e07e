package listing

import (
	"time"

	domain "renthive-backend/internal/domain/listing"
	"renthive-backend/internal/domain/pricing"
)

type CommonInput struct {
	Title           string   `json:"title" validate:"required,max=255"`
	Location        string   `json:"location" validate:"max=255"`
	Images          []string `json:"images" validate:"max=20,dive,required"`
	SecurityDeposit float64  `json:"security_deposit" validate:"gte=0,dec2"`
}

type CreatePropertyInput struct {
	CommonInput
	RentPrice float64 `json:"rent_price" validate:"required,gt=0,dec2"`
}

type CreateVehicleInput struct {
	CommonInput
	DailyRate   float64 `json:"daily_rate" validate:"required,gt=0,dec2"`
	WeeklyRate  float64 `json:"weekly_rate" validate:"gte=0,dec2"`
	MonthlyRate float64 `json:"monthly_rate" validate:"gte=0,dec2"`
}

type ListingDTO struct {
	ListingType     string    `json:"listing_type"`
	ListingID       string    `json:"listing_id"`
	OwnerID         string    `json:"owner_id"`
	Title           string    `json:"title"`
	Location        string    `json:"location"`
	Images          []string  `json:"images"`
	SecurityDeposit float64   `json:"security_deposit"`
	Status          string    `json:"status"`
	RentPrice       float64   `json:"rent_price,omitempty"`
	DailyRate       float64   `json:"daily_rate,omitempty"`
	WeeklyRate      float64   `json:"weekly_rate,omitempty"`
	MonthlyRate     float64   `json:"monthly_rate,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type QuoteDTO struct {
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

func toDTO(l domain.Listing) *ListingDTO {
	var b *domain.Base
	dto := &ListingDTO{}
	switch l := l.(type) {
	case *domain.Property:
		b = &l.Base
		dto.RentPrice = l.RentPrice
	case *domain.Vehicle:
		b = &l.Base
		dto.DailyRate, dto.WeeklyRate, dto.MonthlyRate = l.DailyRate, l.WeeklyRate, l.MonthlyRate
	}
	ref := l.Ref()
	dto.ListingType = string(ref.Kind)
	dto.ListingID = ref.ID
	dto.OwnerID = b.OwnerID
	dto.Title = b.Title
	dto.Location = b.Location
	dto.Images = b.Images
	dto.SecurityDeposit = b.SecurityDeposit
	dto.Status = string(b.Status)
	dto.CreatedAt = b.CreatedAt
	return dto
}

func toQuoteDTO(r pricing.DateRange, q pricing.Quote) *QuoteDTO {
	dto := &QuoteDTO{
		Duration:   q.Duration,
		RateTier:   string(q.Tier),
		BaseCost:   q.BaseCost.InexactFloat64(),
		ServiceFee: q.ServiceFee.InexactFloat64(),
		Tax:        q.Tax.InexactFloat64(),
		Deposit:    q.Deposit.InexactFloat64(),
		GrandTotal: q.GrandTotal.InexactFloat64(),
	}
	if !r.Start.IsZero() {
		dto.StartDate = r.Start.Format(pricing.DateLayout)
	}
	if !r.End.IsZero() {
		dto.EndDate = r.End.Format(pricing.DateLayout)
	}
	return dto
}
