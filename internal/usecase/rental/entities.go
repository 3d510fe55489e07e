package rental

import (
	"time"

	"renthive-backend/internal/domain/pricing"
	domain "renthive-backend/internal/domain/rental"
)

type RentalDTO struct {
	RentalID      string     `json:"rental_id"`
	ApplicationID string     `json:"application_id"`
	ListingType   string     `json:"listing_type"`
	ListingID     string     `json:"listing_id"`
	RenterID      string     `json:"renter_id"`
	OwnerID       string     `json:"owner_id"`
	StartDate     string     `json:"start_date"`
	EndDate       string     `json:"end_date"`
	TotalAmount   float64    `json:"total_amount"`
	Status        string     `json:"status"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toDTO(r *domain.Rental) RentalDTO {
	return RentalDTO{
		RentalID:      r.RentalID,
		ApplicationID: r.ApplicationRef,
		ListingType:   string(r.ListingKind),
		ListingID:     r.ListingID,
		RenterID:      r.RenterID,
		OwnerID:       r.OwnerID,
		StartDate:     r.StartDate.Format(pricing.DateLayout),
		EndDate:       r.EndDate.Format(pricing.DateLayout),
		TotalAmount:   r.TotalAmount,
		Status:        string(r.Status),
		CompletedAt:   r.CompletedAt,
		CreatedAt:     r.CreatedAt,
	}
}
