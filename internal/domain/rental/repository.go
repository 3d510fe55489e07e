package rental

import (
	"context"

	"renthive-backend/internal/domain/listing"
)

type Repository interface {
	// Create fails with ErrAlreadyExists when the application already has a rental.
	Create(ctx context.Context, r *Rental) error
	GetByRentalID(ctx context.Context, rentalID string) (*Rental, error)
	GetByApplicationID(ctx context.Context, applicationNumericID uint64) (*Rental, error)
	Save(ctx context.Context, r *Rental) error
	ListByRenter(ctx context.Context, renterID string) ([]Rental, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Rental, error)
	HasCompleted(ctx context.Context, renterID string, ref listing.Ref) (bool, error)
	// CountActive counts active rentals of a listing.
	CountActive(ctx context.Context, ref listing.Ref) (int64, error)
}
