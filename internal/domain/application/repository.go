package application

import (
	"context"

	"renthive-backend/internal/domain/listing"
)

type ListFilter struct {
	IncludeCancelled bool
}

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)
	// Update writes the mutable columns only if the stored version still equals
	// a.Version, then bumps a.Version. Otherwise ErrStaleVersion.
	Update(ctx context.Context, a *Application) error
	GetPendingByRenterAndListing(ctx context.Context, renterID string, ref listing.Ref) (*Application, error)
	ListByRenter(ctx context.Context, renterID string, f ListFilter) ([]Application, error)
	// ListByOwner returns every application on the owner's listings in insertion order.
	ListByOwner(ctx context.Context, ownerID string) ([]Application, error)
}
