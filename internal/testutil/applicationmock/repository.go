package applicationmock

import (
	"context"

	domain "renthive-backend/internal/domain/application"
	"renthive-backend/internal/domain/listing"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset writers are no-ops; unset readers return context.Canceled.
type Repo struct {
	CreateFn                       func(ctx context.Context, a *domain.Application) error
	GetByApplicationIDFn           func(ctx context.Context, applicationID string) (*domain.Application, error)
	UpdateFn                       func(ctx context.Context, a *domain.Application) error
	GetPendingByRenterAndListingFn func(ctx context.Context, renterID string, ref listing.Ref) (*domain.Application, error)
	ListByRenterFn                 func(ctx context.Context, renterID string, f domain.ListFilter) ([]domain.Application, error)
	ListByOwnerFn                  func(ctx context.Context, ownerID string) ([]domain.Application, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) Update(ctx context.Context, a *domain.Application) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, a)
	}
	a.Version++
	return nil
}

func (m *Repo) GetPendingByRenterAndListing(ctx context.Context, renterID string, ref listing.Ref) (*domain.Application, error) {
	if m.GetPendingByRenterAndListingFn != nil {
		return m.GetPendingByRenterAndListingFn(ctx, renterID, ref)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByRenter(ctx context.Context, renterID string, f domain.ListFilter) ([]domain.Application, error) {
	if m.ListByRenterFn != nil {
		return m.ListByRenterFn(ctx, renterID, f)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Application, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	return nil, context.Canceled
}
