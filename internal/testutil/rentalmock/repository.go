package rentalmock

import (
	"context"

	"renthive-backend/internal/domain/listing"
	domain "renthive-backend/internal/domain/rental"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn             func(ctx context.Context, r *domain.Rental) error
	GetByRentalIDFn      func(ctx context.Context, rentalID string) (*domain.Rental, error)
	GetByApplicationIDFn func(ctx context.Context, applicationNumericID uint64) (*domain.Rental, error)
	SaveFn               func(ctx context.Context, r *domain.Rental) error
	ListByRenterFn       func(ctx context.Context, renterID string) ([]domain.Rental, error)
	ListByOwnerFn        func(ctx context.Context, ownerID string) ([]domain.Rental, error)
	HasCompletedFn       func(ctx context.Context, renterID string, ref listing.Ref) (bool, error)
	CountActiveFn        func(ctx context.Context, ref listing.Ref) (int64, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Rental) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRentalID(ctx context.Context, rentalID string) (*domain.Rental, error) {
	if m.GetByRentalIDFn != nil {
		return m.GetByRentalIDFn(ctx, rentalID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationNumericID uint64) (*domain.Rental, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationNumericID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, r *domain.Rental) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) ListByRenter(ctx context.Context, renterID string) ([]domain.Rental, error) {
	if m.ListByRenterFn != nil {
		return m.ListByRenterFn(ctx, renterID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Rental, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	return nil, context.Canceled
}

func (m *Repo) HasCompleted(ctx context.Context, renterID string, ref listing.Ref) (bool, error) {
	if m.HasCompletedFn != nil {
		return m.HasCompletedFn(ctx, renterID, ref)
	}
	return false, context.Canceled
}

func (m *Repo) CountActive(ctx context.Context, ref listing.Ref) (int64, error) {
	if m.CountActiveFn != nil {
		return m.CountActiveFn(ctx, ref)
	}
	return 0, nil
}
