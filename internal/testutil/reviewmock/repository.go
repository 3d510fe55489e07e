package reviewmock

import (
	"context"

	"renthive-backend/internal/domain/listing"
	domain "renthive-backend/internal/domain/review"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn              func(ctx context.Context, r *domain.Review) error
	SaveFn                func(ctx context.Context, r *domain.Review) error
	GetByUserAndListingFn func(ctx context.Context, userID string, ref listing.Ref) (*domain.Review, error)
	ListByListingFn       func(ctx context.Context, ref listing.Ref) ([]domain.Review, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Review) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.Review) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByUserAndListing(ctx context.Context, userID string, ref listing.Ref) (*domain.Review, error) {
	if m.GetByUserAndListingFn != nil {
		return m.GetByUserAndListingFn(ctx, userID, ref)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByListing(ctx context.Context, ref listing.Ref) ([]domain.Review, error) {
	if m.ListByListingFn != nil {
		return m.ListByListingFn(ctx, ref)
	}
	return nil, context.Canceled
}
