package listingmock

import (
	"context"

	domain "renthive-backend/internal/domain/listing"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn      func(ctx context.Context, l domain.Listing) error
	GetFn         func(ctx context.Context, ref domain.Ref) (domain.Listing, error)
	SetStatusFn   func(ctx context.Context, ref domain.Ref, s domain.Status) error
	ListByOwnerFn func(ctx context.Context, ownerID string) ([]domain.Listing, error)
}

func (m *Repo) Create(ctx context.Context, l domain.Listing) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Get(ctx context.Context, ref domain.Ref) (domain.Listing, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, ref)
	}
	return nil, context.Canceled
}

func (m *Repo) SetStatus(ctx context.Context, ref domain.Ref, s domain.Status) error {
	if m.SetStatusFn != nil {
		return m.SetStatusFn(ctx, ref, s)
	}
	return nil
}

func (m *Repo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Listing, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	return nil, context.Canceled
}
