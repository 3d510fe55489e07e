package review

import (
	"context"

	"renthive-backend/internal/domain/listing"
)

type Repository interface {
	Create(ctx context.Context, r *Review) error
	Save(ctx context.Context, r *Review) error
	GetByUserAndListing(ctx context.Context, userID string, ref listing.Ref) (*Review, error)
	ListByListing(ctx context.Context, ref listing.Ref) ([]Review, error)
}
