package uow

import (
	"context"

	"renthive-backend/internal/domain/application"
	"renthive-backend/internal/domain/listing"
	"renthive-backend/internal/domain/payment"
	"renthive-backend/internal/domain/rental"
	"renthive-backend/internal/domain/review"
)

// Repos are bound to the same transaction.
type Repos struct {
	Applications application.Repository
	Listings     listing.Repository
	Rentals      rental.Repository
	Payments     payment.Repository
	Reviews      review.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: load the application first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
}
