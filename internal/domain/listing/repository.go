package listing

import "context"

type Repository interface {
	// Create inserts a *Property or *Vehicle into its table.
	Create(ctx context.Context, l Listing) error
	Get(ctx context.Context, ref Ref) (Listing, error)
	SetStatus(ctx context.Context, ref Ref, s Status) error
	ListByOwner(ctx context.Context, ownerID string) ([]Listing, error)
}
