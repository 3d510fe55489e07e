package gormrepo

import (
	"context"

	"renthive-backend/internal/domain/listing"

	"gorm.io/gorm"
)

type ListingRepository struct{ db *gorm.DB }

func NewListingRepository(db *gorm.DB) *ListingRepository { return &ListingRepository{db: db} }

func (r *ListingRepository) Create(ctx context.Context, l listing.Listing) error {
	switch l.(type) {
	case *listing.Property, *listing.Vehicle:
		return r.db.WithContext(ctx).Create(l).Error
	}
	return listing.ErrUnknownKind
}

func (r *ListingRepository) Get(ctx context.Context, ref listing.Ref) (listing.Listing, error) {
	var dst listing.Listing
	switch ref.Kind {
	case listing.KindProperty:
		dst = &listing.Property{}
	case listing.KindVehicle:
		dst = &listing.Vehicle{}
	default:
		return nil, listing.ErrUnknownKind
	}
	if err := r.db.WithContext(ctx).Where("listing_id = ?", ref.ID).First(dst).Error; err != nil {
		return nil, notFound(err, listing.ErrNotFound)
	}
	return dst, nil
}

func (r *ListingRepository) SetStatus(ctx context.Context, ref listing.Ref, s listing.Status) error {
	var model any
	switch ref.Kind {
	case listing.KindProperty:
		model = &listing.Property{}
	case listing.KindVehicle:
		model = &listing.Vehicle{}
	default:
		return listing.ErrUnknownKind
	}
	res := r.db.WithContext(ctx).Model(model).Where("listing_id = ?", ref.ID).Update("status", s)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return listing.ErrNotFound
	}
	return nil
}

func (r *ListingRepository) ListByOwner(ctx context.Context, ownerID string) ([]listing.Listing, error) {
	var props []listing.Property
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id ASC").Find(&props).Error; err != nil {
		return nil, err
	}
	var vehicles []listing.Vehicle
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id ASC").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	out := make([]listing.Listing, 0, len(props)+len(vehicles))
	for i := range props {
		out = append(out, &props[i])
	}
	for i := range vehicles {
		out = append(out, &vehicles[i])
	}
	return out, nil
}
