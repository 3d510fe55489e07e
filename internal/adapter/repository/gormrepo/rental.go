package gormrepo

import (
	"context"
	"errors"

	"renthive-backend/internal/domain/listing"
	rentalDomain "renthive-backend/internal/domain/rental"

	"gorm.io/gorm"
)

type RentalRepository struct{ db *gorm.DB }

func NewRentalRepository(db *gorm.DB) *RentalRepository { return &RentalRepository{db: db} }

func (r *RentalRepository) Create(ctx context.Context, rt *rentalDomain.Rental) error {
	err := r.db.WithContext(ctx).Create(rt).Error
	if isDuplicateKey(err) {
		return rentalDomain.ErrAlreadyExists
	}
	return err
}

func (r *RentalRepository) GetByRentalID(ctx context.Context, rentalID string) (*rentalDomain.Rental, error) {
	var out rentalDomain.Rental
	if err := r.db.WithContext(ctx).Where("rental_id = ?", rentalID).First(&out).Error; err != nil {
		return nil, notFound(err, rentalDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *RentalRepository) GetByApplicationID(ctx context.Context, applicationNumericID uint64) (*rentalDomain.Rental, error) {
	var out rentalDomain.Rental
	if err := r.db.WithContext(ctx).Where("application_id = ?", applicationNumericID).First(&out).Error; err != nil {
		return nil, notFound(err, rentalDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *RentalRepository) Save(ctx context.Context, rt *rentalDomain.Rental) error {
	return r.db.WithContext(ctx).Save(rt).Error
}

func (r *RentalRepository) ListByRenter(ctx context.Context, renterID string) ([]rentalDomain.Rental, error) {
	var out []rentalDomain.Rental
	err := r.db.WithContext(ctx).Where("renter_id = ?", renterID).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *RentalRepository) ListByOwner(ctx context.Context, ownerID string) ([]rentalDomain.Rental, error) {
	var out []rentalDomain.Rental
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *RentalRepository) CountActive(ctx context.Context, ref listing.Ref) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&rentalDomain.Rental{}).
		Where("listing_kind = ? AND listing_id = ? AND status = ?", ref.Kind, ref.ID, rentalDomain.StatusActive).
		Count(&n).Error
	return n, err
}

func (r *RentalRepository) HasCompleted(ctx context.Context, renterID string, ref listing.Ref) (bool, error) {
	var out rentalDomain.Rental
	err := r.db.WithContext(ctx).
		Select("id").
		Where("renter_id = ? AND listing_kind = ? AND listing_id = ? AND status = ?",
			renterID, ref.Kind, ref.ID, rentalDomain.StatusCompleted).
		Take(&out).Error
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	}
	return false, err
}
