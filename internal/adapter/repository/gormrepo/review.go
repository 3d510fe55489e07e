package gormrepo

import (
	"context"

	"renthive-backend/internal/domain/listing"
	reviewDomain "renthive-backend/internal/domain/review"

	"gorm.io/gorm"
)

type ReviewRepository struct{ db *gorm.DB }

func NewReviewRepository(db *gorm.DB) *ReviewRepository { return &ReviewRepository{db: db} }

func (r *ReviewRepository) Create(ctx context.Context, rv *reviewDomain.Review) error {
	err := r.db.WithContext(ctx).Create(rv).Error
	if isDuplicateKey(err) {
		return reviewDomain.ErrAlreadyExists
	}
	return err
}

func (r *ReviewRepository) Save(ctx context.Context, rv *reviewDomain.Review) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

func (r *ReviewRepository) GetByUserAndListing(ctx context.Context, userID string, ref listing.Ref) (*reviewDomain.Review, error) {
	var out reviewDomain.Review
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND listing_kind = ? AND listing_id = ?", userID, ref.Kind, ref.ID).
		Limit(1).
		Find(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, reviewDomain.ErrNotFound
	}
	return &out, nil
}

func (r *ReviewRepository) ListByListing(ctx context.Context, ref listing.Ref) ([]reviewDomain.Review, error) {
	var out []reviewDomain.Review
	err := r.db.WithContext(ctx).
		Where("listing_kind = ? AND listing_id = ?", ref.Kind, ref.ID).
		Order("updated_at DESC, id DESC").
		Find(&out).Error
	return out, err
}
