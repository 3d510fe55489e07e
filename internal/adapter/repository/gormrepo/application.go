package gormrepo

import (
	"context"
	"time"

	appDomain "renthive-backend/internal/domain/application"
	"renthive-backend/internal/domain/listing"

	"gorm.io/gorm"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	if a.Version == 0 {
		a.Version = 1
	}
	a.PendingKey = pendingKey(a)
	err := r.db.WithContext(ctx).Create(a).Error
	if isDuplicateKey(err) && a.PendingKey != nil {
		return appDomain.ErrDuplicatePending
	}
	return err
}

// pendingKey is NULL for every status but pending; unique indexes ignore NULLs.
func pendingKey(a *appDomain.Application) *string {
	if a.Status != appDomain.StatusPending {
		return nil
	}
	k := a.RenterID + ":" + string(a.ListingKind) + ":" + a.ListingID
	return &k
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	if err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out).Error; err != nil {
		return nil, notFound(err, appDomain.ErrNotFound)
	}
	return &out, nil
}

// Update is a compare-and-swap on the version column.
func (r *ApplicationRepository) Update(ctx context.Context, a *appDomain.Application) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("id = ? AND version = ?", a.ID, a.Version).
		Updates(map[string]any{
			"start_date":        a.StartDate,
			"end_date":          a.EndDate,
			"duration":          a.Duration,
			"rate_tier":         a.RateTier,
			"base_cost":         a.BaseCost,
			"service_fee":       a.ServiceFee,
			"tax":               a.Tax,
			"deposit":           a.Deposit,
			"grand_total":       a.GrandTotal,
			"status":            a.Status,
			"pending_key":       pendingKey(a),
			"rejection_reason":  a.RejectionReason,
			"status_updated_at": a.StatusUpdatedAt,
			"decided_at":        a.DecidedAt,
			"version":           gorm.Expr("version + 1"),
			"updated_at":        now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appDomain.ErrStaleVersion
	}
	a.PendingKey = pendingKey(a)
	a.Version++
	a.UpdatedAt = now
	return nil
}

func (r *ApplicationRepository) GetPendingByRenterAndListing(ctx context.Context, renterID string, ref listing.Ref) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).
		Where("renter_id = ? AND listing_kind = ? AND listing_id = ? AND status IN ?",
			renterID, ref.Kind, ref.ID, []string{string(appDomain.StatusPending), "available"}).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, appDomain.ErrNotFound
	}
	return &out, nil
}

func (r *ApplicationRepository) ListByRenter(ctx context.Context, renterID string, f appDomain.ListFilter) ([]appDomain.Application, error) {
	q := r.db.WithContext(ctx).Where("renter_id = ?", renterID)
	if !f.IncludeCancelled {
		q = q.Where("status <> ?", appDomain.StatusCancelled)
	}
	var out []appDomain.Application
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *ApplicationRepository) ListByOwner(ctx context.Context, ownerID string) ([]appDomain.Application, error) {
	var out []appDomain.Application
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
