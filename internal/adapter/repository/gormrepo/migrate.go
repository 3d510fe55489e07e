package gormrepo

import (
	"renthive-backend/internal/domain/application"
	"renthive-backend/internal/domain/listing"
	"renthive-backend/internal/domain/payment"
	"renthive-backend/internal/domain/rental"
	"renthive-backend/internal/domain/review"

	"gorm.io/gorm"
)

// Models lists every table the service owns.
func Models() []any {
	return []any{
		&listing.Property{},
		&listing.Vehicle{},
		&application.Application{},
		&rental.Rental{},
		&payment.Payment{},
		&review.Review{},
	}
}

func Migrate(db *gorm.DB) error { return db.AutoMigrate(Models()...) }
