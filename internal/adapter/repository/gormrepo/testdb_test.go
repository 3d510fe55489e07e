package gormrepo

import (
	"testing"
	"time"

	"renthive-backend/internal/domain/application"
	"renthive-backend/internal/domain/listing"
	"renthive-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with the full schema. One connection keeps
// every statement (tx or not) on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeVehicle(ownerID string) *listing.Vehicle {
	return &listing.Vehicle{
		Base: listing.Base{
			ListingID: id.NewID32(),
			OwnerID:   ownerID,
			Title:     "Honda CB350",
			Location:  "Pokhara",
			Images:    []string{"cb350.jpg"},
			Status:    listing.StatusAvailable,
		},
		DailyRate: 1000,
	}
}

func makeApplication(renterID, ownerID string, ref listing.Ref) *application.Application {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &application.Application{
		ApplicationID:   id.NewID32(),
		ListingKind:     ref.Kind,
		ListingID:       ref.ID,
		RenterID:        renterID,
		OwnerID:         ownerID,
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, 3),
		Duration:        3,
		RateTier:        "daily",
		BaseCost:        3000,
		ServiceFee:      150,
		Tax:             390,
		GrandTotal:      3540,
		Status:          application.StatusPending,
		StatusUpdatedAt: time.Now().UTC(),
	}
}
