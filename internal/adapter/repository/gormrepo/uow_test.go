package gormrepo

import (
	"context"
	"errors"
	"testing"

	"renthive-backend/internal/domain/application"
	"renthive-backend/internal/domain/listing"
	"renthive-backend/internal/domain/rental"
	"renthive-backend/internal/domain/uow"
	"renthive-backend/pkg/id"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	appRepo := NewApplicationRepository(db)
	rentalRepo := NewRentalRepository(db)

	a := makeApplication(id.NewID32(), id.NewID32(), listing.Ref{Kind: listing.KindVehicle, ID: id.NewID32()})
	var rentalID string
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		rt := makeRental(a.ID, a.RenterID, a.ListingRef())
		rentalID = rt.RentalID
		return r.Rentals.Create(ctx, rt)
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	if _, err := appRepo.GetByApplicationID(ctx, a.ApplicationID); err != nil {
		t.Fatalf("application not visible after commit: %v", err)
	}
	if _, err := rentalRepo.GetByRentalID(ctx, rentalID); err != nil {
		t.Fatalf("rental not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	appRepo := NewApplicationRepository(db)
	sentinel := errors.New("boom")

	a := makeApplication(id.NewID32(), id.NewID32(), listing.Ref{Kind: listing.KindVehicle, ID: id.NewID32()})
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		return sentinel // force rollback
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("want sentinel, got %v", err)
	}
	if _, err := appRepo.GetByApplicationID(ctx, a.ApplicationID); !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected application absent after rollback, got %v", err)
	}
}

func TestGormUoW_WithinApplicationTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	appRepo := NewApplicationRepository(db)
	rentalRepo := NewRentalRepository(db)

	seed := makeApplication(id.NewID32(), id.NewID32(), listing.Ref{Kind: listing.KindVehicle, ID: id.NewID32()})
	seed.Status = application.StatusApproved
	if err := appRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := guow.WithinApplicationTx(ctx, seed.ApplicationID, func(r uow.Repos, a *application.Application) error {
		if a.ApplicationID != seed.ApplicationID || a.Status != application.StatusApproved {
			t.Fatalf("unexpected application passed to fn: %+v", a)
		}
		if err := a.MoveTo(application.StatusActive, a.StatusUpdatedAt); err != nil {
			return err
		}
		if err := r.Applications.Update(ctx, a); err != nil {
			return err
		}
		return r.Rentals.Create(ctx, makeRental(a.ID, a.RenterID, a.ListingRef()))
	})
	if err != nil {
		t.Fatalf("WithinApplicationTx commit err: %v", err)
	}

	got, _ := appRepo.GetByApplicationID(ctx, seed.ApplicationID)
	if got.Status != application.StatusActive || got.Version != 2 {
		t.Fatalf("application not updated: %+v", got)
	}
	if _, err := rentalRepo.GetByApplicationID(ctx, seed.ID); err != nil {
		t.Fatalf("rental not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinApplicationTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	appRepo := NewApplicationRepository(db)
	rentalRepo := NewRentalRepository(db)

	seed := makeApplication(id.NewID32(), id.NewID32(), listing.Ref{Kind: listing.KindVehicle, ID: id.NewID32()})
	seed.Status = application.StatusApproved
	if err := appRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sentinel := errors.New("stop")

	_ = guow.WithinApplicationTx(ctx, seed.ApplicationID, func(r uow.Repos, a *application.Application) error {
		if err := r.Rentals.Create(ctx, makeRental(a.ID, a.RenterID, a.ListingRef())); err != nil {
			return err
		}
		a.Status = application.StatusActive
		if err := r.Applications.Update(ctx, a); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	got, err := appRepo.GetByApplicationID(ctx, seed.ApplicationID)
	if err != nil {
		t.Fatalf("post-rollback get: %v", err)
	}
	if got.Status != application.StatusApproved || got.Version != 1 {
		t.Fatalf("expected approved v1 after rollback, got %s v%d", got.Status, got.Version)
	}
	if _, err := rentalRepo.GetByApplicationID(ctx, seed.ID); !errors.Is(err, rental.ErrNotFound) {
		t.Fatalf("expected rental absent after rollback, got %v", err)
	}
}

func TestGormUoW_WithinApplicationTx_NotFound(t *testing.T) {
	guow := NewGormUoW(openTestDB(t))

	err := guow.WithinApplicationTx(context.Background(), "nope", func(uow.Repos, *application.Application) error {
		t.Fatalf("callback should not be called when application missing")
		return nil
	})
	if !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
