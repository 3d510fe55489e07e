package payment

import (
	"context"
	"errors"
	"testing"

	"renthive-backend/internal/domain/apperr"
	domainApp "renthive-backend/internal/domain/application"
	"renthive-backend/internal/domain/auth"
	"renthive-backend/internal/domain/event"
	"renthive-backend/internal/domain/listing"
	domainPayment "renthive-backend/internal/domain/payment"
	"renthive-backend/internal/domain/rental"
	"renthive-backend/internal/domain/uow"
	"renthive-backend/internal/testutil/applicationmock"
	"renthive-backend/internal/testutil/eventmock"
	"renthive-backend/internal/testutil/listingmock"
	"renthive-backend/internal/testutil/paymentmock"
	"renthive-backend/internal/testutil/rentalmock"
	"renthive-backend/internal/testutil/uowmock"
)

const (
	renterID = "0000000000000000000000000000000b"
	ownerID  = "0000000000000000000000000000000a"
)

var renter = auth.Actor{UserID: renterID, Role: auth.RoleRenter}

func TestUsecase_Pay(t *testing.T) {
	newApp := func(st domainApp.Status) *domainApp.Application {
		return &domainApp.Application{
			ID: 42, ApplicationID: "AP-42", ListingKind: listing.KindVehicle, ListingID: "L-1",
			RenterID: renterID, OwnerID: ownerID, Status: st, Version: 3, GrandTotal: 3540,
		}
	}

	type calls struct {
		rentals  []*rental.Rental
		payments []*domainPayment.Payment
		statuses []listing.Status
	}

	tests := []struct {
		name        string
		actor       auth.Actor
		method      string
		status      domainApp.Status
		chargeErr   error
		rentalErr   error
		listingSt   listing.Status
		active      int64
		wantErr     error
		wantCharges int
		wantRefunds int
	}{
		{name: "happy path approved -> active", actor: renter, method: "wallet", status: domainApp.StatusApproved, wantCharges: 1},
		{name: "card is not enabled", actor: renter, method: "card", status: domainApp.StatusApproved, wantErr: domainPayment.ErrUnsupportedMethod},
		{name: "pending cannot be paid", actor: renter, method: "wallet", status: domainApp.StatusPending, wantErr: domainApp.ErrNotApproved},
		{name: "already active cannot be paid twice", actor: renter, method: "wallet", status: domainApp.StatusActive, wantErr: apperr.ErrConflict},
		{name: "rejected cannot be paid", actor: renter, method: "wallet", status: domainApp.StatusRejected, wantErr: apperr.ErrConflict},
		{name: "another renter", actor: auth.Actor{UserID: ownerID, Role: auth.RoleOwner}, method: "wallet", status: domainApp.StatusApproved, wantErr: domainApp.ErrNotRenter},
		{
			name: "gateway declines", actor: renter, method: "wallet", status: domainApp.StatusApproved,
			chargeErr: errors.New("insufficient balance"), wantErr: apperr.ErrPayment, wantCharges: 1,
		},
		{
			name: "db failure refunds the charge", actor: renter, method: "wallet", status: domainApp.StatusApproved,
			rentalErr: rental.ErrAlreadyExists, wantErr: rental.ErrAlreadyExists, wantCharges: 1, wantRefunds: 1,
		},
		{
			name: "listing already rented is refunded", actor: renter, method: "wallet", status: domainApp.StatusApproved,
			listingSt: listing.StatusRented, wantErr: rental.ErrListingBusy, wantCharges: 1, wantRefunds: 1,
		},
		{
			name: "listing under maintenance", actor: renter, method: "wallet", status: domainApp.StatusApproved,
			listingSt: listing.StatusMaintenance, wantErr: apperr.ErrConflict, wantCharges: 1, wantRefunds: 1,
		},
		{
			name: "another active rental is refunded", actor: renter, method: "wallet", status: domainApp.StatusApproved,
			active: 1, wantErr: rental.ErrListingBusy, wantCharges: 1, wantRefunds: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c calls
			apps := &applicationmock.Repo{
				GetByApplicationIDFn: func(ctx context.Context, id string) (*domainApp.Application, error) {
					return newApp(tt.status), nil
				},
			}
			rentals := &rentalmock.Repo{
				CreateFn: func(ctx context.Context, r *rental.Rental) error {
					if tt.rentalErr != nil {
						return tt.rentalErr
					}
					r.ID = 9
					c.rentals = append(c.rentals, r)
					return nil
				},
				CountActiveFn: func(ctx context.Context, ref listing.Ref) (int64, error) { return tt.active, nil },
			}
			payments := &paymentmock.Repo{
				CreateFn: func(ctx context.Context, p *domainPayment.Payment) error {
					c.payments = append(c.payments, p)
					return nil
				},
			}
			listings := &listingmock.Repo{
				GetFn: func(ctx context.Context, ref listing.Ref) (listing.Listing, error) {
					st := tt.listingSt
					if st == "" {
						st = listing.StatusAvailable
					}
					return &listing.Vehicle{Base: listing.Base{ListingID: ref.ID, OwnerID: ownerID, Status: st}, DailyRate: 1000}, nil
				},
				SetStatusFn: func(ctx context.Context, ref listing.Ref, s listing.Status) error {
					c.statuses = append(c.statuses, s)
					return nil
				},
			}
			gw := &paymentmock.Gateway{}
			if tt.chargeErr != nil {
				gw.ChargeFn = func(context.Context, domainPayment.ChargeRequest) (string, error) { return "", tt.chargeErr }
			}
			pub := &eventmock.Recorder{}
			tx := uowmock.Passthrough(uow.Repos{Applications: apps, Rentals: rentals, Payments: payments, Listings: listings})

			dto, err := NewUsecase(apps, gw, tx, pub).Pay(context.Background(), tt.actor, "AP-42", PayInput{Method: tt.method})

			if len(gw.Charges) != tt.wantCharges || len(gw.Refunds) != tt.wantRefunds {
				t.Fatalf("charges=%d refunds=%d", len(gw.Charges), len(gw.Refunds))
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				if len(c.rentals) != 0 || len(c.payments) != 0 || len(c.statuses) != 0 {
					t.Fatalf("no payment rows or listing flips on failure: %+v", c)
				}
				if tt.wantRefunds == 1 && gw.Refunds[0] != "txn-1" {
					t.Fatalf("refunded %q", gw.Refunds[0])
				}
				if len(pub.Events()) != 0 {
					t.Fatalf("no events on failure: %v", pub.Types())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if gw.Charges[0].Amount != 3540 || gw.Charges[0].Reference != "AP-42" {
				t.Fatalf("charge: %+v", gw.Charges[0])
			}
			if len(c.rentals) != 1 || c.rentals[0].Status != rental.StatusActive || c.rentals[0].ApplicationID != 42 {
				t.Fatalf("rental: %+v", c.rentals)
			}
			if len(c.payments) != 1 || c.payments[0].Amount != 3540 || c.payments[0].RentalID != 9 || c.payments[0].TransactionRef != "txn-1" {
				t.Fatalf("payment: %+v", c.payments)
			}
			if len(c.statuses) != 1 || c.statuses[0] != listing.StatusRented {
				t.Fatalf("listing status: %v", c.statuses)
			}
			if dto.Status != string(rental.StatusActive) || dto.RentalID == "" || dto.Amount != 3540 {
				t.Fatalf("receipt: %+v", dto)
			}
			evs := pub.Events()
			if len(evs) != 1 || evs[0].Type != event.ApplicationPaid || evs[0].RecipientID != ownerID {
				t.Fatalf("events: %+v", evs)
			}
		})
	}
}

func TestUsecase_Pay_RefundFailureKeepsOriginalError(t *testing.T) {
	apps := &applicationmock.Repo{
		GetByApplicationIDFn: func(ctx context.Context, id string) (*domainApp.Application, error) {
			return &domainApp.Application{ID: 1, ApplicationID: id, RenterID: renterID, Status: domainApp.StatusApproved}, nil
		},
		UpdateFn: func(ctx context.Context, a *domainApp.Application) error { return domainApp.ErrStaleVersion },
	}
	gw := &paymentmock.Gateway{
		RefundFn: func(context.Context, string) error { return errors.New("gateway offline") },
	}
	tx := uowmock.Passthrough(uow.Repos{Applications: apps})

	_, err := NewUsecase(apps, gw, tx, nil).Pay(context.Background(), renter, "AP-1", PayInput{Method: "wallet"})
	if !errors.Is(err, domainApp.ErrStaleVersion) {
		t.Fatalf("want ErrStaleVersion, got %v", err)
	}
	if len(gw.Refunds) != 1 {
		t.Fatalf("refund attempts = %d", len(gw.Refunds))
	}
}

func TestUsecase_Pay_NotFound(t *testing.T) {
	apps := &applicationmock.Repo{
		GetByApplicationIDFn: func(ctx context.Context, id string) (*domainApp.Application, error) {
			return nil, domainApp.ErrNotFound
		},
	}
	gw := &paymentmock.Gateway{}
	_, err := NewUsecase(apps, gw, uowmock.New(), nil).Pay(context.Background(), renter, "nope", PayInput{Method: "wallet"})
	if !errors.Is(err, apperr.ErrNotFound) || len(gw.Charges) != 0 {
		t.Fatalf("err=%v charges=%d", err, len(gw.Charges))
	}
}
