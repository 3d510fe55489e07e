package payment

import (
	"context"
	"fmt"
	"log"
	"time"

	"renthive-backend/internal/domain/apperr"
	domainApp "renthive-backend/internal/domain/application"
	"renthive-backend/internal/domain/auth"
	"renthive-backend/internal/domain/event"
	"renthive-backend/internal/domain/listing"
	domainPayment "renthive-backend/internal/domain/payment"
	"renthive-backend/internal/domain/rental"
	"renthive-backend/internal/domain/uow"
	"renthive-backend/pkg/id"
)

type Usecase struct {
	apps    domainApp.Repository
	gateway domainPayment.Gateway
	uow     uow.UnitOfWork
	events  event.Publisher
	now     func() time.Time
}

func NewUsecase(apps domainApp.Repository, gw domainPayment.Gateway, tx uow.UnitOfWork, pub event.Publisher) *Usecase {
	if pub == nil {
		pub = event.Nop{}
	}
	return &Usecase{apps: apps, gateway: gw, uow: tx, events: pub, now: func() time.Time { return time.Now().UTC() }}
}

// Pay charges the renter for an approved application and turns it into an active
// rental. The charge happens before the database transaction; if the transaction
// fails the charge is refunded.
func (u *Usecase) Pay(ctx context.Context, actor auth.Actor, applicationID string, in PayInput) (*ReceiptDTO, error) {
	method := domainPayment.Method(in.Method)
	if !method.Enabled() {
		return nil, fmt.Errorf("%w: %q", domainPayment.ErrUnsupportedMethod, in.Method)
	}

	// Guard before touching the gateway: nothing is charged for a non-approved application.
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := guard(actor, a); err != nil {
		return nil, err
	}

	txnRef, err := u.gateway.Charge(ctx, domainPayment.ChargeRequest{
		Reference: a.ApplicationID,
		PayerID:   actor.UserID,
		Amount:    a.GrandTotal,
		Method:    method,
	})
	if err != nil {
		if apperr.ClassOf(err) == nil {
			err = fmt.Errorf("%w: %v", domainPayment.ErrDeclined, err)
		}
		return nil, err
	}

	var out *ReceiptDTO
	err = u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *domainApp.Application) error {
		if err := guard(actor, a); err != nil {
			return err
		}
		now := u.now()
		if err := a.MoveTo(domainApp.StatusActive, now); err != nil {
			return err
		}
		if err := r.Applications.Update(ctx, a); err != nil {
			return err
		}
		if err := ensureFree(ctx, r, a.ListingRef()); err != nil {
			return err
		}

		rent := &rental.Rental{
			RentalID:       id.NewID32(),
			ApplicationID:  a.ID,
			ApplicationRef: a.ApplicationID,
			ListingKind:    a.ListingKind,
			ListingID:      a.ListingID,
			RenterID:       a.RenterID,
			OwnerID:        a.OwnerID,
			StartDate:      a.StartDate,
			EndDate:        a.EndDate,
			TotalAmount:    a.GrandTotal,
			Status:         rental.StatusActive,
		}
		if err := r.Rentals.Create(ctx, rent); err != nil {
			return err
		}

		p := &domainPayment.Payment{
			PaymentID:      id.NewID32(),
			ApplicationID:  a.ID,
			RentalID:       rent.ID,
			PayerID:        actor.UserID,
			Amount:         a.GrandTotal,
			Method:         method,
			TransactionRef: txnRef,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}

		if err := r.Listings.SetStatus(ctx, a.ListingRef(), listing.StatusRented); err != nil {
			return err
		}

		out = &ReceiptDTO{
			RentalID:       rent.RentalID,
			ApplicationID:  a.ApplicationID,
			Status:         string(rent.Status),
			PaymentID:      p.PaymentID,
			TransactionRef: txnRef,
			Amount:         p.Amount,
			Method:         string(method),
			PaidAt:         now,
		}
		return nil
	})
	if err != nil {
		// compensate; the caller still sees the original failure
		if rerr := u.gateway.Refund(context.WithoutCancel(ctx), txnRef); rerr != nil {
			log.Printf("refund %s for application %s failed: %v", txnRef, applicationID, rerr)
		}
		return nil, err
	}

	e := event.Event{
		Type:          event.ApplicationPaid,
		RecipientID:   a.OwnerID,
		ApplicationID: out.ApplicationID,
		RentalID:      out.RentalID,
		Status:        string(domainApp.StatusActive),
		At:            out.PaidAt,
	}
	if err := u.events.Publish(ctx, e); err != nil {
		log.Printf("publish %s for %s: %v", e.Type, out.ApplicationID, err)
	}
	return out, nil
}

// ensureFree refuses a listing that is not Available or already has an active
// rental. Two approved applications for one listing are paid first come, first served.
func ensureFree(ctx context.Context, r uow.Repos, ref listing.Ref) error {
	l, err := r.Listings.Get(ctx, ref)
	if err != nil {
		return err
	}
	if st := l.CurrentStatus(); st != listing.StatusAvailable {
		return fmt.Errorf("%w: %s is %s", rental.ErrListingBusy, ref, st)
	}
	n, err := r.Rentals.CountActive(ctx, ref)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %s has an active rental", rental.ErrListingBusy, ref)
	}
	return nil
}

func guard(actor auth.Actor, a *domainApp.Application) error {
	if a.RenterID != actor.UserID {
		return domainApp.ErrNotRenter
	}
	if a.Status != domainApp.StatusApproved {
		return fmt.Errorf("%w: status is %s", domainApp.ErrNotApproved, a.Status)
	}
	return nil
}
