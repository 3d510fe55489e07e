package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	domain "renthive-backend/internal/domain/application"
	"renthive-backend/internal/domain/auth"
	"renthive-backend/internal/domain/event"
	"renthive-backend/internal/domain/listing"
	"renthive-backend/internal/domain/pricing"
	"renthive-backend/internal/domain/uow"
	"renthive-backend/pkg/id"
)

type Usecase struct {
	apps     domain.Repository
	listings listing.Repository
	uow      uow.UnitOfWork
	calc     pricing.Calculator
	events   event.Publisher
	now      func() time.Time
}

// NewUsecase: a nil publisher drops events.
func NewUsecase(apps domain.Repository, listings listing.Repository, tx uow.UnitOfWork, calc pricing.Calculator, pub event.Publisher) *Usecase {
	if pub == nil {
		pub = event.Nop{}
	}
	return &Usecase{
		apps:     apps,
		listings: listings,
		uow:      tx,
		calc:     calc,
		events:   pub,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *Usecase) Create(ctx context.Context, actor auth.Actor, in CreateInput) (*ApplicationDTO, error) {
	kind, err := listing.ParseKind(in.ListingType)
	if err != nil {
		return nil, err
	}
	ref := listing.Ref{Kind: kind, ID: in.ListingID}
	rng, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	l, err := u.listings.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	if l.CurrentStatus() != listing.StatusAvailable {
		return nil, domain.ErrListingUnavailable
	}
	if l.Owner() == actor.UserID {
		return nil, domain.ErrOwnListing
	}

	// one open request per renter and listing
	pending, err := u.apps.GetPendingByRenterAndListing(ctx, actor.UserID, ref)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicatePending, pending.ApplicationID)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	now := u.now()
	snap := l.Snapshot()
	a := &domain.Application{
		ApplicationID:   id.NewID32(),
		ListingKind:     kind,
		ListingID:       ref.ID,
		RenterID:        actor.UserID,
		OwnerID:         l.Owner(),
		Status:          domain.StatusPending,
		StatusUpdatedAt: now,
		Version:         1,
		ListingTitle:    snap.Title,
		ListingLocation: snap.Location,
		ListingImages:   snap.Images,
		RenterName:      actor.Name,
		RenterEmail:     actor.Email,
	}
	applyQuote(a, rng, u.calc.Quote(l, rng))

	if err := u.apps.Create(ctx, a); err != nil {
		return nil, err
	}
	u.publish(ctx, event.ApplicationCreated, a.OwnerID, a, "")
	return ToDTO(a), nil
}

// Update changes the dates of a pending application and reprices it.
func (u *Usecase) Update(ctx context.Context, actor auth.Actor, applicationID string, in UpdateInput) (*ApplicationDTO, error) {
	rng, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	var out *domain.Application
	err = u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *domain.Application) error {
		if err := guardRenterPending(actor, a); err != nil {
			return err
		}
		l, err := r.Listings.Get(ctx, a.ListingRef())
		if err != nil {
			return err
		}
		applyQuote(a, rng, u.calc.Quote(l, rng))
		if err := r.Applications.Update(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.publish(ctx, event.ApplicationUpdated, out.OwnerID, out, "")
	return ToDTO(out), nil
}

func (u *Usecase) Cancel(ctx context.Context, actor auth.Actor, applicationID string) error {
	var out *domain.Application
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *domain.Application) error {
		if err := guardRenterPending(actor, a); err != nil {
			return err
		}
		if err := a.MoveTo(domain.StatusCancelled, u.now()); err != nil {
			return err
		}
		if err := r.Applications.Update(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return err
	}
	u.publish(ctx, event.ApplicationCancelled, out.OwnerID, out, "")
	return nil
}

// Decide approves or rejects a pending application. Only the listing owner (or an
// admin) may decide, and only once.
func (u *Usecase) Decide(ctx context.Context, actor auth.Actor, applicationID string, in DecideInput) (*ApplicationDTO, error) {
	var to domain.Status
	switch in.Decision {
	case domain.DecisionApprove:
		to = domain.StatusApproved
	case domain.DecisionReject:
		to = domain.StatusRejected
	default:
		return nil, fmt.Errorf("%w: unknown decision %q", domain.ErrInvalidTransition, in.Decision)
	}

	var out *domain.Application
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *domain.Application) error {
		if a.OwnerID != actor.UserID && !actor.IsAdmin() {
			return domain.ErrNotOwner
		}
		if a.Status != domain.StatusPending {
			return fmt.Errorf("%w: status is %s", domain.ErrAlreadyDecided, a.Status)
		}
		now := u.now()
		if err := a.MoveTo(to, now); err != nil {
			return err
		}
		a.DecidedAt = &now
		if reason := strings.TrimSpace(in.Reason); to == domain.StatusRejected && reason != "" {
			a.RejectionReason = &reason
		}
		if err := r.Applications.Update(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	typ := event.ApplicationApproved
	reason := ""
	if to == domain.StatusRejected {
		typ = event.ApplicationRejected
		if out.RejectionReason != nil {
			reason = *out.RejectionReason
		}
	}
	u.publish(ctx, typ, out.RenterID, out, reason)
	return ToDTO(out), nil
}

// Get returns an application visible to its renter, its owner, or an admin.
func (u *Usecase) Get(ctx context.Context, actor auth.Actor, applicationID string) (*ApplicationDTO, error) {
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if a.RenterID != actor.UserID && a.OwnerID != actor.UserID && !actor.IsAdmin() {
		return nil, domain.ErrNotRenter
	}
	return ToDTO(a), nil
}

func (u *Usecase) ListMine(ctx context.Context, actor auth.Actor, includeCancelled bool) ([]ApplicationDTO, error) {
	list, err := u.apps.ListByRenter(ctx, actor.UserID, domain.ListFilter{IncludeCancelled: includeCancelled})
	if err != nil {
		return nil, err
	}
	return ToDTOs(list), nil
}

// ListForOwner is the raw feed behind the owner's bookings page.
func (u *Usecase) ListForOwner(ctx context.Context, actor auth.Actor) ([]ApplicationDTO, error) {
	list, err := u.apps.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return ToDTOs(list), nil
}

func (u *Usecase) publish(ctx context.Context, typ event.Type, recipient string, a *domain.Application, reason string) {
	e := event.Event{
		Type:          typ,
		RecipientID:   recipient,
		ApplicationID: a.ApplicationID,
		Status:        string(a.Status),
		Reason:        reason,
		At:            u.now(),
	}
	if err := u.events.Publish(ctx, e); err != nil {
		log.Printf("publish %s for %s: %v", typ, a.ApplicationID, err)
	}
}

func guardRenterPending(actor auth.Actor, a *domain.Application) error {
	if a.RenterID != actor.UserID && !actor.IsAdmin() {
		return domain.ErrNotRenter
	}
	if a.Status != domain.StatusPending {
		return fmt.Errorf("%w: status is %s", domain.ErrNotEditable, a.Status)
	}
	return nil
}

func parseRange(start, end string) (pricing.DateRange, error) {
	rng, err := pricing.ParseDateRange(start, end)
	if err != nil {
		return pricing.DateRange{}, fmt.Errorf("%w: %v", domain.ErrInvalidDateRange, err)
	}
	if !rng.Valid() {
		return pricing.DateRange{}, domain.ErrInvalidDateRange
	}
	return rng, nil
}

func applyQuote(a *domain.Application, rng pricing.DateRange, q pricing.Quote) {
	a.StartDate = rng.Start
	a.EndDate = rng.End
	a.Duration = q.Duration
	a.RateTier = string(q.Tier)
	a.BaseCost = q.BaseCost.InexactFloat64()
	a.ServiceFee = q.ServiceFee.InexactFloat64()
	a.Tax = q.Tax.InexactFloat64()
	a.Deposit = q.Deposit.InexactFloat64()
	a.GrandTotal = q.GrandTotal.InexactFloat64()
}

// ToDTO flattens an application for the wire; dates use the YYYY-MM-DD layout.
func ToDTO(a *domain.Application) *ApplicationDTO {
	dto := &ApplicationDTO{
		ApplicationID:   a.ApplicationID,
		ListingType:     string(a.ListingKind),
		ListingID:       a.ListingID,
		RenterID:        a.RenterID,
		OwnerID:         a.OwnerID,
		StartDate:       a.StartDate.Format(pricing.DateLayout),
		EndDate:         a.EndDate.Format(pricing.DateLayout),
		Duration:        a.Duration,
		RateTier:        a.RateTier,
		BaseCost:        a.BaseCost,
		ServiceFee:      a.ServiceFee,
		Tax:             a.Tax,
		Deposit:         a.Deposit,
		GrandTotal:      a.GrandTotal,
		Status:          string(a.Status),
		Version:         a.Version,
		ListingTitle:    a.ListingTitle,
		ListingLocation: a.ListingLocation,
		ListingImages:   a.ListingImages,
		RenterName:      a.RenterName,
		RenterEmail:     a.RenterEmail,
		DecidedAt:       a.DecidedAt,
		CreatedAt:       a.CreatedAt,
	}
	if a.RejectionReason != nil {
		dto.RejectionReason = *a.RejectionReason
	}
	return dto
}

func ToDTOs(list []domain.Application) []ApplicationDTO {
	out := make([]ApplicationDTO, 0, len(list))
	for i := range list {
		out = append(out, *ToDTO(&list[i]))
	}
	return out
}
