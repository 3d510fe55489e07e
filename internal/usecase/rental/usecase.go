package rental

import (
	"context"
	"fmt"
	"log"
	"time"

	domainApp "renthive-backend/internal/domain/application"
	"renthive-backend/internal/domain/auth"
	"renthive-backend/internal/domain/event"
	"renthive-backend/internal/domain/listing"
	domain "renthive-backend/internal/domain/rental"
	"renthive-backend/internal/domain/uow"
)

type Usecase struct {
	rentals domain.Repository
	uow     uow.UnitOfWork
	events  event.Publisher
	now     func() time.Time
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork, pub event.Publisher) *Usecase {
	if pub == nil {
		pub = event.Nop{}
	}
	return &Usecase{rentals: r, uow: tx, events: pub, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) ListMine(ctx context.Context, actor auth.Actor) ([]RentalDTO, error) {
	list, err := u.rentals.ListByRenter(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return toDTOs(list), nil
}

func (u *Usecase) ListForOwner(ctx context.Context, actor auth.Actor) ([]RentalDTO, error) {
	list, err := u.rentals.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return toDTOs(list), nil
}

// Complete closes an active rental: rental and application become completed and the
// listing is available again once no other rental of it is active.
func (u *Usecase) Complete(ctx context.Context, actor auth.Actor, rentalID string) (*RentalDTO, error) {
	var out *domain.Rental
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rent, err := r.Rentals.GetByRentalID(ctx, rentalID)
		if err != nil {
			return err
		}
		if rent.OwnerID != actor.UserID && !actor.IsAdmin() {
			return domain.ErrNotOwner
		}
		if rent.Status != domain.StatusActive {
			return fmt.Errorf("%w: status is %s", domain.ErrNotActive, rent.Status)
		}

		now := u.now()
		a, err := r.Applications.GetByApplicationID(ctx, rent.ApplicationRef)
		if err != nil {
			return err
		}
		if err := a.MoveTo(domainApp.StatusCompleted, now); err != nil {
			return err
		}
		if err := r.Applications.Update(ctx, a); err != nil {
			return err
		}

		rent.Status = domain.StatusCompleted
		rent.CompletedAt = &now
		if err := r.Rentals.Save(ctx, rent); err != nil {
			return err
		}
		// another rental of the same listing keeps it Rented
		n, err := r.Rentals.CountActive(ctx, rent.ListingRef())
		if err != nil {
			return err
		}
		if n == 0 {
			if err := r.Listings.SetStatus(ctx, rent.ListingRef(), listing.StatusAvailable); err != nil {
				return err
			}
		}
		out = rent
		return nil
	})
	if err != nil {
		return nil, err
	}

	e := event.Event{
		Type:          event.RentalCompleted,
		RecipientID:   out.RenterID,
		ApplicationID: out.ApplicationRef,
		RentalID:      out.RentalID,
		Status:        string(out.Status),
		At:            *out.CompletedAt,
	}
	if err := u.events.Publish(ctx, e); err != nil {
		log.Printf("publish %s for %s: %v", e.Type, out.RentalID, err)
	}
	dto := toDTO(out)
	return &dto, nil
}

func toDTOs(list []domain.Rental) []RentalDTO {
	out := make([]RentalDTO, 0, len(list))
	for i := range list {
		out = append(out, toDTO(&list[i]))
	}
	return out
}
