package listing

import (
	"context"
	"fmt"

	"renthive-backend/internal/domain/apperr"
	"renthive-backend/internal/domain/auth"
	domain "renthive-backend/internal/domain/listing"
	"renthive-backend/internal/domain/pricing"
	"renthive-backend/pkg/id"
)

type Usecase struct {
	repo domain.Repository
	calc pricing.Calculator
}

func NewUsecase(r domain.Repository, calc pricing.Calculator) *Usecase {
	return &Usecase{repo: r, calc: calc}
}

func (u *Usecase) CreateProperty(ctx context.Context, actor auth.Actor, in CreatePropertyInput) (*ListingDTO, error) {
	p := &domain.Property{Base: newBase(actor, in.CommonInput), RentPrice: in.RentPrice}
	return u.create(ctx, p)
}

func (u *Usecase) CreateVehicle(ctx context.Context, actor auth.Actor, in CreateVehicleInput) (*ListingDTO, error) {
	v := &domain.Vehicle{
		Base:        newBase(actor, in.CommonInput),
		DailyRate:   in.DailyRate,
		WeeklyRate:  in.WeeklyRate,
		MonthlyRate: in.MonthlyRate,
	}
	return u.create(ctx, v)
}

func (u *Usecase) create(ctx context.Context, l domain.Listing) (*ListingDTO, error) {
	if err := domain.Validate(l); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, kind, listingID string) (*ListingDTO, error) {
	l, err := u.get(ctx, kind, listingID)
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) ListMine(ctx context.Context, actor auth.Actor) ([]ListingDTO, error) {
	list, err := u.repo.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]ListingDTO, 0, len(list))
	for _, l := range list {
		out = append(out, *toDTO(l))
	}
	return out, nil
}

// Quote prices a date range for a listing. Missing or inverted dates give an all-zero
// quote rather than an error, so a form can call it on every change.
func (u *Usecase) Quote(ctx context.Context, kind, listingID, start, end string) (*QuoteDTO, error) {
	l, err := u.get(ctx, kind, listingID)
	if err != nil {
		return nil, err
	}
	r, err := pricing.ParseDateRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return toQuoteDTO(r, u.calc.Quote(l, r)), nil
}

func (u *Usecase) get(ctx context.Context, kind, listingID string) (domain.Listing, error) {
	k, err := domain.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	return u.repo.Get(ctx, domain.Ref{Kind: k, ID: listingID})
}

func newBase(actor auth.Actor, in CommonInput) domain.Base {
	return domain.Base{
		ListingID:       id.NewID32(),
		OwnerID:         actor.UserID,
		Title:           in.Title,
		Location:        in.Location,
		Images:          in.Images,
		SecurityDeposit: in.SecurityDeposit,
		Status:          domain.StatusAvailable,
	}
}
