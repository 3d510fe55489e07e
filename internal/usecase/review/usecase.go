package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"renthive-backend/internal/domain/auth"
	"renthive-backend/internal/domain/listing"
	"renthive-backend/internal/domain/rental"
	domain "renthive-backend/internal/domain/review"
	"renthive-backend/pkg/id"
)

type UpsertInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type ReviewDTO struct {
	ReviewID  string    `json:"review_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Usecase struct {
	reviews  domain.Repository
	rentals  rental.Repository
	listings listing.Repository
}

func NewUsecase(reviews domain.Repository, rentals rental.Repository, listings listing.Repository) *Usecase {
	return &Usecase{reviews: reviews, rentals: rentals, listings: listings}
}

// Upsert writes the actor's single review of a listing, replacing an earlier one.
// Only renters with a completed rental of the listing may review it.
func (u *Usecase) Upsert(ctx context.Context, actor auth.Actor, ref listing.Ref, in UpsertInput) (*ReviewDTO, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.ErrInvalidRating
	}
	if _, err := u.listings.Get(ctx, ref); err != nil {
		return nil, err
	}
	ok, err := u.rentals.HasCompleted(ctx, actor.UserID, ref)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotEligible
	}

	comment := strings.TrimSpace(in.Comment)
	existing, err := u.reviews.GetByUserAndListing(ctx, actor.UserID, ref)
	switch {
	case err == nil:
		return u.update(ctx, existing, actor, in.Rating, comment)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	r := &domain.Review{
		ReviewID:    id.NewID32(),
		ListingKind: ref.Kind,
		ListingID:   ref.ID,
		UserID:      actor.UserID,
		UserName:    actor.Name,
		Rating:      in.Rating,
		Comment:     comment,
	}
	err = u.reviews.Create(ctx, r)
	if errors.Is(err, domain.ErrAlreadyExists) {
		// a concurrent first review won the insert; overwrite it
		if existing, err = u.reviews.GetByUserAndListing(ctx, actor.UserID, ref); err != nil {
			return nil, err
		}
		return u.update(ctx, existing, actor, in.Rating, comment)
	}
	if err != nil {
		return nil, err
	}
	return toDTO(r), nil
}

func (u *Usecase) update(ctx context.Context, r *domain.Review, actor auth.Actor, rating int, comment string) (*ReviewDTO, error) {
	r.Rating = rating
	r.Comment = comment
	r.UserName = actor.Name
	if err := u.reviews.Save(ctx, r); err != nil {
		return nil, err
	}
	return toDTO(r), nil
}

func (u *Usecase) List(ctx context.Context, ref listing.Ref) ([]ReviewDTO, error) {
	list, err := u.reviews.ListByListing(ctx, ref)
	if err != nil {
		return nil, err
	}
	out := make([]ReviewDTO, 0, len(list))
	for i := range list {
		out = append(out, *toDTO(&list[i]))
	}
	return out, nil
}

func toDTO(r *domain.Review) *ReviewDTO {
	return &ReviewDTO{
		ReviewID:  r.ReviewID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		UpdatedAt: r.UpdatedAt,
	}
}
