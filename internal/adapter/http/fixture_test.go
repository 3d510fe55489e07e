package http

import (
	"context"

	"renthive-backend/internal/domain/auth"
	"renthive-backend/internal/domain/event"
	"renthive-backend/internal/domain/listing"
	"renthive-backend/internal/domain/pricing"
	"renthive-backend/internal/domain/uow"
	"renthive-backend/internal/testutil/applicationmock"
	"renthive-backend/internal/testutil/eventmock"
	"renthive-backend/internal/testutil/listingmock"
	"renthive-backend/internal/testutil/paymentmock"
	"renthive-backend/internal/testutil/rentalmock"
	"renthive-backend/internal/testutil/reviewmock"
	"renthive-backend/internal/testutil/uowmock"
	ucApplicant "renthive-backend/internal/usecase/applicant"
	ucApplication "renthive-backend/internal/usecase/application"
	ucListing "renthive-backend/internal/usecase/listing"
	ucPayment "renthive-backend/internal/usecase/payment"
	ucRental "renthive-backend/internal/usecase/rental"
	ucReview "renthive-backend/internal/usecase/review"
)

const (
	ownerID   = "0000000000000000000000000000000a"
	renterID  = "0000000000000000000000000000000b"
	otherID   = "0000000000000000000000000000000c"
	listingID = "1111111111111111111111111111111a"
)

var (
	renter = auth.Actor{UserID: renterID, Role: auth.RoleRenter, Name: "Rina", Email: "rina@example.com"}
	owner  = auth.Actor{UserID: ownerID, Role: auth.RoleOwner, Name: "Oscar"}
)

// fixture holds the mocks behind every usecase. Tests set the Fn fields they need
// before calling handlers().
type fixture struct {
	apps     *applicationmock.Repo
	listings *listingmock.Repo
	rentals  *rentalmock.Repo
	payments *paymentmock.Repo
	reviews  *reviewmock.Repo
	gw       *paymentmock.Gateway
	pub      *eventmock.Recorder
}

func newFixture() *fixture {
	scooter := &listing.Vehicle{
		Base: listing.Base{
			ListingID: listingID, OwnerID: ownerID, Title: "Scooter",
			Location: "Pokhara", Images: []string{"s.jpg"}, Status: listing.StatusAvailable,
		},
		DailyRate: 1000,
	}
	return &fixture{
		apps: &applicationmock.Repo{},
		listings: &listingmock.Repo{
			GetFn: func(_ context.Context, ref listing.Ref) (listing.Listing, error) {
				if ref.ID != listingID || ref.Kind != listing.KindVehicle {
					return nil, listing.ErrNotFound
				}
				return scooter, nil
			},
		},
		rentals:  &rentalmock.Repo{},
		payments: &paymentmock.Repo{},
		reviews:  &reviewmock.Repo{},
		gw:       &paymentmock.Gateway{},
		pub:      &eventmock.Recorder{},
	}
}

func (f *fixture) router() Router {
	repos := uow.Repos{
		Applications: f.apps,
		Listings:     f.listings,
		Rentals:      f.rentals,
		Payments:     f.payments,
		Reviews:      f.reviews,
	}
	tx := uowmock.Passthrough(repos)
	calc := pricing.NewCalculator(pricing.DefaultFees())
	var pub event.Publisher = f.pub

	return Router{
		Health:       NewHandler(),
		Listings:     NewListingHandler(ucListing.NewUsecase(f.listings, calc), ucReview.NewUsecase(f.reviews, f.rentals, f.listings)),
		Applications: NewApplicationHandler(ucApplication.NewUsecase(f.apps, f.listings, tx, calc, pub), ucApplicant.NewUsecase(f.apps)),
		Payments:     NewPaymentHandler(ucPayment.NewUsecase(f.apps, f.gw, tx, pub)),
		Rentals:      NewRentalHandler(ucRental.NewUsecase(f.rentals, tx, pub)),
	}
}
