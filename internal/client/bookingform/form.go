// Package bookingform is the state behind a listing page's booking box. The quote
// is recomputed locally on every date change; the server stays the source of truth
// for the stored application.
package bookingform

import (
	"context"
	"errors"
	"fmt"

	"renthive-backend/internal/client/api"
	"renthive-backend/internal/domain/apperr"
	"renthive-backend/internal/domain/application"
	"renthive-backend/internal/domain/listing"
	"renthive-backend/internal/domain/pricing"
)

var (
	ErrIncompleteRange = fmt.Errorf("%w: choose a start and an end date", apperr.ErrValidation)
	ErrNotEditable     = fmt.Errorf("%w: only pending applications can be changed", apperr.ErrForbidden)
	ErrNothingToCancel = errors.New("no application to cancel")
	ErrBusy            = errors.New("a request is already in flight")
)

type Applications interface {
	CreateApplication(ctx context.Context, in api.CreateApplication) (*api.Application, error)
	UpdateApplication(ctx context.Context, applicationID, start, end string) (*api.Application, error)
	CancelApplication(ctx context.Context, applicationID string) error
}

// Form is not safe for concurrent use; it models one user's booking box.
type Form struct {
	listing listing.Listing
	calc    pricing.Calculator
	apps    Applications

	start, end string
	rng        pricing.DateRange
	quote      pricing.Quote

	current *api.Application
	busy    bool
}

func New(l listing.Listing, calc pricing.Calculator, apps Applications) *Form {
	return &Form{listing: l, calc: calc, apps: apps}
}

// Load attaches an existing application (for editing) and takes over its dates.
func (f *Form) Load(a *api.Application) {
	f.current = a
	f.start, f.end = a.StartDate, a.EndDate
	f.recompute()
}

func (f *Form) SetStartDate(s string) { f.start = s; f.recompute() }
func (f *Form) SetEndDate(s string)   { f.end = s; f.recompute() }

// Quote is the breakdown for the current dates; all zero while dates are
// missing, malformed, or inverted.
func (f *Form) Quote() pricing.Quote { return f.quote }

func (f *Form) Application() *api.Application { return f.current }

func (f *Form) Editable() bool {
	return f.current == nil || f.current.Status == application.StatusPending
}

func (f *Form) CanSubmit() bool { return !f.busy && f.rng.Valid() && f.Editable() }

// Submit creates the application, or updates the loaded one.
func (f *Form) Submit(ctx context.Context) (*api.Application, error) {
	switch {
	case f.busy:
		return nil, ErrBusy
	case !f.Editable():
		return nil, ErrNotEditable
	case !f.rng.Complete():
		return nil, ErrIncompleteRange
	case !f.rng.Valid():
		return nil, application.ErrInvalidDateRange
	}
	f.busy = true
	defer func() { f.busy = false }()

	var (
		a   *api.Application
		err error
	)
	if f.current == nil {
		ref := f.listing.Ref()
		a, err = f.apps.CreateApplication(ctx, api.CreateApplication{
			ListingType: string(ref.Kind),
			ListingID:   ref.ID,
			StartDate:   f.start,
			EndDate:     f.end,
		})
	} else {
		a, err = f.apps.UpdateApplication(ctx, f.current.ApplicationID, f.start, f.end)
	}
	if err != nil {
		return nil, err
	}
	f.current = a
	return a, nil
}

// Cancel withdraws the loaded pending application and resets the form.
func (f *Form) Cancel(ctx context.Context) error {
	switch {
	case f.busy:
		return ErrBusy
	case f.current == nil:
		return ErrNothingToCancel
	case !f.Editable():
		return ErrNotEditable
	}
	f.busy = true
	defer func() { f.busy = false }()

	if err := f.apps.CancelApplication(ctx, f.current.ApplicationID); err != nil {
		return err
	}
	f.current = nil
	f.start, f.end = "", ""
	f.recompute()
	return nil
}

func (f *Form) recompute() {
	rng, err := pricing.ParseDateRange(f.start, f.end)
	if err != nil {
		rng = pricing.DateRange{}
	}
	f.rng = rng
	f.quote = f.calc.Quote(f.listing, rng)
}
