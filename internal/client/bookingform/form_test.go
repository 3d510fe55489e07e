package bookingform

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"renthive-backend/internal/client/api"
	"renthive-backend/internal/domain/apperr"
	"renthive-backend/internal/domain/application"
	"renthive-backend/internal/domain/listing"
	"renthive-backend/internal/domain/pricing"
)

type fakeApps struct {
	created   []api.CreateApplication
	updated   []string
	cancelled []string
	err       error
}

func (f *fakeApps) CreateApplication(_ context.Context, in api.CreateApplication) (*api.Application, error) {
	f.created = append(f.created, in)
	if f.err != nil {
		return nil, f.err
	}
	return &api.Application{ApplicationID: "a1", StartDate: in.StartDate, EndDate: in.EndDate, Status: application.StatusPending}, nil
}

func (f *fakeApps) UpdateApplication(_ context.Context, id, start, end string) (*api.Application, error) {
	f.updated = append(f.updated, id+":"+start+".."+end)
	if f.err != nil {
		return nil, f.err
	}
	return &api.Application{ApplicationID: id, StartDate: start, EndDate: end, Status: application.StatusPending}, nil
}

func (f *fakeApps) CancelApplication(_ context.Context, id string) error {
	f.cancelled = append(f.cancelled, id)
	return f.err
}

func bike() *listing.Vehicle {
	return &listing.Vehicle{
		Base:      listing.Base{ListingID: "l1", OwnerID: "o1", Status: listing.StatusAvailable},
		DailyRate: 500, WeeklyRate: 3000, MonthlyRate: 10000,
	}
}

func newForm(apps Applications) *Form {
	return New(bike(), pricing.NewCalculator(pricing.DefaultFees()), apps)
}

func TestForm_RecomputesOnEveryDateChange(t *testing.T) {
	f := newForm(&fakeApps{})
	if !f.Quote().IsZero() || f.CanSubmit() {
		t.Fatal("empty form must have a zero quote and be unsubmittable")
	}

	f.SetStartDate("2024-01-01")
	if !f.Quote().IsZero() {
		t.Fatal("start only must stay zero")
	}

	steps := []struct {
		end  string
		days int
		base int64
	}{
		{"2024-01-06", 5, 2500},
		{"2024-01-08", 7, 3000},
		{"2024-01-31", 30, 10000},
	}
	for _, s := range steps {
		f.SetEndDate(s.end)
		q := f.Quote()
		if q.Duration != s.days || !q.BaseCost.Equal(decimal.NewFromInt(s.base)) {
			t.Fatalf("end %s: duration=%d base=%s", s.end, q.Duration, q.BaseCost)
		}
	}

	f.SetEndDate("2023-12-30")
	if !f.Quote().IsZero() || f.CanSubmit() {
		t.Fatal("inverted range must zero the quote")
	}
	f.SetEndDate("not-a-date")
	if !f.Quote().IsZero() {
		t.Fatal("malformed date must zero the quote")
	}
}

func TestForm_SubmitCreatesThenUpdates(t *testing.T) {
	apps := &fakeApps{}
	f := newForm(apps)
	f.SetStartDate("2024-01-01")
	f.SetEndDate("2024-01-04")
	if !f.CanSubmit() {
		t.Fatal("should be submittable")
	}

	a, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(apps.created) != 1 || apps.created[0].ListingType != "bike" || apps.created[0].ListingID != "l1" {
		t.Fatalf("created = %+v", apps.created)
	}
	if f.Application() != a {
		t.Fatal("form should hold the created application")
	}

	f.SetEndDate("2024-01-05")
	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(apps.updated) != 1 || apps.updated[0] != "a1:2024-01-01..2024-01-05" {
		t.Fatalf("updated = %v", apps.updated)
	}
}

func TestForm_SubmitValidation(t *testing.T) {
	apps := &fakeApps{}
	f := newForm(apps)

	f.SetStartDate("2024-01-01")
	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrIncompleteRange) || !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("incomplete: %v", err)
	}
	f.SetEndDate("2024-01-01")
	if _, err := f.Submit(context.Background()); !errors.Is(err, application.ErrInvalidDateRange) {
		t.Fatalf("same day: %v", err)
	}
	if len(apps.created) != 0 {
		t.Fatal("nothing should be sent")
	}
}

func TestForm_DecidedApplicationIsReadOnly(t *testing.T) {
	apps := &fakeApps{}
	f := newForm(apps)
	f.Load(&api.Application{ApplicationID: "a9", StartDate: "2024-01-01", EndDate: "2024-01-04", Status: application.StatusApproved})

	if f.Quote().Duration != 3 {
		t.Fatalf("loaded dates should be priced, got %+v", f.Quote())
	}
	if f.Editable() || f.CanSubmit() {
		t.Fatal("approved application must not be editable")
	}
	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrNotEditable) {
		t.Fatalf("submit: %v", err)
	}
	if err := f.Cancel(context.Background()); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("cancel: %v", err)
	}
	if len(apps.updated)+len(apps.cancelled) != 0 {
		t.Fatal("no calls expected")
	}
}

func TestForm_Cancel(t *testing.T) {
	apps := &fakeApps{}
	f := newForm(apps)
	if err := f.Cancel(context.Background()); !errors.Is(err, ErrNothingToCancel) {
		t.Fatalf("cancel empty: %v", err)
	}

	f.Load(&api.Application{ApplicationID: "a1", StartDate: "2024-01-01", EndDate: "2024-01-04", Status: application.StatusPending})
	if err := f.Cancel(context.Background()); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if len(apps.cancelled) != 1 || f.Application() != nil || !f.Quote().IsZero() {
		t.Fatalf("form not reset: cancelled=%v app=%v", apps.cancelled, f.Application())
	}
}

func TestForm_ServerErrorKeepsState(t *testing.T) {
	apps := &fakeApps{err: &api.Error{Status: 409, Message: "conflict: a pending application for this listing already exists"}}
	f := newForm(apps)
	f.SetStartDate("2024-01-01")
	f.SetEndDate("2024-01-04")

	if _, err := f.Submit(context.Background()); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("submit: %v", err)
	}
	if f.Application() != nil || !f.CanSubmit() {
		t.Fatal("failed create must leave the form ready to retry")
	}
}
