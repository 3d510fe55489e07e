// Package pricing turns a listing's rate schedule and a date range into a cost breakdown.
// Everything here is pure; a Quote can be recomputed on every keystroke.
package pricing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"renthive-backend/internal/domain/listing"
)

// DateLayout is the calendar-date wire format.
const DateLayout = "2006-01-02"

const (
	monthDays = 30
	weekDays  = 7
)

type RateTier string

const (
	TierNone        RateTier = ""
	TierMonthlyRent RateTier = "monthly_rent"
	TierDaily       RateTier = "daily"
	TierWeekly      RateTier = "weekly"
	TierMonthly     RateTier = "monthly"
)

// Fees are applied to the base cost; the deposit is never fee-scaled. Rates carry
// at most RateScale decimal places so every amount fits the stored scale.
type Fees struct {
	ServiceFeeRate decimal.Decimal
	TaxRate        decimal.Decimal
}

const RateScale = 4

func DefaultFees() Fees {
	return Fees{
		ServiceFeeRate: decimal.RequireFromString("0.05"),
		TaxRate:        decimal.RequireFromString("0.13"),
	}
}

// DateRange is a pair of calendar dates; a zero time means "not chosen yet".
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange parses two YYYY-MM-DD strings. Empty strings give zero dates.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	var err error
	if start != "" {
		if r.Start, err = time.Parse(DateLayout, start); err != nil {
			return DateRange{}, err
		}
	}
	if end != "" {
		if r.End, err = time.Parse(DateLayout, end); err != nil {
			return DateRange{}, err
		}
	}
	return r, nil
}

func (r DateRange) Complete() bool { return !r.Start.IsZero() && !r.End.IsZero() }

// Valid reports end strictly after start.
func (r DateRange) Valid() bool { return r.Complete() && r.End.After(r.Start) }

// Days is ceil((end-start) / 1 day); incomplete or inverted ranges give 0.
func (r DateRange) Days() int {
	if !r.Valid() {
		return 0
	}
	return int(math.Ceil(r.End.Sub(r.Start).Hours() / 24))
}

type Quote struct {
	Duration   int
	BaseCost   decimal.Decimal
	ServiceFee decimal.Decimal
	Tax        decimal.Decimal
	Deposit    decimal.Decimal
	GrandTotal decimal.Decimal
	Tier       RateTier
}

// IsZero reports a quote computed from missing or invalid dates.
func (q Quote) IsZero() bool { return q.Duration == 0 && q.GrandTotal.IsZero() }

type Calculator struct{ fees Fees }

func NewCalculator(f Fees) Calculator { return Calculator{fees: f} }

// Quote computes the breakdown. BaseCost is rounded to cents once; ServiceFee and
// Tax are exact products of that base, and GrandTotal is the exact sum of the parts.
func (c Calculator) Quote(l listing.Listing, r DateRange) Quote {
	days := r.Days()
	if days == 0 || l == nil {
		return Quote{}
	}
	n := decimal.NewFromInt(int64(days))

	var base decimal.Decimal
	var tier RateTier
	switch l := l.(type) {
	case *listing.Property:
		base = decimal.NewFromFloat(l.RentPrice).Mul(n).Div(decimal.NewFromInt(monthDays))
		tier = TierMonthlyRent
	case *listing.Vehicle:
		base, tier = vehicleBase(l, days, n)
	default:
		return Quote{}
	}

	base = base.Round(2)
	q := Quote{
		Duration:   days,
		BaseCost:   base,
		ServiceFee: base.Mul(c.fees.ServiceFeeRate),
		Tax:        base.Mul(c.fees.TaxRate),
		Deposit:    decimal.NewFromFloat(l.Deposit()).Round(2),
		Tier:       tier,
	}
	q.GrandTotal = q.BaseCost.Add(q.ServiceFee).Add(q.Tax).Add(q.Deposit)
	return q
}

// vehicleBase picks monthly over weekly over daily; a tier applies only when its day
// threshold is met and its rate is configured.
func vehicleBase(v *listing.Vehicle, days int, n decimal.Decimal) (decimal.Decimal, RateTier) {
	switch {
	case days >= monthDays && v.MonthlyRate > 0:
		return decimal.NewFromFloat(v.MonthlyRate).Mul(n).Div(decimal.NewFromInt(monthDays)), TierMonthly
	case days >= weekDays && v.WeeklyRate > 0:
		return decimal.NewFromFloat(v.WeeklyRate).Mul(n).Div(decimal.NewFromInt(weekDays)), TierWeekly
	default:
		return decimal.NewFromFloat(v.DailyRate).Mul(n), TierDaily
	}
}
