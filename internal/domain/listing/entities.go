package listing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"renthive-backend/internal/domain/apperr"
)

var (
	ErrNotFound    = fmt.Errorf("%w: listing not found", apperr.ErrNotFound)
	ErrUnknownKind = fmt.Errorf("%w: unknown listing type", apperr.ErrValidation)
)

// Kind is the listing type as carried on the wire and in applications.
type Kind string

const (
	KindProperty Kind = "property"
	KindVehicle  Kind = "bike"
)

// ParseKind accepts the wire values plus "vehicle" as an alias of bike.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "property", "properties":
		return KindProperty, nil
	case "bike", "bikes", "vehicle", "vehicles":
		return KindVehicle, nil
	}
	return "", ErrUnknownKind
}

type Status string

const (
	StatusAvailable   Status = "Available"
	StatusRented      Status = "Rented"
	StatusMaintenance Status = "Maintenance"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusRented, StatusMaintenance:
		return true
	}
	return false
}

// Ref identifies one listing across both tables.
type Ref struct {
	Kind Kind   `json:"listing_type"`
	ID   string `json:"listing_id"`
}

func (r Ref) String() string { return string(r.Kind) + "/" + r.ID }

// Snapshot is the denormalized view copied onto applications.
type Snapshot struct {
	Title    string   `json:"title"`
	Location string   `json:"location"`
	Images   []string `json:"images"`
}

// Listing is either a *Property or a *Vehicle.
type Listing interface {
	Ref() Ref
	Owner() string
	CurrentStatus() Status
	Deposit() float64
	Snapshot() Snapshot
	isListing()
}

// Base carries the columns both listing tables share.
type Base struct {
	ID              uint64    `gorm:"primaryKey;column:id" json:"-"`
	ListingID       string    `gorm:"size:32;uniqueIndex;not null" json:"listing_id"`
	OwnerID         string    `gorm:"size:32;index;not null" json:"owner_id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Location        string    `gorm:"size:255" json:"location"`
	Images          []string  `gorm:"serializer:json;type:text" json:"images"`
	SecurityDeposit float64   `gorm:"type:decimal(18,2);not null;default:0" json:"security_deposit"`
	Status          Status    `gorm:"size:16;not null;default:'Available'" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *Base) Owner() string         { return b.OwnerID }
func (b *Base) CurrentStatus() Status { return b.Status }
func (b *Base) Deposit() float64      { return b.SecurityDeposit }
func (b *Base) Snapshot() Snapshot {
	return Snapshot{Title: b.Title, Location: b.Location, Images: append([]string(nil), b.Images...)}
}

// Property is rented by the month.
type Property struct {
	Base
	RentPrice float64 `gorm:"type:decimal(18,2);not null" json:"rent_price"`
}

func (Property) TableName() string { return "properties" }
func (p *Property) Ref() Ref       { return Ref{Kind: KindProperty, ID: p.ListingID} }
func (*Property) isListing()       {}

// Vehicle has a daily rate and optional weekly/monthly rates (zero = not offered).
type Vehicle struct {
	Base
	DailyRate   float64 `gorm:"type:decimal(18,2);not null" json:"daily_rate"`
	WeeklyRate  float64 `gorm:"type:decimal(18,2);not null;default:0" json:"weekly_rate"`
	MonthlyRate float64 `gorm:"type:decimal(18,2);not null;default:0" json:"monthly_rate"`
}

func (Vehicle) TableName() string { return "vehicles" }
func (v *Vehicle) Ref() Ref       { return Ref{Kind: KindVehicle, ID: v.ListingID} }
func (*Vehicle) isListing()       {}

// Validate checks owner-supplied fields before a listing is stored.
func Validate(l Listing) error {
	var errs []error
	switch l := l.(type) {
	case *Property:
		if l.RentPrice <= 0 {
			errs = append(errs, errors.New("rent_price must be positive"))
		}
	case *Vehicle:
		if l.DailyRate <= 0 {
			errs = append(errs, errors.New("daily_rate must be positive"))
		}
		if l.WeeklyRate < 0 || l.MonthlyRate < 0 {
			errs = append(errs, errors.New("weekly_rate and monthly_rate cannot be negative"))
		}
	default:
		return ErrUnknownKind
	}
	if l.Deposit() < 0 {
		errs = append(errs, errors.New("security_deposit cannot be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", apperr.ErrValidation, errors.Join(errs...))
	}
	return nil
}
