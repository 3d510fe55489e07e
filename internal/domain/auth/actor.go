package auth

import "context"

// Role of an authenticated caller.
type Role string

const (
	RoleRenter Role = "renter"
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleRenter, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// Actor is the explicit session of the caller, passed by value into usecases.
type Actor struct {
	UserID string
	Role   Role
	Name   string
	Email  string
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanOwn reports whether the actor may act as a listing owner.
func (a Actor) CanOwn() bool { return a.Role == RoleOwner || a.Role == RoleAdmin }

type ctxKey struct{}

// NewContext returns a copy of ctx carrying the actor.
func NewContext(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

func FromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(Actor)
	return a, ok
}
