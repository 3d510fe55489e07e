// Package apperr holds the error classes every domain error wraps.
// Callers classify with errors.Is(err, apperr.ErrConflict) and friends.
package apperr

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	// ErrTransient marks transport failures; always safe to retry.
	ErrTransient = errors.New("transient network error")
	ErrPayment   = errors.New("payment failed")
)

// Classes lists the classes in matching order.
var Classes = []error{ErrValidation, ErrNotFound, ErrForbidden, ErrConflict, ErrPayment, ErrTransient}

// ClassOf returns the class sentinel err belongs to, or nil.
func ClassOf(err error) error {
	for _, c := range Classes {
		if errors.Is(err, c) {
			return c
		}
	}
	return nil
}
