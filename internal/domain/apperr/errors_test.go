package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassOf(t *testing.T) {
	specific := fmt.Errorf("%w: application is not pending", ErrForbidden)
	wrapped := fmt.Errorf("update: %w", specific)

	if got := ClassOf(wrapped); got != ErrForbidden {
		t.Fatalf("ClassOf = %v, want ErrForbidden", got)
	}
	if got := ClassOf(errors.New("boom")); got != nil {
		t.Fatalf("ClassOf(plain) = %v, want nil", got)
	}
	if got := ClassOf(nil); got != nil {
		t.Fatalf("ClassOf(nil) = %v, want nil", got)
	}
}
