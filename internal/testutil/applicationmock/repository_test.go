package applicationmock

import (
	"context"
	"errors"
	"testing"

	domain "renthive-backend/internal/domain/application"
)

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if err := m.Create(ctx, &domain.Application{}); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
	a := &domain.Application{Version: 3}
	if err := m.Update(ctx, a); err != nil || a.Version != 4 {
		t.Fatalf("Update default: err=%v version=%d", err, a.Version)
	}
	if got, err := m.GetByApplicationID(ctx, "x"); err != context.Canceled || got != nil {
		t.Fatalf("GetByApplicationID default: got %+v, %v", got, err)
	}
	if _, err := m.ListByOwner(ctx, "o"); err != context.Canceled {
		t.Fatalf("ListByOwner default: %v", err)
	}
}

func TestRepo_UsesProvidedFuncs(t *testing.T) {
	ctx := context.Background()
	wantErr := errors.New("boom")
	called := false
	m := &Repo{
		UpdateFn: func(gotCtx context.Context, a *domain.Application) error {
			called = true
			if gotCtx != ctx {
				t.Fatalf("ctx mismatch")
			}
			return wantErr
		},
	}
	if err := m.Update(ctx, &domain.Application{}); !errors.Is(err, wantErr) {
		t.Fatalf("Update: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("UpdateFn not called")
	}
}
