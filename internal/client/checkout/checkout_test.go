package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"renthive-backend/internal/client/api"
	"renthive-backend/internal/domain/apperr"
)

type fakePayer struct {
	mu    sync.Mutex
	calls []string
	errs  []error
	ctxs  []context.Context
}

func (p *fakePayer) Pay(ctx context.Context, applicationID, method string) (*api.Receipt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, applicationID+"/"+method)
	p.ctxs = append(p.ctxs, ctx)
	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &api.Receipt{RentalID: "r1", ApplicationID: applicationID, Amount: 3540, Method: method}, nil
}

func newFlow(p Payer, opts Options) (*Flow, *[]time.Duration) {
	f := New(p, "a1", opts)
	var slept []time.Duration
	f.sleep = func(d time.Duration) { slept = append(slept, d) }
	return f, &slept
}

func TestFlow_HappyPath(t *testing.T) {
	p := &fakePayer{}
	var done *api.Receipt
	f, slept := newFlow(p, Options{GatewayDelay: 1500 * time.Millisecond, SuccessDelay: 2 * time.Second, OnDone: func(r *api.Receipt) { done = r }})

	if f.CanPay() {
		t.Fatal("pay must be disabled before a method is chosen")
	}
	if _, err := f.Confirm(context.Background()); !errors.Is(err, ErrNoMethod) {
		t.Fatalf("confirm without method: %v", err)
	}
	if err := f.Select("wallet"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if !f.CanPay() {
		t.Fatal("pay should be enabled")
	}

	step, err := f.Confirm(context.Background())
	if err != nil || step != StepSuccess || f.Step() != StepSuccess {
		t.Fatalf("confirm: %s %v", step, err)
	}
	if len(p.calls) != 1 || p.calls[0] != "a1/wallet" {
		t.Fatalf("calls = %v", p.calls)
	}
	if done == nil || done.RentalID != "r1" || f.Receipt() != done {
		t.Fatalf("OnDone receipt = %+v", done)
	}
	if want := []time.Duration{1500 * time.Millisecond, 2 * time.Second}; fmt.Sprint(*slept) != fmt.Sprint(want) {
		t.Fatalf("slept %v, want %v", *slept, want)
	}
	if _, err := f.Confirm(context.Background()); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("second confirm: %v", err)
	}
}

func TestFlow_OnlyWallet(t *testing.T) {
	f, _ := newFlow(&fakePayer{}, Options{})
	for _, m := range []string{"card", "cash", ""} {
		if err := f.Select(m); !errors.Is(err, ErrMethodUnavailable) {
			t.Fatalf("Select(%q) = %v", m, err)
		}
	}
	if f.CanPay() {
		t.Fatal("disabled method must not enable pay")
	}
}

func TestFlow_ErrorAndRetry(t *testing.T) {
	declined := &api.Error{Status: http.StatusPaymentRequired, Message: "payment failed: payment declined by gateway"}
	p := &fakePayer{errs: []error{declined, nil}}
	var doneCalls int
	f, _ := newFlow(p, Options{OnDone: func(*api.Receipt) { doneCalls++ }})
	_ = f.Select("wallet")

	step, err := f.Confirm(context.Background())
	if err != nil || step != StepError {
		t.Fatalf("confirm: %s %v", step, err)
	}
	if got, want := f.Message(), declined.Message+" "+RefundNotice; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
	if doneCalls != 0 {
		t.Fatal("OnDone must not fire on error")
	}

	if err := f.Retry(); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if f.Step() != StepMethod || !f.CanPay() || f.Err() != nil || f.Message() != "" {
		t.Fatalf("after retry: step=%s canPay=%v err=%v", f.Step(), f.CanPay(), f.Err())
	}
	if step, _ := f.Confirm(context.Background()); step != StepSuccess || doneCalls != 1 {
		t.Fatalf("second attempt: %s done=%d", step, doneCalls)
	}
}

func TestFlow_FallbackMessage(t *testing.T) {
	tests := []error{
		fmt.Errorf("%w: dial tcp: connection refused", apperr.ErrTransient),
		&api.Error{Status: http.StatusInternalServerError, Message: "internal error"},
		&api.Error{Status: http.StatusConflict},
	}
	for _, e := range tests {
		f, _ := newFlow(&fakePayer{errs: []error{e}}, Options{})
		_ = f.Select("wallet")
		_, _ = f.Confirm(context.Background())
		if got := f.Message(); got != FallbackMessage+" "+RefundNotice {
			t.Fatalf("%v: message = %q", e, got)
		}
	}
}

func TestFlow_CloseRules(t *testing.T) {
	f, _ := newFlow(&fakePayer{}, Options{})
	if err := f.Close(); err != nil {
		t.Fatalf("close before processing: %v", err)
	}
	if f.Step() != StepClosed {
		t.Fatalf("step = %s", f.Step())
	}
	if err := f.Select("wallet"); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("select after close: %v", err)
	}

	// close attempted while the pay call is in flight
	gate := make(chan struct{})
	blocking := &blockingPayer{gate: gate, started: make(chan struct{})}
	f2, _ := newFlow(blocking, Options{})
	_ = f2.Select("wallet")
	done := make(chan Step)
	go func() {
		step, _ := f2.Confirm(context.Background())
		done <- step
	}()
	<-blocking.started
	if err := f2.Close(); !errors.Is(err, ErrInFlight) {
		t.Fatalf("close during processing: %v", err)
	}
	close(gate)
	if step := <-done; step != StepSuccess {
		t.Fatalf("step = %s", step)
	}
}

func TestFlow_PayIgnoresCallerCancel(t *testing.T) {
	p := &fakePayer{}
	f, _ := newFlow(p, Options{})
	_ = f.Select("wallet")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if step, _ := f.Confirm(ctx); step != StepSuccess {
		t.Fatalf("step = %s", step)
	}
	if p.ctxs[0].Err() != nil {
		t.Fatal("pay context must not inherit cancellation")
	}
}

type blockingPayer struct {
	gate    chan struct{}
	started chan struct{}
}

func (b *blockingPayer) Pay(ctx context.Context, applicationID, method string) (*api.Receipt, error) {
	close(b.started)
	<-b.gate
	return &api.Receipt{RentalID: "r2"}, nil
}
