// Package checkout drives the pay-for-an-approved-booking dialog:
// method -> processing -> success | error, with retry back to method.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"renthive-backend/internal/client/api"
	"renthive-backend/internal/domain/payment"
)

type Step string

const (
	StepMethod     Step = "method"
	StepProcessing Step = "processing"
	StepSuccess    Step = "success"
	StepError      Step = "error"
	StepClosed     Step = "closed"
)

const (
	// FallbackMessage is shown when the server gave no usable message.
	FallbackMessage = "Payment failed. Please try again."
	RefundNotice    = "Any deducted amount will be refunded automatically."
)

var (
	ErrMethodUnavailable = errors.New("payment method not available")
	ErrNoMethod          = errors.New("choose a payment method first")
	ErrWrongStep         = errors.New("action not allowed in current step")
	ErrInFlight          = errors.New("payment is processing and cannot be cancelled")
)

type Payer interface {
	Pay(ctx context.Context, applicationID, method string) (*api.Receipt, error)
}

type Options struct {
	// GatewayDelay elapses before the pay call; SuccessDelay before OnDone fires.
	GatewayDelay time.Duration
	SuccessDelay time.Duration
	OnDone       func(*api.Receipt)
}

type Flow struct {
	payer         Payer
	applicationID string
	opts          Options
	sleep         func(time.Duration)

	mu      sync.Mutex
	step    Step
	method  payment.Method
	receipt *api.Receipt
	err     error
}

func New(payer Payer, applicationID string, opts Options) *Flow {
	return &Flow{payer: payer, applicationID: applicationID, opts: opts, sleep: time.Sleep, step: StepMethod}
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Select picks the payment method. Only enabled methods can be chosen.
func (f *Flow) Select(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepMethod {
		return fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	m := payment.Method(method)
	if !m.Enabled() {
		return fmt.Errorf("%w: %s", ErrMethodUnavailable, method)
	}
	f.method = m
	return nil
}

// CanPay is false until a method has been chosen.
func (f *Flow) CanPay() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step == StepMethod && f.method != ""
}

// Confirm runs processing to completion and returns the resulting step. The pay
// call is detached from ctx cancellation: once started it is never abandoned.
func (f *Flow) Confirm(ctx context.Context) (Step, error) {
	f.mu.Lock()
	if f.step != StepMethod {
		f.mu.Unlock()
		return "", fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	if f.method == "" {
		f.mu.Unlock()
		return "", ErrNoMethod
	}
	f.step = StepProcessing
	method := f.method
	f.mu.Unlock()

	f.sleep(f.opts.GatewayDelay)
	receipt, err := f.payer.Pay(context.WithoutCancel(ctx), f.applicationID, string(method))

	f.mu.Lock()
	if err != nil {
		f.step, f.err = StepError, err
		f.mu.Unlock()
		return StepError, nil
	}
	f.step, f.receipt = StepSuccess, receipt
	f.mu.Unlock()

	f.sleep(f.opts.SuccessDelay)
	if f.opts.OnDone != nil {
		f.opts.OnDone(receipt)
	}
	return StepSuccess, nil
}

// Retry returns from error to method selection, keeping the chosen method.
func (f *Flow) Retry() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepError {
		return fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	f.step, f.err = StepMethod, nil
	return nil
}

// Close abandons the flow. It is refused while processing.
func (f *Flow) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step == StepProcessing {
		return ErrInFlight
	}
	f.step = StepClosed
	return nil
}

func (f *Flow) Receipt() *api.Receipt {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.receipt
}

func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Message is the text for the error step: the server's message when there is one,
// otherwise FallbackMessage, always followed by RefundNotice.
func (f *Flow) Message() string {
	err := f.Err()
	if err == nil {
		return ""
	}
	msg := FallbackMessage
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Status < 500 {
		msg = apiErr.Message
	}
	return msg + " " + RefundNotice
}
