// Package checkout defines the payment-processing boundary. The only
// implementation in this repository simulates a gateway with a fixed delay
// and an unconditional success; a real gateway slots in behind Processor.
package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/royalkeys/royalkeys/catalog"
)

// ErrInvalidDetails is returned when the submitted payment details fail
// the minimal plausibility check.
var ErrInvalidDetails = errors.New("invalid payment details")

// PaymentDetails carries the form fields of the checkout screen. The
// simulated processor never transmits or validates them beyond presence.
type PaymentDetails struct {
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVC        string `json:"cvc"`
	Name       string `json:"name"`
}

// Processor accepts a payment for a product. Submit blocks until the
// payment resolves or ctx is done; cancellation mid-payment is not
// otherwise supported.
type Processor interface {
	Submit(ctx context.Context, product catalog.Product, details PaymentDetails) error
}

// DefaultDelay approximates a real gateway round-trip.
const DefaultDelay = 1500 * time.Millisecond

// SimulatedProcessor waits out a fixed delay and succeeds. No failure
// path is modeled.
type SimulatedProcessor struct {
	Delay time.Duration
}

var _ Processor = (*SimulatedProcessor)(nil)

// NewSimulatedProcessor returns a processor with the default delay.
func NewSimulatedProcessor() *SimulatedProcessor {
	return &SimulatedProcessor{Delay: DefaultDelay}
}

func (p *SimulatedProcessor) Submit(ctx context.Context, product catalog.Product, details PaymentDetails) error {
	if details.CardNumber == "" {
		return ErrInvalidDetails
	}
	delay := p.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
