// Package freight provides carrier-neutral shipping quote computation
// for e-commerce checkout.
package freight

import (
	"context"
)

// Carrier defines the interface a carrier integration must implement.
type Carrier interface {
	// Name returns the carrier identifier (e.g., "jadlog").
	Name() string

	// Quote returns the carrier's rate quote for a package, priced for
	// one configured shipping method. Implementations report ineligible
	// packages with ErrNotApplicable and must not issue a network call
	// in that case.
	Quote(ctx context.Context, cfg MethodConfig, pkg Package) (*Quote, error)
}

// Quote is a carrier's successful answer to a rate request, before fees
// and delivery-time presentation are applied.
type Quote struct {
	// TotalValue is the quoted shipping cost in the carrier's currency.
	TotalValue float64

	// DeliveryDays is the carrier's delivery estimate in working days.
	DeliveryDays int
}
