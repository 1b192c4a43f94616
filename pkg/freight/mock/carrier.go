// Package mock provides a mock carrier implementation for testing.
package mock

import (
	"context"

	"github.com/datadev/jadlog/pkg/freight"
)

// Carrier is a mock freight carrier for testing.
type Carrier struct {
	name string

	// TotalValue and DeliveryDays shape the default quote.
	TotalValue   float64
	DeliveryDays int

	// Err, when set, is returned instead of a quote.
	Err error

	// OnQuote overrides the quote behavior entirely.
	OnQuote func(ctx context.Context, cfg freight.MethodConfig, pkg freight.Package) (*freight.Quote, error)
}

// New creates a new mock carrier quoting a fixed rate.
func New(name string) *Carrier {
	return &Carrier{
		name:         name,
		TotalValue:   15.82,
		DeliveryDays: 5,
	}
}

// Name returns the carrier name.
func (c *Carrier) Name() string {
	return c.name
}

// Quote returns the configured mock quote.
func (c *Carrier) Quote(ctx context.Context, cfg freight.MethodConfig, pkg freight.Package) (*freight.Quote, error) {
	if c.OnQuote != nil {
		return c.OnQuote(ctx, cfg, pkg)
	}
	if c.Err != nil {
		return nil, c.Err
	}
	return &freight.Quote{
		TotalValue:   c.TotalValue,
		DeliveryDays: c.DeliveryDays,
	}, nil
}

var _ freight.Carrier = (*Carrier)(nil)
