package freight

import (
	"strconv"
)

// AssembleRate turns a successful carrier quote into a checkout-ready
// rate offer: zero-quote suppression, handling fee, optional delivery
// forecast, then the method's rate transforms in registration order.
//
// A quote whose total rounds to zero yields ErrZeroQuote: the carrier
// has no rate for the route, which must not read as free shipping.
func AssembleRate(cfg MethodConfig, quote Quote) (*RateOffer, error) {
	if int(quote.TotalValue) == 0 {
		return nil, ErrZeroQuote
	}

	cost := quote.TotalValue + Fee(cfg.FeeSpec, quote.TotalValue)

	offer := RateOffer{
		ID:    cfg.ID + strconv.Itoa(cfg.InstanceID),
		Label: cfg.Title,
		Cost:  cost,
	}

	if cfg.ShowDeliveryTime {
		forecast := quote.DeliveryDays + cfg.EffectiveAdditionalDays()
		offer.DeliveryForecastDays = &forecast
	}

	for _, transform := range cfg.RateTransforms {
		offer = transform(offer)
	}

	return &offer, nil
}
