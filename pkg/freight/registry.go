package freight

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Method pairs a shipping method configuration with the carrier
// integration that prices it.
type Method struct {
	Config  MethodConfig
	Carrier Carrier
}

// Registry holds the configured shipping methods of a zone.
type Registry struct {
	methods []*Method
	mu      sync.RWMutex
}

// NewRegistry creates an empty method registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a method to the registry. Registration order is the
// order methods are evaluated and offers are returned in.
func (r *Registry) Register(m *Method) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods = append(r.methods, m)
}

// Methods returns all registered methods.
func (r *Registry) Methods() []*Method {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Method, len(r.methods))
	copy(result, r.methods)
	return result
}

// Count returns the number of registered methods.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.methods)
}

// QuoteAll prices the package against every registered method in
// parallel. Methods are independent: one method's failure never
// suppresses another's offer.
//
// Offers come back in registration order. Notices carry carrier-reported
// rejections formatted for the shopper, and are produced only when
// cartDisplay is set; transport failures, inapplicable methods and zero
// quotes are silent. All failures are reported through errs for logging
// and metrics.
func (r *Registry) QuoteAll(ctx context.Context, pkg Package, cartDisplay bool) (offers []RateOffer, notices []string, errs []error) {
	methods := r.Methods()
	if len(methods) == 0 {
		return nil, nil, nil
	}

	results := make([]*RateOffer, len(methods))
	noticesByMethod := make([]string, len(methods))
	errsByMethod := make([]error, len(methods))

	g, ctx := errgroup.WithContext(ctx)

	for i, m := range methods {
		i, m := i, m
		g.Go(func() error {
			quote, err := m.Carrier.Quote(ctx, m.Config, pkg)
			if err != nil {
				errsByMethod[i] = &MethodError{MethodID: m.Config.ID, Err: err}
				if carrierErr, ok := IsCarrierError(err); ok && cartDisplay {
					noticesByMethod[i] = m.Config.Title + ": " + carrierErr.Notice()
				}
				return nil
			}

			offer, err := AssembleRate(m.Config, *quote)
			if err != nil {
				errsByMethod[i] = &MethodError{MethodID: m.Config.ID, Err: err}
				return nil
			}
			results[i] = offer
			return nil
		})
	}

	g.Wait()

	for i := range methods {
		if results[i] != nil {
			offers = append(offers, *results[i])
		}
		if noticesByMethod[i] != "" {
			notices = append(notices, noticesByMethod[i])
		}
		if errsByMethod[i] != nil {
			errs = append(errs, errsByMethod[i])
		}
	}
	return offers, notices, errs
}
