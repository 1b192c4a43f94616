package freight

// ModalType identifies the transport modality a Jadlog service code is
// billed under. It selects the volumetric divisor.
type ModalType string

const (
	ModalNone ModalType = ""
	ModalAir  ModalType = "AEREO"
	ModalRoad ModalType = "RODO"
)

// AnyShippingClass disables the per-method shipping-class filter.
const AnyShippingClass = -1

// Destination is where the cart contents should be delivered.
type Destination struct {
	Country  string
	Postcode string
}

// Item is a single cart line.
type Item struct {
	ProductID       string
	Quantity        int
	NeedsShipping   bool
	ShippingClassID int
	UnitCost        float64

	// Shipping-relevant physical attributes, in cm and kg.
	Weight float64
	Height float64
	Width  float64
	Length float64
}

// Package is the cart contents submitted for quoting. It lives for a
// single pricing pass and is never persisted.
type Package struct {
	Items       []Item
	Destination Destination
}

// ContentsCost sums the monetary cost of all shippable items. It is the
// default declared-value source for insurance purposes.
func (p Package) ContentsCost() float64 {
	var total float64
	for _, item := range p.Items {
		if item.Quantity <= 0 || !item.NeedsShipping {
			continue
		}
		total += item.UnitCost * float64(item.Quantity)
	}
	return total
}

// Credentials carries the Jadlog embarcador account identifiers.
type Credentials struct {
	CNPJ     string
	Account  string
	Contract string
	Token    string
}

// Overrides lets an external policy replace individual request inputs
// before use. Each hook receives the configured value and returns the
// value to use; nil hooks keep the configured value.
type Overrides struct {
	Code           func(code string) string
	CNPJ           func(cnpj string) string
	Account        func(account string) string
	Contract       func(contract string) string
	Token          func(token string) string
	WebserviceURL  func(url string) string
	AdditionalDays func(days int) int
}

// RateTransform rewrites an assembled rate offer. Transforms run in
// registration order, synchronously, after fee and delivery-forecast
// computation and before the offer is returned to the caller.
type RateTransform func(RateOffer) RateOffer

// MethodConfig is the static per-method configuration. One instance
// exists per configured shipping method per shipping zone; it is
// immutable during a quote pass.
type MethodConfig struct {
	ID         string
	InstanceID int
	Title      string

	// Code is the Jadlog service code for this method. A comma-joined
	// list ("9,10") is passed to the carrier verbatim when a method
	// quotes several codes at once. CustomCode, when set, takes
	// precedence.
	Code       string
	CustomCode string
	Modal      ModalType

	OriginPostcode  string
	ShippingClassID int

	ShowDeliveryTime bool
	AdditionalDays   int

	// FeeSpec is a flat amount ("10.50") or a percentage ("5%") applied
	// on top of the quoted cost. Blank disables the fee.
	FeeSpec string

	DeclareValue bool

	MinHeight   float64
	MinWidth    float64
	MinLength   float64
	ExtraWeight float64

	Credentials   Credentials
	WebserviceURL string

	Debug bool

	// DeclaredValue overrides the declared-value source. Nil defaults to
	// Package.ContentsCost.
	DeclaredValue func(pkg Package) float64

	Overrides      Overrides
	RateTransforms []RateTransform
}

// ServiceCode resolves the effective Jadlog service code: the custom
// code when configured, then the Code override hook.
func (c MethodConfig) ServiceCode() string {
	code := c.Code
	if c.CustomCode != "" {
		code = c.CustomCode
	}
	if c.Overrides.Code != nil {
		code = c.Overrides.Code(code)
	}
	return code
}

// CNPJ resolves the effective CNPJ.
func (c MethodConfig) CNPJ() string {
	if c.Overrides.CNPJ != nil {
		return c.Overrides.CNPJ(c.Credentials.CNPJ)
	}
	return c.Credentials.CNPJ
}

// Account resolves the effective account number.
func (c MethodConfig) Account() string {
	if c.Overrides.Account != nil {
		return c.Overrides.Account(c.Credentials.Account)
	}
	return c.Credentials.Account
}

// Contract resolves the effective contract number.
func (c MethodConfig) Contract() string {
	if c.Overrides.Contract != nil {
		return c.Overrides.Contract(c.Credentials.Contract)
	}
	return c.Credentials.Contract
}

// Token resolves the effective authorization token.
func (c MethodConfig) Token() string {
	if c.Overrides.Token != nil {
		return c.Overrides.Token(c.Credentials.Token)
	}
	return c.Credentials.Token
}

// WebserviceEndpoint resolves the effective webservice URL.
func (c MethodConfig) WebserviceEndpoint() string {
	if c.Overrides.WebserviceURL != nil {
		return c.Overrides.WebserviceURL(c.WebserviceURL)
	}
	return c.WebserviceURL
}

// EffectiveAdditionalDays resolves the configured delivery-time buffer.
func (c MethodConfig) EffectiveAdditionalDays() int {
	if c.Overrides.AdditionalDays != nil {
		return c.Overrides.AdditionalDays(c.AdditionalDays)
	}
	return c.AdditionalDays
}

// DeclaredValueFor returns the declared value for insurance, or zero
// when declared-value insurance is disabled for the method.
func (c MethodConfig) DeclaredValueFor(pkg Package) float64 {
	if !c.DeclareValue {
		return 0
	}
	if c.DeclaredValue != nil {
		return c.DeclaredValue(pkg)
	}
	return pkg.ContentsCost()
}

// AcceptsShippingClass reports whether every shippable item in the
// package carries the method's configured shipping class. A filter of
// AnyShippingClass accepts everything.
func (c MethodConfig) AcceptsShippingClass(pkg Package) bool {
	if c.ShippingClassID == AnyShippingClass {
		return true
	}
	for _, item := range pkg.Items {
		if item.Quantity <= 0 || !item.NeedsShipping {
			continue
		}
		if item.ShippingClassID != c.ShippingClassID {
			return false
		}
	}
	return true
}

// RateOffer is a checkout-ready shipping rate. It is created fresh per
// pricing pass and handed to the checkout collaborator, never cached.
type RateOffer struct {
	ID    string
	Label string
	Cost  float64

	// DeliveryForecastDays is set only when the method displays delivery
	// time: carrier-reported days plus the configured buffer.
	DeliveryForecastDays *int
}
