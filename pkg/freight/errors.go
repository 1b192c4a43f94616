package freight

import (
	"errors"
	"fmt"
)

// CarrierError is a business rejection reported by the carrier itself
// (invalid postcode, unserved route, contract problems). It is the only
// failure class surfaced to the shopper, and only in cart display
// context.
type CarrierError struct {
	Carrier string
	Code    string
	Message string
}

// Error implements the error interface.
func (e *CarrierError) Error() string {
	return fmt.Sprintf("%s error (%s): %s", e.Carrier, e.Code, e.Message)
}

// Notice formats the error the way it is shown to the shopper.
func (e *CarrierError) Notice() string {
	return e.Code + " - " + e.Message
}

// Is implements errors.Is for CarrierError.
func (e *CarrierError) Is(target error) bool {
	t, ok := target.(*CarrierError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewCarrierError creates a new CarrierError.
func NewCarrierError(carrier, code, message string) *CarrierError {
	return &CarrierError{
		Carrier: carrier,
		Code:    code,
		Message: message,
	}
}

// TransportError is a failure to obtain a usable carrier response:
// network trouble, a non-2xx HTTP status, or an unparsable body. It is
// silent to the shopper and visible only through the debug log.
type TransportError struct {
	Carrier    string
	Reason     string
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("%s transport failure: %s: %v", e.Carrier, e.Reason, e.Cause)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s transport failure: %s (HTTP %d)", e.Carrier, e.Reason, e.StatusCode)
	default:
		return fmt.Sprintf("%s transport failure: %s", e.Carrier, e.Reason)
	}
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// NewTransportError creates a new TransportError.
func NewTransportError(carrier, reason string) *TransportError {
	return &TransportError{
		Carrier: carrier,
		Reason:  reason,
	}
}

// WithCause adds a cause to the error.
func (e *TransportError) WithCause(err error) *TransportError {
	e.Cause = err
	return e
}

// WithStatusCode adds the HTTP status code to the error.
func (e *TransportError) WithStatusCode(code int) *TransportError {
	e.StatusCode = code
	return e
}

// Sentinel errors for the quoting pipeline.
var (
	// ErrNotApplicable indicates the method does not apply to the package
	// (unsupported country, empty postcode, or shipping-class mismatch).
	// No carrier call is attempted.
	ErrNotApplicable = errors.New("method not applicable to package")

	// ErrZeroQuote indicates the carrier answered with a non-positive
	// price, which is treated as "carrier has no rate", not free shipping.
	ErrZeroQuote = errors.New("carrier returned no rate")
)

// MethodError attributes a quoting failure to the shipping method that
// produced it, so callers can label logs and metrics per method.
type MethodError struct {
	MethodID string
	Err      error
}

// Error implements the error interface.
func (e *MethodError) Error() string {
	return e.MethodID + ": " + e.Err.Error()
}

// Unwrap returns the underlying failure.
func (e *MethodError) Unwrap() error {
	return e.Err
}

// IsCarrierError reports whether err is a carrier-reported business
// rejection, and returns it when so.
func IsCarrierError(err error) (*CarrierError, bool) {
	var carrierErr *CarrierError
	if errors.As(err, &carrierErr) {
		return carrierErr, true
	}
	return nil, false
}

// IsTransportError reports whether err is a transport failure.
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
