package freight

import "strings"

// DefaultWebserviceURL is the Jadlog embarcador rate-quote endpoint.
const DefaultWebserviceURL = "http://www.jadlog.com.br/embarcador/api/frete/valor"

// Default package minimums, in cm.
const (
	defaultMinHeight = 2
	defaultMinWidth  = 11
	defaultMinLength = 16
)

func newMethod(id, title, code string, modal ModalType, instanceID int) MethodConfig {
	return MethodConfig{
		ID:              id,
		InstanceID:      instanceID,
		Title:           title,
		Code:            code,
		Modal:           modal,
		ShippingClassID: AnyShippingClass,
		DeclareValue:    true,
		MinHeight:       defaultMinHeight,
		MinWidth:        defaultMinWidth,
		MinLength:       defaultMinLength,
		WebserviceURL:   DefaultWebserviceURL,
	}
}

// NewExpresso configures the Jadlog Expresso method (air).
func NewExpresso(instanceID int) MethodConfig {
	return newMethod("jadlog-expresso", "Jadlog Expresso", "0", ModalAir, instanceID)
}

// NewPackage configures the Jadlog Package method (road).
func NewPackage(instanceID int) MethodConfig {
	return newMethod("jadlog-package", "Jadlog Package", "3", ModalRoad, instanceID)
}

// NewRodoviario configures the Jadlog Rodoviário method.
func NewRodoviario(instanceID int) MethodConfig {
	return newMethod("jadlog-rodoviario", "Jadlog Rodoviário", "4", ModalNone, instanceID)
}

// NewEconomico configures the Jadlog Econômico method.
func NewEconomico(instanceID int) MethodConfig {
	return newMethod("jadlog-economico", "Jadlog Econômico", "5", ModalNone, instanceID)
}

// NewCorporate configures the Jadlog Corporate method (air).
func NewCorporate(instanceID int) MethodConfig {
	return newMethod("jadlog-corporate", "Jadlog Corporate", "7", ModalAir, instanceID)
}

// NewCom configures the Jadlog .com method.
func NewCom(instanceID int) MethodConfig {
	return newMethod("jadlog-com", "Jadlog .com", "9", ModalNone, instanceID)
}

// NewCargo configures the Jadlog Cargo method (air).
func NewCargo(instanceID int) MethodConfig {
	return newMethod("jadlog-cargo", "Jadlog Cargo", "12", ModalAir, instanceID)
}

// DefaultMethods returns one instance of every Jadlog shipping method.
func DefaultMethods() []MethodConfig {
	return []MethodConfig{
		NewExpresso(0),
		NewPackage(0),
		NewRodoviario(0),
		NewEconomico(0),
		NewCorporate(0),
		NewCom(0),
		NewCargo(0),
	}
}

// MethodByName returns the method configuration matching a short name
// (e.g. "expresso") or full identifier (e.g. "jadlog-expresso"), for
// configuration wiring.
func MethodByName(name string, instanceID int) (MethodConfig, bool) {
	switch strings.TrimPrefix(name, "jadlog-") {
	case "expresso":
		return NewExpresso(instanceID), true
	case "package":
		return NewPackage(instanceID), true
	case "rodoviario":
		return NewRodoviario(instanceID), true
	case "economico":
		return NewEconomico(instanceID), true
	case "corporate":
		return NewCorporate(instanceID), true
	case "com":
		return NewCom(instanceID), true
	case "cargo":
		return NewCargo(instanceID), true
	default:
		return MethodConfig{}, false
	}
}
