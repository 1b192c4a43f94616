package jadlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// APIClient defines the interface for the Jadlog embarcador API.
// This abstraction allows for mock implementations during testing
// and real implementations in production.
type APIClient interface {
	// GetFreight submits a rate-quote request to the given endpoint URL.
	// A blank URL falls back to the client's configured endpoint. The
	// token authenticates the call as a bearer credential. Both vary per
	// shipping method, so they travel with the call.
	GetFreight(ctx context.Context, url string, req *FreteRequest, token string) (*FreteResponse, error)
}

// ============================================================================
// API Request/Response Types (match the Jadlog embarcador JSON structure)
// ============================================================================

// FreteRequest is the rate-quote request envelope.
type FreteRequest struct {
	Frete []Frete `json:"frete"`
}

// Frete is a single quote entry. Field names follow the carrier's wire
// format.
type Frete struct {
	CepOri      string   `json:"cepori"`
	CepDes      string   `json:"cepdes"`
	Frap        string   `json:"frap"`
	Peso        string   `json:"peso"`
	CNPJ        string   `json:"cnpj"`
	Conta       string   `json:"conta"`
	Contrato    string   `json:"contrato"`
	Modalidade  string   `json:"modalidade"`
	TpEntrega   string   `json:"tpentrega"`
	TpSeguro    string   `json:"tpseguro"`
	VlDeclarado int      `json:"vldeclarado"`
	VlColeta    *float64 `json:"vlcoleta"`
}

// FreteResponse is the rate-quote response: either a frete entry with a
// total, or an error object.
type FreteResponse struct {
	Frete []FreteQuote `json:"frete"`
	Error *APIError    `json:"error"`
}

// FreteQuote is the carrier's priced answer for one quote entry.
type FreteQuote struct {
	// VlTotal is the quoted total. Nil when the carrier answered without
	// a price, which callers must treat as an unusable response.
	VlTotal *CommaDecimal `json:"vltotal"`

	// Prazo is the delivery estimate in working days.
	Prazo FlexInt `json:"prazo"`
}

// APIError is the carrier's business-error object.
type APIError struct {
	ID        FlexString `json:"id"`
	Descricao string     `json:"descricao"`
}

func (e *APIError) Error() string {
	return string(e.ID) + ": " + e.Descricao
}

// ============================================================================
// Flexible decoding helpers
// ============================================================================

// CommaDecimal decodes a decimal that the carrier may send as a JSON
// number or as a string, with comma as the decimal separator on ingest.
type CommaDecimal float64

// UnmarshalJSON implements json.Unmarshaler.
func (d *CommaDecimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid decimal %q: %w", s, err)
		}
		*d = CommaDecimal(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*d = CommaDecimal(v)
	return nil
}

// FlexInt decodes an integer that may arrive as a JSON number or
// string.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (i *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", s, err)
		}
		*i = FlexInt(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*i = FlexInt(v)
	return nil
}

// FlexString decodes a string that may arrive as a JSON number.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	*s = FlexString(data)
	return nil
}
