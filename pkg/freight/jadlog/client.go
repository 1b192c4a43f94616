// Package jadlog provides integration with the Jadlog embarcador
// rate-quote API.
package jadlog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/datadev/jadlog/pkg/freight"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const carrierName = "jadlog"

// SupportedCountry is the only destination country the carrier serves.
const SupportedCountry = "BR"

// Config holds Jadlog client configuration.
type Config struct {
	URL     string
	UseMock bool
}

// Client is the Jadlog carrier client. It implements freight.Carrier.
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer

	// BuildFreteHook, when set, rewrites the wire-level quote entry just
	// before it is sent. Extension point for external policies.
	BuildFreteHook func(*Frete)
}

// New creates a new Jadlog client.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		url := cfg.URL
		if url == "" {
			url = freight.DefaultWebserviceURL
		}
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			URL:     url,
			Timeout: 30 * time.Second,
		})
	}

	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// NewWithAPIClient creates a new Jadlog client with a custom API client.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return carrierName
}

// Quote prices a package for one configured method. It derives the
// billable weight, builds and sends the signed rate request, and
// classifies the response. Ineligible packages return
// freight.ErrNotApplicable before any network activity.
func (c *Client) Quote(ctx context.Context, cfg freight.MethodConfig, pkg freight.Package) (*freight.Quote, error) {
	if c.tracer != nil {
		var span trace.Span
		ctx, span = c.tracer.Start(ctx, "jadlog.Quote")
		defer span.End()
	}

	if pkg.Destination.Country != SupportedCountry {
		return nil, freight.ErrNotApplicable
	}
	if pkg.Destination.Postcode == "" {
		return nil, freight.ErrNotApplicable
	}
	if !cfg.AcceptsShippingClass(pkg) {
		return nil, freight.ErrNotApplicable
	}

	profile := freight.SizePackage(pkg, cfg)
	weight := freight.BillableWeight(profile, cfg.Modal)

	c.debug(cfg, "Weight and cubage of the order",
		zap.Float64("height", profile.Height),
		zap.Float64("width", profile.Width),
		zap.Float64("length", profile.Length),
		zap.Float64("raw_weight", profile.Weight),
		zap.String("modal", string(cfg.Modal)),
		zap.Float64("modal_divisor", freight.Divisor(cfg.Modal)),
		zap.Float64("billable_weight", weight),
	)

	frete := c.buildFrete(cfg, pkg, weight)

	url := cfg.WebserviceEndpoint()
	if url == "" {
		url = c.config.URL
	}

	c.debug(cfg, "Requesting Jadlog WebServices",
		zap.String("url", url),
		zap.String("cepori", frete.CepOri),
		zap.String("cepdes", frete.CepDes),
		zap.String("peso", frete.Peso),
		zap.String("modalidade", frete.Modalidade),
		zap.Int("vldeclarado", frete.VlDeclarado),
	)

	resp, err := c.apiClient.GetFreight(ctx, url, &FreteRequest{Frete: []Frete{frete}}, cfg.Token())
	if err != nil {
		c.debug(cfg, "Error accessing the Jadlog WebServices", zap.Error(err))
		return nil, transportError(err)
	}

	quote, err := interpret(resp)
	if err != nil {
		c.debug(cfg, "Jadlog WebServices returned no usable rate", zap.Error(err))
		return nil, err
	}

	c.debug(cfg, "Jadlog WebServices result",
		zap.Float64("vltotal", quote.TotalValue),
		zap.Int("prazo", quote.DeliveryDays),
	)

	return quote, nil
}

// buildFrete assembles the wire-level quote entry from the method
// configuration and package.
func (c *Client) buildFrete(cfg freight.MethodConfig, pkg freight.Package, weight float64) Frete {
	frete := Frete{
		CepOri:      SanitizePostcode(cfg.OriginPostcode),
		CepDes:      SanitizePostcode(pkg.Destination.Postcode),
		Frap:        "N",
		Peso:        fmt.Sprintf("%.2f", weight),
		CNPJ:        cfg.CNPJ(),
		Conta:       cfg.Account(),
		Contrato:    cfg.Contract(),
		Modalidade:  cfg.ServiceCode(),
		TpEntrega:   "D",
		TpSeguro:    "N",
		VlDeclarado: int(math.Round(cfg.DeclaredValueFor(pkg))),
		VlColeta:    nil,
	}

	if c.BuildFreteHook != nil {
		c.BuildFreteHook(&frete)
	}

	return frete
}

// interpret classifies a decoded carrier response: a carrier error
// object, a priced frete entry, or neither (an unusable body).
func interpret(resp *FreteResponse) (*freight.Quote, error) {
	if resp.Error != nil {
		return nil, freight.NewCarrierError(carrierName, string(resp.Error.ID), resp.Error.Descricao)
	}

	if len(resp.Frete) == 0 || resp.Frete[0].VlTotal == nil {
		return nil, freight.NewTransportError(carrierName, "invalid response: no vltotal in body")
	}

	return &freight.Quote{
		TotalValue:   float64(*resp.Frete[0].VlTotal),
		DeliveryDays: int(resp.Frete[0].Prazo),
	}, nil
}

// transportError wraps an API-level failure into the freight taxonomy.
func transportError(err error) error {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return freight.NewTransportError(carrierName, "unexpected HTTP status").
			WithStatusCode(statusErr.StatusCode).
			WithCause(err)
	}
	return freight.NewTransportError(carrierName, "request failed").WithCause(err)
}

// debug logs pipeline detail when the method's debug flag is on. The
// log sink is best effort and never affects the quote outcome.
func (c *Client) debug(cfg freight.MethodConfig, msg string, fields ...zap.Field) {
	if !cfg.Debug || c.logger == nil {
		return
	}
	fields = append(fields, zap.String("method", cfg.ID))
	c.logger.Debug(msg, fields...)
}

// SanitizePostcode strips everything but digits from a postcode.
func SanitizePostcode(postcode string) string {
	var b strings.Builder
	for _, r := range postcode {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var _ freight.Carrier = (*Client)(nil)
