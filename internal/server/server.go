package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/datadev/jadlog/internal/telemetry"
	"github.com/datadev/jadlog/pkg/freight"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Server is the HTTP server for the freight quoting service.
type Server struct {
	port     int
	registry *freight.Registry
	logger   *otelzap.Logger
	metrics  *telemetry.Metrics
	limiter  *rate.Limiter
}

// Config holds server configuration.
type Config struct {
	Port      int
	RateLimit float64
	RateBurst int
}

// New creates a new server instance.
func New(cfg Config, registry *freight.Registry, logger *otelzap.Logger) *Server {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 50
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 100
	}

	return &Server{
		port:     cfg.Port,
		registry: registry,
		logger:   logger,
		metrics:  telemetry.NewMetrics(),
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Handler builds the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/quotes", s.handleQuotes)
	mux.HandleFunc("/methods", s.handleMethods)

	return s.requestID(s.rateLimit(mux))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Request/response types for the quotes endpoint
type quoteRequest struct {
	Destination destinationInput `json:"destination"`
	Items       []itemInput      `json:"items"`
	CartDisplay bool             `json:"cart_display"`
}

type destinationInput struct {
	Country  string `json:"country"`
	Postcode string `json:"postcode"`
}

type itemInput struct {
	ProductID       string  `json:"product_id"`
	Quantity        int     `json:"quantity"`
	NeedsShipping   *bool   `json:"needs_shipping,omitempty"`
	ShippingClassID *int    `json:"shipping_class_id,omitempty"`
	UnitCost        float64 `json:"unit_cost"`
	Weight          float64 `json:"weight"`
	Height          float64 `json:"height"`
	Width           float64 `json:"width"`
	Length          float64 `json:"length"`
}

type offerOutput struct {
	ID               string  `json:"id"`
	Label            string  `json:"label"`
	Cost             float64 `json:"cost"`
	DeliveryForecast *int    `json:"delivery_forecast_days,omitempty"`
}

type quoteResponse struct {
	QuoteID string        `json:"quote_id"`
	Offers  []offerOutput `json:"offers"`
	Notices []string      `json:"notices,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(errorResponse{Error: "Method not allowed, use POST"})
		return
	}

	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errorResponse{Error: "Invalid JSON: " + err.Error()})
		return
	}
	if len(req.Items) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errorResponse{Error: "At least one item is required"})
		return
	}

	pkg := buildPackage(req)
	start := time.Now()

	offers, notices, errs := s.registry.QuoteAll(r.Context(), pkg, req.CartDisplay)

	duration := time.Since(start).Seconds()
	s.metrics.RecordOffers(len(offers))
	for _, offer := range offers {
		s.metrics.RecordQuote(offer.ID, "ok", duration)
	}
	for _, err := range errs {
		s.metrics.RecordQuote(methodLabel(err), quoteStatus(err), duration)
		if carrierErr, ok := freight.IsCarrierError(err); ok {
			s.metrics.RecordCarrierError(carrierErr.Code)
		}
		s.logger.Warn("Quote attempt failed", zap.Error(err))
	}

	resp := quoteResponse{
		QuoteID: uuid.NewString(),
		Offers:  make([]offerOutput, 0, len(offers)),
		Notices: notices,
	}
	for _, offer := range offers {
		resp.Offers = append(resp.Offers, offerOutput{
			ID:               offer.ID,
			Label:            offer.Label,
			Cost:             offer.Cost,
			DeliveryForecast: offer.DeliveryForecastDays,
		})
	}

	json.NewEncoder(w).Encode(resp)
}

type methodOutput struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Code  string `json:"code"`
	Modal string `json:"modal"`
}

func (s *Server) handleMethods(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(errorResponse{Error: "Method not allowed, use GET"})
		return
	}

	methods := s.registry.Methods()
	out := make([]methodOutput, 0, len(methods))
	for _, m := range methods {
		out = append(out, methodOutput{
			ID:    m.Config.ID,
			Title: m.Config.Title,
			Code:  m.Config.ServiceCode(),
			Modal: string(m.Config.Modal),
		})
	}

	json.NewEncoder(w).Encode(out)
}

// methodLabel extracts the failing method's identifier for metrics.
func methodLabel(err error) string {
	var methodErr *freight.MethodError
	if errors.As(err, &methodErr) {
		return methodErr.MethodID
	}
	return "unknown"
}

// quoteStatus classifies a quoting failure into a metric status label.
func quoteStatus(err error) string {
	switch {
	case errors.Is(err, freight.ErrNotApplicable):
		return "not_applicable"
	case errors.Is(err, freight.ErrZeroQuote):
		return "zero_quote"
	default:
		if _, ok := freight.IsCarrierError(err); ok {
			return "carrier_error"
		}
		return "transport_failure"
	}
}

func buildPackage(req quoteRequest) freight.Package {
	pkg := freight.Package{
		Destination: freight.Destination{
			Country:  req.Destination.Country,
			Postcode: req.Destination.Postcode,
		},
	}

	for _, item := range req.Items {
		needsShipping := true
		if item.NeedsShipping != nil {
			needsShipping = *item.NeedsShipping
		}
		classID := freight.AnyShippingClass
		if item.ShippingClassID != nil {
			classID = *item.ShippingClassID
		}
		pkg.Items = append(pkg.Items, freight.Item{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			NeedsShipping:   needsShipping,
			ShippingClassID: classID,
			UnitCost:        item.UnitCost,
			Weight:          item.Weight,
			Height:          item.Height,
			Width:           item.Width,
			Length:          item.Length,
		})
	}

	return pkg
}

// Middleware

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(errorResponse{Error: "Too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}
