package main

import (
	"context"
	"fmt"

	"github.com/datadev/jadlog/internal/config"
	"github.com/datadev/jadlog/internal/telemetry"
	"github.com/datadev/jadlog/pkg/freight"
	"github.com/datadev/jadlog/pkg/freight/jadlog"
	"github.com/joho/godotenv"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func loadConfig() (*config.Config, error) {
	// A local .env is optional; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return func(context.Context) error { return nil }, nil
	}

	_, shutdown, err := telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
	return shutdown, err
}

func initMethodRegistry(cfg *config.Config, logger *otelzap.Logger) (*freight.Registry, error) {
	registry := freight.NewRegistry()

	var tracer trace.Tracer
	if cfg.OTELEnabled {
		tracer = otel.GetTracerProvider().Tracer(cfg.ServiceName)
	}

	carrier := jadlog.New(jadlog.Config{
		URL:     cfg.JadlogURL,
		UseMock: cfg.JadlogUseMock,
	}, logger, tracer)

	credentials := freight.Credentials{
		CNPJ:     cfg.JadlogCNPJ,
		Account:  cfg.JadlogAccount,
		Contract: cfg.JadlogContract,
		Token:    cfg.JadlogToken,
	}

	for _, name := range cfg.MethodNames() {
		method, ok := freight.MethodByName(name, 0)
		if !ok {
			return nil, fmt.Errorf("unknown shipping method %q", name)
		}

		method.OriginPostcode = cfg.OriginPostcode
		method.Credentials = credentials
		method.FeeSpec = cfg.Fee
		method.ShowDeliveryTime = cfg.ShowDeliveryTime
		method.AdditionalDays = cfg.AdditionalDays
		method.DeclareValue = cfg.DeclareValue
		method.Debug = cfg.JadlogDebug
		if cfg.JadlogURL != "" {
			method.WebserviceURL = cfg.JadlogURL
		}

		registry.Register(&freight.Method{Config: method, Carrier: carrier})
	}

	return registry, nil
}
