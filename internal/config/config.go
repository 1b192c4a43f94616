package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port      int     `envconfig:"PORT" default:"80"`
	LogLevel  string  `envconfig:"LOG_LEVEL" default:"info"`
	RateLimit float64 `envconfig:"RATE_LIMIT" default:"50"`
	RateBurst int     `envconfig:"RATE_BURST" default:"100"`

	// Jadlog credentials
	JadlogCNPJ     string `envconfig:"JADLOG_CNPJ"`
	JadlogAccount  string `envconfig:"JADLOG_ACCOUNT"`
	JadlogContract string `envconfig:"JADLOG_CONTRACT"`
	JadlogToken    string `envconfig:"JADLOG_TOKEN"`

	// Jadlog webservice
	JadlogURL     string `envconfig:"JADLOG_URL"`
	JadlogUseMock bool   `envconfig:"JADLOG_USE_MOCK" default:"false"`
	JadlogDebug   bool   `envconfig:"JADLOG_DEBUG" default:"false"`

	// Quoting defaults applied to every enabled method
	OriginPostcode   string `envconfig:"ORIGIN_POSTCODE"`
	EnabledMethods   string `envconfig:"ENABLED_METHODS" default:"jadlog-expresso,jadlog-package,jadlog-rodoviario,jadlog-economico,jadlog-corporate,jadlog-com,jadlog-cargo"`
	Fee              string `envconfig:"FEE"`
	ShowDeliveryTime bool   `envconfig:"SHOW_DELIVERY_TIME" default:"true"`
	AdditionalDays   int    `envconfig:"ADDITIONAL_DAYS" default:"0"`
	DeclareValue     bool   `envconfig:"DECLARE_VALUE" default:"true"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://jaeger-collector.claude.svc.cluster.local:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"jadlog-freight"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// MethodNames returns the enabled method identifiers, trimmed and with
// empty entries dropped.
func (c *Config) MethodNames() []string {
	var names []string
	for _, name := range strings.Split(c.EnabledMethods, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("jadlog.use_mock", c.JadlogUseMock),
		attribute.Int("jadlog.methods", len(c.MethodNames())),
	}
}
