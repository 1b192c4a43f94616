package jadlog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/datadev/jadlog/pkg/freight"
	"github.com/datadev/jadlog/pkg/freight/jadlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestClient(mockClient *jadlog.MockAPIClient) *jadlog.Client {
	logger := otelzap.New(zap.NewNop())
	return jadlog.NewWithAPIClient(
		jadlog.Config{},
		mockClient,
		logger,
		nil,
	)
}

func testConfig() freight.MethodConfig {
	cfg := freight.NewExpresso(0)
	cfg.OriginPostcode = "80010-000"
	cfg.Credentials = freight.Credentials{
		CNPJ:     "11222333000181",
		Account:  "100",
		Contract: "200",
		Token:    "test-token",
	}
	return cfg
}

func testPackage() freight.Package {
	return freight.Package{
		Items: []freight.Item{
			{ProductID: "sku-1", Quantity: 1, NeedsShipping: true, ShippingClassID: freight.AnyShippingClass,
				UnitCost: 49.90, Weight: 0.3, Height: 10, Width: 15, Length: 20},
		},
		Destination: freight.Destination{Country: "BR", Postcode: "01310-100"},
	}
}

func TestClient_Quote_Success(t *testing.T) {
	mockAPI := jadlog.NewMockAPIClient()
	client := newTestClient(mockAPI)

	quote, err := client.Quote(context.Background(), testConfig(), testPackage())

	require.NoError(t, err)
	assert.InDelta(t, 27.93, quote.TotalValue, 1e-9)
	assert.Equal(t, 4, quote.DeliveryDays)
	assert.Equal(t, 1, mockAPI.CallCount())
}

func TestClient_Quote_RequestPayload(t *testing.T) {
	mockAPI := jadlog.NewMockAPIClient()
	client := newTestClient(mockAPI)

	_, err := client.Quote(context.Background(), testConfig(), testPackage())
	require.NoError(t, err)

	calls := mockAPI.Calls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Request.Frete, 1)
	frete := calls[0].Request.Frete[0]

	assert.Equal(t, "80010000", frete.CepOri, "postcodes carry digits only")
	assert.Equal(t, "01310100", frete.CepDes)
	assert.Equal(t, "N", frete.Frap)
	assert.Equal(t, "D", frete.TpEntrega)
	assert.Equal(t, "N", frete.TpSeguro)
	assert.Equal(t, "0", frete.Modalidade)
	assert.Equal(t, "11222333000181", frete.CNPJ)
	assert.Equal(t, "100", frete.Conta)
	assert.Equal(t, "200", frete.Contrato)
	assert.Equal(t, 50, frete.VlDeclarado, "declared value is rounded to whole units")
	assert.Nil(t, frete.VlColeta)
}

func TestClient_Quote_BillableWeightFormat(t *testing.T) {
	mockAPI := jadlog.NewMockAPIClient()
	client := newTestClient(mockAPI)

	cfg := testConfig()
	pkg := testPackage()

	_, err := client.Quote(context.Background(), cfg, pkg)
	require.NoError(t, err)

	// Air modality: (10*15*20)/6000 = 0.5, formatted with two decimals.
	assert.Equal(t, "0.50", mockAPI.Calls()[0].Request.Frete[0].Peso)
}

func TestClient_Quote_NoDeclaredValueWhenDisabled(t *testing.T) {
	mockAPI := jadlog.NewMockAPIClient()
	client := newTestClient(mockAPI)

	cfg := testConfig()
	cfg.DeclareValue = false

	_, err := client.Quote(context.Background(), cfg, testPackage())
	require.NoError(t, err)

	assert.Equal(t, 0, mockAPI.Calls()[0].Request.Frete[0].VlDeclarado)
}

func TestClient_Quote_NotApplicable_Country(t *testing.T) {
	mockAPI := jadlog.NewMockAPIClient()
	client := newTestClient(mockAPI)

	pkg := testPackage()
	pkg.Destination.Country = "AR"

	_, err := client.Quote(context.Background(), testConfig(), pkg)

	assert.True(t, errors.Is(err, freight.ErrNotApplicable))
	assert.Equal(t, 0, mockAPI.CallCount(), "no network call for ineligible destinations")
}

func TestClient_Quote_NotApplicable_EmptyPostcode(t *testing.T) {
	mockAPI := jadlog.NewMockAPIClient()
	client := newTestClient(mockAPI)

	pkg := testPackage()
	pkg.Destination.Postcode = ""

	_, err := client.Quote(context.Background(), testConfig(), pkg)

	assert.True(t, errors.Is(err, freight.ErrNotApplicable))
	assert.Equal(t, 0, mockAPI.CallCount())
}

func TestClient_Quote_NotApplicable_ShippingClassFilter(t *testing.T) {
	mockAPI := jadlog.NewMockAPIClient()
	client := newTestClient(mockAPI)

	cfg := testConfig()
	cfg.ShippingClassID = 9

	_, err := client.Quote(context.Background(), cfg, testPackage())

	assert.True(t, errors.Is(err, freight.ErrNotApplicable))
	assert.Equal(t, 0, mockAPI.CallCount(), "class filter short-circuits before the network")
}

func TestClient_Quote_CarrierError(t *testing.T) {
	mockAPI := jadlog.NewMockAPIClient()
	mockAPI.OnGetFreight = func(ctx context.Context, url string, req *jadlog.FreteRequest, token string) (*jadlog.FreteResponse, error) {
		return &jadlog.FreteResponse{
			Error: &jadlog.APIError{ID: "1", Descricao: "CEP inválido"},
		}, nil
	}
	client := newTestClient(mockAPI)

	_, err := client.Quote(context.Background(), testConfig(), testPackage())

	carrierErr, ok := freight.IsCarrierError(err)
	require.True(t, ok)
	assert.Equal(t, "1", carrierErr.Code)
	assert.Equal(t, "CEP inválido", carrierErr.Message)
	assert.Equal(t, "1 - CEP inválido", carrierErr.Notice())
}

func TestClient_Quote_TransportFailure(t *testing.T) {
	mockAPI := jadlog.NewMockAPIClient()
	mockAPI.SimulateErrors = true
	client := newTestClient(mockAPI)

	_, err := client.Quote(context.Background(), testConfig(), testPackage())

	assert.True(t, freight.IsTransportError(err))
}

func TestClient_Quote_ResponseWithoutTotal(t *testing.T) {
	mockAPI := jadlog.NewMockAPIClient()
	mockAPI.OnGetFreight = func(ctx context.Context, url string, req *jadlog.FreteRequest, token string) (*jadlog.FreteResponse, error) {
		return &jadlog.FreteResponse{Frete: []jadlog.FreteQuote{{}}}, nil
	}
	client := newTestClient(mockAPI)

	_, err := client.Quote(context.Background(), testConfig(), testPackage())

	assert.True(t, freight.IsTransportError(err), "a body without vltotal is unusable")
}

func TestClient_Quote_BuildFreteHook(t *testing.T) {
	mockAPI := jadlog.NewMockAPIClient()
	client := newTestClient(mockAPI)
	client.BuildFreteHook = func(f *jadlog.Frete) {
		f.Modalidade = "40"
	}

	_, err := client.Quote(context.Background(), testConfig(), testPackage())
	require.NoError(t, err)

	assert.Equal(t, "40", mockAPI.Calls()[0].Request.Frete[0].Modalidade)
}

func TestClient_Quote_TokenPassedToAPI(t *testing.T) {
	mockAPI := jadlog.NewMockAPIClient()
	var gotToken string
	mockAPI.OnGetFreight = func(ctx context.Context, url string, req *jadlog.FreteRequest, token string) (*jadlog.FreteResponse, error) {
		gotToken = token
		total := jadlog.CommaDecimal(10)
		return &jadlog.FreteResponse{Frete: []jadlog.FreteQuote{{VlTotal: &total}}}, nil
	}
	client := newTestClient(mockAPI)

	_, err := client.Quote(context.Background(), testConfig(), testPackage())
	require.NoError(t, err)
	assert.Equal(t, "test-token", gotToken)
}

func TestClient_Name(t *testing.T) {
	client := newTestClient(jadlog.NewMockAPIClient())
	assert.Equal(t, "jadlog", client.Name())
}

func TestSanitizePostcode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"01310-100", "01310100"},
		{"01310100", "01310100"},
		{"CEP 01310-100", "01310100"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, jadlog.SanitizePostcode(tt.in))
	}
}

func TestClient_Quote_URLResolvedPerMethod(t *testing.T) {
	mockAPI := jadlog.NewMockAPIClient()
	client := newTestClient(mockAPI)

	cfg := testConfig()
	cfg.WebserviceURL = "http://per-method.example/frete"

	_, err := client.Quote(context.Background(), cfg, testPackage())
	require.NoError(t, err)

	calls := mockAPI.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "http://per-method.example/frete", calls[0].URL)
}

func TestClient_Quote_MethodURLReachesTheWire(t *testing.T) {
	configured := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"frete":[{"vltotal":"10,00","prazo":1}]}`))
	}))
	defer configured.Close()

	var perMethodHits int
	perMethod := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		perMethodHits++
		w.Write([]byte(`{"frete":[{"vltotal":"20,00","prazo":2}]}`))
	}))
	defer perMethod.Close()

	logger := otelzap.New(zap.NewNop())
	client := jadlog.New(jadlog.Config{URL: configured.URL}, logger, nil)

	cfg := testConfig()
	cfg.WebserviceURL = perMethod.URL

	quote, err := client.Quote(context.Background(), cfg, testPackage())

	require.NoError(t, err)
	assert.Equal(t, 1, perMethodHits, "the method's endpoint takes the request")
	assert.InDelta(t, 20.00, quote.TotalValue, 1e-9)
	assert.Equal(t, 2, quote.DeliveryDays)
}

func TestClient_Quote_URLOverrideHook(t *testing.T) {
	var overrideHits int
	override := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		overrideHits++
		w.Write([]byte(`{"frete":[{"vltotal":"30,00","prazo":3}]}`))
	}))
	defer override.Close()

	logger := otelzap.New(zap.NewNop())
	client := jadlog.New(jadlog.Config{URL: "http://unused.example"}, logger, nil)

	cfg := testConfig()
	cfg.Overrides.WebserviceURL = func(string) string { return override.URL }

	quote, err := client.Quote(context.Background(), cfg, testPackage())

	require.NoError(t, err)
	assert.Equal(t, 1, overrideHits)
	assert.InDelta(t, 30.00, quote.TotalValue, 1e-9)
}
