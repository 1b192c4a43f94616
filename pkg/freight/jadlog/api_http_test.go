package jadlog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/datadev/jadlog/pkg/freight/jadlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freteRequest() *jadlog.FreteRequest {
	return &jadlog.FreteRequest{
		Frete: []jadlog.Frete{{
			CepOri:     "80010000",
			CepDes:     "01310100",
			Frap:       "N",
			Peso:       "0.50",
			CNPJ:       "11222333000181",
			Conta:      "100",
			Contrato:   "200",
			Modalidade: "0",
			TpEntrega:  "D",
			TpSeguro:   "N",
		}},
	}
}

func TestHTTPAPIClient_GetFreight_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req jadlog.FreteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Frete, 1)
		assert.Equal(t, "01310100", req.Frete[0].CepDes)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"frete":[{"vltotal":"27,93","prazo":"4"}]}`))
	}))
	defer server.Close()

	client := jadlog.NewHTTPAPIClient(jadlog.HTTPAPIClientConfig{URL: server.URL})
	resp, err := client.GetFreight(context.Background(), "", freteRequest(), "test-token")

	require.NoError(t, err)
	require.Len(t, resp.Frete, 1)
	require.NotNil(t, resp.Frete[0].VlTotal)
	assert.InDelta(t, 27.93, float64(*resp.Frete[0].VlTotal), 1e-9)
	assert.Equal(t, 4, int(resp.Frete[0].Prazo))
}

func TestHTTPAPIClient_GetFreight_CarrierErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":{"id":-1,"descricao":"CNPJ não autorizado"}}`))
	}))
	defer server.Close()

	client := jadlog.NewHTTPAPIClient(jadlog.HTTPAPIClientConfig{URL: server.URL})
	resp, err := client.GetFreight(context.Background(), "", freteRequest(), "test-token")

	require.NoError(t, err, "a 2xx body with a carrier error decodes normally")
	require.NotNil(t, resp.Error)
	assert.Equal(t, "-1", string(resp.Error.ID))
	assert.Equal(t, "CNPJ não autorizado", resp.Error.Descricao)
}

func TestHTTPAPIClient_GetFreight_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := jadlog.NewHTTPAPIClient(jadlog.HTTPAPIClientConfig{URL: server.URL})
	_, err := client.GetFreight(context.Background(), "", freteRequest(), "bad-token")

	require.Error(t, err)
	var statusErr *jadlog.HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}

func TestHTTPAPIClient_GetFreight_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway timeout</html>`))
	}))
	defer server.Close()

	client := jadlog.NewHTTPAPIClient(jadlog.HTTPAPIClientConfig{URL: server.URL})
	_, err := client.GetFreight(context.Background(), "", freteRequest(), "test-token")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid response")
}

func TestHTTPAPIClient_GetFreight_ConnectionRefused(t *testing.T) {
	client := jadlog.NewHTTPAPIClient(jadlog.HTTPAPIClientConfig{URL: "http://127.0.0.1:1"})
	_, err := client.GetFreight(context.Background(), "", freteRequest(), "test-token")

	require.Error(t, err)
}

func TestFreteQuote_Decode(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantTotal float64
		wantPrazo int
	}{
		{"comma decimal string", `{"vltotal":"42,50","prazo":"3"}`, 42.50, 3},
		{"dot decimal string", `{"vltotal":"42.50","prazo":3}`, 42.50, 3},
		{"numeric fields", `{"vltotal":42.5,"prazo":3}`, 42.50, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var quote jadlog.FreteQuote
			require.NoError(t, json.Unmarshal([]byte(tt.body), &quote))
			require.NotNil(t, quote.VlTotal)
			assert.InDelta(t, tt.wantTotal, float64(*quote.VlTotal), 1e-9)
			assert.Equal(t, tt.wantPrazo, int(quote.Prazo))
		})
	}
}

func TestFreteQuote_Decode_MissingTotal(t *testing.T) {
	var quote jadlog.FreteQuote
	require.NoError(t, json.Unmarshal([]byte(`{"prazo":5}`), &quote))
	assert.Nil(t, quote.VlTotal)
}

func TestFrete_Marshal_NullVlColeta(t *testing.T) {
	payload, err := json.Marshal(freteRequest())
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"vlcoleta":null`)
	assert.Contains(t, string(payload), `"vldeclarado":0`)
}

func TestHTTPAPIClient_GetFreight_PerCallURL(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"frete":[{"vltotal":"27,93","prazo":4}]}`))
	}))
	defer server.Close()

	client := jadlog.NewHTTPAPIClient(jadlog.HTTPAPIClientConfig{URL: "http://unused.example"})
	_, err := client.GetFreight(context.Background(), server.URL, freteRequest(), "test-token")

	require.NoError(t, err)
	assert.Equal(t, 1, hits, "the per-call URL wins over the configured one")
}
