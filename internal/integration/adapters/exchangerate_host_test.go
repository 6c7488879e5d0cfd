package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeRateHostSource_FetchRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/historical", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("access_key"))
		assert.Equal(t, "2024-03-05", r.URL.Query().Get("date"))
		assert.Equal(t, "USD", r.URL.Query().Get("source"))
		assert.Equal(t, "EUR", r.URL.Query().Get("currencies"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"historical":true,"source":"USD","quotes":{"USDEUR":0.917404}}`))
	}))
	defer server.Close()

	source := NewExchangeRateHostSource(ExchangeRateHostConfig{BaseURL: server.URL + "/", AccessKey: "secret"}, server.Client())

	rate, err := source.FetchRate(context.Background(), "USD", "EUR", time.Date(2024, time.March, 5, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.917404")))
}

func TestExchangeRateHostSource_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "provider error", status: http.StatusOK, body: `{"success":false,"error":{"code":101,"info":"invalid access key"}}`},
		{name: "missing quote", status: http.StatusOK, body: `{"success":true,"quotes":{"USDGBP":0.8}}`},
		{name: "server error", status: http.StatusBadGateway, body: `bad gateway`},
		{name: "malformed body", status: http.StatusOK, body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			source := NewExchangeRateHostSource(ExchangeRateHostConfig{BaseURL: server.URL}, server.Client())
			_, err := source.FetchRate(context.Background(), "USD", "EUR", time.Now())
			assert.Error(t, err)
		})
	}
}

func TestExchangeRateHostSource_TimesOut(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	source := NewExchangeRateHostSource(ExchangeRateHostConfig{BaseURL: server.URL}, server.Client())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := source.FetchRate(ctx, "USD", "EUR", time.Now())
	assert.Error(t, err)
}

func TestExchangeRateHostSource_ThrottlesPastDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"quotes":{"USDEUR":0.9}}`))
	}))
	defer server.Close()

	source := NewExchangeRateHostSource(ExchangeRateHostConfig{
		BaseURL:           server.URL,
		RequestsPerSecond: 0.01,
		Burst:             1,
	}, server.Client())

	_, err := source.FetchRate(context.Background(), "USD", "EUR", time.Now())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = source.FetchRate(ctx, "USD", "EUR", time.Now())
	assert.ErrorIs(t, err, errThrottled)
}
