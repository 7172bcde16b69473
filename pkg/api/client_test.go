package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"glassquote/internal/models"
	"glassquote/internal/pricing"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "secret", 5*time.Second, zap.NewNop())
	c.http.SetRetryWaitTime(time.Millisecond).SetRetryMaxWaitTime(5 * time.Millisecond)
	return c
}

func TestFetchRules(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pricingRulesPath, r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"productType":"MIRROR","basePrice":14,"laborPrice":60,"minimumCharge":120},
			{"productType":"CASEMENT","glassType":"LOW_E","basePrice":36,"laborPrice":100,"minimumCharge":260}
		]`))
	})

	rules, err := c.FetchRules(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, models.ProductMirror, rules[0].ProductType)
	assert.Equal(t, models.GlassLowE, rules[1].GlassType)
	assert.Equal(t, 260.0, rules[1].MinimumCharge)
}

func TestFetchRules_Empty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.FetchRules(context.Background())
	assert.ErrorIs(t, err, pricing.ErrEmptyRuleSet)
}

func TestFetchRules_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[{"productType":"SLIDER","basePrice":26}]`))
	})

	rules, err := c.FetchRules(context.Background())
	require.NoError(t, err)
	assert.Len(t, rules, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchRules_ClientError(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.FetchRules(context.Background())
	assert.ErrorContains(t, err, "unexpected status: 401")
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchRules_BadBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rules":`))
	})

	_, err := c.FetchRules(context.Background())
	assert.ErrorContains(t, err, "decode response")
}
