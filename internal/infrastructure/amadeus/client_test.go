package amadeus_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trip-planner-backend/internal/config"
	"github.com/trip-planner-backend/internal/domain"
	"github.com/trip-planner-backend/internal/infrastructure/amadeus"
	"github.com/trip-planner-backend/internal/pkg/errors"
)

type upstream struct {
	tokenCalls  int32
	searchCalls int32

	// searchStatus returns the HTTP status for the n-th search call (1-based).
	searchStatus func(call int32) int
}

func (u *upstream) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&u.tokenCalls, 1)
		w.Write([]byte(`{"access_token":"tok-1","expires_in":1799,"token_type":"Bearer"}`))
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		call := atomic.AddInt32(&u.searchCalls, 1)
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if u.searchStatus != nil {
			if status := u.searchStatus(call); status != http.StatusOK {
				w.WriteHeader(status)
				return
			}
		}
		w.Write([]byte(`{"meta":{"count":1},"data":[{"id":"1","price":{"currency":"KRW","total":"250000.00"},"itineraries":[]}],"dictionaries":{"carriers":{"KE":"KOREAN AIR"}}}`))
	})
	return mux
}

func newTestClient(t *testing.T, baseURL string) *amadeus.Client {
	t.Helper()
	client, err := amadeus.NewClient(&config.AmadeusConfig{
		BaseURL:        baseURL,
		ClientID:       "id",
		ClientSecret:   "secret",
		Currency:       "KRW",
		RequestTimeout: 2 * time.Second,
	}, false, zap.NewNop())
	require.NoError(t, err)
	return client
}

var searchParams = domain.FlightSearchParams{
	Origin:        "ICN",
	Destination:   "NRT",
	DepartureDate: "2026-04-01",
	Adults:        1,
	Max:           5,
}

func TestClient_SearchOffers(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches a token then searches", func(t *testing.T) {
		up := &upstream{}
		server := httptest.NewServer(up.handler())
		defer server.Close()

		client := newTestClient(t, server.URL)
		resp, err := client.SearchOffers(ctx, searchParams)

		require.NoError(t, err)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "250000.00", resp.Data[0].Price.Total)
		assert.Equal(t, "KOREAN AIR", resp.Dictionaries.Carriers["KE"])
		assert.Equal(t, int32(1), atomic.LoadInt32(&up.tokenCalls))
	})

	t.Run("concurrent searches share one token fetch", func(t *testing.T) {
		up := &upstream{}
		server := httptest.NewServer(up.handler())
		defer server.Close()

		client := newTestClient(t, server.URL)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := client.SearchOffers(ctx, searchParams)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&up.tokenCalls))
		assert.Equal(t, int32(8), atomic.LoadInt32(&up.searchCalls))
	})

	t.Run("reuses the cached token across calls", func(t *testing.T) {
		up := &upstream{}
		server := httptest.NewServer(up.handler())
		defer server.Close()

		client := newTestClient(t, server.URL)
		_, err := client.SearchOffers(ctx, searchParams)
		require.NoError(t, err)
		_, err = client.SearchOffers(ctx, searchParams)
		require.NoError(t, err)

		assert.Equal(t, int32(1), atomic.LoadInt32(&up.tokenCalls))
	})

	t.Run("retries a 401 once after refreshing the token", func(t *testing.T) {
		up := &upstream{
			searchStatus: func(call int32) int {
				if call == 1 {
					return http.StatusUnauthorized
				}
				return http.StatusOK
			},
		}
		server := httptest.NewServer(up.handler())
		defer server.Close()

		client := newTestClient(t, server.URL)
		resp, err := client.SearchOffers(ctx, searchParams)

		require.NoError(t, err)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, int32(2), atomic.LoadInt32(&up.tokenCalls))
		assert.Equal(t, int32(2), atomic.LoadInt32(&up.searchCalls))
	})

	t.Run("repeated 401 maps to upstream unavailable", func(t *testing.T) {
		up := &upstream{
			searchStatus: func(call int32) int { return http.StatusUnauthorized },
		}
		server := httptest.NewServer(up.handler())
		defer server.Close()

		client := newTestClient(t, server.URL)
		_, err := client.SearchOffers(ctx, searchParams)

		assert.Equal(t, errors.ErrFlightUpstream, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&up.searchCalls))
	})

	t.Run("400 maps to invalid parameters", func(t *testing.T) {
		up := &upstream{
			searchStatus: func(call int32) int { return http.StatusBadRequest },
		}
		server := httptest.NewServer(up.handler())
		defer server.Close()

		client := newTestClient(t, server.URL)
		_, err := client.SearchOffers(ctx, searchParams)
		assert.Equal(t, errors.ErrInvalidFlightParams, err)
	})

	t.Run("429 maps to rate limited", func(t *testing.T) {
		up := &upstream{
			searchStatus: func(call int32) int { return http.StatusTooManyRequests },
		}
		server := httptest.NewServer(up.handler())
		defer server.Close()

		client := newTestClient(t, server.URL)
		_, err := client.SearchOffers(ctx, searchParams)
		assert.Equal(t, errors.ErrFlightRateLimited, err)
	})

	t.Run("5xx maps to upstream unavailable", func(t *testing.T) {
		up := &upstream{
			searchStatus: func(call int32) int { return http.StatusBadGateway },
		}
		server := httptest.NewServer(up.handler())
		defer server.Close()

		client := newTestClient(t, server.URL)
		_, err := client.SearchOffers(ctx, searchParams)
		assert.Equal(t, errors.ErrFlightUpstream, err)
	})
}

func TestNewClient_ProductionCredentials(t *testing.T) {
	cfg := &config.AmadeusConfig{BaseURL: "https://api.amadeus.com", Currency: "KRW", RequestTimeout: time.Second}

	_, err := amadeus.NewClient(cfg, true, zap.NewNop())
	assert.Error(t, err)

	_, err = amadeus.NewClient(cfg, false, zap.NewNop())
	assert.NoError(t, err)
}
