package overpass_test

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

	"github.com/trip-planner-backend/internal/config"
	"github.com/trip-planner-backend/internal/infrastructure/overpass"
)

func newTestClient(serverURL string, maxRetries int) *overpass.Client {
	return overpass.NewClient(&config.OverpassConfig{
		URL:            serverURL,
		RequestTimeout: 2 * time.Second,
		MaxRetries:     maxRetries,
		RetryBaseDelay: time.Millisecond,
	}, zap.NewNop())
}

func TestClient_FetchByBoundingBox(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes elements on success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, r.ParseForm())
			assert.Contains(t, r.PostForm.Get("data"), "[out:json]")

			w.Write([]byte(`{"elements":[
				{"type":"node","id":1,"lat":35.6,"lon":139.7,"tags":{"amenity":"cafe","name":"Blue Bottle"}},
				{"type":"way","id":2,"center":{"lat":35.61,"lon":139.71},"tags":{"leisure":"park"}}
			]}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL, 3)
		elements, err := client.FetchByBoundingBox(ctx, "Tokyo", "35.55,139.50,35.82,139.92")

		require.NoError(t, err)
		require.Len(t, elements, 2)
		assert.Equal(t, "node/1", elements[0].SourceID())
		assert.Equal(t, "way/2", elements[1].SourceID())

		lat, _, ok := elements[1].Coordinate()
		require.True(t, ok)
		assert.Equal(t, 35.61, lat)
	})

	t.Run("retries 429 and succeeds", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write([]byte(`{"elements":[]}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL, 3)
		elements, err := client.FetchByBoundingBox(ctx, "Osaka", "34.55,135.35,34.80,135.65")

		require.NoError(t, err)
		assert.Empty(t, elements)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("does not retry a 400", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("parse error near line 1"))
		}))
		defer server.Close()

		client := newTestClient(server.URL, 3)
		_, err := client.FetchByBoundingBox(ctx, "Kyoto", "34.90,135.65,35.10,135.85")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 400")
		assert.Contains(t, err.Error(), "parse error")
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusGatewayTimeout)
		}))
		defer server.Close()

		client := newTestClient(server.URL, 3)
		_, err := client.FetchByBoundingBox(ctx, "Sapporo", "42.95,141.20,43.18,141.50")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Sapporo")
		assert.Contains(t, err.Error(), "after 3 attempts")
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("retries malformed JSON", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.Write([]byte(`<html>gateway error</html>`))
				return
			}
			w.Write([]byte(`{"elements":[]}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL, 3)
		_, err := client.FetchByBoundingBox(ctx, "Naha", "26.15,127.60,26.35,127.78")

		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		client := newTestClient(server.URL, 3)
		_, err := client.FetchByBoundingBox(cancelCtx, "Fukuoka", "33.48,130.28,33.70,130.52")
		require.Error(t, err)
	})
}
