package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/trip-planner-backend/internal/config"
	"github.com/trip-planner-backend/internal/domain"
	"go.uber.org/zap"
)

// errorBodyLimit caps how much of a non-retryable response body is carried
// into the error for diagnostics.
const errorBodyLimit = 200

// Client posts Overpass QL queries with bounded retries. 429 and 5xx
// responses, transport failures and per-attempt timeouts are retried with a
// linearly growing delay; other 4xx responses fail immediately.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	retryBaseDelay time.Duration
	requestTimeout time.Duration
	logger         *zap.Logger
}

func NewClient(cfg *config.OverpassConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient:     &http.Client{},
		baseURL:        cfg.URL,
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}

// FetchByBoundingBox builds the query for bbox and returns the raw element
// list. region is only used for logging and error context.
func (c *Client) FetchByBoundingBox(ctx context.Context, region, bbox string) ([]domain.OverpassElement, error) {
	query := BuildQuery(bbox)

	c.logger.Info("Fetching Overpass data",
		zap.String("region", region),
		zap.String("bbox", bbox))

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		elements, retryable, err := c.fetchOnce(ctx, query)
		if err == nil {
			c.logger.Info("Overpass fetch succeeded",
				zap.String("region", region),
				zap.Int("elements", len(elements)),
				zap.Int("attempt", attempt))
			return elements, nil
		}
		if !retryable {
			return nil, fmt.Errorf("overpass request for %s: %w", region, err)
		}

		lastErr = err
		if attempt < c.maxRetries {
			delay := c.retryBaseDelay * time.Duration(attempt)
			c.logger.Warn("Overpass request failed, retrying",
				zap.String("region", region),
				zap.Int("attempt", attempt),
				zap.Int("max_retries", c.maxRetries),
				zap.Duration("delay", delay),
				zap.Error(err))

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("overpass fetch for %s failed after %d attempts: %w",
		region, c.maxRetries, lastErr)
}

// fetchOnce performs a single POST attempt under the per-attempt timeout.
// retryable marks timeouts, transport failures, 429 and 5xx.
func (c *Client) fetchOnce(ctx context.Context, query string) (elements []domain.OverpassElement, retryable bool, err error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	body := "data=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.baseURL, strings.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("overpass returned status %d", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, false, fmt.Errorf("overpass returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed domain.OverpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, true, fmt.Errorf("failed to decode response: %w", err)
	}

	return parsed.Elements, false, nil
}
