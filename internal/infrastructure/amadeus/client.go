package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/trip-planner-backend/internal/config"
	"github.com/trip-planner-backend/internal/domain"
	"github.com/trip-planner-backend/internal/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// tokenExpirySkew refreshes the token this long before its declared expiry.
const tokenExpirySkew = 60 * time.Second

// Client wraps the Amadeus self-service API: OAuth2 client-credentials
// token lifecycle plus the Flight Offers Search endpoint.
//
// Token state is shared by concurrent searches. Go schedules goroutines
// preemptively, so the check-then-refresh is guarded by a mutex and
// concurrent refreshes are collapsed into one upstream call via
// singleflight.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	currency     string
	logger       *zap.Logger

	mu             sync.Mutex
	accessToken    string
	tokenExpiresAt time.Time
	tokenGroup     singleflight.Group
}

// NewClient validates credentials eagerly: a production configuration
// without client credentials is a deployment error, not a first-request
// surprise.
func NewClient(cfg *config.AmadeusConfig, production bool, logger *zap.Logger) (*Client, error) {
	if production && (cfg.ClientID == "" || cfg.ClientSecret == "") {
		return nil, fmt.Errorf("amadeus credentials are required in production")
	}

	return &Client{
		httpClient:   &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:      cfg.BaseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		currency:     cfg.Currency,
		logger:       logger,
	}, nil
}

// SearchOffers runs a priced search. A 401 response invalidates the cached
// token and retries the whole search exactly once; a second failure is
// mapped like any other upstream error.
func (c *Client) SearchOffers(ctx context.Context, p domain.FlightSearchParams) (*domain.AmadeusFlightOffersResponse, error) {
	resp, err := c.doSearch(ctx, p)
	if err != nil {
		if statusOf(err) == http.StatusUnauthorized {
			c.logger.Warn("Amadeus token expired, refreshing and retrying")
			c.invalidateToken()
			resp, err = c.doSearch(ctx, p)
		}
		if err != nil {
			return nil, c.mapError(err)
		}
	}
	return resp, nil
}

func (c *Client) doSearch(ctx context.Context, p domain.FlightSearchParams) (*domain.AmadeusFlightOffersResponse, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("originLocationCode", p.Origin)
	query.Set("destinationLocationCode", p.Destination)
	query.Set("departureDate", p.DepartureDate)
	query.Set("adults", strconv.Itoa(p.Adults))
	query.Set("nonStop", strconv.FormatBool(p.NonStop))
	query.Set("max", strconv.Itoa(p.Max))
	query.Set("currencyCode", c.currency)
	if p.ReturnDate != "" {
		query.Set("returnDate", p.ReturnDate)
	}

	searchURL := fmt.Sprintf("%s/v2/shopping/flight-offers?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &upstreamError{status: resp.StatusCode, body: string(body)}
	}

	var offers domain.AmadeusFlightOffersResponse
	if err := json.NewDecoder(resp.Body).Decode(&offers); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &offers, nil
}

// getToken returns the cached bearer token while it is still valid,
// otherwise joins (or starts) the single in-flight refresh.
func (c *Client) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.accessToken != "" && time.Now().Before(c.tokenExpiresAt) {
		token := c.accessToken
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	v, err, _ := c.tokenGroup.Do("token", func() (interface{}, error) {
		return c.fetchToken(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) fetchToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	tokenURL := c.baseURL + "/v1/security/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &upstreamError{status: resp.StatusCode, body: string(body)}
	}

	var token TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	c.mu.Lock()
	c.accessToken = token.AccessToken
	c.tokenExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenExpirySkew)
	c.mu.Unlock()

	c.logger.Debug("Amadeus token refreshed",
		zap.Int("expires_in", token.ExpiresIn))

	return token.AccessToken, nil
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.accessToken = ""
	c.tokenExpiresAt = time.Time{}
	c.mu.Unlock()
}

// upstreamError carries an upstream HTTP status through the retry logic.
type upstreamError struct {
	status int
	body   string
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("amadeus returned status %d: %s", e.status, e.body)
}

func statusOf(err error) int {
	if ue, ok := err.(*upstreamError); ok {
		return ue.status
	}
	return 0
}

// mapError classifies upstream failures: 400 is an invalid-parameters
// error, 429 a rate limit, everything else (5xx, transport, repeated 401)
// an unavailable upstream.
func (c *Client) mapError(err error) error {
	ue, ok := err.(*upstreamError)
	if !ok {
		c.logger.Error("Amadeus request failed", zap.Error(err))
		return errors.ErrFlightUpstream
	}

	c.logger.Error("Amadeus API error",
		zap.Int("status", ue.status),
		zap.String("body", ue.body))

	switch {
	case ue.status == http.StatusBadRequest:
		return errors.ErrInvalidFlightParams
	case ue.status == http.StatusTooManyRequests:
		return errors.ErrFlightRateLimited
	default:
		return errors.ErrFlightUpstream
	}
}
