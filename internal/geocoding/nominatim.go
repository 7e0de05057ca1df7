package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/dispatch/internal/models"
	"golang.org/x/time/rate"
)

const (
	nominatimBaseURL   = "https://nominatim.openstreetmap.org/search"
	nominatimUserAgent = "Dispatch-Assignment/1.0 (https://github.com/UnknownOlympus/dispatch)"
	nominatimTimeout   = 10 * time.Second
)

// NominatimProvider implements the Provider interface using OpenStreetMap's Nominatim API.
// This is a free geocoding service with usage limits (1 request/second for fair use).
type NominatimProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the Nominatim API
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter honoring the usage policy
	// userAgent is required by Nominatim usage policy
	userAgent string
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// nominatimResponse represents one result of the Nominatim search API with address details.
type nominatimResponse struct {
	Address struct {
		HouseNumber string `json:"house_number"`
		Road        string `json:"road"`
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		State       string `json:"state"`
		Postcode    string `json:"postcode"`
	} `json:"address"`
}

// Common errors for Nominatim provider.
var (
	ErrNominatimEmptyResponse = errors.New("nominatim API returned empty response")
	ErrNominatimMissingRoad   = errors.New("nominatim API result has no road")
)

// NewNominatimProvider creates a new Nominatim geocoding provider limited to
// rateLimit requests per second. A zero timeout uses the default of 10 seconds.
func NewNominatimProvider(rateLimit int, timeout time.Duration, log *slog.Logger) *NominatimProvider {
	if timeout <= 0 {
		timeout = nominatimTimeout
	}

	provider := NewNominatimProviderWithClient(&http.Client{Timeout: timeout}, log)
	provider.limiter = rate.NewLimiter(rate.Limit(rateLimit), 1)

	return provider
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom HTTP client
// and no rate limit. Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(client HTTPClient, log *slog.Logger) *NominatimProvider {
	return &NominatimProvider{
		client:    client,
		baseURL:   nominatimBaseURL,
		log:       log,
		limiter:   rate.NewLimiter(rate.Inf, 1),
		userAgent: nominatimUserAgent,
	}
}

// Geocode converts an address line to a structured address using the Nominatim API.
// It respects Nominatim's usage policy by including a User-Agent header and waiting
// for the rate limiter before every request.
func (np *NominatimProvider) Geocode(ctx context.Context, address string) (*models.Address, error) {
	np.log.DebugContext(ctx, "Geocoding using Nominatim", "address", address)

	if err := np.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", address)
	query.Set("format", "jsonv2")
	query.Set("limit", "1")          // Only need the top result
	query.Set("addressdetails", "1") // Structured address breakdown
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", np.userAgent)

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	np.log.DebugContext(ctx, "Nominatim raw response", "body", string(body))

	var results []nominatimResponse
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrNominatimEmptyResponse
	}

	details := results[0].Address
	if details.Road == "" {
		return nil, ErrNominatimMissingRoad
	}

	city := details.City
	if city == "" {
		city = details.Town
	}
	if city == "" {
		city = details.Village
	}

	return &models.Address{
		Full:   address,
		Number: leadingInt(details.HouseNumber),
		Street: details.Road,
		City:   city,
		State:  details.State,
		Zip:    leadingInt(details.Postcode),
	}, nil
}
