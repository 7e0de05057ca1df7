package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/UnknownOlympus/dispatch/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

var (
	// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
	ErrEmptyResponse = errors.New("get empty response from Google Maps API")
	// ErrMissingRoute is returned when the best result has no street (route) component.
	ErrMissingRoute = errors.New("google Maps API result has no route component")
)

// NewGoogleProvider initializes a new GoogleProvider with the given client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Geocode resolves the address line with the Google Maps Geocoding API and maps the
// components of the best result onto an Address. Short names are used for the street
// and the state so they stay close to how addresses are usually written.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.Address, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	req := maps.GeocodingRequest{Address: address}
	geocodeResponse, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	if len(geocodeResponse) == 0 {
		return nil, ErrEmptyResponse
	}

	result := &models.Address{Full: address}
	for _, component := range geocodeResponse[0].AddressComponents {
		switch {
		case hasType(component, "street_number"):
			result.Number = leadingInt(component.LongName)
		case hasType(component, "route"):
			result.Street = component.ShortName
		case hasType(component, "locality"):
			result.City = component.LongName
		case hasType(component, "administrative_area_level_1"):
			result.State = component.ShortName
		case hasType(component, "postal_code"):
			result.Zip = leadingInt(component.LongName)
		}
	}

	if result.Street == "" {
		return nil, ErrMissingRoute
	}

	return result, nil
}

func hasType(component maps.AddressComponent, typ string) bool {
	return slices.Contains(component.Types, typ)
}
