package mapsclient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"googlemaps.github.io/maps"
)

// metersPerMile converts Distance Matrix meters to statute miles
var metersPerMile = decimal.RequireFromString("1609.344")

// ErrNoRoute is returned when the Distance Matrix has no driving route between the addresses
var ErrNoRoute = errors.New("no route between addresses")

// Client looks up driving distances between addresses
type Client struct {
	maps *maps.Client
}

// NewClient creates a Distance Matrix client. Extra options (e.g. maps.WithBaseURL)
// are passed through to the underlying client.
func NewClient(apiKey string, opts ...maps.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("maps API key is required")
	}

	c, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	return &Client{maps: c}, nil
}

// DistanceMiles returns the driving distance from origin to destination,
// rounded to whole miles. No retry is attempted.
func (c *Client) DistanceMiles(ctx context.Context, origin, destination string) (decimal.Decimal, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return decimal.Zero, errors.New("origin and destination are required")
	}

	// One origin, one destination, driving
	resp, err := c.maps.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsImperial,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query distance matrix: %w", err)
	}

	// Single element expected
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return decimal.Zero, ErrNoRoute
	}
	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		return decimal.Zero, fmt.Errorf("%w: status %s", ErrNoRoute, element.Status)
	}

	return MetersToMiles(element.Distance.Meters), nil
}

// MetersToMiles converts meters to whole miles, rounding half away from zero
func MetersToMiles(meters int) decimal.Decimal {
	return decimal.NewFromInt(int64(meters)).Div(metersPerMile).Round(0)
}
