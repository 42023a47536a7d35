package weather

import (
	"context"

	"github.com/i474232898/weather-by-address/internal/weather/providers"
)

// GeocodeFetcher resolves an address to a raw geocode payload.
type GeocodeFetcher interface {
	Fetch(ctx context.Context, address string) (providers.Response, error)
}

// ForecastFetcher fetches one weather view for a coordinate pair. zipcode
// may be empty.
type ForecastFetcher interface {
	Fetch(ctx context.Context, latitude, longitude float64, zipcode string) (providers.Response, error)
}
