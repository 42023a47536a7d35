package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

const (
	// GeocodeURL is the Google Geocoding API endpoint.
	GeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

	// GeocodeTTL is how long geocode payloads stay cached. Addresses rarely move.
	GeocodeTTL = 7 * 24 * time.Hour

	geocodeCachePrefix = "geocode_"
	geocodeZeroResults = "ZERO_RESULTS"
)

// GeocodeFetcher resolves an address to the Geocoding API's raw payload,
// reading through the cache.
type GeocodeFetcher struct {
	apiKey    string
	baseURL   string
	transport Transport
	cache     Cache
}

// NewGeocodeFetcher creates a fetcher for the public Google endpoint.
func NewGeocodeFetcher(transport Transport, cache Cache, apiKey string) *GeocodeFetcher {
	return &GeocodeFetcher{
		apiKey:    apiKey,
		baseURL:   GeocodeURL,
		transport: transport,
		cache:     cache,
	}
}

// WithBaseURL returns a copy of f that queries baseURL instead.
func (f *GeocodeFetcher) WithBaseURL(baseURL string) *GeocodeFetcher {
	cp := *f
	cp.baseURL = baseURL
	return &cp
}

// GeocodeCacheKey returns the cache key for address. The address is used
// verbatim; callers trim it first.
func GeocodeCacheKey(address string) string {
	return geocodeCachePrefix + address
}

// Fetch returns the geocode payload for address. It fails with ErrTransport
// when the provider cannot be reached or answers with a non-success status,
// and with ErrNotFound when the provider reports zero results.
func (f *GeocodeFetcher) Fetch(ctx context.Context, address string) (Response, error) {
	return readThrough(ctx, f.cache, "geocode", GeocodeCacheKey(address), GeocodeTTL, func(ctx context.Context) (Payload, error) {
		values := url.Values{}
		values.Set("key", f.apiKey)
		values.Set("address", address)

		status, body, err := f.transport.Get(ctx, f.baseURL, values)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to fetch geocode data: %v", ErrTransport, err)
		}
		if !isSuccess(status) {
			return nil, fmt.Errorf("%w: failed to fetch geocode data: status %d", ErrTransport, status)
		}

		var payload Payload
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("%w: failed to decode geocode data: %v", ErrTransport, err)
		}

		if s, _ := payload["status"].(string); s == geocodeZeroResults {
			return nil, fmt.Errorf("%w: no geocode data found for address: %s", ErrNotFound, address)
		}

		return payload, nil
	})
}
