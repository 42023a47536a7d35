package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// WeatherTTL is how long weather payloads stay cached.
const WeatherTTL = 30 * time.Minute

// ForecastKind describes one Google Weather API endpoint.
type ForecastKind struct {
	// Name labels the kind in metrics and doubles as its data source key.
	Name string
	// URL is the endpoint queried on a cache miss.
	URL string
	// CachePrefix starts every cache key for this kind.
	CachePrefix string
	// ResponseKey is the payload field whose presence means the call succeeded.
	ResponseKey string
	// Label names the kind in error messages.
	Label string
	// ExtraParams are added to every request.
	ExtraParams url.Values
}

var (
	CurrentConditions = ForecastKind{
		Name:        "current_weather",
		URL:         "https://weather.googleapis.com/v1/currentConditions:lookup",
		CachePrefix: "current_weather",
		ResponseKey: "currentTime",
		Label:       "current weather",
	}

	HourlyForecast = ForecastKind{
		Name:        "hourly_forecast",
		URL:         "https://weather.googleapis.com/v1/forecast/hours:lookup",
		CachePrefix: "hourly_forecast",
		ResponseKey: "forecastHours",
		Label:       "hourly forecast",
		ExtraParams: url.Values{"hours": {"12"}},
	}

	DailyForecast = ForecastKind{
		Name:        "daily_forecast",
		URL:         "https://weather.googleapis.com/v1/forecast/days:lookup",
		CachePrefix: "daily_forecast",
		ResponseKey: "forecastDays",
		Label:       "daily forecast",
		ExtraParams: url.Values{"days": {"7"}},
	}
)

// CacheKey returns the cache key for a lookup. When zipcode is set it wins
// over the coordinates, so nearby addresses in one postal code share an entry.
func (k ForecastKind) CacheKey(latitude, longitude float64, zipcode string) string {
	if zipcode != "" {
		return k.CachePrefix + "_" + zipcode
	}
	return k.CachePrefix + "_" + formatCoord(latitude) + "_" + formatCoord(longitude)
}

// WeatherFetcher fetches one ForecastKind from the Google Weather API,
// reading through the cache.
type WeatherFetcher struct {
	kind      ForecastKind
	apiKey    string
	transport Transport
	cache     Cache
}

// NewWeatherFetcher creates a fetcher for kind.
func NewWeatherFetcher(kind ForecastKind, transport Transport, cache Cache, apiKey string) *WeatherFetcher {
	return &WeatherFetcher{
		kind:      kind,
		apiKey:    apiKey,
		transport: transport,
		cache:     cache,
	}
}

// NewCurrentWeatherFetcher creates a fetcher for current conditions.
func NewCurrentWeatherFetcher(transport Transport, cache Cache, apiKey string) *WeatherFetcher {
	return NewWeatherFetcher(CurrentConditions, transport, cache, apiKey)
}

// NewHourlyForecastFetcher creates a fetcher for the next 12 hours.
func NewHourlyForecastFetcher(transport Transport, cache Cache, apiKey string) *WeatherFetcher {
	return NewWeatherFetcher(HourlyForecast, transport, cache, apiKey)
}

// NewDailyForecastFetcher creates a fetcher for the next 7 days.
func NewDailyForecastFetcher(transport Transport, cache Cache, apiKey string) *WeatherFetcher {
	return NewWeatherFetcher(DailyForecast, transport, cache, apiKey)
}

// WithBaseURL returns a copy of f that queries baseURL instead.
func (f *WeatherFetcher) WithBaseURL(baseURL string) *WeatherFetcher {
	cp := *f
	cp.kind.URL = baseURL
	return &cp
}

// Kind returns the endpoint description f was built with.
func (f *WeatherFetcher) Kind() ForecastKind {
	return f.kind
}

// Fetch returns the weather payload for the coordinates. zipcode may be
// empty. It fails with ErrTransport when the provider cannot be reached or
// answers with a non-success status, and with ErrNotFound when the payload
// lacks the kind's response key.
func (f *WeatherFetcher) Fetch(ctx context.Context, latitude, longitude float64, zipcode string) (Response, error) {
	key := f.kind.CacheKey(latitude, longitude, zipcode)

	return readThrough(ctx, f.cache, f.kind.Name, key, WeatherTTL, func(ctx context.Context) (Payload, error) {
		values := url.Values{}
		values.Set("key", f.apiKey)
		values.Set("location.latitude", formatCoord(latitude))
		values.Set("location.longitude", formatCoord(longitude))
		for k, vs := range f.kind.ExtraParams {
			for _, v := range vs {
				values.Add(k, v)
			}
		}

		status, body, err := f.transport.Get(ctx, f.kind.URL, values)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to fetch %s data: %v", ErrTransport, f.kind.Label, err)
		}
		if !isSuccess(status) {
			return nil, fmt.Errorf("%w: failed to fetch %s data: status %d", ErrTransport, f.kind.Label, status)
		}

		var payload Payload
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("%w: failed to decode %s data: %v", ErrTransport, f.kind.Label, err)
		}

		if !present(payload[f.kind.ResponseKey]) {
			return nil, fmt.Errorf("%w: no %s data found for coordinates: %s, %s",
				ErrNotFound, f.kind.Label, formatCoord(latitude), formatCoord(longitude))
		}

		return payload, nil
	})
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
