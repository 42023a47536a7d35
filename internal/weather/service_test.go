package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/i474232898/weather-by-address/internal/weather/providers"
)

type fakeGeocoder struct {
	resp    providers.Response
	err     error
	address string
}

func (f *fakeGeocoder) Fetch(_ context.Context, address string) (providers.Response, error) {
	f.address = address
	return f.resp, f.err
}

type fakeForecast struct {
	resp  providers.Response
	err   error
	delay time.Duration
	calls atomic.Int32

	mu      sync.Mutex
	lat     float64
	lng     float64
	zipcode string
}

func (f *fakeForecast) Fetch(_ context.Context, lat, lng float64, zipcode string) (providers.Response, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.lat, f.lng, f.zipcode = lat, lng, zipcode
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.resp, f.err
}

type serviceFixture struct {
	geocoder *fakeGeocoder
	current  *fakeForecast
	hourly   *fakeForecast
	daily    *fakeForecast
	service  *Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		geocoder: &fakeGeocoder{resp: providers.Response{Data: mustPayload(t, geocodeSaoPaulo), Source: providers.SourceAPI}},
		current:  &fakeForecast{resp: providers.Response{Data: mustPayload(t, currentWeatherSuccess), Source: providers.SourceAPI}},
		hourly:   &fakeForecast{resp: providers.Response{Data: mustPayload(t, hourlyForecastSuccess), Source: providers.SourceAPI}},
		daily:    &fakeForecast{resp: providers.Response{Data: mustPayload(t, dailyForecastSuccess), Source: providers.SourceAPI}},
	}
	f.service = NewService(f.geocoder, f.current, f.hourly, f.daily)
	return f
}

func TestWeatherByAddress(t *testing.T) {
	f := newServiceFixture(t)

	res, err := f.service.WeatherByAddress(context.Background(), "  São Paulo, Brazil  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.geocoder.address != "São Paulo, Brazil" {
		t.Fatalf("expected trimmed address, got %q", f.geocoder.address)
	}
	if res.Location().Latitude() != -23.55 {
		t.Fatalf("expected latitude -23.55, got %v", res.Location().Latitude())
	}
	if res.CurrentWeather().TemperatureDegrees() != 25.3 {
		t.Fatalf("expected temperature 25.3, got %v", res.CurrentWeather().TemperatureDegrees())
	}
	if c := res.CurrentWeather().Condition(); c.Description() != "Partly cloudy" || c.Type() != "PARTLY_CLOUDY" {
		t.Fatalf("unexpected condition %+v", c)
	}
	if len(res.HourlyForecast()) != 2 || len(res.DailyForecast()) != 1 {
		t.Fatalf("unexpected forecast lengths %d/%d", len(res.HourlyForecast()), len(res.DailyForecast()))
	}

	if src, _ := res.Source(DataSourceGeocode); src != providers.SourceAPI {
		t.Fatalf("expected geocode api_response, got %q", src)
	}
	if res.FromCache(DataSourceGeocode) {
		t.Fatal("expected geocode not to be from cache")
	}

	for _, ff := range []*fakeForecast{f.current, f.hourly, f.daily} {
		if ff.calls.Load() != 1 {
			t.Fatalf("expected one call, got %d", ff.calls.Load())
		}
		if ff.lat != -23.55 || ff.lng != -46.63 || ff.zipcode != "01310-100" {
			t.Fatalf("unexpected fetch arguments %v,%v,%q", ff.lat, ff.lng, ff.zipcode)
		}
	}
}

func TestWeatherByAddressRecordsEachSource(t *testing.T) {
	f := newServiceFixture(t)
	f.geocoder.resp.Source = providers.SourceCache
	f.hourly.resp.Source = providers.SourceCache

	res, err := f.service.WeatherByAddress(context.Background(), "São Paulo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[DataSource]bool{
		DataSourceGeocode:        true,
		DataSourceCurrentWeather: false,
		DataSourceHourlyForecast: true,
		DataSourceDailyForecast:  false,
	}
	for key, cached := range want {
		if res.FromCache(key) != cached {
			t.Fatalf("FromCache(%q) = %v, want %v", key, res.FromCache(key), cached)
		}
	}
	if len(res.Sources()) != 4 {
		t.Fatalf("expected 4 sources, got %d", len(res.Sources()))
	}
}

func TestWeatherByAddressRunsWeatherFetchesConcurrently(t *testing.T) {
	f := newServiceFixture(t)
	for _, ff := range []*fakeForecast{f.current, f.hourly, f.daily} {
		ff.delay = 100 * time.Millisecond
	}

	start := time.Now()
	if _, err := f.service.WeatherByAddress(context.Background(), "São Paulo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed >= 250*time.Millisecond {
		t.Fatalf("expected concurrent fetches, took %v", elapsed)
	}
}

func TestWeatherByAddressAddressNotFound(t *testing.T) {
	f := newServiceFixture(t)
	f.geocoder.err = fmt.Errorf("%w: no geocode data found for address: nonexistent place", providers.ErrNotFound)

	_, err := f.service.WeatherByAddress(context.Background(), "nonexistent place")
	if !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
	if errors.Is(err, providers.ErrNotFound) {
		t.Fatal("provider error leaked past the service")
	}

	for _, ff := range []*fakeForecast{f.current, f.hourly, f.daily} {
		if ff.calls.Load() != 0 {
			t.Fatal("weather fetch attempted after geocode failure")
		}
	}
}

func TestWeatherByAddressGeocodeTransportError(t *testing.T) {
	f := newServiceFixture(t)
	f.geocoder.err = fmt.Errorf("%w: failed to fetch geocode data: status 403", providers.ErrTransport)

	_, err := f.service.WeatherByAddress(context.Background(), "São Paulo")
	if !errors.Is(err, ErrService) {
		t.Fatalf("expected ErrService, got %v", err)
	}
	if errors.Is(err, providers.ErrTransport) {
		t.Fatal("provider error leaked past the service")
	}

	var appErr *Error
	if !errors.As(err, &appErr) || !errors.Is(appErr.Cause(), providers.ErrTransport) {
		t.Fatalf("expected cause to be kept, got %v", err)
	}
	if strings.Contains(appErr.Message, "403") {
		t.Fatalf("provider detail copied into message: %q", appErr.Message)
	}
}

func TestWeatherByAddressInvalidCoordinates(t *testing.T) {
	f := newServiceFixture(t)
	f.geocoder.resp.Data = providers.Payload{"status": "OK", "results": []any{}}

	_, err := f.service.WeatherByAddress(context.Background(), "São Paulo")
	if !errors.Is(err, ErrService) {
		t.Fatalf("expected ErrService, got %v", err)
	}
	if f.current.calls.Load() != 0 {
		t.Fatal("weather fetch attempted without a location")
	}
}

func TestWeatherByAddressWeatherErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *serviceFixture)
		want  error
	}{
		{
			name: "current weather not found",
			setup: func(f *serviceFixture) {
				f.current.err = fmt.Errorf("%w: no current weather data", providers.ErrNotFound)
			},
			want: ErrWeatherNotFound,
		},
		{
			name: "daily forecast not found",
			setup: func(f *serviceFixture) {
				f.daily.err = fmt.Errorf("%w: no daily forecast data", providers.ErrNotFound)
			},
			want: ErrWeatherNotFound,
		},
		{
			name: "hourly forecast transport error",
			setup: func(f *serviceFixture) {
				f.hourly.err = fmt.Errorf("%w: status 500", providers.ErrTransport)
			},
			want: ErrService,
		},
		{
			name: "unclassified error",
			setup: func(f *serviceFixture) {
				f.current.err = context.DeadlineExceeded
			},
			want: ErrService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)
			tt.setup(f)

			_, err := f.service.WeatherByAddress(context.Background(), "São Paulo")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestWeatherByAddressMultipleWeatherFailures(t *testing.T) {
	f := newServiceFixture(t)
	f.current.err = fmt.Errorf("%w: no current weather data", providers.ErrNotFound)
	f.hourly.err = fmt.Errorf("%w: status 500", providers.ErrTransport)
	f.daily.err = fmt.Errorf("%w: no daily forecast data", providers.ErrNotFound)

	_, err := f.service.WeatherByAddress(context.Background(), "São Paulo")
	if !errors.Is(err, ErrWeatherNotFound) && !errors.Is(err, ErrService) {
		t.Fatalf("expected an application error, got %v", err)
	}

	// Siblings are not cancelled.
	for _, ff := range []*fakeForecast{f.current, f.hourly, f.daily} {
		if ff.calls.Load() != 1 {
			t.Fatalf("expected every fetch to run once, got %d", ff.calls.Load())
		}
	}
}
