package weather

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/weather-by-address/internal/weather/providers"
)

// Service resolves an address into current, hourly and daily weather.
type Service struct {
	geocoder GeocodeFetcher
	current  ForecastFetcher
	hourly   ForecastFetcher
	daily    ForecastFetcher
}

// NewService creates a new Service.
func NewService(geocoder GeocodeFetcher, current, hourly, daily ForecastFetcher) *Service {
	return &Service{
		geocoder: geocoder,
		current:  current,
		hourly:   hourly,
		daily:    daily,
	}
}

// WeatherByAddress geocodes address, fetches the three weather views for the
// resulting location concurrently and assembles them into a Result.
//
// The address is trimmed but not otherwise checked; callers reject blank
// input. Failures are *Error values of kind ErrAddressNotFound,
// ErrWeatherNotFound or ErrService. When several weather fetches fail, the
// first one to return is reported and the others still run to completion.
func (s *Service) WeatherByAddress(ctx context.Context, address string) (Result, error) {
	address = strings.TrimSpace(address)
	reqID := uuid.NewString()

	geo, err := s.geocoder.Fetch(ctx, address)
	if err != nil {
		log.Printf("weather[%s]: geocode failed for %q: %v", reqID, address, err)
		return Result{}, translateGeocodeError(address, err)
	}

	loc, err := BuildLocation(geo.Data)
	if err != nil {
		log.Printf("weather[%s]: geocode payload for %q has no usable location: %v", reqID, address, err)
		return Result{}, newError(ErrService, "could not resolve coordinates for address: "+address, err)
	}

	log.Printf("DEBUG: weather[%s]: %q resolved to %v,%v zipcode=%q (%s)",
		reqID, address, loc.Latitude(), loc.Longitude(), loc.Zipcode(), geo.Source)

	var (
		g                      errgroup.Group
		current, hourly, daily providers.Response
	)

	lat, lng, zip := loc.Latitude(), loc.Longitude(), loc.Zipcode()
	g.Go(func() (err error) {
		current, err = s.current.Fetch(ctx, lat, lng, zip)
		return err
	})
	g.Go(func() (err error) {
		hourly, err = s.hourly.Fetch(ctx, lat, lng, zip)
		return err
	})
	g.Go(func() (err error) {
		daily, err = s.daily.Fetch(ctx, lat, lng, zip)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Printf("weather[%s]: weather fetch failed for %v,%v: %v", reqID, lat, lng, err)
		return Result{}, translateWeatherError(err)
	}

	w := NewWeatherAtLocation(
		loc,
		BuildCurrentWeather(current.Data),
		BuildHourlyForecastEntries(hourly.Data),
		BuildDailyForecastEntries(daily.Data),
	)

	sources := map[DataSource]providers.Source{
		DataSourceGeocode:        geo.Source,
		DataSourceCurrentWeather: current.Source,
		DataSourceHourlyForecast: hourly.Source,
		DataSourceDailyForecast:  daily.Source,
	}
	log.Printf("DEBUG: weather[%s]: sources %v", reqID, sources)

	return NewResult(w, sources), nil
}

func translateGeocodeError(address string, err error) *Error {
	if errors.Is(err, providers.ErrNotFound) {
		return newError(ErrAddressNotFound, "no results found for address: "+address, err)
	}
	return newError(ErrService, "geocoding service is unavailable", err)
}

func translateWeatherError(err error) *Error {
	if errors.Is(err, providers.ErrNotFound) {
		return newError(ErrWeatherNotFound, "no weather data found for this location", err)
	}
	return newError(ErrService, "weather service is unavailable", err)
}
