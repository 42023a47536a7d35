package weather

import (
	"testing"

	"github.com/i474232898/weather-by-address/internal/weather/providers"
)

func TestResultFromCache(t *testing.T) {
	sources := map[DataSource]providers.Source{
		DataSourceGeocode:        providers.SourceCache,
		DataSourceCurrentWeather: providers.SourceAPI,
		DataSourceHourlyForecast: providers.SourceAPI,
		DataSourceDailyForecast:  providers.SourceCache,
	}
	r := NewResult(WeatherAtLocation{}, sources)

	tests := []struct {
		key  DataSource
		want bool
	}{
		{DataSourceGeocode, true},
		{DataSourceCurrentWeather, false},
		{DataSourceHourlyForecast, false},
		{DataSourceDailyForecast, true},
		{DataSource("unknown"), false},
	}
	for _, tt := range tests {
		if got := r.FromCache(tt.key); got != tt.want {
			t.Fatalf("FromCache(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestResultSourcesAreCopied(t *testing.T) {
	sources := map[DataSource]providers.Source{DataSourceGeocode: providers.SourceAPI}
	r := NewResult(WeatherAtLocation{}, sources)

	sources[DataSourceGeocode] = providers.SourceCache
	if r.FromCache(DataSourceGeocode) {
		t.Fatal("result shares the caller's source map")
	}

	out := r.Sources()
	out[DataSourceGeocode] = providers.SourceCache
	if r.FromCache(DataSourceGeocode) {
		t.Fatal("Sources exposes internal storage")
	}

	if _, ok := r.Source(DataSourceDailyForecast); ok {
		t.Fatal("expected no tag for a key that was never recorded")
	}
}

func TestResultDelegatesToAggregate(t *testing.T) {
	loc, _ := NewLocation(-23.55, -46.63, "01310-100", "")
	cw := NewCurrentWeather(CurrentWeatherParams{TemperatureDegrees: 25.3, Condition: UnknownCondition})
	hourly := []HourlyForecastEntry{NewHourlyForecastEntry(HourlyForecastParams{TemperatureDegrees: 20})}
	r := NewResult(NewWeatherAtLocation(loc, cw, hourly, nil), nil)

	if r.Location() != loc {
		t.Fatalf("expected %+v, got %+v", loc, r.Location())
	}
	if r.CurrentWeather().TemperatureDegrees() != 25.3 {
		t.Fatalf("expected 25.3, got %v", r.CurrentWeather().TemperatureDegrees())
	}
	if len(r.HourlyForecast()) != 1 || len(r.DailyForecast()) != 0 {
		t.Fatalf("unexpected forecast lengths %d/%d", len(r.HourlyForecast()), len(r.DailyForecast()))
	}
}
