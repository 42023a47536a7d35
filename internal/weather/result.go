package weather

import "github.com/i474232898/weather-by-address/internal/weather/providers"

// DataSource names one of the four adapter calls behind a Result.
type DataSource string

const (
	DataSourceGeocode        DataSource = "geocode"
	DataSourceCurrentWeather DataSource = "current_weather"
	DataSourceHourlyForecast DataSource = "hourly_forecast"
	DataSourceDailyForecast  DataSource = "daily_forecast"
)

// DataSources lists every key a Result records, in display order.
var DataSources = []DataSource{
	DataSourceGeocode,
	DataSourceCurrentWeather,
	DataSourceHourlyForecast,
	DataSourceDailyForecast,
}

// Result is what Service returns: the weather aggregate plus, per adapter
// call, whether the payload came from the cache.
type Result struct {
	weather WeatherAtLocation
	sources map[DataSource]providers.Source
}

// NewResult copies sources.
func NewResult(w WeatherAtLocation, sources map[DataSource]providers.Source) Result {
	cp := make(map[DataSource]providers.Source, len(sources))
	for k, v := range sources {
		cp[k] = v
	}
	return Result{weather: w, sources: cp}
}

func (r Result) WeatherAtLocation() WeatherAtLocation  { return r.weather }
func (r Result) Location() Location                    { return r.weather.Location() }
func (r Result) CurrentWeather() CurrentWeather        { return r.weather.CurrentWeather() }
func (r Result) HourlyForecast() []HourlyForecastEntry { return r.weather.HourlyForecast() }
func (r Result) DailyForecast() []DailyForecastEntry   { return r.weather.DailyForecast() }

// Source returns the tag recorded for key.
func (r Result) Source(key DataSource) (providers.Source, bool) {
	s, ok := r.sources[key]
	return s, ok
}

// Sources returns a copy of the source map.
func (r Result) Sources() map[DataSource]providers.Source {
	cp := make(map[DataSource]providers.Source, len(r.sources))
	for k, v := range r.sources {
		cp[k] = v
	}
	return cp
}

// FromCache reports whether key was served from the cache. Unknown keys
// report false.
func (r Result) FromCache(key DataSource) bool {
	return r.sources[key] == providers.SourceCache
}
