package weather

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	UnknownDescription   = "Unknown"
	UnknownConditionType = "UNKNOWN"
	DefaultTimeZoneID    = "UTC"
)

// ErrInvalidCoordinates is returned when a Location is built from
// coordinates that are missing, non-numeric or not finite.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Location represents a geocoded place. Zipcode and FormattedAddress are
// empty when the provider did not supply them.
type Location struct {
	latitude         float64
	longitude        float64
	zipcode          string
	formattedAddress string
}

// NewLocation validates the coordinates and normalizes the optional fields:
// surrounding whitespace is dropped and blank values become empty.
func NewLocation(latitude, longitude float64, zipcode, formattedAddress string) (Location, error) {
	if !finite(latitude) || !finite(longitude) {
		return Location{}, fmt.Errorf("%w: %v, %v", ErrInvalidCoordinates, latitude, longitude)
	}
	return Location{
		latitude:         latitude,
		longitude:        longitude,
		zipcode:          strings.TrimSpace(zipcode),
		formattedAddress: strings.TrimSpace(formattedAddress),
	}, nil
}

func (l Location) Latitude() float64        { return l.latitude }
func (l Location) Longitude() float64       { return l.longitude }
func (l Location) Zipcode() string          { return l.zipcode }
func (l Location) FormattedAddress() string { return l.formattedAddress }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// WeatherCondition is the provider's description of the sky, its condition
// code and an optional icon base URI.
type WeatherCondition struct {
	description string
	typ         string
	iconBaseURI string
}

// UnknownCondition is used wherever the provider sent no condition.
var UnknownCondition = WeatherCondition{description: UnknownDescription, typ: UnknownConditionType}

// NewWeatherCondition substitutes the Unknown defaults for a blank
// description or type. A blank icon URI stays empty.
func NewWeatherCondition(description, typ, iconBaseURI string) WeatherCondition {
	c := WeatherCondition{
		description: strings.TrimSpace(description),
		typ:         strings.TrimSpace(typ),
		iconBaseURI: strings.TrimSpace(iconBaseURI),
	}
	if c.description == "" {
		c.description = UnknownDescription
	}
	if c.typ == "" {
		c.typ = UnknownConditionType
	}
	return c
}

func (c WeatherCondition) Description() string { return c.description }
func (c WeatherCondition) Type() string        { return c.typ }
func (c WeatherCondition) IconBaseURI() string { return c.iconBaseURI }

// IsUnknown reports whether c is the canonical Unknown condition.
func (c WeatherCondition) IsUnknown() bool { return c == UnknownCondition }

// CurrentWeather is a snapshot of conditions at the location.
type CurrentWeather struct {
	currentTime        *time.Time
	timeZoneID         string
	isDaytime          *bool
	condition          WeatherCondition
	temperatureDegrees float64
	feelsLikeDegrees   *float64
}

// CurrentWeatherParams holds the inputs of NewCurrentWeather. Nil pointers
// mark values the provider did not send.
type CurrentWeatherParams struct {
	CurrentTime        *time.Time
	TimeZoneID         string
	IsDaytime          *bool
	Condition          WeatherCondition
	TemperatureDegrees float64
	FeelsLikeDegrees   *float64
}

// NewCurrentWeather copies p. A blank time zone becomes UTC.
func NewCurrentWeather(p CurrentWeatherParams) CurrentWeather {
	tz := strings.TrimSpace(p.TimeZoneID)
	if tz == "" {
		tz = DefaultTimeZoneID
	}
	return CurrentWeather{
		currentTime:        copyPtr(p.CurrentTime),
		timeZoneID:         tz,
		isDaytime:          copyPtr(p.IsDaytime),
		condition:          p.Condition,
		temperatureDegrees: p.TemperatureDegrees,
		feelsLikeDegrees:   copyPtr(p.FeelsLikeDegrees),
	}
}

func (w CurrentWeather) CurrentTime() (time.Time, bool)    { return deref(w.currentTime) }
func (w CurrentWeather) TimeZoneID() string                { return w.timeZoneID }
func (w CurrentWeather) IsDaytime() (bool, bool)           { return deref(w.isDaytime) }
func (w CurrentWeather) Condition() WeatherCondition       { return w.condition }
func (w CurrentWeather) TemperatureDegrees() float64       { return w.temperatureDegrees }
func (w CurrentWeather) FeelsLikeDegrees() (float64, bool) { return deref(w.feelsLikeDegrees) }

// HourlyForecastEntry is one hour of the hourly forecast. DisplayDateTime is
// formatted "YYYY-MM-DD HH:00" and empty when the provider omitted the date.
type HourlyForecastEntry struct {
	displayDateTime    string
	isDaytime          *bool
	condition          WeatherCondition
	temperatureDegrees float64
	feelsLikeDegrees   *float64
}

// HourlyForecastParams holds the inputs of NewHourlyForecastEntry.
type HourlyForecastParams struct {
	DisplayDateTime    string
	IsDaytime          *bool
	Condition          WeatherCondition
	TemperatureDegrees float64
	FeelsLikeDegrees   *float64
}

func NewHourlyForecastEntry(p HourlyForecastParams) HourlyForecastEntry {
	return HourlyForecastEntry{
		displayDateTime:    p.DisplayDateTime,
		isDaytime:          copyPtr(p.IsDaytime),
		condition:          p.Condition,
		temperatureDegrees: p.TemperatureDegrees,
		feelsLikeDegrees:   copyPtr(p.FeelsLikeDegrees),
	}
}

func (e HourlyForecastEntry) DisplayDateTime() string           { return e.displayDateTime }
func (e HourlyForecastEntry) IsDaytime() (bool, bool)           { return deref(e.isDaytime) }
func (e HourlyForecastEntry) Condition() WeatherCondition       { return e.condition }
func (e HourlyForecastEntry) TemperatureDegrees() float64       { return e.temperatureDegrees }
func (e HourlyForecastEntry) FeelsLikeDegrees() (float64, bool) { return deref(e.feelsLikeDegrees) }

// DailyForecastEntry is one day of the daily forecast. DisplayDate is
// formatted "YYYY-MM-DD" and empty when any date part was missing.
type DailyForecastEntry struct {
	displayDate           string
	maxTemperatureDegrees float64
	minTemperatureDegrees float64
	condition             WeatherCondition
}

func NewDailyForecastEntry(displayDate string, maxDegrees, minDegrees float64, condition WeatherCondition) DailyForecastEntry {
	return DailyForecastEntry{
		displayDate:           displayDate,
		maxTemperatureDegrees: maxDegrees,
		minTemperatureDegrees: minDegrees,
		condition:             condition,
	}
}

func (e DailyForecastEntry) DisplayDate() string            { return e.displayDate }
func (e DailyForecastEntry) MaxTemperatureDegrees() float64 { return e.maxTemperatureDegrees }
func (e DailyForecastEntry) MinTemperatureDegrees() float64 { return e.minTemperatureDegrees }

// Condition is taken from the day's daytime forecast.
func (e DailyForecastEntry) Condition() WeatherCondition { return e.condition }

// WeatherAtLocation is the aggregate returned for an address: where it is,
// what it is like now, and what is coming.
type WeatherAtLocation struct {
	location Location
	current  CurrentWeather
	hourly   []HourlyForecastEntry
	daily    []DailyForecastEntry
}

// NewWeatherAtLocation copies the forecast slices; nil slices become empty.
func NewWeatherAtLocation(loc Location, current CurrentWeather, hourly []HourlyForecastEntry, daily []DailyForecastEntry) WeatherAtLocation {
	return WeatherAtLocation{
		location: loc,
		current:  current,
		hourly:   append([]HourlyForecastEntry{}, hourly...),
		daily:    append([]DailyForecastEntry{}, daily...),
	}
}

func (w WeatherAtLocation) Location() Location             { return w.location }
func (w WeatherAtLocation) CurrentWeather() CurrentWeather { return w.current }

// HourlyForecast returns a copy of the hourly entries in provider order.
func (w WeatherAtLocation) HourlyForecast() []HourlyForecastEntry {
	return append([]HourlyForecastEntry{}, w.hourly...)
}

// DailyForecast returns a copy of the daily entries in provider order.
func (w WeatherAtLocation) DailyForecast() []DailyForecastEntry {
	return append([]DailyForecastEntry{}, w.daily...)
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
