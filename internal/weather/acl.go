package weather

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/weather-by-address/internal/weather/providers"
)

// The Build* functions translate raw provider payloads into domain values.
// They do no I/O, and missing optional fields fall back to their documented
// defaults. Only BuildLocation can fail.

// BuildLocation reads coordinates, postal code and formatted address from
// the first geocoding result. Other results are ignored.
func BuildLocation(payload providers.Payload) (Location, error) {
	result := firstResult(payload)

	lat, latOK := toFloat(dig(result, "geometry", "location", "lat"))
	lng, lngOK := toFloat(dig(result, "geometry", "location", "lng"))
	if !latOK || !lngOK {
		return Location{}, fmt.Errorf("%w: geocode result has no numeric latitude/longitude", ErrInvalidCoordinates)
	}

	return NewLocation(lat, lng, postalCode(result), asString(result["formatted_address"]))
}

// BuildCurrentWeather maps a current-conditions payload.
func BuildCurrentWeather(payload providers.Payload) CurrentWeather {
	return NewCurrentWeather(CurrentWeatherParams{
		CurrentTime:        parseTime(payload["currentTime"]),
		TimeZoneID:         asString(dig(payload, "timeZone", "id")),
		IsDaytime:          asBool(payload["isDaytime"]),
		Condition:          BuildWeatherCondition(payload["weatherCondition"]),
		TemperatureDegrees: floatOrZero(dig(payload, "temperature", "degrees")),
		FeelsLikeDegrees:   optionalFloat(dig(payload, "feelsLikeTemperature", "degrees")),
	})
}

// BuildHourlyForecastEntries maps every entry of forecastHours, in order.
func BuildHourlyForecastEntries(payload providers.Payload) []HourlyForecastEntry {
	hours := asList(payload["forecastHours"])
	entries := make([]HourlyForecastEntry, 0, len(hours))
	for _, h := range hours {
		hour := asObject(h)
		entries = append(entries, NewHourlyForecastEntry(HourlyForecastParams{
			DisplayDateTime:    formatDisplayDateTime(hour["displayDateTime"]),
			IsDaytime:          asBool(hour["isDaytime"]),
			Condition:          BuildWeatherCondition(hour["weatherCondition"]),
			TemperatureDegrees: floatOrZero(dig(hour, "temperature", "degrees")),
			FeelsLikeDegrees:   optionalFloat(dig(hour, "feelsLikeTemperature", "degrees")),
		}))
	}
	return entries
}

// BuildDailyForecastEntries maps every entry of forecastDays, in order. The
// condition of each day comes from its daytimeForecast.
func BuildDailyForecastEntries(payload providers.Payload) []DailyForecastEntry {
	days := asList(payload["forecastDays"])
	entries := make([]DailyForecastEntry, 0, len(days))
	for _, d := range days {
		day := asObject(d)
		entries = append(entries, NewDailyForecastEntry(
			formatDisplayDate(day["displayDate"]),
			floatOrZero(dig(day, "maxTemperature", "degrees")),
			floatOrZero(dig(day, "minTemperature", "degrees")),
			BuildWeatherCondition(dig(day, "daytimeForecast", "weatherCondition")),
		))
	}
	return entries
}

// BuildWeatherCondition maps a weatherCondition object. Anything that is not
// a non-empty object yields UnknownCondition.
func BuildWeatherCondition(v any) WeatherCondition {
	obj := asObject(v)
	if len(obj) == 0 {
		return UnknownCondition
	}
	return NewWeatherCondition(
		asString(dig(obj, "description", "text")),
		asString(obj["type"]),
		asString(obj["iconBaseUri"]),
	)
}

func firstResult(payload providers.Payload) map[string]any {
	results := asList(payload["results"])
	if len(results) == 0 {
		return map[string]any{}
	}
	return asObject(results[0])
}

func postalCode(result map[string]any) string {
	for _, c := range asList(result["address_components"]) {
		component := asObject(c)
		for _, t := range asList(component["types"]) {
			if t == "postal_code" {
				return asString(component["short_name"])
			}
		}
	}
	return ""
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(v any) *time.Time {
	s := strings.TrimSpace(asString(v))
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts
		}
	}
	return nil
}

// formatDisplayDateTime renders {year,month,day,hours} as "YYYY-MM-DD HH:00".
// A missing hour renders as 00.
func formatDisplayDateTime(v any) string {
	obj := asObject(v)
	date := formatDisplayDate(obj)
	if date == "" {
		return ""
	}
	return date + " " + leftPad(asString(obj["hours"]), 2) + ":00"
}

// formatDisplayDate renders {year,month,day} as "YYYY-MM-DD", or "" when any
// part is missing.
func formatDisplayDate(v any) string {
	obj := asObject(v)
	y, m, d := obj["year"], obj["month"], obj["day"]
	if y == nil || m == nil || d == nil {
		return ""
	}
	return asString(y) + "-" + leftPad(asString(m), 2) + "-" + leftPad(asString(d), 2)
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func dig(v any, keys ...string) any {
	for _, k := range keys {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = obj[k]
	}
	return v
}

func asObject(v any) map[string]any {
	if obj, ok := v.(map[string]any); ok {
		return obj
	}
	return nil
}

func asList(v any) []any {
	if list, ok := v.([]any); ok {
		return list
	}
	return nil
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func asBool(v any) *bool {
	b, ok := v.(bool)
	if !ok {
		return nil
	}
	return &b
}

// toFloat accepts JSON numbers and numeric strings.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func floatOrZero(v any) float64 {
	f, _ := toFloat(v)
	return f
}

// optionalFloat is nil only when the field is absent; a present but
// non-numeric value reads as 0.
func optionalFloat(v any) *float64 {
	if v == nil {
		return nil
	}
	f := floatOrZero(v)
	return &f
}
