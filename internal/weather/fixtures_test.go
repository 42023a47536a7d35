package weather

import (
	"encoding/json"
	"testing"

	"github.com/i474232898/weather-by-address/internal/weather/providers"
)

const geocodeSaoPaulo = `{
  "status": "OK",
  "results": [
    {
      "formatted_address": "Av. Paulista, São Paulo - SP, 01310-100, Brazil",
      "geometry": {"location": {"lat": -23.55, "lng": -46.63}},
      "address_components": [
        {"long_name": "São Paulo", "short_name": "SP", "types": ["administrative_area_level_1", "political"]},
        {"long_name": "01310-100", "short_name": "01310-100", "types": ["postal_code"]}
      ]
    },
    {
      "formatted_address": "São Paulo, SP, Brazil",
      "geometry": {"location": {"lat": -23.0, "lng": -46.0}}
    }
  ]
}`

const currentWeatherSuccess = `{
  "currentTime": "2025-01-28T19:04:11.123456Z",
  "timeZone": {"id": "America/Sao_Paulo"},
  "isDaytime": true,
  "weatherCondition": {
    "iconBaseUri": "https://maps.gstatic.com/weather/v1/partly_cloudy",
    "description": {"text": "Partly cloudy", "languageCode": "en"},
    "type": "PARTLY_CLOUDY"
  },
  "temperature": {"degrees": 25.3, "unit": "CELSIUS"},
  "feelsLikeTemperature": {"degrees": 26.1, "unit": "CELSIUS"}
}`

const hourlyForecastSuccess = `{
  "forecastHours": [
    {
      "displayDateTime": {"year": 2025, "month": 1, "day": 28, "hours": 19},
      "isDaytime": true,
      "weatherCondition": {"description": {"text": "Partly cloudy"}, "type": "PARTLY_CLOUDY"},
      "temperature": {"degrees": 25.3},
      "feelsLikeTemperature": {"degrees": 26.1}
    },
    {
      "displayDateTime": {"year": 2025, "month": 1, "day": 28, "hours": 20},
      "isDaytime": false,
      "weatherCondition": {"description": {"text": "Clear"}, "type": "CLEAR"},
      "temperature": {"degrees": 23.0}
    }
  ]
}`

const dailyForecastSuccess = `{
  "forecastDays": [
    {
      "displayDate": {"year": 2025, "month": 1, "day": 28},
      "maxTemperature": {"degrees": 28.5},
      "minTemperature": {"degrees": 19.3},
      "daytimeForecast": {
        "weatherCondition": {"description": {"text": "Partly cloudy"}, "type": "PARTLY_CLOUDY", "iconBaseUri": "https://maps.gstatic.com/weather/v1/partly_cloudy"}
      },
      "nighttimeForecast": {
        "weatherCondition": {"description": {"text": "Clear"}, "type": "CLEAR"}
      }
    }
  ]
}`

func mustPayload(t *testing.T, s string) providers.Payload {
	t.Helper()
	var p providers.Payload
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		t.Fatalf("invalid fixture: %v", err)
	}
	return p
}
