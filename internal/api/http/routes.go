package httpapi

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-by-address/internal/weather"
)

var validate = validator.New()

// Resolver is the part of weather.Service the handlers call.
type Resolver interface {
	WeatherByAddress(ctx context.Context, address string) (weather.Result, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service Resolver) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		q, err := parseAddressQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "address query parameter is required")
		}

		res, err := service.WeatherByAddress(c.UserContext(), q.Address)
		if err != nil {
			return fiber.NewError(statusFor(err), err.Error())
		}

		return c.JSON(newWeatherView(q.Address, res))
	})
}

// addressQuery holds the query parameters of the weather endpoint.
type addressQuery struct {
	Address string `validate:"required"`
}

func parseAddressQuery(c *fiber.Ctx) (addressQuery, error) {
	q := addressQuery{Address: strings.TrimSpace(c.Query("address"))}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, weather.ErrAddressNotFound), errors.Is(err, weather.ErrWeatherNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, weather.ErrService):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

type conditionView struct {
	Description string `json:"description"`
	Type        string `json:"type"`
	IconBaseURI string `json:"iconBaseUri,omitempty"`
}

type locationView struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Zipcode          string  `json:"zipcode,omitempty"`
	FormattedAddress string  `json:"formattedAddress,omitempty"`
}

type currentView struct {
	CurrentTime        *time.Time    `json:"currentTime"`
	TimeZoneID         string        `json:"timeZoneId"`
	IsDaytime          *bool         `json:"isDaytime"`
	Condition          conditionView `json:"weatherCondition"`
	TemperatureDegrees float64       `json:"temperatureDegrees"`
	FeelsLikeDegrees   *float64      `json:"feelsLikeDegrees"`
}

type hourlyView struct {
	DisplayDateTime    *string       `json:"displayDateTime"`
	IsDaytime          *bool         `json:"isDaytime"`
	Condition          conditionView `json:"weatherCondition"`
	TemperatureDegrees float64       `json:"temperatureDegrees"`
	FeelsLikeDegrees   *float64      `json:"feelsLikeDegrees"`
}

type dailyView struct {
	DisplayDate           *string       `json:"displayDate"`
	MaxTemperatureDegrees float64       `json:"maxTemperatureDegrees"`
	MinTemperatureDegrees float64       `json:"minTemperatureDegrees"`
	Condition             conditionView `json:"weatherCondition"`
}

type weatherView struct {
	Address   string            `json:"address"`
	Location  locationView      `json:"location"`
	Current   currentView       `json:"currentWeather"`
	Hourly    []hourlyView      `json:"hourlyForecast"`
	Daily     []dailyView       `json:"dailyForecast"`
	Sources   map[string]string `json:"sources"`
	FromCache map[string]bool   `json:"fromCache"`
}

func newWeatherView(address string, res weather.Result) weatherView {
	loc := res.Location()
	cur := res.CurrentWeather()

	v := weatherView{
		Address: address,
		Location: locationView{
			Latitude:         loc.Latitude(),
			Longitude:        loc.Longitude(),
			Zipcode:          loc.Zipcode(),
			FormattedAddress: loc.FormattedAddress(),
		},
		Current: currentView{
			CurrentTime:        timePtr(cur.CurrentTime()),
			TimeZoneID:         cur.TimeZoneID(),
			IsDaytime:          boolPtr(cur.IsDaytime()),
			Condition:          newConditionView(cur.Condition()),
			TemperatureDegrees: cur.TemperatureDegrees(),
			FeelsLikeDegrees:   floatPtr(cur.FeelsLikeDegrees()),
		},
		Hourly:    []hourlyView{},
		Daily:     []dailyView{},
		Sources:   make(map[string]string, len(weather.DataSources)),
		FromCache: make(map[string]bool, len(weather.DataSources)),
	}

	for _, h := range res.HourlyForecast() {
		v.Hourly = append(v.Hourly, hourlyView{
			DisplayDateTime:    nonEmpty(h.DisplayDateTime()),
			IsDaytime:          boolPtr(h.IsDaytime()),
			Condition:          newConditionView(h.Condition()),
			TemperatureDegrees: h.TemperatureDegrees(),
			FeelsLikeDegrees:   floatPtr(h.FeelsLikeDegrees()),
		})
	}

	for _, d := range res.DailyForecast() {
		v.Daily = append(v.Daily, dailyView{
			DisplayDate:           nonEmpty(d.DisplayDate()),
			MaxTemperatureDegrees: d.MaxTemperatureDegrees(),
			MinTemperatureDegrees: d.MinTemperatureDegrees(),
			Condition:             newConditionView(d.Condition()),
		})
	}

	for _, key := range weather.DataSources {
		if src, ok := res.Source(key); ok {
			v.Sources[string(key)] = string(src)
		}
		v.FromCache[string(key)] = res.FromCache(key)
	}

	return v
}

func newConditionView(c weather.WeatherCondition) conditionView {
	return conditionView{
		Description: c.Description(),
		Type:        c.Type(),
		IconBaseURI: c.IconBaseURI(),
	}
}

func timePtr(v time.Time, ok bool) *time.Time {
	if !ok {
		return nil
	}
	return &v
}

func boolPtr(v bool, ok bool) *bool {
	if !ok {
		return nil
	}
	return &v
}

func floatPtr(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
