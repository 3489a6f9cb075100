// Package httpapi wires the dashboard endpoints into the Fiber app.
package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/lakewatch/pollution-api/internal/pollution"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *pollution.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/live_pollution_data", func(c *fiber.Ctx) error {
		reading, err := service.Live(c.Context())
		if err != nil {
			return mapError(err)
		}

		return c.JSON(reading)
	})

	v1.Get("/historical_pollution_data", func(c *fiber.Ctx) error {
		q, err := bindRangeQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		page, err := service.HistoricalPollution(c.Context(), q)
		if err != nil {
			return mapError(err)
		}

		return c.JSON(page)
	})

	v1.Get("/historical_weather_data", func(c *fiber.Ctx) error {
		q, err := bindRangeQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		page, err := service.HistoricalWeather(c.Context(), q)
		if err != nil {
			return mapError(err)
		}

		return c.JSON(page)
	})

	v1.Get("/pollution_overview", func(c *fiber.Ctx) error {
		q, err := bindRangeQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		overview, err := service.Overview(c.Context(), q)
		if err != nil {
			return mapError(err)
		}

		return c.JSON(overview)
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		current, err := service.CurrentWeather(c.Context())
		if err != nil {
			return mapError(err)
		}

		return c.JSON(current)
	})

	v1.Get("/pollution-weather-correlation", func(c *fiber.Ctx) error {
		q, err := bindRangeQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := service.Correlation(c.Context(), q.StartDate, q.EndDate)
		if err != nil {
			return mapError(err)
		}

		return c.JSON(result)
	})
}

// dateQuery holds the raw date query parameters for validation before
// parsing.
type dateQuery struct {
	StartDate string `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `validate:"omitempty,datetime=2006-01-02"`
}

// bindRangeQuery extracts the optional date range and pagination parameters.
// Range defaulting and limit/offset clamping happen in the repositories; here
// we only reject malformed dates.
func bindRangeQuery(c *fiber.Ctx) (pollution.RangeQuery, error) {
	raw := dateQuery{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	if err := validate.Struct(raw); err != nil {
		return pollution.RangeQuery{}, errors.New("dates must use the YYYY-MM-DD format")
	}

	q := pollution.RangeQuery{
		Limit:  c.QueryInt("limit", pollution.DefaultLimit),
		Offset: c.QueryInt("offset", 0),
	}

	if raw.StartDate != "" {
		d, err := pollution.ParseDate(raw.StartDate)
		if err != nil {
			return pollution.RangeQuery{}, err
		}

		q.StartDate = &d
	}

	if raw.EndDate != "" {
		d, err := pollution.ParseDate(raw.EndDate)
		if err != nil {
			return pollution.RangeQuery{}, err
		}

		q.EndDate = &d
	}

	return q, nil
}

// mapError converts domain errors into HTTP status codes; anything
// unrecognized surfaces as a 500 through the centralized error handler.
func mapError(err error) error {
	if errors.Is(err, pollution.ErrInsufficientData) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return err
}
