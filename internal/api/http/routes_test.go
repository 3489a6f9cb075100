package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/lakewatch/pollution-api/internal/pollution"
)

type stubPollutionStore struct {
	page pollution.HistoricalPage[pollution.PollutionRecord]
}

func (s *stubPollutionStore) HistoricalPollution(context.Context, pollution.RangeQuery) (pollution.HistoricalPage[pollution.PollutionRecord], error) {
	return s.page, nil
}

type stubWeatherStore struct {
	page pollution.HistoricalPage[pollution.WeatherRecord]
}

func (s *stubWeatherStore) HistoricalWeather(context.Context, pollution.RangeQuery) (pollution.HistoricalPage[pollution.WeatherRecord], error) {
	return s.page, nil
}

type stubWeatherClient struct{}

func (s *stubWeatherClient) Current(context.Context) (pollution.CurrentWeather, error) {
	return pollution.CurrentWeather{City: "Pokhara"}, nil
}

type stubSensor struct{}

func (s *stubSensor) Read(context.Context) (pollution.RawSensorReading, error) {
	return pollution.RawSensorReading{SensorID: "phewa-001", AirQualityIndex: 100, WaterQualityIndex: 70, PHLevel: 7.1}, nil
}

func newTestApp(p *stubPollutionStore, w *stubWeatherStore) *fiber.App {
	logger := zerolog.Nop()
	svc := pollution.NewService(p, w, &stubWeatherClient{}, &stubSensor{}, &logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			return c.Status(code).JSON(fiber.Map{"error": true, "message": err.Error()})
		},
	})
	RegisterRoutes(app, svc)

	return app
}

// TestDateValidation verifies that malformed date parameters are rejected
// with a 400 on every date-filtered endpoint.
func TestDateValidation(t *testing.T) {
	app := newTestApp(&stubPollutionStore{}, &stubWeatherStore{})

	paths := []string{
		"/api/v1/historical_pollution_data?start_date=31-10-2024",
		"/api/v1/historical_weather_data?end_date=notadate",
		"/api/v1/pollution-weather-correlation?start_date=2024/10/01",
	}

	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

func TestHistoricalPollutionResponseShape(t *testing.T) {
	store := &stubPollutionStore{page: pollution.HistoricalPage[pollution.PollutionRecord]{
		TotalCount: 42,
		Items: []pollution.PollutionRecord{
			{AirQualityIndex: 120, WaterQualityIndex: 80, PHLevel: 7.3, Temperature: 19.5},
		},
	}}

	app := newTestApp(store, &stubWeatherStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/historical_pollution_data?start_date=2024-10-01&end_date=2024-10-31", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		TotalCount int               `json:"total_count"`
		Items      []json.RawMessage `json:"historical_data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if body.TotalCount != 42 {
		t.Fatalf("total_count = %d, want 42", body.TotalCount)
	}

	if len(body.Items) != 1 {
		t.Fatalf("historical_data length = %d, want 1", len(body.Items))
	}
}

// TestCorrelationInsufficientData verifies that an empty dataset surfaces as
// a client error rather than a degenerate summary.
func TestCorrelationInsufficientData(t *testing.T) {
	app := newTestApp(&stubPollutionStore{}, &stubWeatherStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pollution-weather-correlation", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestLivePollutionData(t *testing.T) {
	app := newTestApp(&stubPollutionStore{}, &stubWeatherStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/live_pollution_data", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var reading pollution.LiveReading
	if err := json.NewDecoder(resp.Body).Decode(&reading); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if reading.SensorID != 1 {
		t.Fatalf("sensor_id = %d, want 1", reading.SensorID)
	}

	if reading.Temperature != 22.0 {
		t.Fatalf("temperature = %v, want 22.0", reading.Temperature)
	}
}
