package pollution

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lakewatch/pollution-api/internal/analytics"
)

// correlationFetchLimit bounds how many records of each dataset feed the
// correlation engine.
const correlationFetchLimit = 100

// PollutionStore reads persisted pollution records.
type PollutionStore interface {
	HistoricalPollution(ctx context.Context, q RangeQuery) (HistoricalPage[PollutionRecord], error)
}

// WeatherStore reads persisted weather records.
type WeatherStore interface {
	HistoricalWeather(ctx context.Context, q RangeQuery) (HistoricalPage[WeatherRecord], error)
}

// WeatherClient fetches current conditions from the external provider.
type WeatherClient interface {
	Current(ctx context.Context) (CurrentWeather, error)
}

// SensorSource produces raw live sensor readings.
type SensorSource interface {
	Read(ctx context.Context) (RawSensorReading, error)
}

// Service orchestrates the repositories, the live sensor and the external
// weather provider. It is stateless between requests; all reads are
// non-mutating, so concurrent requests need no coordination here.
type Service struct {
	pollution PollutionStore
	weather   WeatherStore
	client    WeatherClient
	sensor    SensorSource
	logger    *zerolog.Logger
}

// NewService creates a Service.
func NewService(pollution PollutionStore, weather WeatherStore, client WeatherClient, sensor SensorSource, logger *zerolog.Logger) *Service {
	return &Service{
		pollution: pollution,
		weather:   weather,
		client:    client,
		sensor:    sensor,
		logger:    logger,
	}
}

// Live reads the sensor and normalizes the payload.
func (s *Service) Live(ctx context.Context) (LiveReading, error) {
	raw, err := s.sensor.Read(ctx)
	if err != nil {
		return LiveReading{}, fmt.Errorf("read live sensor: %w", err)
	}

	return MapLiveReading(raw)
}

// HistoricalPollution returns one page of pollution records.
func (s *Service) HistoricalPollution(ctx context.Context, q RangeQuery) (HistoricalPage[PollutionRecord], error) {
	return s.pollution.HistoricalPollution(ctx, q)
}

// HistoricalWeather returns one page of weather records.
func (s *Service) HistoricalWeather(ctx context.Context, q RangeQuery) (HistoricalPage[WeatherRecord], error) {
	return s.weather.HistoricalWeather(ctx, q)
}

// CurrentWeather fetches current conditions from the external provider.
func (s *Service) CurrentWeather(ctx context.Context) (CurrentWeather, error) {
	return s.client.Current(ctx)
}

// Correlation fetches both historical datasets for the range, aligns them by
// day, and derives the six pairwise coefficients plus insight statements.
// It fails with ErrInsufficientData when either dataset is empty after date
// filtering.
func (s *Service) Correlation(ctx context.Context, startDate, endDate *Date) (CorrelationResult, error) {
	q := RangeQuery{
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     correlationFetchLimit,
		Offset:    0,
	}

	var (
		pollutionPage HistoricalPage[PollutionRecord]
		weatherPage   HistoricalPage[WeatherRecord]
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		pollutionPage, err = s.pollution.HistoricalPollution(gctx, q)

		return err
	})

	g.Go(func() error {
		var err error
		weatherPage, err = s.weather.HistoricalWeather(gctx, q)

		return err
	})

	if err := g.Wait(); err != nil {
		return CorrelationResult{}, fmt.Errorf("fetch correlation inputs: %w", err)
	}

	if len(pollutionPage.Items) == 0 || len(weatherPage.Items) == 0 {
		return CorrelationResult{}, ErrInsufficientData
	}

	aligned := analytics.Align(
		pollutionObservations(pollutionPage.Items),
		weatherObservations(weatherPage.Items),
	)

	summary := analytics.Correlate(aligned)

	s.logger.Debug().
		Int("pollution_records", len(pollutionPage.Items)).
		Int("weather_records", len(weatherPage.Items)).
		Int("aligned_days", len(aligned)).
		Msg("computed correlation")

	return CorrelationResult{
		CorrelationSummary: correlationSummary(summary),
		Insights:           analytics.Insights(summary),
	}, nil
}

// Overview composes the live reading, both historical pages and current
// weather into one response. The three data fetches run concurrently; if
// any one fails the whole response fails.
func (s *Service) Overview(ctx context.Context, q RangeQuery) (Overview, error) {
	live, err := s.Live(ctx)
	if err != nil {
		return Overview{}, err
	}

	var overview Overview
	overview.LivePollutionData = live

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		page, err := s.pollution.HistoricalPollution(gctx, q)
		if err != nil {
			return fmt.Errorf("fetch historical pollution: %w", err)
		}

		overview.HistoricalPollutionData = page

		return nil
	})

	g.Go(func() error {
		page, err := s.weather.HistoricalWeather(gctx, q)
		if err != nil {
			return fmt.Errorf("fetch historical weather: %w", err)
		}

		overview.HistoricalWeatherData = page

		return nil
	})

	g.Go(func() error {
		current, err := s.client.Current(gctx)
		if err != nil {
			return fmt.Errorf("fetch current weather: %w", err)
		}

		overview.Weather = current

		return nil
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	return overview, nil
}

func pollutionObservations(records []PollutionRecord) []analytics.PollutionObservation {
	obs := make([]analytics.PollutionObservation, len(records))

	for i, r := range records {
		obs[i] = analytics.PollutionObservation{
			Date:              r.Date.Time,
			AirQualityIndex:   float64(r.AirQualityIndex),
			WaterQualityIndex: float64(r.WaterQualityIndex),
			Temperature:       r.Temperature,
		}
	}

	return obs
}

func weatherObservations(records []WeatherRecord) []analytics.WeatherObservation {
	obs := make([]analytics.WeatherObservation, len(records))

	for i, r := range records {
		o := analytics.WeatherObservation{Date: r.Date.Time, RainMM: r.RainMM}

		if r.Humidity != nil {
			h := float64(*r.Humidity)
			o.Humidity = &h
		}

		obs[i] = o
	}

	return obs
}

func correlationSummary(s analytics.Summary) CorrelationSummary {
	return CorrelationSummary{
		AirQualityIndexTemperature:   coefficientValue(s.AQITemperature),
		AirQualityIndexHumidity:      coefficientValue(s.AQIHumidity),
		AirQualityIndexRainfall:      coefficientValue(s.AQIRainfall),
		WaterQualityIndexTemperature: coefficientValue(s.WQITemperature),
		WaterQualityIndexHumidity:    coefficientValue(s.WQIHumidity),
		WaterQualityIndexRainfall:    coefficientValue(s.WQIRainfall),
	}
}

func coefficientValue(c analytics.Coefficient) *float64 {
	if !c.Valid {
		return nil
	}

	return &c.Value
}
