// Package collector periodically ingests the live sensor reading and the
// external provider's current conditions into the historical tables.
package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/lakewatch/pollution-api/internal/pollution"
)

const collectTimeout = 30 * time.Second

// PollutionWriter persists pollution records.
type PollutionWriter interface {
	InsertPollution(ctx context.Context, rec pollution.PollutionRecord) error
}

// WeatherWriter persists weather records.
type WeatherWriter interface {
	InsertWeather(ctx context.Context, rec pollution.WeatherRecord) error
}

// Collector schedules periodic ingestion runs.
type Collector struct {
	scheduler *gocron.Scheduler
	sensor    pollution.SensorSource
	client    pollution.WeatherClient
	pollution PollutionWriter
	weather   WeatherWriter
	interval  time.Duration
	logger    *zerolog.Logger
}

// New creates a Collector.
func New(
	sensor pollution.SensorSource,
	client pollution.WeatherClient,
	pollutionW PollutionWriter,
	weatherW WeatherWriter,
	interval time.Duration,
	logger *zerolog.Logger,
) *Collector {
	return &Collector{
		scheduler: gocron.NewScheduler(time.UTC),
		sensor:    sensor,
		client:    client,
		pollution: pollutionW,
		weather:   weatherW,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the periodic ingestion job and starts the scheduler.
func (c *Collector) Start() error {
	minutes := int(c.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := c.scheduler.Every(minutes).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
		defer cancel()

		if err := c.collectOnce(ctx); err != nil {
			collectorRuns.WithLabelValues("error").Inc()
			c.logger.Error().Err(err).Msg("collector run failed")

			return
		}

		collectorRuns.WithLabelValues("ok").Inc()
	})
	if err != nil {
		return fmt.Errorf("schedule collector job: %w", err)
	}

	c.scheduler.StartAsync()

	return nil
}

// Stop stops the scheduler and cancels future runs.
func (c *Collector) Stop() {
	if c.scheduler != nil {
		c.scheduler.Stop()
	}
}

// collectOnce reads the sensor and the weather provider and persists both as
// historical rows for today.
func (c *Collector) collectOnce(ctx context.Context) error {
	raw, err := c.sensor.Read(ctx)
	if err != nil {
		return fmt.Errorf("read sensor: %w", err)
	}

	reading, err := pollution.MapLiveReading(raw)
	if err != nil {
		return err
	}

	rec := pollution.PollutionRecord{
		AirQualityIndex:   reading.AirQualityIndex,
		WaterQualityIndex: reading.WaterQualityIndex,
		PHLevel:           reading.PHLevel,
		Temperature:       reading.Temperature,
		Date:              reading.Date,
	}

	if err := c.pollution.InsertPollution(ctx, rec); err != nil {
		return err
	}

	readingsIngested.WithLabelValues("pollution").Inc()

	current, err := c.client.Current(ctx)
	if err != nil {
		return err
	}

	if err := c.weather.InsertWeather(ctx, weatherRecord(current)); err != nil {
		return err
	}

	readingsIngested.WithLabelValues("weather").Inc()

	c.logger.Info().
		Int("sensor_id", reading.SensorID).
		Str("city", current.City).
		Msg("ingested live readings")

	return nil
}

func weatherRecord(current pollution.CurrentWeather) pollution.WeatherRecord {
	return pollution.WeatherRecord{
		Temperature:        &current.Temperature,
		FeelsLike:          &current.FeelsLike,
		Humidity:           &current.Humidity,
		WeatherDescription: &current.WeatherDescription,
		WindSpeed:          &current.WindSpeed,
		RainMM:             current.RainMM,
		Sunrise:            &current.Sunrise,
		Sunset:             &current.Sunset,
		City:               &current.City,
		Country:            &current.Country,
		Date:               pollution.NewDate(time.Now()),
	}
}
