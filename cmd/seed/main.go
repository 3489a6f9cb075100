// Command seed populates the database with synthetic pollution and weather
// history, one record per day from January 1st of the given year through
// today. It refuses to overlap data that is already present.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"

	"github.com/lakewatch/pollution-api/internal/config"
	"github.com/lakewatch/pollution-api/internal/pollution"
	"github.com/lakewatch/pollution-api/internal/storage"
)

// rainProbability matches roughly how often historical ingestion recorded
// rainfall; the remaining days carry no value rather than 0.
const rainProbability = 0.3

func main() {
	year := flag.Int("year", 0, "Year to seed data from (through today)")
	flag.Parse()

	if *year <= 0 {
		log.Fatalf("Usage: %s -year=YYYY", os.Args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	ctx := context.Background()

	db, err := storage.New(ctx, cfg.PostgresDSN, &zlog)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		zlog.Fatal().Err(err).Msg("failed to run migrations")
	}

	pollutionRepo := storage.NewPollutionRepo(db)
	weatherRepo := storage.NewWeatherRepo(db)

	if err := guardAgainstOverlap(ctx, *year, pollutionRepo, weatherRepo); err != nil {
		zlog.Fatal().Err(err).Msg("refusing to seed")
	}

	days := daysFrom(*year)

	pollutionRecords := make([]pollution.PollutionRecord, len(days))
	weatherRecords := make([]pollution.WeatherRecord, len(days))

	for i, day := range days {
		pollutionRecords[i] = fakePollutionRecord(day)
		weatherRecords[i] = fakeWeatherRecord(day)
	}

	if err := pollutionRepo.InsertPollutionBatch(ctx, pollutionRecords); err != nil {
		zlog.Fatal().Err(err).Msg("failed to seed pollution data")
	}

	if err := weatherRepo.InsertWeatherBatch(ctx, weatherRecords); err != nil {
		zlog.Fatal().Err(err).Msg("failed to seed weather data")
	}

	zlog.Info().
		Int("year", *year).
		Int("days", len(days)).
		Msg("seeded pollution and weather history")
}

// guardAgainstOverlap rejects a seed year that is not strictly older than
// everything already stored.
func guardAgainstOverlap(ctx context.Context, year int, pollutionRepo *storage.PollutionRepo, weatherRepo *storage.WeatherRepo) error {
	oldestPollution, err := pollutionRepo.OldestPollutionDate(ctx)
	if err != nil {
		return err
	}

	oldestWeather, err := weatherRepo.OldestWeatherDate(ctx)
	if err != nil {
		return err
	}

	for _, oldest := range []*pollution.Date{oldestPollution, oldestWeather} {
		if oldest != nil && year >= oldest.Year() {
			return fmt.Errorf("data already exists from %d; pick a year before it", oldest.Year())
		}
	}

	return nil
}

func daysFrom(year int) []pollution.Date {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := pollution.NewDate(time.Now()).Time

	var days []pollution.Date
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, pollution.NewDate(day))
	}

	return days
}

func fakePollutionRecord(day pollution.Date) pollution.PollutionRecord {
	return pollution.PollutionRecord{
		AirQualityIndex:   gofakeit.Number(0, 500),
		WaterQualityIndex: gofakeit.Number(0, 100),
		PHLevel:           round(gofakeit.Float64Range(6.5, 8.5), 2),
		Temperature:       round(gofakeit.Float64Range(-10.0, 40.0), 1),
		Date:              day,
	}
}

func fakeWeatherRecord(day pollution.Date) pollution.WeatherRecord {
	temperature := round(gofakeit.Float64Range(-10.0, 40.0), 2)
	feelsLike := round(gofakeit.Float64Range(-10.0, 40.0), 2)
	humidity := gofakeit.Number(0, 100)
	description := gofakeit.Word()
	windSpeed := round(gofakeit.Float64Range(0.0, 15.0), 2)
	sunrise := int64(gofakeit.Number(1600000000, 1700000000))
	sunset := int64(gofakeit.Number(1700000000, 1800000000))
	city := gofakeit.City()
	country := gofakeit.Country()

	rec := pollution.WeatherRecord{
		Temperature:        &temperature,
		FeelsLike:          &feelsLike,
		Humidity:           &humidity,
		WeatherDescription: &description,
		WindSpeed:          &windSpeed,
		Sunrise:            &sunrise,
		Sunset:             &sunset,
		City:               &city,
		Country:            &country,
		Date:               day,
	}

	if gofakeit.Float64Range(0, 1) < rainProbability {
		rain := round(gofakeit.Float64Range(0.0, 100.0), 2)
		rec.RainMM = &rain
	}

	return rec
}

func round(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))

	return math.Round(v*factor) / factor
}
