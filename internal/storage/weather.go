package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lakewatch/pollution-api/internal/pollution"
)

// WeatherRepo reads and writes the weather_data table. It shares the
// pagination and date-range semantics of PollutionRepo.
type WeatherRepo struct {
	db *DB
}

// NewWeatherRepo creates a WeatherRepo.
func NewWeatherRepo(db *DB) *WeatherRepo {
	return &WeatherRepo{db: db}
}

// HistoricalWeather returns one page of weather records in the date range,
// plus the total count of matching records irrespective of paging.
func (r *WeatherRepo) HistoricalWeather(ctx context.Context, q pollution.RangeQuery) (pollution.HistoricalPage[pollution.WeatherRecord], error) {
	q = q.Normalize(time.Now())

	var page pollution.HistoricalPage[pollution.WeatherRecord]

	countQuery := `SELECT COUNT(*) FROM weather_data WHERE date >= $1 AND date <= $2`
	if err := r.db.Pool.QueryRow(ctx, countQuery, q.StartDate.Time, q.EndDate.Time).Scan(&page.TotalCount); err != nil {
		return page, fmt.Errorf("count weather records: %w", err)
	}

	query := `
		SELECT temperature, feels_like, humidity, weather_description, wind_speed,
		       rain_mm, sunrise, sunset, city, country, date
		FROM weather_data
		WHERE date >= $1 AND date <= $2
		ORDER BY date, id
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Pool.Query(ctx, query, q.StartDate.Time, q.EndDate.Time, q.Limit, q.Offset)
	if err != nil {
		return page, fmt.Errorf("query weather records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec pollution.WeatherRecord
			day time.Time
		)

		if err := rows.Scan(
			&rec.Temperature, &rec.FeelsLike, &rec.Humidity, &rec.WeatherDescription,
			&rec.WindSpeed, &rec.RainMM, &rec.Sunrise, &rec.Sunset,
			&rec.City, &rec.Country, &day,
		); err != nil {
			return page, fmt.Errorf("scan weather record: %w", err)
		}

		rec.Date = pollution.NewDate(day)
		page.Items = append(page.Items, rec)
	}

	if err := rows.Err(); err != nil {
		return page, fmt.Errorf("iterate weather records: %w", err)
	}

	return page, nil
}

// InsertWeather persists one weather record.
func (r *WeatherRepo) InsertWeather(ctx context.Context, rec pollution.WeatherRecord) error {
	query := `
		INSERT INTO weather_data (temperature, feels_like, humidity, weather_description,
		                          wind_speed, rain_mm, sunrise, sunset, city, country, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		rec.Temperature, rec.FeelsLike, rec.Humidity, rec.WeatherDescription,
		rec.WindSpeed, rec.RainMM, rec.Sunrise, rec.Sunset, rec.City, rec.Country, rec.Date.Time)
	if err != nil {
		return fmt.Errorf("insert weather record: %w", err)
	}

	return nil
}

// InsertWeatherBatch bulk-inserts records via the PostgreSQL COPY protocol.
func (r *WeatherRepo) InsertWeatherBatch(ctx context.Context, records []pollution.WeatherRecord) error {
	_, err := r.db.Pool.CopyFrom(ctx,
		pgx.Identifier{"weather_data"},
		[]string{"temperature", "feels_like", "humidity", "weather_description", "wind_speed",
			"rain_mm", "sunrise", "sunset", "city", "country", "date"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			rec := records[i]

			return []any{rec.Temperature, rec.FeelsLike, rec.Humidity, rec.WeatherDescription,
				rec.WindSpeed, rec.RainMM, rec.Sunrise, rec.Sunset, rec.City, rec.Country, rec.Date.Time}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy weather records: %w", err)
	}

	return nil
}

// OldestWeatherDate returns the earliest stored date, or nil when the table
// is empty.
func (r *WeatherRepo) OldestWeatherDate(ctx context.Context) (*pollution.Date, error) {
	var day *time.Time

	query := `SELECT MIN(date) FROM weather_data`
	if err := r.db.Pool.QueryRow(ctx, query).Scan(&day); err != nil {
		return nil, fmt.Errorf("query oldest weather date: %w", err)
	}

	if day == nil {
		return nil, nil
	}

	d := pollution.NewDate(*day)

	return &d, nil
}
