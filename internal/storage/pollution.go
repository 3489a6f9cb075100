package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lakewatch/pollution-api/internal/pollution"
)

// PollutionRepo reads and writes the pollution_data table.
type PollutionRepo struct {
	db *DB
}

// NewPollutionRepo creates a PollutionRepo.
func NewPollutionRepo(db *DB) *PollutionRepo {
	return &PollutionRepo{db: db}
}

// HistoricalPollution returns one page of pollution records in the date
// range, plus the total count of matching records irrespective of paging.
// The range filter is inclusive on both ends; ordering is by date then
// insertion order so pages are stable.
func (r *PollutionRepo) HistoricalPollution(ctx context.Context, q pollution.RangeQuery) (pollution.HistoricalPage[pollution.PollutionRecord], error) {
	q = q.Normalize(time.Now())

	var page pollution.HistoricalPage[pollution.PollutionRecord]

	countQuery := `SELECT COUNT(*) FROM pollution_data WHERE date >= $1 AND date <= $2`
	if err := r.db.Pool.QueryRow(ctx, countQuery, q.StartDate.Time, q.EndDate.Time).Scan(&page.TotalCount); err != nil {
		return page, fmt.Errorf("count pollution records: %w", err)
	}

	query := `
		SELECT air_quality_index, water_quality_index, ph_level, temperature, date
		FROM pollution_data
		WHERE date >= $1 AND date <= $2
		ORDER BY date, id
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Pool.Query(ctx, query, q.StartDate.Time, q.EndDate.Time, q.Limit, q.Offset)
	if err != nil {
		return page, fmt.Errorf("query pollution records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec pollution.PollutionRecord
			day time.Time
		)

		if err := rows.Scan(&rec.AirQualityIndex, &rec.WaterQualityIndex, &rec.PHLevel, &rec.Temperature, &day); err != nil {
			return page, fmt.Errorf("scan pollution record: %w", err)
		}

		rec.Date = pollution.NewDate(day)
		page.Items = append(page.Items, rec)
	}

	if err := rows.Err(); err != nil {
		return page, fmt.Errorf("iterate pollution records: %w", err)
	}

	return page, nil
}

// InsertPollution persists one pollution record.
func (r *PollutionRepo) InsertPollution(ctx context.Context, rec pollution.PollutionRecord) error {
	query := `
		INSERT INTO pollution_data (air_quality_index, water_quality_index, ph_level, temperature, date)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		rec.AirQualityIndex, rec.WaterQualityIndex, rec.PHLevel, rec.Temperature, rec.Date.Time)
	if err != nil {
		return fmt.Errorf("insert pollution record: %w", err)
	}

	return nil
}

// InsertPollutionBatch bulk-inserts records via the PostgreSQL COPY protocol.
func (r *PollutionRepo) InsertPollutionBatch(ctx context.Context, records []pollution.PollutionRecord) error {
	_, err := r.db.Pool.CopyFrom(ctx,
		pgx.Identifier{"pollution_data"},
		[]string{"air_quality_index", "water_quality_index", "ph_level", "temperature", "date"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			rec := records[i]

			return []any{rec.AirQualityIndex, rec.WaterQualityIndex, rec.PHLevel, rec.Temperature, rec.Date.Time}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy pollution records: %w", err)
	}

	return nil
}

// OldestPollutionDate returns the earliest stored date, or nil when the
// table is empty.
func (r *PollutionRepo) OldestPollutionDate(ctx context.Context) (*pollution.Date, error) {
	var day *time.Time

	query := `SELECT MIN(date) FROM pollution_data`
	if err := r.db.Pool.QueryRow(ctx, query).Scan(&day); err != nil {
		return nil, fmt.Errorf("query oldest pollution date: %w", err)
	}

	if day == nil {
		return nil, nil
	}

	d := pollution.NewDate(*day)

	return &d, nil
}
