package pollution

import "time"

const (
	// DefaultLimit is the page size used when the caller does not supply one.
	DefaultLimit = 10

	// MaxLimit caps the page size.
	MaxLimit = 100

	// defaultRangeDays is the trailing window applied when a date bound is
	// omitted.
	defaultRangeDays = 30
)

// RangeQuery describes a date-filtered, paginated historical query. Nil date
// bounds mean "use the default trailing window".
type RangeQuery struct {
	StartDate *Date
	EndDate   *Date
	Limit     int
	Offset    int
}

// Normalize applies the query invariants: a nil start date defaults to 30
// days before now, a nil end date to today (both inclusive), the limit is
// clamped to [1, MaxLimit], and the offset to >= 0.
func (q RangeQuery) Normalize(now time.Time) RangeQuery {
	if q.StartDate == nil {
		start := NewDate(now.AddDate(0, 0, -defaultRangeDays))
		q.StartDate = &start
	}

	if q.EndDate == nil {
		end := NewDate(now)
		q.EndDate = &end
	}

	if q.Limit < 1 {
		q.Limit = 1
	}

	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	if q.Offset < 0 {
		q.Offset = 0
	}

	return q
}
