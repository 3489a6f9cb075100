package pollution

import (
	"testing"
	"time"
)

func TestNormalizeDefaultsDateRange(t *testing.T) {
	now := time.Date(2024, 10, 31, 15, 30, 0, 0, time.UTC)

	q := RangeQuery{Limit: 10}.Normalize(now)

	if q.StartDate == nil || q.StartDate.String() != "2024-10-01" {
		t.Fatalf("StartDate = %v, want 2024-10-01", q.StartDate)
	}

	if q.EndDate == nil || q.EndDate.String() != "2024-10-31" {
		t.Fatalf("EndDate = %v, want 2024-10-31", q.EndDate)
	}
}

func TestNormalizeKeepsExplicitBounds(t *testing.T) {
	start, _ := ParseDate("2024-01-01")
	end, _ := ParseDate("2024-02-01")

	q := RangeQuery{StartDate: &start, EndDate: &end, Limit: 10}.Normalize(time.Now())

	if q.StartDate.String() != "2024-01-01" || q.EndDate.String() != "2024-02-01" {
		t.Fatalf("explicit bounds changed: %v .. %v", q.StartDate, q.EndDate)
	}
}

func TestNormalizeClampsPagination(t *testing.T) {
	tests := []struct {
		limit, offset      int
		wantLimit, wantOff int
	}{
		{limit: 0, offset: 0, wantLimit: 1, wantOff: 0},
		{limit: -5, offset: -3, wantLimit: 1, wantOff: 0},
		{limit: 100, offset: 250, wantLimit: 100, wantOff: 250},
		{limit: 500, offset: 0, wantLimit: 100, wantOff: 0},
		{limit: 10, offset: 0, wantLimit: 10, wantOff: 0},
	}

	for _, tt := range tests {
		q := RangeQuery{Limit: tt.limit, Offset: tt.offset}.Normalize(time.Now())

		if q.Limit != tt.wantLimit || q.Offset != tt.wantOff {
			t.Fatalf("Normalize(limit=%d, offset=%d) = (%d, %d), want (%d, %d)",
				tt.limit, tt.offset, q.Limit, q.Offset, tt.wantLimit, tt.wantOff)
		}
	}
}
