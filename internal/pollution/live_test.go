package pollution

import (
	"errors"
	"testing"
	"time"
)

func TestParseSensorID(t *testing.T) {
	tests := []struct {
		sensorID string
		want     int
		wantErr  bool
	}{
		{sensorID: "phewa-001", want: 1},
		{sensorID: "phewa-042", want: 42},
		{sensorID: "lake-station-7", want: 7},
		{sensorID: "123", want: 123},
		{sensorID: "phewa-abc", wantErr: true},
		{sensorID: "phewa-", wantErr: true},
		{sensorID: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseSensorID(tt.sensorID)

		if tt.wantErr {
			if !errors.Is(err, ErrMalformedSensorID) {
				t.Fatalf("ParseSensorID(%q) error = %v, want ErrMalformedSensorID", tt.sensorID, err)
			}

			continue
		}

		if err != nil {
			t.Fatalf("ParseSensorID(%q) unexpected error: %v", tt.sensorID, err)
		}

		if got != tt.want {
			t.Fatalf("ParseSensorID(%q) = %d, want %d", tt.sensorID, got, tt.want)
		}
	}
}

func TestMapLiveReading(t *testing.T) {
	today := NewDate(time.Now())

	raw := RawSensorReading{
		SensorID:          "phewa-001",
		AirQualityIndex:   120,
		WaterQualityIndex: 80,
		PHLevel:           7.2,
		Date:              today,
	}

	reading, err := MapLiveReading(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reading.SensorID != 1 {
		t.Fatalf("SensorID = %d, want 1", reading.SensorID)
	}

	if reading.AirQualityIndex != 120 || reading.WaterQualityIndex != 80 || reading.PHLevel != 7.2 {
		t.Fatalf("pass-through fields changed: %+v", reading)
	}

	if reading.Temperature != 22.0 {
		t.Fatalf("Temperature = %v, want the 22.0 placeholder", reading.Temperature)
	}

	if !reading.Date.Equal(today.Time) {
		t.Fatalf("Date = %v, want %v", reading.Date, today)
	}
}

func TestMapLiveReadingMalformedID(t *testing.T) {
	_, err := MapLiveReading(RawSensorReading{SensorID: "no-numeric-suffix"})
	if !errors.Is(err, ErrMalformedSensorID) {
		t.Fatalf("error = %v, want ErrMalformedSensorID", err)
	}
}
