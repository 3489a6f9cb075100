// Package sensor produces live lake sensor readings. The Simulator stands in
// for the physical sensor until the ingestion pipeline is wired to real
// hardware; it generates values in the ranges the deployed probes report.
package sensor

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/lakewatch/pollution-api/internal/pollution"
)

// Simulator implements pollution.SensorSource with randomized readings.
type Simulator struct {
	sensorID string
}

// NewSimulator creates a Simulator reporting under the given sensor id.
func NewSimulator(sensorID string) *Simulator {
	return &Simulator{sensorID: sensorID}
}

// Read returns one simulated raw reading.
func (s *Simulator) Read(_ context.Context) (pollution.RawSensorReading, error) {
	now := time.Now().UTC()

	return pollution.RawSensorReading{
		SensorID:          s.sensorID,
		AirQualityIndex:   rand.IntN(301),
		WaterQualityIndex: 30 + rand.IntN(71),
		PHLevel:           round1(6.5 + rand.Float64()*2.0),
		Date:              pollution.NewDate(now),
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
