package pollution

import (
	"fmt"
	"strconv"
	"strings"
)

// liveReadingTemperature is a placeholder: the current sensor generation
// does not report water temperature, so live readings carry a fixed value
// until the hardware integration lands.
const liveReadingTemperature = 22.0

// MapLiveReading normalizes a raw sensor payload into a LiveReading. The
// numeric sensor id is taken from the identifier's suffix after the last
// '-'; an identifier without a numeric suffix is rejected.
func MapLiveReading(raw RawSensorReading) (LiveReading, error) {
	id, err := ParseSensorID(raw.SensorID)
	if err != nil {
		return LiveReading{}, err
	}

	return LiveReading{
		SensorID:          id,
		AirQualityIndex:   raw.AirQualityIndex,
		WaterQualityIndex: raw.WaterQualityIndex,
		Temperature:       liveReadingTemperature,
		PHLevel:           raw.PHLevel,
		Date:              raw.Date,
	}, nil
}

// ParseSensorID extracts the numeric suffix from a hyphen-delimited sensor
// identifier, e.g. "phewa-001" -> 1.
func ParseSensorID(sensorID string) (int, error) {
	suffix := sensorID
	if idx := strings.LastIndex(sensorID, "-"); idx >= 0 {
		suffix = sensorID[idx+1:]
	}

	id, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSensorID, sensorID)
	}

	return id, nil
}
