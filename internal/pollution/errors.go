package pollution

import "errors"

var (
	// ErrInsufficientData is returned when a correlation is requested but
	// either historical dataset is empty after date filtering. It is a
	// client-input error, not an infrastructure failure.
	ErrInsufficientData = errors.New("insufficient data to calculate correlation")

	// ErrMalformedSensorID is returned when a sensor identifier carries no
	// parseable numeric suffix.
	ErrMalformedSensorID = errors.New("sensor id has no numeric suffix")
)
