// Package pollution holds the domain model and orchestration service for the
// lake monitoring API: historical pollution and weather records, the live
// sensor reading, current weather conditions, and the correlation summary
// derived from them.
package pollution

// PollutionRecord is one persisted sensor measurement for a calendar day.
// Records are immutable once written.
type PollutionRecord struct {
	AirQualityIndex   int     `json:"air_quality_index"`
	WaterQualityIndex int     `json:"water_quality_index"`
	PHLevel           float64 `json:"ph_level"`
	Temperature       float64 `json:"temperature"`
	Date              Date    `json:"date"`
}

// WeatherRecord is one persisted weather measurement for a calendar day.
// Historical weather ingestion may be partial, so every field except the
// date is independently nullable.
type WeatherRecord struct {
	Temperature        *float64 `json:"temperature"`
	FeelsLike          *float64 `json:"feels_like"`
	Humidity           *int     `json:"humidity"`
	WeatherDescription *string  `json:"weather_description"`
	WindSpeed          *float64 `json:"wind_speed"`
	RainMM             *float64 `json:"rain_mm,omitempty"`
	Sunrise            *int64   `json:"sunrise"`
	Sunset             *int64   `json:"sunset"`
	City               *string  `json:"city"`
	Country            *string  `json:"country"`
	Date               Date     `json:"date"`
}

// HistoricalPage is one page of records plus the total count of records
// matching the date filter irrespective of pagination.
type HistoricalPage[T any] struct {
	TotalCount int `json:"total_count"`
	Items      []T `json:"historical_data"`
}

// LiveReading is a normalized live sensor reading. It is never persisted.
type LiveReading struct {
	SensorID          int     `json:"sensor_id"`
	AirQualityIndex   int     `json:"air_quality_index"`
	WaterQualityIndex int     `json:"water_quality_index"`
	Temperature       float64 `json:"temperature"`
	PHLevel           float64 `json:"ph_level"`
	Date              Date    `json:"date"`
}

// RawSensorReading is the unvalidated payload produced by a sensor source.
// It is normalized into a LiveReading by MapLiveReading.
type RawSensorReading struct {
	SensorID          string
	AirQualityIndex   int
	WaterQualityIndex int
	PHLevel           float64
	Date              Date
}

// CurrentWeather is the external provider's view of current conditions.
type CurrentWeather struct {
	Temperature        float64  `json:"temperature"`
	FeelsLike          float64  `json:"feels_like"`
	Humidity           int      `json:"humidity"`
	WeatherDescription string   `json:"weather_description"`
	WindSpeed          float64  `json:"wind_speed"`
	RainMM             *float64 `json:"rain_mm,omitempty"`
	Sunrise            int64    `json:"sunrise"`
	Sunset             int64    `json:"sunset"`
	City               string   `json:"city"`
	Country            string   `json:"country"`
}

// CorrelationSummary holds the six named pairwise coefficients. A nil
// coefficient is undefined (too few aligned points, or zero variance),
// which is distinct from a coefficient of 0.
type CorrelationSummary struct {
	AirQualityIndexTemperature   *float64 `json:"air_quality_index_temperature"`
	AirQualityIndexHumidity      *float64 `json:"air_quality_index_humidity"`
	AirQualityIndexRainfall      *float64 `json:"air_quality_index_rainfall"`
	WaterQualityIndexTemperature *float64 `json:"water_quality_index_temperature"`
	WaterQualityIndexHumidity    *float64 `json:"water_quality_index_humidity"`
	WaterQualityIndexRainfall    *float64 `json:"water_quality_index_rainfall"`
}

// CorrelationResult is the correlation endpoint response.
type CorrelationResult struct {
	CorrelationSummary CorrelationSummary `json:"correlation_summary"`
	Insights           []string           `json:"insights"`
}

// Overview is the composed dashboard response.
type Overview struct {
	LivePollutionData       LiveReading                     `json:"live_pollution_data"`
	HistoricalPollutionData HistoricalPage[PollutionRecord] `json:"historical_pollution_data"`
	HistoricalWeatherData   HistoricalPage[WeatherRecord]   `json:"historical_weather_data"`
	Weather                 CurrentWeather                  `json:"weather"`
}
