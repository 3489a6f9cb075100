// Package analytics computes daily alignment, pairwise correlation and
// threshold-based insights over pollution and weather time series.
package analytics

import (
	"sort"
	"time"
)

// PollutionObservation is one pollution record reduced to the fields the
// engine needs. All fields are always present in the pollution dataset.
type PollutionObservation struct {
	Date              time.Time
	AirQualityIndex   float64
	WaterQualityIndex float64
	Temperature       float64
}

// WeatherObservation is one weather record reduced to the fields the engine
// needs. Historical weather ingestion may be partial, so both fields are
// optional; nil means the value was not recorded for that row.
type WeatherObservation struct {
	Date     time.Time
	Humidity *float64
	RainMM   *float64
}

// AlignedPoint is one calendar day present in both datasets after daily
// averaging. Humidity and RainMM are nil when no row on that day carried
// a value for them.
type AlignedPoint struct {
	Date              time.Time
	AirQualityIndex   float64
	WaterQualityIndex float64
	Temperature       float64
	Humidity          *float64
	RainMM            *float64
}

const dayKeyFormat = "2006-01-02"

// Align groups both series by calendar day, averages same-day records per
// field, and inner-joins the two daily series on date. Days present in only
// one series are dropped. The result is ordered by ascending date.
func Align(pollution []PollutionObservation, weather []WeatherObservation) []AlignedPoint {
	if len(pollution) == 0 || len(weather) == 0 {
		return nil
	}

	pollutionDaily := aggregatePollutionDaily(pollution)
	weatherDaily := aggregateWeatherDaily(weather)

	points := make([]AlignedPoint, 0, len(pollutionDaily))

	for key, p := range pollutionDaily {
		w, ok := weatherDaily[key]
		if !ok {
			continue
		}

		day, _ := time.Parse(dayKeyFormat, key)

		points = append(points, AlignedPoint{
			Date:              day,
			AirQualityIndex:   p.aqi.mean(),
			WaterQualityIndex: p.wqi.mean(),
			Temperature:       p.temperature.mean(),
			Humidity:          w.humidity.meanOrNil(),
			RainMM:            w.rain.meanOrNil(),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	return points
}

// accumulator collects samples for one field on one day.
type accumulator struct {
	sum   float64
	count int
}

func (a *accumulator) add(v float64) {
	a.sum += v
	a.count++
}

func (a accumulator) mean() float64 {
	return a.sum / float64(a.count)
}

// meanOrNil distinguishes "no samples" from a mean of zero.
func (a accumulator) meanOrNil() *float64 {
	if a.count == 0 {
		return nil
	}

	m := a.mean()

	return &m
}

type pollutionDay struct {
	aqi         accumulator
	wqi         accumulator
	temperature accumulator
}

type weatherDay struct {
	humidity accumulator
	rain     accumulator
}

func aggregatePollutionDaily(obs []PollutionObservation) map[string]*pollutionDay {
	daily := make(map[string]*pollutionDay)

	for _, o := range obs {
		key := o.Date.Format(dayKeyFormat)

		day, ok := daily[key]
		if !ok {
			day = &pollutionDay{}
			daily[key] = day
		}

		day.aqi.add(o.AirQualityIndex)
		day.wqi.add(o.WaterQualityIndex)
		day.temperature.add(o.Temperature)
	}

	return daily
}

func aggregateWeatherDaily(obs []WeatherObservation) map[string]*weatherDay {
	daily := make(map[string]*weatherDay)

	for _, o := range obs {
		key := o.Date.Format(dayKeyFormat)

		day, ok := daily[key]
		if !ok {
			day = &weatherDay{}
			daily[key] = day
		}

		if o.Humidity != nil {
			day.humidity.add(*o.Humidity)
		}

		if o.RainMM != nil {
			day.rain.add(*o.RainMM)
		}
	}

	return daily
}
