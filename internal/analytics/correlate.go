package analytics

import "math"

// Coefficient is a Pearson correlation result. Valid is false when the
// coefficient is undefined: fewer than two paired points, or zero variance
// in either vector. An invalid coefficient is distinct from a value of 0.
type Coefficient struct {
	Value float64
	Valid bool
}

// Summary holds the six fixed pairwise coefficients. The temperature side of
// the two temperature pairs is the pollution dataset's own temperature
// reading; humidity and rainfall come from the weather dataset.
type Summary struct {
	AQITemperature Coefficient
	AQIHumidity    Coefficient
	AQIRainfall    Coefficient
	WQITemperature Coefficient
	WQIHumidity    Coefficient
	WQIRainfall    Coefficient
}

// Correlate computes the six pairwise Pearson coefficients over the aligned
// series. Days with a missing humidity or rainfall average are excluded from
// the pairs involving that variable only; the other pairs still use them.
func Correlate(points []AlignedPoint) Summary {
	var (
		aqiTemp, wqiTemp pairedSeries
		aqiHum, wqiHum   pairedSeries
		aqiRain, wqiRain pairedSeries
	)

	for _, p := range points {
		aqiTemp.add(p.AirQualityIndex, p.Temperature)
		wqiTemp.add(p.WaterQualityIndex, p.Temperature)

		if p.Humidity != nil {
			aqiHum.add(p.AirQualityIndex, *p.Humidity)
			wqiHum.add(p.WaterQualityIndex, *p.Humidity)
		}

		if p.RainMM != nil {
			aqiRain.add(p.AirQualityIndex, *p.RainMM)
			wqiRain.add(p.WaterQualityIndex, *p.RainMM)
		}
	}

	return Summary{
		AQITemperature: aqiTemp.pearson(),
		AQIHumidity:    aqiHum.pearson(),
		AQIRainfall:    aqiRain.pearson(),
		WQITemperature: wqiTemp.pearson(),
		WQIHumidity:    wqiHum.pearson(),
		WQIRainfall:    wqiRain.pearson(),
	}
}

type pairedSeries struct {
	xs []float64
	ys []float64
}

func (s *pairedSeries) add(x, y float64) {
	s.xs = append(s.xs, x)
	s.ys = append(s.ys, y)
}

// pearson computes the Pearson correlation coefficient using population
// statistics; the 1/n factors cancel, so sample statistics would give the
// same value.
func (s pairedSeries) pearson() Coefficient {
	n := len(s.xs)
	if n < 2 {
		return Coefficient{}
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += s.xs[i]
		sumY += s.ys[i]
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64

	for i := 0; i < n; i++ {
		dx := s.xs[i] - meanX
		dy := s.ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return Coefficient{}
	}

	return Coefficient{
		Value: cov / math.Sqrt(varX*varY),
		Valid: true,
	}
}
