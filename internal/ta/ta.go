package ta

import "math"

// SMA returns the simple moving average of the last n values.
func SMA(values []float64, n int) float64 {
	if len(values) < n || n <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := len(values) - n; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(n)
}

// RSI returns the relative strength index over period using the last
// period+1 closes.
func RSI(closes []float64, period int) float64 {
	if len(closes) < period+1 || period <= 0 {
		return math.NaN()
	}
	gain, loss := 0.0, 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	if loss == 0 {
		return 100.0
	}
	rs := gain / loss
	return 100.0 - (100.0 / (1.0 + rs))
}

// RelativeVolume is the latest volume as a multiple of the trailing n-bar
// average (the latest bar excluded from the average).
func RelativeVolume(volumes []float64, n int) float64 {
	if len(volumes) < n+1 || n <= 0 {
		return math.NaN()
	}
	avg := SMA(volumes[:len(volumes)-1], n)
	if avg == 0 || math.IsNaN(avg) {
		return math.NaN()
	}
	return volumes[len(volumes)-1] / avg
}
