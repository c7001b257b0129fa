package calculator

import (
	"errors"
	"math"
)

// RollingMaxIndices returns indices whose value equals the maximum of a
// centered rolling window, i.e. candidate peaks.
func RollingMaxIndices(values []float64, window int) []int {
	return rollingExtremaIndices(values, window, true)
}

// RollingMinIndices returns indices whose value equals the minimum of a
// centered rolling window, i.e. candidate troughs.
func RollingMinIndices(values []float64, window int) []int {
	return rollingExtremaIndices(values, window, false)
}

func rollingExtremaIndices(values []float64, window int, max bool) []int {
	if window <= 0 || len(values) == 0 {
		return nil
	}
	half := window / 2
	var out []int
	// Bars without a complete centered window never qualify, so the first
	// and last half-window of the series cannot produce pivots.
	for i := half; i < len(values)-half; i++ {
		lo := i - half
		hi := i + half
		ext := values[lo]
		for j := lo + 1; j <= hi; j++ {
			if (max && values[j] > ext) || (!max && values[j] < ext) {
				ext = values[j]
			}
		}
		if values[i] == ext {
			out = append(out, i)
		}
	}
	return out
}

// LocalMinimaIndices returns indices strictly below both neighbors within
// [start, end).
func LocalMinimaIndices(values []float64, start, end int) []int {
	if start < 1 {
		start = 1
	}
	if end > len(values)-1 {
		end = len(values) - 1
	}
	var out []int
	for i := start; i < end; i++ {
		if values[i] < values[i-1] && values[i] < values[i+1] {
			out = append(out, i)
		}
	}
	return out
}

// FitLine fits a least-squares line y = slope*x + intercept through the
// given points.
func FitLine(xs []int, ys []float64) (slope, intercept float64, err error) {
	if len(xs) != len(ys) {
		return 0, 0, errors.New("mismatched point counts")
	}
	n := float64(len(xs))
	if n < 2 {
		return 0, 0, errors.New("need at least two points to fit a line")
	}
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		x := float64(xs[i])
		sumX += x
		sumY += ys[i]
		sumXY += x * ys[i]
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, 0, errors.New("degenerate x values")
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, nil
}

// RangeHighLow scans values[start:end] and returns the high and low.
func RangeHighLow(highs, lows []float64, start, end int) (high, low float64, err error) {
	if start < 0 {
		start = 0
	}
	if end > len(highs) {
		end = len(highs)
	}
	if start >= end {
		return 0, 0, errors.New("empty range")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < end; i++ {
		if highs[i] > high {
			high = highs[i]
		}
		if lows[i] < low {
			low = lows[i]
		}
	}
	return high, low, nil
}

// MaxIndex returns the index of the largest value in values[start:end).
func MaxIndex(values []float64, start, end int) int {
	idx := start
	for i := start + 1; i < end; i++ {
		if values[i] > values[idx] {
			idx = i
		}
	}
	return idx
}

// MinIndex returns the index of the smallest value in values[start:end).
func MinIndex(values []float64, start, end int) int {
	idx := start
	for i := start + 1; i < end; i++ {
		if values[i] < values[idx] {
			idx = i
		}
	}
	return idx
}
