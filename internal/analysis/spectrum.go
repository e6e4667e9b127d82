package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the Hann-windowed
// FFT of data. Any length works.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n < 2 {
		return nil
	}
	windowed := make([]float64, n)
	for i, v := range data {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = v * w
	}
	spectrum := fft.FFTReal(windowed)

	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency is the frequency in Hz of the largest non-DC bin of data
// sampled at fps. A flat trace has none and returns 0.
func DominantFrequency(data []float64, fps float64) float64 {
	n := len(data)
	if n < 4 || fps <= 0 {
		return 0
	}
	ps := PowerSpectrum(Detrend(data))

	best, peak := 0, 1e-9
	for i := 1; i < len(ps); i++ {
		if ps[i] > peak {
			best, peak = i, ps[i]
		}
	}
	return float64(best) * fps / float64(n)
}

// Detrend subtracts the mean.
func Detrend(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v - mean
	}
	return out
}
