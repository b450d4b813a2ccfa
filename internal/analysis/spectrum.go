package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X_k| for k in [0, n/2) of the mean-removed series.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spec := fft.FFTReal(centered)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantRotation estimates the rotation per step in degrees from the
// strongest non-zero frequency bin. The resolution is 360/len(data)
// degrees. It returns 0 when the series has no oscillation.
func DominantRotation(data []float64) float64 {
	ps := PowerSpectrum(data)
	best, bestIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > best {
			best, bestIdx = ps[i], i
		}
	}
	if bestIdx == 0 || best < 1e-12 {
		return 0
	}
	return 360 * float64(bestIdx) / float64(len(data))
}

// GrowthRate is the mean of ln(|p_{i+1}| / |p_i|) over the orbit. For a
// rotation-free map it tends to the log of the dominant eigenvalue modulus;
// for a complex pair it tends to ln|λ| over whole turns.
func GrowthRate(norms []float64) float64 {
	sum, count := 0.0, 0
	for i := 1; i < len(norms); i++ {
		if norms[i-1] > 0 && norms[i] > 0 {
			sum += math.Log(norms[i] / norms[i-1])
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
