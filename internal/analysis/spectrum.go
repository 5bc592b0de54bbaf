package analysis

import (
	"math"
	"math/cmplx"
)

// FFT is a radix-2 transform; len(data) must be a power of two.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		out := make([]complex128, n)
		for i := range data {
			out[i] = complex(data[i], 0)
		}
		return out
	}
	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	fe, fo := FFT(even), FFT(odd)
	out := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		out[k] = fe[k] + w*fo[k]
		out[k+n/2] = fe[k] - w*fo[k]
	}
	return out
}

// PowerSpectrum returns the magnitude of the first half of the transform of
// data zero-padded to a power of two, with the mean removed first so the DC
// bin does not dominate.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	n := 1
	for n < len(data) {
		n *= 2
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	padded := make([]float64, n)
	for i, v := range data {
		padded[i] = v - mean
	}

	bins := FFT(padded)
	ps := make([]float64, max(n/2, 1))
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

// Oscillation is the strongest periodic component of a series.
type Oscillation struct {
	Frequency float64 // Hz
	Period    float64 // seconds; zero when no oscillation was found
	Power     float64
}

// Dominant finds the strongest non-DC component of a series sampled every dt
// seconds.
func Dominant(data []float64, dt float64) Oscillation {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return Oscillation{}
	}

	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	if ps[best] == 0 {
		return Oscillation{}
	}

	n := 2 * len(ps)
	freq := float64(best) / (float64(n) * dt)
	return Oscillation{Frequency: freq, Period: 1 / freq, Power: ps[best]}
}
