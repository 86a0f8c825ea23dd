// Package dsp implements the generic Butterworth low-pass filter designer,
// a streaming direct-form IIR evaluator, and the arctangent FM discriminator
// that the Z-Wave codec is built on.
package dsp

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// ErrConfiguration is returned when a filter is requested with parameters
// that cannot produce a valid design.
var ErrConfiguration = errors.New("dsp: invalid filter configuration")

// Coeffs is the (gain, b, a) tuple produced by Design and consumed by
// NewFilter. a[0] is always 1 and b is palindromic.
type Coeffs struct {
	Gain float64
	B    []float64
	A    []float64
}

// Design computes the Butterworth low-pass coefficients for a filter of the
// given order, sampled at sampleRate Hz with a -3dB cutoff at cutoffFreq Hz.
// Results match Octave's butter(order, 2*cutoffFreq/sampleRate) to 1e-12
// relative error.
func Design(order int, sampleRate, cutoffFreq float64) (Coeffs, error) {
	if order < 1 {
		return Coeffs{}, fmt.Errorf("%w: order %d must be >= 1", ErrConfiguration, order)
	}
	if cutoffFreq <= 0 || cutoffFreq >= sampleRate/2 {
		return Coeffs{}, fmt.Errorf("%w: cutoff %g must be in (0, %g)", ErrConfiguration, cutoffFreq, sampleRate/2)
	}

	fcf := 2.0 * cutoffFreq / sampleRate
	return Coeffs{
		Gain: gain(order, fcf),
		B:    binomialRow(order),
		A:    denominator(order, fcf),
	}, nil
}

// denominator computes a[0..N] from the transformed poles, following the
// binomial-multiplication expansion described by the designer contract.
func denominator(order int, fcf float64) []float64 {
	theta := math.Pi * fcf
	st, ct := math.Sin(theta), math.Cos(theta)

	poles := make([]complex128, order)
	for k := 0; k < order; k++ {
		parg := math.Pi * float64(2*k+1) / float64(2*order)
		den := 1.0 + st*math.Sin(parg)
		poles[k] = complex(-ct/den, -st*math.Cos(parg)/den)
	}

	expanded := binomialMult(poles)

	a := make([]float64, order+1)
	a[0] = 1
	for k := 1; k <= order; k++ {
		a[k] = real(expanded[k-1])
	}
	return a
}

// binomialMult expands Π(z - p[i]) via iterated binomial multiplication,
// starting from an all-zero accumulator and sweeping each new root in from
// the top coefficient down.
func binomialMult(p []complex128) []complex128 {
	a := make([]complex128, len(p))
	for i := range p {
		for j := i; j >= 1; j-- {
			a[j] += p[i] * a[j-1]
		}
		a[0] += p[i]
	}
	return a
}

// binomialRow returns the numerator coefficients C(order, i) for i in
// [0, order], via the multiplicative recurrence C(n,i) = C(n,i-1)*(n-i+1)/i
// rather than a naive factorial (which overflows for large orders).
func binomialRow(order int) []float64 {
	b := make([]float64, order+1)
	b[0] = 1
	if order == 0 {
		return b
	}
	b[1] = float64(order)
	m := order / 2
	for i := 2; i <= m; i++ {
		b[i] = float64(order-i+1) * b[i-1] / float64(i)
		b[order-i] = b[i]
	}
	b[order-1] = float64(order)
	b[order] = 1
	return b
}

// gain computes the scaling factor sf so that the filter has unity gain at
// DC: sin(theta/2)^order / Π_{k<order/2}(1 + sin(theta)*sin((2k+1)*pi/(2*order))),
// with an extra factor of sin(theta/2)+cos(theta/2) when order is odd.
func gain(order int, fcf float64) float64 {
	omega := math.Pi * fcf
	st := math.Sin(omega)
	parg0 := math.Pi / float64(2*order)

	sf := 1.0
	for k := 0; k < order/2; k++ {
		sf *= 1.0 + st*math.Sin(float64(2*k+1)*parg0)
	}

	half := math.Sin(omega / 2.0)
	if order%2 != 0 {
		sf *= half + math.Cos(omega/2.0)
	}
	return math.Pow(half, float64(order)) / sf
}

// magnitudeAt is a small frequency-domain sanity check used by tests: it
// evaluates |H(e^jw)| for the designed (gain, b, a) directly from the
// z-transform definition, without needing a full FFT.
func magnitudeAt(c Coeffs, sampleRate, freq float64) float64 {
	w := 2 * math.Pi * freq / sampleRate
	var num, den complex128
	for i, bi := range c.B {
		num += complex(bi, 0) * cmplx.Exp(complex(0, -w*float64(i)))
	}
	for i, ai := range c.A {
		den += complex(ai, 0) * cmplx.Exp(complex(0, -w*float64(i)))
	}
	return c.Gain * cmplx.Abs(num/den)
}

// MagnitudeAt returns the filter's gain magnitude at freq Hz for a filter
// sampled at sampleRate Hz, evaluated directly from the z-transform. Used to
// confirm the -3dB cutoff point of a design without a full FFT pipeline.
func MagnitudeAt(c Coeffs, sampleRate, freq float64) float64 {
	return magnitudeAt(c, sampleRate, freq)
}
