package dsp

import "fmt"

// Filter is a streaming direct-form IIR evaluator. It owns fixed-capacity,
// insertion-at-front ring buffers of input and output history; pushing a
// new value evicts the oldest one.
type Filter struct {
	coeffs Coeffs
	x      []float64 // input history, x[0] is most recent
	y      []float64 // output history, y[0] is most recent
}

// NewFilter builds an evaluator from designer output, verifying the
// (gain, b, a) contract: a[0] == 1 and b is palindromic.
func NewFilter(c Coeffs) (*Filter, error) {
	if len(c.A) == 0 || len(c.B) == 0 || len(c.A) != len(c.B) {
		return nil, fmt.Errorf("%w: b and a must be the same non-zero length", ErrConfiguration)
	}
	if c.A[0] != 1 {
		return nil, fmt.Errorf("%w: a[0] = %g, want 1", ErrConfiguration, c.A[0])
	}
	n := len(c.B)
	for i := 0; i < n/2; i++ {
		if c.B[i] != c.B[n-1-i] {
			return nil, fmt.Errorf("%w: b is not palindromic", ErrConfiguration)
		}
	}

	return &Filter{
		coeffs: c,
		x:      make([]float64, n),
		y:      make([]float64, n),
	}, nil
}

// Step feeds one input sample and returns the corresponding output sample.
func (f *Filter) Step(in float64) float64 {
	pushFront(f.x, in)

	acc := 0.0
	for i, b := range f.coeffs.B {
		acc += b * f.x[i]
	}
	acc *= f.coeffs.Gain

	for i := 0; i < len(f.coeffs.A)-1; i++ {
		acc -= f.coeffs.A[i+1] * f.y[i]
	}

	pushFront(f.y, acc)
	return acc
}

// pushFront shifts buf right by one and writes v at index 0, dropping the
// last (oldest) element.
func pushFront(buf []float64, v float64) {
	copy(buf[1:], buf[:len(buf)-1])
	buf[0] = v
}
