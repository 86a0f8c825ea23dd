package dsp

import "math/cmplx"

// Discriminator is an arctangent FM discriminator: an instantaneous
// phase-difference estimator over a complex baseband stream.
type Discriminator struct {
	prev complex128
}

// Step returns arg(conj(prev) * s) and advances the discriminator's memory
// to s. The zero value is ready to use, with prev starting at 0.
func (d *Discriminator) Step(s complex128) float64 {
	diff := cmplx.Phase(cmplx.Conj(d.prev) * s)
	d.prev = s
	return diff
}
