package fsk

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow is returned when a quantized IQ sample would exceed the 8-bit
// amplitude range after scaling.
var ErrOverflow = errors.New("fsk: amplitude overflow")

// ByteEncoding selects how real-valued IQ samples are packed into bytes.
type ByteEncoding int

const (
	// Signed8 packs samples as signed bytes in [-127, 127], center 0 — the
	// layout HackRF One's cs8 capture format uses.
	Signed8 ByteEncoding = iota
	// Unsigned8 packs samples as unsigned bytes in [0, 255], center 127 —
	// the layout RTL-SDR's cu8 capture format uses.
	Unsigned8
)

// toByte converts a rounded, range-checked sample to its final encoded byte.
func (e ByteEncoding) toByte(v float64) byte {
	if e == Unsigned8 {
		return byte(int32(v) + 127)
	}
	return byte(int8(v))
}

// Quantize scales x by amplitude and packs it into one encoded byte,
// failing with ErrOverflow if |x*amplitude| > 127.
func (e ByteEncoding) Quantize(x, amplitude float64) (byte, error) {
	scaled := x * amplitude
	if math.Abs(scaled) > 127 {
		return 0, fmt.Errorf("%w: %g*%g = %g exceeds 127", ErrOverflow, x, amplitude, scaled)
	}
	return e.toByte(math.Round(scaled)), nil
}

// ToComplex converts one encoded IQ byte pair back to a complex baseband
// sample in [-1, 1] per channel, per the §6 conversion formulas:
// signed -> a/127.0, unsigned -> a/127.0 - 1.0.
func (e ByteEncoding) ToComplex(i, q byte) complex128 {
	var fi, fq float64
	if e == Unsigned8 {
		fi = float64(i)/127.0 - 1.0
		fq = float64(q)/127.0 - 1.0
	} else {
		fi = float64(int8(i)) / 127.0
		fq = float64(int8(q)) / 127.0
	}
	return complex(fi, fq)
}
