// Package zwave implements the signal-processing core of a Z-Wave
// software-defined radio: Butterworth filter design and streaming
// evaluation, an FM discriminator, a two-tone FSK encoder, and the
// sample-rate/symbol-rate demodulator state machines that recover Z-Wave
// frames from baseband IQ.
//
// The public surface here simply re-exports the dsp, fsk, and frame
// subpackages so that a caller who only needs encode/decode does not have
// to import all three by hand. Callers who need the lower-level pieces
// (custom filter designs, direct access to the state machines) should
// import those packages directly.
package zwave

import (
	"github.com/wavingz-go/zwave/dsp"
	"github.com/wavingz-go/zwave/frame"
	"github.com/wavingz-go/zwave/fsk"
)

// IQ byte encodings, re-exported from fsk.
const (
	Signed8   = fsk.Signed8
	Unsigned8 = fsk.Unsigned8
)

type (
	// ByteEncoding selects how real-valued IQ samples are packed into bytes.
	ByteEncoding = fsk.ByteEncoding
	// EncoderConfig carries the construction-time parameters for an Encoder.
	EncoderConfig = fsk.Config
	// Encoder synthesizes coherent two-tone FSK IQ from a byte payload.
	Encoder = fsk.Encoder
	// Demodulator recovers Z-Wave frames from a stream of baseband IQ.
	Demodulator = fsk.Demodulator
	// FrameCallback is invoked once per frame recovered by a Demodulator.
	FrameCallback = fsk.FrameCallback
	// Header is a fixed-layout view over a Z-Wave frame's first 10 bytes.
	Header = frame.Header
	// Filter is a streaming direct-form IIR evaluator.
	Filter = dsp.Filter
	// FilterCoeffs holds a designed filter's gain and feedforward/feedback
	// coefficients.
	FilterCoeffs = dsp.Coeffs
)

// NewEncoder constructs a two-tone FSK Encoder. See fsk.NewEncoder.
func NewEncoder(cfg EncoderConfig) (*Encoder, error) { return fsk.NewEncoder(cfg) }

// NewDemodulator constructs a Z-Wave frame Demodulator. See
// fsk.NewDemodulator.
func NewDemodulator(sampleRate int, encoding ByteEncoding, cb FrameCallback) (*Demodulator, error) {
	return fsk.NewDemodulator(sampleRate, encoding, cb)
}

// DesignButterworth designs a Butterworth low-pass filter. See dsp.Design.
func DesignButterworth(order int, sampleRate, cutoffFreq float64) (FilterCoeffs, error) {
	return dsp.Design(order, sampleRate, cutoffFreq)
}

// ParseHeader returns a Header view over a Z-Wave frame. See frame.Parse.
func ParseHeader(data []byte) (Header, error) { return frame.Parse(data) }

// Checksum computes the Z-Wave XOR frame check sequence. See frame.Checksum.
func Checksum(data []byte) byte { return frame.Checksum(data) }

// ValidFrame reports whether data holds a complete, checksum-valid Z-Wave
// frame. See frame.Valid.
func ValidFrame(data []byte) bool { return frame.Valid(data) }
