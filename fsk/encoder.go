package fsk

import (
	"errors"
	"fmt"
	"math"

	"github.com/wavingz-go/zwave/dsp"
)

// ErrConfiguration is returned when an Encoder is requested with a
// sample/baud rate pair that cannot keep the two tones phase-coherent.
var ErrConfiguration = errors.New("fsk: invalid configuration")

const (
	separationFreq = 20000.0 // Δf, Hz
	f0Mul          = 0.5
	f1Mul          = 2.5

	preambleByte = 0x55
	sofByte      = 0xF0
	preambleLen  = 20

	filterOrder = 6
)

// Config carries the construction-time parameters for an Encoder.
type Config struct {
	SampleRate int
	BaudRate   int
	Amplitude  float64
	Encoding   ByteEncoding
}

// Encoder synthesizes coherent two-tone FSK IQ from a byte payload. It owns
// two independent low-pass filters (one per I/Q channel) and a
// monotonically increasing phase counter so that phase stays continuous
// across bytes and calls to Encode.
type Encoder struct {
	cfg    Config
	ts     int // samples per symbol
	lp1    *dsp.Filter
	lp2    *dsp.Filter
	sample int64
}

// NewEncoder validates the phase-coherence precondition and builds the
// pulse-shaping filters. amplitude defaults to 100 when zero.
func NewEncoder(cfg Config) (*Encoder, error) {
	if cfg.Amplitude == 0 {
		cfg.Amplitude = 100
	}
	if cfg.SampleRate <= 0 || cfg.BaudRate <= 0 {
		return nil, fmt.Errorf("%w: sample_rate and baud_rate must be positive", ErrConfiguration)
	}

	ts := cfg.SampleRate / cfg.BaudRate
	if ts == 0 {
		return nil, fmt.Errorf("%w: baud_rate %d too high for sample_rate %d", ErrConfiguration, cfg.BaudRate, cfg.SampleRate)
	}

	phase0 := math.Sin(2 * math.Pi * separationFreq * f0Mul * float64(ts) / float64(cfg.SampleRate))
	phase1 := math.Sin(2 * math.Pi * separationFreq * f1Mul * float64(ts) / float64(cfg.SampleRate))
	if math.Abs(phase0-phase1) > 1e-12 {
		return nil, fmt.Errorf("%w: sample_rate/baud_rate pair is not phase-coherent with the 20kHz separation tone", ErrConfiguration)
	}

	cutoff := f1Mul * separationFreq * 2.5
	coeffs, err := dsp.Design(filterOrder, float64(cfg.SampleRate), cutoff)
	if err != nil {
		return nil, fmt.Errorf("fsk: build pulse-shaping filter: %w", err)
	}
	lp1, err := dsp.NewFilter(coeffs)
	if err != nil {
		return nil, err
	}
	lp2, err := dsp.NewFilter(coeffs)
	if err != nil {
		return nil, err
	}

	return &Encoder{cfg: cfg, ts: ts, lp1: lp1, lp2: lp2}, nil
}

// Encode synthesizes the interleaved I, Q, I, Q, ... byte stream for
// payload: 1ms of silence to seed the filters, 20 bytes of 0x55 preamble,
// one 0xF0 SOF byte, the payload itself, then silenceSeconds of trailing
// silence.
func (e *Encoder) Encode(payload []byte, silenceSeconds float64) ([]byte, error) {
	var out []byte

	seed := e.cfg.SampleRate / 1000
	for i := 0; i < seed; i++ {
		if err := e.emitSample(0, 0, &out); err != nil {
			return nil, err
		}
	}

	for i := 0; i < preambleLen; i++ {
		if err := e.emitByte(preambleByte, &out); err != nil {
			return nil, err
		}
	}

	if err := e.emitByte(sofByte, &out); err != nil {
		return nil, err
	}

	for _, b := range payload {
		if err := e.emitByte(b, &out); err != nil {
			return nil, err
		}
	}

	trailing := int(silenceSeconds * float64(e.cfg.SampleRate))
	for i := 0; i < trailing; i++ {
		if err := e.emitSample(0, 0, &out); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// emitByte transmits data MSB-first: for each bit, Ts consecutive samples
// of the corresponding tone are filtered and quantized.
func (e *Encoder) emitByte(data byte, out *[]byte) error {
	for i := 0; i < 8; i++ {
		bit := (data<<uint(i))&0x80 != 0
		fShift := f0Mul * separationFreq
		if bit {
			fShift = f1Mul * separationFreq
		}
		for k := 0; k < e.ts; k++ {
			t := float64(e.sample) / float64(e.cfg.SampleRate)
			i := math.Sin(2 * math.Pi * fShift * t)
			q := math.Cos(2 * math.Pi * fShift * t)
			if err := e.emitSample(i, q, out); err != nil {
				return err
			}
			e.sample++
		}
	}
	return nil
}

// emitSample filters one raw (I, Q) pair through the pulse-shaping filters,
// quantizes it, and appends the resulting bytes to out.
func (e *Encoder) emitSample(i, q float64, out *[]byte) error {
	fi := e.lp1.Step(i)
	fq := e.lp2.Step(q)

	ib, err := e.cfg.Encoding.Quantize(fi, e.cfg.Amplitude)
	if err != nil {
		return err
	}
	qb, err := e.cfg.Encoding.Quantize(fq, e.cfg.Amplitude)
	if err != nil {
		return err
	}
	*out = append(*out, ib, qb)
	return nil
}
