package fsk

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/wavingz-go/zwave/dsp"
)

const (
	frontEndOrder  = 6
	frontEndCutoff = 150000.0

	freqFilterOrder  = 3
	freqFilterCutoff = 50000.0

	lockFilterOrder  = 3
	lockFilterCutoff = 750.0

	lossOfSignalThreshold = 0.01

	carrierTrackAlpha = 0.95
	carrierTrackBeta  = 0.05
)

// Demodulator recovers Z-Wave frames from a stream of baseband IQ samples.
// It runs a front-end low-pass on I and Q, an arctangent FM discriminator,
// a symbol-rate frequency filter that yields the instantaneous bit value,
// a slow lock filter used for loss-of-signal detection and carrier
// tracking, and the two-tier SampleMachine/SymbolMachine state machines
// described in the fsk package.
type Demodulator struct {
	encoding ByteEncoding

	lpI *dsp.Filter
	lpQ *dsp.Filter

	disc       dsp.Discriminator
	freqFilter *dsp.Filter
	lockFilter *dsp.Filter

	omegaC float64

	sampleSM *SampleMachine
	symbolSM *SymbolMachine

	Log zerolog.Logger
}

// NewDemodulator builds a Demodulator for the given input sample rate and
// IQ byte encoding. cb is invoked once per recovered frame.
func NewDemodulator(sampleRate int, encoding ByteEncoding, cb FrameCallback) (*Demodulator, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("fsk: sample_rate must be positive, got %d", sampleRate)
	}

	frontEnd, err := dsp.Design(frontEndOrder, float64(sampleRate), frontEndCutoff)
	if err != nil {
		return nil, fmt.Errorf("fsk: build front-end filter: %w", err)
	}
	lpI, err := dsp.NewFilter(frontEnd)
	if err != nil {
		return nil, err
	}
	lpQ, err := dsp.NewFilter(frontEnd)
	if err != nil {
		return nil, err
	}

	freqCoeffs, err := dsp.Design(freqFilterOrder, float64(sampleRate), freqFilterCutoff)
	if err != nil {
		return nil, fmt.Errorf("fsk: build frequency filter: %w", err)
	}
	freqFilter, err := dsp.NewFilter(freqCoeffs)
	if err != nil {
		return nil, err
	}

	lockCoeffs, err := dsp.Design(lockFilterOrder, float64(sampleRate), lockFilterCutoff)
	if err != nil {
		return nil, fmt.Errorf("fsk: build lock filter: %w", err)
	}
	lockFilter, err := dsp.NewFilter(lockCoeffs)
	if err != nil {
		return nil, err
	}

	symbolSM := NewSymbolMachine(cb)
	sampleSM := NewSampleMachine(symbolSM)

	return &Demodulator{
		encoding:   encoding,
		lpI:        lpI,
		lpQ:        lpQ,
		freqFilter: freqFilter,
		lockFilter: lockFilter,
		sampleSM:   sampleSM,
		symbolSM:   symbolSM,
		Log:        zerolog.Nop(),
	}, nil
}

// Sample feeds one encoded IQ byte pair through the demodulator. Frame
// callbacks registered at construction time may fire synchronously from
// within this call.
func (d *Demodulator) Sample(i, q byte) {
	d.SampleComplex(d.encoding.ToComplex(i, q))
}

// SampleComplex feeds one baseband IQ sample through the demodulator
// directly, bypassing byte decoding.
func (d *Demodulator) SampleComplex(iq complex128) {
	fi := d.lpI.Step(real(iq))
	fq := d.lpQ.Step(imag(iq))

	disc := d.disc.Step(complex(fi, fq))
	s := d.freqFilter.Step(disc)
	lockFreq := d.lockFilter.Step(disc)

	signal := math.Abs(lockFreq) > lossOfSignalThreshold

	var sample *bool
	if signal {
		if d.sampleSM.IsIdle() {
			d.omegaC = lockFreq
		}
		bit := (s - d.omegaC) < 0
		sample = &bit
		if d.sampleSM.isSyncing() {
			d.omegaC = carrierTrackAlpha*d.omegaC + carrierTrackBeta*lockFreq
		}
	}

	sampleBefore, symbolBefore := d.sampleSM.kind, d.symbolSM.kind
	d.sampleSM.Process(sample)
	if k := d.sampleSM.kind; k != sampleBefore {
		d.Log.Debug().Int("from", int(sampleBefore)).Int("to", int(k)).Msg("fsk: sample machine transition")
	}
	if k := d.symbolSM.kind; k != symbolBefore {
		d.Log.Debug().Int("from", int(symbolBefore)).Int("to", int(k)).Msg("fsk: symbol machine transition")
	}
}
