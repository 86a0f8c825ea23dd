package fsk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestSampleMachine_IdleUntilSignal(t *testing.T) {
	sm := NewSampleMachine(nil)
	assert.True(t, sm.IsIdle())

	sm.Process(nil)
	assert.True(t, sm.IsIdle(), "no carrier means the machine stays in Idle")

	sm.Process(boolPtr(false))
	assert.False(t, sm.IsIdle())
	assert.Equal(t, kindLeadIn, sm.kind)
}

func TestSampleMachine_LossOfSignalForcesReset(t *testing.T) {
	sm := NewSampleMachine(nil)
	sm.Process(boolPtr(false))
	sm.Process(boolPtr(true))
	assert.False(t, sm.IsIdle())

	sm.Process(nil)
	assert.True(t, sm.IsIdle())
}

func TestSampleMachine_LeadInSkipsFirstEdgesThenMovesToPreamble(t *testing.T) {
	sm := NewSampleMachine(nil)

	bit := false
	sm.Process(&bit)
	for i := 0; i < leadInSymbols-1; i++ {
		bit = !bit
		sm.Process(&bit)
		assert.Equal(t, kindLeadIn, sm.kind)
	}
	bit = !bit
	sm.Process(&bit)
	assert.Equal(t, kindPreamble, sm.kind)
}

func TestSampleMachine_PreambleEstimatesSamplesPerSymbol(t *testing.T) {
	sm := NewSampleMachine(nil)

	bit := false
	sm.Process(&bit)
	for i := 0; i < leadInSymbols; i++ {
		bit = !bit
		sm.Process(&bit)
	}
	require := assert.New(t)
	require.Equal(kindPreamble, sm.kind)

	// Toggle every samplesPerBit ticks, as the 0x55 preamble does (one bit,
	// one symbol); run well past syncSymbols edges so the samples-per-symbol
	// estimate is guaranteed to settle into BitLock regardless of the exact
	// edge at which the threshold is crossed mid-toggle.
	const samplesPerBit = 10
	for i := 0; i < syncSymbols+5; i++ {
		for j := 0; j < samplesPerBit; j++ {
			sm.Process(&bit)
		}
		bit = !bit
	}

	require.Equal(kindBitLock, sm.kind)
	require.InDelta(float64(samplesPerBit), sm.samplesPerSymbol, 2.0)
}

func TestSampleMachine_BitLockPreservesFractionalPhaseAcrossSymbols(t *testing.T) {
	var emitted []bool
	sm := NewSampleMachine(NewSymbolMachine(nil))
	sm.kind = kindBitLock
	sm.samplesPerSymbol = 9.5
	sm.numSamples = 0
	sm.last = false

	bit := false
	for i := 0; i < 10; i++ {
		sm.Process(&bit)
	}
	// 10 identical samples at samplesPerSymbol == 9.5 cross one period at
	// the 10th sample; the counter subtracts the period rather than zeroing
	// it, so the 0.5 remainder carries over to the next symbol.
	assert.InDelta(t, 0.5, sm.numSamples, 1e-9)
	_ = emitted
}

func TestSampleMachine_BitLockResyncsToThreeQuartersOnEveryEdge(t *testing.T) {
	sm := NewSampleMachine(nil)
	sm.kind = kindBitLock
	sm.samplesPerSymbol = 8
	sm.numSamples = 1
	sm.last = false

	bit := true
	sm.Process(&bit)
	assert.InDelta(t, 6.0, sm.numSamples, 1e-9) // 3/4 * 8
}
