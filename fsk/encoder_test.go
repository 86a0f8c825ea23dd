package fsk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEncoder_RejectsIncoherentRates(t *testing.T) {
	_, err := NewEncoder(Config{SampleRate: 2000003, BaudRate: 40000})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewEncoder_AcceptsCanonicalRates(t *testing.T) {
	enc, err := NewEncoder(Config{SampleRate: 2000000, BaudRate: 40000, Amplitude: 100})
	require.NoError(t, err)
	require.NotNil(t, enc)
}

func TestEncode_ProducesInterleavedIQForPayload(t *testing.T) {
	enc, err := NewEncoder(Config{SampleRate: 2000000, BaudRate: 40000, Amplitude: 100, Encoding: Signed8})
	require.NoError(t, err)

	payload := []byte{0xD2, 0xD6, 0x33, 0x22, 0xAA, 0x55, 0x0D, 0xFF, 0x00, 0xFF, 0x00, 0x9F}
	out, err := enc.Encode(payload, 0.001)
	require.NoError(t, err)

	// Interleaved I/Q bytes: always an even count.
	assert.Equal(t, 0, len(out)%2)

	// 1ms silence seed + 20 preamble bytes + 1 SOF byte + len(payload) bytes,
	// each byte spanning Ts samples, each sample 2 bytes, plus 1ms trailing
	// silence.
	ts := 2000000 / 40000
	seedSamples := 2000000 / 1000
	trailingSamples := int(0.001 * 2000000)
	bitSamples := (20 + 1 + len(payload)) * 8 * ts
	wantSamples := seedSamples + bitSamples + trailingSamples
	assert.Equal(t, wantSamples*2, len(out))
}

func TestEncode_OverflowsWithExcessiveAmplitude(t *testing.T) {
	enc, err := NewEncoder(Config{SampleRate: 2000000, BaudRate: 40000, Amplitude: 1e9, Encoding: Signed8})
	require.NoError(t, err)

	_, err = enc.Encode([]byte{0x01}, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOverflow)
}
