package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscriminator_ConstantFrequency(t *testing.T) {
	var d Discriminator

	const freqOffset = 0.05 // radians/sample
	phase := 0.0
	var last float64
	for i := 0; i < 100; i++ {
		s := complex(math.Cos(phase), math.Sin(phase))
		out := d.Step(s)
		if i > 0 {
			assert.InDelta(t, freqOffset, out, 1e-9)
		}
		last = out
		phase += freqOffset
	}
	_ = last
}

func TestDiscriminator_FirstSampleUsesZeroMemory(t *testing.T) {
	var d Discriminator
	out := d.Step(complex(1, 0))
	assert.Equal(t, 0.0, out)
}
