package timing_test

import (
	"testing"

	"github.com/poretsky/ru-tts/internal/timing"
	"github.com/stretchr/testify/assert"
)

func TestSetupClampsExtremeRates(t *testing.T) {
	slow := timing.Setup(10, 100)
	fast := timing.Setup(1000, 100)
	assert.Greater(t, slow.RateFactor, fast.RateFactor, "a slower requested rate must stretch durations more")
}

func TestSetupRateFactorIsStretchMinusEighty(t *testing.T) {
	cases := []struct {
		rate string
		in   int
		want uint16
	}{
		{"slowest clamp", 40, 420},
		{"below clamp", 10, 420},
		{"slow", 50, 320},
		{"default", 100, 120},
		{"fast", 200, 20},
		{"fastest clamp", 250, 0},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, timing.Setup(c.in, 100).RateFactor, "rate %d (%s)", c.in, c.rate)
	}
}

func TestSetupDefaultGaplenIsNonZero(t *testing.T) {
	tm := timing.Setup(120, 100)
	for i := 0; i < timing.ClauseSeparators; i++ {
		assert.NotZero(t, tm.Gaplen[i])
	}
}

func TestAdjustGapScalesAndClamps(t *testing.T) {
	tm := timing.Setup(120, 100)
	base := tm.Gaplen[1] // '.'

	tm.AdjustGap('.', 50)
	assert.Equal(t, uint8(int(base)*50/100), tm.Gaplen[1])

	tm.AdjustGap('.', 1000)
	assert.Equal(t, uint8(150), tm.Gaplen[1], "gap length must clamp at 150")

	tm.AdjustGap('.', -50)
	assert.Equal(t, uint8(0), tm.Gaplen[1], "gap length must clamp at 0")
}

func TestAdjustGapIgnoresUnknownSeparator(t *testing.T) {
	tm := timing.Setup(120, 100)
	before := tm.Gaplen
	tm.AdjustGap('x', 50)
	assert.Equal(t, before, tm.Gaplen)
}
