package phoncode_test

import (
	"testing"

	"github.com/poretsky/ru-tts/internal/phoncode"
	"github.com/stretchr/testify/assert"
)

func TestRangePredicates(t *testing.T) {
	cases := []struct {
		code       phoncode.Code
		vocalic    bool
		consonant  bool
		gap        bool
		terminator bool
	}{
		{0, true, false, false, false},
		{phoncode.VocalicMax, true, false, false, false},
		{phoncode.ConsonantMin, false, true, false, false},
		{phoncode.ConsonantMax, false, true, false, false},
		{phoncode.SoftGap, false, false, true, false},
		{phoncode.Idle, false, false, true, false},
		{phoncode.ClauseTerminatorMin, false, false, false, true},
		{phoncode.ClauseTerminatorMax, false, false, false, true},
		{phoncode.StrongStress, false, false, false, false},
		{phoncode.WeakStress, false, false, false, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.vocalic, c.code.IsVocalic(), "code %d IsVocalic", c.code)
		assert.Equal(t, c.consonant, c.code.IsConsonant(), "code %d IsConsonant", c.code)
		assert.Equal(t, c.gap, c.code.IsGap(), "code %d IsGap", c.code)
		assert.Equal(t, c.terminator, c.code.IsClauseTerminator(), "code %d IsClauseTerminator", c.code)
	}
}

func TestRangesDoNotOverlap(t *testing.T) {
	for c := 0; c <= 255; c++ {
		code := phoncode.Code(c)
		kinds := 0
		if code.IsVocalic() {
			kinds++
		}
		if code.IsConsonant() {
			kinds++
		}
		if code.IsGap() {
			kinds++
		}
		if code.IsClauseTerminator() {
			kinds++
		}
		assert.LessOrEqualf(t, kinds, 1, "code %d belongs to more than one phonetic class", c)
	}
}
