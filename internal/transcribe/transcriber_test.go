package transcribe_test

import (
	"testing"

	"github.com/poretsky/ru-tts/internal/phoncode"
	"github.com/poretsky/ru-tts/internal/transcribe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func runProcessText(t *testing.T, text string) ([][]byte, *transcribe.State) {
	t.Helper()
	var flushes [][]byte
	state := &transcribe.State{}
	buffer := make([]byte, transcribe.BufferSize)
	s := transcribe.NewSink(buffer, func(chunk []byte) error {
		cp := append([]byte(nil), chunk...)
		flushes = append(flushes, cp)
		return nil
	})
	tr := transcribe.New(s, state)
	tr.ProcessText([]byte(text), 3)
	return flushes, state
}

func TestProcessTextSingleLetterAndTerminator(t *testing.T) {
	flushes, state := runProcessText(t, "T.")

	require.Len(t, flushes, 1)
	assert.Equal(t, []byte{43, 43, 27, 3, 53, 45}, flushes[0])
	assert.Equal(t, uint8(5), state.ClauseType, "'.' followed by nothing must select the dot/space clause type")
}

func TestProcessTextEmptyAndPunctuationOnlyProduceNoClause(t *testing.T) {
	flushes, _ := runProcessText(t, "")
	assert.Empty(t, flushes)

	flushes, _ = runProcessText(t, "...")
	assert.Empty(t, flushes, "text with no letter or digit content is skipped entirely")
}

func TestProcessTextTwoClauses(t *testing.T) {
	flushes, _ := runProcessText(t, "T. N.")
	require.Len(t, flushes, 2, "two terminated clauses must flush independently")
	for _, chunk := range flushes {
		assert.Equal(t, byte(43), chunk[0], "every clause chunk carries the idle prefix")
		assert.Equal(t, byte(43), chunk[1])
	}
}

// TestProcessTextOutputSatisfiesPhoncodeInvariants checks, over arbitrary
// KOI8-R-safe ASCII input, that every emitted byte is idle, a
// gap/stress/terminator in 42..54 or a phoncode below 42, that stress
// marks only ever follow a vocalic, and that no flush exceeds MaxLen.
func TestProcessTextOutputSatisfiesPhoncodeInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[A-Za-z0-9 .,;:?!+=\-]{0,80}`).Draw(rt, "text")
		flushes, _ := runProcessText(t, text)

		for _, chunk := range flushes {
			assert.LessOrEqualf(rt, len(chunk), transcribe.MaxLen, "flush %q exceeds the transcription length limit", chunk)
			for i, b := range chunk {
				code := phoncode.Code(b)
				valid := b == 43 || (b >= 42 && b <= 54) || code.IsVocalic() || code.IsConsonant()
				assert.Truef(rt, valid, "byte %d at index %d is outside the documented phoncode alphabet", b, i)
				if code.IsStress() {
					assert.Greaterf(rt, i, 0, "a stress mark cannot be the first byte of a clause")
					if i > 0 {
						assert.Truef(rt, phoncode.Code(chunk[i-1]).IsVocalic(),
							"stress mark at index %d must follow a vocalic phoncode, got %d", i, chunk[i-1])
					}
				}
			}
		}
	})
}
