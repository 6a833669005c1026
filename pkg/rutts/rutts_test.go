package rutts_test

import (
	"errors"
	"testing"

	"github.com/poretsky/ru-tts/pkg/rutts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// longUniformVoice returns a Voice where every sound id is recorded as a
// pattern longer than VoiceThreshold, so the sound producer always takes
// the verbatim-copy path rather than stretching or cross-mixing. That
// keeps these end-to-end tests focused on the transcriber/engine wiring
// (clause splitting, chunked re-entry, the synthetic-terminator path)
// without also depending on exact per-id ICB behavior.
func longUniformVoice(t *testing.T) *rutts.Voice {
	t.Helper()
	const patternLen = 200
	var offsets, lengths [rutts.VoiceDimension]uint16
	for id := range offsets {
		offsets[id] = uint16(id * patternLen)
		lengths[id] = patternLen
	}
	samples := make([]int8, rutts.VoiceDimension*patternLen)
	v, err := rutts.NewVoice(100, offsets, lengths, samples)
	require.NoError(t, err)
	return v
}

func TestTransferRejectsNilVoice(t *testing.T) {
	err := rutts.Transfer([]byte("DA."), nil, rutts.DefaultConfig(), func([]byte) error { return nil })
	require.Error(t, err)
}

func TestTransferEmitsAudioForSimpleClause(t *testing.T) {
	v := longUniformVoice(t)
	var chunks int
	var total int

	err := rutts.Transfer([]byte("DA."), v, rutts.DefaultConfig(), func(samples []byte) error {
		chunks++
		total += len(samples)
		return nil
	})

	require.NoError(t, err)
	assert.Greater(t, chunks, 0, "a terminated clause must produce at least one callback invocation")
	assert.Greater(t, total, 0)
}

func TestTransferHandlesUnterminatedClause(t *testing.T) {
	v := longUniformVoice(t)
	var total int

	// "DA" has no terminating punctuation: an unterminated clause still
	// synthesizes, with a synthetic comma terminator.
	err := rutts.Transfer([]byte("DA"), v, rutts.DefaultConfig(), func(samples []byte) error {
		total += len(samples)
		return nil
	})

	require.NoError(t, err)
	assert.Greater(t, total, 0)
}

func TestTransferMultipleClauses(t *testing.T) {
	v := longUniformVoice(t)
	var calls int

	err := rutts.Transfer([]byte("DA. NET!"), v, rutts.DefaultConfig(), func(samples []byte) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Greater(t, calls, 0)
}

func TestTransferCancellationStopsPromptly(t *testing.T) {
	v := longUniformVoice(t)
	boom := errors.New("caller stopped")
	var calls int

	err := rutts.Transfer([]byte("DA NET DA NET."), v, rutts.DefaultConfig(), func(samples []byte) error {
		calls++
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.LessOrEqualf(t, calls, 2, "callback must fire at most once more after cancellation")
}
