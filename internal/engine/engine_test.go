package engine_test

import (
	"errors"
	"testing"

	"github.com/poretsky/ru-tts/internal/engine"
	"github.com/poretsky/ru-tts/internal/intonation"
	"github.com/poretsky/ru-tts/internal/sink"
	"github.com/poretsky/ru-tts/internal/timing"
	"github.com/poretsky/ru-tts/internal/transcribe"
	"github.com/poretsky/ru-tts/internal/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// longUniformVoice gives every sound id a pattern well above voice.Threshold
// so the sound producer always takes the verbatim-copy path, keeping these
// tests focused on the chunked re-entry driver rather than on stretching or
// cross-mixing.
func longUniformVoice(t *testing.T) *voice.Voice {
	t.Helper()
	const patternLen = 200
	var offsets, lengths [voice.Dimension]uint16
	for id := range offsets {
		offsets[id] = uint16(id * patternLen)
		lengths[id] = patternLen
	}
	samples := make([]int8, voice.Dimension*patternLen)
	v, err := voice.New(100, offsets, lengths, samples)
	require.NoError(t, err)
	return v
}

func newEngine(t *testing.T, consume sink.Consumer) (*engine.Engine, *sink.Sink) {
	t.Helper()
	v := longUniformVoice(t)
	tm := timing.Setup(100, 100)
	mod := intonation.Setup(v, 100, 90)
	s := sink.New(make([]byte, 4096), consume)
	return &engine.Engine{
		Voice:        v,
		Timing:       tm,
		Modulation:   mod,
		WaveConsumer: s,
		Flags:        0,
	}, s
}

func idleBuffer() []byte {
	b := make([]byte, transcribe.BufferSize)
	for i := range b {
		b[i] = 43
	}
	return b
}

func TestSynthStopsAtTheFirstRealTerminator(t *testing.T) {
	var flushed int
	e, s := newEngine(t, func(chunk []byte) error {
		flushed += len(chunk)
		return nil
	})

	transcription := idleBuffer()
	transcription[transcribe.Start] = 3    // vocalic nucleus
	transcription[transcribe.Start+1] = 44 // real clause terminator

	e.Synth(transcription, 0)
	s.Flush()

	assert.Greater(t, flushed, 0, "a terminated clause must render at least one sample")
}

func TestRunSynthesizesSimpleText(t *testing.T) {
	var chunks int
	e, _ := newEngine(t, func(chunk []byte) error {
		chunks++
		return nil
	})

	err := e.Run([]byte("DA."))
	require.NoError(t, err)
	assert.Greater(t, chunks, 0)
}

func TestRunSynthesizesUnterminatedClauseWithSyntheticComma(t *testing.T) {
	var chunks int
	e, _ := newEngine(t, func(chunk []byte) error {
		chunks++
		return nil
	})

	// "DA" carries no terminating punctuation; the engine must still flush
	// it, inserting a synthetic comma the way synthCallback does when
	// transcribe.State.Done was never set.
	err := e.Run([]byte("DA"))
	require.NoError(t, err)
	assert.Greater(t, chunks, 0)
}

func TestRunStopsAfterConsumerCancels(t *testing.T) {
	boom := errors.New("stop")
	var calls int
	e, _ := newEngine(t, func(chunk []byte) error {
		calls++
		return boom
	})

	err := e.Run([]byte("DA NET DA NET."))
	require.ErrorIs(t, err, boom)
	assert.LessOrEqualf(t, calls, 2, "cancellation must stop synthesis within one further callback invocation")
}
