package intonation_test

import (
	"testing"

	"github.com/poretsky/ru-tts/internal/intonation"
	"github.com/poretsky/ru-tts/internal/soundscript"
	"github.com/poretsky/ru-tts/internal/transcribe"
	"github.com/poretsky/ru-tts/internal/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVoice(t *testing.T, pitchFactor uint) *voice.Voice {
	t.Helper()
	var offsets, lengths [voice.Dimension]uint16
	v, err := voice.New(pitchFactor, offsets, lengths, nil)
	require.NoError(t, err)
	return v
}

func TestSetupCentersAroundVoicePitch(t *testing.T) {
	v := testVoice(t, 100)
	mod := intonation.Setup(v, 100, 0)
	assert.Equal(t, mod.MinTone, mod.MaxTone, "zero intonation span must collapse the range to a point")
}

func TestSetupWidensWithIntonationSpan(t *testing.T) {
	v := testVoice(t, 100)
	narrow := intonation.Setup(v, 100, 20)
	wide := intonation.Setup(v, 100, 80)
	assert.Less(t, narrow.MinTone, wide.MaxTone-wide.MinTone+narrow.MinTone, "sanity: wide span computed")
	assert.Greater(t, wide.MaxTone-wide.MinTone, narrow.MaxTone-narrow.MinTone)
}

func TestApplyWithNoSpeechMarksTagsEveryUnitStageZero(t *testing.T) {
	v := testVoice(t, 100)
	script := &soundscript.Script{}
	script.Put(1, 0)
	script.Put(2, 0)
	script.Put(3, 0)

	transcription := make([]byte, transcribe.BufferSize)
	for i := range transcription {
		transcription[i] = 43
	}

	mod := intonation.Setup(v, 100, 90)
	intonation.Apply(v, transcription, script, mod, 0)

	for _, u := range script.Units {
		assert.Equal(t, uint8(0), u.Stage)
	}
	for _, icb := range script.ICBs {
		assert.Equal(t, voice.Threshold, int(icb.Stretch))
		assert.Equal(t, int8(0), icb.Delta)
	}
}
