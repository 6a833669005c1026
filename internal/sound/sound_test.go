package sound_test

import (
	"testing"

	"github.com/poretsky/ru-tts/internal/sink"
	"github.com/poretsky/ru-tts/internal/sound"
	"github.com/poretsky/ru-tts/internal/soundscript"
	"github.com/poretsky/ru-tts/internal/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyVoice(t *testing.T) *voice.Voice {
	t.Helper()
	var offsets, lengths [voice.Dimension]uint16
	v, err := voice.New(100, offsets, lengths, nil)
	require.NoError(t, err)
	return v
}

func TestMakeSilentSyntheticSound(t *testing.T) {
	v := emptyVoice(t)
	script := &soundscript.Script{}
	script.Put(169, 0)
	script.Units[0].Duration = 5

	var got []byte
	s := sink.New(make([]byte, 64), func(chunk []byte) error {
		got = append(got, chunk...)
		return nil
	})

	sound.Make(v, script, s)

	want := make([]byte, 6) // leading sample plus 5 silence samples
	assert.Equal(t, want, got)
}

func TestMakeRawCopyForLongPattern(t *testing.T) {
	var offsets, lengths [voice.Dimension]uint16
	const id = 50
	offsets[id] = 0
	lengths[id] = 200 // above voice.Threshold: copied verbatim, not stretched
	samples := make([]int8, 200)
	samples[0], samples[1], samples[2] = 10, 20, 30

	v, err := voice.New(100, offsets, lengths, samples)
	require.NoError(t, err)

	script := &soundscript.Script{}
	script.Put(id, 0)
	script.Units[0].Duration = 3

	var got []byte
	s := sink.New(make([]byte, 64), func(chunk []byte) error {
		got = append(got, chunk...)
		return nil
	})

	sound.Make(v, script, s)

	assert.Equal(t, []byte{0, 10, 20, 30}, got)
}
