package voice_test

import (
	"testing"

	"github.com/poretsky/ru-tts/internal/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsOutOfBoundsPattern(t *testing.T) {
	var offsets, lengths [voice.Dimension]uint16
	offsets[5] = 0
	lengths[5] = 10
	samples := make([]int8, 5)

	_, err := voice.New(100, offsets, lengths, samples)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sound 5")
}

func TestNewAcceptsExactFit(t *testing.T) {
	var offsets, lengths [voice.Dimension]uint16
	offsets[3] = 2
	lengths[3] = 3
	samples := make([]int8, 5)

	v, err := voice.New(100, offsets, lengths, samples)
	require.NoError(t, err)
	assert.Equal(t, uint(100), v.PitchFactor)
}

func TestPatternSlice(t *testing.T) {
	var offsets, lengths [voice.Dimension]uint16
	offsets[1] = 1
	lengths[1] = 3
	samples := []int8{9, 1, 2, 3, 9}

	v, err := voice.New(50, offsets, lengths, samples)
	require.NoError(t, err)
	assert.Equal(t, []int8{1, 2, 3}, v.Pattern(1))
}

func TestZeroLengthEntriesAreIgnored(t *testing.T) {
	var offsets, lengths [voice.Dimension]uint16
	offsets[7] = 9999
	samples := make([]int8, 0)

	_, err := voice.New(100, offsets, lengths, samples)
	require.NoError(t, err)
}
