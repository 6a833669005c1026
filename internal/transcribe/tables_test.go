package transcribe_test

import (
	"testing"

	"github.com/poretsky/ru-tts/internal/transcribe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSinkResetRefillsWithIdle(t *testing.T) {
	buffer := make([]byte, transcribe.BufferSize)
	s := transcribe.NewSink(buffer, func(chunk []byte) error { return nil })

	buffer[0] = 0
	buffer[1] = 0
	s.Reset()

	for i, b := range s.Buffer {
		require.Equalf(t, byte(43), b, "buffer[%d] not refilled with idle phoncode", i)
	}
	assert.Equal(t, transcribe.Start, s.Offset)
}

func TestBufferConstants(t *testing.T) {
	assert.Equal(t, 2, transcribe.Start)
	assert.Equal(t, 400, transcribe.BufferSize)
	assert.Equal(t, 40, transcribe.GuardSpace)
	assert.Equal(t, 360, transcribe.MaxLen)
	assert.Less(t, transcribe.MaxLen, transcribe.BufferSize)
	assert.Equal(t, transcribe.MaxLen+transcribe.GuardSpace, transcribe.BufferSize)
}
