package sink_test

import (
	"errors"
	"testing"

	"github.com/poretsky/ru-tts/internal/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlushInvokesConsumerAndResets(t *testing.T) {
	var got [][]byte
	s := sink.New(make([]byte, 8), func(chunk []byte) error {
		cp := append([]byte(nil), chunk...)
		got = append(got, cp)
		return nil
	})

	s.Put('a')
	s.Put('b')
	s.Flush()

	require.Len(t, got, 1)
	assert.Equal(t, []byte{'a', 'b'}, got[0])
	assert.Equal(t, 0, s.Offset)
}

func TestPutAutoFlushesAtThreshold(t *testing.T) {
	var flushes int
	s := sink.New(make([]byte, 4), func(chunk []byte) error {
		flushes++
		return nil
	})
	for i := 0; i < 4; i++ {
		s.Put(byte(i))
	}
	assert.Equal(t, 1, flushes)
	assert.Equal(t, 0, s.Offset)
}

func TestFlushThresholdBelowBufferLength(t *testing.T) {
	s := sink.New(make([]byte, 10), func(chunk []byte) error { return nil })
	s.FlushThreshold = 4
	s.Write([]byte{1, 2, 3, 4, 5})
	assert.Equal(t, 0, s.Offset)
}

func TestConsumerErrorLatchesStatus(t *testing.T) {
	first := errors.New("boom")
	second := errors.New("second boom")
	var i int
	errs := []error{first, second}
	s := sink.New(make([]byte, 4), func(chunk []byte) error {
		err := errs[i]
		i++
		return err
	})

	// Once latched, the first error sticks: later flushes never reach the
	// consumer again, so the second prepared error must stay undelivered.
	s.Put('x')
	s.Flush()
	require.ErrorIs(t, s.Status, first)

	s.Put('y')
	s.Flush()
	assert.ErrorIs(t, s.Status, first, "Status must not be overwritten by a later error")
	assert.Equal(t, 1, i, "a latched sink must not invoke its consumer again")
}

func TestBackAndReplace(t *testing.T) {
	s := sink.New(make([]byte, 8), func(chunk []byte) error { return nil })
	s.Put('a')
	s.Put('b')
	s.Back()
	assert.Equal(t, 1, s.Offset)
	s.Replace('c')
	assert.Equal(t, byte('c'), s.Buffer[0])
}

func TestLastOnEmptyBuffer(t *testing.T) {
	s := sink.New(make([]byte, 8), func(chunk []byte) error { return nil })
	assert.Equal(t, -1, s.Last())
	s.Put('z')
	assert.Equal(t, int('z'), s.Last())
}

func TestCustomReset(t *testing.T) {
	s := sink.New(make([]byte, 4), func(chunk []byte) error { return nil })
	s.CustomReset = func(s *sink.Sink) {
		for i := range s.Buffer {
			s.Buffer[i] = 43
		}
		s.Offset = 2
	}
	s.Put('a')
	s.Flush()
	assert.Equal(t, 2, s.Offset)
	assert.Equal(t, byte(43), s.Buffer[0])
}
