package soundscript_test

import (
	"testing"

	"github.com/poretsky/ru-tts/internal/soundscript"
	"github.com/stretchr/testify/assert"
)

func TestPutAppendsUnits(t *testing.T) {
	s := &soundscript.Script{}
	s.Put(10, 1)
	s.Put(20, 2)

	assert.Equal(t, []soundscript.Unit{
		{ID: 10, Stage: 1},
		{ID: 20, Stage: 2},
	}, s.Units)
}

func TestPutDropsUnitsPastMaxSounds(t *testing.T) {
	s := &soundscript.Script{}
	for i := 0; i < soundscript.MaxSounds+50; i++ {
		s.Put(uint8(i%256), 0)
	}

	assert.Len(t, s.Units, soundscript.MaxSounds, "Put must silently cap at MaxSounds rather than grow the script unbounded")
}
