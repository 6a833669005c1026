// Package engine orchestrates one clause's transcription buffer through
// utterance building, timing, intonation and sound production, re-entering
// in chunks at proclitic/enclitic/bigram boundaries so long clauses don't
// have to be fully planned before the first sound comes out.
package engine

import (
	"bytes"

	"github.com/poretsky/ru-tts/internal/intonation"
	"github.com/poretsky/ru-tts/internal/sink"
	"github.com/poretsky/ru-tts/internal/sound"
	"github.com/poretsky/ru-tts/internal/soundscript"
	"github.com/poretsky/ru-tts/internal/timing"
	"github.com/poretsky/ru-tts/internal/transcribe"
	"github.com/poretsky/ru-tts/internal/utterance"
	"github.com/poretsky/ru-tts/internal/voice"
)

// seqlist1..5 are flat-encoded phoncode sequence lists: a run of
// [length, pattern...] entries terminated by a zero length. They drive
// the boundary detector's pattern matching; the patterns are empirically
// derived proclitic, enclitic and consonant-cluster bigram shapes with no
// shorter description.
var (
	seqlist1 = []uint8{
		1, 2,
		5, 6, 8, 1, 24, 3,
		4, 21, 2, 25, 3,
		2, 21, 2,
		5, 10, 3, 21, 6, 2,
		5, 10, 3, 35, 17, 5,
		3, 5, 17, 5,
		4, 5, 27, 2, 28,
		5, 5, 16, 2, 33, 3,
		1, 5,
		3, 28, 2, 28,
		4, 17, 5, 20, 1,
		2, 16, 1,
		3, 8, 2, 35,
		5, 27, 2, 28, 25, 3,
		3, 27, 2, 28,
		3, 30, 3, 15,
		4, 27, 1, 25, 3,
		3, 40, 1, 30,
		3, 33, 3, 15,
		5, 33, 27, 1, 20, 4,
		4, 33, 27, 1, 26,
		3, 33, 27, 1,
		4, 5, 27, 2, 22,
		3, 28, 2, 22,
		3, 8, 2, 7,
		3, 27, 2, 22,
		3, 40, 1, 24,
		4, 33, 27, 1, 20,
		2, 27, 1,
		0,
	}
	seqlist2 = []uint8{
		3, 23, 3, 35,
		3, 23, 3, 7,
		4, 6, 21, 1, 17,
		4, 20, 17, 5, 35,
		4, 20, 17, 5, 7,
		5, 6, 8, 1, 24, 3,
		5, 6, 1, 7, 17, 3,
		5, 6, 11, 5, 21, 0,
		3, 6, 19, 3,
		2, 6, 1,
		1, 6,
		1, 34,
		3, 21, 17, 2,
		2, 21, 1,
		2, 5, 35,
		2, 5, 7,
		2, 28, 1,
		1, 28,
		1, 22,
		5, 18, 3, 9, 21, 0,
		3, 16, 2, 21,
		3, 16, 2, 27,
		2, 16, 2,
		2, 19, 3,
		2, 1, 27,
		2, 1, 21,
		2, 1, 20,
		2, 1, 26,
		1, 1,
		5, 29, 3, 13, 3, 21,
		5, 29, 3, 13, 3, 27,
		5, 26, 1, 35, 17, 3,
		3, 26, 1, 21,
		3, 26, 1, 27,
		3, 26, 13, 5,
		3, 26, 8, 1,
		2, 26, 1,
		4, 8, 2, 24, 5,
		5, 35, 28, 6, 1, 38,
		5, 35, 28, 6, 1, 12,
		6, 35, 11, 3, 8, 40, 2,
		2, 35, 1,
		1, 35,
		5, 7, 7, 2, 24, 5,
		1, 0,
		5, 33, 3, 13, 3, 35,
		5, 33, 3, 13, 3, 7,
		2, 7, 2,
		1, 7,
		0,
	}
	seqlist3 = []uint8{
		2, 20, 4,
		1, 20,
		2, 9, 3,
		1, 9,
		5, 19, 5, 20, 0, 24,
		1, 26,
		2, 27, 1,
		0,
	}
	seqlist4 = []uint8{
		3, 2, 6, 2,
		3, 3, 6, 2,
		3, 2, 15, 0,
		3, 3, 15, 0,
		3, 5, 18, 5,
		3, 2, 10, 3,
		3, 2, 10, 2,
		3, 5, 10, 3,
		3, 0, 10, 0,
		4, 1, 53, 6, 2,
		4, 3, 6, 1, 53,
		0,
	}
	seqlist5 = []uint8{
		2, 5, 10,
		3, 1, 53, 10,
		2, 3, 10,
		2, 5, 40,
		2, 5, 15,
		3, 1, 53, 15,
		2, 3, 15,
		0,
	}
)

// testList reports whether the phoncode run starting at idx matches one
// of list's patterns and is immediately followed by a clause-boundary
// marker (a phoncode strictly between 42 and 53). A pattern that would
// run past the buffer, or whose follower byte would, never matches.
func testList(transcription []byte, idx int, list []uint8) bool {
	p := 0
	for list[p] != 0 {
		n := int(list[p])
		if idx >= 0 && idx+n < len(transcription) && bytes.Equal(transcription[idx:idx+n], list[p+1:p+1+n]) {
			break
		}
		p += n + 1
	}
	if list[p] == 0 {
		return false
	}
	b := transcription[idx+int(list[p])]
	return b > 42 && b < 53
}

// shift removes the byte at off by shifting everything after it left by
// one, stopping once a clause-terminator phoncode has been shifted into
// place. The terminator's old slot keeps a copy of it, and the byte after
// that slot is set to the idle fill value.
func shift(transcription []byte, off int) {
	i := 0
	for {
		transcription[off+i] = transcription[off+i+1]
		i++
		if transcription[off+i] >= 44 && transcription[off+i] <= 52 {
			break
		}
	}
	transcription[off+i+1] = 43
}

// advance compacts the buffer so that the bytes from point onward move to
// Start, refilling the freed tail with the idle value, and returns the
// index content now begins at (always Start).
func advance(transcription []byte, point int) int {
	if point > transcribe.Start {
		length := 0
		if point < transcribe.BufferSize {
			length = transcribe.BufferSize - point
		}
		if length > 0 {
			copy(transcription[transcribe.Start:], transcription[point:point+length])
		}
		for i := transcribe.Start + length; i < transcribe.BufferSize; i++ {
			transcription[i] = 43
		}
	}
	return transcribe.Start
}

// Engine carries the state that persists across chunks of a single
// synthesis call: the selected voice, derived timing, pitch modulation
// and the sink PCM chunks are flushed to. Flags is a plain carry-through
// of the caller's configuration bits for the duration of the call, read
// only by the number speller's decimal-separator check.
type Engine struct {
	Voice        *voice.Voice
	Timing       timing.Timing
	Modulation   intonation.Modulation
	WaveConsumer *sink.Sink
	Flags        uint
}

// synthChunk plans and renders one clause's sound script.
func (e *Engine) synthChunk(transcription []byte, clauseType intonation.ClauseType) {
	script := &soundscript.Script{}
	utterance.Build(transcription, script)
	draft, ok := timing.Plan(transcription, timing.Rows)
	if ok {
		timing.ApplySpeechRate(script, e.Timing, draft)
	}
	intonation.Apply(e.Voice, transcription, script, e.Modulation, clauseType)
	sound.Make(e.Voice, script, e.WaveConsumer)
}

// Synth drives clause synthesis chunk by chunk over transcription,
// re-entering at proclitic/enclitic/bigram boundaries the sequence lists
// detect so a long clause doesn't have to be planned whole before any
// sound comes out.
func (e *Engine) Synth(transcription []byte, clauseType intonation.ClauseType) {
	sptr := transcribe.Start
	count := 0
	flags := uint8(4)

	for tptr := transcribe.Start; tptr < transcribe.BufferSize; tptr++ {
		if flags&4 != 0 {
			flags &^= 4
			switch {
			case testList(transcription, tptr, seqlist1):
				if flags&1 != 0 {
					transcription[sptr] = 50
					e.synthChunk(transcription, 0)
					tptr = advance(transcription, tptr)
					count = 0
					flags &^= 1
					sptr = tptr
				}
				flags |= 2
				continue

			case testList(transcription, tptr, seqlist2):
				flags |= 2
				continue

			case testList(transcription, tptr, seqlist3) && tptr > transcribe.Start && transcription[tptr-1] == 43:
				tptr--
				sptr = tptr
				shift(transcription, sptr)
				flags &^= 2
				continue
			}
		}

		switch {
		case transcription[tptr] != 43:
			if transcription[tptr] > 43 && transcription[tptr] < 53 {
				e.synthChunk(transcription, clauseType)
				return
			}

		case flags&2 != 0:
			shift(transcription, tptr)
			tptr--
			flags = 4

		default:
			count++
			if count != 3 || testList(transcription, tptr+1, seqlist1) {
				sptr = tptr
				flags |= 5
				continue
			}

			perspective := 20
			if !testList(transcription, tptr-3, seqlist4) && !testList(transcription, tptr-2, seqlist5) {
				sptr = tptr
			}
			next := -1
			limit := tptr + 1 + perspective
			if limit > transcribe.BufferSize {
				limit = transcribe.BufferSize
			}
			for idx := tptr + 1; idx < limit; idx++ {
				if transcription[idx] == 43 {
					next = idx
					break
				}
			}
			if next >= 0 {
				next++
				perspective = next - tptr
			} else {
				next = tptr + perspective + 1
			}
			k := 1
			for ; k <= perspective; k++ {
				if transcription[tptr+k] > 43 && transcription[tptr+k] < 53 {
					break
				}
			}
			if k > perspective && !testList(transcription, next, seqlist1) {
				transcription[sptr] = 50
				e.synthChunk(transcription, 0)
				tptr = advance(transcription, sptr+1) - 1
				count = 0
				flags &^= 2
			}
			flags |= 5
			sptr = tptr
		}
	}
}
