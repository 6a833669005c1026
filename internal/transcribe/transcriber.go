package transcribe

import (
	"strings"

	"github.com/poretsky/ru-tts/internal/sink"
)

// Internal transcription flag bits, distinct from State.Done and from
// the decimal-fraction flags in numerics.go.
const (
	clauseStart = 0x10
	weakStress  = 0x20
)

// State carries the per-clause result a flush hands to its consumer.
type State struct {
	// ClauseType is the pitch-plan row the terminating punctuation pair
	// selected, masked to 0..15.
	ClauseType uint8

	// Done reports whether the flush in progress was triggered by a real
	// clause-terminating punctuation (checkClauseTermination already put
	// the matching terminator phoncode in place). When false, the flush
	// was forced early -- the guard-space limit, a mid-clause number
	// spelled out with no terminator following, or the input simply
	// running out -- and the consumer must synthesize one itself.
	Done bool
}

// NewSink builds the transcription sink: a 400-byte buffer whose reset
// refills with idle phoncodes and restores the two-byte prefix, and whose
// flush threshold sits below the buffer's true size so a single
// over-length block write still lands inside the guard space.
func NewSink(buffer []byte, consumer sink.Consumer) *sink.Sink {
	s := sink.New(buffer, consumer)
	s.FlushThreshold = MaxLen
	s.CustomReset = func(s *sink.Sink) {
		for i := range s.Buffer {
			s.Buffer[i] = 43
		}
		s.Offset = Start
	}
	return s
}

// Transcriber turns raw KOI8-R text into one phoncode buffer per clause,
// flushing each to its sink's consumer as soon as a clause terminates.
type Transcriber struct {
	Sink  *sink.Sink
	State *State
}

// New returns a Transcriber writing to s and sharing state with s's
// consumer callback.
func New(s *sink.Sink, state *State) *Transcriber {
	return &Transcriber{Sink: s, State: state}
}

func isBlank(c byte) bool { return strings.IndexByte(blanks, c) >= 0 }
func isSymbol(c byte) bool { return strings.IndexByte(symbols, c) >= 0 }

// preprocess normalizes raw text into the transcriber's internal
// alphabet: case-folding, koi8-r remapping, and a clause-start-sensitive
// filter that drops most punctuation outside clause boundaries. The
// literal '#' escape survives this stage so the main loop can turn it
// into a word-internal soft gap.
func preprocess(text []byte) []byte {
	out := make([]byte, 0, len(text))
	var flags uint8

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '\n', '\r':
			c = '\r'
		case 'j', 'J':
			c = '_'
		case 'q', 'Q', 'x', 'X':
			c = 'K'
		case 'w', 'W':
			c = 'U'
		case 'y', 'Y':
			c = 'I'
		case 163, 179:
			c = '\\'
		case '#':
			// kept as-is: the literal word-break escape
		default:
			switch {
			case isBlank(c):
				c = ' '
			case c > 191:
				c = letters[(int(c)-192)&31]
			case c >= 'a' && c <= 'z':
				c -= 0x20
			case (c < 'A' && !isSymbol(c) && !isDigit(c)) || c > 'Z':
				c = 0
			}
		}

		if c == 0 {
			continue
		}

		if sidx := strings.IndexByte(symbols, c); sidx >= 0 {
			var nextc byte
			if i+1 < len(text) {
				nextc = text[i+1]
			}
			if sidx > 6 || (flags&clauseStart != 0 && (c != ' ' || nextc == '\r' || isDigit(nextc) || nextc >= 'A')) {
				out = append(out, c)
			}
		} else {
			out = append(out, c)
			flags |= clauseStart
		}
	}
	return out
}

// detectSuffix matches suffix against buf starting at *pos, treating a
// '+' in suffix matched against '=' in buf as a weak-stress variant. On a
// full match not immediately followed by another letter, it advances *pos
// to the last matched byte and returns true.
func detectSuffix(buf []byte, pos *int, end int, flags *uint8, suffix string) bool {
	*flags &^= weakStress
	n := len(suffix)
	i := 0
	for ; i < n; i++ {
		b := at(buf, *pos+i)
		if b != suffix[i] {
			if suffix[i] == '+' && b == '=' {
				*flags |= weakStress
			} else {
				break
			}
		}
	}
	if i == n {
		next := *pos + n
		if next >= end || strings.IndexByte(letters, at(buf, next)) < 0 {
			*pos += n - 1
			return true
		}
	}
	return false
}

// checkClauseTermination recognizes a clause-terminating punctuation at
// *pos, records the clause type it pairs with the following character
// into state, emits the matching terminator phoncode and flushes.
func checkClauseTermination(buf []byte, pos *int, end int, state *State, consumer *sink.Sink) bool {
	sidx := strings.IndexByte(terminatingPunctuation, at(buf, *pos))
	if sidx < 0 {
		return false
	}
	*pos++
	nextc := byte(' ')
	if *pos < end {
		nextc = at(buf, *pos)
	}
	if strings.IndexByte(punctuations, nextc) < 0 {
		nextc = ' '
	}
	key := pair(at(buf, *pos-1), nextc)
	i := 0
	for ; i < len(clauseTerminations) && clauseTerminations[i] != key; i++ {
	}
	state.ClauseType = uint8(i) & 0x0F
	state.Done = true
	consumer.Put(uint8(sidx) + 44)
	consumer.Flush()
	return true
}

func voicify(phs [21]uint8, idx uint8) uint8 {
	if idx < 15 {
		return phs[idx+6]
	}
	return phs[idx]
}

func unvoicify(phs [21]uint8, idx uint8) uint8 {
	if idx < 15 {
		return phs[idx]
	}
	return phs[idx-6]
}

func unvoicifyHard(idx uint8, following byte) uint8 {
	if (idx != 10 && idx != 16) || following != 'W' {
		return unvoicify(hardConsonantPhs, idx)
	}
	return 36
}

func correctConsonant(idx uint8, following byte) uint8 {
	switch {
	case strings.IndexByte(softConsonantLookahead, following) >= 0:
		return unvoicifyHard(idx, following)
	case strings.IndexByte(bgdjz, following) >= 0:
		if (idx != 10 && idx != 16) || following != '_' {
			return voicify(hardConsonantPhs, idx)
		}
		return 9
	default:
		if idx != 16 || following != '_' {
			return hardConsonantPhs[idx]
		}
		return 9
	}
}

// putTranscriptionBlock writes predefined block n, substituting a weak
// stress marker for a strong one when flags carries weakStress.
func putTranscriptionBlock(consumer *sink.Sink, flags uint8, n uint8) {
	block := listItem(transcriptionBlocks, n)
	for i := uint8(1); i <= block[0]; i++ {
		c := block[i]
		if c == 53 && flags&weakStress != 0 {
			c = 54
		}
		consumer.Put(c)
	}
}

// ProcessText transcribes text clause by clause, flushing each completed
// clause transcription to t.Sink's consumer. decSep carries the
// decimal-separator configuration bits the number speller consults.
func (t *Transcriber) ProcessText(text []byte, decSep uint8) {
	buf := preprocess(text)
	end := len(buf)
	if end == 0 {
		return
	}
	hasContent := false
	for _, b := range buf {
		if b >= 'A' || isDigit(b) {
			hasContent = true
			break
		}
	}
	if !hasContent {
		return
	}
	buf = append(buf, make([]byte, 8)...)

	pos := 0
	for pos < end && t.Sink.Status == nil {
		for pos < end && strings.IndexByte(clauseStartSeparators, buf[pos]) >= 0 {
			pos++
		}
		if pos >= end {
			break
		}

		t.Sink.Reset()
		t.State.Done = false
		flags := uint8(clauseStart)
		accented := false
		var lastChar byte
		terminated := false

		for ; pos < end && t.Sink.Offset < MaxLen && t.Sink.Status == nil; pos++ {
			c := buf[pos]

			if flags&clauseStart != 0 {
				accented = false
				for s := pos; s < end; s++ {
					if buf[s] == '+' || buf[s] == '=' {
						accented = true
						break
					}
					if buf[s] < 'A' {
						break
					}
				}
			}

			if idx := strings.IndexByte(charList, c); idx >= 0 {
				if idx < 17 && lastChar != '+' && lastChar != '=' && lastChar < 'A' && at(buf, pos+1) < 'A' {
					putTranscriptionBlock(t.Sink, flags, uint8(idx))
					flags |= clauseStart
					lastChar = c
					continue
				} else if idx > 26 {
					prev := t.Sink.Last()
					if (c != '+' && c != '=') || prev > 5 {
						if prev < 43 || prev > 52 {
							t.Sink.Put(43)
						}
						putTranscriptionBlock(t.Sink, flags, uint8(idx))
						if c != '-' && at(buf, pos+1) >= 'A' {
							t.Sink.Put(43)
						}
						flags |= clauseStart
					} else {
						if c != '+' {
							t.Sink.Put(54)
						} else {
							t.Sink.Put(53)
						}
						flags &^= clauseStart
					}
					lastChar = c
					continue
				}
			}

			if accented {
				matched := true
				switch {
				case detectSuffix(buf, &pos, end, &flags, "O+GO"):
					putTranscriptionBlock(t.Sink, flags, 42)
					lastChar = 'A'
				case detectSuffix(buf, &pos, end, &flags, "E+GO"):
					blk := uint8(48)
					if s := pos - 4; s >= 0 && strings.IndexByte(consonants, buf[s]) >= 0 {
						blk = 45
					}
					putTranscriptionBlock(t.Sink, flags, blk)
					lastChar = 'A'
				case detectSuffix(buf, &pos, end, &flags, "EGO+"):
					blk := uint8(49)
					if s := pos - 4; s >= 0 && strings.IndexByte(consonants, buf[s]) >= 0 {
						blk = 46
					}
					putTranscriptionBlock(t.Sink, flags, blk)
					lastChar = 'O'
				case detectSuffix(buf, &pos, end, &flags, "OGO+"):
					putTranscriptionBlock(t.Sink, flags, 43)
					lastChar = 'O'
				case detectSuffix(buf, &pos, end, &flags, "EGO"):
					blk := uint8(50)
					if s := pos - 3; s >= 0 && strings.IndexByte(consonants, buf[s]) >= 0 {
						blk = 47
					}
					putTranscriptionBlock(t.Sink, flags, blk)
					lastChar = 'A'
				case detectSuffix(buf, &pos, end, &flags, "OGO"):
					putTranscriptionBlock(t.Sink, flags, 44)
					lastChar = 'A'
				case detectSuffix(buf, &pos, end, &flags, "TSQ"):
					putTranscriptionBlock(t.Sink, flags, 51)
					lastChar = 'A'
				case detectSuffix(buf, &pos, end, &flags, "TXSQ"):
					putTranscriptionBlock(t.Sink, flags, 51)
					lastChar = 'A'
				default:
					matched = false
				}
				if matched {
					continue
				}
			}

			if isDigit(c) {
				SpeakNumber(buf, &pos, end, t.Sink, decSep)
				if !checkClauseTermination(buf, &pos, end, t.State, t.Sink) {
					t.Sink.Flush()
				}
				flags |= clauseStart
				lastChar = 0
				pos--
				continue
			}

			if checkClauseTermination(buf, &pos, end, t.State, t.Sink) {
				terminated = true
				break
			}

			if idx := strings.IndexByte(vocalics, c); idx >= 0 {
				var vc uint8
				switch {
				case c == 'I':
					vc = 5
				case c == 'O' && accented && at(buf, pos+1) != '+' && at(buf, pos+1) != '=':
					vc = 2
				default:
					vc = vocalPhoncodes[idx%5]
				}
				flags &^= clauseStart
				if pos > 0 {
					prevc := buf[pos-1]
					if prevc != 'X' {
						if (strings.IndexByte(vocalics, prevc) >= 0 || strings.IndexByte(symbols[:13], prevc) >= 0 || prevc == ']') &&
							strings.IndexByte(glottalStopVowels, c) >= 0 {
							t.Sink.Put(10)
						}
					} else if strings.IndexByte("`QE\\IO", c) >= 0 {
						t.Sink.Put(10)
					}
				} else if strings.IndexByte(glottalStopVowels, c) >= 0 {
					t.Sink.Put(10)
				}
				t.Sink.Put(vc)
				lastChar = c
				continue
			}

			if strings.IndexByte(ndts, c) >= 0 {
				nextc := at(buf, pos+1)
				if strings.IndexByte(softVocalics, nextc) >= 0 || nextc == 'X' {
					if s := strings.IndexByte(ndts, lastChar); s >= 0 {
						t.Sink.Replace(ndtsSoftPhs[s])
					}
				}
			}

			if idx := strings.IndexByte(consonants, c); idx >= 0 {
				ix := uint8(idx)
				nextc := byte(',')
				if end-pos > 1 {
					nextc = buf[pos+1]
				}
				flags &^= clauseStart
				switch {
				case idx < 9:
					if nextc == 'X' {
						pos++
						t.Sink.Put(softConsonantPhs[ix])
					} else if strings.IndexByte(softVocalics, nextc) >= 0 {
						t.Sink.Put(softConsonantPhs[ix])
					} else {
						t.Sink.Put(hardConsonantPhs[ix])
					}
				case nextc == 'X':
					pos++
					nextc2 := byte(',')
					if end-pos > 1 {
						nextc2 = buf[pos+1]
					}
					switch {
					case (strings.IndexByte(terminatingPunctuation, nextc2) >= 0 && t.Sink.Last() != 43) ||
						strings.IndexByte(softConsonantLookahead, nextc2) >= 0:
						t.Sink.Put(unvoicify(softConsonantPhs, ix))
					case strings.IndexByte(bgdjz, nextc2) >= 0:
						t.Sink.Put(voicify(softConsonantPhs, ix))
					default:
						t.Sink.Put(softConsonantPhs[ix])
					}
				case strings.IndexByte(softVocalics, nextc) >= 0:
					t.Sink.Put(softConsonantPhs[ix])
				case strings.IndexByte(terminatingPunctuation, nextc) >= 0:
					if t.Sink.Last() != 43 {
						t.Sink.Put(unvoicifyHard(ix, nextc))
					} else {
						t.Sink.Put(hardConsonantPhs[ix])
					}
				default:
					following := nextc
					if nextc == ' ' {
						following = at(buf, pos+2)
					}
					t.Sink.Put(correctConsonant(ix, following))
				}
			} else if c != ']' {
				flags |= clauseStart
				if c != '#' {
					t.Sink.Put(43)
				} else {
					t.Sink.Put(42)
				}
			} else {
				flags &^= clauseStart
			}
			lastChar = c
		}

		if !terminated {
			t.Sink.Flush()
		}
	}
}
