// Package intonation computes each stage's pitch-contour control block
// and tags every sound unit in a script with its intonation stage.
package intonation

import (
	"github.com/poretsky/ru-tts/internal/soundscript"
	"github.com/poretsky/ru-tts/internal/transcribe"
	"github.com/poretsky/ru-tts/internal/voice"
)

// ClauseType selects one of the sixteen pitch-plan rows below; it mirrors
// the clause terminations the transcriber recognizes (see
// transcribe.State.ClauseType, masked to 0..15).
type ClauseType uint8

// intonations is the pitch-plan table: for each clause type and each of
// the twelve intonation stages, a {start, end} percentage-of-range pair
// evalTone converts into an absolute pitch period. Every row matters and
// none can be derived from the others.
var intonations = [16][soundscript.Stages][2]uint8{
	{{30, 40}, {40, 50}, {50, 50}, {50, 40}, {40, 50}, {50, 60}, {60, 50}, {50, 40}, {40, 40}, {40, 60}, {60, 70}, {70, 70}},
	{{30, 40}, {40, 50}, {50, 50}, {50, 40}, {40, 45}, {45, 50}, {50, 60}, {60, 40}, {40, 25}, {25, 15}, {15, 30}, {30, 60}},
	{{30, 60}, {60, 70}, {70, 60}, {60, 40}, {40, 50}, {50, 60}, {60, 50}, {50, 40}, {40, 40}, {40, 60}, {60, 70}, {70, 70}},
	{{30, 60}, {60, 70}, {70, 60}, {60, 40}, {40, 50}, {50, 60}, {60, 50}, {50, 40}, {40, 40}, {40, 60}, {60, 70}, {70, 70}},
	{{30, 60}, {60, 70}, {70, 60}, {60, 40}, {40, 50}, {50, 60}, {60, 50}, {50, 40}, {40, 40}, {40, 60}, {60, 70}, {70, 70}},
	{{30, 40}, {40, 50}, {50, 60}, {60, 70}, {70, 20}, {20, 40}, {40, 60}, {60, 40}, {40, 50}, {50, 20}, {20, 0}, {0, 0}},
	{{30, 30}, {35, 40}, {40, 40}, {40, 40}, {40, 20}, {20, 30}, {30, 40}, {40, 40}, {30, 20}, {20, 0}, {0, 0}, {0, 0}},
	{{30, 40}, {40, 50}, {50, 60}, {60, 60}, {60, 20}, {20, 40}, {40, 60}, {60, 60}, {40, 60}, {60, 35}, {35, 20}, {20, 0}},
	{{30, 45}, {45, 65}, {65, 80}, {80, 80}, {80, 40}, {40, 60}, {60, 80}, {80, 80}, {40, 80}, {80, 50}, {50, 20}, {20, 0}},
	{{20, 30}, {30, 25}, {25, 25}, {25, 20}, {20, 30}, {30, 25}, {25, 25}, {25, 20}, {20, 30}, {30, 25}, {25, 20}, {20, 10}},
	{{40, 80}, {80, 80}, {80, 80}, {80, 70}, {70, 70}, {70, 65}, {65, 60}, {60, 60}, {60, 80}, {80, 100}, {100, 100}, {100, 10}},
	{{40, 80}, {80, 90}, {90, 90}, {90, 80}, {80, 80}, {80, 80}, {80, 80}, {80, 80}, {80, 60}, {60, 40}, {40, 20}, {20, 0}},
	{{40, 80}, {80, 80}, {80, 80}, {80, 70}, {70, 70}, {70, 65}, {65, 60}, {60, 60}, {60, 80}, {80, 100}, {100, 100}, {100, 10}},
	{{40, 100}, {100, 100}, {100, 100}, {100, 50}, {100, 100}, {100, 100}, {100, 100}, {100, 100}, {50, 80}, {80, 100}, {100, 40}, {20, 0}},
	{{40, 100}, {100, 100}, {100, 100}, {100, 100}, {100, 100}, {100, 100}, {100, 100}, {100, 100}, {40, 80}, {80, 100}, {100, 20}, {20, 0}},
	{{40, 100}, {100, 100}, {100, 100}, {100, 100}, {100, 100}, {100, 100}, {100, 100}, {100, 100}, {100, 70}, {70, 50}, {50, 20}, {20, 0}},
}

// searchBreakpoint scans forward from start for the next speech mark
// (phoncode >42), first skipping any run of idle fill bytes. It returns
// -1 if the scan runs off the end of the buffer, or if the very first
// non-idle byte it meets is already a speech mark.
func searchBreakpoint(transcription []byte, start int) int {
	rc := -1
	i := start
	for ; i < transcribe.BufferSize; i++ {
		rc = int(transcription[i])
		if rc != 43 {
			if rc > 43 {
				return -1
			}
			break
		}
	}
	for i++; i < transcribe.BufferSize; i++ {
		rc = int(transcription[i])
		if rc > 42 {
			return rc
		}
	}
	return -1
}

func evalTone(x, mintone, maxtone uint) uint {
	return 10000 / ((maxtone-mintone)*x/100 + mintone)
}

// setstage assigns value to every sound unit's stage starting at index,
// stopping once the stage sequence stops increasing, and returns the
// index where it stopped. The monotonic-rise rule is what keeps the tag
// inside one syllable envelope.
func setstage(script *soundscript.Script, index int, value uint8) int {
	i := index
	for i < len(script.Units) {
		prev := script.Units[i].Stage
		script.Units[i].Stage = value
		i++
		if i >= len(script.Units) || script.Units[i].Stage <= prev {
			break
		}
	}
	return i
}

// Modulation carries the pitch-range endpoints Apply maps the
// percentage-of-range table onto.
type Modulation struct {
	MinTone uint
	MaxTone uint
}

// Setup derives a Modulation from the configured pitch and intonation
// span, scaled by the selected voice's pitch factor: the configured pitch
// forms the center, the intonation percentage forms the spread around it,
// and the voice's factor scales both before the floor of 1 is applied so
// evalTone never divides by zero on a degenerate configuration.
func Setup(v *voice.Voice, voicePitch, intonationSpan uint) Modulation {
	center := voicePitch * v.PitchFactor / 100
	if center == 0 {
		center = 1
	}
	spread := center * intonationSpan / 200
	min := center - spread
	if min == 0 {
		min = 1
	}
	return Modulation{MinTone: min, MaxTone: center + spread}
}

// Apply computes the per-stage intonation control blocks and tags every
// sound unit in soundscript with its pitch-plan stage. v must be the
// voice the script's durations and ids were computed against: its
// sound-length table gates which units contribute to each stage's pitch
// coefficient.
func Apply(v *voice.Voice, transcription []byte, script *soundscript.Script, mod Modulation, clauseType ClauseType) {
	i := transcribe.Start
	nspeechmarks := 0
	for i < transcribe.BufferSize {
		bp := searchBreakpoint(transcription, i)
		if bp < 0 {
			break
		}
		if bp != 54 {
			nspeechmarks++
		}
		i++
		for i < transcribe.BufferSize && (transcription[i] >= 53 || transcription[i] < 43) {
			i++
		}
	}

	for k := range script.ICBs {
		script.ICBs[k].Count = 1
		script.ICBs[k].Period = 1
	}

	if nspeechmarks == 0 {
		for k := range script.ICBs {
			script.ICBs[k].Stretch = voice.Threshold
			script.ICBs[k].Delta = 0
		}
		for j := 0; j < len(script.Units); {
			j = setstage(script, j, 0)
		}
		return
	}

	// coef accumulates Σ(duration/10) per stage in 16 bits, wrapping on a
	// pathologically long stage rather than widening the pitch coefficient.
	var coef [soundscript.Stages]uint16
	prevk := 256
	j := 0
	m := 0
	st4 := false
	var stage uint8

	for k := range script.ICBs {
		script.ICBs[k].Stretch = 90
		script.ICBs[k].Delta = 0
	}

	for i = transcribe.Start; j < len(script.Units) && i < transcribe.BufferSize; i++ {
		if m == 0 {
			switch {
			case nspeechmarks == 1:
				stage = 8
			case st4:
				stage = 4
			default:
				stage = 0
				st4 = true
			}
			bp := searchBreakpoint(transcription, i)
			if bp != 53 && bp != 54 {
				m = 1
			} else {
				m = 2
			}
		}

		if m < 3 {
			if m < 2 && transcription[i] > 5 {
				j = setstage(script, j, stage)
				continue
			} else if m > 1 && (transcription[i] > 5 || i+1 >= transcribe.BufferSize || transcription[i+1] != 53) {
				if transcription[i] != 54 {
					j = setstage(script, j, stage)
				}
				continue
			}

			mm := int(script.Units[j].Stage)
			for j < len(script.Units) {
				l := mm
				if mm == 4 {
					mm = 3
				}
				script.Units[j].Stage = uint8(mm) + stage
				j++
				if j >= len(script.Units) {
					break
				}
				mm = int(script.Units[j].Stage)
				if l >= mm {
					break
				}
			}
			m = 3
			continue
		}

		l := transcription[i]
		if l < 53 {
			if l < 43 {
				j = setstage(script, j, stage+3)
			} else if l != 43 {
				break
			} else {
				j++
				bp := searchBreakpoint(transcription, i+1)
				if bp < 0 {
					break
				} else if bp != 54 {
					nspeechmarks--
					m = 0
				}
			}
		}
	}

	for idx := range script.Units {
		id := script.Units[idx].ID
		k := script.Units[idx].Stage
		if v.SoundLengths[id] < voice.Threshold {
			coef[k] += script.Units[idx].Duration / 10
		}
	}

	applyICBs(v, script, mod, clauseType, coef, prevk)
}

func applyICBs(v *voice.Voice, script *soundscript.Script, mod Modulation, clauseType ClauseType, coef [soundscript.Stages]uint16, prevk int) {
	for idx := range script.Units {
		id := script.Units[idx].ID
		k := script.Units[idx].Stage
		if prevk != int(k) && v.SoundLengths[id] < voice.Threshold {
			var q int32
			tone1 := uint8(evalTone(uint(intonations[clauseType][k][0]), mod.MinTone, mod.MaxTone))
			tone2 := uint8(evalTone(uint(intonations[clauseType][k][1]), mod.MinTone, mod.MaxTone)) - tone1
			script.ICBs[k].Period = 1
			script.ICBs[k].Count = 1
			if tone2 != 0 {
				tone3 := int8(tone2)
				tone2 = tone1
				tone1 += uint8(tone3 >> 1)
				t := (int32(coef[k])*10 + int32(tone1>>1)) / int32(tone1)
				if t == 0 {
					t++
				}
				q = int32(tone3) / t
				r := int32(tone3) % t
				if q != 0 {
					if r < 0 {
						r = (-r) << 1
						if r >= t {
							q--
						}
					} else {
						r <<= 1
						if r >= t {
							q++
						}
					}
				} else {
					if r < 0 {
						q = -1
						r = -r
					} else {
						q = 1
					}
					t = (t + (r >> 1)) / r
					t &= 0xFF
					script.ICBs[k].Period = uint8(t)
					script.ICBs[k].Count = uint8(t)
				}
			} else {
				tone2 = tone1
			}
			script.ICBs[k].Stretch = tone2
			script.ICBs[k].Delta = int8(q)
			prevk = int(k)
		} else if prevk != int(k) {
			prevk = 256
		}
	}
}
