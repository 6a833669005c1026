// Package sound renders a finished sound script into a PCM byte stream.
package sound

import (
	"github.com/poretsky/ru-tts/internal/sink"
	"github.com/poretsky/ru-tts/internal/soundscript"
	"github.com/poretsky/ru-tts/internal/voice"
)

// synthCtrlData drives the fully synthetic sounds (id 169 and above): for
// each, a two-pole resonator coefficient and an excitation/shift selector
// (-1 marks a pure-silence entry). The bit patterns have no derivation
// shorter than the table itself.
var synthCtrlData = [33][2]int16{
	{0, -1}, {0, -1}, {0, -1}, {0, -1}, {0, -1}, {0, -1}, {0, -1}, {0, -1},
	{-27892 /* 0x930C */, 0}, {-12428 /* 0x0CF74 */, 1}, {2, -32766}, {-27892 /* 0x930C */, 1}, {2, 1}, {2, -32765},
	{-27892 /* 0x930C */, 0}, {-12428 /* 0x0CF74 */, 1}, {0x308C, 1}, {0x0B8B, 2}, {0x502E, 1}, {0x66F0, 1},
	{0, -1}, {0, -1}, {0, -1}, {0, -1}, {0, -1}, {0, -1}, {0, -1}, {0, -1},
	{0, -1}, {0, -1}, {0, -1}, {0, -1}, {0, -1},
}

func putSample(s *sink.Sink, v int16) {
	s.Put(byte(int8(v)))
}

// eval advances one stage's intonation control block by one pitch period
// and returns half its current stretch value.
func eval(icb *soundscript.ICB) int16 {
	res := int16(icb.Stretch >> 1)
	icb.Count--
	if icb.Count == 0 {
		icb.Stretch = uint8(int16(icb.Stretch) + int16(icb.Delta))
		icb.Count = icb.Period
	}
	return res
}

// silence emits length zero samples and returns length.
func silence(consumer *sink.Sink, length int16) int16 {
	for i := int16(0); i < length; i++ {
		consumer.Put(0)
	}
	return length
}

// fading emits three samples fading the last sample at sidx-1 by half
// each step, and returns the number of samples generated.
func fading(consumer *sink.Sink, v *voice.Voice, sidx uint16) int16 {
	sample := v.Samples[sidx-1]
	for i := 0; i < 3; i++ {
		sample >>= 1
		consumer.Put(byte(sample))
	}
	return 3
}

// Make renders script into PCM bytes fed to consumer, one leading zero
// sample followed by every unit's waveform, voiced by v except for the
// fully synthetic ids. Per unit: the noise/resonator recurrence for
// id>=169, a raw pattern copy when the voice's recorded pattern is longer
// than voice.Threshold, and otherwise either a stretched-with-fade repeat
// (132<=id<169) or a cross-mixed linear interpolation into the next unit
// (id<132).
func Make(v *voice.Voice, script *soundscript.Script, consumer *sink.Sink) {
	consumer.Put(0)

	for i := 0; i < len(script.Units) && consumer.Status == nil; i++ {
		l := int16(script.Units[i].Duration)
		j := uint16(script.Units[i].ID)

		switch {
		case j >= 169:
			j -= 169
			bx := synthCtrlData[j][0]
			cx := synthCtrlData[j][1]
			if cx != -1 {
				makeSynthetic(consumer, bx, cx, l)
			} else {
				silence(consumer, l)
			}

		case l != 0:
			sidx := v.SoundOffsets[j]
			scnt := v.SoundLengths[j]
			stage := script.Units[i].Stage

			switch {
			case scnt > voice.Threshold:
				for {
					consumer.Put(byte(v.Samples[sidx]))
					sidx++
					scnt--
					l--
					if scnt == 0 || l == 0 {
						break
					}
				}

			case j >= 132:
				makeStretched(v, script, consumer, i, int(stage), j, sidx, scnt, l)

			default:
				makeMixed(v, script, consumer, i, int(stage), j, sidx, scnt, l)
			}
		}
	}

	consumer.Flush()
}

// makeSynthetic runs the LFSR-driven two-pole resonator recurrence that
// produces every fully synthetic consonant/noise sound. The LFSR word is
// unsigned: the feedback bit lands in the top position and must shift
// back out logically, while the resonator registers stay signed.
func makeSynthetic(consumer *sink.Sink, bx, cx, l int16) {
	ax := uint16(205)
	sampleShift := uint((cx & 0xFF) + 8)
	var var1, var2, var3 int16

	for k := int16(0); k <= l; k++ {
		tmp := ax & 0x2D
		tmp ^= tmp >> 4
		tmp &= 0x0F
		if (0x6996>>tmp)&0x01 != 0 {
			ax |= 0x8000
		}
		ax >>= 1
		tmp = ax
		ax >>= 2
		var3 >>= 1
		var3 += var3 >> 2
		if cx >= 0 {
			var3 += var3 >> 2
		}
		si := var3
		var3 = (var2 << 1) - var1
		var1 = int16(ax)
		ax = uint16((int32(var3) * int32(bx)) >> 15)
		ax += uint16(var1 - si)
		var3 = var2
		var2 = int16(ax)
		consumer.Put(byte(int8(var2 >> sampleShift)))
		ax = tmp
	}
}

// makeStretched repeats a prepared pattern to fill a duration longer than
// its recorded length, fading between repetitions.
func makeStretched(v *voice.Voice, script *soundscript.Script, consumer *sink.Sink, i, stage int, j uint16, sidx, scnt uint16, l int16) {
	var ax int16
	for l > ax {
		k := int16(script.ICBs[stage].Stretch)
		for {
			consumer.Put(byte(v.Samples[sidx]))
			sidx++
			l--
			k--
			if k == 0 {
				break
			}
			scnt--
			if scnt == 0 {
				break
			}
		}
		if k != 0 {
			l -= silence(consumer, k)
		} else if scnt > 1 {
			l -= fading(consumer, v, sidx)
		}
		ax = eval(&script.ICBs[stage])
		sidx = v.SoundOffsets[j]
		scnt = v.SoundLengths[j]
	}
}

// makeMixed cross-mixes the end of one pattern into the start of the
// next unit's pattern, linearly interpolating sample by sample.
func makeMixed(v *voice.Voice, script *soundscript.Script, consumer *sink.Sink, i, stage int, j, sidx, scnt uint16, l int16) {
	var ax, dx int16
	for l >= ax {
		k := int16(script.ICBs[stage].Stretch)
		var nextID uint16
		if i+1 < len(script.Units) {
			nextID = uint16(script.Units[i+1].ID)
		}
		pj := v.SoundOffsets[nextID]
		// The highest addressable id has no successor entry to bound its
		// pattern; treat it as empty rather than read past the table.
		nextPatternOffset := pj
		if int(nextID)+1 < len(v.SoundOffsets) {
			nextPatternOffset = v.SoundOffsets[nextID+1]
		}
		consumer.Put(0)
		ax = 0
		if pj < nextPatternOffset {
			ax = int16(v.Samples[pj])
		}
		for {
			ax -= int16(v.Samples[sidx])
			ax = int16(int32(ax) * int32(dx) / int32(l))
			dx++
			ax += int16(v.Samples[sidx])
			sidx++
			consumer.Put(byte(int8(ax)))
			if pj+1 < nextPatternOffset {
				pj++
				ax = int16(v.Samples[pj])
			} else {
				pj++
				ax = 0
			}
			k--
			if k == 0 {
				break
			}
			scnt--
			if scnt == 0 {
				break
			}
		}
		if k != 0 {
			dx += silence(consumer, k)
		} else if scnt > 1 {
			dx += fading(consumer, v, sidx)
		}
		ax = dx + eval(&script.ICBs[stage])
		j = uint16(script.Units[i].ID)
		sidx = v.SoundOffsets[j]
		scnt = v.SoundLengths[j]
	}
}
