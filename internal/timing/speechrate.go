package timing

import "github.com/poretsky/ru-tts/internal/soundscript"

// ClauseSeparators is the number of distinct clause-ending punctuation
// marks that each carry their own gap duration.
const ClauseSeparators = 7

// Punctuations lists, in order, the separators ClauseSeparators' gap
// lengths are indexed by: comma, dot, semicolon, colon, question,
// exclamation, dash.
const Punctuations = ",.;:?!-"

// bottom and top are, respectively, the minimum and maximum duration in
// samples recorded for every sound id; elements are the additive
// duration-forming terms the draft's classification columns select from.
var bottom = [...]uint8{
	30, 31, 32, 31, 30, 30,
	31, 32, 31, 30, 15, 15,
	15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15,
	15, 15, 30, 30, 30, 30,
	30, 15, 15, 15, 15, 15,
	30, 30, 30, 30, 30, 15,
	15, 15, 15, 15, 30, 30,
	30, 30, 30, 15, 15, 15,
	15, 15, 30, 30, 30, 30,
	30, 15, 15, 15, 15, 15,
	30, 30, 30, 30, 30, 10,
	11, 12, 11, 10, 10, 11,
	12, 11, 10, 15, 15, 15,
	15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15,
	15, 15, 20, 30, 35, 20,
	40, 20, 35, 49, 30, 45,
	20, 40, 50, 40, 50, 60,
	50, 0, 20, 25, 10, 35,
	35, 20, 20, 30, 20, 35,
	40, 0, 20, 25, 0, 20,
	25, 20, 20, 30, 20, 20,
	30, 50, 50, 40, 40, 35,
	35, 50, 40, 40, 50, 30,
	30, 30, 30, 40, 50, 60,
	60, 80, 70, 70, 90, 50,
	60, 50, 50, 5, 0, 255,
	255, 0, 255, 255, 255, 255,
	255, 255, 255,
}

var top = [...]uint8{
	75, 78, 80, 78, 75, 55,
	58, 60, 58, 55, 30, 30,
	30, 30, 30, 25, 25, 25,
	25, 25, 30, 30, 30, 30,
	30, 25, 25, 25, 25, 25,
	30, 30, 30, 30, 30, 25,
	25, 25, 25, 25, 30, 30,
	30, 30, 30, 25, 25, 25,
	25, 25, 60, 60, 60, 60,
	60, 25, 25, 25, 25, 25,
	50, 50, 50, 50, 50, 25,
	25, 25, 25, 25, 50, 50,
	50, 50, 50, 25, 25, 25,
	25, 25, 50, 50, 50, 50,
	50, 25, 25, 25, 25, 25,
	60, 60, 60, 60, 60, 50,
	50, 50, 50, 50, 50, 50,
	50, 50, 50, 30, 30, 35,
	30, 35, 30, 30, 30, 30,
	30, 35, 30, 30, 30, 30,
	35, 30, 40, 80, 90, 45,
	110, 50, 90, 100, 50, 110,
	40, 100, 110, 100, 100,
	110, 100, 20, 30, 30, 23,
	80, 40, 30, 30, 50, 35,
	50, 60, 19, 30, 30, 19,
	30, 30, 30, 30, 50, 30,
	30, 50, 110, 100, 80, 100,
	80, 70, 130, 120, 110, 130,
	90, 90, 80, 80, 90, 100,
	150, 150, 160, 170, 170,
	210, 130, 150, 130, 130,
	50, 0, 20, 30, 25, 25,
	40, 50, 15, 255, 55, 255,
}

var elements = [9][6]uint8{
	{20, 20, 0, 0, 0, 0},
	{50, 25, 25, 0, 0, 0},
	{10, 2, 1, 0, 0, 0},
	{20, 10, 0, 0, 0, 0},
	{60, 30, 0, 0, 0, 0},
	{30, 15, 0, 0, 0, 0},
	{50, 40, 20, 0, 0, 0},
	{20, 12, 6, 0, 0, 0},
	{0, 8, 12, 40, 0, 0},
}

// Timing carries the derived speech-rate factor and per-separator gap
// lengths computed by Setup, adjusted per-separator by AdjustGap and
// consumed by ApplySpeechRate.
type Timing struct {
	// RateFactor is stretch-80 and reaches 420 at the slowest rate, so it
	// needs the full 16-bit width; GapFactor is deliberately truncated to
	// a byte.
	RateFactor uint16
	GapFactor  uint8
	Gaplen     [ClauseSeparators]uint8
}

// Setup derives a Timing from the requested speech rate (words-per-minute
// scale, 40..250 is the linear range) and a relative inter-clause gap
// factor expressed as a percentage of the default.
func Setup(speechRate, gapFactor int) Timing {
	var stretch int
	switch {
	case speechRate < 40:
		stretch = 500
	case speechRate > 250:
		stretch = 80
	default:
		stretch = 20000 / speechRate
	}
	var t Timing
	t.RateFactor = uint16(stretch - 80)
	t.GapFactor = uint8(stretch * (gapFactor << 1) / 500)
	for i := 0; i < ClauseSeparators; i++ {
		t.Gaplen[i] = top[i+191]
	}
	return t
}

// AdjustGap overrides the gap length recorded for one punctuation
// separator, scaled by a percentage factor and clamped to [0, 150].
func (t *Timing) AdjustGap(separator byte, gapFactor int) {
	idx := -1
	for i := 0; i < ClauseSeparators; i++ {
		if Punctuations[i] == separator {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	gaplen := int(top[idx+191]) * gapFactor / 100
	switch {
	case gaplen < 0:
		t.Gaplen[idx] = 0
	case gaplen > 150:
		t.Gaplen[idx] = 150
	default:
		t.Gaplen[idx] = uint8(gaplen)
	}
}

// ApplySpeechRate assigns a duration in samples to every sound unit in
// script, consulting the timing draft for the classification columns the
// duration formula needs. The column index advances on stage regressions;
// when the closed column was classified 5, the whole next regression
// group is silenced and a further column is skipped.
func ApplySpeechRate(script *soundscript.Script, t Timing, draft Draft) {
	n := uint8(1)
	units := script.Units
	for i := 0; i < len(units); i++ {
		j := units[i].ID
		if j < 189 {
			if draft[1][n] != 4 || units[i].Stage != 3 {
				var s uint32
				for k := 0; k < Rows; k++ {
					s += uint32(elements[k][draft[k][n]])
				}
				s *= uint32(top[j]) - uint32(bottom[j])
				s *= uint32(t.RateFactor)
				s += uint32(bottom[j])<<14 + 2048
				s >>= 12
				if draft[1][n] == 5 && units[i].Stage == 2 {
					s += s >> 1
				}
				units[i].Duration = uint16(s)
			} else {
				units[i].Duration = 0
			}
			if i+1 < len(units) && units[i].Stage >= units[i+1].Stage {
				cur := draft[1][n]
				n++
				if cur == 5 {
					for {
						i++
						if i >= len(units) {
							break
						}
						units[i].Duration = 0
						if i+1 >= len(units) || units[i].Stage >= units[i+1].Stage {
							break
						}
					}
					n++
				}
			}
		} else {
			k := int(j) - 191
			var gaplen uint8
			if k >= 0 && k < ClauseSeparators {
				gaplen = t.Gaplen[k]
			} else {
				gaplen = top[j]
			}
			units[i].Duration = uint16(t.GapFactor) * uint16(gaplen)
		}
	}
}
