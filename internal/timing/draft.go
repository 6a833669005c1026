// Package timing builds the per-clause timing draft and applies speech
// rate and inter-clause gap parameters to a sound script's durations.
package timing

import "github.com/poretsky/ru-tts/internal/transcribe"

// Rows is the number of classification rows a timing draft carries.
const Rows = 9

// Draft is the per-position classification grid the speech-rate applier
// reads to pick a sound duration formula: draft[row][position]. Columns
// cover the full range of the single-byte position counters below, so a
// wrapped counter indexes a stale column rather than anything out of
// bounds.
type Draft [][]uint8

func newDraft(rows int) Draft {
	if rows < Rows {
		rows = Rows
	}
	d := make(Draft, rows)
	for i := range d {
		d[i] = make([]uint8, 256)
	}
	return d
}

// Phoncode sets used to classify rhythmic groups and adjacent phoncode
// pairs. The sets have no independent meaning outside the rank/setcase
// computations below; for set8..set10 the first four entries double as
// the related-consonant test applied to the preceding phoncode.
var (
	set0  = []uint8{44, 45, 48, 49, 46, 47, 50, 51}
	set1  = []uint8{10, 15, 18, 16, 19, 8, 13, 14, 17}
	set2  = []uint8{6, 11, 7, 12, 9}
	set3  = []uint8{20, 23, 21, 24, 22, 25}
	set4  = []uint8{34, 37, 35, 38, 32, 36, 39, 33, 40, 41}
	set5  = []uint8{26, 29, 27, 30, 28, 31}
	set6  = []uint8{10, 14, 17, 15, 18, 16, 19, 8, 13}
	set7  = []uint8{6, 11, 7, 12, 9, 20, 23, 21, 24, 22, 25}
	set8  = []uint8{20, 23, 26, 29, 15, 18, 6, 11, 34, 37}
	set9  = []uint8{21, 24, 27, 30, 14, 17, 16, 19, 7, 12, 35, 38, 36, 39, 32, 33, 9}
	set10 = []uint8{22, 25, 28, 31, 40, 41}
)

// peek returns transcription[i], or the idle fill once i runs past the
// buffer.
func peek(transcription []byte, i int) uint8 {
	if i < len(transcription) {
		return transcription[i]
	}
	return 43
}

func memberOf(set []uint8, phoncode uint8) bool {
	for _, v := range set {
		if v == phoncode {
			return true
		}
	}
	return false
}

func indexIn(set []uint8, phoncode uint8) int {
	for i, v := range set {
		if v == phoncode {
			return i
		}
	}
	return -1
}

// rank classifies a phoncode by which of the five consonant-strength sets
// it belongs to, or 0 if none.
func rank(phoncode uint8) uint8 {
	switch {
	case memberOf(set1, phoncode):
		return 1
	case memberOf(set2, phoncode):
		return 2
	case memberOf(set3, phoncode):
		return 3
	case memberOf(set4, phoncode):
		return 4
	case memberOf(set5, phoncode):
		return 5
	}
	return 0
}

// workspace mirrors workspace_t: scratch state accumulated while scanning
// one clause for rhythmic-group boundaries, consumed once a clause
// terminator is found.
type workspace struct {
	value     uint8
	delta     uint8
	flag      uint8
	ndx1      uint8
	ndx2      uint8
	itercount uint8

	// area rows span the full single-byte index range: the counters above
	// wrap rather than run out, and a wrapped index must still land inside
	// its own row.
	area [5][256]uint8
}

func (w *workspace) nextIteration() {
	w.ndx2++
	w.area[3][w.ndx2] = w.value
	w.value = 0
	if w.flag != 0 {
		w.area[2][w.ndx1] += w.delta
	}
	w.delta = 0
	w.itercount++
}

// Plan builds the timing draft for a clause transcription, reporting
// whether it was filled (a clause terminator was found before the buffer
// ran out). The single sweep accumulates rhythmic-group counts into the
// scratch workspace, then unwinds them into draft columns once the
// terminator is reached.
func Plan(transcription []byte, rows int) (Draft, bool) {
	draft := newDraft(rows)
	w := &workspace{}

	i := transcribe.Start
	checkPrevTrigger := uint8(0)
	checkPrev := uint8(0)
	skipItercount := uint8(1)
	nitems := uint8(0)

	for ; i < transcribe.BufferSize; i++ {
		if transcription[i] <= 5 {
			w.delta++
			w.flag = 0
			w.area[2][w.ndx1+1] = w.delta
			if peek(transcription, i+1) != 53 {
				if peek(transcription, i+1) != 54 {
					w.area[0][w.ndx1+1] = 0
				} else {
					w.area[0][w.ndx1+1] = 0xFF
					i++
				}
			} else {
				w.area[0][w.ndx1+1] = 1
				if skipItercount != 0 {
					skipItercount = 0
				} else {
					nitems++
					w.area[4][nitems] = w.itercount
					w.itercount = 0
				}
				i++
			}
			w.ndx1++
			w.delta = 0
			w.value++
			checkPrevTrigger = 1
			checkPrev = 0
			continue
		}

		if transcription[i] == 43 {
			w.nextIteration()
			continue
		}

		if idx := indexIn(set0, transcription[i]); idx >= 0 {
			valuesLen := rows
			if valuesLen < Rows {
				valuesLen = Rows
			}
			values := make([]uint8, valuesLen)
			restart := uint8(0)
			setcase := uint8(0)
			tmp := uint8(0)
			m := uint8(1)
			k := uint8(idx)
			if k > 3 {
				k = 0
			}
			values[8] = k + 1
			w.nextIteration()
			skipItercount = 1
			nitems++
			w.area[4][nitems] = w.itercount
			w.itercount = 0
			for k = w.ndx2; k > 0; k-- {
				w.area[1][k] = 0
			}
			w.ndx1 = 0
			w.ndx2 = 0

			for item := uint8(1); item <= nitems; item++ {
				j := w.ndx2
				for ii := uint8(1); ii <= w.area[4][item]; ii++ {
					w.ndx2++
					for ndx3 := uint8(1); ndx3 <= w.area[3][w.ndx2]; ndx3++ {
						w.ndx1++
						if w.area[0][w.ndx1] != 0 {
							if w.area[0][w.ndx1] == 1 {
								w.area[1][w.ndx2] = 1
							} else if w.area[0][w.ndx1] != 0xFF {
								continue
							}
							n := int(w.ndx1) - 2
							for l := int(w.ndx1) - int(ndx3) + 1; l <= n; l++ {
								w.area[0][l] = 3
							}
							if ndx3 != 1 {
								w.area[0][w.ndx1-1] = 2
							}
							n = int(w.area[3][w.ndx2]) + int(w.ndx1) - int(ndx3)
							for l := int(w.ndx1) + 2; l <= n; l++ {
								w.area[0][l] = 5
							}
							if w.area[3][w.ndx2] != ndx3 {
								w.area[0][w.ndx1+1] = 4
							}
							w.area[0][w.ndx1] = 1
						}
					}
				}
				w.ndx2 = j
				k = w.area[4][item]
				for ii := uint8(1); ii <= k; ii++ {
					w.ndx2++
					if w.area[1][w.ndx2] == 1 {
						for l := int(w.ndx2) - int(ii) + 1; l < int(w.ndx2); l++ {
							w.area[1][l] = 2
						}
						n := int(w.area[4][item]) + int(w.ndx2) - int(ii)
						for l := int(w.ndx2) + 1; l <= n; l++ {
							w.area[1][l] = 3
						}
						w.area[1][w.ndx2] = 1
					}
				}
			}

			w.ndx1 = 0
			w.ndx2 = 0
			values[7] = min8(nitems, 4)
			i = transcribe.Start - 1
			for item := uint8(1); item <= nitems; item++ {
				values[3] = discriminant(item, nitems)
				for ndx4 := uint8(1); ndx4 <= w.area[4][item]; ndx4++ {
					w.ndx2++
					values[6] = min8(w.area[3][w.ndx2], 4)
					for ndx5 := uint8(1); ndx5 <= w.area[3][w.ndx2]; ndx5++ {
						w.ndx1++
						values[2] = discriminant(ndx5, w.area[3][w.ndx2])
						for j := uint8(1); j <= w.area[2][w.ndx1]; j++ {
							phoncodeCur := transcription[i]
							phoncodePrev := phoncodeCur
							for {
								i++
								phoncodeCur = transcription[i]
								switch {
								case phoncodeCur < 6 || memberOf(set6, phoncodeCur):
									setcase = 2
								case memberOf(set7, phoncodeCur):
									setcase = 3
								case phoncodeCur > 25 && phoncodeCur < 42:
									setcase = 4
								case phoncodeCur > 43 && phoncodeCur < 52:
									i = transcribe.Start
									restart = 1
									values[0] = tmp
									tmp = values[1]
									values[1] = 1
									goto doneScan
								default:
									continue
								}
								values[0] = tmp
								if restart != 0 {
									tmp = 0
									restart = 0
								} else {
									tmp = values[1]
								}
								values[1] = setcase
								if tmp != 0 {
									break
								}
								phoncodePrev = phoncodeCur
							}
						doneScan:
							values[4] = w.area[0][w.ndx1]
							values[5] = w.area[1][w.ndx2]
							for k := 2; k < rows; k++ {
								if values[k] != 0 {
									draft[k][m] = values[k] - 1
								} else {
									draft[k][m] = 0
								}
							}
							if phoncodePrev > 5 && phoncodePrev < 43 && phoncodePrev == phoncodeCur {
								draft[1][m] = 5
							} else if (memberOf(set8[:4], phoncodePrev) && memberOf(set8, phoncodeCur)) ||
								(memberOf(set9[:4], phoncodePrev) && memberOf(set9, phoncodeCur)) ||
								(memberOf(set10[:4], phoncodePrev) && memberOf(set10, phoncodeCur)) {
								draft[1][m] = 4
							} else if values[1] != 0 {
								draft[1][m] = values[1] - 1
							} else {
								draft[1][m] = 0
							}
							if values[0] != 0 {
								draft[0][m] = values[0] - 1
							} else {
								draft[0][m] = 3
							}
							m++
						}
					}
				}
			}
			return draft, true
		}

		w.flag = 1
		if checkPrev != 0 {
			if transcription[i-1] != 43 {
				checkPrev = 0
				rankPrev := rank(transcription[i-1])
				if rankPrev == 0 {
					return draft, false
				}
				rankCur := rank(transcription[i])
				if rankCur == 0 {
					return draft, false
				}
				if rankPrev <= rankCur {
					w.area[2][w.ndx1]++
				} else {
					w.delta++
				}
				continue
			}
			w.delta++
		} else {
			w.delta++
		}
		if checkPrevTrigger != 0 {
			checkPrev = 1
			checkPrevTrigger = 0
		}
	}

	return draft, false
}

func min8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}

func discriminant(x, y uint8) uint8 {
	if x != y {
		if x != 1 {
			return 3
		}
		return 2
	}
	return 1
}
