package transcribe

import "github.com/poretsky/ru-tts/internal/sink"

// Local flags for the digit-run scan below, distinct from the
// clauseStart/weakStress flags the transcriber itself carries.
const (
	numberFraction = 1
	nonZero        = 2
)

// Predefined number-word transcriptions, length-prefixed like the
// transcription block table.
var (
	primary = []uint8{ // 0..9
		4, 16, 1, 53, 17,
		5, 2, 24, 5, 53, 16,
		4, 21, 6, 2, 53,
		4, 27, 13, 5, 53,
		7, 33, 3, 27, 4, 53, 13, 3,
		4, 29, 2, 53, 30,
		5, 36, 3, 53, 38, 30,
		4, 38, 3, 53, 15,
		6, 6, 1, 53, 38, 3, 15,
		6, 24, 3, 53, 11, 2, 30,
	}
	secondary = []uint8{ // 10..19
		6, 24, 3, 53, 38, 2, 30,
		9, 2, 24, 5, 53, 16, 2, 32, 2, 30,
		9, 21, 11, 3, 16, 2, 53, 32, 2, 30,
		9, 27, 13, 5, 16, 2, 53, 32, 2, 30,
		11, 33, 3, 27, 4, 53, 8, 16, 2, 32, 2, 30,
		9, 29, 2, 27, 16, 2, 53, 32, 2, 30,
		9, 36, 3, 35, 16, 2, 53, 32, 2, 30,
		9, 38, 3, 15, 16, 2, 53, 32, 2, 30,
		11, 6, 2, 38, 3, 15, 16, 2, 53, 32, 2, 30,
		11, 24, 3, 11, 2, 27, 16, 2, 53, 32, 2, 30,
	}
	tens = []uint8{ // 20..90
		7, 21, 6, 2, 53, 32, 2, 30,
		7, 27, 13, 5, 53, 32, 2, 30,
		6, 35, 1, 53, 8, 2, 28,
		8, 29, 2, 24, 3, 38, 2, 53, 27,
		9, 36, 3, 12, 24, 3, 38, 2, 53, 27,
		9, 38, 3, 53, 15, 24, 3, 38, 2, 27,
		11, 6, 1, 53, 38, 3, 15, 24, 3, 38, 2, 27,
		10, 24, 3, 11, 2, 16, 1, 53, 35, 27, 2,
	}
	hundreds = []uint8{ // 100..900
		4, 35, 27, 1, 53,
		7, 21, 11, 3, 53, 38, 30, 5,
		7, 27, 13, 5, 53, 35, 27, 2,
		10, 33, 3, 27, 4, 53, 13, 3, 35, 27, 2,
		7, 29, 2, 27, 35, 1, 53, 27,
		7, 36, 3, 35, 35, 1, 53, 27,
		7, 38, 3, 15, 35, 1, 53, 27,
		9, 6, 2, 38, 3, 15, 35, 1, 53, 27,
		9, 24, 3, 11, 2, 27, 35, 1, 53, 27,
	}
	periods = []uint8{
		6, 27, 4, 53, 38, 2, 33,
		7, 18, 5, 17, 5, 1, 53, 16,
		8, 18, 5, 17, 5, 2, 53, 8, 27,
		8, 27, 13, 5, 17, 5, 1, 53, 16,
	}
	fractions = []uint8{
		6, 24, 3, 38, 2, 53, 27,
		4, 35, 1, 53, 27,
		7, 27, 4, 53, 38, 2, 33, 16,
		13, 24, 3, 38, 2, 30, 5, 27, 4, 53, 38, 2, 33, 16,
		10, 35, 27, 1, 27, 4, 53, 38, 2, 33, 16,
		8, 18, 5, 17, 5, 1, 53, 16, 16,
		14, 24, 3, 38, 2, 30, 5, 18, 5, 17, 5, 1, 53, 16, 16,
		11, 35, 27, 1, 18, 5, 17, 5, 1, 53, 16, 16,
		9, 18, 5, 17, 5, 2, 53, 8, 27, 16,
		15, 24, 3, 38, 2, 30, 5, 18, 5, 17, 5, 2, 53, 8, 27, 16,
		12, 35, 27, 1, 18, 5, 17, 5, 2, 53, 8, 27, 16,
		9, 27, 13, 5, 17, 5, 1, 53, 16, 16,
		15, 24, 3, 38, 2, 30, 5, 27, 13, 5, 17, 5, 1, 53, 16, 16,
		12, 35, 27, 1, 27, 13, 5, 17, 5, 1, 53, 16, 16,
	}
	suffixes = []uint8{
		2, 4, 40,
		3, 2, 10, 2,
		2, 2, 6,
	}
	oneInt = []uint8{
		2, 21, 16, 2, 53, 43,
		32, 3, 53, 14, 2, 10, 2, 43,
	}
	oneO  = []uint8{2, 21, 16, 1, 53, 43}
	twoE  = []uint8{21, 11, 3, 53, 43}
	nInts = []uint8{32, 3, 53, 14, 4, 40}
)

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// at returns buf[i], or 0 when i falls outside buf -- the guard-space
// equivalent of reading past a NUL-terminated C string.
func at(buf []byte, i int) byte {
	if i < 0 || i >= len(buf) {
		return 0
	}
	return buf[i]
}

// putTranscription writes the nth length-prefixed entry of lst to consumer.
func putTranscription(consumer *sink.Sink, lst []uint8, n uint8) {
	item := listItem(lst, n)
	consumer.Write(item[1 : 1+int(item[0])])
}

// transcribeDigit writes the spelled form of digit, followed by a 43
// unless following is a space.
func transcribeDigit(consumer *sink.Sink, digit, following byte) {
	putTranscription(consumer, primary, digit-'0')
	if following != ' ' {
		consumer.Put(43)
	}
}

// decimalFollows reports whether buf[pos] is a decimal separator enabled
// by decSep (bit 0 for '.', bit 1 for ',') and immediately followed by
// another digit.
func decimalFollows(buf []byte, pos, end int, decSep uint8) bool {
	if pos+1 >= end || !isDigit(at(buf, pos+1)) {
		return false
	}
	switch at(buf, pos) {
	case '.':
		return decSep&1 != 0
	case ',':
		return decSep&2 != 0
	}
	return false
}

// SpeakNumber spells out the run of digits at *pos, and any decimal
// fraction that follows subject to decSep, as phoncodes written to
// consumer. It advances *pos past everything it consumes.
func SpeakNumber(buf []byte, pos *int, end int, consumer *sink.Sink, decSep uint8) {
	var flags uint8

	for isDigit(at(buf, *pos)) && *pos < end {
		var digits, triplets, lzn, nc uint8
		digits = 1

		flags &^= nonZero
		if consumer.Last() != 43 {
			consumer.Put(43)
		}

		for s := *pos + 1; s < end; s++ {
			if !isDigit(at(buf, s)) {
				break
			}
			digits++
			if digits > 3 {
				digits = 1
				triplets++
				if triplets > 4 {
					digits = 3
					triplets = 4
					break
				}
			} else if flags&numberFraction != 0 && triplets > 3 && digits > 1 {
				break
			}
		}
		n := triplets*3 + digits

		groupStart := *pos
		*pos += int(n)
		groupEnd := *pos - 1

	scan:
		for s := groupStart; consumer.Status == nil; s++ {
			c := at(buf, s)
			nc = 0
			if c != '0' {
				flags |= nonZero
			} else if isDigit(at(buf, s+1)) {
				lzn++
			}
			if c != '0' || !(flags&nonZero != 0 || isDigit(at(buf, s+1))) {
				lzn = 0
				switch digits {
				case 3:
					putTranscription(consumer, hundreds, c-'1')
					consumer.Put(43)

				case 1:
					if c == '1' {
						nc = 1
						switch triplets {
						case 1:
							consumer.Write(oneInt[0:6])
						case 0:
							if at(buf, s+2) == '+' {
								if at(buf, s+1) == 'A' {
									*pos += 2
									s = *pos
									if at(buf, s) != ' ' {
										consumer.Write(oneInt[0:6])
									} else {
										consumer.Write(oneInt[0:5])
									}
									break
								} else if at(buf, s+1) == 'O' {
									*pos += 2
									s = *pos
									if at(buf, s) != ' ' {
										consumer.Write(oneO[0:6])
									} else {
										consumer.Write(oneO[0:5])
									}
									break
								}
							}
							fallthrough
						default:
							if flags&numberFraction != 0 {
								if s < end && isDigit(at(buf, s+2)) {
									transcribeDigit(consumer, c, at(buf, s))
								} else {
									consumer.Write(oneInt[0:6])
								}
							} else if s >= end || at(buf, s+1) != '.' || !isDigit(at(buf, s+2)) {
								transcribeDigit(consumer, c, at(buf, s))
							} else {
								consumer.Write(oneInt[0:14])
							}
						}
					} else if c < '5' {
						nc = 2
						if c == '2' {
							if triplets == 0 && at(buf, s+2) == '+' && at(buf, s+1) == 'E' {
								*pos += 2
								s = *pos
								if at(buf, s) != ' ' {
									consumer.Write(twoE[0:5])
								} else {
									consumer.Write(twoE[0:4])
								}
								goto digitDone
							} else if triplets == 1 ||
								(flags&numberFraction != 0 && s == groupEnd) ||
								(at(buf, s+1) == '.' && isDigit(at(buf, s+2))) {
								consumer.Write(twoE[0:5])
								goto digitDone
							}
						}
						transcribeDigit(consumer, c, at(buf, s))
					} else {
						transcribeDigit(consumer, c, at(buf, s))
					}

				default:
					if c == '1' {
						s++
						putTranscription(consumer, secondary, at(buf, s)-'0')
						nc = 0
						digits--
					} else {
						putTranscription(consumer, tens, c-'2')
					}
					consumer.Put(43)
				}
			}

		digitDone:
			digits--
			if digits == 0 {
				if lzn == 3 {
					lzn = 0
					if triplets > 0 {
						digits = 3
						triplets--
					} else {
						consumer.Back()
						break scan
					}
				} else {
					lzn = 0
					if triplets > 0 {
						if flags&nonZero != 0 {
							putTranscription(consumer, periods, triplets-1)
							if triplets != 1 {
								if nc > 1 {
									consumer.Put(2)
								} else if nc != 1 {
									putTranscription(consumer, suffixes, 2)
								}
							} else if nc > 0 {
								if nc > 1 {
									consumer.Put(5)
								} else {
									consumer.Put(2)
								}
							}
							consumer.Flush()
						}
						digits = 3
						triplets--
					} else {
						consumer.Back()
						break scan
					}
				}
			}
		}

		if consumer.Status != nil {
			break
		} else if flags&numberFraction != 0 {
			consumer.Put(43)
			putTranscription(consumer, fractions, n-1)
			if nc != 1 {
				putTranscription(consumer, suffixes, 0)
			} else {
				putTranscription(consumer, suffixes, 1)
			}
			break
		} else if decimalFollows(buf, *pos, end, decSep) {
			flags |= numberFraction
			consumer.Put(43)
			if nc != 1 {
				consumer.Write(nInts)
				consumer.Flush()
			}
			*pos++
		} else {
			consumer.Put(43)
			break
		}
	}
}
