// Package utterance expands a clause's phoncode transcription into the
// ordered list of sound units the rest of the pipeline times and voices.
package utterance

import (
	"github.com/poretsky/ru-tts/internal/soundscript"
	"github.com/poretsky/ru-tts/internal/transcribe"
)

// soundset1 and soundset2 shade a vocalic nucleus's onset, steady and
// release offsets according to the consonant that precedes it, indexed by
// that consonant's phoncode minus 6; soundset3 and soundset4 shade a
// narrow group of consonant codas by the vocalic phoncode that follows.
// The offsets have no meaning independent of the decision tree below.
var soundset1 = [36]uint8{
	0, 0, 0, 0, 5, 5,
	5, 5, 0, 0, 0, 5,
	5, 5, 0, 0, 0, 5,
	5, 5, 0, 0, 0, 5,
	5, 5, 0, 5, 0, 0,
	0, 5, 5, 5, 0, 5,
}

var soundset2 = [36]uint8{
	10, 20, 20, 20, 70, 50,
	60, 60, 40, 10, 20, 80,
	50, 60, 10, 20, 30, 50,
	60, 70, 10, 20, 30, 50,
	60, 70, 20, 60, 10, 20,
	20, 50, 60, 60, 30, 70,
}

var soundset3 = [6]uint8{134, 134, 131, 119, 119, 119}
var soundset4 = [6]uint8{148, 148, 147, 145, 145, 145}

// next returns transcription[i], or the idle fill once i runs past the
// buffer, so lookahead at the very end of an unterminated transcription
// stays well defined.
func next(transcription []byte, i int) uint8 {
	if i < len(transcription) {
		return transcription[i]
	}
	return 43
}

// Build expands a clause phoncode transcription into a sound script. The
// decision tree's offsets only make sense read together with the tables
// above; restructuring it would obscure which branch owns which offset.
func Build(transcription []byte, script *soundscript.Script) {
	i := transcribe.Start
	a := uint8(43)
	c := transcription[i]

	for a < 44 && i < transcribe.BufferSize {
		var flags uint8
		var j int

		for j = i; j < transcribe.BufferSize; j++ {
			if transcription[j] != 43 {
				if transcription[j] < 43 {
					for j++; j < transcribe.BufferSize; j++ {
						if transcription[j] > 42 {
							if transcription[j] == 53 || transcription[j] == 54 {
								flags |= 2
							}
							break
						}
					}
				}
				break
			}
		}

		for i < transcribe.BufferSize {
			b := a
			a = c
			if a > 43 {
				break
			}
			flags &^= 1

			for i < transcribe.BufferSize {
				i++
				c = next(transcription, i)
				if c < 53 {
					break
				}
				flags |= 1
			}

			switch {
			case a == 43:
				script.Put(190, 2)
				goto next

			case a > 5:
				switch {
				case a > 13:
					switch {
					case a > 19:
						switch {
						case a > 31:
							switch {
							case a > 41:
								script.Put(189, 2)
							case a < 34:
								script.Put(a+143, 2)
								script.Put(a+145, 3)
							case a < 40 || a == 41 || c > 5:
								script.Put(a+145, 2)
							default:
								script.Put(a+soundset4[c], 2)
							}
						default:
							script.Put(a+143, 2)
							switch {
							case a < 29:
								switch {
								case a < 26:
									if a < 23 && c < 6 {
										script.Put(a+soundset3[c], 3)
									} else {
										script.Put(a+119, 3)
									}
								case c < 6:
									script.Put(a+soundset3[c], 3)
								default:
									script.Put(a+119, 3)
								}
							default:
								script.Put(a+119, 3)
							}
						}
					default:
						script.Put(a+119, 2)
					}
				default:
					if b > 13 {
						script.Put(a+99, 1)
					}
					if a != 10 || next(transcription, i+1) > 52 || (c > 5 && c < 44) {
						script.Put(a+117, 2)
						if c > 13 {
							script.Put(a+99, 3)
						}
					} else {
						script.Put(122, 2)
					}
				}

			default:
				j = 90
				if b > 5 {
					if b < 42 {
						j = int(soundset2[b-6])
					}
					if a == 5 {
						j--
					}
				} else if a != 5 {
					j = 95
				} else {
					j = 99
				}
				script.Put(a+uint8(j), 1)

				if flags != 2 {
					if b > 5 && b < 42 {
						j = int(soundset1[b-6])
						if a == 5 {
							j--
						}
					} else if a != 5 {
						j = 0
					} else {
						j = 4
					}
					script.Put(a+uint8(j), 2)
				}

				if b > 5 && b < 42 {
					base := uint8(95)
					if a == 5 {
						base = 94
					}
					script.Put(a+soundset1[b-6]+base, 3)
				} else if a != 5 {
					script.Put(a+95, 3)
				} else {
					script.Put(a+99, 3)
				}

				if c > 5 {
					if c != 42 {
						if c == 43 {
							jj := next(transcription, i+1)
							if jj > 5 {
								if jj < 42 {
									off := uint8(5)
									if a == 5 {
										off = 4
									}
									script.Put(a+soundset2[jj-6]+off, 4)
								} else {
									if a != 5 {
										script.Put(a+90, 4)
									} else {
										script.Put(a+89, 4)
									}
								}
							} else if b > 5 {
								if a != 5 {
									script.Put(a+95, 4)
								} else {
									script.Put(a+99, 4)
								}
							}
						} else if c > 43 {
							if a != 5 {
								script.Put(a+90, 4)
							} else {
								script.Put(a+89, 4)
							}
						} else {
							off := uint8(5)
							if a == 5 {
								off = 4
							}
							script.Put(a+soundset2[c-6]+off, 4)
						}
					} else {
						if a != 5 {
							script.Put(a+90, 4)
						} else {
							script.Put(a+89, 4)
						}
					}
				} else if b > 5 {
					if a != 5 {
						script.Put(a+95, 4)
					} else {
						script.Put(a+99, 4)
					}
				}
			}
		}
	next:
	}

	if i >= transcribe.BufferSize {
		a = 44
	}
	script.Put(a+147, 2)
}
