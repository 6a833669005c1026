package transcribe

// Character classes the transcriber recognizes. Text is normalized into
// this internal alphabet before anything else runs: digits, a handful of
// punctuation marks and the letters table below, which maps koi8-r
// Cyrillic bytes (192 and up) onto plain 7-bit codes the rest of the
// pipeline switches on.
const (
	// punctuations are the marks that can end a clause.
	punctuations = ",.;:?!-"

	// symbols are every punctuation/bracket byte the preprocessor passes
	// through (subject to the clause-start rules); its first 7 bytes
	// (" ,.;:?!") are the leading separators a clause may start with, and
	// bytes 1..6 (",.;:?!") are the clause-terminating subset.
	symbols = " ,.;:?!()-+=\"$%&*"

	// charList indexes transcription blocks 0..41 by position: entries
	// 0..16 are letters a lone recognized letter expands to directly, and
	// entries 27..41 are symbols spelled out as words.
	charList = "TNRLMDPZG^JH_WC[FOE\\UQYX]`a'-*()%\"/&$><@+="

	// blanks are special bytes treated as plain spaces.
	blanks = "\t#'/<>@"

	// letters maps a koi8-r Cyrillic byte's low 5 bits ((b-192)&31) to its
	// internal single-byte representation.
	letters = "`ABCDEFGHIJKLMNOPQRSTU_VXYZWa[^]+="

	// consonants, vocalics, ndts and bgdjz classify the internal letters
	// above by phonetic role.
	consonants = "JMNRL^HC[WSPFTK_ZBVDG"
	vocalics   = "`EI\\QUaYOA"
	ndts       = "NDTS"
	bgdjz      = "BGD_Z"
)

// clauseStartSeparators is symbols[:7], the separators skipped at the
// start of each clause.
var clauseStartSeparators = symbols[:7]

// terminatingPunctuation is symbols[1:7], the six punctuation bytes
// checkClauseTermination recognizes.
var terminatingPunctuation = symbols[1:7]

// softConsonantLookahead is consonants[5:15], the ten consonants that
// force an unvoiced hard consonant regardless of voicing rules.
var softConsonantLookahead = consonants[5:15]

// glottalStopVowels are the vowels that take a leading j-glide (phoncode
// 10) at a word start or after another vocalic.
const glottalStopVowels = "`QE\\"

// softVocalics is vocalics[:5], the five soft vowels that palatalize a
// preceding consonant.
var softVocalics = vocalics[:5]

// vocalPhoncodes maps a vocalics index modulo 5 to its base vocalic
// phoncode.
var vocalPhoncodes = [5]uint8{0, 3, 4, 1, 2}

// ndtsSoftPhs gives the soft phoncode replacement for a preceding N, D, T
// or S when the N, D, T or S after it is followed by a soft vowel or the
// letter X.
var ndtsSoftPhs = [4]uint8{19, 24, 30, 38}

// hardConsonantPhs and softConsonantPhs give each consonant's hard and
// soft phoncode by its index into consonants; the first 15 entries of
// each pair off by a fixed +6 voiced/unvoiced shift (see voicify).
var hardConsonantPhs = [21]uint8{
	10, 15, 16, 8, 14, 33, 40, 32, 39,
	36, 35, 26, 34, 27, 28,
	9, 7, 20, 6, 21, 22,
}
var softConsonantPhs = [21]uint8{
	10, 18, 19, 13, 17, 33, 41, 32, 39,
	36, 38, 29, 37, 30, 31,
	9, 12, 23, 11, 24, 25,
}

// transcriptionBlocks is the flat, length-prefixed table of predefined
// phoncode sequences a single recognized letter or accented suffix
// expands to. Entries 42..51 are the accented-suffix blocks (O+GO, OGO+,
// OGO, E+GO, EGO+, EGO twice over for the hard/soft-preceding-consonant
// variants, and TSQ/TXSQ).
var transcriptionBlocks = []uint8{
	3, 27, 3, 53,
	3, 3, 53, 16,
	3, 3, 53, 8,
	3, 3, 53, 17,
	3, 3, 53, 15,
	3, 21, 3, 53,
	3, 26, 3, 53,
	3, 7, 3, 53,
	3, 22, 3, 53,
	3, 33, 3, 53,
	10, 5, 28, 8, 2, 53, 27, 28, 2, 10, 3,
	3, 40, 2, 53,
	3, 9, 3, 53,
	3, 36, 2, 53,
	3, 32, 3, 53,
	3, 39, 2, 53,
	3, 3, 53, 34,
	2, 1, 53,
	3, 10, 3, 53,
	3, 10, 1, 53,
	2, 0, 53,
	3, 10, 2, 53,
	2, 4, 53,
	13, 18, 2, 53, 40, 28, 5, 10, 43, 7, 16, 2, 53, 28,
	14, 27, 11, 1, 53, 8, 21, 4, 10, 43, 7, 16, 2, 53, 28,
	3, 10, 0, 53,
	2, 3, 53,
	8, 28, 2, 6, 4, 53, 33, 31, 5,
	0,
	8, 0, 15, 16, 1, 53, 9, 5, 30,
	15, 2, 27, 28, 8, 4, 53, 30, 43, 35, 28, 1, 53, 26, 28, 0,
	15, 7, 2, 28, 8, 4, 53, 30, 43, 35, 28, 1, 53, 26, 28, 0,
	10, 26, 8, 2, 32, 3, 53, 16, 27, 2, 34,
	8, 28, 2, 6, 4, 53, 33, 31, 5,
	5, 21, 8, 1, 53, 23,
	10, 2, 15, 26, 3, 8, 35, 3, 53, 16, 21,
	8, 21, 1, 53, 14, 2, 8, 2, 34,
	6, 20, 1, 53, 17, 36, 3,
	6, 18, 3, 53, 19, 36, 3,
	9, 26, 2, 8, 2, 53, 22, 8, 2, 34,
	5, 29, 17, 0, 53, 35,
	11, 8, 2, 6, 19, 2, 53, 10, 3, 27, 38, 2,

	4, 1, 53, 6, 2, // 42: O+GO
	4, 2, 6, 1, 53, // 43: OGO+
	3, 2, 6, 2, // 44: OGO
	4, 3, 53, 6, 2, // 45: E+GO (1)
	4, 3, 6, 1, 53, // 46: EGO+ (1)
	3, 3, 6, 2, // 47: EGO (1)
	5, 10, 3, 53, 6, 2, // 48: E+GO (2)
	5, 10, 3, 6, 1, 53, // 49: EGO+ (2)
	4, 10, 3, 6, 2, // 50: EGO (2)
	3, 27, 35, 2, // 51: TSQ/TXSQ
}

// pair packs a punctuation byte followed by the punctuation or space that
// immediately follows it into the key checkClauseTermination looks up.
func pair(a, b byte) uint16 { return uint16(a)<<8 | uint16(b) }

// clauseTerminations enumerates the sixteen punctuation pairs that close a
// clause; its index (masked to 0xF) becomes the clause type intonation.Apply
// uses to pick a pitch plan.
var clauseTerminations = [16]uint16{
	pair(',', ' '), pair(',', ','), pair(',', ';'), pair(',', ':'), pair(',', '-'),
	pair('.', ' '), pair('.', '.'),
	pair(';', ' '),
	pair(':', ' '), pair('.', ':'),
	pair('?', ' '), pair('?', '.'), pair('?', ','),
	pair('!', ' '), pair('!', '.'), pair('!', ','),
}

// listItem walks n length-prefixed entries into lst and returns the item
// found: its first byte is the item's own length, followed by its bytes.
// The number speller's tables use the same encoding.
func listItem(lst []uint8, n uint8) []uint8 {
	item := lst
	for i := uint8(0); i < n; i++ {
		item = item[item[0]+1:]
	}
	return item
}
