// Package phoncode defines the byte-sized phonetic alphabet that flows
// between every stage of the synthesis pipeline.
//
// A Code is never modeled as an enumeration: every consumer in this module
// tests it against a load-bearing range (vocalic nuclei, consonants, gaps,
// clause terminators, stress marks), so a plain byte newtype with range
// predicates is the closest idiomatic fit.
package phoncode

// Code is one phonetic atom in the internal 0..54 alphabet produced by the
// transcriber and consumed by the utterance builder, time planner,
// intonation applier and sound producer.
type Code uint8

// Named boundaries and fill values. Ranges, not individual values, carry
// meaning throughout the pipeline.
const (
	// VocalicMax is the highest phoncode that denotes a vocalic nucleus or
	// the soft-sign marker (0..5).
	VocalicMax Code = 5

	// ConsonantMin and ConsonantMax bound the consonant phoncodes and their
	// voiced/unvoiced/soft variants (6..41).
	ConsonantMin Code = 6
	ConsonantMax Code = 41

	// SoftGap is the word-internal soft gap phoncode.
	SoftGap Code = 42

	// Idle is the inter-word gap fill value; it is also the value every
	// transcription buffer byte is initialized to.
	Idle Code = 43

	// ClauseTerminatorMin and ClauseTerminatorMax bound the nine real
	// clause-terminator phoncodes, one per recognized punctuation pair.
	ClauseTerminatorMin Code = 44
	ClauseTerminatorMax Code = 52

	// StrongStress and WeakStress mark a preceding vocalic as accented.
	StrongStress Code = 53
	WeakStress   Code = 54
)

// IsVocalic reports whether c is a vocalic nucleus or the soft-sign marker.
func (c Code) IsVocalic() bool { return c <= VocalicMax }

// IsConsonant reports whether c is a consonant phoncode (hard, soft, voiced
// or unvoiced variant).
func (c Code) IsConsonant() bool { return c >= ConsonantMin && c <= ConsonantMax }

// IsGap reports whether c is the word-internal soft gap or the inter-word
// idle fill.
func (c Code) IsGap() bool { return c == SoftGap || c == Idle }

// IsClauseTerminator reports whether c is one of the nine real
// clause-terminator phoncodes.
func (c Code) IsClauseTerminator() bool {
	return c >= ClauseTerminatorMin && c <= ClauseTerminatorMax
}

// IsStress reports whether c marks strong or weak stress.
func (c Code) IsStress() bool { return c == StrongStress || c == WeakStress }
