// Package voice defines the prerecorded sound-unit table every synthesis
// stage that needs raw samples reads from.
package voice

import "fmt"

// Dimension is the number of distinct sound identifiers a Voice can
// address, one more than the highest id the sound producer ever looks up.
const Dimension = 201

// Threshold divides "short" patterns -- stretched or cross-mixed by the
// sound producer -- from "long" ones, which are copied verbatim.
const Threshold = 105

// Voice holds one speaker's prerecorded sound-unit table. It is immutable
// once built and may be shared read-only across concurrent synthesis
// calls.
//
// The recorded sample payloads themselves are a data asset the host
// supplies; Voice only defines the layout that data must satisfy and
// validates it on construction.
type Voice struct {
	// PitchFactor scales the base pitch computation alongside the
	// configured voice pitch; each voice variant (male, female, ...)
	// carries its own.
	PitchFactor uint

	// SoundOffsets maps a sound id to the starting index of its pattern in
	// Samples.
	SoundOffsets [Dimension]uint16

	// SoundLengths maps a sound id to the length in samples of its
	// pattern.
	SoundLengths [Dimension]uint16

	// Samples is the flat pool of signed 8-bit PCM samples every id's
	// pattern is sliced out of.
	Samples []int8
}

// New validates that every declared sound pattern fits inside samples --
// for every id in use, SoundOffsets[id]+SoundLengths[id] must not exceed
// len(samples) -- and returns the assembled Voice.
func New(pitchFactor uint, offsets, lengths [Dimension]uint16, samples []int8) (*Voice, error) {
	for id := range offsets {
		if lengths[id] == 0 {
			continue
		}
		if int(offsets[id])+int(lengths[id]) > len(samples) {
			return nil, fmt.Errorf("voice: sound %d spans [%d,%d) beyond %d available samples",
				id, offsets[id], int(offsets[id])+int(lengths[id]), len(samples))
		}
	}
	return &Voice{
		PitchFactor:  pitchFactor,
		SoundOffsets: offsets,
		SoundLengths: lengths,
		Samples:      samples,
	}, nil
}

// Pattern returns the sample slice recorded for sound id.
func (v *Voice) Pattern(id uint8) []int8 {
	return v.Samples[v.SoundOffsets[id] : v.SoundOffsets[id]+v.SoundLengths[id]]
}
