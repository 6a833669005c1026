package rutts

import "github.com/poretsky/ru-tts/internal/voice"

// VoiceDimension is the number of distinct sound identifiers a Voice can
// address, one more than the highest id the sound producer ever looks up.
const VoiceDimension = voice.Dimension

// VoiceThreshold divides "short" patterns -- stretched or cross-mixed by
// the sound producer -- from "long" ones, which are copied verbatim.
const VoiceThreshold = voice.Threshold

// Voice holds one speaker's prerecorded sound-unit table. See
// internal/voice for the full field documentation; it is re-exported here
// as the only voice-data type callers of this module need.
type Voice = voice.Voice

// NewVoice validates that every declared sound pattern fits inside
// samples and returns the assembled Voice.
func NewVoice(pitchFactor uint, offsets, lengths [VoiceDimension]uint16, samples []int8) (*Voice, error) {
	return voice.New(pitchFactor, offsets, lengths, samples)
}
