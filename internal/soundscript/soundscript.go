// Package soundscript defines the sound-unit list every pipeline stage
// after the utterance builder reads and annotates in place.
package soundscript

// MaxSounds bounds the number of sound units a single clause's script can
// hold.
const MaxSounds = 1000

// Stages is the number of intonation control blocks a script carries, one
// per pitch-plan stage.
const Stages = 12

// TimePlanRows is the number of rows in a clause's timing draft.
const TimePlanRows = 9

// Unit is one sound to be produced: a sound id, the pitch-plan stage it
// belongs to, and (once the speech-rate applier has run) its duration in
// samples.
type Unit struct {
	ID       uint8
	Stage    uint8
	Duration uint16
}

// ICB (intonation control block) carries the pitch-contour parameters the
// sound producer applies to every unit tagged with the block's stage.
type ICB struct {
	Stretch uint8
	Delta   int8
	Count   uint8
	Period  uint8
}

// Script is the sound-mastering plan for one clause: the ordered list of
// units the utterance builder produced, annotated in place by the time
// planner, speech-rate applier and intonation applier before the sound
// producer consumes it.
type Script struct {
	Units []Unit
	ICBs  [Stages]ICB
}

// Put appends a sound unit with the given id and stage, silently dropping
// it once the script has reached MaxSounds units.
func (s *Script) Put(id, stage uint8) {
	if len(s.Units) >= MaxSounds {
		return
	}
	s.Units = append(s.Units, Unit{ID: id, Stage: stage})
}
