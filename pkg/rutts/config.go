package rutts

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Flag is one bit of Config.Flags.
type Flag uint

const (
	// DecSepPoint enables '.' as a decimal-fraction separator in the
	// number speller.
	DecSepPoint Flag = 1 << iota

	// DecSepComma enables ',' as a decimal-fraction separator in the
	// number speller.
	DecSepComma

	// UseAlternativeVoice asks the host to select its secondary voice
	// table in place of the primary one. Voice selection happens before
	// Transfer is called, so the bit is informational to this package and
	// travels with the rest of the flags.
	UseAlternativeVoice
)

// Config is the full set of parameters one Transfer call runs against.
// Zero value is not meaningful; build one with DefaultConfig and
// override fields, or decode one with LoadConfig. Every field is an
// integer percentage with 100 meaning "default".
type Config struct {
	// SpeechRate scales duration inversely; the linear range is 40..250,
	// clamped outside it.
	SpeechRate int `yaml:"speech_rate"`

	// VoicePitch and Intonation drive the per-clause pitch range: Intonation
	// is a percentage spread around the VoicePitch center.
	VoicePitch int `yaml:"voice_pitch"`
	Intonation int `yaml:"intonation"`

	// GeneralGapFactor scales every inter-clause gap on top of its
	// per-punctuation factor below, as a percentage of the default (0-125).
	GeneralGapFactor int `yaml:"general_gap_factor"`

	// CommaGap, DotGap, SemicolonGap, ColonGap, QuestionGap, ExclamationGap
	// and DashGap scale the default inter-clause gap recorded for their
	// respective punctuation mark, as a percentage of the default.
	CommaGap       int `yaml:"comma_gap"`
	DotGap         int `yaml:"dot_gap"`
	SemicolonGap   int `yaml:"semicolon_gap"`
	ColonGap       int `yaml:"colon_gap"`
	QuestionGap    int `yaml:"question_gap"`
	ExclamationGap int `yaml:"exclamation_gap"`
	DashGap        int `yaml:"dash_gap"`

	// Flags is a bitmask of Flag values.
	Flags uint `yaml:"flags"`
}

// DefaultConfig returns a Config with every percentage at its neutral
// 100 and both decimal separators enabled.
func DefaultConfig() Config {
	return Config{
		SpeechRate:       100,
		VoicePitch:       100,
		Intonation:       100,
		GeneralGapFactor: 100,
		CommaGap:         100,
		DotGap:           100,
		SemicolonGap:     100,
		ColonGap:         100,
		QuestionGap:      100,
		ExclamationGap:   100,
		DashGap:          100,
		Flags:            uint(DecSepPoint | DecSepComma),
	}
}

// LoadConfig decodes a YAML configuration from r, starting from
// DefaultConfig so that a partial document still yields a usable Config.
// Unknown fields are rejected so a typo in a host's configuration file
// surfaces as an error instead of a silently ignored setting.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("rutts: decode config: %w", err)
	}
	return cfg, nil
}
