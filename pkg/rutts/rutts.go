// Package rutts synthesizes KOI8-R encoded Russian text into raw PCM
// audio, one clause at a time, through a caller-supplied callback.
package rutts

import (
	"fmt"

	"github.com/poretsky/ru-tts/internal/engine"
	"github.com/poretsky/ru-tts/internal/intonation"
	"github.com/poretsky/ru-tts/internal/sink"
	"github.com/poretsky/ru-tts/internal/timing"
)

// Callback receives one flushed PCM chunk. A non-nil return aborts the
// synthesis in progress; Transfer returns that error.
type Callback func(samples []byte) error

// gapPunctuation lists, in Config field order, the separator each of the
// seven gap factors scales.
var gapPunctuation = [...]byte{',', '.', ';', ':', '?', '!', '-'}

// Transfer synthesizes text (KOI8-R encoded Russian, already segmented
// into clauses by its own punctuation) against voice and cfg, streaming
// PCM samples to callback as each clause is rendered. Chunks are sized by
// an internal 4 KiB wave buffer; use TransferBuffer to control chunk size.
func Transfer(text []byte, v *Voice, cfg Config, callback Callback) error {
	return TransferBuffer(text, v, cfg, make([]byte, 4096), callback)
}

// TransferBuffer is Transfer with a caller-supplied wave buffer: PCM
// chunks delivered to callback are at most len(wave) bytes, so the caller
// chooses its own latency/overhead balance.
func TransferBuffer(text []byte, v *Voice, cfg Config, wave []byte, callback Callback) error {
	if v == nil {
		return fmt.Errorf("rutts: transfer: voice is required")
	}
	if len(wave) == 0 {
		return fmt.Errorf("rutts: transfer: wave buffer must not be empty")
	}

	t := timing.Setup(cfg.SpeechRate, cfg.GeneralGapFactor)
	gaps := [len(gapPunctuation)]int{
		cfg.CommaGap, cfg.DotGap, cfg.SemicolonGap, cfg.ColonGap,
		cfg.QuestionGap, cfg.ExclamationGap, cfg.DashGap,
	}
	for i, sep := range gapPunctuation {
		t.AdjustGap(sep, gaps[i])
	}

	mod := intonation.Setup(v, uint(cfg.VoicePitch), uint(cfg.Intonation))

	waveSink := sink.New(wave, sink.Consumer(callback))

	e := &engine.Engine{
		Voice:        v,
		Timing:       t,
		Modulation:   mod,
		WaveConsumer: waveSink,
		Flags:        cfg.Flags,
	}

	if err := e.Run(text); err != nil {
		return fmt.Errorf("rutts: transfer: %w", err)
	}
	waveSink.Flush()
	return waveSink.Status
}
