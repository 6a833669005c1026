package engine

import (
	"log/slog"

	"github.com/poretsky/ru-tts/internal/intonation"
	"github.com/poretsky/ru-tts/internal/sink"
	"github.com/poretsky/ru-tts/internal/transcribe"
)

// synthCallback builds the transcription sink's Consumer: each flush
// hands the Synth driver the clause's phoncode buffer, tagged with the
// clause type checkClauseTermination recorded for it. Chunked re-entry
// may itself re-flush mid-clause if a proclitic/enclitic boundary forces
// an early split; those intermediate flushes carry no clause type of
// their own; the engine only wants one recorded.
//
// The Consumer argument is always sliced to the sink's logical length
// (sink.Sink.Flush hands the consumer s.Buffer[:s.Offset]), but every
// downstream stage -- Synth's boundary scan, utterance.Build, the time
// planner -- walks the full fixed-size buffer relying on the idle fill
// (43) CustomReset leaves beyond the logical length. The callback must
// therefore drive Synth off the full backing buffer, using the chunk's
// length only to find where that logical content ends. It closes over the
// shared State so the clause type survives the boundary between the
// transcriber's sink and the engine's Synth call.
func synthCallback(e *Engine, buffer []byte, state *transcribe.State) sink.Consumer {
	return func(chunk []byte) error {
		length := len(chunk)
		clauseType := intonation.ClauseType(state.ClauseType)

		if length > transcribe.Start {
			if state.Done {
				state.Done = false
			} else {
				buffer[length] = 44
				clauseType = 0
			}
		}

		slog.Debug("clause transcribed", "bytes", length, "clause_type", clauseType)
		e.Synth(buffer, clauseType)
		return e.WaveConsumer.Status
	}
}

// Run transcribes text and synthesizes every clause it contains,
// delivering the result through e's wave consumer. e.Flags gates which
// decimal separators the number speller recognizes (see the DecSepPoint
// and DecSepComma bits in pkg/rutts). Voice, timing and intonation setup
// is the caller's responsibility (see pkg/rutts.Transfer).
func (e *Engine) Run(text []byte) error {
	state := &transcribe.State{}
	buffer := make([]byte, transcribe.BufferSize)
	s := transcribe.NewSink(buffer, synthCallback(e, buffer, state))

	t := transcribe.New(s, state)
	t.ProcessText(text, uint8(e.Flags))

	return s.Status
}
