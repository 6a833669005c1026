// Package sink implements the buffered byte consumer shared by every stage
// that hands finished output to a caller-supplied callback: the transcriber
// (flushing clause transcriptions) and the sound producer (flushing PCM
// chunks).
package sink

// Consumer is invoked once per flush with the buffered bytes. A non-nil
// return latches the sink's Status and suppresses further invocations --
// the only cancellation signal in the whole pipeline.
type Consumer func(chunk []byte) error

// Resetter performs a custom reset action in place of simply zeroing the
// buffer offset. The transcription sink uses this to refill its buffer
// with idle phoncodes and restore its two-byte prefix.
type Resetter func(s *Sink)

// Sink is a byte buffer with a latched terminal status. Once Status is
// non-nil, the consumer callback is never invoked again, but the buffer
// remains safe to write to -- callers must poll Status to exit promptly.
type Sink struct {
	Buffer []byte
	Offset int

	// FlushThreshold is the offset at which Put/Write auto-flush. Zero
	// means len(Buffer). The transcription sink sets this below
	// len(Buffer) so a single over-long block write can still land
	// safely in the guard space past the nominal limit.
	FlushThreshold int

	consumer    Consumer
	CustomReset Resetter
	Status      error
}

// New creates a Sink backed by buffer, invoking consumer on every flush.
func New(buffer []byte, consumer Consumer) *Sink {
	return &Sink{Buffer: buffer, consumer: consumer}
}

func (s *Sink) threshold() int {
	if s.FlushThreshold > 0 {
		return s.FlushThreshold
	}
	return len(s.Buffer)
}

// Reset invokes CustomReset if set, otherwise simply zeros the offset.
func (s *Sink) Reset() {
	if s.CustomReset != nil {
		s.CustomReset(s)
	} else {
		s.Offset = 0
	}
}

// Flush hands the buffered bytes to the consumer callback when there is
// anything to hand over, latches Status on a non-nil return, and always
// resets afterward. Once Status is latched the consumer is never invoked
// again; the buffered bytes are discarded by the reset.
func (s *Sink) Flush() {
	if s.consumer != nil && s.Offset > 0 && s.Status == nil {
		s.Status = s.consumer(s.Buffer[:s.Offset])
	}
	s.Reset()
}

// Put appends one byte, flushing if the buffer is now full.
func (s *Sink) Put(b byte) {
	s.Buffer[s.Offset] = b
	s.Offset++
	if s.Offset >= s.threshold() {
		s.Flush()
	}
}

// Write appends a block of bytes, flushing if the buffer is now full.
//
// The copy is not bounds-checked before it happens: callers (the number
// speller and the transcription block writer) must ensure the guard
// space at the tail of the buffer exceeds any single atomic write they
// make.
func (s *Sink) Write(block []byte) {
	copy(s.Buffer[s.Offset:], block)
	s.Offset += len(block)
	if s.Offset >= s.threshold() {
		s.Flush()
	}
}

// Back erases the last byte by decrementing the offset, if non-zero.
func (s *Sink) Back() {
	if s.Offset > 0 {
		s.Offset--
	}
}

// Replace erases the last byte and appends b in its place.
func (s *Sink) Replace(b byte) {
	s.Back()
	s.Put(b)
}

// Last returns the last byte in the buffer, or -1 if the buffer is empty.
func (s *Sink) Last() int {
	if s.Offset == 0 {
		return -1
	}
	return int(s.Buffer[s.Offset-1])
}
