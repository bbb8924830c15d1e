// Package audio drives a decode pipeline just far enough to collect tags,
// duration and modification time for a resource, without decoding content.
package audio

import (
	"time"

	"github.com/henningko/mopidy/internal/tags"
)

// State is a pipeline state target.
type State int

const (
	StateNull State = iota
	StateReady
	StatePaused
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateNull:
		return "null"
	case StateReady:
		return "ready"
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	}
	return "unknown"
}

// StateChange is the outcome of a state transition request.
type StateChange int

const (
	// StateChangeSuccess means the transition completed (or will complete
	// asynchronously, signalled later by a StateSettled event).
	StateChangeSuccess StateChange = iota
	// StateChangeNoPreroll means the source cannot pre-roll (live or
	// unseekable streams); the caller should advance to playing instead.
	StateChangeNoPreroll
)

// Event is one message from the pipeline's event stream.
// Concrete types: ErrorEvent, EOSEvent, StateSettledEvent, TagEvent.
// Unknown event types are ignored by the scanner.
type Event interface {
	event()
}

// ErrorEvent reports a decode error. It terminates collection.
type ErrorEvent struct {
	Message string
}

// EOSEvent signals end of stream.
type EOSEvent struct{}

// StateSettledEvent signals that an asynchronous state transition finished.
// Only events with FromPipeline set terminate collection; child elements
// settle independently while the graph may still be negotiating.
type StateSettledEvent struct {
	FromPipeline bool
}

// TagEvent carries a batch of decoded tags.
type TagEvent struct {
	Tags map[string]tags.Value
}

func (ErrorEvent) event()        {}
func (EOSEvent) event()          {}
func (StateSettledEvent) event() {}
func (TagEvent) event()          {}

// Engine is the capability surface the scanner needs from a decode backend.
// Implementations are not safe for concurrent use; a Scanner owns its
// engine exclusively.
type Engine interface {
	// Reset brings the pipeline to its ready baseline, dropping any state
	// left over from a previous target.
	Reset() error

	// SetURI binds the resource to decode.
	SetURI(uri string) error

	// SetCaps restricts the media types the pipeline accepts.
	SetCaps(caps string)

	// SetState requests a transition to the target state.
	SetState(target State) (StateChange, error)

	// PollEvent returns the next pending event without blocking.
	// The second return is false when no event is pending.
	PollEvent() (Event, bool)

	// QueryDuration returns the media duration if the pipeline can
	// determine it.
	QueryDuration() (time.Duration, bool)

	// SetFlushing suspends (true) or resumes (false) event delivery.
	// While flushing, pending events are dropped.
	SetFlushing(flushing bool)
}
