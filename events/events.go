package events

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tifye/haunted/assert"
)

type Kind string

const (
	HunterInit    Kind = "hunter:init"
	HunterMove    Kind = "hunter:move"
	HunterCollect Kind = "hunter:collect"
	HunterReview  Kind = "hunter:review"
	HunterExit    Kind = "hunter:exit"
	GhostInit     Kind = "ghost:init"
	GhostMove     Kind = "ghost:move"
	GhostEvidence Kind = "ghost:evidence"
	GhostExit     Kind = "ghost:exit"
)

// Reason is why an actor left the house.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonFear        Reason = "fear"
	ReasonBoredom     Reason = "boredom"
	ReasonEvidence    Reason = "evidence"
	ReasonInterrupted Reason = "interrupted"
)

type Event struct {
	Kind     Kind   `json:"kind"`
	Actor    string `json:"actor"`
	Room     string `json:"room,omitempty"`
	Evidence string `json:"evidence,omitempty"`
	Reason   Reason `json:"reason,omitempty"`
	// Set on review events.
	Sufficient bool      `json:"sufficient,omitzero"`
	At         time.Time `json:"at"`
}

// Sink receives events from actors. Emit is called
// concurrently from every actor goroutine.
type Sink interface {
	Emit(e Event)
}

type SinkFunc func(e Event)

func (f SinkFunc) Emit(e Event) {
	f(e)
}

var Discard Sink = SinkFunc(func(Event) {})

type Fanout []Sink

func (f Fanout) Emit(e Event) {
	for _, s := range f {
		s.Emit(e)
	}
}

type LogSink struct {
	logger *log.Logger
}

func NewLogSink(logger *log.Logger) *LogSink {
	assert.AssertNotNil(logger)
	return &LogSink{logger: logger}
}

func (s *LogSink) Emit(e Event) {
	switch e.Kind {
	case HunterInit:
		s.logger.Info("Hunter initialized", "hunter", e.Actor, "equipment", e.Evidence, "room", e.Room)
	case HunterMove:
		s.logger.Info("Hunter moved", "hunter", e.Actor, "room", e.Room)
	case HunterCollect:
		s.logger.Info("Hunter collected evidence", "hunter", e.Actor, "evidence", e.Evidence, "room", e.Room)
	case HunterReview:
		s.logger.Debug("Hunter reviewed evidence", "hunter", e.Actor, "sufficient", e.Sufficient)
	case HunterExit:
		s.logger.Info("Hunter left the house", "hunter", e.Actor, "reason", e.Reason)
	case GhostInit:
		s.logger.Info("Ghost initialized", "class", e.Actor, "room", e.Room)
	case GhostMove:
		s.logger.Debug("Ghost moved", "room", e.Room)
	case GhostEvidence:
		s.logger.Debug("Ghost left evidence", "evidence", e.Evidence, "room", e.Room)
	case GhostExit:
		s.logger.Info("Ghost left the house", "reason", e.Reason)
	default:
		s.logger.Warn("unknown event", "kind", e.Kind, "actor", e.Actor)
	}
}

// Recorder keeps every event it receives. Used to inspect
// a finished game.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]Event, len(r.events))
	copy(events, r.events)
	return events
}

// Filter returns the recorded events of the given kind.
func (r *Recorder) Filter(kind Kind) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var events []Event
	for _, e := range r.events {
		if e.Kind == kind {
			events = append(events, e)
		}
	}
	return events
}
