package hunter

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/tifye/haunted/assert"
	"github.com/tifye/haunted/events"
	"github.com/tifye/haunted/evidence"
	"github.com/tifye/haunted/house"
)

const (
	FearMax    = 10
	BoredomMax = 100
	// DesiredEvidence is how many distinct clues the hunters
	// need before they consider the ghost identified.
	DesiredEvidence = 3
)

type action uint8

const (
	actionCollect action = iota
	actionMove
	actionReview
)

type Options struct {
	Name      string
	Specialty evidence.Kind
	Start     *house.Room
	Shared    *evidence.List
	Rand      *rand.Rand
	// Idle delay before every iteration.
	Wait time.Duration
	Sink events.Sink
}

type Result struct {
	Name       string        `json:"name"`
	Specialty  evidence.Kind `json:"specialty"`
	Fear       int           `json:"fear"`
	Boredom    int           `json:"boredom"`
	Reason     events.Reason `json:"reason"`
	Iterations int           `json:"iterations"`
	// Clues this hunter removed from rooms, including those
	// already reported by someone else.
	Collected int `json:"collected"`
}

// Hunter is driven by a single goroutine. Its counters are
// only read by others after Run returns.
type Hunter struct {
	id        uuid.UUID
	name      string
	specialty evidence.Kind
	shared    *evidence.List
	rnd       *rand.Rand
	wait      time.Duration
	sink      events.Sink

	room       *house.Room
	fear       int
	boredom    int
	iterations int
	collected  int
	reason     events.Reason
}

// New creates a hunter and seats it in opts.Start.
func New(opts Options) *Hunter {
	assert.AssertNotEmpty(opts.Name)
	assert.AssertNotNil(opts.Start)
	assert.AssertNotNil(opts.Shared)
	assert.AssertNotNil(opts.Rand)
	assert.Assertf(opts.Specialty.Valid(), "invalid specialty %d", opts.Specialty)
	if opts.Sink == nil {
		opts.Sink = events.Discard
	}

	h := &Hunter{
		id:        uuid.New(),
		name:      opts.Name,
		specialty: opts.Specialty,
		shared:    opts.Shared,
		rnd:       opts.Rand,
		wait:      opts.Wait,
		sink:      opts.Sink,
		room:      opts.Start,
	}
	seated := h.room.AddHunter(h.occupant())
	assert.Assertf(seated, "no free slot for %s in %q", h.name, h.room.Name())
	h.emit(events.HunterInit, h.specialty.String())

	return h
}

func (h *Hunter) occupant() house.Occupant {
	return house.Occupant{ID: h.id, Name: h.name}
}

func (h *Hunter) ID() uuid.UUID {
	return h.id
}

func (h *Hunter) Name() string {
	return h.name
}

// Run loops until the hunter leaves for fear, boredom or
// sufficient evidence, or until ctx is done.
func (h *Hunter) Run(ctx context.Context) Result {
	timer := time.NewTimer(h.wait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			h.depart(events.ReasonInterrupted)
			return h.Result()
		case <-timer.C:
		}

		if reason, done := h.step(); done {
			h.depart(reason)
			return h.Result()
		}
		timer.Reset(h.wait)
	}
}

// step runs one iteration. It reports the departure reason
// when the hunter is done; the caller performs the departure.
func (h *Hunter) step() (events.Reason, bool) {
	h.iterations++

	if reason, leaving := h.checkLeaving(); leaving {
		return reason, true
	}

	switch action(h.rnd.IntN(3)) {
	case actionCollect:
		h.collect()
	case actionMove:
		h.move()
	case actionReview:
		if h.review() {
			return events.ReasonEvidence, true
		}
	}
	return events.ReasonNone, false
}

func (h *Hunter) checkLeaving() (events.Reason, bool) {
	if h.room.HasGhost() {
		h.fear++
		h.boredom = 0
		if h.fear >= FearMax {
			return events.ReasonFear, true
		}
		return events.ReasonNone, false
	}

	h.fear = 0
	h.boredom++
	if h.boredom >= BoredomMax {
		return events.ReasonBoredom, true
	}
	return events.ReasonNone, false
}

// collect takes one clue of the hunter's specialty from the
// room and reports it unless it is already known.
func (h *Hunter) collect() bool {
	if !h.room.Evidence().Remove(h.specialty) {
		return false
	}
	h.collected++
	h.emit(events.HunterCollect, h.specialty.String())
	h.shared.AddUnique(h.specialty)
	return true
}

// move gives up the current slot and then takes one in a
// neighbor. The two steps are separate critical sections.
func (h *Hunter) move() {
	next := h.room.SelectConnectedRoom(h.rnd, house.GuardHunters)
	removed := h.room.RemoveHunter(h.id)
	assert.Assertf(removed, "%s was not seated in %q", h.name, h.room.Name())
	seated := next.AddHunter(h.occupant())
	assert.Assertf(seated, "no free slot for %s in %q", h.name, next.Name())
	h.room = next
	h.emit(events.HunterMove, "")
}

func (h *Hunter) review() bool {
	sufficient := h.shared.Len() >= DesiredEvidence
	h.sink.Emit(events.Event{
		Kind:       events.HunterReview,
		Actor:      h.name,
		Room:       h.room.Name(),
		Sufficient: sufficient,
		At:         time.Now(),
	})
	return sufficient
}

func (h *Hunter) depart(reason events.Reason) {
	h.room.RemoveHunter(h.id)
	h.reason = reason
	h.sink.Emit(events.Event{
		Kind:   events.HunterExit,
		Actor:  h.name,
		Room:   h.room.Name(),
		Reason: reason,
		At:     time.Now(),
	})
}

func (h *Hunter) emit(kind events.Kind, clue string) {
	h.sink.Emit(events.Event{
		Kind:     kind,
		Actor:    h.name,
		Room:     h.room.Name(),
		Evidence: clue,
		At:       time.Now(),
	})
}

// Result is only meaningful once Run has returned.
func (h *Hunter) Result() Result {
	return Result{
		Name:       h.name,
		Specialty:  h.specialty,
		Fear:       h.fear,
		Boredom:    h.boredom,
		Reason:     h.reason,
		Iterations: h.iterations,
		Collected:  h.collected,
	}
}
