package ghost

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

const BoredomMax = 100

type action uint8

const (
	actionLeaveEvidence action = iota
	actionIdle
	actionMove
)

type Options struct {
	Class Class
	Start *house.Room
	Rand  *rand.Rand
	// Idle delay before every iteration.
	Wait time.Duration
	Sink events.Sink
}

type Result struct {
	Class      Class         `json:"class"`
	Room       string        `json:"room"`
	Boredom    int           `json:"boredom"`
	Reason     events.Reason `json:"reason"`
	Iterations int           `json:"iterations"`
}

// Ghost is driven by a single goroutine. Only the room slots it
// occupies are visible to other actors.
type Ghost struct {
	id    uuid.UUID
	class Class
	rnd   *rand.Rand
	wait  time.Duration
	sink  events.Sink

	room       *house.Room
	boredom    int
	iterations int
	reason     events.Reason
}

// New places a ghost of the given class in opts.Start.
func New(opts Options) *Ghost {
	assert.AssertNotNil(opts.Start)
	assert.AssertNotNil(opts.Rand)
	assert.Assertf(opts.Class < NumClasses, "invalid ghost class %d", opts.Class)
	if opts.Sink == nil {
		opts.Sink = events.Discard
	}

	g := &Ghost{
		id:    uuid.New(),
		class: opts.Class,
		rnd:   opts.Rand,
		wait:  opts.Wait,
		sink:  opts.Sink,
		room:  opts.Start,
	}
	g.room.SetGhost(g.occupant())
	g.emit(events.GhostInit, "")

	return g
}

func (g *Ghost) occupant() house.Occupant {
	return house.Occupant{ID: g.id, Name: g.class.String()}
}

func (g *Ghost) ID() uuid.UUID {
	return g.id
}

func (g *Ghost) Class() Class {
	return g.class
}

// Run loops until the ghost gets bored or ctx is done.
func (g *Ghost) Run(ctx context.Context) Result {
	timer := time.NewTimer(g.wait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			g.depart(events.ReasonInterrupted)
			return g.Result()
		case <-timer.C:
		}

		if g.step() {
			return g.Result()
		}
		timer.Reset(g.wait)
	}
}

// step runs one iteration and reports whether the ghost left.
func (g *Ghost) step() bool {
	g.iterations++

	var choice action
	if g.room.HasHunters() {
		g.boredom = 0
		choice = action(g.rnd.IntN(3))
	} else {
		g.boredom++
		// Two of the four outcomes are a move.
		choice = min(action(g.rnd.IntN(4)), actionMove)
		if g.boredom >= BoredomMax {
			g.depart(events.ReasonBoredom)
			return true
		}
	}

	switch choice {
	case actionLeaveEvidence:
		g.leaveEvidence()
	case actionIdle:
	case actionMove:
		g.move()
	}
	return false
}

func (g *Ghost) leaveEvidence() evidence.Kind {
	var kind evidence.Kind
	for {
		kind = evidence.Kind(g.rnd.IntN(evidence.NumKinds))
		if g.class.CanLeave(kind) {
			break
		}
	}
	g.room.Evidence().Add(kind)
	g.emit(events.GhostEvidence, kind.String())
	return kind
}

// move leaves the current room and enters a neighbor in two
// separate critical sections. Between them no room holds the ghost.
func (g *Ghost) move() {
	next := g.room.SelectConnectedRoom(g.rnd, house.GuardGhost)
	cleared := g.room.ClearGhost(g.id)
	assert.Assertf(cleared, "ghost was not in %q", g.room.Name())
	next.SetGhost(g.occupant())
	g.room = next
	g.emit(events.GhostMove, "")
}

func (g *Ghost) depart(reason events.Reason) {
	g.room.ClearGhost(g.id)
	g.reason = reason
	g.sink.Emit(events.Event{
		Kind:   events.GhostExit,
		Actor:  g.class.String(),
		Room:   g.room.Name(),
		Reason: reason,
		At:     time.Now(),
	})
}

func (g *Ghost) emit(kind events.Kind, clue string) {
	g.sink.Emit(events.Event{
		Kind:     kind,
		Actor:    g.class.String(),
		Room:     g.room.Name(),
		Evidence: clue,
		At:       time.Now(),
	})
}

// Result is only meaningful once Run has returned.
func (g *Ghost) Result() Result {
	return Result{
		Class:      g.class,
		Room:       g.room.Name(),
		Boredom:    g.boredom,
		Reason:     g.reason,
		Iterations: g.iterations,
	}
}
