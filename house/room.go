package house

import (
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"github.com/tifye/haunted/assert"
	"github.com/tifye/haunted/evidence"
)

// MaxHunters is the number of occupancy slots in a room.
const MaxHunters = 4

// Occupant identifies an actor inside a room. The zero
// value marks an empty slot.
type Occupant struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (o Occupant) Empty() bool {
	return o.ID == uuid.Nil
}

// Guard names which of a room's locks serializes
// destination selection.
type Guard uint8

const (
	GuardHunters Guard = iota
	GuardGhost
)

type Room struct {
	name string
	// Set during setup and never modified afterwards.
	neighbors []*Room

	evidence *evidence.List

	huntersMu sync.Mutex
	hunters   [MaxHunters]Occupant

	ghostMu sync.Mutex
	ghost   Occupant
}

func NewRoom(name string) *Room {
	assert.AssertNotEmpty(name)
	return &Room{
		name:      name,
		neighbors: []*Room{},
		evidence:  evidence.NewList(),
	}
}

// Connect adds an undirected edge between a and b.
func Connect(a, b *Room) {
	assert.AssertNotNil(a)
	assert.AssertNotNil(b)
	assert.Assert(a != b, "cannot connect a room to itself")
	a.neighbors = append(a.neighbors, b)
	b.neighbors = append(b.neighbors, a)
}

func (r *Room) Name() string {
	return r.name
}

func (r *Room) String() string {
	return r.name
}

// Evidence is the list of clues left in the room.
func (r *Room) Evidence() *evidence.List {
	return r.evidence
}

func (r *Room) Neighbors() []*Room {
	neighbors := make([]*Room, len(r.neighbors))
	copy(neighbors, r.neighbors)
	return neighbors
}

func (r *Room) guard(g Guard) sync.Locker {
	switch g {
	case GuardGhost:
		return &r.ghostMu
	default:
		return &r.huntersMu
	}
}

// SelectConnectedRoom picks a uniformly random neighbor while
// holding the lock named by g.
func (r *Room) SelectConnectedRoom(rnd *rand.Rand, g Guard) *Room {
	assert.AssertNotNil(rnd)
	assert.Assertf(len(r.neighbors) > 0, "room %q has no connected rooms", r.name)

	mu := r.guard(g)
	mu.Lock()
	next := r.neighbors[rnd.IntN(len(r.neighbors))]
	mu.Unlock()
	return next
}

func (r *Room) HasHunters() bool {
	r.huntersMu.Lock()
	defer r.huntersMu.Unlock()
	for _, o := range r.hunters {
		if !o.Empty() {
			return true
		}
	}
	return false
}

// Hunters returns the occupied slots in slot order.
func (r *Room) Hunters() []Occupant {
	r.huntersMu.Lock()
	defer r.huntersMu.Unlock()
	hunters := make([]Occupant, 0, MaxHunters)
	for _, o := range r.hunters {
		if !o.Empty() {
			hunters = append(hunters, o)
		}
	}
	return hunters
}

// AddHunter places o in the first free slot. It returns
// false when every slot is taken.
func (r *Room) AddHunter(o Occupant) bool {
	assert.Assert(!o.Empty(), "occupant has no id")
	r.huntersMu.Lock()
	defer r.huntersMu.Unlock()
	for i := range r.hunters {
		if r.hunters[i].Empty() {
			r.hunters[i] = o
			return true
		}
	}
	return false
}

// RemoveHunter clears the slot held by id.
func (r *Room) RemoveHunter(id uuid.UUID) bool {
	r.huntersMu.Lock()
	defer r.huntersMu.Unlock()
	for i := range r.hunters {
		if r.hunters[i].ID == id {
			r.hunters[i] = Occupant{}
			return true
		}
	}
	return false
}

func (r *Room) HasGhost() bool {
	r.ghostMu.Lock()
	defer r.ghostMu.Unlock()
	return !r.ghost.Empty()
}

func (r *Room) Ghost() (Occupant, bool) {
	r.ghostMu.Lock()
	defer r.ghostMu.Unlock()
	return r.ghost, !r.ghost.Empty()
}

func (r *Room) SetGhost(o Occupant) {
	assert.Assert(!o.Empty(), "occupant has no id")
	r.ghostMu.Lock()
	defer r.ghostMu.Unlock()
	assert.Assertf(r.ghost.Empty() || r.ghost.ID == o.ID, "room %q already haunted", r.name)
	r.ghost = o
}

// ClearGhost removes the ghost if it is the one identified by id.
func (r *Room) ClearGhost(id uuid.UUID) bool {
	r.ghostMu.Lock()
	defer r.ghostMu.Unlock()
	if r.ghost.ID != id {
		return false
	}
	r.ghost = Occupant{}
	return true
}
