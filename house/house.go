package house

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/tifye/haunted/assert"
	"github.com/tifye/haunted/evidence"
)

const (
	Van              = "Van"
	Hallway          = "Hallway"
	MasterBedroom    = "Master Bedroom"
	BoysBedroom      = "Boy's Bedroom"
	Bathroom         = "Bathroom"
	Basement         = "Basement"
	BasementHallway  = "Basement Hallway"
	RightStorageRoom = "Right Storage Room"
	LeftStorageRoom  = "Left Storage Room"
	Kitchen          = "Kitchen"
	LivingRoom       = "Living Room"
	Garage           = "Garage"
	UtilityRoom      = "Utility Room"
)

// House is the room graph together with the evidence list
// shared by every hunter. Rooms and edges are only added
// during setup.
type House struct {
	rooms  []*Room
	byName map[string]*Room
	shared *evidence.List
}

func New() *House {
	return &House{
		rooms:  []*Room{},
		byName: map[string]*Room{},
		shared: evidence.NewList(),
	}
}

// NewStandard builds the fixed thirteen room house with the
// van as its starting room.
func NewStandard() *House {
	h := New()
	for _, name := range []string{
		Van, Hallway, MasterBedroom, BoysBedroom, Bathroom,
		Basement, BasementHallway, RightStorageRoom, LeftStorageRoom,
		Kitchen, LivingRoom, Garage, UtilityRoom,
	} {
		_, err := h.AddRoom(name)
		assert.Assertf(err == nil, "standard house: %s", err)
	}

	edges := [][2]string{
		{Van, Hallway},
		{Hallway, MasterBedroom},
		{Hallway, BoysBedroom},
		{Hallway, Bathroom},
		{Hallway, Kitchen},
		{Hallway, Basement},
		{Basement, BasementHallway},
		{BasementHallway, RightStorageRoom},
		{BasementHallway, LeftStorageRoom},
		{Kitchen, LivingRoom},
		{Kitchen, Garage},
		{Garage, UtilityRoom},
	}
	for _, e := range edges {
		err := h.Connect(e[0], e[1])
		assert.Assertf(err == nil, "standard house: %s", err)
	}

	return h
}

func (h *House) AddRoom(name string) (*Room, error) {
	if name == "" {
		return nil, fmt.Errorf("room name is empty")
	}
	if _, exists := h.byName[name]; exists {
		return nil, fmt.Errorf("room %q already exists", name)
	}
	r := NewRoom(name)
	h.rooms = append(h.rooms, r)
	h.byName[name] = r
	return r, nil
}

func (h *House) Connect(a, b string) error {
	ra, ok := h.byName[a]
	if !ok {
		return fmt.Errorf("unknown room %q", a)
	}
	rb, ok := h.byName[b]
	if !ok {
		return fmt.Errorf("unknown room %q", b)
	}
	if ra == rb {
		return fmt.Errorf("cannot connect %q to itself", a)
	}
	Connect(ra, rb)
	return nil
}

// Room returns the room with the given name or nil.
func (h *House) Room(name string) *Room {
	return h.byName[name]
}

func (h *House) Rooms() []*Room {
	rooms := make([]*Room, len(h.rooms))
	copy(rooms, h.rooms)
	return rooms
}

// Start is the room hunters begin in, the first room added.
func (h *House) Start() *Room {
	assert.Assert(len(h.rooms) > 0, "house has no rooms")
	return h.rooms[0]
}

// SharedEvidence is the list hunters report collected clues to.
func (h *House) SharedEvidence() *evidence.List {
	return h.shared
}

// RandomRoom picks a uniformly random room that is not in exclude.
func (h *House) RandomRoom(rnd *rand.Rand, exclude ...*Room) *Room {
	assert.AssertNotNil(rnd)
	candidates := slices.DeleteFunc(h.Rooms(), func(r *Room) bool {
		return slices.Contains(exclude, r)
	})
	assert.Assert(len(candidates) > 0, "no rooms left to choose from")
	return candidates[rnd.IntN(len(candidates))]
}
