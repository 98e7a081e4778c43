package house

import "github.com/tifye/haunted/evidence"

type RoomSnapshot struct {
	Name      string          `json:"name"`
	Neighbors []string        `json:"neighbors"`
	Hunters   []Occupant      `json:"hunters"`
	Ghost     *Occupant       `json:"ghost,omitempty"`
	Evidence  []evidence.Kind `json:"evidence"`
}

type Snapshot struct {
	Rooms          []RoomSnapshot  `json:"rooms"`
	SharedEvidence []evidence.Kind `json:"sharedEvidence"`
}

// Snapshot copies the state of every room as one point in time.
// It holds the occupancy locks of all rooms, taken in room order,
// while it reads. Actors hold at most one room lock at a time, so
// this cannot deadlock. An actor that is mid move is missing from
// every room.
func (h *House) Snapshot() Snapshot {
	for _, r := range h.rooms {
		r.huntersMu.Lock()
		r.ghostMu.Lock()
	}
	defer func() {
		for i := len(h.rooms) - 1; i >= 0; i-- {
			h.rooms[i].ghostMu.Unlock()
			h.rooms[i].huntersMu.Unlock()
		}
	}()

	s := Snapshot{
		Rooms:          make([]RoomSnapshot, 0, len(h.rooms)),
		SharedEvidence: h.shared.Kinds(),
	}
	for _, r := range h.rooms {
		rs := RoomSnapshot{
			Name:      r.name,
			Neighbors: make([]string, len(r.neighbors)),
			Hunters:   make([]Occupant, 0, MaxHunters),
			Evidence:  r.evidence.Kinds(),
		}
		for i, n := range r.neighbors {
			rs.Neighbors[i] = n.name
		}
		for _, o := range r.hunters {
			if !o.Empty() {
				rs.Hunters = append(rs.Hunters, o)
			}
		}
		if !r.ghost.Empty() {
			g := r.ghost
			rs.Ghost = &g
		}
		s.Rooms = append(s.Rooms, rs)
	}
	return s
}

// HauntedRooms lists the rooms holding a ghost.
func (s Snapshot) HauntedRooms() []string {
	var rooms []string
	for _, r := range s.Rooms {
		if r.Ghost != nil {
			rooms = append(rooms, r.Name)
		}
	}
	return rooms
}

// HunterCount counts how many slots across the house hold the
// hunter with the given name.
func (s Snapshot) HunterCount(name string) int {
	n := 0
	for _, r := range s.Rooms {
		for _, o := range r.Hunters {
			if o.Name == name {
				n++
			}
		}
	}
	return n
}
