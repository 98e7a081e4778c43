package house

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tifye/haunted/evidence"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func occupant(name string) Occupant {
	return Occupant{ID: uuid.New(), Name: name}
}

func TestConnectIsSymmetric(t *testing.T) {
	a := NewRoom("a")
	b := NewRoom("b")
	c := NewRoom("c")
	Connect(a, b)
	Connect(a, c)

	assert.Equal(t, []*Room{b, c}, a.Neighbors())
	assert.Equal(t, []*Room{a}, b.Neighbors())
	assert.Equal(t, []*Room{a}, c.Neighbors())
}

func TestNewRoomIsEmpty(t *testing.T) {
	r := NewRoom("attic")
	assert.Equal(t, "attic", r.Name())
	assert.Empty(t, r.Neighbors())
	assert.Zero(t, r.Evidence().Len())
	assert.False(t, r.HasHunters())
	assert.False(t, r.HasGhost())
}

func TestSelectConnectedRoomStaysInRange(t *testing.T) {
	center := NewRoom("center")
	neighbors := []*Room{NewRoom("n0"), NewRoom("n1"), NewRoom("n2")}
	for _, n := range neighbors {
		Connect(center, n)
	}

	rnd := newRand()
	seen := map[*Room]int{}
	for i := range 3000 {
		g := GuardHunters
		if i%2 == 0 {
			g = GuardGhost
		}
		seen[center.SelectConnectedRoom(rnd, g)]++
	}

	require.Len(t, seen, len(neighbors))
	for _, n := range neighbors {
		assert.Greater(t, seen[n], 0, n.Name())
	}
}

func TestSelectConnectedRoomWithoutNeighborsPanics(t *testing.T) {
	r := NewRoom("island")
	assert.Panics(t, func() {
		r.SelectConnectedRoom(newRand(), GuardHunters)
	})
}

func TestHunterSlots(t *testing.T) {
	r := NewRoom("hall")

	hunters := make([]Occupant, MaxHunters)
	for i := range hunters {
		hunters[i] = occupant("h")
		require.True(t, r.AddHunter(hunters[i]))
	}
	assert.False(t, r.AddHunter(occupant("extra")), "room should be full")
	assert.Len(t, r.Hunters(), MaxHunters)

	assert.True(t, r.RemoveHunter(hunters[1].ID))
	assert.False(t, r.RemoveHunter(hunters[1].ID))
	assert.Len(t, r.Hunters(), MaxHunters-1)

	late := occupant("late")
	require.True(t, r.AddHunter(late))
	assert.Equal(t, late, r.Hunters()[1], "freed slot should be reused")

	for _, h := range r.Hunters() {
		r.RemoveHunter(h.ID)
	}
	assert.False(t, r.HasHunters())
}

func TestGhostSlot(t *testing.T) {
	r := NewRoom("cellar")
	g := occupant("ghost")

	r.SetGhost(g)
	got, ok := r.Ghost()
	require.True(t, ok)
	assert.Equal(t, g, got)

	assert.False(t, r.ClearGhost(uuid.New()), "other ids must not clear the ghost")
	assert.True(t, r.HasGhost())
	assert.Panics(t, func() { r.SetGhost(occupant("second")) })

	assert.True(t, r.ClearGhost(g.ID))
	assert.False(t, r.HasGhost())
}

func TestConcurrentSlotChurn(t *testing.T) {
	a := NewRoom("a")
	b := NewRoom("b")
	Connect(a, b)

	var wg sync.WaitGroup
	for i := range MaxHunters {
		o := occupant("h")
		require.True(t, a.AddHunter(o))
		wg.Go(func() {
			rnd := rand.New(rand.NewPCG(uint64(i), 7))
			cur := a
			for range 500 {
				next := cur.SelectConnectedRoom(rnd, GuardHunters)
				assert.True(t, cur.RemoveHunter(o.ID))
				assert.True(t, next.AddHunter(o))
				cur = next
			}
		})
	}
	wg.Wait()

	assert.Len(t, append(a.Hunters(), b.Hunters()...), MaxHunters)
}

func TestStandardHouse(t *testing.T) {
	h := NewStandard()

	rooms := h.Rooms()
	require.Len(t, rooms, 13)
	assert.Equal(t, Van, h.Start().Name())
	assert.Equal(t, []*Room{h.Room(Hallway)}, h.Room(Van).Neighbors())
	assert.Len(t, h.Room(Hallway).Neighbors(), 6)

	// every room is reachable from the van
	visited := map[*Room]bool{h.Start(): true}
	queue := []*Room{h.Start()}
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		for _, n := range r.Neighbors() {
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	assert.Len(t, visited, len(rooms))
}

func TestHouseSetupErrors(t *testing.T) {
	h := New()
	_, err := h.AddRoom("a")
	require.NoError(t, err)

	_, err = h.AddRoom("a")
	assert.Error(t, err)
	_, err = h.AddRoom("")
	assert.Error(t, err)

	assert.Error(t, h.Connect("a", "nowhere"))
	assert.Error(t, h.Connect("a", "a"))
	assert.Nil(t, h.Room("nowhere"))
}

func TestRandomRoomExcludes(t *testing.T) {
	h := NewStandard()
	rnd := newRand()
	for range 500 {
		r := h.RandomRoom(rnd, h.Start())
		assert.NotEqual(t, Van, r.Name())
	}
}

func TestSnapshot(t *testing.T) {
	h := NewStandard()
	hunter := occupant("Ray")
	ghost := occupant("POLTERGEIST")
	require.True(t, h.Start().AddHunter(hunter))
	h.Room(Kitchen).SetGhost(ghost)
	h.Room(Kitchen).Evidence().Add(evidence.EMF)
	h.SharedEvidence().Add(evidence.Sound)

	s := h.Snapshot()
	assert.Equal(t, []string{Kitchen}, s.HauntedRooms())
	assert.Equal(t, 1, s.HunterCount("Ray"))
	assert.Len(t, s.SharedEvidence, 1)
	require.Len(t, s.Rooms, 13)
	assert.Equal(t, []string{Hallway}, s.Rooms[0].Neighbors)
	assert.Equal(t, []Occupant{hunter}, s.Rooms[0].Hunters)
}

func TestSnapshotNeverSeesAnActorTwice(t *testing.T) {
	h := NewStandard()
	ghost := occupant("BANSHEE")
	hunter := occupant("Ray")
	h.Start().SetGhost(ghost)
	require.True(t, h.Start().AddHunter(hunter))

	var done atomic.Bool
	var wg sync.WaitGroup
	wg.Go(func() {
		for !done.Load() {
			s := h.Snapshot()
			assert.LessOrEqual(t, len(s.HauntedRooms()), 1)
			assert.LessOrEqual(t, s.HunterCount("Ray"), 1)
		}
	})

	var movers sync.WaitGroup
	movers.Go(func() {
		rnd := rand.New(rand.NewPCG(3, 4))
		cur := h.Start()
		for range 2000 {
			next := cur.SelectConnectedRoom(rnd, GuardGhost)
			assert.True(t, cur.ClearGhost(ghost.ID))
			next.SetGhost(ghost)
			cur = next
		}
	})
	movers.Go(func() {
		rnd := rand.New(rand.NewPCG(5, 6))
		cur := h.Start()
		for range 2000 {
			next := cur.SelectConnectedRoom(rnd, GuardHunters)
			assert.True(t, cur.RemoveHunter(hunter.ID))
			assert.True(t, next.AddHunter(hunter))
			cur = next
		}
	})
	movers.Wait()
	done.Store(true)
	wg.Wait()

	s := h.Snapshot()
	assert.Len(t, s.HauntedRooms(), 1)
	assert.Equal(t, 1, s.HunterCount("Ray"))
}
