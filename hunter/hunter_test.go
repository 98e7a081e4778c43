package hunter

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tifye/haunted/events"
	"github.com/tifye/haunted/evidence"
	"github.com/tifye/haunted/house"
)

type fixture struct {
	a, b   *house.Room
	shared *evidence.List
	rec    *events.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	a := house.NewRoom("a")
	b := house.NewRoom("b")
	house.Connect(a, b)
	return &fixture{
		a:      a,
		b:      b,
		shared: evidence.NewList(),
		rec:    &events.Recorder{},
	}
}

func (f *fixture) hunter(t *testing.T, name string, specialty evidence.Kind, seed uint64) *Hunter {
	t.Helper()
	return New(Options{
		Name:      name,
		Specialty: specialty,
		Start:     f.a,
		Shared:    f.shared,
		Rand:      rand.New(rand.NewPCG(seed, 99)),
		Sink:      f.rec,
	})
}

var ghostOccupant = house.Occupant{ID: uuid.New(), Name: "ghost"}

func TestNewSeatsHunter(t *testing.T) {
	f := newFixture(t)
	h := f.hunter(t, "Peter", evidence.EMF, 1)

	hunters := f.a.Hunters()
	require.Len(t, hunters, 1)
	assert.Equal(t, h.ID(), hunters[0].ID)
	assert.Equal(t, "Peter", hunters[0].Name)
	require.Len(t, f.rec.Filter(events.HunterInit), 1)
	assert.Equal(t, "EMF", f.rec.Filter(events.HunterInit)[0].Evidence)
}

func TestFearGrowsWithGhostAndResetsWithout(t *testing.T) {
	f := newFixture(t)
	h := f.hunter(t, "Ray", evidence.Sound, 1)

	f.a.SetGhost(ghostOccupant)
	for i := 1; i < FearMax; i++ {
		reason, leaving := h.checkLeaving()
		require.False(t, leaving)
		assert.Equal(t, events.ReasonNone, reason)
		assert.Equal(t, i, h.fear)
		assert.Zero(t, h.boredom)
	}

	f.a.ClearGhost(ghostOccupant.ID)
	_, leaving := h.checkLeaving()
	require.False(t, leaving)
	assert.Zero(t, h.fear)
	assert.Equal(t, 1, h.boredom)

	f.a.SetGhost(ghostOccupant)
	_, _ = h.checkLeaving()
	assert.Equal(t, 1, h.fear)
	assert.Zero(t, h.boredom)
}

func TestLeavesInFear(t *testing.T) {
	f := newFixture(t)
	h := f.hunter(t, "Winston", evidence.Temperature, 1)
	f.a.SetGhost(ghostOccupant)

	var reason events.Reason
	leaving := false
	for range FearMax {
		reason, leaving = h.checkLeaving()
	}
	assert.True(t, leaving)
	assert.Equal(t, events.ReasonFear, reason)
	assert.Equal(t, FearMax, h.fear)
}

func TestLeavesWhenBored(t *testing.T) {
	f := newFixture(t)
	h := f.hunter(t, "Egon", evidence.Fingerprints, 3)

	res := h.Run(context.Background())

	assert.Equal(t, events.ReasonBoredom, res.Reason)
	assert.Equal(t, BoredomMax, res.Boredom)
	assert.Equal(t, BoredomMax, res.Iterations)
	assert.False(t, f.a.HasHunters())
	assert.False(t, f.b.HasHunters())
	exits := f.rec.Filter(events.HunterExit)
	require.Len(t, exits, 1)
	assert.Equal(t, events.ReasonBoredom, exits[0].Reason)
}

func TestCollectOnlySpecialty(t *testing.T) {
	f := newFixture(t)
	h := f.hunter(t, "Ray", evidence.Sound, 1)

	assert.False(t, h.collect(), "empty room")

	f.a.Evidence().Add(evidence.EMF)
	assert.False(t, h.collect(), "cannot read EMF")
	assert.Equal(t, []evidence.Kind{evidence.EMF}, f.a.Evidence().Kinds())

	f.a.Evidence().Add(evidence.Sound)
	f.a.Evidence().Add(evidence.Sound)
	assert.True(t, h.collect())
	assert.True(t, h.collect())
	assert.Equal(t, []evidence.Kind{evidence.EMF}, f.a.Evidence().Kinds())
	assert.Equal(t, []evidence.Kind{evidence.Sound}, f.shared.Kinds(), "shared list holds each kind once")
	assert.Equal(t, 2, h.Result().Collected)
}

func TestCollectedCluesRoundTrip(t *testing.T) {
	f := newFixture(t)
	specialties := []evidence.Kind{evidence.Fingerprints, evidence.EMF, evidence.Temperature}
	hunters := make([]*Hunter, len(specialties))
	for i, k := range specialties {
		hunters[i] = f.hunter(t, k.String(), k, uint64(i))
		f.a.Evidence().Add(k)
	}

	for _, h := range hunters {
		require.True(t, h.collect())
	}

	assert.Equal(t, specialties, f.shared.Kinds())
	assert.Zero(t, f.a.Evidence().Len())
}

func TestReview(t *testing.T) {
	f := newFixture(t)
	h := f.hunter(t, "Janine", evidence.EMF, 1)

	f.shared.Add(evidence.EMF)
	f.shared.Add(evidence.Sound)
	assert.False(t, h.review())

	f.shared.Add(evidence.Temperature)
	assert.True(t, h.review())

	reviews := f.rec.Filter(events.HunterReview)
	require.Len(t, reviews, 2)
	assert.False(t, reviews[0].Sufficient)
	assert.True(t, reviews[1].Sufficient)
}

func TestLeavesWithSufficientEvidence(t *testing.T) {
	f := newFixture(t)
	f.shared.Add(evidence.EMF)
	f.shared.Add(evidence.Temperature)
	f.shared.Add(evidence.Fingerprints)
	h := f.hunter(t, "Dana", evidence.Sound, 5)

	res := h.Run(context.Background())

	assert.Equal(t, events.ReasonEvidence, res.Reason)
	assert.Less(t, res.Iterations, BoredomMax)
	assert.False(t, f.a.HasHunters())
	assert.False(t, f.b.HasHunters())
}

func TestMoveKeepsExactlyOneSlot(t *testing.T) {
	f := newFixture(t)
	h := f.hunter(t, "Slimer", evidence.EMF, 8)

	for range 50 {
		h.move()
		count := 0
		for _, r := range []*house.Room{f.a, f.b} {
			for _, o := range r.Hunters() {
				if o.ID == h.ID() {
					count++
					assert.Same(t, r, h.room)
				}
			}
		}
		assert.Equal(t, 1, count)
	}
	assert.Len(t, f.rec.Filter(events.HunterMove), 50)
}

func TestRunStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	f.a.SetGhost(ghostOccupant)
	h := f.hunter(t, "Louis", evidence.EMF, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := h.Run(ctx)

	// A hunter sharing a room with a ghost may still run out of
	// nerve before it notices the cancellation.
	assert.Contains(t, []events.Reason{events.ReasonInterrupted, events.ReasonFear, events.ReasonBoredom}, res.Reason)
	assert.False(t, f.a.HasHunters())
	assert.False(t, f.b.HasHunters())
}
