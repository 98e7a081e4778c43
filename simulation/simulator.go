package simulation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tifye/haunted/assert"
	"github.com/tifye/haunted/events"
	"github.com/tifye/haunted/evidence"
	"github.com/tifye/haunted/ghost"
	"github.com/tifye/haunted/house"
	"github.com/tifye/haunted/hunter"
)

type Simulator struct {
	logger *log.Logger
	config Config
	gameID uuid.UUID

	house   *house.House
	ghost   *ghost.Ghost
	hunters []*hunter.Hunter
}

// NewSimulator builds the standard house, seats the hunters in
// the van and hides a ghost of a random class in any other room.
// Each actor gets its own generator derived from the config seeds.
func NewSimulator(logger *log.Logger, config Config, names []string, sink events.Sink) *Simulator {
	assert.AssertNotNil(logger)
	assert.Assertf(len(names) <= NumHunters, "at most %d hunters, got %d", NumHunters, len(names))
	if sink == nil {
		sink = events.Discard
	}

	rnd := rand.New(rand.NewPCG(config.Seed1, config.Seed2))
	h := house.NewStandard()

	s := &Simulator{
		logger:  logger,
		config:  config,
		gameID:  uuid.New(),
		house:   h,
		hunters: make([]*hunter.Hunter, 0, NumHunters),
	}

	for i, specialty := range evidence.Kinds() {
		name := fmt.Sprintf("Hunter %d", i+1)
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		s.hunters = append(s.hunters, hunter.New(hunter.Options{
			Name:      name,
			Specialty: specialty,
			Start:     h.Start(),
			Shared:    h.SharedEvidence(),
			Rand:      actorRand(rnd),
			Wait:      config.HunterWait,
			Sink:      sink,
		}))
	}

	s.ghost = ghost.New(ghost.Options{
		Class: ghost.RandomClass(rnd),
		Start: h.RandomRoom(rnd, h.Start()),
		Rand:  actorRand(rnd),
		Wait:  config.GhostWait,
		Sink:  sink,
	})

	return s
}

func actorRand(rnd *rand.Rand) *rand.Rand {
	return rand.New(rand.NewPCG(rnd.Uint64(), rnd.Uint64()))
}

func (s *Simulator) House() *house.House {
	return s.house
}

func (s *Simulator) GameID() uuid.UUID {
	return s.gameID
}

// Run starts one goroutine per actor, waits for all of them and
// then tallies the game.
func (s *Simulator) Run(ctx context.Context) Outcome {
	s.logger.Info("Simulation started",
		"game", s.gameID, "seed1", s.config.Seed1, "seed2", s.config.Seed2,
	)
	start := time.Now()

	var (
		wg          sync.WaitGroup
		ghostResult ghost.Result
	)
	hunterResults := make([]hunter.Result, len(s.hunters))

	wg.Go(func() {
		ghostResult = s.ghost.Run(ctx)
	})
	for i, h := range s.hunters {
		wg.Go(func() {
			hunterResults[i] = h.Run(ctx)
		})
	}
	wg.Wait()

	o := Tally(hunterResults, s.house.SharedEvidence().Kinds(), s.ghost.Class())
	o.GameID = s.gameID
	o.Seed1 = s.config.Seed1
	o.Seed2 = s.config.Seed2
	o.Duration = time.Since(start)
	o.Ghost = ghostResult

	s.logger.Info("Simulation finished",
		"game", s.gameID, "ghostWon", o.GhostWon, "guess", o.Guess, "actual", o.Actual,
		"duration", o.Duration,
	)
	return o
}
