package simulation

import "time"

// NumHunters is the fixed roster size of a game.
const NumHunters = 4

type Config struct {
	// Idle delay before each hunter iteration.
	HunterWait time.Duration
	// Idle delay before each ghost iteration.
	GhostWait time.Duration

	Seed1 uint64
	Seed2 uint64
}

func DefaultConfig() Config {
	return Config{
		HunterWait: 5 * time.Millisecond,
		GhostWait:  600 * time.Microsecond,
	}
}
