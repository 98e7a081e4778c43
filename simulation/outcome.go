package simulation

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/tifye/haunted/evidence"
	"github.com/tifye/haunted/ghost"
	"github.com/tifye/haunted/hunter"
)

type Outcome struct {
	GameID   uuid.UUID     `json:"gameId"`
	Seed1    uint64        `json:"seed1"`
	Seed2    uint64        `json:"seed2"`
	Duration time.Duration `json:"duration"`

	Hunters []hunter.Result `json:"hunters"`
	Ghost   ghost.Result    `json:"ghost"`

	FearDepartures    int             `json:"fearDepartures"`
	BoredomDepartures int             `json:"boredomDepartures"`
	GhostWon          bool            `json:"ghostWon"`
	Evidence          []evidence.Kind `json:"evidence"`
	Guess             ghost.Class     `json:"guess"`
	Actual            ghost.Class     `json:"actual"`
	Correct           bool            `json:"correct"`
}

// Tally classifies the finished hunters and deduces the ghost
// from the collected clues. It must only run once every actor
// has stopped.
func Tally(hunters []hunter.Result, clues []evidence.Kind, actual ghost.Class) Outcome {
	o := Outcome{
		Hunters:  slices.Clone(hunters),
		Evidence: slices.Clone(clues),
		Actual:   actual,
	}

	for _, h := range hunters {
		if h.Fear >= hunter.FearMax {
			o.FearDepartures++
		}
		if h.Boredom >= hunter.BoredomMax {
			o.BoredomDepartures++
		}
	}
	o.GhostWon = o.FearDepartures+o.BoredomDepartures >= len(hunters)

	o.Guess = Deduce(clues)
	o.Correct = o.Guess == actual

	return o
}

// Deduce names the ghost class that could have left every clue.
// Later checks overwrite earlier ones, so when more than one class
// fits, the last one in the order below wins.
func Deduce(clues []evidence.Kind) ghost.Class {
	if len(clues) != hunter.DesiredEvidence {
		return ghost.Unknown
	}

	guess := ghost.Unknown
	if !slices.Contains(clues, evidence.Sound) {
		guess = ghost.Poltergeist
	} else if !slices.Contains(clues, evidence.EMF) {
		guess = ghost.Phantom
	}
	if !slices.Contains(clues, evidence.Temperature) {
		guess = ghost.Bullies
	}
	if !slices.Contains(clues, evidence.Fingerprints) {
		guess = ghost.Banshee
	}
	return guess
}

func (o Outcome) FearedHunters() []hunter.Result {
	return slices.DeleteFunc(slices.Clone(o.Hunters), func(h hunter.Result) bool {
		return h.Fear < hunter.FearMax
	})
}

func (o Outcome) BoredHunters() []hunter.Result {
	return slices.DeleteFunc(slices.Clone(o.Hunters), func(h hunter.Result) bool {
		return h.Boredom < hunter.BoredomMax
	})
}
