package ghost

import (
	"fmt"
	"math/rand/v2"

	"github.com/tifye/haunted/evidence"
)

type Class uint8

const (
	Poltergeist Class = iota
	Banshee
	Bullies
	Phantom
	// Unknown is the result of a failed deduction, never a real ghost.
	Unknown
)

const NumClasses = 4

var classNames = [...]string{
	Poltergeist: "POLTERGEIST",
	Banshee:     "BANSHEE",
	Bullies:     "BULLIES",
	Phantom:     "PHANTOM",
	Unknown:     "UNKNOWN",
}

// tells maps each class to the one clue kind it never leaves.
var tells = [NumClasses]evidence.Kind{
	Poltergeist: evidence.Sound,
	Banshee:     evidence.Fingerprints,
	Bullies:     evidence.Temperature,
	Phantom:     evidence.EMF,
}

func Classes() []Class {
	return []Class{Poltergeist, Banshee, Bullies, Phantom}
}

func RandomClass(rnd *rand.Rand) Class {
	return Class(rnd.IntN(NumClasses))
}

func (c Class) String() string {
	if int(c) >= len(classNames) {
		return classNames[Unknown]
	}
	return classNames[c]
}

func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Class) UnmarshalText(text []byte) error {
	parsed, err := ParseClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Tell is the clue kind the class can never produce.
func (c Class) Tell() evidence.Kind {
	if c >= NumClasses {
		panic("unknown ghost class has no tell")
	}
	return tells[c]
}

// CanLeave reports whether the class is able to produce kind.
func (c Class) CanLeave(kind evidence.Kind) bool {
	return kind.Valid() && kind != c.Tell()
}

// ParseClass is the inverse of Class.String. UNKNOWN parses
// to Unknown, any other name is an error.
func ParseClass(s string) (Class, error) {
	for i, name := range classNames {
		if name == s {
			return Class(i), nil
		}
	}
	return Unknown, fmt.Errorf("unknown ghost class %q", s)
}
