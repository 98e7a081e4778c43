package evidence

import (
	"fmt"
	"slices"
	"sync"
)

type Kind uint8

const (
	EMF Kind = iota
	Temperature
	Fingerprints
	Sound
)

// NumKinds is the size of the closed set of clue kinds.
const NumKinds = 4

var kindNames = [NumKinds]string{
	EMF:          "EMF",
	Temperature:  "TEMPERATURE",
	Fingerprints: "FINGERPRINTS",
	Sound:        "SOUND",
}

func Kinds() []Kind {
	return []Kind{EMF, Temperature, Fingerprints, Sound}
}

func (k Kind) Valid() bool {
	return k < NumKinds
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("UNKNOWN(%d)", uint8(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown evidence kind %q", s)
}

// List is an insertion ordered sequence of clues. A list holds
// multiplicities, every operation takes the list's lock.
type List struct {
	mu    sync.Mutex
	kinds []Kind
}

func NewList(kinds ...Kind) *List {
	l := &List{kinds: make([]Kind, 0, len(kinds))}
	l.kinds = append(l.kinds, kinds...)
	return l
}

// Add appends kind to the tail of the list.
func (l *List) Add(kind Kind) {
	l.mu.Lock()
	l.kinds = append(l.kinds, kind)
	l.mu.Unlock()
}

// Remove unlinks the first instance of kind. It reports
// whether a matching clue was found.
func (l *List) Remove(kind Kind) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := slices.Index(l.kinds, kind)
	if i < 0 {
		return false
	}
	l.kinds = slices.Delete(l.kinds, i, i+1)
	return true
}

// AddUnique appends kind only if the list does not already hold
// it. The check and the append share one critical section.
func (l *List) AddUnique(kind Kind) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if slices.Contains(l.kinds, kind) {
		return false
	}
	l.kinds = append(l.kinds, kind)
	return true
}

func (l *List) Contains(kind Kind) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Contains(l.kinds, kind)
}

func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.kinds)
}

// Kinds returns a copy of the list in insertion order.
func (l *List) Kinds() []Kind {
	l.mu.Lock()
	kinds := make([]Kind, len(l.kinds))
	copy(kinds, l.kinds)
	l.mu.Unlock()
	return kinds
}
