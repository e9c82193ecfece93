package bowling

// Kind classifies a frame by how its pins fell.
type Kind uint8

const (
	Open Kind = iota
	Spare
	Strike
)

func (k Kind) String() string {
	switch k {
	case Strike:
		return "strike"
	case Spare:
		return "spare"
	default:
		return "open"
	}
}

// Predicate reports whether a frame has some property. The last-frame
// validator takes its strike and spare checks as predicates.
type Predicate func(Frame) bool

// IsStrike reports whether all ten pins fell on the first roll.
func IsStrike(f Frame) bool {
	first, ok := f.Roll(0)
	return ok && first == Pins
}

// IsSpare reports whether the first two rolls knocked down all ten pins
// without a strike. A frame with a single roll is never a spare.
func IsSpare(f Frame) bool {
	if IsStrike(f) {
		return false
	}
	first, ok1 := f.Roll(0)
	second, ok2 := f.Roll(1)
	return ok1 && ok2 && first+second == Pins
}

// Classify returns the kind of the frame. Strikes take precedence over spares.
func Classify(f Frame) Kind {
	switch {
	case IsStrike(f):
		return Strike
	case IsSpare(f):
		return Spare
	default:
		return Open
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
