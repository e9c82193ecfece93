package bowling

import "fmt"

// ValidateResults checks the whole results sequence and returns it unchanged.
func ValidateResults(g Game) (Game, error) {
	if len(g) > MaxFrames {
		return nil, &InvalidGameError{Reason: fmt.Sprintf("result cannot have more than %d frames, got %d", MaxFrames, len(g))}
	}
	return g, nil
}

// ValidateFrame checks the rules shared by frames 1-9: every roll is a pin
// count, a strike is not followed by a second roll, and the two rolls never
// knock down more than ten pins.
func ValidateFrame(f Frame) error {
	if err := validateRolls(f); err != nil {
		return err
	}
	if IsStrike(f) && len(f) > 1 {
		return invalidFrame(f, "frame cannot have a second roll after a strike")
	}
	if len(f) > 1 && f[0]+f[1] > Pins {
		return invalidFrame(f, fmt.Sprintf("total number of pins per frame cannot be greater than %d", Pins))
	}
	return nil
}

// ValidateAsFirstFrame returns the frame if it may appear as one of the first
// nine frames of a game.
func ValidateAsFirstFrame(f Frame) (Frame, error) {
	if len(f) > 2 {
		return nil, invalidFrame(f, "frame cannot have more than 2 rolls")
	}
	if err := ValidateFrame(f); err != nil {
		return nil, err
	}
	return f, nil
}

// ValidateAsLastFrame returns the frame if it may appear as the tenth frame.
// The spare and strike predicates decide whether a third roll is allowed and
// whether a single roll is too few; nil selects IsSpare and IsStrike.
func ValidateAsLastFrame(f Frame, spare, strike Predicate) (Frame, error) {
	if spare == nil {
		spare = IsSpare
	}
	if strike == nil {
		strike = IsStrike
	}

	if err := validateRolls(f); err != nil {
		return nil, err
	}

	switch {
	case len(f) > 3:
		return nil, invalidFrame(f, "last frame cannot have more than 3 rolls")
	case len(f) == 3:
		if !spare(f) {
			return nil, invalidFrame(f, "last frame needs a spare in order to qualify for 3 rolls")
		}
	case len(f) == 1 && strike(f):
		return nil, invalidFrame(f, "last frame must have 2 rolls if the first roll was a strike")
	}

	// A strike resets the pins, so only a non-strike opening is capped.
	if len(f) > 1 && !strike(f) && f[0]+f[1] > Pins {
		return nil, invalidFrame(f, fmt.Sprintf("total number of pins per frame cannot be greater than %d", Pins))
	}
	return f, nil
}

func validateRolls(f Frame) error {
	if len(f) == 0 {
		return invalidFrame(f, "frame must have at least 1 roll")
	}
	for _, r := range f {
		if r < 0 || r > Pins {
			return invalidFrame(f, fmt.Sprintf("roll %d is not a pin count between 0 and %d", r, Pins))
		}
	}
	return nil
}
