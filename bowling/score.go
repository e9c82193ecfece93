package bowling

import "fmt"

// FrameScore is one step of the scoring fold.
type FrameScore struct {
	Index int   `json:"index"`
	Rolls Frame `json:"rolls"`
	Kind  Kind  `json:"kind"`
	Base  int   `json:"base"`
	Bonus int   `json:"bonus"`
	// Total is the running total after this frame.
	Total int `json:"total"`
}

// ScoreForFrame returns the pins a frame is worth before bonuses.
func ScoreForFrame(f Frame) int {
	if IsStrike(f) {
		return Pins
	}
	first, _ := f.Roll(0)
	second, _ := f.Roll(1)
	return first + second
}

// BonusForStrike returns the next two rolls taken in order from the given
// frames. When the frame after a strike is itself a single-roll strike the
// look-ahead continues into the frame after that. Rolls that were never made
// add nothing.
func BonusForStrike(following ...Frame) int {
	bonus, taken := 0, 0
	for _, f := range following {
		for _, r := range f {
			if taken == 2 {
				return bonus
			}
			bonus += r
			taken++
		}
	}
	return bonus
}

// BonusForSpare returns the spare bonus. For frames 1-9 the frame passed is
// the one after the spare and the bonus is its first roll. For the last frame
// the frame passed is the last frame itself and the bonus is its third roll.
func BonusForSpare(f Frame, last bool) (int, error) {
	if last {
		bonus, ok := f.Roll(2)
		if !ok {
			return 0, &SpareBonusError{Frame: f}
		}
		return bonus, nil
	}
	bonus, _ := f.Roll(0)
	return bonus, nil
}

// CalculateScore validates the game and returns its total score.
func CalculateScore(g Game) (int, error) {
	frames, err := ScoreFrames(g)
	if err != nil {
		return 0, err
	}
	return Total(frames), nil
}

// Total returns the running total after the last scored frame, or 0 when no
// frame was scored.
func Total(frames []FrameScore) int {
	if len(frames) == 0 {
		return 0
	}
	return frames[len(frames)-1].Total
}

// ScoreFrames validates the game and scores it left to right, returning the
// contribution and running total of every frame. A frame's bonus only looks at
// later frames, so no frame is revisited once scored.
func ScoreFrames(g Game) ([]FrameScore, error) {
	g, err := ValidateResults(g)
	if err != nil {
		return nil, err
	}

	scores := make([]FrameScore, 0, len(g))
	total := 0
	for i := range g {
		step, err := scoreFrame(g, i, total)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i+1, err)
		}
		scores = append(scores, step)
		total = step.Total
	}
	return scores, nil
}

// scoreFrame folds frame i into the running total.
func scoreFrame(g Game, i, total int) (FrameScore, error) {
	last := i == LastFrame

	var (
		f   Frame
		err error
	)
	if last {
		f, err = ValidateAsLastFrame(g[i], IsSpare, IsStrike)
	} else {
		f, err = ValidateAsFirstFrame(g[i])
	}
	if err != nil {
		return FrameScore{}, err
	}
	// Only the frame being bowled may be unfinished.
	if i < len(g)-1 && len(f) == 1 && !IsStrike(f) {
		return FrameScore{}, invalidFrame(f, "frame must have 2 rolls unless it is a strike")
	}

	step := FrameScore{
		Index: i,
		Rolls: f,
		Kind:  Classify(f),
		Base:  ScoreForFrame(f),
	}

	switch step.Kind {
	case Strike:
		if last {
			step.Bonus = BonusForStrike(f)
		} else {
			step.Bonus = BonusForStrike(g[i+1:]...)
		}
	case Spare:
		if last {
			step.Bonus, err = BonusForSpare(f, true)
		} else if i+1 < len(g) {
			step.Bonus, err = BonusForSpare(g[i+1], false)
		}
		if err != nil {
			return FrameScore{}, err
		}
	}

	step.Total = total + step.Base + step.Bonus
	return step, nil
}
