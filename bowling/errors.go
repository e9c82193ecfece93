package bowling

import "fmt"

// InvalidGameError reports a results sequence that is not a game.
type InvalidGameError struct {
	Reason string
}

func (e *InvalidGameError) Error() string {
	return "invalid game: " + e.Reason
}

// InvalidFrameError reports a frame that breaks the rules for its position.
type InvalidFrameError struct {
	Frame  Frame
	Reason string
}

func (e *InvalidFrameError) Error() string {
	if e.Frame == nil {
		return "invalid frame: " + e.Reason
	}
	return fmt.Sprintf("invalid frame %s: %s", e.Frame, e.Reason)
}

// SpareBonusError reports a spare in the last frame without the bonus roll.
type SpareBonusError struct {
	Frame Frame
}

func (e *SpareBonusError) Error() string {
	return fmt.Sprintf("spare bonus cannot be calculated: last frame %s does not have 3 rolls", e.Frame)
}

func invalidFrame(f Frame, reason string) *InvalidFrameError {
	return &InvalidFrameError{Frame: f, Reason: reason}
}
