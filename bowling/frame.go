package bowling

import (
	"strconv"
	"strings"
)

const (
	// Pins is the number of pins standing at the start of a frame.
	Pins = 10
	// MaxFrames is the number of frames in a complete game.
	MaxFrames = 10
	// LastFrame is the index of the tenth frame.
	LastFrame = MaxFrames - 1
)

// Frame is the ordered list of rolls a player made in one frame.
type Frame []int

// Game is an ordered sequence of frames, indexed 0-9.
type Game []Frame

// Roll returns the i-th roll of the frame. The second result is false when the
// roll was never made.
func (f Frame) Roll(i int) (int, bool) {
	if i < 0 || i >= len(f) {
		return 0, false
	}
	return f[i], true
}

// String renders the frame the way it is written in frames notation, e.g. [5,5,1].
func (f Frame) String() string {
	parts := make([]string, len(f))
	for i, r := range f {
		parts[i] = strconv.Itoa(r)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// String renders the game in frames notation, e.g. [1,4],[10],[5,5].
func (g Game) String() string {
	parts := make([]string, len(g))
	for i, f := range g {
		parts[i] = f.String()
	}
	return strings.Join(parts, ",")
}

// Rolls flattens the game into the order the rolls were made.
func (g Game) Rolls() []int {
	var rolls []int
	for _, f := range g {
		rolls = append(rolls, f...)
	}
	return rolls
}
