// Package notation reads bowling games written by people: frames notation
// ("[1,4],[10],[2,8,6]"), rolls notation ("1,4,10,2,8,6") and game files.
package notation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/tenpin/bowling"
)

// Notation names an input format.
type Notation string

const (
	Auto   Notation = "auto"
	Frames Notation = "frames"
	Rolls  Notation = "rolls"
)

// ParseNotation converts a flag or config value to a Notation.
func ParseNotation(s string) (Notation, error) {
	switch n := Notation(strings.ToLower(strings.TrimSpace(s))); n {
	case Auto, Frames, Rolls:
		return n, nil
	case "":
		return Auto, nil
	default:
		return "", fmt.Errorf("unknown notation %q (want auto, frames or rolls)", s)
	}
}

// Detect guesses the notation of the input. Anything with brackets is frames.
func Detect(input string) Notation {
	if strings.ContainsAny(input, "[]") {
		return Frames
	}
	return Rolls
}

// Parse reads a game written in the given notation.
func Parse(input string, n Notation) (bowling.Game, error) {
	if n == Auto || n == "" {
		n = Detect(input)
	}
	switch n {
	case Frames:
		return ParseFrames(input)
	case Rolls:
		return ParseRolls(input)
	default:
		return nil, fmt.Errorf("unknown notation %q", n)
	}
}

// ParseFrames reads frames notation. The outer brackets are optional, so both
// "[1,4],[10]" and "[[1,4],[10]]" describe the same two frames.
func ParseFrames(input string) (bowling.Game, error) {
	s := strings.TrimSpace(input)
	if !strings.HasPrefix(strings.ReplaceAll(s, " ", ""), "[[") {
		s = "[" + s + "]"
	}

	var raw any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("parsing frames %q: %w", input, err)
	}
	return bowling.DecodeGame(raw)
}

// ParseRolls reads rolls separated by commas or whitespace and groups them
// into frames with GroupRolls.
func ParseRolls(input string) (bowling.Game, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	rolls := make([]int, 0, len(fields))
	for i, field := range fields {
		roll, err := strconv.Atoi(field)
		if err != nil {
			return nil, &bowling.InvalidFrameError{Reason: fmt.Sprintf("roll %d must be a number, got %q", i+1, field)}
		}
		rolls = append(rolls, roll)
	}
	return GroupRolls(rolls), nil
}

// GroupRolls splits rolls into frames the way they are bowled. In frames 1-9 a
// strike closes the frame, otherwise a frame takes two rolls. Every roll left
// after the ninth frame belongs to the tenth, so an overlong game surfaces as
// an invalid last frame rather than being silently truncated.
func GroupRolls(rolls []int) bowling.Game {
	var game bowling.Game
	for len(rolls) > 0 {
		if len(game) == bowling.LastFrame {
			game = append(game, append(bowling.Frame(nil), rolls...))
			break
		}

		n := 2
		if rolls[0] == bowling.Pins || len(rolls) == 1 {
			n = 1
		}
		game = append(game, append(bowling.Frame(nil), rolls[:n]...))
		rolls = rolls[n:]
	}
	return game
}

// Format writes the game back out in the given notation.
func Format(g bowling.Game, n Notation) string {
	if n == Rolls {
		rolls := g.Rolls()
		parts := make([]string, len(rolls))
		for i, r := range rolls {
			parts[i] = strconv.Itoa(r)
		}
		return strings.Join(parts, ",")
	}
	return g.String()
}
