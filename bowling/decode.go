package bowling

import (
	"encoding/json"
	"fmt"
	"math"
)

// DecodeGame converts untyped results, as produced by encoding/json or
// yaml.v3, into a Game. The results must be a sequence of sequences of whole
// numbers; anything else is rejected before the game rules are checked.
func DecodeGame(raw any) (Game, error) {
	results, ok := raw.([]any)
	if !ok {
		return nil, &InvalidGameError{Reason: fmt.Sprintf("results must be a sequence of frames, got %s", describe(raw))}
	}

	game := make(Game, 0, len(results))
	for i, r := range results {
		rolls, ok := r.([]any)
		if !ok {
			return nil, &InvalidGameError{Reason: fmt.Sprintf("result frames must be sequences, frame %d is %s", i+1, describe(r))}
		}

		frame := make(Frame, 0, len(rolls))
		for _, v := range rolls {
			roll, ok := toRoll(v)
			if !ok {
				return nil, &InvalidFrameError{Reason: fmt.Sprintf("frame %d must only consist of numbers, got %s", i+1, describe(v))}
			}
			frame = append(frame, roll)
		}
		game = append(game, frame)
	}
	return game, nil
}

func toRoll(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.Abs(n) > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", x)
	default:
		return fmt.Sprintf("%v (%T)", x, x)
	}
}
