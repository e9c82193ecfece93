// Package bowling validates and scores complete ten-pin bowling games.
//
// A Game is a sequence of up to ten frames, each an ordered list of roll pin
// counts. Frames 1-9 hold one roll for a strike or two rolls otherwise; the
// tenth frame may hold a third roll when its first two rolls are a spare.
//
// # Basic Usage
//
//	game := bowling.Game{{10}, {7, 3}, {9, 0}, {10}, {0, 8}, {8, 2}, {0, 6}, {10}, {10}, {10, 8}}
//	score, err := bowling.CalculateScore(game)
//
// ScoreFrames exposes the running total after every frame:
//
//	frames, err := bowling.ScoreFrames(game)
//	for _, f := range frames {
//	    fmt.Println(f.Index+1, f.Kind, f.Total)
//	}
//
// # Errors
//
// Validation failures are reported as *InvalidGameError, *InvalidFrameError or
// *SpareBonusError. CalculateScore wraps frame errors with the frame number, so
// callers should match them with errors.As.
//
// # Untyped Input
//
// DecodeGame converts values produced by encoding/json or yaml.v3 into a Game,
// rejecting elements that are not sequences and rolls that are not whole numbers.
package bowling
