package notation

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lox/tenpin/bowling"
)

// LoadFile reads a game from a YAML or JSON file. The document is either a
// sequence of frames, or a mapping with a "frames" sequence or a "rolls"
// sequence:
//
//	frames:
//	  - [1, 4]
//	  - [10]
//	  - [2, 8, 6]
func LoadFile(path string) (bowling.Game, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	game, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return game, nil
}

// Decode reads a game document. YAML is a superset of JSON, so both decode here.
func Decode(data []byte) (bowling.Game, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding game: %w", err)
	}

	m, ok := doc.(map[string]any)
	if !ok {
		return bowling.DecodeGame(doc)
	}

	if frames, ok := m["frames"]; ok {
		return bowling.DecodeGame(frames)
	}
	if rolls, ok := m["rolls"]; ok {
		// Reuse the frame decoder by treating the rolls as one frame.
		flat, err := bowling.DecodeGame([]any{rolls})
		if err != nil {
			return nil, err
		}
		return GroupRolls(flat[0]), nil
	}
	return nil, &bowling.InvalidGameError{Reason: "game document needs a frames or rolls key"}
}
