package main

import (
	"errors"
	"fmt"

	"github.com/lox/tenpin/bowling"
	"github.com/lox/tenpin/internal/fileutil"
	"github.com/lox/tenpin/internal/notation"
	"github.com/lox/tenpin/internal/scorecard"
)

// GameInput is the game a command works on, given inline or as a file.
type GameInput struct {
	Results  string `arg:"" optional:"" help:"Game results, e.g. '[1,4],[10],[2,8,6]' or '1,4,10,2,8,6'"`
	File     string `short:"f" help:"Read the game from a YAML or JSON file"`
	Notation string `short:"n" help:"Input notation: auto, frames or rolls (overrides config)"`
}

// Load reads the game and logs what was entered.
func (in GameInput) Load(env *Env) (bowling.Game, error) {
	var (
		game bowling.Game
		err  error
	)

	switch {
	case in.File != "" && in.Results != "":
		return nil, errors.New("give results or --file, not both")
	case in.File != "":
		game, err = notation.LoadFile(in.File)
	case in.Results != "":
		n := in.Notation
		if n == "" {
			n = env.Config.Output.Notation
		}
		var parsed notation.Notation
		parsed, err = notation.ParseNotation(n)
		if err != nil {
			return nil, err
		}
		game, err = notation.Parse(in.Results, parsed)
	default:
		return nil, errors.New("no results given")
	}
	if err != nil {
		return nil, err
	}

	env.Logger.Info("You have entered the following results", "frames", game.String())
	return game, nil
}

// ScoreCmd prints the final score of a game.
type ScoreCmd struct {
	GameInput `embed:""`
	Card      bool   `help:"Print the scorecard instead of just the score"`
	Output    string `short:"o" help:"Also write the scored frames as JSON to this file"`
}

type scoreResult struct {
	Game   string               `json:"game"`
	Score  int                  `json:"score"`
	Frames []bowling.FrameScore `json:"frames"`
}

func (cmd ScoreCmd) Run(env *Env) error {
	game, err := cmd.Load(env)
	if err != nil {
		return err
	}

	frames, err := bowling.ScoreFrames(game)
	if err != nil {
		return err
	}
	score := bowling.Total(frames)
	env.Logger.Debug("Scored game", "frames", len(frames), "score", score)

	if cmd.Output != "" {
		result := scoreResult{Game: game.String(), Score: score, Frames: frames}
		if err := fileutil.WriteJSONAtomic(cmd.Output, result); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
		env.Logger.Info("Wrote result", "file", cmd.Output)
	}

	if cmd.Card {
		_, err = fmt.Fprint(env.Stdout, scorecard.NewRenderer(env.Stdout, env.Config.ColorEnabled()).Render(frames))
		return err
	}
	_, err = fmt.Fprintln(env.Stdout, score)
	return err
}

// ValidateCmd checks a game without printing its score.
type ValidateCmd struct {
	GameInput `embed:""`
}

func (cmd ValidateCmd) Run(env *Env) error {
	game, err := cmd.Load(env)
	if err != nil {
		return err
	}
	if _, err := bowling.ScoreFrames(game); err != nil {
		return err
	}
	_, err = fmt.Fprintf(env.Stdout, "valid (%d frames)\n", len(game))
	return err
}

// CardCmd renders the scorecard of a game.
type CardCmd struct {
	GameInput `embed:""`
}

func (cmd CardCmd) Run(env *Env) error {
	return ScoreCmd{GameInput: cmd.GameInput, Card: true}.Run(env)
}
