package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/tenpin/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" default:"tenpin.hcl" help:"Path to HCL configuration file"`
	LogLevel string           `short:"l" help:"Log level (overrides config)"`
	NoColor  bool             `help:"Disable colored output"`

	Score    ScoreCmd    `cmd:"" help:"Score a complete game"`
	Validate ValidateCmd `cmd:"" help:"Check a game against the rules without scoring it"`
	Card     CardCmd     `cmd:"" help:"Render the frame-by-frame scorecard"`
	Serve    ServeCmd    `cmd:"" help:"Run the scoring service over HTTP and WebSocket"`
}

// Env is shared by every command once flags and config are resolved.
type Env struct {
	Config *config.Config
	Logger *log.Logger
	Stdout io.Writer
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tenpin"),
		kong.Description("Validate and score ten-pin bowling games"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	env, err := newEnv(&cli, os.Stdout)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(env)
	ctx.FatalIfErrorf(err)
}

// newEnv loads the config file and applies command line overrides.
func newEnv(cli *CLI, stdout io.Writer) (*Env, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.NoColor {
		color := false
		cfg.Output.Color = &color
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Env{
		Config: cfg,
		Logger: cfg.NewLogger(),
		Stdout: stdout,
	}, nil
}
