// Package config loads tenpin settings from an HCL file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/tenpin/internal/notation"
)

// DefaultFile is the config file read when no path is given.
const DefaultFile = "tenpin.hcl"

// Config represents the complete tenpin configuration
type Config struct {
	Log    LogSettings    `hcl:"log,block"`
	Output OutputSettings `hcl:"output,block"`
	Server ServerSettings `hcl:"server,block"`
}

// LogSettings controls the logger built by the CLI
type LogSettings struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// OutputSettings controls how results are read and rendered
type OutputSettings struct {
	Color    *bool  `hcl:"color,optional"`
	Notation string `hcl:"notation,optional"`
}

// ServerSettings contains scoring service configuration
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	IdleTimeout int    `hcl:"idle_timeout,optional"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	color := true
	return &Config{
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
		Output: OutputSettings{
			Color:    &color,
			Notation: string(notation.Auto),
		},
		Server: ServerSettings{
			Address:     "localhost",
			Port:        8080,
			IdleTimeout: 60,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	// Blocks are optional in the file, so start from empty ones and fill defaults after.
	var raw struct {
		Log    *LogSettings    `hcl:"log,block"`
		Output *OutputSettings `hcl:"output,block"`
		Server *ServerSettings `hcl:"server,block"`
	}
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	var cfg Config
	if raw.Log != nil {
		cfg.Log = *raw.Log
	}
	if raw.Output != nil {
		cfg.Output = *raw.Output
	}
	if raw.Server != nil {
		cfg.Server = *raw.Server
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
	if c.Output.Color == nil {
		c.Output.Color = def.Output.Color
	}
	if c.Output.Notation == "" {
		c.Output.Notation = def.Output.Notation
	}
	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = def.Server.IdleTimeout
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	if _, err := notation.ParseNotation(c.Output.Notation); err != nil {
		return err
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("idle timeout must not be negative: %d", c.Server.IdleTimeout)
	}

	return nil
}

// ColorEnabled reports whether rendered output may use color.
func (c *Config) ColorEnabled() bool {
	return c.Output.Color == nil || *c.Output.Color
}

// ServerAddress returns the full server address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// IdleTimeout returns how long a websocket connection may stay silent.
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Server.IdleTimeout) * time.Second
}

// NewLogger builds the logger described by the log block.
func (c *Config) NewLogger() *log.Logger {
	logger := log.New(os.Stderr)

	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	switch c.Log.Format {
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	default:
		logger.SetFormatter(log.TextFormatter)
	}

	return logger
}
