// Package cli formats hssql command output for terminals, pipes and scripts.
// It covers colored labels, rustc-style error rendering, tables and
// highlighted SQL.
package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// OutputMode determines how output is formatted.
type OutputMode int

const (
	// ModeTTY enables colored output for interactive terminals.
	ModeTTY OutputMode = iota
	// ModePlain writes plain text (pipes, CI, NO_COLOR).
	ModePlain
	// ModeJSON writes machine-readable JSON.
	ModeJSON
)

// String returns the mode name used by the --output flag.
func (m OutputMode) String() string {
	switch m {
	case ModeTTY:
		return "tty"
	case ModeJSON:
		return "json"
	default:
		return "plain"
	}
}

// Config holds CLI output configuration.
type Config struct {
	Mode   OutputMode
	Writer io.Writer
}

// DetectMode picks an output mode for f.
// Rules:
//   - f is a terminal and NO_COLOR is unset -> ModeTTY
//   - otherwise, or TERM=dumb -> ModePlain
func DetectMode(f *os.File) OutputMode {
	if f == nil {
		return ModePlain
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return ModePlain
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return ModeTTY
	}
	return ModePlain
}

// DefaultConfig returns the auto-detected configuration for stdout.
func DefaultConfig() *Config {
	return &Config{
		Mode:   DetectMode(os.Stdout),
		Writer: os.Stdout,
	}
}

// NewConfigWithMode creates a config with a specific output mode.
// Used for --output json or testing.
func NewConfigWithMode(mode OutputMode) *Config {
	cfg := DefaultConfig()
	cfg.Mode = mode
	return cfg
}

// IsTTY returns true if running in interactive terminal mode.
func (c *Config) IsTTY() bool {
	return c.Mode == ModeTTY
}

// IsPlain returns true if running in plain text mode.
func (c *Config) IsPlain() bool {
	return c.Mode == ModePlain
}

// IsJSON returns true if running in JSON output mode.
func (c *Config) IsJSON() bool {
	return c.Mode == ModeJSON
}

// Global default config, initialized lazily.
var defaultCfg *Config

// Default returns the global default configuration.
func Default() *Config {
	if defaultCfg == nil {
		defaultCfg = DefaultConfig()
	}
	return defaultCfg
}

// SetDefault sets the global default configuration.
func SetDefault(cfg *Config) {
	defaultCfg = cfg
}

// EnableColors returns true if colors should be used.
func EnableColors() bool {
	return Default().IsTTY()
}
