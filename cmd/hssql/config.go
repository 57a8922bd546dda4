package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/devinci-it/hssql/internal/alerr"
	"github.com/devinci-it/hssql/pkg/ddl"
)

// Defaults.
const (
	DefaultConfigFile = "hssql.yaml"
	DefaultSessionDir = "Generated_Scripts"
	DefaultLogLevel   = "info"

	// DirPerm is the permission mode for created directories (rwxr-xr-x).
	DirPerm = 0755
	// FilePerm is the permission mode for created files (rw-r--r--).
	FilePerm = 0644
)

// Environment variables.
const (
	EnvSessionDir = "HSSQL_SESSION_DIR"
	EnvScriptsDir = "HSSQL_SCRIPTS_DIR"
	EnvLogLevel   = "HSSQL_LOG_LEVEL"
)

// Config represents the hssql.yaml configuration file.
type Config struct {
	SessionDir string `yaml:"session_dir"`
	ScriptsDir string `yaml:"scripts_dir"`
	Schema     string `yaml:"schema"`
	Charset    string `yaml:"charset"`
	Collation  string `yaml:"collation"`
	LogLevel   string `yaml:"log_level"`
}

// defaultConfig returns the configuration used when nothing overrides it.
// ScriptsDir is left empty and derived from SessionDir after loading.
func defaultConfig() *Config {
	return &Config{
		SessionDir: DefaultSessionDir,
		Schema:     ddl.DefaultSchema,
		Charset:    ddl.DefaultCharset,
		Collation:  ddl.DefaultCollation,
		LogLevel:   DefaultLogLevel,
	}
}

// loadConfig loads configuration from file, env vars and CLI flags.
// Precedence: CLI flags > env vars > config file > defaults.
// A missing config file is only an error when the path was given explicitly.
func loadConfig(opts *globalOptions, explicit bool) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(opts.configFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, alerr.Wrap(alerr.ErrConfigInvalid, err, "failed to parse config file").
				WithFile(opts.configFile)
		}
		cfg.expandEnvVars()
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// defaults only
	default:
		return nil, alerr.Wrap(alerr.ErrConfigInvalid, err, "failed to read config file").
			WithFile(opts.configFile)
	}

	if v := os.Getenv(EnvSessionDir); v != "" {
		cfg.SessionDir = v
	}
	if v := os.Getenv(EnvScriptsDir); v != "" {
		cfg.ScriptsDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	if opts.sessionDir != "" {
		cfg.SessionDir = opts.sessionDir
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}

	if cfg.ScriptsDir == "" {
		cfg.ScriptsDir = filepath.Join(cfg.SessionDir, "scripts")
	}

	if _, err := parseLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	return cfg, nil
}

// expandEnvVars expands ${VAR} patterns in string values.
func (c *Config) expandEnvVars() {
	for _, p := range []*string{&c.SessionDir, &c.ScriptsDir, &c.Schema, &c.Charset, &c.Collation, &c.LogLevel} {
		*p = os.Expand(*p, os.Getenv)
	}
}

// LockPath returns the lock file path inside the scripts directory.
func (c *Config) LockPath() string {
	return filepath.Join(c.ScriptsDir, "hssql.lock")
}
