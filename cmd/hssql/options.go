package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/devinci-it/hssql/internal/alerr"
	"github.com/devinci-it/hssql/internal/cli"
	"github.com/devinci-it/hssql/internal/session"
	"github.com/devinci-it/hssql/pkg/ddl"
)

// globalOptions holds persistent flags and the configuration loaded from them.
type globalOptions struct {
	configFile string
	sessionDir string
	jsonOutput bool
	verbose    bool

	cfg *Config
}

// bind registers the persistent flags.
func (o *globalOptions) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.configFile, "config", "c", DefaultConfigFile, "Path to config file")
	fs.StringVar(&o.sessionDir, "session-dir", "", "Session store directory (default: Generated_Scripts)")
	fs.BoolVar(&o.jsonOutput, "json", false, "Machine-readable JSON output")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")
}

// init loads configuration, installs logging and picks the output mode.
func (o *globalOptions) init(cmd *cobra.Command) error {
	cfg, err := loadConfig(o, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	o.cfg = cfg

	if err := setupLogging(cmd.ErrOrStderr(), cfg.LogLevel); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	mode := cli.ModePlain
	if f, ok := out.(*os.File); ok {
		mode = cli.DetectMode(f)
	}
	if o.jsonOutput {
		mode = cli.ModeJSON
	}
	cli.SetDefault(&cli.Config{Mode: mode, Writer: out})
	return nil
}

// openStore opens the session store in the configured directory.
func (o *globalOptions) openStore(ctx context.Context) (*session.Store, error) {
	return session.OpenDir(ctx, o.cfg.SessionDir)
}

// withStore opens the store for the duration of fn.
func (o *globalOptions) withStore(cmd *cobra.Command, fn func(ctx context.Context, store *session.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := o.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(ctx, store)
}

// mutate loads a session, applies fn and saves the result. Nothing is saved
// when fn fails.
func (o *globalOptions) mutate(cmd *cobra.Command, name string, fn func(db *ddl.Database) error) error {
	return o.withStore(cmd, func(ctx context.Context, store *session.Store) error {
		db, err := store.Load(ctx, name)
		if err != nil {
			return err
		}
		if err := fn(db); err != nil {
			return err
		}
		return store.Save(ctx, db)
	})
}

// requireTable returns the named table or ErrSchemaNotFound with a suggestion.
func requireTable(db *ddl.Database, name string) (*ddl.Table, error) {
	if t := db.Table(name); t != nil {
		return t, nil
	}
	return nil, alerr.New(alerr.ErrSchemaNotFound, "table not found").
		WithDatabase(db.Name()).
		WithTable(name).
		WithSuggestion(name, db.TableNames())
}

// requireColumn returns the named column or ErrSchemaNotFound with a suggestion.
func requireColumn(t *ddl.Table, name string) (*ddl.Column, error) {
	if c := t.Column(name); c != nil {
		return c, nil
	}
	names := make([]string, 0, len(t.Columns()))
	for _, c := range t.Columns() {
		names = append(names, c.Name())
	}
	return nil, alerr.New(alerr.ErrSchemaNotFound, "column not found").
		WithTable(t.Name()).
		WithColumn(name).
		WithSuggestion(name, names)
}

// formatValue is a pflag.Value restricted to the document formats.
type formatValue struct {
	format ddl.Format
}

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string { return string(f.format) }

func (f *formatValue) Set(s string) error {
	format, err := ddl.ParseFormat(s)
	if err != nil {
		return err
	}
	f.format = format
	return nil
}

func (f *formatValue) Type() string { return "format" }

// statementKind is a pflag.Value naming the statements generate renders.
type statementKind string

var statementKinds = []string{"create", "alter", "drop", "show-tables", "show-info", "tables", "all"}

var _ pflag.Value = (*statementKind)(nil)

func (k *statementKind) String() string { return string(*k) }

func (k *statementKind) Set(s string) error {
	s = strings.ToLower(s)
	for _, v := range statementKinds {
		if s == v {
			*k = statementKind(s)
			return nil
		}
	}
	return alerr.New(alerr.ErrSchemaInvalid, "unknown statement kind").
		With("statement", s).
		WithSuggestion(s, statementKinds).
		WithAllowed(statementKinds)
}

func (k *statementKind) Type() string { return "statement" }
