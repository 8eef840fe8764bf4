// Package cli implements the orgdot command-line interface.
//
// Commands compile organization files to DOT (dot), render them through
// Graphviz with a content-addressed image cache (render), print and apply
// the JSON Schema (schema, validate), manage published documents (store),
// serve the HTTP API (serve) and pick files interactively (browse).
//
// Settings come from orgdot.yaml and ORGDOT_* environment variables via
// viper; see [Settings]. Logging uses charmbracelet/log on stderr, with
// --verbose enabling debug output.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/orgdot/pkg/buildinfo"
	"github.com/matzehuels/orgdot/pkg/dot"
	"github.com/matzehuels/orgdot/pkg/errors"
	orgio "github.com/matzehuels/orgdot/pkg/io"
	"github.com/matzehuels/orgdot/pkg/org"
	"github.com/matzehuels/orgdot/pkg/pipeline"
	"github.com/matzehuels/orgdot/pkg/render"
	"github.com/matzehuels/orgdot/pkg/storage"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "orgdot"

	// envPrefix prefixes every settings environment variable.
	envPrefix = "ORGDOT"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// settingsPath is the --settings flag; empty searches the default locations.
	settingsPath string

	// newRenderer builds the renderer for render and serve. Tests replace it.
	newRenderer func() render.Renderer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:      newLogger(w, level),
		newRenderer: func() render.Renderer { return render.NewGraphviz() },
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "orgdot turns organization models into Graphviz diagrams",
		Long:         `orgdot compiles organization models (purposes, people, projects, production systems, property and progress metrics, and the relationships between them) into Graphviz DOT, renders them to images and keeps the results in a pluggable store.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.settingsPath, "settings", "", "settings file (default ./orgdot.yaml, then the data directory)")

	root.AddCommand(c.dotCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.schemaCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// storeMode selects the store behind a runner.
type storeMode int

const (
	memoryStore     storeMode = iota // process-local, nothing persists
	configuredStore                  // the backend from settings
	cacheStore                       // configuredStore unless render.cache is off
)

// newRunner creates a pipeline runner over the store selected by mode.
// Flags in bind override settings as in loadSettings.
func (c *CLI) newRunner(ctx context.Context, mode storeMode, bind map[string]*pflag.Flag) (*pipeline.Runner, *Settings, error) {
	s, err := loadSettings(c.settingsPath, bind)
	if err != nil {
		return nil, nil, err
	}
	if mode == cacheStore && !s.Render.Cache {
		mode = memoryStore
	}
	var st storage.Store = storage.NewMemory()
	if mode != memoryStore {
		st, err = storage.Open(ctx, s.Storage)
		if err != nil {
			return nil, nil, err
		}
		c.Logger.Debug("opened store", "backend", s.Storage.Backend)
	}
	return pipeline.NewRunner(st, c.newRenderer(), nil, c.Logger), s, nil
}

// =============================================================================
// Paths
// =============================================================================

// dataDir returns the data directory using XDG standard (~/.local/share/orgdot/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// =============================================================================
// Input Helpers
// =============================================================================

// dotFlags are the compile flags shared by dot and render.
type dotFlags struct {
	config string
	layout string
	strict bool
}

func (f *dotFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "DOT config file (TOML or JSON)")
	cmd.Flags().StringVarP(&f.layout, "layout", "l", "", "force layout: hierarchical, clustered or flat")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "reject organizations with dangling or duplicate IDs")
}

// options loads the config and layout flags into pipeline options.
func (f *dotFlags) options(o *org.Organization) (pipeline.Options, error) {
	opts := pipeline.Options{Organization: o, Strict: f.strict}
	cfg, err := dot.LoadConfig(f.config)
	if err != nil {
		return opts, err
	}
	opts.Config = &cfg
	if f.layout != "" {
		l, err := dot.ParseLayout(f.layout)
		if err != nil {
			return opts, err
		}
		opts.Layout = &l
	}
	return opts, nil
}

// readOrganization loads an organization file, or JSON from stdin for "-".
func readOrganization(path string, stdin io.Reader) (*org.Organization, error) {
	if path == "-" {
		return orgio.ReadJSON(stdin)
	}
	return orgio.Import(path)
}

// isDOTFile reports whether path names DOT source rather than an organization.
func isDOTFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dot", ".gv":
		return true
	}
	return false
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) ([]render.Format, error) {
	if s == "" {
		return []render.Format{render.SVG}, nil
	}
	var out []render.Format
	for _, part := range strings.Split(s, ",") {
		f, err := render.ParseFormat(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// baseName strips the directory and extension from path.
func baseName(path string) string {
	if path == "-" {
		return "organization"
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// writeOutput writes data to path, or to w when path is "" or "-".
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "create output dir")
		}
	}
	return os.WriteFile(path, data, 0o644)
}
