// Package cli implements the execreport command-line interface.
//
// # Commands
//
//   - render: generate the executive summary PDF for a request file
//   - inspect: lay out a request without writing it and show row placements
//   - filename: print the export filename for a case
//   - serve: run the HTTP API
//   - history: list archived exports
//   - cache, config: manage the document cache and configuration
//
// All commands support --verbose (-v) for debug-level logging and
// --config to select a configuration file.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/execreport/pkg/buildinfo"
	"github.com/matzehuels/execreport/pkg/config"
	"github.com/matzehuels/execreport/pkg/errors"
	"github.com/matzehuels/execreport/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a CLI logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "execreport",
		Short:        "execreport renders executive summary PDFs",
		Long:         `execreport lays out financial, risk and action data for a case as a paginated executive summary PDF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.Path()+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.filenameCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration once per process.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("config loaded", "path", c.configPathOrDefault())
	c.cfg = cfg
	return cfg, nil
}

func (c *CLI) configPathOrDefault() string {
	if c.configPath != "" {
		return c.configPath
	}
	return config.Path()
}

// newRunner opens the configured cache and archive. noCache replaces the
// cache with a NullCache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if noCache {
		local := *cfg
		local.Cache.Backend = config.BackendNone
		cfg = &local
	}
	return pipeline.Open(ctx, cfg, c.Logger)
}

// parseExportedAt accepts RFC 3339 timestamps and plain dates. The offset
// is kept so the export date is the one written.
func parseExportedAt(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeInvalidInput,
		"invalid --exported-at %q (want RFC 3339 or YYYY-MM-DD)", s)
}
