package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/execreport/pkg/config"
	"github.com/matzehuels/execreport/pkg/errors"
	pkgio "github.com/matzehuels/execreport/pkg/io"
	"github.com/matzehuels/execreport/pkg/pipeline"
	"github.com/matzehuels/execreport/pkg/report"
)

// renderOpts holds the flags shared by render and inspect.
type renderOpts struct {
	output        string // output file or directory
	reportVersion string // overrides the request's report version
	exportedAt    string // overrides the request's export timestamp
	locale        string
	currency      string
	noCache       bool
}

func (o *renderOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.reportVersion, "report-version", "", "report version used in the filename (default from request or config)")
	cmd.Flags().StringVar(&o.exportedAt, "exported-at", "", "export timestamp, RFC 3339 or YYYY-MM-DD (default from request, else now)")
	cmd.Flags().StringVar(&o.locale, "locale", "", "number formatting locale, e.g. da-DK (default from config)")
	cmd.Flags().StringVar(&o.currency, "currency", "", "currency code appended to amounts (default from config)")
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <request.json>",
		Short: "Render an executive summary PDF",
		Long: `Render an executive summary PDF from a request file.

The request file carries the case metadata, the payload and optional charts.
Charts may be inline base64 data, a path relative to the request file, or a
URL. The document is written to --output, or to the configured output
directory under its standard filename:

  <CASE>_ExecutiveSummary_<version>_<YYYY-MM-DD>.pdf

Identical requests produce identical bytes, so repeated renders are served
from the local cache unless --no-cache is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or directory (default config output_dir)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the document cache")
	opts.register(cmd)
	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	popts, err := pipelineOptions(cfg, opts)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Loading request...")
	spinner.Start()
	defer spinner.Stop()

	req, err := c.loadRequest(ctx, runner, input, opts)
	if err != nil {
		return err
	}

	spinner.SetMessage("Rendering executive summary...")
	res, err := runner.Execute(ctx, req, popts)
	if err != nil {
		return err
	}

	path, err := outputPath(opts.output, cfg.Report.OutputDir, res.Filename)
	if err != nil {
		return err
	}
	spinner.SetMessage("Writing " + filepath.Base(path) + "...")
	if err := pkgio.WritePDF(path, res.Data); err != nil {
		return err
	}

	spinner.StopWithSuccess("Rendered executive summary for " + strings.ToUpper(req.Metadata.CaseID))
	printFile(path)
	printStats(res.Pages, res.Rows, len(res.Data), res.CacheHit)
	for _, w := range res.Overflows {
		printWarning("Row %d %v overflows page %d by %.0fpt", w.Row, w.Cards, w.Page, w.Height-w.Available)
	}
	return nil
}

// loadRequest imports the request file, resolves its charts and applies
// the --exported-at override.
func (c *CLI) loadRequest(ctx context.Context, runner *pipeline.Runner, input string, opts renderOpts) (report.Request, error) {
	prog := newProgress(c.Logger)
	rf, err := pkgio.ImportRequest(input)
	if err != nil {
		return report.Request{}, err
	}
	req, err := rf.Resolve(ctx, pkgio.LoadOptions{
		Cache:  runner.Cache,
		Keyer:  runner.Keyer,
		Logger: c.Logger,
	})
	if err != nil {
		return report.Request{}, err
	}
	prog.done("Loaded " + plural(len(req.Charts), "chart"))

	switch {
	case opts.exportedAt != "":
		t, err := parseExportedAt(opts.exportedAt)
		if err != nil {
			return report.Request{}, err
		}
		req.Metadata.ExportedAt = t
	case req.Metadata.ExportedAt.IsZero():
		req.Metadata.ExportedAt = time.Now().UTC()
		c.Logger.Debug("request has no export timestamp, using now", "exported_at", req.Metadata.ExportedAt)
	}
	return req, nil
}

// pipelineOptions layers command flags over the configuration.
func pipelineOptions(cfg *config.Config, opts renderOpts) (pipeline.Options, error) {
	p := pipeline.OptionsFromConfig(cfg)
	if opts.reportVersion != "" {
		if err := errors.ValidateReportVersion(opts.reportVersion); err != nil {
			return p, err
		}
		p.Version = opts.reportVersion
	}
	if opts.locale != "" {
		p.Format.Locale = opts.locale
	}
	if opts.currency != "" {
		p.Format.Currency = opts.currency
	}
	p.SkipCache = opts.noCache
	return p, nil
}

// outputPath resolves where the document is written. An existing
// directory, or a path ending in a separator, receives the standard
// filename.
func outputPath(output, defaultDir, filename string) (string, error) {
	if output == "" {
		if defaultDir == "" {
			defaultDir = "."
		}
		return filepath.Join(defaultDir, filename), nil
	}
	if strings.HasSuffix(output, string(os.PathSeparator)) || strings.HasSuffix(output, "/") {
		return filepath.Join(output, filename), nil
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, filename), nil
	}
	return output, nil
}
