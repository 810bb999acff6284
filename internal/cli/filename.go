package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/execreport/pkg/errors"
	pkgio "github.com/matzehuels/execreport/pkg/io"
	"github.com/matzehuels/execreport/pkg/report"
)

// filenameCommand creates the filename command.
func (c *CLI) filenameCommand() *cobra.Command {
	var caseID, reportVersion, exportedAt string

	cmd := &cobra.Command{
		Use:   "filename [request.json]",
		Short: "Print the export filename for a case",
		Long: `Print the filename an export would be written under.

Either pass a request file or give --case-id. --report-version and
--exported-at override the request values; the export date defaults to
today (UTC).`,
		Example: `  execreport filename --case-id tsl-2024 --exported-at 2025-11-30
  execreport filename request.json --report-version v2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var meta report.Metadata
			switch {
			case len(args) == 1:
				rf, err := pkgio.ImportRequest(args[0])
				if err != nil {
					return err
				}
				meta = rf.Metadata
			case caseID != "":
				meta.CaseID = caseID
			default:
				return errors.New(errors.ErrCodeInvalidInput, "pass a request file or --case-id")
			}

			name, err := c.buildFilename(meta, reportVersion, exportedAt)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, name)
			return nil
		},
	}

	cmd.Flags().StringVar(&caseID, "case-id", "", "case identifier")
	cmd.Flags().StringVar(&reportVersion, "report-version", "", "report version (default from request or config)")
	cmd.Flags().StringVar(&exportedAt, "exported-at", "", "export timestamp, RFC 3339 or YYYY-MM-DD")
	return cmd
}

func (c *CLI) buildFilename(meta report.Metadata, reportVersion, exportedAt string) (string, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return "", err
	}
	switch {
	case reportVersion != "":
		meta.ReportVersion = reportVersion
	case meta.ReportVersion == "":
		meta.ReportVersion = cfg.Report.Version
	}
	switch {
	case exportedAt != "":
		t, err := parseExportedAt(exportedAt)
		if err != nil {
			return "", err
		}
		meta.ExportedAt = t
	case meta.ExportedAt.IsZero():
		meta.ExportedAt = time.Now().UTC()
	}
	if err := meta.Validate(); err != nil {
		return "", err
	}
	return report.BuildFilename(meta, report.ExtPDF), nil
}
