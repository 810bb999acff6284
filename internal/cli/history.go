package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/execreport/pkg/archive"
	"github.com/matzehuels/execreport/pkg/pipeline"
)

// historyCommand creates the history command.
func (c *CLI) historyCommand() *cobra.Command {
	var (
		caseID      string
		limit       int
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived exports",
		Long: `List archived exports, newest first.

Every rendered document is recorded in the configured archive with its
filename, page count and content hash. Use --interactive to browse the list
and show the details of one export.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHistory(cmd.Context(), archive.Query{CaseID: caseID, Limit: limit}, interactive)
		},
	}

	cmd.Flags().StringVar(&caseID, "case", "", "only show exports of this case")
	cmd.Flags().IntVarP(&limit, "limit", "n", archive.DefaultLimit, "maximum number of exports")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse exports interactively")
	return cmd
}

func (c *CLI) runHistory(ctx context.Context, q archive.Query, interactive bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	store, err := pipeline.OpenArchive(ctx, cfg.Archive)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.List(ctx, q)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		printInfo("No exports archived yet")
		return nil
	}

	if !interactive {
		fmt.Fprintln(stdout, historyTable(recs, time.Now()))
		return nil
	}

	final, err := tea.NewProgram(NewExportListModel(recs), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(ExportListModel); ok && m.Selected != nil {
		printRecord(*m.Selected)
	}
	return nil
}

func historyTable(recs []archive.Record, now time.Time) string {
	rows := make([][]string, len(recs))
	for i, rec := range recs {
		rows[i] = recordColumns(rec, now)
	}
	return exportTable(rows, func(row, col int) lipgloss.Style {
		if col == 0 || col == 1 {
			return StyleValue
		}
		return StyleDim
	}).Render()
}

func printRecord(rec archive.Record) {
	fmt.Fprintln(stdout, StyleTitle.Render(rec.Filename))
	printKeyValue("ID", rec.ID)
	printKeyValue("Case", rec.CaseID)
	if rec.CaseName != "" {
		printKeyValue("Name", rec.CaseName)
	}
	printKeyValue("Version", rec.ReportVersion)
	printKeyValue("Pages", fmt.Sprint(rec.Pages))
	printKeyValue("Size", formatBytes(rec.Bytes))
	printKeyValue("SHA-256", rec.SHA256)
	printKeyValue("Exported", rec.ExportedAt.Format(time.RFC3339))
	if rec.ExportedBy != "" {
		printKeyValue("By", rec.ExportedBy)
	}
	printKeyValue("Archived", rec.CreatedAt.Format(time.RFC3339))
}
