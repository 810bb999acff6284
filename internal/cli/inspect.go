package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/execreport/pkg/pipeline"
	"github.com/matzehuels/execreport/pkg/render/layout"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		opts   renderOpts
		states bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <request.json>",
		Short: "Show how a request is laid out without writing a PDF",
		Long: `Lay out a request and print where every row lands.

The table lists each row with its cards, page, top position and height in
points. Rows taller than a page are flagged as overflowing. Nothing is
written, cached or archived.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], opts, states)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&states, "states", false, "also print every layout state transition")
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, opts renderOpts, states bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(nil, nil, nil, c.Logger)

	req, err := c.loadRequest(ctx, runner, input, opts)
	if err != nil {
		return err
	}
	popts, err := pipelineOptions(cfg, opts)
	if err != nil {
		return err
	}
	popts.SkipCache = true

	var events []layout.Event
	popts.Observer = func(ev layout.Event) { events = append(events, ev) }

	res, err := runner.Execute(ctx, req, popts)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, StyleTitle.Render(res.Filename))
	fmt.Fprintln(stdout, placementTable(res.Stats.Placements))
	printKeyValue("Pages", fmt.Sprint(res.Stats.Pages))
	printKeyValue("Page breaks", fmt.Sprint(res.Stats.PageBreaks))
	printKeyValue("Size", formatBytes(len(res.Data)))
	for _, w := range res.Overflows {
		printWarning("%s", w.Error())
	}

	if states {
		fmt.Fprintln(stdout)
		for _, ev := range events {
			printDetail("%-22s row %-3d page %-2d y %7.2f", ev.State, ev.Row, ev.Cursor.Page, ev.Cursor.Y)
		}
	}
	return nil
}

// placementTable renders row placements. Overflowing rows are highlighted.
func placementTable(ps []layout.Placement) string {
	rows := make([][]string, len(ps))
	for i, p := range ps {
		overflow := ""
		if p.Overflow {
			overflow = iconWarning
		}
		rows[i] = []string{
			fmt.Sprint(p.Row),
			strings.Join(p.Cards, ", "),
			fmt.Sprint(p.Page),
			fmt.Sprintf("%.2f", p.Y),
			fmt.Sprintf("%.2f", p.Height),
			overflow,
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Row", "Cards", "Page", "Y", "Height", "Overflow").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if row >= 0 && row < len(ps) && ps[row].Overflow {
				return lipgloss.NewStyle().Foreground(colorYellow)
			}
			if col == 1 {
				return StyleValue
			}
			return StyleDim
		}).
		Render()
}
