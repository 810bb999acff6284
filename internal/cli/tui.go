package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/execreport/pkg/archive"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// ExportListModel is the bubbletea model for browsing archived exports.
type ExportListModel struct {
	Records  []archive.Record
	Cursor   int
	Selected *archive.Record
	Height   int
	Offset   int
}

// NewExportListModel creates a list over recs, newest first as given.
func NewExportListModel(recs []archive.Record) ExportListModel {
	return ExportListModel{Records: recs, Height: 15}
}

func (m ExportListModel) Init() tea.Cmd {
	return nil
}

func (m ExportListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Records)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Records) == 0 {
				return m, tea.Quit
			}
			rec := m.Records[m.Cursor]
			m.Selected = &rec
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m ExportListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Exports"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Records))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, append([]string{cursor}, recordColumns(m.Records[i], time.Now())...))
	}

	t := exportTable(rows, func(row, col int) lipgloss.Style {
		if m.Offset+row == m.Cursor {
			return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
		}
		if col == 1 || col == 2 {
			return StyleValue
		}
		return StyleDim
	}, "")

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Records))))
	return b.String()
}

// exportTable builds the history table. A lead header adds a first
// column, used for the selection cursor.
func exportTable(rows [][]string, style func(row, col int) lipgloss.Style, lead ...string) *table.Table {
	headers := []string{"Case", "Filename", "Pages", "Size", "Source", "Exported"}
	if len(lead) > 0 {
		headers = append(lead, headers...)
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return style(row, col)
		})
}

func recordColumns(rec archive.Record, now time.Time) []string {
	source := iconFresh
	if rec.CacheHit {
		source = iconCached
	}
	return []string{
		rec.CaseID,
		rec.Filename,
		fmt.Sprint(rec.Pages),
		formatBytes(rec.Bytes),
		source,
		formatRelativeTime(rec.CreatedAt, now),
	}
}

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
