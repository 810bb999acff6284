package report

import (
	"fmt"
	"strings"
)

// ExtPDF is the extension of generated documents.
const ExtPDF = "pdf"

// BuildFilename derives the output filename for an export:
//
//	{CASE_ID}_ExecutiveSummary_{version}_{YYYY-MM-DD}.{ext}
//
// The case id is uppercased and the date is the calendar date of
// ExportedAt in its own offset, as written in the request. An empty ext defaults to [ExtPDF].
func BuildFilename(m Metadata, ext string) string {
	if ext == "" {
		ext = ExtPDF
	}
	return fmt.Sprintf("%s_ExecutiveSummary_%s_%s.%s",
		strings.ToUpper(strings.TrimSpace(m.CaseID)),
		m.Version(),
		m.ExportedAt.Format("2006-01-02"),
		strings.TrimPrefix(ext, "."),
	)
}
