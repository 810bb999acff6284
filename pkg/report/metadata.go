package report

import (
	"strings"
	"time"

	"github.com/matzehuels/execreport/pkg/errors"
)

// DefaultReportVersion is used when the caller does not supply a version.
const DefaultReportVersion = "v1"

// Metadata identifies an export. It feeds the filename and the footer and is
// never mutated by rendering.
type Metadata struct {
	CaseID        string    `json:"case_id"`
	CaseName      string    `json:"case_name,omitempty"`
	Subject       string    `json:"subject,omitempty"`
	ExportedBy    string    `json:"exported_by,omitempty"`
	ExportedAt    time.Time `json:"exported_at"`
	ReportVersion string    `json:"report_version,omitempty"`
}

// Version returns the report version, falling back to [DefaultReportVersion].
func (m Metadata) Version() string {
	if v := strings.TrimSpace(m.ReportVersion); v != "" {
		return v
	}
	return DefaultReportVersion
}

// Validate checks the fields required before any drawing starts.
func (m Metadata) Validate() error {
	if err := errors.ValidateCaseID(m.CaseID); err != nil {
		return err
	}
	if m.ExportedAt.IsZero() {
		return errors.New(errors.ErrCodeInvalidPayload, "export timestamp is required")
	}
	return errors.ValidateReportVersion(m.Version())
}

// ChartImage is a chart rasterized by the caller.
type ChartImage struct {
	Title  string `json:"title"`
	Data   []byte `json:"data"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Aspect returns height over width, or 0 when the width is unknown.
func (c ChartImage) Aspect() float64 {
	if c.Width <= 0 || c.Height <= 0 {
		return 0
	}
	return float64(c.Height) / float64(c.Width)
}

// Empty reports whether the chart carries no image bytes.
func (c ChartImage) Empty() bool {
	return len(c.Data) == 0
}

// Request is everything needed to generate one executive summary.
type Request struct {
	Metadata Metadata     `json:"metadata"`
	Payload  Payload      `json:"payload"`
	Charts   []ChartImage `json:"charts,omitempty"`
}

// Validate checks the request before rendering.
func (r Request) Validate() error {
	return r.Metadata.Validate()
}

// SubjectLine returns the subject shown in headers and footers: the
// metadata subject when set, otherwise the payload subject.
func (r Request) SubjectLine() string {
	if s := strings.TrimSpace(r.Metadata.Subject); s != "" {
		return s
	}
	return strings.TrimSpace(r.Payload.Subject)
}
