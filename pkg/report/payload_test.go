package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/matzehuels/execreport/pkg/errors"
)

func TestParseRiskLevel(t *testing.T) {
	tests := map[string]RiskLevel{
		"CRITICAL": RiskCritical,
		"kritisk":  RiskCritical,
		"HØJ":      RiskHigh,
		"high":     RiskHigh,
		"MODERAT":  RiskMedium,
		" low ":    RiskLow,
		"LAV":      RiskLow,
		"N/A":      RiskUnknown,
		"bogus":    RiskUnknown,
		"":         RiskUnknown,
	}
	for in, want := range tests {
		if got := ParseRiskLevel(in); got != want {
			t.Errorf("ParseRiskLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRiskScoreUnmarshal(t *testing.T) {
	var s RiskScore
	if err := json.Unmarshal([]byte(`{"category":"Tax","risk_level":"KRITISK"}`), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s.Level != RiskCritical {
		t.Errorf("Level = %q, want %q", s.Level, RiskCritical)
	}
}

func TestMetadataValidate(t *testing.T) {
	at := time.Date(2025, 11, 30, 22, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		meta Metadata
		code errors.Code
	}{
		{"valid", Metadata{CaseID: "umit-2024", ExportedAt: at}, ""},
		{"missing case id", Metadata{ExportedAt: at}, errors.ErrCodeInvalidPayload},
		{"missing timestamp", Metadata{CaseID: "x"}, errors.ErrCodeInvalidPayload},
		{"bad version", Metadata{CaseID: "x", ExportedAt: at, ReportVersion: "v 2"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.meta.Validate()
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Validate() code = %q, want %q (err=%v)", got, tt.code, err)
			}
		})
	}
}

func TestChartImageAspect(t *testing.T) {
	if got := (ChartImage{Width: 800, Height: 400}).Aspect(); got != 0.5 {
		t.Errorf("Aspect() = %v, want 0.5", got)
	}
	if got := (ChartImage{Width: 0, Height: 400}).Aspect(); got != 0 {
		t.Errorf("Aspect() with zero width = %v, want 0", got)
	}
}

func TestRequestSubjectLine(t *testing.T) {
	r := Request{Payload: Payload{Subject: "tsl"}}
	if got := r.SubjectLine(); got != "tsl" {
		t.Errorf("SubjectLine() = %q", got)
	}
	r.Metadata.Subject = "TS Logistik"
	if got := r.SubjectLine(); got != "TS Logistik" {
		t.Errorf("SubjectLine() = %q", got)
	}
}
