package report

import (
	"encoding/json"
	"strings"
)

// Payload is the business data rendered into an executive summary.
// It is owned by the caller and never modified during rendering.
type Payload struct {
	Subject   string    `json:"subject"`
	Financial Financial `json:"financial"`
	Risk      Risk      `json:"risk"`
	Actions   Actions   `json:"actions"`
}

// Financial holds latest-year figures. Nil pointers render as unavailable.
type Financial struct {
	LatestYear        *int      `json:"latest_year,omitempty"`
	GrossProfit       *float64  `json:"gross_profit,omitempty"`
	ProfitAfterTax    *float64  `json:"profit_after_tax,omitempty"`
	YoYGrossChange    *float64  `json:"yoy_gross_change,omitempty"`
	YoYProfitChange   *float64  `json:"yoy_profit_change,omitempty"`
	Liquidity         *float64  `json:"liquidity,omitempty"`
	DSO               *float64  `json:"dso,omitempty"`
	IntercompanyLoans *float64  `json:"intercompany_loans,omitempty"`
	Alerts            []Finding `json:"alerts,omitempty"`
}

// Risk holds the compliance and risk assessment.
type Risk struct {
	ComplianceIssue   string      `json:"compliance_issue,omitempty"`
	TaxCaseExposure   *float64    `json:"tax_case_exposure,omitempty"`
	SectorRiskSummary string      `json:"sector_risk_summary,omitempty"`
	Scores            []RiskScore `json:"risk_scores,omitempty"`
	RedFlags          []Finding   `json:"red_flags,omitempty"`
}

// Unit values used by [Finding].
const (
	UnitCurrency = "DKK"
	UnitDays     = "days"
)

// Finding is a financial alert or a red flag: a labelled value with an
// explanation.
type Finding struct {
	ID          string   `json:"id,omitempty"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	Unit        string   `json:"unit,omitempty"`
}

// RiskScore is one weighted risk category.
type RiskScore struct {
	Category      string    `json:"category"`
	Level         RiskLevel `json:"risk_level"`
	Justification string    `json:"justification,omitempty"`
}

// Actions groups the action radar lists.
type Actions struct {
	UpcomingDeadlines []ActionItem    `json:"upcoming_deadlines,omitempty"`
	BoardActionables  []ActionItem    `json:"board_actionables,omitempty"`
	CriticalEvents    []TimelineEvent `json:"critical_events,omitempty"`
	UpcomingEvents    []TimelineEvent `json:"upcoming_events,omitempty"`
}

// ActionItem is a task with an owner and a horizon.
type ActionItem struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	OwnerRole   string `json:"owner_role,omitempty"`
	TimeHorizon string `json:"time_horizon,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

// TimelineEvent is a dated event. Date is either YYYY-MM-DD or RFC 3339.
type TimelineEvent struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// RiskLevel classifies a [RiskScore].
type RiskLevel string

// Risk levels, most severe first.
const (
	RiskCritical RiskLevel = "CRITICAL"
	RiskHigh     RiskLevel = "HIGH"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskLow      RiskLevel = "LOW"
	RiskUnknown  RiskLevel = "N/A"
)

// riskAliases maps accepted spellings to canonical levels. The Danish keys
// are what the dashboard emits.
var riskAliases = map[string]RiskLevel{
	"CRITICAL": RiskCritical,
	"KRITISK":  RiskCritical,
	"HIGH":     RiskHigh,
	"HØJ":      RiskHigh,
	"MEDIUM":   RiskMedium,
	"MODERATE": RiskMedium,
	"MODERAT":  RiskMedium,
	"LOW":      RiskLow,
	"LAV":      RiskLow,
	"N/A":      RiskUnknown,
}

// ParseRiskLevel normalizes s to a canonical level. Unknown values map to
// [RiskUnknown].
func ParseRiskLevel(s string) RiskLevel {
	if lvl, ok := riskAliases[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return lvl
	}
	return RiskUnknown
}

// UnmarshalJSON accepts any spelling known to [ParseRiskLevel].
func (l *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = ParseRiskLevel(s)
	return nil
}
