package report

// Labels are the static strings the renderer adds around payload data.
// Format strings use fmt verbs as noted per field.
type Labels struct {
	ReportTitle   string `toml:"report_title" json:"report_title"`
	SubjectLine   string `toml:"subject_line" json:"subject_line"`     // %s subject
	GeneratedLine string `toml:"generated_line" json:"generated_line"` // %s date

	FinancialTitle    string `toml:"financial_title" json:"financial_title"`
	LatestYear        string `toml:"latest_year" json:"latest_year"` // %s year
	GrossProfit       string `toml:"gross_profit" json:"gross_profit"`
	GrossChange       string `toml:"gross_change" json:"gross_change"`
	ProfitAfterTax    string `toml:"profit_after_tax" json:"profit_after_tax"`
	ProfitChange      string `toml:"profit_change" json:"profit_change"`
	Liquidity         string `toml:"liquidity" json:"liquidity"`
	DSO               string `toml:"dso" json:"dso"`
	IntercompanyLoans string `toml:"intercompany_loans" json:"intercompany_loans"`
	Observations      string `toml:"observations" json:"observations"`

	RiskTitle      string `toml:"risk_title" json:"risk_title"`
	SectorAnalysis string `toml:"sector_analysis" json:"sector_analysis"`
	Compliance     string `toml:"compliance" json:"compliance"`
	TaxExposure    string `toml:"tax_exposure" json:"tax_exposure"`
	NoneRegistered string `toml:"none_registered" json:"none_registered"`
	WeightedRisks  string `toml:"weighted_risks" json:"weighted_risks"`
	RedFlags       string `toml:"red_flags" json:"red_flags"`

	RiskCritical string `toml:"risk_critical" json:"risk_critical"`
	RiskHigh     string `toml:"risk_high" json:"risk_high"`
	RiskMedium   string `toml:"risk_medium" json:"risk_medium"`
	RiskLow      string `toml:"risk_low" json:"risk_low"`
	RiskUnknown  string `toml:"risk_unknown" json:"risk_unknown"`

	ActionsTitle     string `toml:"actions_title" json:"actions_title"`
	Deadlines        string `toml:"deadlines" json:"deadlines"`
	BoardActionables string `toml:"board_actionables" json:"board_actionables"`
	CriticalEvents   string `toml:"critical_events" json:"critical_events"`
	UpcomingEvents   string `toml:"upcoming_events" json:"upcoming_events"`
	Responsibility   string `toml:"responsibility" json:"responsibility"`
	Horizon          string `toml:"horizon" json:"horizon"`
	NotSpecified     string `toml:"not_specified" json:"not_specified"`
	NotApplicable    string `toml:"not_applicable" json:"not_applicable"`

	Unavailable string `toml:"unavailable" json:"unavailable"`
	Days        string `toml:"days" json:"days"`               // %d count
	FooterMeta  string `toml:"footer_meta" json:"footer_meta"` // %s date, %s subject
	FooterPage  string `toml:"footer_page" json:"footer_page"` // %d page, %d total
}

// DefaultLabels returns the English label set.
func DefaultLabels() Labels {
	return Labels{
		ReportTitle:   "Executive Summary",
		SubjectLine:   "Subject: %s",
		GeneratedLine: "Generated %s",

		FinancialTitle:    "Financial overview",
		LatestYear:        "Latest fiscal year: %s",
		GrossProfit:       "Gross profit",
		GrossChange:       "Gross profit YoY",
		ProfitAfterTax:    "Profit after tax",
		ProfitChange:      "Profit YoY",
		Liquidity:         "Liquidity",
		DSO:               "DSO",
		IntercompanyLoans: "Intercompany loans",
		Observations:      "Observations",

		RiskTitle:      "Risk overview",
		SectorAnalysis: "Sector analysis",
		Compliance:     "Compliance note",
		TaxExposure:    "Tax case exposure",
		NoneRegistered: "None registered",
		WeightedRisks:  "Weighted risk scores",
		RedFlags:       "Red flags",

		RiskCritical: "Critical",
		RiskHigh:     "High",
		RiskMedium:   "Moderate",
		RiskLow:      "Low",
		RiskUnknown:  "N/A",

		ActionsTitle:     "Action radar",
		Deadlines:        "Upcoming deadlines (30 days)",
		BoardActionables: "Board actionables",
		CriticalEvents:   "Critical events",
		UpcomingEvents:   "Next milestones (60 days)",
		Responsibility:   "Responsibility",
		Horizon:          "Horizon",
		NotSpecified:     "Not specified",
		NotApplicable:    "N/A",

		Unavailable: "Not available",
		Days:        "%d days",
		FooterMeta:  "Generated %s · %s",
		FooterPage:  "Page %d of %d",
	}
}

// RiskLevel returns the badge text for lvl.
func (l Labels) RiskLevel(lvl RiskLevel) string {
	switch lvl {
	case RiskCritical:
		return l.RiskCritical
	case RiskHigh:
		return l.RiskHigh
	case RiskMedium:
		return l.RiskMedium
	case RiskLow:
		return l.RiskLow
	default:
		return l.RiskUnknown
	}
}
