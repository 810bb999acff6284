package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/matzehuels/execreport/pkg/errors"
)

// Formatting defaults.
const (
	DefaultLocale     = "en-GB"
	DefaultCurrency   = "DKK"
	DefaultDateLayout = "2 Jan 2006"
)

// FormatOptions configures a [Formatter].
type FormatOptions struct {
	Locale     string // BCP 47 tag controlling digit grouping
	Currency   string // ISO code appended to amounts
	DateLayout string // Go time layout for dates
}

// Formatter renders nullable payload values as display strings.
type Formatter struct {
	labels  Labels
	opts    FormatOptions
	printer *message.Printer
}

// NewFormatter creates a formatter. Zero option fields take the package
// defaults; an unparsable locale is an INVALID_INPUT error.
func NewFormatter(labels Labels, opts FormatOptions) (*Formatter, error) {
	if opts.Locale == "" {
		opts.Locale = DefaultLocale
	}
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	if opts.DateLayout == "" {
		opts.DateLayout = DefaultDateLayout
	}
	tag, err := language.Parse(opts.Locale)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid locale %q", opts.Locale)
	}
	return &Formatter{
		labels:  labels,
		opts:    opts,
		printer: message.NewPrinter(tag),
	}, nil
}

// Labels returns the label set the formatter was created with.
func (f *Formatter) Labels() Labels { return f.labels }

// Currency formats an amount without decimals, e.g. "12,000,000 DKK".
func (f *Formatter) Currency(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return f.labels.Unavailable
	}
	amount := f.printer.Sprint(number.Decimal(math.Round(*v), number.MaxFractionDigits(0)))
	return amount + " " + f.opts.Currency
}

// Percent formats a signed change with one decimal, e.g. "+3.2%".
func (f *Formatter) Percent(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return f.labels.Unavailable
	}
	return fmt.Sprintf("%+.1f%%", *v)
}

// Days formats a day count, e.g. "48 days".
func (f *Formatter) Days(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return f.labels.Unavailable
	}
	return fmt.Sprintf(f.labels.Days, int(math.Round(*v)))
}

// Year formats a fiscal year.
func (f *Formatter) Year(y *int) string {
	if y == nil {
		return f.labels.Unavailable
	}
	return strconv.Itoa(*y)
}

// Date reformats a YYYY-MM-DD or RFC 3339 date. Unparsable input is
// returned unchanged; empty input renders as unavailable.
func (f *Formatter) Date(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return f.labels.Unavailable
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(f.opts.DateLayout)
		}
	}
	return s
}

// Time formats the calendar date of t in its own offset.
func (f *Formatter) Time(t time.Time) string {
	if t.IsZero() {
		return f.labels.Unavailable
	}
	return t.Format(f.opts.DateLayout)
}

// FindingValue formats a finding's value according to its unit.
func (f *Formatter) FindingValue(fd Finding) string {
	if strings.EqualFold(fd.Unit, UnitCurrency) {
		return f.Currency(fd.Value)
	}
	return f.Days(fd.Value)
}
