// Package report defines the executive summary data model.
//
// A [Request] bundles everything needed to produce one document:
//
//   - [Payload]: the business data (financial, risk, actions)
//   - [Metadata]: case identity and export timestamp
//   - [ChartImage]: pre-rasterized charts, embedded as-is
//
// All strings in a payload are already resolved for display; rendering
// performs no translation lookups. Static labels that the renderer adds on
// its own (card titles, section labels, placeholders) live in [Labels] and
// can be overridden from configuration.
//
// [BuildFilename] derives the deterministic output filename and
// [Formatter] turns nullable numbers into display strings.
package report
