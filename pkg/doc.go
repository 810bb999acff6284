// Package pkg provides the libraries behind execreport, a generator for
// paginated executive summary PDFs.
//
// # Overview
//
// A request carries case metadata, a financial, risk and action payload and
// optional chart images. It flows through:
//
//	request JSON
//	     ↓
//	[io] (decode, load charts)
//	     ↓
//	[pipeline] (validate, cache lookup, archive)
//	     ↓
//	[render] (row layout, pagination, PDF)
//	     ↓
//	<CASE>_ExecutiveSummary_<version>_<date>.pdf
//
// # Main Packages
//
// [report] - Request types, validation, filename rules and locale aware
// number and date formatting.
//
// [render] - The layered renderer: surfaces, theme, blocks, the layout
// engine and the executive summary document.
//
// [pipeline] - Orchestration shared by the CLI and the HTTP server.
//
// [cache] - Document and chart caches (file, Redis) with retry helpers.
//
// [archive] - Export history (JSON lines file, MongoDB).
//
// [server] - HTTP API over the pipeline.
//
// [config], [errors], [observability] and [buildinfo] hold the ambient
// concerns.
//
// # Quick Start
//
//	rf, _ := io.ImportRequest("request.json")
//	req, _ := rf.Resolve(ctx, io.LoadOptions{})
//	runner := pipeline.NewRunner(nil, nil, nil, logger)
//	res, _ := runner.Execute(ctx, req, pipeline.Options{})
//	os.WriteFile(res.Filename, res.Data, 0o644)
//
// [report]: https://pkg.go.dev/github.com/matzehuels/execreport/pkg/report
// [render]: https://pkg.go.dev/github.com/matzehuels/execreport/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/execreport/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/execreport/pkg/cache
// [archive]: https://pkg.go.dev/github.com/matzehuels/execreport/pkg/archive
// [server]: https://pkg.go.dev/github.com/matzehuels/execreport/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/execreport/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/execreport/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/execreport/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/execreport/pkg/buildinfo
// [io]: https://pkg.go.dev/github.com/matzehuels/execreport/pkg/io
package pkg
