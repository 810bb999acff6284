// Package render groups the packages that turn a report request into a
// paginated PDF.
//
// # Overview
//
// Rendering is split into layers, each depending only on those below it:
//
//   - [surface]: drawing primitives and text measurement over fpdf, plus a
//     recording surface for tests
//   - [theme]: page geometry, palette, typography and icon glyphs
//   - [block]: content blocks that either measure or draw themselves
//   - [layout]: the row packing and pagination engine
//   - [executive]: the executive summary document built from those parts
//
// # Usage
//
//	doc, err := executive.Generate(req,
//	    executive.WithFormatter(f),
//	    executive.WithLogger(logger),
//	)
//	os.WriteFile(doc.Filename, doc.Data, 0o644)
//
// Blocks are measured and drawn by the same code path, so the height used
// for page-fit decisions is the height actually drawn.
//
// [surface]: github.com/matzehuels/execreport/pkg/render/surface
// [theme]: github.com/matzehuels/execreport/pkg/render/theme
// [block]: github.com/matzehuels/execreport/pkg/render/block
// [layout]: github.com/matzehuels/execreport/pkg/render/layout
// [executive]: github.com/matzehuels/execreport/pkg/render/executive
package render
