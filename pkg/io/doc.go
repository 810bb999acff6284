// Package io reads export requests and writes finished documents.
//
// # Request files
//
// A request file is JSON with the report metadata, the payload and an
// optional list of charts:
//
//	{
//	  "metadata": {"case_id": "tsl-2024", "exported_at": "2025-11-30T09:30:00Z"},
//	  "payload": {"subject": "Tech Solutions ApS", "financial": {...}, ...},
//	  "charts": [
//	    {"title": "Revenue", "path": "charts/revenue.png"},
//	    {"title": "Margin", "url": "https://charts.example.com/margin.png"},
//	    {"title": "Cash", "data": "iVBORw0KGgo..."}
//	  ]
//	}
//
// Each chart names exactly one source: inline base64 "data", a "path"
// relative to the request file, or a "url" (http, https or a base64 data
// URL). "width" and "height" are optional; when missing they are read from
// the image header. Charts that resolve to no bytes are dropped.
//
// # Loading
//
//	rf, err := io.ImportRequest("request.json")
//	req, err := rf.Resolve(ctx, io.LoadOptions{Cache: c})
//
// Remote charts are fetched with retry and exponential backoff on network
// failures and 5xx/429 responses, and stored in the optional cache.
//
// # Writing
//
// [WritePDF] writes through a temporary file and renames it into place, so
// a crash never leaves a truncated document behind.
package io
