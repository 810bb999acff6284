package io

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/execreport/pkg/errors"
	"github.com/matzehuels/execreport/pkg/report"
)

// RequestFile is a decoded request whose charts are not yet loaded.
type RequestFile struct {
	Metadata report.Metadata `json:"metadata"`
	Payload  report.Payload  `json:"payload"`
	Charts   []ChartSpec     `json:"charts,omitempty"`

	// BaseDir resolves relative chart paths. ImportRequest sets it to the
	// directory of the request file.
	BaseDir string `json:"-"`
}

// ChartSpec locates one chart image.
type ChartSpec struct {
	Title  string `json:"title"`
	Data   []byte `json:"data,omitempty"`
	Path   string `json:"path,omitempty"`
	URL    string `json:"url,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// ReadRequest decodes a request from r. Malformed JSON is an
// INVALID_FORMAT error. ReadRequest does not close r.
func ReadRequest(r io.Reader) (*RequestFile, error) {
	var rf RequestFile
	if err := json.NewDecoder(r).Decode(&rf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request")
	}
	return &rf, nil
}

// ImportRequest reads the request file at path.
func ImportRequest(path string) (*RequestFile, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "request file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	rf, err := ReadRequest(f)
	if err != nil {
		return nil, err
	}
	rf.BaseDir = filepath.Dir(path)
	return rf, nil
}

// Resolve loads the charts and returns the complete request. opts.BaseDir
// defaults to rf.BaseDir.
func (rf *RequestFile) Resolve(ctx context.Context, opts LoadOptions) (report.Request, error) {
	if opts.BaseDir == "" {
		opts.BaseDir = rf.BaseDir
	}
	charts, err := LoadCharts(ctx, rf.Charts, opts)
	if err != nil {
		return report.Request{}, err
	}
	return report.Request{
		Metadata: rf.Metadata,
		Payload:  rf.Payload,
		Charts:   charts,
	}, nil
}
