// Package archive keeps a record of every exported document.
//
// Records carry the identity and a content hash of a document, never the
// document itself. Backends:
//
//   - [NullStore]: archiving disabled
//   - [FileStore]: JSON lines in a local file, used by the CLI
//   - [MongoStore]: a MongoDB collection shared by server instances
package archive

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/execreport/pkg/cache"
	"github.com/matzehuels/execreport/pkg/report"
)

// DefaultLimit bounds List when the query sets no limit.
const DefaultLimit = 50

// Record describes one export.
type Record struct {
	ID            string    `json:"id" bson:"_id"`
	CaseID        string    `json:"case_id" bson:"case_id"`
	CaseName      string    `json:"case_name,omitempty" bson:"case_name,omitempty"`
	Filename      string    `json:"filename" bson:"filename"`
	SHA256        string    `json:"sha256" bson:"sha256"`
	Pages         int       `json:"pages" bson:"pages"`
	Bytes         int       `json:"bytes" bson:"bytes"`
	ReportVersion string    `json:"report_version" bson:"report_version"`
	ExportedAt    time.Time `json:"exported_at" bson:"exported_at"`
	ExportedBy    string    `json:"exported_by,omitempty" bson:"exported_by,omitempty"`
	CacheHit      bool      `json:"cache_hit" bson:"cache_hit"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// NewRecord builds a record for a generated document. Case ids are stored
// upper-cased, matching the filename.
func NewRecord(meta report.Metadata, filename string, data []byte, pages int, cacheHit bool) Record {
	return Record{
		ID:            uuid.NewString(),
		CaseID:        normalizeCaseID(meta.CaseID),
		CaseName:      meta.CaseName,
		Filename:      filename,
		SHA256:        cache.Hash(data),
		Pages:         pages,
		Bytes:         len(data),
		ReportVersion: meta.Version(),
		ExportedAt:    meta.ExportedAt.UTC(),
		ExportedBy:    meta.ExportedBy,
		CacheHit:      cacheHit,
		CreatedAt:     time.Now().UTC(),
	}
}

// Query filters List. An empty CaseID matches every case.
type Query struct {
	CaseID string
	Limit  int
}

func (q Query) normalize() Query {
	q.CaseID = normalizeCaseID(q.CaseID)
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	return q
}

func normalizeCaseID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// Store persists records.
type Store interface {
	// Save appends a record.
	Save(ctx context.Context, rec Record) error

	// List returns matching records, newest first.
	List(ctx context.Context, q Query) ([]Record, error)

	// Close releases backend resources.
	Close() error
}

// NullStore discards records.
type NullStore struct{}

// NewNullStore returns a store that keeps nothing.
func NewNullStore() Store { return NullStore{} }

func (NullStore) Save(context.Context, Record) error            { return nil }
func (NullStore) List(context.Context, Query) ([]Record, error) { return nil, nil }
func (NullStore) Close() error                                  { return nil }
