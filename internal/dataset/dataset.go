// Package dataset loads the patient table once and exposes it as an
// immutable record set shared by every view.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Sohaib432002/Dashboard/internal/record"
)

// ErrUnavailable reports a dataset that could not be loaded or has no rows.
// Callers test for it with errors.Is; there is no retry.
var ErrUnavailable = errors.New("dataset unavailable")

// Options controls how a dataset is read.
type Options struct {
	// Sheet selects the workbook sheet for .xlsx sources; empty means first.
	Sheet string
	// Timeout bounds network fetches; 0 uses DefaultTimeout.
	Timeout time.Duration
	// HTTPClient overrides the client used for URL sources.
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Dataset is a loaded, read-only record set.
type Dataset struct {
	id      uuid.UUID
	name    string
	columns []string
	missing []string
	records []record.PatientRecord
	issues  map[string]int
}

// Load reads location and normalizes every row.
func Load(ctx context.Context, location string, opt Options) (*Dataset, error) {
	start := time.Now()
	t, err := ReadTable(ctx, location, opt)
	if err != nil {
		opt.Logger.Error().Err(err).Str("location", location).Msg("dataset load failed")
		return nil, err
	}
	ds, err := FromTable(displayName(location), t, opt.Logger)
	if err != nil {
		return nil, err
	}
	opt.Logger.Info().
		Str("dataset_id", ds.id.String()).
		Str("name", ds.name).
		Int("records", len(ds.records)).
		Dur("took", time.Since(start)).
		Msg("dataset loaded")
	return ds, nil
}

// FromTable normalizes a raw table into a Dataset. A table without data
// rows is unavailable.
func FromTable(name string, t *Table, log zerolog.Logger) (*Dataset, error) {
	if t == nil || len(t.Rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no rows", ErrUnavailable, name)
	}
	ds := &Dataset{
		id:      uuid.New(),
		name:    name,
		columns: append([]string(nil), t.Header...),
		records: make([]record.PatientRecord, 0, len(t.Rows)),
		issues:  map[string]int{},
	}
	present := make(map[string]bool, len(t.Header))
	for _, h := range t.Header {
		present[h] = true
	}
	for _, c := range record.Columns {
		if !present[c] {
			ds.missing = append(ds.missing, c)
		}
	}
	if len(ds.missing) > 0 {
		log.Warn().Strs("columns", ds.missing).Msg("dataset is missing expected columns")
	}

	for i := range t.Rows {
		r, bad := record.Normalize(t.Row(i))
		for _, col := range bad {
			ds.issues[col]++
		}
		ds.records = append(ds.records, r)
	}
	for _, col := range ds.IssueColumns() {
		log.Debug().Str("column", col).Int("values", ds.issues[col]).Msg("unparseable values treated as absent")
	}
	return ds, nil
}

func displayName(location string) string {
	if base := filepath.Base(location); base != "." && base != "/" {
		return base
	}
	return location
}

// ID identifies this load; it is logged and stamped on exports.
func (d *Dataset) ID() uuid.UUID { return d.id }

func (d *Dataset) Name() string { return d.name }

// Len is the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of the record set in file order.
func (d *Dataset) Records() []record.PatientRecord {
	return append([]record.PatientRecord(nil), d.records...)
}

// Columns returns the header as read.
func (d *Dataset) Columns() []string { return append([]string(nil), d.columns...) }

// MissingColumns lists expected columns the source did not provide.
func (d *Dataset) MissingColumns() []string { return append([]string(nil), d.missing...) }

// ParseIssues maps a column to the number of non-empty values that could
// not be parsed.
func (d *Dataset) ParseIssues() map[string]int {
	out := make(map[string]int, len(d.issues))
	for k, v := range d.issues {
		out[k] = v
	}
	return out
}

// IssueColumns returns the columns with parse issues, sorted.
func (d *Dataset) IssueColumns() []string {
	out := make([]string, 0, len(d.issues))
	for k := range d.issues {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
