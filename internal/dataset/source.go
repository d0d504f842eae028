package dataset

import (
	"context"
	"fmt"
	"strings"
)

// Table is the raw header and rows of a tabular source. Rows are padded to
// the header width.
type Table struct {
	Header []string
	Rows   [][]string
}

// Row returns row i as a column-name mapping.
func (t *Table) Row(i int) map[string]string {
	m := make(map[string]string, len(t.Header))
	for j, h := range t.Header {
		if j < len(t.Rows[i]) {
			m[h] = t.Rows[i][j]
		}
	}
	return m
}

// Source reads one kind of dataset location.
type Source interface {
	CanRead(location string) bool
	Read(ctx context.Context, location string, opt Options) (*Table, error)
}

var registry []Source

// Register adds a source implementation to the registry. Earlier
// registrations win.
func Register(s Source) {
	registry = append(registry, s)
}

func init() {
	Register(httpSource{})
	Register(csvSource{})
	Register(xlsxSource{})
}

// ReadTable selects a source for location and reads its raw table.
func ReadTable(ctx context.Context, location string, opt Options) (*Table, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: no dataset location configured", ErrUnavailable)
	}
	for _, s := range registry {
		if s.CanRead(location) {
			t, err := s.Read(ctx, location, opt)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: unsupported dataset %q (use .csv, .tsv, .xlsx or an http(s) URL)", ErrUnavailable, location)
}

// fromRows turns raw rows (header first) into a Table. Headers are trimmed,
// blank rows skipped and short rows padded.
func fromRows(rows [][]string) *Table {
	if len(rows) == 0 {
		return &Table{}
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	t := &Table{Header: header}
	for _, r := range rows[1:] {
		if blank(r) {
			continue
		}
		row := make([]string, len(header))
		copy(row, r)
		t.Rows = append(t.Rows, row)
	}
	return t
}

func blank(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
