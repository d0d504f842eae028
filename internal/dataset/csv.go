package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

type csvSource struct{}

func (csvSource) CanRead(location string) bool {
	name := strings.ToLower(location)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

func (csvSource) Read(_ context.Context, location string, _ Options) (*Table, error) {
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return readCSV(f, sniffDelimiter(location))
}

// sniffDelimiter picks the delimiter from the file name.
func sniffDelimiter(name string) rune {
	if strings.HasSuffix(strings.ToLower(name), ".tsv") {
		return '\t'
	}
	return ','
}

// readCSV reads a delimited stream with a header row.
func readCSV(in io.Reader, delim rune) (*Table, error) {
	r := csv.NewReader(in)
	r.ReuseRecord = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	r.Comma = delim

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, append([]string(nil), rec...))
	}
	return fromRows(rows), nil
}
