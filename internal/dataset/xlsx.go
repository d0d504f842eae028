package dataset

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxSource struct{}

func (xlsxSource) CanRead(location string) bool {
	return strings.HasSuffix(strings.ToLower(location), ".xlsx")
}

func (xlsxSource) Read(_ context.Context, location string, opt Options) (*Table, error) {
	f, err := excelize.OpenFile(location)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	return readWorkbook(f, opt.Sheet)
}

// readXLSX reads a workbook from a stream, e.g. an HTTP body.
func readXLSX(in io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(in)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	return readWorkbook(f, sheet)
}

// readWorkbook reads the named sheet, or the first one when sheet is empty.
func readWorkbook(f *excelize.File, sheet string) (*Table, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return fromRows(rows), nil
}
