// Package analysis profiles a raw dataset table: column coverage against the
// patient column contract, per-column statistics, robust outliers, group
// summaries and correlations, rendered as a sectioned Markdown report.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/Sohaib432002/Dashboard/internal/dataset"
	"github.com/Sohaib432002/Dashboard/internal/record"
)

// Options controls profiling behavior.
type Options struct {
	// MaxRows limits rows processed; 0 means unlimited.
	MaxRows int
	// SampleRows determines how many example rows to include in the report.
	SampleRows int
	// GroupBy computes per-group summaries for the given column names.
	GroupBy []string
	// Correlations computes Pearson correlations among numeric columns.
	Correlations bool
	// Outlier detection via robust Z-score (MAD). Counts |z| > OutlierThreshold.
	Outliers         bool
	OutlierThreshold float64
}

// DefaultOptions groups by gallstone status and enables every section.
func DefaultOptions() Options {
	return Options{
		SampleRows:       5,
		GroupBy:          []string{record.ColGallstoneStatus},
		Correlations:     true,
		Outliers:         true,
		OutlierThreshold: 3.5,
	}
}

// Report is a markdown-friendly profile of a tabular dataset.
type Report struct {
	Name      string
	ID        string
	Rows      int
	Processed int
	Cols      []ColumnSummary
	// Missing lists contract columns absent from the header.
	Missing  []string
	Samples  [][]string
	Warnings []string
	Groups   []GroupResult
	Corr     *CorrMatrix
}

// ColumnSummary captures inferred type and statistics per column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|categorical|text|empty
	NonNull int
	Missing int
	Unique  int
	// Unparsed counts non-empty values of a numeric column that are not numbers.
	Unparsed int
	// Numeric stats
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	Std    float64
	// Outliers (robust Z via MAD)
	OutliersCount    int
	OutliersMaxAbsZ  float64
	OutlierThreshold float64
	// Categorical top values
	TopValues []CategoryCount
}

type CategoryCount struct {
	Value string
	Count int
}

// GroupResult captures aggregated metrics per group key.
type GroupResult struct {
	Key     string
	Size    int
	Metrics map[string]NumSummary // by column name
}

type NumSummary struct {
	Count          int
	Min, Max, Mean float64
}

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric
// columns. Pairs without enough overlapping values are NaN.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// PairCorr is a simple correlation pair summary.
type PairCorr struct {
	A, B string
	R    float64
}

const maxCategories = 20

type colAcc struct {
	nonNil   int
	miss     int
	numCnt   int
	txtCnt   int
	cats     map[string]int
	values   []float64 // aligned with processed rows; NaN when not numeric
	presentN []float64
}

// Profile analyzes t and returns a Report. It never fails; a nil or empty
// table yields an empty report.
func Profile(name string, t *dataset.Table, opt Options) *Report {
	rep := &Report{Name: name}
	if t == nil {
		return rep
	}
	ncol := len(t.Header)
	rep.Rows = len(t.Rows)
	rep.Processed = rep.Rows
	if opt.MaxRows > 0 && rep.Processed > opt.MaxRows {
		rep.Processed = opt.MaxRows
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("only the first %d of %d rows were profiled", rep.Processed, rep.Rows))
	}
	sampleRows := opt.SampleRows
	if sampleRows <= 0 {
		sampleRows = 5
	}
	rep.Missing = missingColumns(t.Header)
	if len(rep.Missing) > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("%d expected column(s) missing; affected fields are treated as absent", len(rep.Missing)))
	}

	cols := make([]*colAcc, ncol)
	for j := range cols {
		cols[j] = &colAcc{cats: map[string]int{}, values: make([]float64, rep.Processed)}
	}
	for i := 0; i < rep.Processed; i++ {
		row := t.Rows[i]
		if len(rep.Samples) < sampleRows {
			rep.Samples = append(rep.Samples, append([]string(nil), row...))
		}
		for j, c := range cols {
			c.values[i] = math.NaN()
			v := ""
			if j < len(row) {
				v = strings.TrimSpace(row[j])
			}
			if v == "" {
				c.miss++
				continue
			}
			c.nonNil++
			c.cats[v]++
			if m := record.ParseMeasure(v); m.Valid {
				c.numCnt++
				c.values[i] = m.Value
				c.presentN = append(c.presentN, m.Value)
				continue
			}
			c.txtCnt++
		}
	}

	rep.Cols = make([]ColumnSummary, 0, ncol)
	var numCols []int
	for j, c := range cols {
		s := ColumnSummary{Name: t.Header[j], NonNull: c.nonNil, Missing: c.miss, Unique: len(c.cats)}
		switch {
		case c.nonNil == 0:
			s.Kind = "empty"
		case c.numCnt > 0 && c.numCnt >= c.txtCnt:
			s.Kind = "numeric"
			s.Unparsed = c.txtCnt
			summarizeNumeric(&s, c.presentN, opt)
			numCols = append(numCols, j)
			if c.txtCnt > 0 {
				rep.Warnings = append(rep.Warnings, fmt.Sprintf("%s: %d non-numeric value(s) read as absent", safeName(s.Name), c.txtCnt))
			}
		case len(c.cats) <= maxCategories:
			s.Kind = "categorical"
			s.TopValues = topValues(c.cats, 5)
		default:
			s.Kind = "text"
			s.TopValues = topValues(c.cats, 3)
		}
		rep.Cols = append(rep.Cols, s)
	}

	if len(opt.GroupBy) > 0 {
		rep.Groups = groupSummaries(t, cols, numCols, opt.GroupBy, rep.Processed)
	}
	if opt.Correlations && len(numCols) >= 2 {
		rep.Corr = correlations(t.Header, cols, numCols)
	}
	return rep
}

func missingColumns(header []string) []string {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}
	var out []string
	for _, c := range record.Columns {
		if !have[c] {
			out = append(out, c)
		}
	}
	return out
}

func summarizeNumeric(s *ColumnSummary, vals stats.Float64Data, opt Options) {
	if len(vals) == 0 {
		return
	}
	s.Min, _ = stats.Min(vals)
	s.Max, _ = stats.Max(vals)
	s.Mean, _ = stats.Mean(vals)
	s.Median, _ = stats.Median(vals)
	if len(vals) > 1 {
		s.Std, _ = stats.StandardDeviationSample(vals)
	}
	if !opt.Outliers || len(vals) < 8 {
		return
	}
	thr := opt.OutlierThreshold
	if thr <= 0 {
		thr = 3.5
	}
	s.OutlierThreshold = thr
	mad, err := stats.MedianAbsoluteDeviationPopulation(vals)
	if err != nil || mad == 0 {
		return
	}
	for _, v := range vals {
		az := math.Abs(0.6745 * (v - s.Median) / mad)
		if az > thr {
			s.OutliersCount++
		}
		if az > s.OutliersMaxAbsZ {
			s.OutliersMaxAbsZ = az
		}
	}
}

func topValues(cats map[string]int, n int) []CategoryCount {
	out := make([]CategoryCount, 0, len(cats))
	for k, v := range cats {
		out = append(out, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func groupSummaries(t *dataset.Table, cols []*colAcc, numCols []int, by []string, processed int) []GroupResult {
	idx := map[string]int{}
	for j, h := range t.Header {
		idx[strings.ToLower(h)] = j
	}
	var keyCols []int
	for _, name := range by {
		if j, ok := idx[strings.ToLower(strings.TrimSpace(name))]; ok {
			keyCols = append(keyCols, j)
		}
	}
	if len(keyCols) == 0 {
		return nil
	}

	type gAcc struct {
		size int
		vals map[int][]float64
	}
	groups := map[string]*gAcc{}
	for i := 0; i < processed; i++ {
		parts := make([]string, 0, len(keyCols))
		for _, j := range keyCols {
			v := strings.TrimSpace(t.Rows[i][j])
			if v == "" {
				v = "(blank)"
			}
			parts = append(parts, fmt.Sprintf("%s=%s", t.Header[j], safeVal(v)))
		}
		key := strings.Join(parts, " | ")
		g := groups[key]
		if g == nil {
			g = &gAcc{vals: map[int][]float64{}}
			groups[key] = g
		}
		g.size++
		for _, j := range numCols {
			if v := cols[j].values[i]; !math.IsNaN(v) {
				g.vals[j] = append(g.vals[j], v)
			}
		}
	}

	out := make([]GroupResult, 0, len(groups))
	for key, g := range groups {
		gr := GroupResult{Key: key, Size: g.size, Metrics: map[string]NumSummary{}}
		for j, vals := range g.vals {
			data := stats.Float64Data(vals)
			ns := NumSummary{Count: len(vals)}
			ns.Min, _ = stats.Min(data)
			ns.Max, _ = stats.Max(data)
			ns.Mean, _ = stats.Mean(data)
			gr.Metrics[t.Header[j]] = ns
		}
		out = append(out, gr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// correlations computes pairwise-complete Pearson r with gonum.
func correlations(header []string, cols []*colAcc, numCols []int) *CorrMatrix {
	n := len(numCols)
	m := &CorrMatrix{Columns: make([]string, n), Values: make([][]float64, n)}
	for a, j := range numCols {
		m.Columns[a] = header[j]
		m.Values[a] = make([]float64, n)
		m.Values[a][a] = 1
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			xa, xb := cols[numCols[a]].values, cols[numCols[b]].values
			var xs, ys []float64
			for i := range xa {
				if math.IsNaN(xa[i]) || math.IsNaN(xb[i]) {
					continue
				}
				xs = append(xs, xa[i])
				ys = append(ys, xb[i])
			}
			r := math.NaN()
			if len(xs) >= 3 {
				r = stat.Correlation(xs, ys, nil)
			}
			m.Values[a][b] = r
			m.Values[b][a] = r
		}
	}
	return m
}

// TopPairs lists correlation pairs by descending |r|, skipping undefined ones.
func (m *CorrMatrix) TopPairs(limit int) []PairCorr {
	var pairs []PairCorr
	n := len(m.Columns)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := m.Values[i][j]
			if math.IsNaN(r) {
				continue
			}
			pairs = append(pairs, PairCorr{A: m.Columns[i], B: m.Columns[j], R: r})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		ai, aj := math.Abs(pairs[i].R), math.Abs(pairs[j].R)
		if ai == aj {
			return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
		}
		return ai > aj
	})
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}
