// Package aggregate computes the chart-ready summaries behind every view:
// histograms, categorical tallies, positional series and summary statistics.
// Every function is pure and returns a zero-valued result for an empty input.
package aggregate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Sohaib432002/Dashboard/internal/record"
)

// Accessor reads one numeric value from a record.
type Accessor func(r record.PatientRecord) record.Measure

// FieldOf returns the accessor for a numeric field.
func FieldOf(f record.Field) Accessor { return f.Of }

// AgeOf reads the age as a measure; unknown ages are absent.
func AgeOf(r record.PatientRecord) record.Measure {
	if !r.Age.Known {
		return record.NoValue
	}
	return record.Of(float64(r.Age.Years))
}

// Range is a half-open interval [Min, Max). Max may be +Inf.
type Range struct {
	Label string
	Min   float64
	Max   float64
}

// Contains reports whether v lies in [Min, Max).
func (r Range) Contains(v float64) bool { return v >= r.Min && v < r.Max }

// Bin is one histogram bucket.
type Bin struct {
	Range
	Count int
}

// Histogram holds ordered bins plus what fell outside them.
type Histogram struct {
	Bins []Bin
	// Dropped counts present values outside every bin.
	Dropped int
	// Missing counts records whose value was absent.
	Missing int
}

// Total is the number of values that landed in a bin.
func (h Histogram) Total() int {
	n := 0
	for _, b := range h.Bins {
		n += b.Count
	}
	return n
}

// maxFixedBins bounds FixedRanges; wider spans yield no bins.
const maxFixedBins = 1 << 16

// FixedRanges splits [start, end) into bins [start+k*w, start+(k+1)*w).
// Integral widths are labelled inclusively ("10-19"); others use the
// exclusive upper bound ("0.5-1"). Edges are rounded to the decimal places
// of start and w, and the last bin is clipped at end. A non-positive width
// or more than maxFixedBins bins yields none.
func FixedRanges(start, w, end float64) []Range {
	if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) || math.IsNaN(start) || math.IsInf(start, 0) || !(end > start) {
		return nil
	}
	span := math.Ceil((end - start) / w)
	if math.IsInf(span, 0) || span > maxFixedBins {
		return nil
	}
	n := int(span)
	scale := math.Pow(10, float64(max(decimals(start), decimals(w))))
	edge := func(k int) float64 {
		v := start + float64(k)*w
		if r := math.Round(v*scale) / scale; !math.IsInf(r, 0) && !math.IsNaN(r) {
			return r
		}
		return v
	}
	integral := w == math.Trunc(w) && start == math.Trunc(start)
	out := make([]Range, 0, n)
	for k := 0; k < n; k++ {
		lo := edge(k)
		if lo >= end {
			break
		}
		hi := math.Min(edge(k+1), end)
		if hi <= lo {
			continue
		}
		var label string
		if integral && hi == math.Trunc(hi) {
			label = fmt.Sprintf("%g-%g", lo, hi-1)
		} else {
			label = fmt.Sprintf("%g-%g", lo, hi)
		}
		out = append(out, Range{Label: label, Min: lo, Max: hi})
	}
	return out
}

// decimals counts the fractional digits of v's shortest decimal form, capped at 15.
func decimals(v float64) int {
	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	return min(len(s)-i-1, 15)
}

// FixedWidth buckets the accessor's values into bins of width w over
// [start, end). Values outside the range are dropped and counted in Dropped.
func FixedWidth(records []record.PatientRecord, acc Accessor, start, w, end float64) Histogram {
	return NamedRanges(records, acc, FixedRanges(start, w, end))
}

// NamedRanges buckets values into caller-declared ranges, in declared order.
// A value is counted in the first range containing it.
func NamedRanges(records []record.PatientRecord, acc Accessor, ranges []Range) Histogram {
	h := Histogram{Bins: make([]Bin, len(ranges))}
	for i, r := range ranges {
		h.Bins[i] = Bin{Range: r}
	}
	for _, r := range records {
		m := acc(r)
		if !m.Valid {
			h.Missing++
			continue
		}
		placed := false
		for i := range h.Bins {
			if h.Bins[i].Contains(m.Value) {
				h.Bins[i].Count++
				placed = true
				break
			}
		}
		if !placed {
			h.Dropped++
		}
	}
	return h
}
