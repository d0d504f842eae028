package aggregate

import (
	"github.com/Sohaib432002/Dashboard/internal/filter"
	"github.com/Sohaib432002/Dashboard/internal/record"
)

// Count is one labelled count.
type Count struct {
	Label string
	Count int
}

// Tally is a per-label count in the label set's declared order.
type Tally struct {
	Counts []Count
	// Excluded counts records the classifier could not label.
	Excluded int
}

// Get returns the count for label, 0 when absent.
func (t Tally) Get(label string) int {
	for _, c := range t.Counts {
		if c.Label == label {
			return c.Count
		}
	}
	return 0
}

// Total sums every label count. Excluded records are not included.
func (t Tally) Total() int {
	n := 0
	for _, c := range t.Counts {
		n += c.Count
	}
	return n
}

// Classifier assigns a record to one label. ok is false when the record has
// no label and must be excluded.
type Classifier func(r record.PatientRecord) (label string, ok bool)

// TallyOptions tunes TallyOf.
type TallyOptions struct {
	// SuppressEmpty drops labels with a zero count.
	SuppressEmpty bool
}

// TallyOf counts records per label. Labels are reported in the order given;
// a classifier result outside labels is treated as excluded.
func TallyOf(records []record.PatientRecord, labels []string, classify Classifier, opts TallyOptions) Tally {
	idx := make(map[string]int, len(labels))
	counts := make([]Count, len(labels))
	for i, l := range labels {
		idx[l] = i
		counts[i] = Count{Label: l}
	}
	t := Tally{}
	for _, r := range records {
		label, ok := classify(r)
		if !ok {
			t.Excluded++
			continue
		}
		i, known := idx[label]
		if !known {
			t.Excluded++
			continue
		}
		counts[i].Count++
	}
	if opts.SuppressEmpty {
		kept := counts[:0]
		for _, c := range counts {
			if c.Count > 0 {
				kept = append(kept, c)
			}
		}
		counts = kept
	}
	t.Counts = counts
	return t
}

// Gallstone labels.
const (
	LabelPresent = "Present"
	LabelAbsent  = "Absent"
)

// GallstoneLabels is the declared order for gallstone tallies.
var GallstoneLabels = []string{LabelPresent, LabelAbsent}

// GallstoneLabel classifies by gallstone status. Unknown is excluded and
// surfaces through Tally.Excluded.
func GallstoneLabel(r record.PatientRecord) (string, bool) {
	switch r.Gallstone {
	case record.Present:
		return LabelPresent, true
	case record.Absent:
		return LabelAbsent, true
	}
	return "", false
}

// GenderLabels is the declared order for gender tallies.
var GenderLabels = []string{record.Male.String(), record.Female.String()}

// GenderLabel classifies by gender; unknown is excluded.
func GenderLabel(r record.PatientRecord) (string, bool) {
	if r.Gender == record.GenderUnknown {
		return "", false
	}
	return r.Gender.String(), true
}

// FlagLabel classifies by a yes/no flag. Unknown flags read as no.
func FlagLabel(f record.FlagField, yes, no string) Classifier {
	return func(r record.PatientRecord) (string, bool) {
		if f.Of(r).Bool() {
			return yes, true
		}
		return no, true
	}
}

// RangeLabel classifies a numeric value by the first range containing it.
// Absent or out-of-range values are excluded.
func RangeLabel(acc Accessor, ranges []Range) Classifier {
	return func(r record.PatientRecord) (string, bool) {
		m := acc(r)
		if !m.Valid {
			return "", false
		}
		for _, rg := range ranges {
			if rg.Contains(m.Value) {
				return rg.Label, true
			}
		}
		return "", false
	}
}

// Labels returns the range labels in order.
func Labels(ranges []Range) []string {
	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = r.Label
	}
	return out
}

// NamedPredicate labels a predicate for CountWhere.
type NamedPredicate struct {
	Label string
	Match filter.Predicate
}

// CountWhere counts, per label, the records passing its predicate. A record
// may be counted under several labels.
func CountWhere(records []record.PatientRecord, preds []NamedPredicate) []Count {
	out := make([]Count, len(preds))
	for i, p := range preds {
		out[i].Label = p.Label
		for _, r := range records {
			if p.Match(r) {
				out[i].Count++
			}
		}
	}
	return out
}

// NamedField labels a numeric field for Sums.
type NamedField struct {
	Label string
	Field record.Field
}

// Sum is the total of one field's present values.
type Sum struct {
	Label   string
	Value   float64
	Present int
}

// Sums adds up the present values of each field.
func Sums(records []record.PatientRecord, fields []NamedField) []Sum {
	out := make([]Sum, len(fields))
	for i, f := range fields {
		out[i].Label = f.Label
		for _, r := range records {
			if m := f.Field.Of(r); m.Valid {
				out[i].Value += m.Value
				out[i].Present++
			}
		}
	}
	return out
}
