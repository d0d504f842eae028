package filter

import (
	"fmt"
	"strings"

	"github.com/Sohaib432002/Dashboard/internal/record"
)

// Predicate decides whether a record passes one criterion.
type Predicate func(r record.PatientRecord) bool

// AgeBetween passes records with a known age in [lo, hi]. Unknown ages
// never pass an age-bounded query.
func AgeBetween(lo, hi int) Predicate {
	return func(r record.PatientRecord) bool {
		return r.Age.Known && r.Age.Years >= lo && r.Age.Years <= hi
	}
}

// GenderIs passes records whose normalized gender equals g.
func GenderIs(g record.Gender) Predicate {
	return func(r record.PatientRecord) bool { return r.Gender == g }
}

// GallstoneIs passes records whose normalized status equals s.
func GallstoneIs(s record.GallstoneStatus) Predicate {
	return func(r record.PatientRecord) bool { return r.Gallstone == s }
}

// FlagIs passes records whose flag reads as want. Unknown reads as false.
func FlagIs(f record.FlagField, want bool) Predicate {
	return func(r record.PatientRecord) bool { return f.Of(r).Bool() == want }
}

// LipidIn passes records whose lipid value lies in band b.
func LipidIn(l Lipid, b Band) Predicate {
	return func(r record.PatientRecord) bool { return InBand(r, l, b) }
}

// Predicates returns one predicate per active criterion. The age bound is
// always active; choices left at All contribute nothing.
func (c Criteria) Predicates() []Predicate {
	preds := []Predicate{AgeBetween(c.MinAge, c.MaxAge)}
	switch c.Gender {
	case MaleOnly:
		preds = append(preds, GenderIs(record.Male))
	case FemaleOnly:
		preds = append(preds, GenderIs(record.Female))
	}
	switch c.Gallstone {
	case Yes:
		preds = append(preds, GallstoneIs(record.Present))
	case No:
		preds = append(preds, GallstoneIs(record.Absent))
	}
	for _, f := range record.FlagFields {
		switch c.Flag(f) {
		case Yes:
			preds = append(preds, FlagIs(f, true))
		case No:
			preds = append(preds, FlagIs(f, false))
		}
	}
	for _, l := range Lipids {
		if b := c.Band(l); b != AnyBand {
			preds = append(preds, LipidIn(l, b))
		}
	}
	return preds
}

// Matches reports whether r passes every active criterion.
func (c Criteria) Matches(r record.PatientRecord) bool {
	return And(c.Predicates()...)(r)
}

// And composes predicates by conjunction with early exit. No predicates
// passes everything.
func And(preds ...Predicate) Predicate {
	return func(r record.PatientRecord) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Apply returns the records passing c, in their original order. The input
// slice is not modified.
func Apply(records []record.PatientRecord, c Criteria) []record.PatientRecord {
	return Where(records, And(c.Predicates()...))
}

// Where returns the records passing p, in their original order.
func Where(records []record.PatientRecord, p Predicate) []record.PatientRecord {
	out := make([]record.PatientRecord, 0, len(records))
	for _, r := range records {
		if p(r) {
			out = append(out, r)
		}
	}
	return out
}

// AgePreset returns the bounds of a named age range from the comorbidity
// chart: All, 0-20, 21-40, 41-60, 61-80, 81-100.
func AgePreset(name string) (lo, hi int, err error) {
	switch strings.TrimSpace(name) {
	case "", "All", "all":
		return 0, 200, nil
	case "0-20":
		return 0, 20, nil
	case "21-40":
		return 21, 40, nil
	case "41-60":
		return 41, 60, nil
	case "61-80":
		return 61, 80, nil
	case "81-100":
		return 81, 100, nil
	}
	return 0, 0, fmt.Errorf("%w: age preset %q", ErrInvalidCriteria, name)
}
