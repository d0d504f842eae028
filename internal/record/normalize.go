package record

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize converts one raw dataset row into a PatientRecord. It never
// fails: every field that is missing or cannot be read degrades to its
// absent/unknown value. The second return lists the columns whose value was
// non-empty but could not be interpreted.
func Normalize(row map[string]string) (PatientRecord, []string) {
	var (
		r      PatientRecord
		issues []string
	)
	note := func(col string, ok bool) {
		if !ok {
			issues = append(issues, col)
		}
	}

	if raw, ok := lookup(row, ColAge); ok {
		var good bool
		r.Age, good = parseAge(raw)
		note(ColAge, good)
	}
	if raw, ok := lookup(row, ColGender); ok {
		r.Gender = ParseGender(raw)
		note(ColGender, r.Gender != GenderUnknown)
	}
	if raw, ok := lookup(row, ColGallstoneStatus); ok {
		r.Gallstone = ParseGallstone(raw)
		note(ColGallstoneStatus, r.Gallstone != GallstoneUnknown)
	}
	for _, f := range Fields {
		raw, ok := lookup(row, f.Column())
		if !ok {
			continue
		}
		m := ParseMeasure(raw)
		note(f.Column(), m.Valid)
		f.set(&r, m)
	}
	for _, f := range FlagFields {
		raw, ok := lookup(row, f.Column())
		if !ok {
			continue
		}
		v := ParseFlag(raw)
		note(f.Column(), v != FlagUnknown)
		f.set(&r, v)
	}
	return r, issues
}

// lookup returns the cleaned value for col, and false when the column is
// missing or blank.
func lookup(row map[string]string, col string) (string, bool) {
	raw, ok := row[col]
	if !ok {
		return "", false
	}
	v := clean(raw)
	return v, v != ""
}

func clean(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

// ParseMeasure reads a real number. Empty, non-numeric and non-finite input
// is absent. A comma is accepted as decimal separator when no dot is present.
func ParseMeasure(s string) Measure {
	v, ok := parseNumber(s)
	if !ok {
		return NoValue
	}
	return Of(v)
}

func parseNumber(s string) (float64, bool) {
	raw := clean(s)
	if raw == "" {
		return 0, false
	}
	if strings.Contains(raw, ",") && !strings.Contains(raw, ".") {
		raw = strings.ReplaceAll(raw, ",", ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseAge truncates fractional years; negative ages are unknown.
func parseAge(s string) (Age, bool) {
	f, ok := parseNumber(s)
	if !ok || f < 0 {
		return Age{}, false
	}
	return Age{Years: int(f), Known: true}, true
}

// ParseGender maps "0"/"male" to Male and "1"/"female" to Female.
func ParseGender(s string) Gender {
	switch strings.ToLower(clean(s)) {
	case "0", "male":
		return Male
	case "1", "female":
		return Female
	}
	return GenderUnknown
}

// ParseGallstone maps "1"/"yes" to Present and "0"/"no" to Absent. Anything
// else, including blanks, is Unknown and is never folded into Absent.
func ParseGallstone(s string) GallstoneStatus {
	switch strings.ToLower(clean(s)) {
	case "1", "yes":
		return Present
	case "0", "no":
		return Absent
	}
	return GallstoneUnknown
}

// ParseFlag compares numerically: 1 is Yes, 0 is No. Text such as "yes" or
// "true" is Unknown, which Flag.Bool reports as false.
func ParseFlag(s string) Flag {
	f, ok := parseNumber(s)
	switch {
	case !ok:
		return FlagUnknown
	case f == 1:
		return Yes
	case f == 0:
		return No
	}
	return FlagUnknown
}
