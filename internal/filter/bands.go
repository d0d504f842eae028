package filter

import (
	"fmt"
	"strings"

	"github.com/Sohaib432002/Dashboard/internal/record"
)

// Lipid is a lab value that can be filtered by named band.
type Lipid int

const (
	Cholesterol Lipid = iota
	LDL
	HDL
	Triglyceride
)

// Lipids lists the band-filterable fields in display order.
var Lipids = []Lipid{Cholesterol, LDL, HDL, Triglyceride}

// Field returns the record field the lipid filter reads.
func (l Lipid) Field() record.Field {
	switch l {
	case LDL:
		return record.LDL
	case HDL:
		return record.HDL
	case Triglyceride:
		return record.Triglyceride
	default:
		return record.TotalCholesterol
	}
}

func (l Lipid) String() string { return l.Field().Label() }

// ParseLipid accepts tc|cholesterol|ldl|hdl|tg|triglyceride.
func ParseLipid(s string) (Lipid, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tc", "cholesterol", "total cholesterol":
		return Cholesterol, nil
	case "ldl":
		return LDL, nil
	case "hdl":
		return HDL, nil
	case "tg", "triglyceride":
		return Triglyceride, nil
	}
	return Cholesterol, fmt.Errorf("%w: lipid %q", ErrInvalidCriteria, s)
}

// Band is a named lab range. The zero value passes every record.
type Band int

const (
	AnyBand Band = iota
	Normal
	Over
	High
)

func (b Band) String() string {
	switch b {
	case Normal:
		return "Normal"
	case Over:
		return "Over"
	case High:
		return "High"
	default:
		return "All"
	}
}

// ParseBand accepts all|normal|over|high.
func ParseBand(s string) (Band, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return AnyBand, nil
	case "normal":
		return Normal, nil
	case "over", "borderline":
		return Over, nil
	case "high":
		return High, nil
	}
	return AnyBand, fmt.Errorf("%w: band %q (use all|normal|over|high)", ErrInvalidCriteria, s)
}

// Bounds is an inclusive numeric range.
type Bounds struct {
	Min, Max float64
}

// Contains reports whether m is present and inside the bounds.
func (b Bounds) Contains(m record.Measure) bool { return m.Within(b.Min, b.Max) }

// bandTable holds the literal band boundaries, inclusive on both ends.
var bandTable = map[Lipid]map[Band]Bounds{
	Cholesterol: {
		Normal: {0, 200},
		Over:   {201, 239},
		High:   {240, 400},
	},
	LDL: {
		Normal: {0, 129},
		Over:   {130, 159},
		High:   {160, 300},
	},
	HDL: {
		Normal: {40, 60},
		Over:   {61, 100},
		High:   {101, 150},
	},
	Triglyceride: {
		Normal: {0, 149},
		Over:   {150, 199},
		High:   {200, 300},
	},
}

// BandBounds returns the bounds of b for l. ok is false for AnyBand.
func BandBounds(l Lipid, b Band) (Bounds, bool) {
	bb, ok := bandTable[l][b]
	return bb, ok
}

// InBand reports whether the record's lipid value lies in band b. AnyBand
// always passes; an absent value fails every named band.
func InBand(r record.PatientRecord, l Lipid, b Band) bool {
	if b == AnyBand {
		return true
	}
	bb, ok := BandBounds(l, b)
	if !ok {
		return false
	}
	return bb.Contains(l.Field().Of(r))
}
