package record

import "strconv"

// Gender is the normalized patient gender.
type Gender int

const (
	GenderUnknown Gender = iota
	Male
	Female
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "Male"
	case Female:
		return "Female"
	default:
		return "Unknown"
	}
}

// GallstoneStatus is the normalized gallstone diagnosis.
type GallstoneStatus int

const (
	GallstoneUnknown GallstoneStatus = iota
	Present
	Absent
)

func (s GallstoneStatus) String() string {
	switch s {
	case Present:
		return "Present"
	case Absent:
		return "Absent"
	default:
		return "Unknown"
	}
}

// Flag is a comorbidity-style yes/no column that may also be unknown.
type Flag int

const (
	FlagUnknown Flag = iota
	No
	Yes
)

// Bool reports whether the flag is set. Unknown reads as false.
func (f Flag) Bool() bool { return f == Yes }

func (f Flag) String() string {
	switch f {
	case Yes:
		return "Yes"
	case No:
		return "No"
	default:
		return "Unknown"
	}
}

// Age is a whole number of years, or unknown.
type Age struct {
	Years int
	Known bool
}

func (a Age) String() string {
	if !a.Known {
		return "unknown"
	}
	return strconv.Itoa(a.Years)
}

// Measure is a nullable real-valued measurement. The zero Measure is absent;
// a present zero is a valid reading.
type Measure struct {
	Value float64
	Valid bool
}

// Of returns a present measurement.
func Of(v float64) Measure { return Measure{Value: v, Valid: true} }

// NoValue is the absent-measurement marker.
var NoValue Measure

// Above reports whether the measure is present and strictly greater than t.
func (m Measure) Above(t float64) bool { return m.Valid && m.Value > t }

// Within reports whether the measure is present and lo <= v <= hi.
func (m Measure) Within(lo, hi float64) bool {
	return m.Valid && m.Value >= lo && m.Value <= hi
}

// Ptr returns nil for an absent measure, so encoders emit null.
func (m Measure) Ptr() *float64 {
	if !m.Valid {
		return nil
	}
	v := m.Value
	return &v
}

// PatientRecord is one normalized dataset row. Records are values and are
// never mutated after load.
type PatientRecord struct {
	Age    Age
	Gender Gender

	BMI               Measure
	Glucose           Measure
	TotalCholesterol  Measure
	LDL               Measure
	HDL               Measure
	Triglyceride      Measure
	TotalBodyWater    Measure
	VisceralFatRating Measure
	TotalFatContent   Measure
	MuscleMass        Measure
	LeanMassPercent   Measure

	Gallstone GallstoneStatus

	Comorbidity           Flag
	DiabetesMellitus      Flag
	CoronaryArteryDisease Flag
	Hyperlipidemia        Flag
}
