package aggregate

import (
	"github.com/montanaflynn/stats"

	"github.com/Sohaib432002/Dashboard/internal/record"
)

// FieldStats summarizes the present values of one field.
type FieldStats struct {
	// Count is the number of records considered.
	Count int
	// Present is the number of records with a value.
	Present int
	Mean    float64
	Median  float64
	StdDev  float64
	Min     float64
	Max     float64
}

// Values collects the present values of acc in record order.
func Values(records []record.PatientRecord, acc Accessor) stats.Float64Data {
	out := make(stats.Float64Data, 0, len(records))
	for _, r := range records {
		if m := acc(r); m.Valid {
			out = append(out, m.Value)
		}
	}
	return out
}

// Stats computes summary statistics over present values. Absent values are
// excluded from every statistic; no values yields zeros.
func Stats(records []record.PatientRecord, acc Accessor) FieldStats {
	data := Values(records, acc)
	fs := FieldStats{Count: len(records), Present: len(data)}
	if len(data) == 0 {
		return fs
	}
	fs.Mean, _ = stats.Mean(data)
	fs.Median, _ = stats.Median(data)
	fs.StdDev, _ = stats.StandardDeviation(data)
	fs.Min, _ = stats.Min(data)
	fs.Max, _ = stats.Max(data)
	return fs
}

// Mean is the arithmetic mean over present values, 0 when there are none.
func Mean(records []record.PatientRecord, acc Accessor) float64 {
	m, err := stats.Mean(Values(records, acc))
	if err != nil {
		return 0
	}
	return m
}

// RiskThresholds are strict upper limits; exceeding any one marks a record
// high risk.
type RiskThresholds struct {
	BMI              float64
	Glucose          float64
	TotalCholesterol float64
}

// DefaultRisk is BMI > 30, Glucose > 125, TC > 200.
var DefaultRisk = RiskThresholds{BMI: 30, Glucose: 125, TotalCholesterol: 200}

// Breached reports whether r exceeds any threshold. Absent values never do.
func (t RiskThresholds) Breached(r record.PatientRecord) bool {
	return r.BMI.Above(t.BMI) || r.Glucose.Above(t.Glucose) || r.TotalCholesterol.Above(t.TotalCholesterol)
}

// HighRisk counts records breaching DefaultRisk.
func HighRisk(records []record.PatientRecord) int {
	n := 0
	for _, r := range records {
		if DefaultRisk.Breached(r) {
			n++
		}
	}
	return n
}

// Prevalence is the share of gallstone-positive records among those with a
// known status. The data is cross-sectional, so no incidence is derived.
type Prevalence struct {
	Total    int
	Positive int
	Negative int
	Unknown  int
	// Percent is Positive / (Positive+Negative) * 100, 0 with no known status.
	Percent float64
}

// PrevalenceOf computes gallstone prevalence.
func PrevalenceOf(records []record.PatientRecord) Prevalence {
	p := Prevalence{Total: len(records)}
	for _, r := range records {
		switch r.Gallstone {
		case record.Present:
			p.Positive++
		case record.Absent:
			p.Negative++
		default:
			p.Unknown++
		}
	}
	if known := p.Positive + p.Negative; known > 0 {
		p.Percent = float64(p.Positive) / float64(known) * 100
	}
	return p
}
