package view

import (
	"math"

	"github.com/Sohaib432002/Dashboard/internal/aggregate"
	"github.com/Sohaib432002/Dashboard/internal/filter"
	"github.com/Sohaib432002/Dashboard/internal/record"
)

// SeriesNote is attached to every positional series panel.
const SeriesNote = "index is the position in the filtered set, not a time axis"

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func rangePanel(key, title, labelKey, valueKey string, acc aggregate.Accessor, ranges []aggregate.Range) PanelSpec {
	return PanelSpec{
		Key: key, Title: title, Kind: KindHistogram,
		build: func(records []record.PatientRecord) ([]Row, Row) {
			h := aggregate.NamedRanges(records, acc, ranges)
			rows := make([]Row, 0, len(h.Bins))
			for _, b := range h.Bins {
				rows = append(rows, Row{{labelKey, b.Label}, {valueKey, b.Count}})
			}
			var extra Row
			if h.Dropped > 0 {
				extra = append(extra, KV{"outOfRange", h.Dropped})
			}
			if h.Missing > 0 {
				extra = append(extra, KV{"missing", h.Missing})
			}
			return rows, extra
		},
	}
}

// subset narrows the records a panel sees.
func subset(p filter.Predicate, spec PanelSpec) PanelSpec {
	build := spec.build
	spec.build = func(records []record.PatientRecord) ([]Row, Row) {
		return build(filter.Where(records, p))
	}
	return spec
}

func histogramPanel(key, title, labelKey string, acc aggregate.Accessor, start, width, end float64) PanelSpec {
	return rangePanel(key, title, labelKey, "count", acc, aggregate.FixedRanges(start, width, end))
}

// tallyPanel counts records per label. When excludedKey is set the excluded
// count is reported beside the chart.
func tallyPanel(key, title, labelKey, valueKey string, labels []string, classify aggregate.Classifier, excludedKey string) PanelSpec {
	return PanelSpec{
		Key: key, Title: title, Kind: KindTally,
		build: func(records []record.PatientRecord) ([]Row, Row) {
			t := aggregate.TallyOf(records, labels, classify, aggregate.TallyOptions{})
			rows := make([]Row, 0, len(t.Counts))
			for _, c := range t.Counts {
				rows = append(rows, Row{{labelKey, c.Label}, {valueKey, c.Count}})
			}
			var extra Row
			if excludedKey != "" {
				extra = Row{{excludedKey, t.Excluded}}
			}
			return rows, extra
		},
	}
}

func gallstonePanel(key, title, labelKey, valueKey string) PanelSpec {
	return tallyPanel(key, title, labelKey, valueKey, aggregate.GallstoneLabels, aggregate.GallstoneLabel, "unknown")
}

func countPanel(key, title string, preds []aggregate.NamedPredicate) PanelSpec {
	return PanelSpec{
		Key: key, Title: title, Kind: KindTally,
		build: func(records []record.PatientRecord) ([]Row, Row) {
			counts := aggregate.CountWhere(records, preds)
			rows := make([]Row, 0, len(counts))
			for _, c := range counts {
				rows = append(rows, Row{{"name", c.Label}, {"value", c.Count}})
			}
			return rows, nil
		},
	}
}

type column struct {
	key   string
	field record.Field
}

// seriesPanel emits one row per record: the positional id followed by each
// column's value, null when absent.
func seriesPanel(key, title, idKey string, cols ...column) PanelSpec {
	fields := make([]record.Field, len(cols))
	for i, c := range cols {
		fields[i] = c.field
	}
	return PanelSpec{
		Key: key, Title: title, Kind: KindSeries, Note: SeriesNote,
		build: func(records []record.PatientRecord) ([]Row, Row) {
			s := aggregate.Extract(records, fields...)
			rows := make([]Row, 0, len(s.Points))
			for _, p := range s.Points {
				row := make(Row, 0, len(cols)+1)
				row = append(row, KV{idKey, p.ID})
				for j, c := range cols {
					row = append(row, KV{c.key, p.Values[j]})
				}
				rows = append(rows, row)
			}
			return rows, seriesMissing(s, cols)
		},
	}
}

// seriesMissing counts absent values per column; single-column series use
// the bare "missing" key.
func seriesMissing(s aggregate.Series, cols []column) Row {
	var extra Row
	for j, c := range cols {
		n := len(s.Points) - s.Present(j)
		if n == 0 {
			continue
		}
		key := "missing"
		if len(cols) > 1 {
			key = "missing" + c.key
		}
		extra = append(extra, KV{key, n})
	}
	return extra
}

// valueSeries is the common {id, value} trend line.
func valueSeries(key, title string, f record.Field) PanelSpec {
	return seriesPanel(key, title, "id", column{"value", f})
}

func sumsPanel(key, title string, fields []aggregate.NamedField) PanelSpec {
	return PanelSpec{
		Key: key, Title: title, Kind: KindTally,
		build: func(records []record.PatientRecord) ([]Row, Row) {
			sums := aggregate.Sums(records, fields)
			rows := make([]Row, 0, len(sums))
			for _, s := range sums {
				rows = append(rows, Row{{"name", s.Label}, {"value", round(s.Value, 2)}})
			}
			return rows, nil
		},
	}
}

func prevalencePanel() PanelSpec {
	return PanelSpec{
		Key: "prevalence", Title: "Gallstone Prevalence", Kind: KindSummary,
		Note: "prevalence among patients with a known status",
		build: func(records []record.PatientRecord) ([]Row, Row) {
			p := aggregate.PrevalenceOf(records)
			return []Row{{
				{"total", p.Total},
				{"positive", p.Positive},
				{"negative", p.Negative},
				{"unknown", p.Unknown},
				{"percent", round(p.Percent, 1)},
			}}, nil
		},
	}
}

func highRiskPanel() PanelSpec {
	t := aggregate.DefaultRisk
	return PanelSpec{
		Key: "high-risk", Title: "High Risk Patients", Kind: KindSummary,
		Note: "BMI, glucose or total cholesterol above threshold",
		build: func(records []record.PatientRecord) ([]Row, Row) {
			return []Row{{
				{"highRiskCount", aggregate.HighRisk(records)},
				{"total", len(records)},
			}}, Row{
				{"bmiAbove", t.BMI},
				{"glucoseAbove", t.Glucose},
				{"cholesterolAbove", t.TotalCholesterol},
			}
		},
	}
}

func metricsPanel() PanelSpec {
	mean := func(records []record.PatientRecord, f record.Field) float64 {
		return round(aggregate.Mean(records, aggregate.FieldOf(f)), 2)
	}
	return PanelSpec{
		Key: "metrics", Title: "Summary Metrics", Kind: KindSummary,
		build: func(records []record.PatientRecord) ([]Row, Row) {
			return []Row{{
				{"totalPatients", len(records)},
				{"avgBMI", mean(records, record.BMI)},
				{"avgGlucose", mean(records, record.Glucose)},
				{"avgCholesterol", mean(records, record.TotalCholesterol)},
				{"avgFat", mean(records, record.TotalFatContent)},
				{"avgLeanMass", mean(records, record.LeanMassPercent)},
				{"highRiskCount", aggregate.HighRisk(records)},
			}}, nil
		},
	}
}

// statsPanel reports distribution statistics of present values, one row per field.
func statsPanel(key, title string, fields []aggregate.NamedField) PanelSpec {
	return PanelSpec{
		Key: key, Title: title, Kind: KindSummary,
		Note: "standard deviation is the population value over present values",
		build: func(records []record.PatientRecord) ([]Row, Row) {
			rows := make([]Row, 0, len(fields))
			for _, f := range fields {
				st := aggregate.Stats(records, aggregate.FieldOf(f.Field))
				rows = append(rows, Row{
					{"name", f.Label},
					{"present", st.Present},
					{"mean", round(st.Mean, 2)},
					{"median", round(st.Median, 2)},
					{"stdDev", round(st.StdDev, 2)},
					{"min", round(st.Min, 2)},
					{"max", round(st.Max, 2)},
				})
			}
			return rows, nil
		},
	}
}
