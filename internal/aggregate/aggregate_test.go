package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sohaib432002/Dashboard/internal/filter"
	"github.com/Sohaib432002/Dashboard/internal/record"
)

func withAge(years int) record.PatientRecord {
	return record.PatientRecord{Age: record.Age{Years: years, Known: true}}
}

func binCount(h Histogram, label string) int {
	for _, b := range h.Bins {
		if b.Label == label {
			return b.Count
		}
	}
	return 0
}

func TestFixedWidthAges(t *testing.T) {
	recs := []record.PatientRecord{withAge(5), withAge(15), withAge(25), withAge(95)}
	h := FixedWidth(recs, AgeOf, 0, 10, 100)

	require.Len(t, h.Bins, 10)
	assert.Equal(t, "0-9", h.Bins[0].Label)
	assert.Equal(t, "90-99", h.Bins[9].Label)
	want := map[string]int{"0-9": 1, "10-19": 1, "20-29": 1, "90-99": 1}
	for _, b := range h.Bins {
		assert.Equal(t, want[b.Label], b.Count, b.Label)
	}
	assert.Equal(t, 4, h.Total())
	assert.Zero(t, h.Dropped)
}

func TestFixedWidthDropsOutOfRange(t *testing.T) {
	recs := []record.PatientRecord{withAge(99), withAge(100), withAge(120), {}}
	h := FixedWidth(recs, AgeOf, 0, 10, 100)
	assert.Equal(t, 1, h.Total())
	assert.Equal(t, 2, h.Dropped, "values at or past the end are dropped")
	assert.Equal(t, 1, h.Missing)
	assert.Equal(t, len(recs), h.Total()+h.Dropped+h.Missing)
}

func TestFixedRangesLabels(t *testing.T) {
	r := FixedRanges(0, 0.5, 1.2)
	require.Len(t, r, 3)
	assert.Equal(t, "0-0.5", r[0].Label)
	assert.Equal(t, "1-1.2", r[2].Label)
	assert.InDelta(t, 1.2, r[2].Max, 1e-9)

	assert.Nil(t, FixedRanges(0, 0, 10))
	assert.Nil(t, FixedRanges(10, 5, 10))
}

func TestFixedRangesFractionalWidth(t *testing.T) {
	r := FixedRanges(0, 0.1, 1)
	require.Len(t, r, 10)
	assert.Equal(t, "0-0.1", r[0].Label)
	assert.Equal(t, "0.2-0.3", r[2].Label)
	assert.Equal(t, "0.3-0.4", r[3].Label)
	assert.Equal(t, "0.9-1", r[9].Label)
	assert.Equal(t, 1.0, r[9].Max)
	for i := 1; i < len(r); i++ {
		assert.Equal(t, r[i-1].Max, r[i].Min, "bins are contiguous")
	}

	recs := []record.PatientRecord{{BMI: record.Of(0.3)}, {BMI: record.Of(0.29)}, {BMI: record.Of(1)}}
	h := FixedWidth(recs, FieldOf(record.BMI), 0, 0.1, 1)
	assert.Equal(t, 1, binCount(h, "0.3-0.4"))
	assert.Equal(t, 1, binCount(h, "0.2-0.3"))
	assert.Equal(t, 1, h.Dropped)
}

func TestFixedRangesTerminates(t *testing.T) {
	r := FixedRanges(1e17, 1, 1e17+64)
	assert.LessOrEqual(t, len(r), 64)
	for _, b := range r {
		assert.Less(t, b.Min, b.Max)
	}
	assert.Nil(t, FixedRanges(0, 1e-9, 1e9), "too many bins")
}

func TestNamedRangesOpenEnded(t *testing.T) {
	ranges := []Range{
		{Label: "0-30", Min: 0, Max: 31},
		{Label: "31-60", Min: 31, Max: 61},
		{Label: "61+", Min: 61, Max: math.Inf(1)},
	}
	recs := []record.PatientRecord{withAge(30), withAge(31), withAge(61), withAge(104)}
	h := NamedRanges(recs, AgeOf, ranges)
	assert.Equal(t, 1, binCount(h, "0-30"))
	assert.Equal(t, 1, binCount(h, "31-60"))
	assert.Equal(t, 2, binCount(h, "61+"))
	assert.Zero(t, binCount(h, "nope"))
}

func gallstones(vals ...string) []record.PatientRecord {
	out := make([]record.PatientRecord, len(vals))
	for i, v := range vals {
		out[i] = record.PatientRecord{Gallstone: record.ParseGallstone(v)}
	}
	return out
}

func TestTallyGallstoneOrderAndUnknown(t *testing.T) {
	tl := TallyOf(gallstones("0", "1", "1", "", "x"), GallstoneLabels, GallstoneLabel, TallyOptions{})
	require.Len(t, tl.Counts, 2)
	assert.Equal(t, Count{Label: LabelPresent, Count: 2}, tl.Counts[0])
	assert.Equal(t, Count{Label: LabelAbsent, Count: 1}, tl.Counts[1])
	assert.Equal(t, 2, tl.Excluded)
	assert.Equal(t, 5, tl.Total()+tl.Excluded)
}

func TestTallyZeroAndSuppressed(t *testing.T) {
	recs := gallstones("1", "1")
	tl := TallyOf(recs, GallstoneLabels, GallstoneLabel, TallyOptions{})
	assert.Equal(t, 0, tl.Get(LabelAbsent))
	assert.Len(t, tl.Counts, 2)

	tl = TallyOf(recs, GallstoneLabels, GallstoneLabel, TallyOptions{SuppressEmpty: true})
	assert.Equal(t, []Count{{Label: LabelPresent, Count: 2}}, tl.Counts)
}

func TestTallyScenarioAfterFilter(t *testing.T) {
	rows := []map[string]string{
		{"Age": "25", "Gender": "0", "Gallstone Status": "1"},
		{"Age": "45", "Gender": "1", "Gallstone Status": "0"},
		{"Age": "70", "Gender": "0", "Gallstone Status": "1"},
	}
	var recs []record.PatientRecord
	for _, row := range rows {
		r, _ := record.Normalize(row)
		recs = append(recs, r)
	}

	all := TallyOf(filter.Apply(recs, filter.Criteria{MinAge: 0, MaxAge: 100}), GallstoneLabels, GallstoneLabel, TallyOptions{})
	assert.Equal(t, 2, all.Get(LabelPresent))
	assert.Equal(t, 1, all.Get(LabelAbsent))

	older := filter.Apply(recs, filter.Criteria{MinAge: 30, MaxAge: 100})
	require.Len(t, older, 2)
	tl := TallyOf(older, GallstoneLabels, GallstoneLabel, TallyOptions{})
	assert.Equal(t, 1, tl.Get(LabelPresent))
	assert.Equal(t, 1, tl.Get(LabelAbsent))
}

func TestFlagAndRangeClassifiers(t *testing.T) {
	recs := []record.PatientRecord{
		{Comorbidity: record.Yes, BMI: record.Of(17)},
		{Comorbidity: record.No, BMI: record.Of(24.9)},
		{Comorbidity: record.FlagUnknown, BMI: record.Of(31)},
		{},
	}
	tl := TallyOf(recs, []string{"No Comorbidity", "Comorbidity"},
		FlagLabel(record.Comorbidity, "Comorbidity", "No Comorbidity"), TallyOptions{})
	assert.Equal(t, 3, tl.Get("No Comorbidity"))
	assert.Equal(t, 1, tl.Get("Comorbidity"))
	assert.Equal(t, len(recs), tl.Total())

	bmi := []Range{
		{Label: "Underweight", Min: math.Inf(-1), Max: 18.5},
		{Label: "Normal", Min: 18.5, Max: 25},
		{Label: "Overweight", Min: 25, Max: 30},
		{Label: "Obese", Min: 30, Max: math.Inf(1)},
	}
	tl = TallyOf(recs, Labels(bmi), RangeLabel(FieldOf(record.BMI), bmi), TallyOptions{})
	assert.Equal(t, []int{1, 1, 0, 1}, []int{tl.Get("Underweight"), tl.Get("Normal"), tl.Get("Overweight"), tl.Get("Obese")})
	assert.Equal(t, 1, tl.Excluded)
}

func TestGenderLabel(t *testing.T) {
	recs := []record.PatientRecord{{Gender: record.Male}, {Gender: record.Female}, {Gender: record.Female}, {}}
	tl := TallyOf(recs, GenderLabels, GenderLabel, TallyOptions{})
	assert.Equal(t, 1, tl.Get("Male"))
	assert.Equal(t, 2, tl.Get("Female"))
	assert.Equal(t, 1, tl.Excluded)
}

func TestCountWhereAndSums(t *testing.T) {
	recs := []record.PatientRecord{
		{DiabetesMellitus: record.Yes, Hyperlipidemia: record.Yes, VisceralFatRating: record.Of(9), TotalFatContent: record.Of(20)},
		{Hyperlipidemia: record.Yes, TotalFatContent: record.Of(30.5)},
		{},
	}
	counts := CountWhere(recs, []NamedPredicate{
		{Label: "DM", Match: filter.FlagIs(record.DiabetesMellitus, true)},
		{Label: "Hyperlipidemia", Match: filter.FlagIs(record.Hyperlipidemia, true)},
	})
	assert.Equal(t, []Count{{Label: "DM", Count: 1}, {Label: "Hyperlipidemia", Count: 2}}, counts)

	sums := Sums(recs, []NamedField{
		{Label: "Visceral Fat", Field: record.VisceralFatRating},
		{Label: "Total Fat", Field: record.TotalFatContent},
	})
	assert.Equal(t, Sum{Label: "Visceral Fat", Value: 9, Present: 1}, sums[0])
	assert.Equal(t, Sum{Label: "Total Fat", Value: 50.5, Present: 2}, sums[1])
}

func TestExtractKeepsOrderAndNulls(t *testing.T) {
	recs := []record.PatientRecord{
		{BMI: record.Of(28), Glucose: record.Of(0)},
		{Glucose: record.Of(101)},
	}
	s := Extract(recs, record.BMI, record.Glucose)
	require.Len(t, s.Points, 2)
	assert.Equal(t, 1, s.Points[0].ID)
	assert.Equal(t, 2, s.Points[1].ID)
	require.NotNil(t, s.Points[0].Values[1])
	assert.Equal(t, 0.0, *s.Points[0].Values[1], "zero is a real value")
	assert.Nil(t, s.Points[1].Values[0], "absent stays null")
	assert.Equal(t, 1, s.Present(0))
	assert.Equal(t, 2, s.Present(1))
}

func TestMeanExcludesAbsent(t *testing.T) {
	recs := []record.PatientRecord{{BMI: record.Of(28)}, {}, {BMI: record.Of(32)}}
	assert.Equal(t, 30.0, Mean(recs, FieldOf(record.BMI)))

	st := Stats(recs, FieldOf(record.BMI))
	assert.Equal(t, 3, st.Count)
	assert.Equal(t, 2, st.Present)
	assert.Equal(t, 30.0, st.Mean)
	assert.Equal(t, 30.0, st.Median)
	assert.Equal(t, 28.0, st.Min)
	assert.Equal(t, 32.0, st.Max)
	assert.InDelta(t, 2.0, st.StdDev, 1e-9)
}

func TestHighRisk(t *testing.T) {
	mk := func(bmi, glu, tc float64) record.PatientRecord {
		return record.PatientRecord{BMI: record.Of(bmi), Glucose: record.Of(glu), TotalCholesterol: record.Of(tc)}
	}
	recs := []record.PatientRecord{mk(31, 90, 150), mk(22, 130, 150), mk(20, 90, 150)}
	assert.Equal(t, 2, HighRisk(recs))

	edge := []record.PatientRecord{mk(30, 125, 200), {}}
	assert.Zero(t, HighRisk(edge), "thresholds are strict and absent never breaches")
}

func TestPrevalence(t *testing.T) {
	p := PrevalenceOf(gallstones("1", "0", "0", "1", ""))
	assert.Equal(t, Prevalence{Total: 5, Positive: 2, Negative: 2, Unknown: 1, Percent: 50}, p)
}

func TestEmptyInputIsZero(t *testing.T) {
	var none []record.PatientRecord

	h := FixedWidth(none, AgeOf, 0, 10, 100)
	assert.Len(t, h.Bins, 10)
	assert.Zero(t, h.Total())

	tl := TallyOf(none, GallstoneLabels, GallstoneLabel, TallyOptions{})
	assert.Equal(t, []Count{{Label: LabelPresent}, {Label: LabelAbsent}}, tl.Counts)

	assert.Empty(t, Extract(none, record.BMI).Points)
	assert.Zero(t, Mean(none, FieldOf(record.BMI)))
	assert.False(t, math.IsNaN(Mean(none, FieldOf(record.BMI))))
	assert.Equal(t, FieldStats{}, Stats(none, FieldOf(record.Glucose)))
	assert.Zero(t, HighRisk(none))
	assert.Equal(t, Prevalence{}, PrevalenceOf(none))
	assert.Equal(t, []Sum{{Label: "x"}}, Sums(none, []NamedField{{Label: "x", Field: record.MuscleMass}}))
}

func TestIdempotent(t *testing.T) {
	recs := []record.PatientRecord{withAge(12), withAge(44), {BMI: record.Of(33)}}
	assert.Equal(t, FixedWidth(recs, AgeOf, 0, 10, 100), FixedWidth(recs, AgeOf, 0, 10, 100))
	assert.Equal(t, Stats(recs, FieldOf(record.BMI)), Stats(recs, FieldOf(record.BMI)))
}
