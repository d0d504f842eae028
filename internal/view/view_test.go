package view

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sohaib432002/Dashboard/internal/filter"
	"github.com/Sohaib432002/Dashboard/internal/record"
)

type records []record.PatientRecord

func (r records) Records() []record.PatientRecord { return r }

func sample() records {
	rows := []map[string]string{
		{"Age": "25", "Gender": "0", "Gallstone Status": "1", "Body Mass Index (BMI)": "31", "Glucose": "90", "Total Cholesterol (TC)": "150", "Comorbidity": "1"},
		{"Age": "45", "Gender": "1", "Gallstone Status": "0", "Body Mass Index (BMI)": "22", "Glucose": "130", "Total Cholesterol (TC)": "150", "Diabetes Mellitus (DM)": "1"},
		{"Age": "70", "Gender": "0", "Gallstone Status": "1", "Body Mass Index (BMI)": "20", "Glucose": "90", "Total Cholesterol (TC)": "150"},
		{"Age": "52", "Gender": "1", "Gallstone Status": "", "Total Cholesterol (TC)": "245", "Low Density Lipoprotein (LDL)": "170"},
	}
	out := make(records, 0, len(rows))
	for _, row := range rows {
		r, _ := record.Normalize(row)
		out = append(out, r)
	}
	return out
}

func TestDefinitionsTable(t *testing.T) {
	require.Len(t, Definitions, 9)
	seen := map[string]bool{}
	for _, d := range Definitions {
		assert.False(t, seen[d.Name], "duplicate view %s", d.Name)
		seen[d.Name] = true
		assert.True(t, d.Exposes(ControlAge), d.Name)
		assert.NotEmpty(t, d.Panels, d.Name)
		for _, p := range d.Panels {
			assert.NotNil(t, p.build, "%s/%s", d.Name, p.Key)
		}
	}
	assert.Equal(t, "patient-demographics", Names()[0])
}

func TestFindUnknown(t *testing.T) {
	_, err := Find("nope")
	assert.ErrorIs(t, err, ErrUnknownView)
	_, err = Compute(sample(), "nope", filter.Default())
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestStoneCharacteristicsTally(t *testing.T) {
	out, err := Compute(sample(), "stone-characteristics", filter.Default())
	require.NoError(t, err)
	assert.Equal(t, 4, out.Total)
	assert.Equal(t, 4, out.Matched)

	p, ok := out.Panel("gallstone-status")
	require.True(t, ok)
	require.Len(t, p.Rows, 2)
	assert.Equal(t, Row{{"name", "Present"}, {"value", 2}}, p.Rows[0])
	assert.Equal(t, Row{{"name", "Absent"}, {"value", 1}}, p.Rows[1])
	assert.Equal(t, Row{{"unknown", 1}}, p.Extra)

	bar, _ := out.Panel("gallstone-status-bar")
	assert.Equal(t, []string{"status", "count"}, bar.Rows[0].Keys())
}

func TestRestrictResetsUnexposed(t *testing.T) {
	d, err := Find("stone-characteristics")
	require.NoError(t, err)
	c := filter.Criteria{MinAge: 30, MaxAge: 100, Gender: filter.MaleOnly, Gallstone: filter.Yes}.
		WithFlag(record.DiabetesMellitus, filter.Yes).
		WithBand(filter.Cholesterol, filter.High)

	r := d.Restrict(c)
	assert.Equal(t, filter.Criteria{MinAge: 30, MaxAge: 100}, r)
	assert.ElementsMatch(t, []Control{ControlGender, ControlGallstone, ControlDiabetes, ControlLipidBands}, d.Ignored(c))

	out, err := d.Compute(sample(), c)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Matched, "ages 45, 70, 52")
}

func TestLaboratoryFlagsAndBands(t *testing.T) {
	c := filter.Default().WithBand(filter.Cholesterol, filter.High)
	out, err := Compute(sample(), "laboratory-results", c)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Matched)

	ldl, ok := out.Panel("ldl")
	require.True(t, ok)
	require.Len(t, ldl.Rows, 1)
	v, _ := ldl.Rows[0].Get("value")
	require.IsType(t, (*float64)(nil), v)
	assert.Equal(t, 170.0, *v.(*float64))
	assert.Equal(t, SeriesNote, ldl.Note)

	c = filter.Default().WithFlag(record.DiabetesMellitus, filter.Yes)
	out, err = Compute(sample(), "laboratory-results", c)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Matched)
}

func TestSummaryMetrics(t *testing.T) {
	d, err := Find("summary-metrics")
	require.NoError(t, err)
	out, err := d.Compute(sample(), d.Defaults)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Matched)

	m, _ := out.Panel("metrics")
	require.Len(t, m.Rows, 1)
	row := m.Rows[0]
	assert.Equal(t, []string{"totalPatients", "avgBMI", "avgGlucose", "avgCholesterol", "avgFat", "avgLeanMass", "highRiskCount"}, row.Keys())
	avgBMI, _ := row.Get("avgBMI")
	assert.InDelta(t, 24.33, avgBMI, 1e-9)
	hr, _ := row.Get("highRiskCount")
	assert.Equal(t, 3, hr)
	fat, _ := row.Get("avgFat")
	assert.Equal(t, 0.0, fat)

	st, ok := out.Panel("metric-stats")
	require.True(t, ok)
	require.Len(t, st.Rows, 5)
	assert.Equal(t, Row{
		{"name", "BMI"}, {"present", 3}, {"mean", 24.33}, {"median", 22.0},
		{"stdDev", 4.78}, {"min", 20.0}, {"max", 31.0},
	}, st.Rows[0])
	assert.Equal(t, Row{
		{"name", "Total Fat"}, {"present", 0}, {"mean", 0.0}, {"median", 0.0},
		{"stdDev", 0.0}, {"min", 0.0}, {"max", 0.0},
	}, st.Rows[3])
}

func TestEmptyFilteredSet(t *testing.T) {
	c := filter.Criteria{MinAge: 200, MaxAge: 300}
	for _, d := range Definitions {
		t.Run(d.Name, func(t *testing.T) {
			out, err := d.Compute(sample(), c)
			require.NoError(t, err)
			assert.Zero(t, out.Matched)
			assert.Contains(t, out.Notes, NoDataNote)
			require.Len(t, out.Panels, len(d.Panels))
			for _, p := range out.Panels {
				assert.NotNil(t, p.Rows)
				if p.Kind == KindSeries {
					assert.Empty(t, p.Rows)
				}
			}
			var buf bytes.Buffer
			require.NoError(t, EncodeJSON(&buf, out))
			assert.NotContains(t, buf.String(), "NaN")
		})
	}
}

func TestIncidencePrevalence(t *testing.T) {
	out, err := Compute(sample(), "incidence-prevalence", filter.Default())
	require.NoError(t, err)
	p, _ := out.Panel("positive-by-age")
	require.Len(t, p.Rows, 5)
	assert.Equal(t, Row{{"ageRange", "0-30"}, {"count", 1}}, p.Rows[0])
	assert.Equal(t, Row{{"ageRange", "61+"}, {"count", 1}}, p.Rows[4])
	assert.Empty(t, p.Extra)

	prev, _ := out.Panel("prevalence")
	pct, _ := prev.Rows[0].Get("percent")
	assert.InDelta(t, 66.7, pct, 1e-9)
	require.NotEmpty(t, out.Notes)
	assert.Contains(t, out.Notes[0], "cross-sectional")
}

func TestDemographicsPanels(t *testing.T) {
	out, err := Compute(sample(), "patient-demographics", filter.Default())
	require.NoError(t, err)

	groups, _ := out.Panel("age-groups")
	assert.Equal(t, []string{"ageGroup", "count"}, groups.Rows[0].Keys())
	got := map[string]any{}
	for _, r := range groups.Rows {
		l, _ := r.Get("ageGroup")
		c, _ := r.Get("count")
		got[l.(string)] = c
	}
	assert.Equal(t, map[string]any{"0-10": 0, "11-20": 0, "21-30": 1, "31-40": 0, "41-50": 1, "51-60": 1, "60+": 1}, got)

	hist, _ := out.Panel("age-histogram")
	assert.Len(t, hist.Rows, 10)

	bmi, _ := out.Panel("bmi-categories")
	assert.Equal(t, Row{{"missing", 1}}, bmi.Extra)

	lipids, _ := out.Panel("lipids")
	assert.Equal(t, []string{"index", "TC", "LDL", "HDL", "Triglyceride"}, lipids.Rows[0].Keys())
	assert.Equal(t, Row{{"missingLDL", 3}, {"missingHDL", 4}, {"missingTriglyceride", 4}}, lipids.Extra)

	gender, ok := out.Panel("gender")
	require.True(t, ok)
	assert.Equal(t, []Row{{{"gender", "Male"}, {"count", 2}}, {{"gender", "Female"}, {"count", 2}}}, gender.Rows)
	assert.Equal(t, Row{{"unknown", 0}}, gender.Extra)
}

func TestRowEncodingKeepsOrder(t *testing.T) {
	v := 1.5
	row := Row{{"zeta", 1}, {"alpha", &v}, {"mid", (*float64)(nil)}, {"name", "x"}}

	b, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":1.5,"mid":null,"name":"x"}`, string(b))

	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, row))
	assert.Equal(t, "zeta: 1\nalpha: 1.5\nmid: null\nname: x\n", buf.String())

	var back yaml.Node
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "zeta", back.Content[0].Content[0].Value)
}

func TestEncodeFormats(t *testing.T) {
	out, err := Compute(sample(), "risk-factors", filter.Criteria{MinAge: 20, MaxAge: 80, Gender: filter.MaleOnly})
	require.NoError(t, err)

	var js bytes.Buffer
	require.NoError(t, Encode(&js, out, "json"))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, "risk-factors", decoded["view"])
	assert.Less(t, strings.Index(js.String(), `"minAge"`), strings.Index(js.String(), `"maxAge"`))

	md := out.Markdown()
	assert.Contains(t, md, "[VIEW]")
	assert.Contains(t, md, "[HIGH RISK PATIENTS]")
	assert.Contains(t, md, "| id | value |")
	assert.Contains(t, md, "gender=Male")

	var h bytes.Buffer
	require.NoError(t, Encode(&h, out, "html"))
	assert.Contains(t, h.String(), "<table>")

	assert.Error(t, Encode(&h, out, "pdf"))
}
