package view

import (
	"math"

	"github.com/Sohaib432002/Dashboard/internal/aggregate"
	"github.com/Sohaib432002/Dashboard/internal/filter"
	"github.com/Sohaib432002/Dashboard/internal/record"
)

var inf = math.Inf(1)

// ageGroups are the demographic buckets; ages are whole years so "0-10"
// covers [0, 11).
var ageGroups = []aggregate.Range{
	{Label: "0-10", Min: 0, Max: 11},
	{Label: "11-20", Min: 11, Max: 21},
	{Label: "21-30", Min: 21, Max: 31},
	{Label: "31-40", Min: 31, Max: 41},
	{Label: "41-50", Min: 41, Max: 51},
	{Label: "51-60", Min: 51, Max: 61},
	{Label: "60+", Min: 61, Max: inf},
}

var positiveAgeRanges = []aggregate.Range{
	{Label: "0-30", Min: 0, Max: 31},
	{Label: "31-40", Min: 31, Max: 41},
	{Label: "41-50", Min: 41, Max: 51},
	{Label: "51-60", Min: 51, Max: 61},
	{Label: "61+", Min: 61, Max: inf},
}

var bmiCategories = []aggregate.Range{
	{Label: "Underweight", Min: math.Inf(-1), Max: 18.5},
	{Label: "Normal", Min: 18.5, Max: 25},
	{Label: "Overweight", Min: 25, Max: 30},
	{Label: "Obese", Min: 30, Max: inf},
}

func flagCount(f record.FlagField) aggregate.NamedPredicate {
	return aggregate.NamedPredicate{Label: f.Label(), Match: filter.FlagIs(f, true)}
}

var (
	fatFields = []aggregate.NamedField{
		{Label: "Visceral Fat", Field: record.VisceralFatRating},
		{Label: "Total Fat", Field: record.TotalFatContent},
	}
	muscleFields = []aggregate.NamedField{
		{Label: "Muscle Mass", Field: record.MuscleMass},
		{Label: "Lean Mass", Field: record.LeanMassPercent},
	}
	metricFields = []aggregate.NamedField{
		{Label: "BMI", Field: record.BMI},
		{Label: "Glucose", Field: record.Glucose},
		{Label: "Total Cholesterol", Field: record.TotalCholesterol},
		{Label: "Total Fat", Field: record.TotalFatContent},
		{Label: "Lean Mass", Field: record.LeanMassPercent},
	}
	adultAges = filter.Criteria{MinAge: 20, MaxAge: 80}
)

// Definitions is the view table, in dashboard menu order.
var Definitions = []Definition{
	{
		Name:     "patient-demographics",
		Title:    "Patient Demographics",
		Controls: []Control{ControlAge, ControlGender, ControlGallstone},
		Defaults: filter.Default(),
		Panels: []PanelSpec{
			rangePanel("age-groups", "Age Groups", "ageGroup", "count", aggregate.AgeOf, ageGroups),
			histogramPanel("age-histogram", "Age Distribution", "range", aggregate.AgeOf, 0, 10, 100),
			tallyPanel("gender", "Gender", "gender", "count",
				aggregate.GenderLabels, aggregate.GenderLabel, "unknown"),
			tallyPanel("bmi-categories", "BMI Categories", "name", "value",
				aggregate.Labels(bmiCategories), aggregate.RangeLabel(aggregate.FieldOf(record.BMI), bmiCategories), "missing"),
			tallyPanel("comorbidity", "Comorbidity", "label", "count",
				[]string{"No Comorbidity", "Comorbidity"},
				aggregate.FlagLabel(record.Comorbidity, "Comorbidity", "No Comorbidity"), ""),
			seriesPanel("lipids", "Lipid Profile", "index",
				column{"TC", record.TotalCholesterol},
				column{"LDL", record.LDL},
				column{"HDL", record.HDL},
				column{"Triglyceride", record.Triglyceride}),
		},
	},
	{
		Name:     "stone-characteristics",
		Title:    "Stone Characteristics",
		Controls: []Control{ControlAge},
		Defaults: filter.Default(),
		Panels: []PanelSpec{
			gallstonePanel("gallstone-status", "Gallstone Status", "name", "value"),
			gallstonePanel("gallstone-status-bar", "Gallstone Status Counts", "status", "count"),
		},
	},
	{
		Name:     "incidence-prevalence",
		Title:    "Incidence & Prevalence",
		Controls: []Control{ControlAge},
		Defaults: filter.Default(),
		Panels: []PanelSpec{
			gallstonePanel("gallstone-status", "Gallstone Status", "name", "value"),
			subset(filter.GallstoneIs(record.Present),
				rangePanel("positive-by-age", "Gallstone Positive by Age", "ageRange", "count", aggregate.AgeOf, positiveAgeRanges)),
			prevalencePanel(),
		},
		Notes: []string{"the dataset is cross-sectional; incidence over time cannot be derived"},
	},
	{
		Name:     "symptoms-clinical",
		Title:    "Symptoms & Clinical Data",
		Controls: []Control{ControlAge},
		Defaults: filter.Default(),
		Panels: []PanelSpec{
			countPanel("symptoms", "Symptoms", []aggregate.NamedPredicate{
				flagCount(record.Comorbidity),
				flagCount(record.DiabetesMellitus),
				flagCount(record.CoronaryArteryDisease),
				flagCount(record.Hyperlipidemia),
			}),
			seriesPanel("clinical", "Clinical Measures", "id",
				column{"BMI", record.BMI},
				column{"TBW", record.TotalBodyWater},
				column{"VFR", record.VisceralFatRating}),
		},
	},
	{
		Name:     "treatment",
		Title:    "Treatment Data",
		Controls: []Control{ControlAge, ControlGallstone},
		Defaults: filter.Default(),
		Panels: []PanelSpec{
			gallstonePanel("gallstone-status", "Gallstone Status", "name", "value"),
			seriesPanel("body-composition", "Body Composition", "id",
				column{"BMI", record.BMI},
				column{"TBW", record.TotalBodyWater}),
			sumsPanel("fat-distribution", "Fat Distribution", fatFields),
		},
	},
	{
		Name:  "laboratory-results",
		Title: "Laboratory Results",
		Controls: []Control{
			ControlAge, ControlGender, ControlDiabetes, ControlComorbidity, ControlLipidBands,
		},
		Defaults: filter.Default(),
		Panels: []PanelSpec{
			valueSeries("glucose", "Glucose", record.Glucose),
			valueSeries("cholesterol", "Total Cholesterol", record.TotalCholesterol),
			valueSeries("ldl", "LDL", record.LDL),
			valueSeries("hdl", "HDL", record.HDL),
		},
	},
	{
		Name:     "risk-factors",
		Title:    "Risk Factors",
		Controls: []Control{ControlAge, ControlGender, ControlLipidBands},
		Defaults: adultAges,
		Panels: []PanelSpec{
			valueSeries("bmi", "BMI", record.BMI),
			valueSeries("cholesterol", "Total Cholesterol", record.TotalCholesterol),
			valueSeries("glucose", "Glucose", record.Glucose),
			highRiskPanel(),
		},
	},
	{
		Name:     "visualizations",
		Title:    "Visualizations",
		Controls: []Control{ControlAge, ControlGender, ControlGallstone},
		Defaults: adultAges,
		Panels: []PanelSpec{
			valueSeries("bmi", "BMI", record.BMI),
			valueSeries("glucose", "Glucose", record.Glucose),
			valueSeries("cholesterol", "Total Cholesterol", record.TotalCholesterol),
			sumsPanel("fat", "Fat Composition", fatFields),
			sumsPanel("muscle", "Muscle Composition", muscleFields),
		},
	},
	{
		Name:     "summary-metrics",
		Title:    "Summary Metrics",
		Controls: []Control{ControlAge, ControlGender},
		Defaults: adultAges,
		Panels: []PanelSpec{
			metricsPanel(),
			statsPanel("metric-stats", "Metric Statistics", metricFields),
		},
	},
}
