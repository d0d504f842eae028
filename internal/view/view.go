// Package view maps each dashboard view to its filter controls, the
// aggregations it runs and the row shapes handed to the chart layer.
package view

import (
	"errors"
	"fmt"

	"github.com/Sohaib432002/Dashboard/internal/filter"
	"github.com/Sohaib432002/Dashboard/internal/record"
)

// ErrUnknownView is returned for a view name not in Definitions.
var ErrUnknownView = errors.New("unknown view")

// NoDataNote is attached to outputs whose filters matched nothing.
const NoDataNote = "no data for current filters"

// Control is a filter criterion a view exposes to the user.
type Control int

const (
	ControlAge Control = iota
	ControlGender
	ControlGallstone
	ControlDiabetes
	ControlComorbidity
	ControlCAD
	ControlHyperlipidemia
	ControlLipidBands
)

var controlNames = [...]string{
	ControlAge:            "age",
	ControlGender:         "gender",
	ControlGallstone:      "gallstone",
	ControlDiabetes:       "diabetes",
	ControlComorbidity:    "comorbidity",
	ControlCAD:            "cad",
	ControlHyperlipidemia: "hyperlipidemia",
	ControlLipidBands:     "lipid-bands",
}

func (c Control) String() string {
	if int(c) < len(controlNames) {
		return controlNames[c]
	}
	return fmt.Sprintf("control(%d)", int(c))
}

// flagControls maps flag controls to the record field they filter.
var flagControls = []struct {
	control Control
	field   record.FlagField
}{
	{ControlDiabetes, record.DiabetesMellitus},
	{ControlComorbidity, record.Comorbidity},
	{ControlCAD, record.CoronaryArteryDisease},
	{ControlHyperlipidemia, record.Hyperlipidemia},
}

// Kind tells the chart layer how to draw a panel.
type Kind string

const (
	KindHistogram Kind = "histogram"
	KindTally     Kind = "tally"
	KindSeries    Kind = "series"
	KindSummary   Kind = "summary"
)

// Panel is one chart's worth of data.
type Panel struct {
	Key   string `json:"key" yaml:"key"`
	Title string `json:"title" yaml:"title"`
	Kind  Kind   `json:"kind" yaml:"kind"`
	Rows  []Row  `json:"rows" yaml:"rows"`
	// Extra carries counts that sit beside the chart, e.g. unknown statuses.
	Extra Row    `json:"extra,omitempty" yaml:"extra,omitempty"`
	Note  string `json:"note,omitempty" yaml:"note,omitempty"`
}

// PanelSpec declares one panel of a view.
type PanelSpec struct {
	Key   string
	Title string
	Kind  Kind
	Note  string
	build func(records []record.PatientRecord) (rows []Row, extra Row)
}

// Build runs the panel's aggregation over already-filtered records.
func (p PanelSpec) Build(records []record.PatientRecord) Panel {
	rows, extra := p.build(records)
	if rows == nil {
		rows = []Row{}
	}
	return Panel{Key: p.Key, Title: p.Title, Kind: p.Kind, Rows: rows, Extra: extra, Note: p.Note}
}

// Definition is one row of the view table.
type Definition struct {
	Name     string
	Title    string
	Controls []Control
	// Defaults is the criteria the view starts from.
	Defaults filter.Criteria
	Panels   []PanelSpec
	Notes    []string
}

// Exposes reports whether the view offers control c.
func (d Definition) Exposes(c Control) bool {
	for _, x := range d.Controls {
		if x == c {
			return true
		}
	}
	return false
}

// Restrict keeps only the criteria the view exposes; the rest reset to All.
// Age bounds always apply.
func (d Definition) Restrict(c filter.Criteria) filter.Criteria {
	out := filter.Criteria{MinAge: c.MinAge, MaxAge: c.MaxAge}
	if d.Exposes(ControlGender) {
		out.Gender = c.Gender
	}
	if d.Exposes(ControlGallstone) {
		out.Gallstone = c.Gallstone
	}
	for _, fc := range flagControls {
		if v := c.Flag(fc.field); v != filter.All && d.Exposes(fc.control) {
			out = out.WithFlag(fc.field, v)
		}
	}
	if d.Exposes(ControlLipidBands) {
		for _, l := range filter.Lipids {
			if b := c.Band(l); b != filter.AnyBand {
				out = out.WithBand(l, b)
			}
		}
	}
	return out
}

// Ignored lists the active criteria in c that the view does not expose.
func (d Definition) Ignored(c filter.Criteria) []Control {
	var out []Control
	if c.Gender != filter.AnyGender && !d.Exposes(ControlGender) {
		out = append(out, ControlGender)
	}
	if c.Gallstone != filter.All && !d.Exposes(ControlGallstone) {
		out = append(out, ControlGallstone)
	}
	for _, fc := range flagControls {
		if c.Flag(fc.field) != filter.All && !d.Exposes(fc.control) {
			out = append(out, fc.control)
		}
	}
	if !d.Exposes(ControlLipidBands) {
		for _, l := range filter.Lipids {
			if c.Band(l) != filter.AnyBand {
				out = append(out, ControlLipidBands)
				break
			}
		}
	}
	return out
}

// Compute filters records with the view's restricted criteria and builds
// every panel. records is not modified.
func (d Definition) Compute(records []record.PatientRecord, c filter.Criteria) (*Output, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("compute %s: %w", d.Name, err)
	}
	applied := d.Restrict(c)
	matched := filter.Apply(records, applied)

	out := &Output{
		View:     d.Name,
		Title:    d.Title,
		Criteria: applied,
		Filters:  d.filterRow(applied),
		Total:    len(records),
		Matched:  len(matched),
		Panels:   make([]Panel, 0, len(d.Panels)),
	}
	for _, p := range d.Panels {
		out.Panels = append(out.Panels, p.Build(matched))
	}
	out.Notes = append(out.Notes, d.Notes...)
	if len(matched) == 0 {
		out.Notes = append(out.Notes, NoDataNote)
	}
	return out, nil
}

func (d Definition) filterRow(c filter.Criteria) Row {
	row := Row{{"minAge", c.MinAge}, {"maxAge", c.MaxAge}}
	if d.Exposes(ControlGender) {
		row = append(row, KV{"gender", c.Gender.String()})
	}
	if d.Exposes(ControlGallstone) {
		row = append(row, KV{"gallstone", c.Gallstone.String()})
	}
	for _, fc := range flagControls {
		if d.Exposes(fc.control) {
			row = append(row, KV{fc.control.String(), c.Flag(fc.field).String()})
		}
	}
	if d.Exposes(ControlLipidBands) {
		for _, l := range filter.Lipids {
			row = append(row, KV{l.String(), c.Band(l).String()})
		}
	}
	return row
}

// Output is the computed data of one view.
type Output struct {
	View     string          `json:"view" yaml:"view"`
	Title    string          `json:"title" yaml:"title"`
	Criteria filter.Criteria `json:"-" yaml:"-"`
	Filters  Row             `json:"filters" yaml:"filters"`
	Total    int             `json:"total" yaml:"total"`
	Matched  int             `json:"matched" yaml:"matched"`
	Panels   []Panel         `json:"panels" yaml:"panels"`
	Notes    []string        `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Panel returns the panel with the given key.
func (o *Output) Panel(key string) (Panel, bool) {
	for _, p := range o.Panels {
		if p.Key == key {
			return p, true
		}
	}
	return Panel{}, false
}

// Source supplies the full record set of a loaded dataset.
type Source interface {
	Records() []record.PatientRecord
}

// Find returns the definition named name.
func Find(name string) (Definition, error) {
	for _, d := range Definitions {
		if d.Name == name {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("%w: %q", ErrUnknownView, name)
}

// Names lists view names in table order.
func Names() []string {
	out := make([]string, len(Definitions))
	for i, d := range Definitions {
		out[i] = d.Name
	}
	return out
}

// Compute runs the named view over the source's records.
func Compute(src Source, name string, c filter.Criteria) (*Output, error) {
	d, err := Find(name)
	if err != nil {
		return nil, err
	}
	return d.Compute(src.Records(), c)
}
