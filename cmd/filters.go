package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Sohaib432002/Dashboard/internal/filter"
	"github.com/Sohaib432002/Dashboard/internal/record"
)

// filterFlags binds the dashboard filter controls to a command.
type filterFlags struct {
	minAge, maxAge int
	agePreset      string
	gender         string
	gallstone      string
	flags          map[string]*string
	bands          map[string]*string
}

var flagFlags = []struct {
	name  string
	field record.FlagField
}{
	{"diabetes", record.DiabetesMellitus},
	{"comorbidity", record.Comorbidity},
	{"cad", record.CoronaryArteryDisease},
	{"hyperlipidemia", record.Hyperlipidemia},
}

var bandFlags = []struct {
	name  string
	lipid filter.Lipid
}{
	{"tc", filter.Cholesterol},
	{"ldl", filter.LDL},
	{"hdl", filter.HDL},
	{"tg", filter.Triglyceride},
}

func (ff *filterFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&ff.minAge, "min-age", 0, "minimum age, inclusive (default from view)")
	fs.IntVar(&ff.maxAge, "max-age", 0, "maximum age, inclusive (default from view)")
	fs.StringVar(&ff.agePreset, "age-preset", "", "named age range: All|0-20|21-40|41-60|61-80|81-100")
	fs.StringVar(&ff.gender, "gender", "", "gender filter: all|male|female")
	fs.StringVar(&ff.gallstone, "gallstone", "", "gallstone status filter: all|yes|no")
	ff.flags = map[string]*string{}
	for _, f := range flagFlags {
		ff.flags[f.name] = fs.String(f.name, "", fmt.Sprintf("%s filter: all|yes|no", f.field.Label()))
	}
	ff.bands = map[string]*string{}
	for _, b := range bandFlags {
		ff.bands[b.name] = fs.String(b.name, "", fmt.Sprintf("%s band: all|normal|over|high", b.lipid))
	}
}

// criteria overlays the flags the user set on base.
func (ff *filterFlags) criteria(cmd *cobra.Command, base filter.Criteria) (filter.Criteria, error) {
	c := base
	fs := cmd.Flags()
	if fs.Changed("age-preset") {
		lo, hi, err := filter.AgePreset(ff.agePreset)
		if err != nil {
			return c, err
		}
		c.MinAge, c.MaxAge = lo, hi
	}
	if fs.Changed("min-age") {
		c.MinAge = ff.minAge
	}
	if fs.Changed("max-age") {
		c.MaxAge = ff.maxAge
	}
	if fs.Changed("gender") {
		g, err := filter.ParseGenderChoice(ff.gender)
		if err != nil {
			return c, err
		}
		c.Gender = g
	}
	if fs.Changed("gallstone") {
		g, err := filter.ParseChoice(ff.gallstone)
		if err != nil {
			return c, err
		}
		c.Gallstone = g
	}
	for _, f := range flagFlags {
		if !fs.Changed(f.name) {
			continue
		}
		v, err := filter.ParseChoice(*ff.flags[f.name])
		if err != nil {
			return c, fmt.Errorf("--%s: %w", f.name, err)
		}
		c = c.WithFlag(f.field, v)
	}
	for _, b := range bandFlags {
		if !fs.Changed(b.name) {
			continue
		}
		v, err := filter.ParseBand(*ff.bands[b.name])
		if err != nil {
			return c, fmt.Errorf("--%s: %w", b.name, err)
		}
		c = c.WithBand(b.lipid, v)
	}
	return c, c.Validate()
}
