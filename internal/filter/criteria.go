package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Sohaib432002/Dashboard/internal/record"
)

// ErrInvalidCriteria is returned when a filter value cannot be used.
var ErrInvalidCriteria = errors.New("invalid filter criteria")

// Choice is a tri-state yes/no filter. The zero value is All.
type Choice int

const (
	All Choice = iota
	Yes
	No
)

func (c Choice) String() string {
	switch c {
	case Yes:
		return "Yes"
	case No:
		return "No"
	default:
		return "All"
	}
}

// ParseChoice accepts all|yes|no and the dataset spellings 1|0.
func ParseChoice(s string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "yes", "1", "true":
		return Yes, nil
	case "no", "0", "false":
		return No, nil
	}
	return All, fmt.Errorf("%w: choice %q (use all|yes|no)", ErrInvalidCriteria, s)
}

// GenderChoice filters by normalized gender. The zero value is all genders.
type GenderChoice int

const (
	AnyGender GenderChoice = iota
	MaleOnly
	FemaleOnly
)

func (g GenderChoice) String() string {
	switch g {
	case MaleOnly:
		return "Male"
	case FemaleOnly:
		return "Female"
	default:
		return "All"
	}
}

// ParseGenderChoice accepts all|male|female and the dataset codes 0|1.
func ParseGenderChoice(s string) (GenderChoice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return AnyGender, nil
	case "male", "0", "m":
		return MaleOnly, nil
	case "female", "1", "f":
		return FemaleOnly, nil
	}
	return AnyGender, fmt.Errorf("%w: gender %q (use all|male|female)", ErrInvalidCriteria, s)
}

// Criteria is the filter state of one view instance.
type Criteria struct {
	MinAge    int
	MaxAge    int
	Gender    GenderChoice
	Gallstone Choice
	Flags     map[record.FlagField]Choice
	Bands     map[Lipid]Band
}

// Default returns the widest criteria the source dashboard starts from.
func Default() Criteria {
	return Criteria{MinAge: 0, MaxAge: 100}
}

// Validate rejects values no record could sensibly be compared with.
// MinAge > MaxAge is allowed and simply matches nothing.
func (c Criteria) Validate() error {
	if c.MinAge < 0 || c.MaxAge < 0 {
		return fmt.Errorf("%w: negative age bound (%d-%d)", ErrInvalidCriteria, c.MinAge, c.MaxAge)
	}
	for l, b := range c.Bands {
		if b == AnyBand {
			continue
		}
		if _, ok := bandTable[l]; !ok {
			return fmt.Errorf("%w: no bands defined for %s", ErrInvalidCriteria, l)
		}
	}
	return nil
}

// Flag returns the choice for f, All when unset.
func (c Criteria) Flag(f record.FlagField) Choice { return c.Flags[f] }

// Band returns the band for l, AnyBand when unset.
func (c Criteria) Band(l Lipid) Band { return c.Bands[l] }

// WithFlag returns a copy of c with f set to v.
func (c Criteria) WithFlag(f record.FlagField, v Choice) Criteria {
	out := c.clone()
	if out.Flags == nil {
		out.Flags = map[record.FlagField]Choice{}
	}
	out.Flags[f] = v
	return out
}

// WithBand returns a copy of c with l restricted to b.
func (c Criteria) WithBand(l Lipid, b Band) Criteria {
	out := c.clone()
	if out.Bands == nil {
		out.Bands = map[Lipid]Band{}
	}
	out.Bands[l] = b
	return out
}

func (c Criteria) clone() Criteria {
	out := c
	if c.Flags != nil {
		out.Flags = make(map[record.FlagField]Choice, len(c.Flags))
		for k, v := range c.Flags {
			out.Flags[k] = v
		}
	}
	if c.Bands != nil {
		out.Bands = make(map[Lipid]Band, len(c.Bands))
		for k, v := range c.Bands {
			out.Bands[k] = v
		}
	}
	return out
}

// String renders the active criteria compactly, e.g. "age 20-80, gender=Male".
func (c Criteria) String() string {
	parts := []string{fmt.Sprintf("age %d-%d", c.MinAge, c.MaxAge)}
	if c.Gender != AnyGender {
		parts = append(parts, "gender="+c.Gender.String())
	}
	if c.Gallstone != All {
		parts = append(parts, "gallstone="+c.Gallstone.String())
	}
	for _, f := range record.FlagFields {
		if v := c.Flag(f); v != All {
			parts = append(parts, f.Label()+"="+v.String())
		}
	}
	for _, l := range Lipids {
		if b := c.Band(l); b != AnyBand {
			parts = append(parts, l.String()+"="+b.String())
		}
	}
	return strings.Join(parts, ", ")
}
