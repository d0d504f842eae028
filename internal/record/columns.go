package record

// Dataset column names. These are the wire contract with the source CSV and
// must match byte for byte.
const (
	ColAge                   = "Age"
	ColGender                = "Gender"
	ColGallstoneStatus       = "Gallstone Status"
	ColBMI                   = "Body Mass Index (BMI)"
	ColGlucose               = "Glucose"
	ColTotalCholesterol      = "Total Cholesterol (TC)"
	ColLDL                   = "Low Density Lipoprotein (LDL)"
	ColHDL                   = "High Density Lipoprotein (HDL)"
	ColTriglyceride          = "Triglyceride"
	ColTotalBodyWater        = "Total Body Water (TBW)"
	ColVisceralFatRating     = "Visceral Fat Rating (VFR)"
	ColTotalFatContent       = "Total Fat Content (TFC)"
	ColMuscleMass            = "Muscle Mass (MM)"
	ColLeanMass              = "Lean Mass (LM) (%)"
	ColComorbidity           = "Comorbidity"
	ColDiabetesMellitus      = "Diabetes Mellitus (DM)"
	ColCoronaryArteryDisease = "Coronary Artery Disease (CAD)"
	ColHyperlipidemia        = "Hyperlipidemia"
)

// Columns lists every column the normalizer reads, in dataset order.
var Columns = []string{
	ColAge, ColGender, ColGallstoneStatus,
	ColBMI, ColGlucose, ColTotalCholesterol, ColLDL, ColHDL, ColTriglyceride,
	ColTotalBodyWater, ColVisceralFatRating, ColTotalFatContent, ColMuscleMass, ColLeanMass,
	ColComorbidity, ColDiabetesMellitus, ColCoronaryArteryDisease, ColHyperlipidemia,
}

// Field identifies one of the nullable numeric measurements.
type Field int

const (
	BMI Field = iota
	Glucose
	TotalCholesterol
	LDL
	HDL
	Triglyceride
	TotalBodyWater
	VisceralFatRating
	TotalFatContent
	MuscleMass
	LeanMassPercent
)

// Fields lists all numeric fields in column order.
var Fields = []Field{
	BMI, Glucose, TotalCholesterol, LDL, HDL, Triglyceride,
	TotalBodyWater, VisceralFatRating, TotalFatContent, MuscleMass, LeanMassPercent,
}

var fieldMeta = [...]struct {
	column string
	label  string
}{
	BMI:               {ColBMI, "BMI"},
	Glucose:           {ColGlucose, "Glucose"},
	TotalCholesterol:  {ColTotalCholesterol, "TC"},
	LDL:               {ColLDL, "LDL"},
	HDL:               {ColHDL, "HDL"},
	Triglyceride:      {ColTriglyceride, "Triglyceride"},
	TotalBodyWater:    {ColTotalBodyWater, "TBW"},
	VisceralFatRating: {ColVisceralFatRating, "VFR"},
	TotalFatContent:   {ColTotalFatContent, "TFC"},
	MuscleMass:        {ColMuscleMass, "MM"},
	LeanMassPercent:   {ColLeanMass, "LM"},
}

// Column returns the dataset column the field is read from.
func (f Field) Column() string { return fieldMeta[f].column }

// Label returns the short chart key for the field.
func (f Field) Label() string { return fieldMeta[f].label }

func (f Field) String() string { return f.Label() }

// Of reads the field from a record.
func (f Field) Of(r PatientRecord) Measure {
	switch f {
	case BMI:
		return r.BMI
	case Glucose:
		return r.Glucose
	case TotalCholesterol:
		return r.TotalCholesterol
	case LDL:
		return r.LDL
	case HDL:
		return r.HDL
	case Triglyceride:
		return r.Triglyceride
	case TotalBodyWater:
		return r.TotalBodyWater
	case VisceralFatRating:
		return r.VisceralFatRating
	case TotalFatContent:
		return r.TotalFatContent
	case MuscleMass:
		return r.MuscleMass
	case LeanMassPercent:
		return r.LeanMassPercent
	}
	return NoValue
}

// set writes the field on a record under construction.
func (f Field) set(r *PatientRecord, m Measure) {
	switch f {
	case BMI:
		r.BMI = m
	case Glucose:
		r.Glucose = m
	case TotalCholesterol:
		r.TotalCholesterol = m
	case LDL:
		r.LDL = m
	case HDL:
		r.HDL = m
	case Triglyceride:
		r.Triglyceride = m
	case TotalBodyWater:
		r.TotalBodyWater = m
	case VisceralFatRating:
		r.VisceralFatRating = m
	case TotalFatContent:
		r.TotalFatContent = m
	case MuscleMass:
		r.MuscleMass = m
	case LeanMassPercent:
		r.LeanMassPercent = m
	}
}

// FlagField identifies one of the yes/no condition columns.
type FlagField int

const (
	Comorbidity FlagField = iota
	DiabetesMellitus
	CoronaryArteryDisease
	Hyperlipidemia
)

// FlagFields lists all flag fields in column order.
var FlagFields = []FlagField{Comorbidity, DiabetesMellitus, CoronaryArteryDisease, Hyperlipidemia}

var flagMeta = [...]struct {
	column string
	label  string
}{
	Comorbidity:           {ColComorbidity, "Comorbidity"},
	DiabetesMellitus:      {ColDiabetesMellitus, "DM"},
	CoronaryArteryDisease: {ColCoronaryArteryDisease, "CAD"},
	Hyperlipidemia:        {ColHyperlipidemia, "Hyperlipidemia"},
}

func (f FlagField) Column() string { return flagMeta[f].column }

func (f FlagField) Label() string { return flagMeta[f].label }

func (f FlagField) String() string { return f.Label() }

// Of reads the flag from a record.
func (f FlagField) Of(r PatientRecord) Flag {
	switch f {
	case Comorbidity:
		return r.Comorbidity
	case DiabetesMellitus:
		return r.DiabetesMellitus
	case CoronaryArteryDisease:
		return r.CoronaryArteryDisease
	case Hyperlipidemia:
		return r.Hyperlipidemia
	}
	return FlagUnknown
}

func (f FlagField) set(r *PatientRecord, v Flag) {
	switch f {
	case Comorbidity:
		r.Comorbidity = v
	case DiabetesMellitus:
		r.DiabetesMellitus = v
	case CoronaryArteryDisease:
		r.CoronaryArteryDisease = v
	case Hyperlipidemia:
		r.Hyperlipidemia = v
	}
}
