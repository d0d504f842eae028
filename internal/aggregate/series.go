package aggregate

import "github.com/Sohaib432002/Dashboard/internal/record"

// Point is one record's values in a series. ID is the 1-based position in
// the filtered set, not a time axis. A nil value means absent.
type Point struct {
	ID     int
	Values []*float64
}

// Series is an ordered per-record extraction of several fields.
type Series struct {
	Fields []record.Field
	Points []Point
}

// Extract returns one point per record in input order.
func Extract(records []record.PatientRecord, fields ...record.Field) Series {
	s := Series{Fields: fields, Points: make([]Point, len(records))}
	for i, r := range records {
		vals := make([]*float64, len(fields))
		for j, f := range fields {
			vals[j] = f.Of(r).Ptr()
		}
		s.Points[i] = Point{ID: i + 1, Values: vals}
	}
	return s
}

// Present counts non-nil values of the field at column j.
func (s Series) Present(j int) int {
	n := 0
	for _, p := range s.Points {
		if j < len(p.Values) && p.Values[j] != nil {
			n++
		}
	}
	return n
}
