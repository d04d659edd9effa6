package porm

import "strconv"

type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindText
	KindRecord
)

// Value is a tagged variant holding one column's worth of data: an
// integer, a float, text, an explicit null, or a nested Record produced
// by foreign key resolution. It is a sealed value type constructed via
// the *Value helper functions.
type Value struct {
	kind Kind
	n    int64
	f    float64
	s    string
	rec  *Record
}

func NullValue() Value              { return Value{kind: KindNull} }
func IntValue(n int64) Value        { return Value{kind: KindInt, n: n} }
func FloatValue(f float64) Value    { return Value{kind: KindFloat, f: f} }
func TextValue(s string) Value      { return Value{kind: KindText, s: s} }
func RecordValue(rec *Record) Value { return Value{kind: KindRecord, rec: rec} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Int() (int64, bool) {
	return v.n, v.kind == KindInt
}

func (v Value) Float() (float64, bool) {
	return v.f, v.kind == KindFloat
}

func (v Value) Text() (string, bool) {
	return v.s, v.kind == KindText
}

func (v Value) Record() (*Record, bool) {
	return v.rec, v.kind == KindRecord
}

// raw renders the value the way it is interpolated into a nested
// foreign key lookup, unquoted.
func (v Value) raw() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.n, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindText:
		return v.s
	case KindRecord:
		return strconv.FormatInt(v.rec.ID(), 10)
	default:
		return "null"
	}
}

// formatFloat renders a float so that it reads back as a float: a
// whole-valued float gets an explicit decimal point, otherwise a
// round trip through a dynamically typed engine would flip the cell
// to an integer.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)

	for i := 0; i < len(s); i++ {
		if s[i] == '.' || s[i] == 'e' || s[i] == 'E' {
			return s
		}
	}

	return s + ".0"
}

// clone deep-copies the value, including any nested record.
func (v Value) clone() Value {
	if v.kind == KindRecord && v.rec != nil {
		cp := v
		cp.rec = v.rec.Clone()
		return cp
	}

	return v
}
