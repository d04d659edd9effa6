package porm

import "github.com/pkg/errors"

var ErrNoSuchField = errors.New("record has no such field")
var ErrWrongFieldType = errors.New("field holds a different type")

// Record represents one row. Fields are assigned at mapping time, one
// per result column, keyed by the column name, in column order. There
// is no fixed schema; the field set is whatever the query returned.
//
// A Record mapped from table t always carries an id field holding the
// row's primary key. An id of 0, or no id field at all, marks a record
// that has not been persisted yet.
type Record struct {
	names []string
	vals  map[string]Value
}

func NewRecord() *Record {
	return &Record{vals: make(map[string]Value)}
}

// Set assigns a field, appending it to the iteration order when the
// name is new. It returns the record for chaining.
func (r *Record) Set(name string, v Value) *Record {
	if _, ok := r.vals[name]; !ok {
		r.names = append(r.names, name)
	}

	r.vals[name] = v
	return r
}

func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.vals[name]
	return v, ok
}

func (r *Record) Has(name string) bool {
	_, ok := r.vals[name]
	return ok
}

// Fields returns the field names in assignment order. Save iterates
// fields in exactly this order.
func (r *Record) Fields() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// ID returns the primary key, or 0 when the record has never been
// persisted (no id field, or an explicit 0).
func (r *Record) ID() int64 {
	v, ok := r.vals["id"]
	if !ok {
		return 0
	}

	n, _ := v.Int()
	return n
}

func (r *Record) SetID(id int64) *Record {
	return r.Set("id", IntValue(id))
}

func (r *Record) String(name string) (string, error) {
	v, ok := r.vals[name]
	if !ok {
		return "", errors.Wrapf(ErrNoSuchField, "field %s", name)
	}

	s, ok := v.Text()
	if !ok {
		return "", errors.Wrapf(ErrWrongFieldType, "field %s is not text", name)
	}

	return s, nil
}

func (r *Record) StringOrDefault(name, def string) string {
	if v, err := r.String(name); err != nil {
		return def
	} else {
		return v
	}
}

func (r *Record) Int(name string) (int64, error) {
	v, ok := r.vals[name]
	if !ok {
		return 0, errors.Wrapf(ErrNoSuchField, "field %s", name)
	}

	n, ok := v.Int()
	if !ok {
		return 0, errors.Wrapf(ErrWrongFieldType, "field %s is not an integer", name)
	}

	return n, nil
}

func (r *Record) IntOrDefault(name string, def int64) int64 {
	if v, err := r.Int(name); err != nil {
		return def
	} else {
		return v
	}
}

func (r *Record) Float(name string) (float64, error) {
	v, ok := r.vals[name]
	if !ok {
		return 0, errors.Wrapf(ErrNoSuchField, "field %s", name)
	}

	f, ok := v.Float()
	if !ok {
		return 0, errors.Wrapf(ErrWrongFieldType, "field %s is not a float", name)
	}

	return f, nil
}

func (r *Record) FloatOrDefault(name string, def float64) float64 {
	if v, err := r.Float(name); err != nil {
		return def
	} else {
		return v
	}
}

// Ref returns the resolved foreign key record stored under name.
// A dangling foreign key resolves to null, which surfaces here as
// ErrWrongFieldType; callers traversing references must handle it.
func (r *Record) Ref(name string) (*Record, error) {
	v, ok := r.vals[name]
	if !ok {
		return nil, errors.Wrapf(ErrNoSuchField, "field %s", name)
	}

	rec, ok := v.Record()
	if !ok {
		return nil, errors.Wrapf(ErrWrongFieldType, "field %s is not a resolved reference", name)
	}

	return rec, nil
}

// IsNull reports whether the field exists and holds an explicit null.
func (r *Record) IsNull(name string) bool {
	v, ok := r.vals[name]
	return ok && v.IsNull()
}

// Clone deep-copies the record, including nested foreign key records.
// Nested records are owned exclusively by their parent, so the copy
// shares nothing with the original.
func (r *Record) Clone() *Record {
	cp := NewRecord()
	for _, name := range r.names {
		cp.Set(name, r.vals[name].clone())
	}

	return cp
}
