// Package tabular defines the generic in-memory table model shared by every
// codec and both execution profiles. It is deliberately dependency-free: the
// masking policy and the model it operates on must behave identically no
// matter which serialization backend produced the table.
package tabular

import "time"

// Type describes the declared type of a schema column. Only formats that
// carry type information (Parquet) populate column types beyond TypeString.
type Type int

const (
	TypeString Type = iota
	TypeBool
	TypeInt32
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeBytes
	TypeTimestamp
)

// String returns the lowercase name of the type.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	case TypeBytes:
		return "bytes"
	case TypeTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Column is one named, typed column of a schema.
type Column struct {
	Name string
	Type Type
}

// Schema is the ordered column list of a table. CSV tables carry an
// all-string schema so that column order survives inputs with zero records;
// JSON tables have no schema at all.
type Schema []Column

// Index returns the position of the named column, or -1 if absent.
func (s Schema) Index(name string) int {
	for i, c := range s {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// RawJSON holds a JSON value verbatim. The JSON codecs use it so that nested
// objects and arrays round-trip byte-for-byte without re-encoding.
type RawJSON []byte

// Value is one cell of a record. Concrete types are string, bool, int32,
// int64, float32, float64, []byte, time.Time, RawJSON, or nil.
type Value any

// Record is an ordered field-name-to-value mapping. Key order is preserved
// on encode, so it is kept explicitly instead of relying on map iteration.
type Record struct {
	keys   []string
	values map[string]Value
}

// NewRecord returns an empty record with capacity for n fields.
func NewRecord(n int) *Record {
	return &Record{
		keys:   make([]string, 0, n),
		values: make(map[string]Value, n),
	}
}

// Append adds a field at the end of the record. Appending an existing key
// overwrites its value without duplicating the key.
func (r *Record) Append(name string, v Value) {
	if _, ok := r.values[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.values[name] = v
}

// Set replaces the value of an existing field. It reports whether the field
// was present; absent fields are left alone.
func (r *Record) Set(name string, v Value) bool {
	if _, ok := r.values[name]; !ok {
		return false
	}
	r.values[name] = v
	return true
}

// Get returns the value of a field and whether the field exists.
func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether the record contains the named field.
func (r *Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Keys returns the field names in insertion order. The returned slice is
// owned by the record and must not be mutated.
func (r *Record) Keys() []string {
	return r.keys
}

// Len returns the number of fields in the record.
func (r *Record) Len() int {
	return len(r.keys)
}

// Table is the decoded form of one tabular file: an ordered sequence of
// records plus an optional schema. A table is owned by exactly one request
// for its whole lifetime, so none of its methods synchronize.
type Table struct {
	Schema  Schema
	Records []*Record

	// SingleRecord marks a JSON document whose root was a single object
	// rather than an array, so the encoder can restore the original shape.
	SingleRecord bool
}

// NumRecords returns the record count.
func (t *Table) NumRecords() int {
	return len(t.Records)
}

// timestampEqual compares time values by instant, ignoring location.
func timestampEqual(a, b time.Time) bool {
	return a.Equal(b)
}

// ValueEqual reports whether two cell values are equal. Byte slices and raw
// JSON compare by content, timestamps by instant.
func ValueEqual(a, b Value) bool {
	switch av := a.(type) {
	case []byte:
		bv, ok := b.([]byte)
		return ok && string(av) == string(bv)
	case RawJSON:
		bv, ok := b.(RawJSON)
		return ok && string(av) == string(bv)
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && timestampEqual(av, bv)
	default:
		return a == b
	}
}
