// Package record defines the field mapping that admission decisions are made over.
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var ErrInvalid = errors.New("invalid record")

// Field names reserved for system metadata. They are stamped by the
// admission layer and excluded from digest computation.
const (
	FieldTimestamp = "timestamp"
	FieldID        = "unique_id"
)

type Kind int

const (
	KindString Kind = iota + 1
	KindNumber
	KindBool
)

// Value is a tagged scalar: string, number or boolean.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

func String(s string) Value {
	return Value{kind: KindString, str: s}
}

func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func (v Value) Kind() Kind {
	return v.kind
}

// Text converts the value to its string form. This is the single
// stringification rule normalization builds on.
func (v Value) Text() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.str
	}
}

type Field struct {
	Name  string
	Value Value
}

// Record is an ordered mapping from field name to scalar value. The
// field set is open; iteration follows insertion order.
type Record struct {
	fields []Field
	index  map[string]int
}

func New() *Record {
	return &Record{
		index: make(map[string]int),
	}
}

// Set adds the field or replaces its value in place, preserving the
// original insertion position. It returns the record for chaining.
func (r *Record) Set(name string, v Value) *Record {
	if pos, ok := r.index[name]; ok {
		r.fields[pos].Value = v

		return r
	}

	r.index[name] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: v})

	return r
}

func (r *Record) Get(name string) (Value, bool) {
	pos, ok := r.index[name]
	if !ok {
		return Value{}, false
	}

	return r.fields[pos].Value, true
}

func (r *Record) Len() int {
	return len(r.fields)
}

// Fields returns a copy of the fields in insertion order.
func (r *Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)

	return out
}

func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}

	out := New()
	for _, f := range r.fields {
		out.Set(f.Name, f.Value)
	}

	return out
}

func (r *Record) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil record", ErrInvalid)
	}

	for _, f := range r.fields {
		if f.Name == "" {
			return fmt.Errorf("%w: empty field name", ErrInvalid)
		}

		if f.Value.kind == 0 {
			return fmt.Errorf("%w: field %q has no value", ErrInvalid, f.Name)
		}
	}

	return nil
}

type jsonField struct {
	Name  string          `json:"name"`
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON encodes the record as an ordered array of tagged fields so
// store backends round-trip both field order and scalar kind.
func (r *Record) MarshalJSON() ([]byte, error) {
	out := make([]jsonField, 0, len(r.fields))

	for _, f := range r.fields {
		jf := jsonField{Name: f.Name}

		var (
			raw []byte
			err error
		)

		switch f.Value.kind {
		case KindNumber:
			jf.Kind = "number"
			raw, err = json.Marshal(f.Value.num)
		case KindBool:
			jf.Kind = "bool"
			raw, err = json.Marshal(f.Value.b)
		default:
			jf.Kind = "string"
			raw, err = json.Marshal(f.Value.str)
		}

		if err != nil {
			return nil, err
		}

		jf.Value = raw
		out = append(out, jf)
	}

	return json.Marshal(out)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var in []jsonField

	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	r.fields = r.fields[:0]
	r.index = make(map[string]int, len(in))

	for _, jf := range in {
		switch jf.Kind {
		case "number":
			var n float64
			if err := json.Unmarshal(jf.Value, &n); err != nil {
				return err
			}

			r.Set(jf.Name, Number(n))
		case "bool":
			var b bool
			if err := json.Unmarshal(jf.Value, &b); err != nil {
				return err
			}

			r.Set(jf.Name, Bool(b))
		case "string":
			var s string
			if err := json.Unmarshal(jf.Value, &s); err != nil {
				return err
			}

			r.Set(jf.Name, String(s))
		default:
			return fmt.Errorf("%w: unknown field kind %q", ErrInvalid, jf.Kind)
		}
	}

	return nil
}
