// Package scalar classifies and converts the terminal leaf values of the
// interchange layer: the numeric widths, strings, booleans, timestamps, and
// identifiers that appear at the bottom of every decoded or encoded tree.
package scalar

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Kind is the category of a terminal scalar type.
type Kind int

const (
	Invalid Kind = iota
	Int8
	Int16
	Int32
	Int64
	Int
	Uint8
	Uint16
	Uint32
	Uint64
	Uint
	Float32
	Float64
	// Decimal is an arbitrary-precision decimal, represented as json.Number
	// to keep the exact wire text.
	Decimal
	String
	Bool
	// Timestamp covers both the date and date-with-offset categories; Go's
	// time.Time carries the offset either way.
	Timestamp
	// Identifier is a GUID in canonical textual form.
	Identifier
)

var kindNames = map[Kind]string{
	Int8:       "int8",
	Int16:      "int16",
	Int32:      "int32",
	Int64:      "int64",
	Int:        "int",
	Uint8:      "uint8",
	Uint16:     "uint16",
	Uint32:     "uint32",
	Uint64:     "uint64",
	Uint:       "uint",
	Float32:    "float32",
	Float64:    "float64",
	Decimal:    "decimal",
	String:     "string",
	Bool:       "bool",
	Timestamp:  "timestamp",
	Identifier: "identifier",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// Numeric reports whether the kind is one of the numeric categories.
func (k Kind) Numeric() bool {
	return k >= Int8 && k <= Decimal
}

// Integer reports whether the kind is an integer category.
func (k Kind) Integer() bool {
	return k >= Int8 && k <= Uint
}

// Textual reports whether values of the kind are carried as JSON strings.
func (k Kind) Textual() bool {
	return k == String || k == Timestamp || k == Identifier
}

var (
	timeType   = reflect.TypeOf(time.Time{})
	uuidType   = reflect.TypeOf(uuid.UUID{})
	numberType = reflect.TypeOf(json.Number(""))
)

// KindOf classifies a type as a scalar kind, or Invalid when the type is not
// a recognized leaf. Exact types are matched before reflect kinds so that
// time.Time, uuid.UUID, and json.Number are not mistaken for the struct,
// array, and string shapes underlying them.
func KindOf(t reflect.Type) Kind {
	switch t {
	case timeType:
		return Timestamp
	case uuidType:
		return Identifier
	case numberType:
		return Decimal
	}

	switch t.Kind() {
	case reflect.Int8:
		return Int8
	case reflect.Int16:
		return Int16
	case reflect.Int32:
		return Int32
	case reflect.Int64:
		return Int64
	case reflect.Int:
		return Int
	case reflect.Uint8:
		return Uint8
	case reflect.Uint16:
		return Uint16
	case reflect.Uint32:
		return Uint32
	case reflect.Uint64:
		return Uint64
	case reflect.Uint:
		return Uint
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	case reflect.String:
		return String
	case reflect.Bool:
		return Bool
	default:
		return Invalid
	}
}

// unwrap strips one optional (pointer) layer, so classification predicates
// are transparent through Optional.
func unwrap(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

// IsNumeric reports whether t (or its optional inner type) is numeric.
func IsNumeric(t reflect.Type) bool {
	return KindOf(unwrap(t)).Numeric()
}

// IsString reports whether t (or its optional inner type) is a plain string.
func IsString(t reflect.Type) bool {
	return KindOf(unwrap(t)) == String
}

// IsTemporal reports whether t (or its optional inner type) is a timestamp.
func IsTemporal(t reflect.Type) bool {
	return KindOf(unwrap(t)) == Timestamp
}

// IsIdentifier reports whether t (or its optional inner type) is a GUID.
func IsIdentifier(t reflect.Type) bool {
	return KindOf(unwrap(t)) == Identifier
}

// IsBoolean reports whether t (or its optional inner type) is a boolean.
func IsBoolean(t reflect.Type) bool {
	return KindOf(unwrap(t)) == Bool
}

const (
	// DateOnly is the date-only textual form.
	DateOnly = "2006-01-02"
	// RoundTrip is the full-precision timestamp form: date, time, optional
	// fractional seconds, and zone offset or UTC marker.
	RoundTrip = time.RFC3339Nano
)

// ParseTime parses timestamp text strictly against, in order, the round-trip
// form and the date-only form. The first match wins.
func ParseTime(text string) (time.Time, error) {
	if ts, err := time.Parse(RoundTrip, text); err == nil {
		return ts, nil
	}
	ts, err := time.Parse(DateOnly, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("not a round-trip or date-only timestamp")
	}
	return ts, nil
}

// FormatTime renders a timestamp. A value at exactly midnight with a zero
// zone offset round-trips through the date-only form; everything else uses
// the full round-trip form.
func FormatTime(ts time.Time) string {
	_, offset := ts.Zone()
	hour, minute, second := ts.Clock()
	if offset == 0 && hour == 0 && minute == 0 && second == 0 && ts.Nanosecond() == 0 {
		return ts.Format(DateOnly)
	}
	return ts.Format(RoundTrip)
}

// FromNumber reinterprets decimal text as the scalar kind of dst.
// Out-of-range and non-representable conversions fail rather than truncate.
func FromNumber(text string, dst reflect.Value) error {
	kind := KindOf(dst.Type())
	switch {
	case kind == Decimal:
		dst.SetString(text)
		return nil

	case kind.Integer() && kind <= Int:
		n, err := strconv.ParseInt(text, 10, dst.Type().Bits())
		if err != nil {
			return fmt.Errorf("not representable as %s", kind)
		}
		dst.SetInt(n)
		return nil

	case kind.Integer():
		n, err := strconv.ParseUint(text, 10, dst.Type().Bits())
		if err != nil {
			return fmt.Errorf("not representable as %s", kind)
		}
		dst.SetUint(n)
		return nil

	case kind == Float32 || kind == Float64:
		f, err := strconv.ParseFloat(text, dst.Type().Bits())
		if err != nil {
			return fmt.Errorf("not representable as %s", kind)
		}
		dst.SetFloat(f)
		return nil

	default:
		return fmt.Errorf("%s is not a numeric target", dst.Type())
	}
}

// FromString reinterprets string text as the textual scalar kind of dst.
func FromString(text string, dst reflect.Value) error {
	switch KindOf(dst.Type()) {
	case String:
		dst.SetString(text)
		return nil

	case Timestamp:
		ts, err := ParseTime(text)
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(ts))
		return nil

	case Identifier:
		id, err := uuid.Parse(text)
		if err != nil {
			return fmt.Errorf("not a canonical GUID")
		}
		dst.Set(reflect.ValueOf(id))
		return nil

	default:
		return fmt.Errorf("%s is not a textual target", dst.Type())
	}
}

// FromBool assigns a boolean to dst, which must be of the boolean kind.
func FromBool(b bool, dst reflect.Value) error {
	if KindOf(dst.Type()) != Bool {
		return fmt.Errorf("%s is not a boolean target", dst.Type())
	}
	dst.SetBool(b)
	return nil
}
