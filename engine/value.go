package engine

import (
	"math"
	"reflect"

	"github.com/grafana/sobek"
)

// Tag is the dynamic type of an engine value.
type Tag uint8

const (
	TagUndefined Tag = iota
	TagNull
	TagBoolean
	TagNumber
	TagString
	TagSymbol
	TagBigInt
	TagObject
)

var tagNames = [...]string{
	TagUndefined: "undefined",
	TagNull:      "null",
	TagBoolean:   "boolean",
	TagNumber:    "number",
	TagString:    "string",
	TagSymbol:    "symbol",
	TagBigInt:    "bigint",
	TagObject:    "object",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// Value is a rooted lease on an engine value. The zero Value is absent
// and reads as undefined.
type Value struct {
	cx  *Context
	raw sobek.Value
}

// Raw returns the underlying sobek value, never nil.
func (v Value) Raw() sobek.Value {
	if v.raw == nil {
		return sobek.Undefined()
	}
	return v.raw
}

// Context returns the context the value is rooted in, or nil if absent.
func (v Value) Context() *Context {
	return v.cx
}

// IsAbsent reports whether v is the zero Value.
func (v Value) IsAbsent() bool {
	return v.raw == nil
}

// Tag classifies the value.
func (v Value) Tag() Tag {
	raw := v.raw
	switch raw.(type) {
	case nil:
		return TagUndefined
	case *sobek.Object:
		return TagObject
	case *sobek.Symbol:
		return TagSymbol
	}
	if sobek.IsUndefined(raw) {
		return TagUndefined
	}
	if sobek.IsNull(raw) {
		return TagNull
	}
	t := raw.ExportType()
	if t == nil {
		return TagUndefined
	}
	switch t.Kind() {
	case reflect.Bool:
		return TagBoolean
	case reflect.Int64, reflect.Float64:
		return TagNumber
	case reflect.String:
		return TagString
	case reflect.Pointer:
		return TagBigInt
	}
	return TagUndefined
}

func (v Value) IsUndefined() bool { return v.Tag() == TagUndefined }
func (v Value) IsNull() bool      { return v.Tag() == TagNull }
func (v Value) IsBoolean() bool   { return v.Tag() == TagBoolean }
func (v Value) IsNumber() bool    { return v.Tag() == TagNumber }
func (v Value) IsString() bool    { return v.Tag() == TagString }
func (v Value) IsSymbol() bool    { return v.Tag() == TagSymbol }
func (v Value) IsBigInt() bool    { return v.Tag() == TagBigInt }
func (v Value) IsObject() bool    { return v.Tag() == TagObject }

// IsNullOrUndefined reports whether v is null, undefined or absent.
func (v Value) IsNullOrUndefined() bool {
	t := v.Tag()
	return t == TagNull || t == TagUndefined
}

// Bool returns the payload of a boolean value. It does not coerce;
// non-boolean values report false.
func (v Value) Bool() bool {
	if !v.IsBoolean() {
		return false
	}
	return v.raw.ToBoolean()
}

// Number returns the payload of a number value. It does not coerce;
// non-number values report NaN.
func (v Value) Number() float64 {
	if !v.IsNumber() {
		return math.NaN()
	}
	return v.raw.ToFloat()
}

// AsObject refines v to an Object without any realm check.
func (v Value) AsObject() (Object, bool) {
	if _, ok := v.raw.(*sobek.Object); !ok {
		return Object{}, false
	}
	return Object{Value: v}, true
}

// SameAs reports SameValue equality.
func (v Value) SameAs(other Value) bool {
	return v.Raw().SameAs(other.Raw())
}

// Export returns the Go representation chosen by the engine. Exporting an
// object may run getters, so errors thrown by script are returned.
func (v Value) Export() (any, error) {
	if v.cx == nil {
		return v.Raw().Export(), nil
	}
	var out any
	err := v.cx.Guard(func() {
		out = v.Raw().Export()
	})
	return out, err
}

// String describes the value without running script.
func (v Value) String() string {
	switch v.Tag() {
	case TagObject:
		return "[object " + v.raw.(*sobek.Object).ClassName() + "]"
	case TagUndefined:
		return "undefined"
	default:
		return v.raw.String()
	}
}

// Slot is a writable engine value location, such as a call's return slot.
type Slot struct {
	cx *Context
	p  *sobek.Value
}

// Get returns the current slot contents rooted in the slot's context.
func (s *Slot) Get() Value {
	return s.cx.RootValue(*s.p)
}

// Set stores v in the slot.
func (s *Slot) Set(v Value) {
	*s.p = v.Raw()
}

// SetRaw stores a raw engine value in the slot.
func (s *Slot) SetRaw(raw sobek.Value) {
	if raw == nil {
		raw = sobek.Undefined()
	}
	*s.p = raw
}
