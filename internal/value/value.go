// Package value defines the tagged value union slots carry, the discriminant
// type used by slot declarations, and the casting rules between them.
package value

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Type identifies which kind of data a slot or value carries. Any is both
// the wildcard slot type and the discriminant a Null value reports.
type Type uint8

const (
	Any Type = iota
	I32
	F32
	Bool
	String
	Texture
)

func (t Type) String() string {
	switch t {
	case I32:
		return "i32"
	case F32:
		return "f32"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Texture:
		return "texture"
	case Any:
		return "any"
	}
	return "unknown"
}

// CanCastTo reports whether a value of this type can be converted to the
// target type. Identity always holds, Any is compatible in both directions,
// and I32 and F32 convert between each other. Every other cross-type pair
// is incompatible.
func (t Type) CanCastTo(target Type) bool {
	if t == target || t == Any || target == Any {
		return true
	}
	return (t == I32 && target == F32) || (t == F32 && target == I32)
}

// Value is a closed tagged union of everything a slot can hold. The zero
// Value is Null. Values are comparable with ==; copying one shares string
// contents rather than duplicating them.
type Value struct {
	kind Type
	i32  int32
	f32  float32
	b    bool
	str  string
	tex  TextureHandle
}

// NewI32 returns an I32 value.
func NewI32(v int32) Value { return Value{kind: I32, i32: v} }

// NewF32 returns an F32 value.
func NewF32(v float32) Value { return Value{kind: F32, f32: v} }

// NewBool returns a Bool value.
func NewBool(v bool) Value { return Value{kind: Bool, b: v} }

// NewString returns a String value.
func NewString(v string) Value { return Value{kind: String, str: v} }

// NewTexture returns a Texture value wrapping the given handle.
func NewTexture(h TextureHandle) Value { return Value{kind: Texture, tex: h} }

// Null returns the null value. Null satisfies no cast, not even to Any.
func Null() Value { return Value{} }

// Type returns the value's discriminant. A Null value reports Any.
func (v Value) Type() Type { return v.kind }

// IsNull reports whether the value is Null.
func (v Value) IsNull() bool { return v.kind == Any }

// Cast converts the value to the target type, reporting false when the
// conversion is not defined. Identity and Any-target casts return the value
// unchanged, I32 converts to F32 exactly, and F32 narrows to I32 by
// truncating toward zero. A Null value never casts.
func (v Value) Cast(target Type) (Value, bool) {
	if v.kind == Any {
		return Value{}, false
	}
	if target == Any || v.kind == target {
		return v, true
	}
	switch {
	case v.kind == I32 && target == F32:
		return NewF32(float32(v.i32)), true
	case v.kind == F32 && target == I32:
		return NewI32(int32(v.f32)), true
	}
	return Value{}, false
}

// CanCastTo reports whether Cast to the target type would succeed.
func (v Value) CanCastTo(target Type) bool {
	_, ok := v.Cast(target)
	return ok
}

// I32 extracts the int32 payload.
func (v Value) I32() (int32, error) {
	if v.kind != I32 {
		return 0, &TypeMismatchError{Wanted: I32, Found: v.kind}
	}
	return v.i32, nil
}

// F32 extracts the float32 payload.
func (v Value) F32() (float32, error) {
	if v.kind != F32 {
		return 0, &TypeMismatchError{Wanted: F32, Found: v.kind}
	}
	return v.f32, nil
}

// Bool extracts the bool payload.
func (v Value) Bool() (bool, error) {
	if v.kind != Bool {
		return false, &TypeMismatchError{Wanted: Bool, Found: v.kind}
	}
	return v.b, nil
}

// Str extracts the string payload.
func (v Value) Str() (string, error) {
	if v.kind != String {
		return "", &TypeMismatchError{Wanted: String, Found: v.kind}
	}
	return v.str, nil
}

// Texture extracts the texture handle payload.
func (v Value) Texture() (TextureHandle, error) {
	if v.kind != Texture {
		return TextureHandle{}, &TypeMismatchError{Wanted: Texture, Found: v.kind}
	}
	return v.tex, nil
}

func (v Value) String() string {
	switch v.kind {
	case I32:
		return strconv.FormatInt(int64(v.i32), 10)
	case F32:
		return fmt.Sprintf("%.3f", v.f32)
	case Bool:
		return strconv.FormatBool(v.b)
	case String:
		return v.str
	case Texture:
		return fmt.Sprintf("texture(%d)", v.tex.ID)
	}
	return "null"
}

// MarshalJSON encodes the value as {"type": ..., "value": ...} so message
// sinks can put slot values on the wire. Null encodes its payload as JSON
// null.
func (v Value) MarshalJSON() ([]byte, error) {
	out := struct {
		Type  string `json:"type"`
		Value any    `json:"value"`
	}{Type: v.kind.String()}

	switch v.kind {
	case I32:
		out.Value = v.i32
	case F32:
		out.Value = v.f32
	case Bool:
		out.Value = v.b
	case String:
		out.Value = v.str
	case Texture:
		out.Value = v.tex
	default:
		out.Type = "null"
	}
	return json.Marshal(out)
}

// DefaultFor returns the stored value a freshly declared slot of the given
// type starts out with. Any slots start out Null.
func DefaultFor(t Type) Value {
	switch t {
	case I32:
		return NewI32(0)
	case F32:
		return NewF32(0)
	case Bool:
		return NewBool(false)
	case String:
		return NewString("")
	case Texture:
		return NewTexture(TextureHandle{})
	}
	return Null()
}
