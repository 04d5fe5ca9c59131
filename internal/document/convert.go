package document

import (
	"errors"
	"fmt"

	"github.com/vk/grafiek/internal/signature"
	"github.com/vk/grafiek/internal/value"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// toSlotValue converts a document attribute to the slot's declared type. An
// untyped slot takes whatever shape the attribute has, with numbers read as
// f32.
func toSlotValue(def *signature.SlotDef, raw cty.Value) (value.Value, error) {
	if raw.IsNull() {
		return value.Null(), nil
	}

	target := def.Type
	if target == value.Any {
		switch raw.Type() {
		case cty.Number:
			target = value.F32
		case cty.Bool:
			target = value.Bool
		case cty.String:
			target = value.String
		default:
			return value.Value{}, fmt.Errorf("unsupported attribute type %s", raw.Type().FriendlyName())
		}
	}

	switch target {
	case value.I32:
		var n int32
		if err := decodeAs(raw, cty.Number, &n); err != nil {
			return value.Value{}, err
		}
		return value.NewI32(n), nil
	case value.F32:
		var f float32
		if err := decodeAs(raw, cty.Number, &f); err != nil {
			return value.Value{}, err
		}
		return value.NewF32(f), nil
	case value.Bool:
		var b bool
		if err := decodeAs(raw, cty.Bool, &b); err != nil {
			return value.Value{}, err
		}
		return value.NewBool(b), nil
	case value.String:
		var s string
		if err := decodeAs(raw, cty.String, &s); err != nil {
			return value.Value{}, err
		}
		return value.NewString(s), nil
	case value.Texture:
		return value.Value{}, errors.New("texture slots cannot be stored in a document")
	default:
		return value.Value{}, fmt.Errorf("unsupported slot type %s", def.Type)
	}
}

// decodeAs converts raw to the wanted cty type and decodes it into the Go
// pointer target.
func decodeAs(raw cty.Value, want cty.Type, target any) error {
	converted, err := convert.Convert(raw, want)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", raw.Type().FriendlyName(), want.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, target)
}

// attributeValue converts a stored slot value to its document attribute
// form. Textures and nulls have none.
func attributeValue(v value.Value) (cty.Value, bool) {
	switch v.Type() {
	case value.I32:
		n, _ := v.I32()
		return cty.NumberIntVal(int64(n)), true
	case value.F32:
		f, _ := v.F32()
		return cty.NumberFloatVal(float64(f)), true
	case value.Bool:
		b, _ := v.Bool()
		return cty.BoolVal(b), true
	case value.String:
		s, _ := v.Str()
		return cty.StringVal(s), true
	default:
		return cty.NilVal, false
	}
}
