package system

import (
	"github.com/vk/grafiek/internal/ops"
	"github.com/vk/grafiek/internal/signature"
	"github.com/vk/grafiek/internal/value"
)

// Input feeds a value into the graph. The authored value lives in the
// node's output slot so it survives input reconciliation; when the value
// slot is driven by a connection, the incoming value passes through
// instead.
type Input struct {
	ops.Base
}

// NewInput returns an input operator producing a float by default.
func NewInput() *Input { return &Input{} }

func (*Input) Path() ops.OpPath { return InputPath }

func (*Input) Setup(_ *ops.ExecContext, sig *signature.Registry) error {
	signature.AddConfig[int32](sig, "type").
		Meta(signature.IntEnum{Options: []signature.EnumOption{
			{Label: "f32", Value: int32(value.F32)},
			{Label: "i32", Value: int32(value.I32)},
			{Label: "bool", Value: int32(value.Bool)},
			{Label: "string", Value: int32(value.String)},
		}}).
		Default(int32(value.F32)).
		Tooltip("Type of the produced value.").
		OnNodeBody(true)
	sig.AddInputOf(value.Any, "value").
		Tooltip("Optional upstream override for the authored value.")
	return nil
}

func (*Input) Configure(_ *ops.ExecContext, config value.Inputs, sig *signature.Registry) error {
	t, err := config.I32(0)
	if err != nil {
		return err
	}
	out := value.F32
	switch value.Type(t) {
	case value.I32, value.F32, value.Bool, value.String:
		out = value.Type(t)
	}
	sig.ClearOutputs()
	sig.AddOutputOf(out, "value")
	return nil
}

// Execute passes a driven value through to the output. Without a driver the
// authored output value is left as-is.
func (*Input) Execute(_ *ops.ExecContext, in value.Inputs, out value.Outputs) error {
	v, err := in.Value(0)
	if err != nil {
		return err
	}
	if v.IsNull() {
		return nil
	}
	cur, err := out.Value(0)
	if err != nil {
		return err
	}
	if cast, ok := v.Cast(cur.Type()); ok {
		return out.Set(0, cast)
	}
	return nil
}
