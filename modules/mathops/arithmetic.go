package mathops

import (
	"fmt"
	"math"

	"github.com/vk/grafiek/internal/ops"
	"github.com/vk/grafiek/internal/signature"
	"github.com/vk/grafiek/internal/value"
)

// ArithOp selects the function an arithmetic node computes.
type ArithOp int32

const (
	Add ArithOp = iota
	Subtract
	Multiply
	Power
	Log
	Divide
	Min
	Max
	Abs
)

// Arithmetic computes one scalar function of its float inputs. The chosen
// function drives the input signature: Subtract exposes minuend and
// subtrahend, Abs a single operand, and so on.
type Arithmetic struct {
	ops.Base
	operation ArithOp
}

// NewArithmetic returns an arithmetic operator computing Add.
func NewArithmetic() *Arithmetic { return &Arithmetic{operation: Add} }

func (*Arithmetic) Path() ops.OpPath { return AddPath }

func (*Arithmetic) Setup(_ *ops.ExecContext, sig *signature.Registry) error {
	signature.AddConfig[int32](sig, "operation").
		Meta(signature.IntEnum{Options: []signature.EnumOption{
			{Label: "Add", Value: int32(Add)},
			{Label: "Subtract", Value: int32(Subtract)},
			{Label: "Multiply", Value: int32(Multiply)},
			{Label: "Power", Value: int32(Power)},
			{Label: "Log", Value: int32(Log)},
			{Label: "Divide", Value: int32(Divide)},
			{Label: "Min", Value: int32(Min)},
			{Label: "Max", Value: int32(Max)},
			{Label: "Abs", Value: int32(Abs)},
		}}).
		Default(int32(Add)).
		OnNodeBody(true)
	signature.AddInput[float32](sig, "a")
	signature.AddInput[float32](sig, "b")
	signature.AddOutput[float32](sig, "result")
	return nil
}

func (a *Arithmetic) Configure(_ *ops.ExecContext, config value.Inputs, sig *signature.Registry) error {
	op, err := config.I32(0)
	if err != nil {
		return err
	}
	if ArithOp(op) < Add || ArithOp(op) > Abs {
		return fmt.Errorf("unknown arithmetic operation %d", op)
	}
	a.operation = ArithOp(op)

	sig.ClearInputs()
	sig.ClearOutputs()
	signature.AddOutput[float32](sig, "result")

	switch a.operation {
	case Subtract:
		signature.AddInput[float32](sig, "minuend")
		signature.AddInput[float32](sig, "subtrahend")
	case Power:
		signature.AddInput[float32](sig, "base")
		signature.AddInput[float32](sig, "exponent")
	case Log:
		signature.AddInput[float32](sig, "base")
		signature.AddInput[float32](sig, "a")
	case Divide:
		signature.AddInput[float32](sig, "dividend")
		signature.AddInput[float32](sig, "divisor")
	case Abs:
		signature.AddInput[float32](sig, "a")
	default:
		signature.AddInput[float32](sig, "a")
		signature.AddInput[float32](sig, "b")
	}
	return nil
}

func (a *Arithmetic) Execute(_ *ops.ExecContext, in value.Inputs, out value.Outputs) error {
	if a.operation == Abs {
		v, err := in.F32(0)
		if err != nil {
			return err
		}
		return out.SetF32(0, float32(math.Abs(float64(v))))
	}

	x, err := in.F32(0)
	if err != nil {
		return err
	}
	y, err := in.F32(1)
	if err != nil {
		return err
	}

	var r float32
	switch a.operation {
	case Add:
		r = x + y
	case Subtract:
		r = x - y
	case Multiply:
		r = x * y
	case Power:
		r = float32(math.Pow(float64(x), float64(y)))
	case Log:
		// Slot 0 is the base, slot 1 the operand.
		r = float32(math.Log(float64(y)) / math.Log(float64(x)))
	case Divide:
		r = x / y
	case Min:
		r = min(x, y)
	case Max:
		r = max(x, y)
	}
	return out.SetF32(0, r)
}
