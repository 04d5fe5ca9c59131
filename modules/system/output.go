package system

import (
	"github.com/vk/grafiek/internal/ops"
	"github.com/vk/grafiek/internal/signature"
	"github.com/vk/grafiek/internal/value"
)

// Output exposes a value computed by the graph. The engine reads results
// straight from the node's resolved input, so execution is a no-op.
type Output struct {
	ops.Base
}

// NewOutput returns an output operator.
func NewOutput() *Output { return &Output{} }

func (*Output) Path() ops.OpPath { return OutputPath }

func (*Output) Setup(_ *ops.ExecContext, sig *signature.Registry) error {
	sig.AddInputOf(value.Any, "value").
		Tooltip("Value to expose as a graph result.")
	return nil
}
