// Package mathops provides scalar arithmetic operators.
package mathops

import "github.com/vk/grafiek/internal/ops"

// AddPath identifies the arithmetic operator. The node defaults to addition
// and switches function through config.
var AddPath = ops.OpPath{Library: "math", Operator: "add"}

// Module implements the ops.Module interface for this package.
type Module struct{}

// Register registers the arithmetic operator with the engine.
func (m *Module) Register(r *ops.Registry) error {
	return r.Register(&ops.Factory{
		Library:  AddPath.Library,
		Operator: AddPath.Operator,
		Label:    "Add",
		New:      func() (ops.Operation, error) { return NewArithmetic(), nil },
	})
}
