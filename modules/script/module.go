// Package script provides the expression operator: one line of HCL
// evaluated over float inputs derived from its variables.
package script

import "github.com/vk/grafiek/internal/ops"

// ExprPath identifies the expression operator.
var ExprPath = ops.OpPath{Library: "script", Operator: "expr"}

// Module implements the ops.Module interface for this package.
type Module struct{}

// Register registers the expression operator with the engine.
func (m *Module) Register(r *ops.Registry) error {
	return r.Register(&ops.Factory{
		Library:  ExprPath.Library,
		Operator: ExprPath.Operator,
		Label:    "Expression",
		New:      func() (ops.Operation, error) { return NewExpr(), nil },
	})
}
