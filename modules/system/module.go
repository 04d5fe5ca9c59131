// Package system provides the core graph endpoints: the input and output
// nodes values enter and leave a graph through, and the comment node.
package system

import "github.com/vk/grafiek/internal/ops"

// InputPath identifies the graph input operator. The engine special-cases
// nodes with this path when editing authored graph inputs.
var InputPath = ops.OpPath{Library: "core", Operator: "input"}

// OutputPath identifies the graph output operator. Results are read back
// from nodes with this path.
var OutputPath = ops.OpPath{Library: "core", Operator: "output"}

// CommentPath identifies the comment operator.
var CommentPath = ops.OpPath{Library: "core", Operator: "comment"}

// Module implements the ops.Module interface for this package.
type Module struct{}

// Register registers the core operators with the engine.
func (m *Module) Register(r *ops.Registry) error {
	factories := []*ops.Factory{
		{
			Library:  InputPath.Library,
			Operator: InputPath.Operator,
			Label:    "Input",
			New:      func() (ops.Operation, error) { return NewInput(), nil },
		},
		{
			Library:  OutputPath.Library,
			Operator: OutputPath.Operator,
			Label:    "Output",
			New:      func() (ops.Operation, error) { return NewOutput(), nil },
		},
		{
			Library:  CommentPath.Library,
			Operator: CommentPath.Operator,
			Label:    "Comment",
			New:      func() (ops.Operation, error) { return NewComment(), nil },
		},
	}
	for _, f := range factories {
		if err := r.Register(f); err != nil {
			return err
		}
	}
	return nil
}
