// Package graphics provides the fixed-function texture operators: a solid
// color generator and a grayscale filter. Both run on the engine's texture
// backend through the queue interface, so they work against any device.
package graphics

import "github.com/vk/grafiek/internal/ops"

// SolidPath identifies the solid color generator.
var SolidPath = ops.OpPath{Library: "graphics", Operator: "solid"}

// GrayscalePath identifies the grayscale filter.
var GrayscalePath = ops.OpPath{Library: "graphics", Operator: "grayscale"}

// Module implements the ops.Module interface for this package.
type Module struct{}

// Register registers the graphics operators with the engine.
func (m *Module) Register(r *ops.Registry) error {
	factories := []*ops.Factory{
		{
			Library:  SolidPath.Library,
			Operator: SolidPath.Operator,
			Label:    "Solid",
			New:      func() (ops.Operation, error) { return NewSolid(), nil },
		},
		{
			Library:  GrayscalePath.Library,
			Operator: GrayscalePath.Operator,
			Label:    "Grayscale",
			New:      func() (ops.Operation, error) { return NewGrayscale(), nil },
		},
	}
	for _, f := range factories {
		if err := r.Register(f); err != nil {
			return err
		}
	}
	return nil
}
