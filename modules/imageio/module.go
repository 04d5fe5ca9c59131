// Package imageio provides the image file source operator. A file watcher
// re-dirties the node when the file changes on disk, so saved edits show up
// on the next execution pass without manual prodding.
package imageio

import "github.com/vk/grafiek/internal/ops"

// ImagePath identifies the image file source operator.
var ImagePath = ops.OpPath{Library: "graphics", Operator: "image"}

// Module implements the ops.Module interface for this package.
type Module struct{}

// Register registers the image operator with the engine.
func (m *Module) Register(r *ops.Registry) error {
	return r.Register(&ops.Factory{
		Library:  ImagePath.Library,
		Operator: ImagePath.Operator,
		Label:    "Image",
		New:      func() (ops.Operation, error) { return NewImage(), nil },
	})
}
