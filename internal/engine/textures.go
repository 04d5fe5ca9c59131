package engine

import (
	"github.com/vk/grafiek/internal/gpu"
	"github.com/vk/grafiek/internal/node"
	"github.com/vk/grafiek/internal/value"
)

// syncOutputTextures reconciles pool allocations with a node's texture
// outputs after its signature was rebuilt. A handle that survived at the
// same slot keeps its allocation, fresh texture slots get one, and old
// allocations that no longer back any output are released.
func (e *Engine) syncOutputTextures(n *node.Node, oldOutputs []value.Value) {
	e.ectx.SetOwner(gpu.Owner(n.ID()))
	defer e.ectx.SetOwner(gpu.OwnerEngine)

	outs := value.Outputs(n.OutputValues())
	for i := 0; i < outs.Len(); i++ {
		h, err := outs.Texture(i)
		if err != nil {
			continue
		}
		if !h.Allocated() && i < len(oldOutputs) && oldOutputs[i].Type() == value.Texture {
			if old, err := oldOutputs[i].Texture(); err == nil && old.Allocated() {
				h.ID = old.ID
			}
		}
		if err := e.ectx.EnsureTexture(h); err != nil {
			e.log.Error("Texture allocation failed.", "node", n.ID(), "error", err)
		}
	}

	live := make(map[value.TextureID]bool)
	for i := 0; i < outs.Len(); i++ {
		if h, err := outs.Texture(i); err == nil && h.Allocated() {
			live[h.ID] = true
		}
	}
	for _, old := range oldOutputs {
		if old.Type() != value.Texture {
			continue
		}
		h, err := old.Texture()
		if err != nil || !h.Allocated() || live[h.ID] {
			continue
		}
		e.pool.Release(h.ID)
	}
}

// UploadTexture replaces the pixels behind a node's texture output with
// host-provided data, resizing the allocation to match. Image sources use
// this to publish decoded files.
func (e *Engine) UploadTexture(id node.ID, slot int, width, height uint32, data []byte) error {
	n, ok := e.graph.Get(id)
	if !ok {
		return &node.NotFoundError{ID: id}
	}
	h, err := value.Outputs(n.OutputValues()).Texture(slot)
	if err != nil {
		return err
	}
	if h.Allocated() {
		e.pool.Release(h.ID)
		h.ID = 0
	}
	h.Width, h.Height = width, height
	texID, err := e.pool.AllocWithData(gpu.Owner(id), *h, data)
	if err != nil {
		return err
	}
	h.ID = texID
	e.emitDirtied()
	return nil
}
