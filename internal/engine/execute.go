package engine

import (
	"github.com/vk/grafiek/internal/gpu"
	"github.com/vk/grafiek/internal/history"
	"github.com/vk/grafiek/internal/ops"
	"github.com/vk/grafiek/internal/value"
)

// SetTiming publishes the host's clock to operators for the next pass.
// Animated hosts call this once per frame before Execute.
func (e *Engine) SetTiming(t ops.TimeInfo) {
	e.ectx.SetTiming(t)
}

// Execute runs one full pass over the graph in dependency order. Each
// node's outputs are pushed into downstream incoming buffers as soon as the
// node finishes, so a single pass settles the whole graph. A failing node
// is reported and skipped; the pass keeps going.
func (e *Engine) Execute() {
	e.emitEvent(history.ExecutionStarted{})

	order := e.graph.TopoOrder()
	e.log.Debug("Execution pass starting.", "nodes", len(order))

	var failures []history.GraphError
	for _, id := range order {
		n, ok := e.graph.Get(id)
		if !ok {
			continue
		}
		e.ectx.SetOwner(gpu.Owner(id))
		if err := n.Execute(e.ectx); err != nil {
			e.log.Error("Node execution failed.", "node", id, "op", n.Path(), "error", err)
			failures = append(failures, history.GraphError{Node: id, Message: err.Error()})
		}
		e.emitEvent(history.NodeExecuted{Node: id})

		for _, arc := range e.graph.Outgoing(id) {
			v, err := n.Output(arc.Payload.SourceSlot)
			if err != nil {
				continue
			}
			if dst, ok := e.graph.Get(arc.To); ok {
				_ = dst.PushIncoming(arc.Payload.SinkSlot, v)
			}
		}
	}
	e.ectx.SetOwner(gpu.OwnerEngine)

	e.graphDirty = false
	switch {
	case len(failures) > 0:
		e.hadErrors = true
		e.emitEvent(history.ErrorsChanged{Errors: failures})
	case e.hadErrors:
		e.hadErrors = false
		e.emitEvent(history.ErrorsCleared{})
	}
	e.emitEvent(history.ExecutionCompleted{})
	e.log.Debug("Execution pass finished.", "nodes", len(order), "failed", len(failures))
}

// Result returns the value delivered to the i-th graph output node, in
// creation order. The second return is false when no such output exists or
// nothing reached it yet.
func (e *Engine) Result(i int) (value.Value, bool) {
	outs := e.OutputNodes()
	if i < 0 || i >= len(outs) {
		return value.Value{}, false
	}
	n, ok := e.graph.Get(outs[i])
	if !ok {
		return value.Value{}, false
	}
	v, err := n.EffectiveInput(0)
	if err != nil {
		return value.Value{}, false
	}
	return v, true
}

// Results collects the values at every graph output node, in creation
// order.
func (e *Engine) Results() []value.Value {
	outs := e.OutputNodes()
	vals := make([]value.Value, 0, len(outs))
	for _, id := range outs {
		n, ok := e.graph.Get(id)
		if !ok {
			continue
		}
		v, err := n.EffectiveInput(0)
		if err != nil {
			continue
		}
		vals = append(vals, v)
	}
	return vals
}

// GetTexture resolves a texture handle against the engine's pool, for
// hosts that present previews.
func (e *Engine) GetTexture(h value.TextureHandle) (gpu.Texture, bool) {
	return e.ectx.Texture(h)
}
