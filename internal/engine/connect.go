package engine

import (
	"slices"

	"github.com/vk/grafiek/internal/gpu"
	"github.com/vk/grafiek/internal/graph"
	"github.com/vk/grafiek/internal/history"
	"github.com/vk/grafiek/internal/node"
	"github.com/vk/grafiek/internal/value"
)

// Connect wires an output slot of one node into an input slot of another.
// An input slot holds at most one connection, so an existing driver is
// disconnected first and both steps are recorded. Connections that would
// close a cycle are rejected before anything changes.
func (e *Engine) Connect(from, to node.ID, fromSlot, toSlot int) error {
	src, ok := e.graph.Get(from)
	if !ok {
		return &node.NotFoundError{ID: from}
	}
	dst, ok := e.graph.Get(to)
	if !ok {
		return &node.NotFoundError{ID: to}
	}

	switch node.ProbeConnect(src, fromSlot, dst, toSlot) {
	case node.ProbeNoSourceSlot:
		return &node.NoOutputSlotError{Slot: fromSlot}
	case node.ProbeNoSinkSlot:
		return &node.NoInputSlotError{Slot: toSlot}
	case node.ProbeIncompatible:
		return &IncompatibleTypesError{FromSlot: fromSlot, ToSlot: toSlot}
	}
	if e.graph.HasPath(to, from) {
		return ErrCreatesLoop
	}

	if old, ok := e.findDriver(to, toSlot); ok {
		e.graph.RemoveEdge(old.From, old.To, old.Payload)
		dst.ClearIncoming(toSlot)
		e.emit(history.Disconnect{
			FromNode: old.From,
			FromSlot: old.Payload.SourceSlot,
			ToNode:   to,
			ToSlot:   toSlot,
		})
	}

	if err := e.graph.AddEdge(from, to, Edge{SourceSlot: fromSlot, SinkSlot: toSlot}); err != nil {
		return err
	}

	connected := value.Any
	if def := src.Signature().Output(fromSlot); def != nil {
		connected = def.Type
	}
	old := snapshotOutputs(dst)
	if err := dst.EdgeConnected(toSlot, connected); err != nil {
		e.log.Error("Edge connected hook failed.", "node", to, "op", dst.Path(), "error", err)
	}
	e.syncOutputTextures(dst, old)

	e.emit(history.Connect{
		FromNode: from,
		FromSlot: fromSlot,
		ToNode:   to,
		ToSlot:   toSlot,
	})
	return nil
}

// Disconnect removes the connection between the given slots.
func (e *Engine) Disconnect(from, to node.ID, fromSlot, toSlot int) error {
	src, ok := e.graph.Get(from)
	if !ok {
		return &node.NotFoundError{ID: from}
	}
	dst, ok := e.graph.Get(to)
	if !ok {
		return &node.NotFoundError{ID: to}
	}

	connected := value.Any
	if def := src.Signature().Output(fromSlot); def != nil {
		connected = def.Type
	}

	if !e.graph.RemoveEdge(from, to, Edge{SourceSlot: fromSlot, SinkSlot: toSlot}) {
		return &EdgeNotFoundError{FromSlot: fromSlot, ToSlot: toSlot}
	}
	dst.ClearIncoming(toSlot)

	old := snapshotOutputs(dst)
	if err := dst.EdgeDisconnected(toSlot, connected); err != nil {
		e.log.Error("Edge disconnected hook failed.", "node", to, "op", dst.Path(), "error", err)
	}
	e.syncOutputTextures(dst, old)

	e.emit(history.Disconnect{
		FromNode: from,
		FromSlot: fromSlot,
		ToNode:   to,
		ToSlot:   toSlot,
	})
	return nil
}

// DeleteNode disconnects every edge touching the node, tears the operator
// down, releases its textures and removes it. The disconnections are
// recorded individually so undo can rebuild the node with its wiring.
func (e *Engine) DeleteNode(id node.ID) error {
	n, ok := e.graph.Get(id)
	if !ok {
		return &node.NotFoundError{ID: id}
	}

	for _, arc := range e.graph.Incident(id) {
		if err := e.Disconnect(arc.From, arc.To, arc.Payload.SourceSlot, arc.Payload.SinkSlot); err != nil {
			return err
		}
	}

	e.ectx.SetOwner(gpu.Owner(id))
	n.Teardown(e.ectx)
	e.ectx.SetOwner(gpu.OwnerEngine)

	if released := e.pool.ReleaseOwned(gpu.Owner(id)); released > 0 {
		e.log.Debug("Released node textures.", "node", id, "count", released)
	}

	rec := n.Record().Clone()
	e.graph.Remove(id)
	e.emit(history.DeleteNode{Record: rec})
	return nil
}

// findDriver returns the edge currently feeding the given input slot.
func (e *Engine) findDriver(to node.ID, toSlot int) (graph.Arc[node.ID, Edge], bool) {
	for _, arc := range e.graph.Incoming(to) {
		if arc.Payload.SinkSlot == toSlot {
			return arc, true
		}
	}
	return graph.Arc[node.ID, Edge]{}, false
}

// disconnectInvalidEdges removes any edge touching the node whose slots no
// longer exist or no longer cast, which can happen after a reconfigure
// rebuilds the node's signature. The operator hooks are not invoked: from
// the operator's point of view these connections were never valid against
// the new signature.
func (e *Engine) disconnectInvalidEdges(id node.ID) {
	for _, arc := range e.graph.Incident(id) {
		src, ok := e.graph.Get(arc.From)
		if !ok {
			continue
		}
		dst, ok := e.graph.Get(arc.To)
		if !ok {
			continue
		}
		if node.ProbeConnect(src, arc.Payload.SourceSlot, dst, arc.Payload.SinkSlot) == node.ProbeOK {
			continue
		}
		e.graph.RemoveEdge(arc.From, arc.To, arc.Payload)
		dst.ClearIncoming(arc.Payload.SinkSlot)
		e.emit(history.Disconnect{
			FromNode: arc.From,
			FromSlot: arc.Payload.SourceSlot,
			ToNode:   arc.To,
			ToSlot:   arc.Payload.SinkSlot,
		})
	}
}

func snapshotOutputs(n *node.Node) []value.Value {
	return slices.Clone(n.OutputValues())
}
