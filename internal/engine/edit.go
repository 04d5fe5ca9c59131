package engine

import (
	"github.com/vk/grafiek/internal/gpu"
	"github.com/vk/grafiek/internal/history"
	"github.com/vk/grafiek/internal/node"
	"github.com/vk/grafiek/internal/signature"
	"github.com/vk/grafiek/internal/value"
	"github.com/vk/grafiek/modules/system"
)

// EditFn mutates one stored slot value. The slot definition is provided so
// callers can honor range and enum metadata.
type EditFn = func(def *signature.SlotDef, v value.Mut)

// EditNodeInput applies fn to one stored input value. A change is recorded
// and dirties the graph; an edit that leaves the value untouched emits
// nothing.
func (e *Engine) EditNodeInput(id node.ID, slot int, fn EditFn) error {
	n, ok := e.graph.Get(id)
	if !ok {
		return &node.NotFoundError{ID: id}
	}
	ch, err := n.EditInput(slot, fn)
	if err != nil {
		return err
	}
	if ch.Changed {
		e.emit(history.SetInput{Node: id, Slot: slot, OldValue: ch.Old, NewValue: ch.New})
	}
	return nil
}

// EditAllNodeInputs applies fn to every stored input value in slot order,
// recording each slot that actually changed.
func (e *Engine) EditAllNodeInputs(id node.ID, fn EditFn) error {
	n, ok := e.graph.Get(id)
	if !ok {
		return &node.NotFoundError{ID: id}
	}
	for slot := 0; slot < n.InputCount(); slot++ {
		ch, err := n.EditInput(slot, fn)
		if err != nil {
			return err
		}
		if ch.Changed {
			e.emit(history.SetInput{Node: id, Slot: slot, OldValue: ch.Old, NewValue: ch.New})
		}
	}
	return nil
}

// EditNodeConfig applies fn to one stored config value. A change is
// recorded and the node is reconfigured, since config drives the node's
// signature.
func (e *Engine) EditNodeConfig(id node.ID, slot int, fn EditFn) error {
	n, ok := e.graph.Get(id)
	if !ok {
		return &node.NotFoundError{ID: id}
	}
	ch, err := n.EditConfig(slot, fn)
	if err != nil {
		return err
	}
	if !ch.Changed {
		return nil
	}
	e.emit(history.SetConfig{Node: id, Slot: slot, OldValue: ch.Old, NewValue: ch.New})
	return e.reconfigureNode(n)
}

// EditAllNodeConfigs applies fn to every stored config value, then
// reconfigures once if anything changed.
func (e *Engine) EditAllNodeConfigs(id node.ID, fn EditFn) error {
	n, ok := e.graph.Get(id)
	if !ok {
		return &node.NotFoundError{ID: id}
	}
	changed := false
	for slot := 0; slot < n.ConfigCount(); slot++ {
		ch, err := n.EditConfig(slot, fn)
		if err != nil {
			return err
		}
		if ch.Changed {
			changed = true
			e.emit(history.SetConfig{Node: id, Slot: slot, OldValue: ch.Old, NewValue: ch.New})
		}
	}
	if !changed {
		return nil
	}
	return e.reconfigureNode(n)
}

// EditGraphInput writes the authored value of a graph input node, which
// lives in its output slot so it survives reconfiguration. The edit is
// rejected while the node's value slot is driven by a connection.
func (e *Engine) EditGraphInput(id node.ID, fn EditFn) error {
	n, ok := e.graph.Get(id)
	if !ok {
		return &node.NotFoundError{ID: id}
	}
	if n.Path() != system.InputPath {
		return ErrNotInputNode
	}
	if _, driven := e.findDriver(id, 0); driven {
		return ErrInputHasConnection
	}
	ch, err := n.EditOutput(0, fn)
	if err != nil {
		return err
	}
	if ch.Changed {
		e.emitDirtied()
	}
	return nil
}

// SetNodePosition moves a node on the editor canvas. Consecutive moves of
// the same node coalesce into a single history entry.
func (e *Engine) SetNodePosition(id node.ID, pos [2]float32) error {
	n, ok := e.graph.Get(id)
	if !ok {
		return &node.NotFoundError{ID: id}
	}
	rec := n.Record()
	if rec.Position == pos {
		return nil
	}
	old := rec.Position
	rec.Position = pos
	e.emit(history.MoveNode{Node: id, OldPosition: old, NewPosition: pos})
	return nil
}

// SetLabel renames a node. The empty string clears the label.
func (e *Engine) SetLabel(id node.ID, label string) error {
	n, ok := e.graph.Get(id)
	if !ok {
		return &node.NotFoundError{ID: id}
	}
	rec := n.Record()
	if rec.Label == label {
		return nil
	}
	old := rec.Label
	rec.Label = label
	e.emit(history.SetLabel{Node: id, OldLabel: old, NewLabel: label})
	return nil
}

// ReconfigureNode re-runs the node's configure phase against its stored
// config values. Hosts call this after mutating an operator directly.
func (e *Engine) ReconfigureNode(id node.ID) error {
	n, ok := e.graph.Get(id)
	if !ok {
		return &node.NotFoundError{ID: id}
	}
	return e.reconfigureNode(n)
}

// reconfigureNode rebuilds the node's signature, drops connections the new
// signature invalidates, and reconciles output textures.
func (e *Engine) reconfigureNode(n *node.Node) error {
	e.ectx.SetOwner(gpu.Owner(n.ID()))
	defer e.ectx.SetOwner(gpu.OwnerEngine)

	old := snapshotOutputs(n)
	if err := n.Configure(e.ectx); err != nil {
		return err
	}
	e.disconnectInvalidEdges(n.ID())
	e.syncOutputTextures(n, old)
	return nil
}
