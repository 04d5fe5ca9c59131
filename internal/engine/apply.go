package engine

import (
	"fmt"

	"github.com/vk/grafiek/internal/gpu"
	"github.com/vk/grafiek/internal/history"
	"github.com/vk/grafiek/internal/node"
	"github.com/vk/grafiek/internal/signature"
	"github.com/vk/grafiek/internal/value"
)

// Undo reverts the most recent recorded mutation. It reports false when the
// undo stack is empty.
func (e *Engine) Undo() (bool, error) {
	m, ok := e.hist.Undo()
	if !ok {
		return false, nil
	}
	return true, e.apply(m)
}

// Redo re-applies the most recently undone mutation. It reports false when
// the redo stack is empty.
func (e *Engine) Redo() (bool, error) {
	m, ok := e.hist.Redo()
	if !ok {
		return false, nil
	}
	return true, e.apply(m)
}

// apply routes a history mutation back through the public edit paths with
// recording suppressed, so replay produces the same messages and side
// effects as the original action without growing the history again.
func (e *Engine) apply(m history.Mutation) error {
	e.replaying = true
	defer func() { e.replaying = false }()

	switch m := m.(type) {
	case history.CreateNode:
		return e.restoreNode(m.Record)
	case history.DeleteNode:
		return e.DeleteNode(m.Record.ID)
	case history.Connect:
		return e.Connect(m.FromNode, m.ToNode, m.FromSlot, m.ToSlot)
	case history.Disconnect:
		return e.Disconnect(m.FromNode, m.ToNode, m.FromSlot, m.ToSlot)
	case history.SetInput:
		return e.EditNodeInput(m.Node, m.Slot, func(_ *signature.SlotDef, v value.Mut) {
			v.Set(m.NewValue)
		})
	case history.SetConfig:
		return e.EditNodeConfig(m.Node, m.Slot, func(_ *signature.SlotDef, v value.Mut) {
			v.Set(m.NewValue)
		})
	case history.MoveNode:
		return e.SetNodePosition(m.Node, m.NewPosition)
	case history.SetLabel:
		return e.SetLabel(m.Node, m.NewLabel)
	}
	return fmt.Errorf("unknown mutation %T", m)
}

// restoreNode rebuilds a deleted node under its original id so that edges
// recorded against that id can reconnect on later replay steps.
func (e *Engine) restoreNode(rec node.Record) error {
	op, err := e.registry.New(rec.Path)
	if err != nil {
		return err
	}
	n := node.New(op, rec.ID)

	e.ectx.SetOwner(gpu.Owner(rec.ID))
	defer e.ectx.SetOwner(gpu.OwnerEngine)

	if err := n.Setup(e.ectx); err != nil {
		e.pool.ReleaseOwned(gpu.Owner(rec.ID))
		return fmt.Errorf("setting up node %d (%s): %w", rec.ID, rec.Path, err)
	}
	n.AdoptRecord(rec)
	if err := n.Configure(e.ectx); err != nil {
		e.pool.ReleaseOwned(gpu.Owner(rec.ID))
		return fmt.Errorf("configuring node %d (%s): %w", rec.ID, rec.Path, err)
	}
	if err := e.graph.Insert(rec.ID, n); err != nil {
		e.pool.ReleaseOwned(gpu.Owner(rec.ID))
		return err
	}
	if rec.ID > e.lastID {
		e.lastID = rec.ID
	}

	e.syncOutputTextures(n, nil)
	e.emit(history.CreateNode{Record: n.Record().Clone()})
	return nil
}
