package history

import (
	"slices"

	"github.com/vk/grafiek/internal/node"
)

// DefaultMaxSize bounds the undo log when no explicit size is given.
const DefaultMaxSize = 100

// History is a bounded undo/redo log. Successive edits of the same slot or
// the same node's position coalesce into one entry, so a drag gesture undoes
// in a single step.
type History struct {
	undo []Mutation
	redo []Mutation
	max  int
}

// New returns an empty history bounded to max entries. A non-positive max
// falls back to DefaultMaxSize.
func New(max int) *History {
	if max <= 0 {
		max = DefaultMaxSize
	}
	return &History{max: max}
}

type coalesceKind uint8

const (
	coalesceInput coalesceKind = iota + 1
	coalesceConfig
	coalescePosition
)

type coalesceKey struct {
	kind coalesceKind
	node node.ID
	slot int
}

func coalesceTarget(m Mutation) (coalesceKey, bool) {
	switch m := m.(type) {
	case SetInput:
		return coalesceKey{kind: coalesceInput, node: m.Node, slot: m.Slot}, true
	case SetConfig:
		return coalesceKey{kind: coalesceConfig, node: m.Node, slot: m.Slot}, true
	case MoveNode:
		return coalesceKey{kind: coalescePosition, node: m.Node}, true
	}
	return coalesceKey{}, false
}

// merge folds `next` into `last`, keeping last's before-state and next's
// after-state. Both must share a coalesce target.
func merge(last, next Mutation) Mutation {
	switch last := last.(type) {
	case SetInput:
		last.NewValue = next.(SetInput).NewValue
		return last
	case SetConfig:
		last.NewValue = next.(SetConfig).NewValue
		return last
	case MoveNode:
		last.NewPosition = next.(MoveNode).NewPosition
		return last
	}
	return next
}

// Push records an applied mutation. Any push invalidates the redo stack.
func (h *History) Push(m Mutation) {
	defer func() { h.redo = h.redo[:0] }()

	if key, ok := coalesceTarget(m); ok && len(h.undo) > 0 {
		last := h.undo[len(h.undo)-1]
		if lastKey, lastOK := coalesceTarget(last); lastOK && lastKey == key {
			h.undo[len(h.undo)-1] = merge(last, m)
			return
		}
	}

	h.undo = append(h.undo, m)
	if over := len(h.undo) - h.max; over > 0 {
		h.undo = slices.Delete(h.undo, 0, over)
	}
}

// Undo pops the newest entry and returns the mutation that reverses it. The
// entry moves to the redo stack as recorded.
func (h *History) Undo() (Mutation, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	m := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, m)
	return m.Inverse(), true
}

// Redo pops the newest undone entry and returns it for re-application.
func (h *History) Redo() (Mutation, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	m := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, m)
	return m, true
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the number of undoable entries.
func (h *History) Len() int { return len(h.undo) }

// Clear drops both stacks.
func (h *History) Clear() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}
