// Package history defines the messages the engine emits, one per applied
// mutation or informational event, and the bounded undo log built from
// them. The message stream is the engine's single external surface: a
// client that folds every mutation into its own state stays in sync without
// ever polling the graph.
package history

import (
	"github.com/vk/grafiek/internal/node"
	"github.com/vk/grafiek/internal/value"
)

// Mutation is one applied, invertible graph edit.
type Mutation interface {
	// Inverse returns the mutation that undoes this one.
	Inverse() Mutation
	// DirtiesGraph reports whether the mutation changes what the graph
	// computes; cosmetic edits like moves and labels do not.
	DirtiesGraph() bool

	isMutation()
}

// Event is informational and never enters the undo log.
type Event interface {
	isEvent()
}

// Message wraps either a Mutation or an Event for the engine's message
// handler. Exactly one of the two fields is set.
type Message struct {
	Mutation Mutation
	Event    Event
}

// GraphError ties a diagnostic to the node that produced it. A zero Node
// means the error is not tied to any node.
type GraphError struct {
	Node    node.ID
	Message string
}

// CreateNode records a node coming into existence with its full record.
type CreateNode struct {
	Record node.Record
}

// DeleteNode records a node's removal, keeping the record needed to
// restore it.
type DeleteNode struct {
	Record node.Record
}

// Connect records an edge from an output slot to an input slot.
type Connect struct {
	FromNode node.ID
	FromSlot int
	ToNode   node.ID
	ToSlot   int
}

// Disconnect records an edge's removal.
type Disconnect struct {
	FromNode node.ID
	FromSlot int
	ToNode   node.ID
	ToSlot   int
}

// SetInput records a stored input value changing.
type SetInput struct {
	Node     node.ID
	Slot     int
	OldValue value.Value
	NewValue value.Value
}

// SetConfig records a stored config value changing.
type SetConfig struct {
	Node     node.ID
	Slot     int
	OldValue value.Value
	NewValue value.Value
}

// MoveNode records a node's canvas position changing.
type MoveNode struct {
	Node        node.ID
	OldPosition [2]float32
	NewPosition [2]float32
}

// SetLabel records a node's display name changing. Empty means unlabeled.
type SetLabel struct {
	Node     node.ID
	OldLabel string
	NewLabel string
}

func (CreateNode) isMutation() {}
func (DeleteNode) isMutation() {}
func (Connect) isMutation()    {}
func (Disconnect) isMutation() {}
func (SetInput) isMutation()   {}
func (SetConfig) isMutation()  {}
func (MoveNode) isMutation()   {}
func (SetLabel) isMutation()   {}

func (m CreateNode) Inverse() Mutation { return DeleteNode{Record: m.Record} }
func (m DeleteNode) Inverse() Mutation { return CreateNode{Record: m.Record} }

func (m Connect) Inverse() Mutation {
	return Disconnect{FromNode: m.FromNode, FromSlot: m.FromSlot, ToNode: m.ToNode, ToSlot: m.ToSlot}
}

func (m Disconnect) Inverse() Mutation {
	return Connect{FromNode: m.FromNode, FromSlot: m.FromSlot, ToNode: m.ToNode, ToSlot: m.ToSlot}
}

func (m SetInput) Inverse() Mutation {
	return SetInput{Node: m.Node, Slot: m.Slot, OldValue: m.NewValue, NewValue: m.OldValue}
}

func (m SetConfig) Inverse() Mutation {
	return SetConfig{Node: m.Node, Slot: m.Slot, OldValue: m.NewValue, NewValue: m.OldValue}
}

func (m MoveNode) Inverse() Mutation {
	return MoveNode{Node: m.Node, OldPosition: m.NewPosition, NewPosition: m.OldPosition}
}

func (m SetLabel) Inverse() Mutation {
	return SetLabel{Node: m.Node, OldLabel: m.NewLabel, NewLabel: m.OldLabel}
}

func (CreateNode) DirtiesGraph() bool { return false }
func (DeleteNode) DirtiesGraph() bool { return true }
func (Connect) DirtiesGraph() bool    { return true }
func (Disconnect) DirtiesGraph() bool { return true }
func (SetInput) DirtiesGraph() bool   { return true }
func (SetConfig) DirtiesGraph() bool  { return true }
func (MoveNode) DirtiesGraph() bool   { return false }
func (SetLabel) DirtiesGraph() bool   { return false }

// ExecutionStarted marks the beginning of an execution pass.
type ExecutionStarted struct{}

// ExecutionCompleted marks the end of an execution pass.
type ExecutionCompleted struct{}

// NodeExecuted reports that one node's execute ran, successfully or not.
type NodeExecuted struct {
	Node node.ID
}

// GraphDirtied reports that something changed what the graph computes; it
// trails every dirtying mutation.
type GraphDirtied struct{}

// ErrorsChanged replaces the client's diagnostic list.
type ErrorsChanged struct {
	Errors []GraphError
}

// ErrorsCleared empties the client's diagnostic list.
type ErrorsCleared struct{}

func (ExecutionStarted) isEvent()   {}
func (ExecutionCompleted) isEvent() {}
func (NodeExecuted) isEvent()       {}
func (GraphDirtied) isEvent()       {}
func (ErrorsChanged) isEvent()      {}
func (ErrorsCleared) isEvent()      {}
