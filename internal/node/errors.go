package node

import "fmt"

// NotFoundError reports a node id that is not in the graph.
type NotFoundError struct {
	ID ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("node %d not found", e.ID)
}

// NoInputSlotError reports an access to an input slot index the signature
// does not declare.
type NoInputSlotError struct {
	Slot int
}

func (e *NoInputSlotError) Error() string {
	return fmt.Sprintf("no input slot at index %d", e.Slot)
}

// NoOutputSlotError reports an access to an output slot index the signature
// does not declare.
type NoOutputSlotError struct {
	Slot int
}

func (e *NoOutputSlotError) Error() string {
	return fmt.Sprintf("no output slot at index %d", e.Slot)
}

// NoConfigSlotError reports an access to a config slot index the signature
// does not declare.
type NoConfigSlotError struct {
	Slot int
}

func (e *NoConfigSlotError) Error() string {
	return fmt.Sprintf("no config slot at index %d", e.Slot)
}
