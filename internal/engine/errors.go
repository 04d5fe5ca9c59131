package engine

import (
	"errors"
	"fmt"
)

// ErrCreatesLoop rejects a connection that would close a cycle.
var ErrCreatesLoop = errors.New("connection would create a cycle in the graph")

// ErrNotInputNode rejects a graph-input edit aimed at a node of any other
// operator.
var ErrNotInputNode = errors.New("node is not a graph input")

// ErrInputHasConnection rejects editing a graph input whose value slot is
// currently driven by a connection.
var ErrInputHasConnection = errors.New("graph input is driven by a connection and cannot be edited")

// IncompatibleTypesError rejects a connection between slots whose value
// types do not cast.
type IncompatibleTypesError struct {
	FromSlot int
	ToSlot   int
}

func (e *IncompatibleTypesError) Error() string {
	return fmt.Sprintf("incompatible types: output slot %d cannot connect to input slot %d", e.FromSlot, e.ToSlot)
}

// EdgeNotFoundError reports a disconnect aimed at slots with no edge
// between them.
type EdgeNotFoundError struct {
	FromSlot int
	ToSlot   int
}

func (e *EdgeNotFoundError) Error() string {
	return fmt.Sprintf("no connection between output slot %d and input slot %d", e.FromSlot, e.ToSlot)
}
