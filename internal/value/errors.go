package value

import "fmt"

// TypeMismatchError reports a typed read against a value holding a
// different kind. A Null value reports Any as the found type.
type TypeMismatchError struct {
	Wanted Type
	Found  Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: wanted %s, found %s", e.Wanted, e.Found)
}

// SlotIndexError reports access to a slot index that does not exist.
type SlotIndexError struct {
	Index int
}

func (e *SlotIndexError) Error() string {
	return fmt.Sprintf("slot index %d does not exist", e.Index)
}
