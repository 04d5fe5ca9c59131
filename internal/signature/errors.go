package signature

import "fmt"

// DuplicateSlotNameError reports a signature declaring two slots with the
// same name on one list.
type DuplicateSlotNameError struct {
	Slot string
	List List
}

func (e *DuplicateSlotNameError) Error() string {
	return fmt.Sprintf("node was configured with two slots named %q on its %s", e.Slot, e.List)
}

// UnknownSlotError reports a by-name lookup for a slot that was never
// declared.
type UnknownSlotError struct {
	Slot string
	List List
}

func (e *UnknownSlotError) Error() string {
	return fmt.Sprintf("no %s slot named %q", e.List, e.Slot)
}
