package signature

import (
	"github.com/vk/grafiek/internal/value"
)

// List names a slot list for error reporting.
type List string

const (
	ListInputs  List = "inputs"
	ListOutputs List = "outputs"
	ListConfig  List = "config"
)

// Registry holds a node's declared slots in three ordered lists. Slot
// indices are positions in these lists and double as port numbers on the
// wire, so order is part of the contract.
type Registry struct {
	inputs  []SlotDef
	outputs []SlotDef
	config  []SlotDef
}

// Input returns the declared input slot at idx, or nil when out of range.
func (r *Registry) Input(idx int) *SlotDef {
	if idx < 0 || idx >= len(r.inputs) {
		return nil
	}
	return &r.inputs[idx]
}

// Output returns the declared output slot at idx, or nil when out of range.
func (r *Registry) Output(idx int) *SlotDef {
	if idx < 0 || idx >= len(r.outputs) {
		return nil
	}
	return &r.outputs[idx]
}

// Config returns the declared config slot at idx, or nil when out of range.
func (r *Registry) Config(idx int) *SlotDef {
	if idx < 0 || idx >= len(r.config) {
		return nil
	}
	return &r.config[idx]
}

// Inputs returns the input slot list. Callers must treat it as read-only.
func (r *Registry) Inputs() []SlotDef { return r.inputs }

// Outputs returns the output slot list. Callers must treat it as read-only.
func (r *Registry) Outputs() []SlotDef { return r.outputs }

// ConfigSlots returns the config slot list. Callers must treat it as
// read-only.
func (r *Registry) ConfigSlots() []SlotDef { return r.config }

// InputCount returns the number of declared input slots.
func (r *Registry) InputCount() int { return len(r.inputs) }

// OutputCount returns the number of declared output slots.
func (r *Registry) OutputCount() int { return len(r.outputs) }

// ConfigCount returns the number of declared config slots.
func (r *Registry) ConfigCount() int { return len(r.config) }

// ClearInputs drops every declared input slot. Operations that re-derive
// their inputs during Configure call this first.
func (r *Registry) ClearInputs() { r.inputs = r.inputs[:0] }

// ClearOutputs drops every declared output slot.
func (r *Registry) ClearOutputs() { r.outputs = r.outputs[:0] }

// ClearConfig drops every declared config slot.
func (r *Registry) ClearConfig() { r.config = r.config[:0] }

// Clear drops every declared slot from all three lists.
func (r *Registry) Clear() {
	r.ClearInputs()
	r.ClearOutputs()
	r.ClearConfig()
}

// ValidateUniqueNames checks that no list declares two slots with the same
// name. It runs after every setup and configure.
func (r *Registry) ValidateUniqueNames() error {
	for _, l := range []struct {
		list List
		defs []SlotDef
	}{
		{ListInputs, r.inputs},
		{ListOutputs, r.outputs},
		{ListConfig, r.config},
	} {
		seen := make(map[string]struct{}, len(l.defs))
		for _, d := range l.defs {
			if _, dup := seen[d.Name]; dup {
				return &DuplicateSlotNameError{Slot: d.Name, List: l.list}
			}
			seen[d.Name] = struct{}{}
		}
	}
	return nil
}

func findSlot(defs []SlotDef, name string) int {
	for i := range defs {
		if defs[i].Name == name {
			return i
		}
	}
	return -1
}

func byName[T SlotType](defs []SlotDef, list List, name string) (*SlotDef, int, error) {
	idx := findSlot(defs, name)
	if idx < 0 {
		return nil, -1, &UnknownSlotError{Slot: name, List: list}
	}
	d := &defs[idx]
	if want := TypeOf[T](); d.Type != want {
		return nil, -1, &value.TypeMismatchError{Wanted: want, Found: d.Type}
	}
	return d, idx, nil
}

// InputByName finds a declared input slot by name, checking that it was
// declared over T. Operations use it to adjust their own slots without
// tracking raw indices.
func InputByName[T SlotType](r *Registry, name string) (*SlotDef, int, error) {
	return byName[T](r.inputs, ListInputs, name)
}

// OutputByName finds a declared output slot by name, checking that it was
// declared over T.
func OutputByName[T SlotType](r *Registry, name string) (*SlotDef, int, error) {
	return byName[T](r.outputs, ListOutputs, name)
}

// ConfigByName finds a declared config slot by name, checking that it was
// declared over T.
func ConfigByName[T SlotType](r *Registry, name string) (*SlotDef, int, error) {
	return byName[T](r.config, ListConfig, name)
}
