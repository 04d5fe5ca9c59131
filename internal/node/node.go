// Package node wraps one operation instance with its record, signature, and
// runtime buffers, and funnels every value edit through a single chokepoint
// that detects real changes.
package node

import (
	"github.com/vk/grafiek/internal/ops"
	"github.com/vk/grafiek/internal/signature"
	"github.com/vk/grafiek/internal/value"
)

// Node is one live vertex of the compute graph.
type Node struct {
	record Record
	sig    signature.Registry
	op     ops.Operation

	// outputs holds the last computed output values.
	outputs []value.Value
	// incoming buffers the values upstream execution pushed at each input
	// slot this pass. Null means no driver delivered anything.
	incoming []value.Value

	dirty ops.DirtyFlag
}

// New wraps an operation in a node under the given id. The node is unusable
// until Setup ran.
func New(op ops.Operation, id ID) *Node {
	return &Node{
		record: Record{ID: id, Path: op.Path()},
		op:     op,
		dirty:  ops.NewDirtyFlag(),
	}
}

// ID returns the node's stable identity.
func (n *Node) ID() ID { return n.record.ID }

// Path returns the operator identity the node was built from.
func (n *Node) Path() ops.OpPath { return n.record.Path }

// Record returns the node's serializable state. The engine owns mutations
// to it.
func (n *Node) Record() *Record { return &n.record }

// Signature returns the node's declared slots.
func (n *Node) Signature() *signature.Registry { return &n.sig }

// Op returns the operation instance behind the node.
func (n *Node) Op() ops.Operation { return n.op }

// Stateful reports whether the node's operation has execution side effects.
func (n *Node) Stateful() bool { return n.op.Stateful() }

// Dirty reports whether the node needs re-execution.
func (n *Node) Dirty() bool { return n.dirty.Dirty() }

// MarkDirty flags the node for re-execution.
func (n *Node) MarkDirty() { n.dirty.Mark() }

// InputCount returns the number of declared input slots.
func (n *Node) InputCount() int { return n.sig.InputCount() }

// OutputCount returns the number of declared output slots.
func (n *Node) OutputCount() int { return n.sig.OutputCount() }

// ConfigCount returns the number of declared config slots.
func (n *Node) ConfigCount() int { return n.sig.ConfigCount() }

// Setup runs the operation's setup, validates the declared signature, and
// derives the node's stored values and buffers from it.
func (n *Node) Setup(ectx *ops.ExecContext) error {
	if err := n.op.Setup(ectx, &n.sig); err != nil {
		return err
	}
	if err := n.sig.ValidateUniqueNames(); err != nil {
		return err
	}
	if binder, ok := n.op.(ops.DirtyBinder); ok {
		binder.BindDirty(n.dirty)
	}
	n.reconcile()
	n.dirty.Mark()
	return nil
}

// Configure re-derives the signature from the node's current config values
// and reconciles stored values against the result. Input values keep their
// stored value when the slot at the same index kept its type; everything
// else falls back to the slot default. Output values are always recomputed.
func (n *Node) Configure(ectx *ops.ExecContext) error {
	n.record.ConfigValues = reconcileValues(n.sig.ConfigSlots(), n.record.ConfigValues)
	if err := n.op.Configure(ectx, value.Inputs(n.record.ConfigValues), &n.sig); err != nil {
		return err
	}
	if err := n.sig.ValidateUniqueNames(); err != nil {
		return err
	}
	n.reconcile()
	n.dirty.Mark()
	return nil
}

func (n *Node) reconcile() {
	n.record.InputValues = reconcileValues(n.sig.Inputs(), n.record.InputValues)
	n.record.ConfigValues = reconcileValues(n.sig.ConfigSlots(), n.record.ConfigValues)
	n.outputs = defaultValues(n.sig.Outputs())
	n.incoming = make([]value.Value, n.sig.InputCount())
}

func reconcileValues(defs []signature.SlotDef, old []value.Value) []value.Value {
	out := make([]value.Value, len(defs))
	for i := range defs {
		def := &defs[i]
		if i < len(old) && (def.Type == value.Any || old[i].Type() == def.Type) {
			out[i] = old[i]
			continue
		}
		out[i] = def.DefaultValue()
	}
	return out
}

func defaultValues(defs []signature.SlotDef) []value.Value {
	out := make([]value.Value, len(defs))
	for i := range defs {
		out[i] = defs[i].DefaultValue()
	}
	return out
}

// AdoptRecord overwrites the node's label, position, and stored values from
// a saved record, typically right before a Configure that reconciles them.
func (n *Node) AdoptRecord(rec Record) {
	rec = rec.Clone()
	n.record.Label = rec.Label
	n.record.Position = rec.Position
	n.record.InputValues = rec.InputValues
	n.record.ConfigValues = rec.ConfigValues
}

// Teardown hands the operation its chance to release resources.
func (n *Node) Teardown(ectx *ops.ExecContext) {
	n.op.Teardown(ectx)
}

// Change reports what an edit did to a stored value.
type Change struct {
	Changed bool
	Old     value.Value
	New     value.Value
}

func editValue(def *signature.SlotDef, stored *value.Value, fn func(*signature.SlotDef, value.Mut)) Change {
	before := *stored
	touched := false
	fn(def, value.NewMut(stored, &touched))
	changed := touched || before != *stored
	return Change{Changed: changed, Old: before, New: *stored}
}

// EditInput runs fn against the stored input value at slot. The returned
// change reports whether the value actually differs afterwards; only then
// is the node marked dirty.
func (n *Node) EditInput(slot int, fn func(*signature.SlotDef, value.Mut)) (Change, error) {
	def := n.sig.Input(slot)
	if def == nil {
		return Change{}, &NoInputSlotError{Slot: slot}
	}
	ch := editValue(def, &n.record.InputValues[slot], fn)
	if ch.Changed {
		n.dirty.Mark()
	}
	return ch, nil
}

// EditConfig runs fn against the stored config value at slot.
func (n *Node) EditConfig(slot int, fn func(*signature.SlotDef, value.Mut)) (Change, error) {
	def := n.sig.Config(slot)
	if def == nil {
		return Change{}, &NoConfigSlotError{Slot: slot}
	}
	ch := editValue(def, &n.record.ConfigValues[slot], fn)
	if ch.Changed {
		n.dirty.Mark()
	}
	return ch, nil
}

// EditOutput runs fn against the computed output value at slot. Graph input
// nodes are authored this way.
func (n *Node) EditOutput(slot int, fn func(*signature.SlotDef, value.Mut)) (Change, error) {
	def := n.sig.Output(slot)
	if def == nil {
		return Change{}, &NoOutputSlotError{Slot: slot}
	}
	ch := editValue(def, &n.outputs[slot], fn)
	if ch.Changed {
		n.dirty.Mark()
	}
	return ch, nil
}

// Probe is the result of a pure connection compatibility check.
type Probe int

const (
	ProbeOK Probe = iota
	ProbeNoSourceSlot
	ProbeNoSinkSlot
	ProbeIncompatible
)

// ProbeConnect checks whether src's output slot could drive dst's input
// slot, without touching either node.
func ProbeConnect(src *Node, fromSlot int, dst *Node, toSlot int) Probe {
	out := src.sig.Output(fromSlot)
	if out == nil {
		return ProbeNoSourceSlot
	}
	in := dst.sig.Input(toSlot)
	if in == nil {
		return ProbeNoSinkSlot
	}
	if !out.Type.CanCastTo(in.Type) {
		return ProbeIncompatible
	}
	return ProbeOK
}

// EdgeConnected tells the operation a driver of the given type now feeds
// the input slot.
func (n *Node) EdgeConnected(slot int, connected value.Type) error {
	return n.op.EdgeConnected(slot, connected, &n.sig)
}

// EdgeDisconnected tells the operation the driver on the input slot went
// away.
func (n *Node) EdgeDisconnected(slot int, connected value.Type) error {
	return n.op.EdgeDisconnected(slot, connected, &n.sig)
}

// PushIncoming buffers a value delivered by an upstream driver for the
// current execution pass.
func (n *Node) PushIncoming(slot int, v value.Value) error {
	if slot < 0 || slot >= len(n.incoming) {
		return &NoInputSlotError{Slot: slot}
	}
	n.incoming[slot] = v
	return nil
}

// ClearIncoming drops the buffered value at the input slot, so the stored
// value takes over again.
func (n *Node) ClearIncoming(slot int) {
	if slot >= 0 && slot < len(n.incoming) {
		n.incoming[slot] = value.Null()
	}
}

// EffectiveInput resolves what Execute will see at the input slot: the
// buffered incoming value cast to the slot's declared type when present and
// castable, the stored value otherwise.
func (n *Node) EffectiveInput(slot int) (value.Value, error) {
	def := n.sig.Input(slot)
	if def == nil {
		return value.Value{}, &NoInputSlotError{Slot: slot}
	}
	if inc := n.incoming[slot]; !inc.IsNull() {
		if cast, ok := inc.Cast(def.Type); ok {
			return cast, nil
		}
	}
	return n.record.InputValues[slot], nil
}

// Output returns the computed output value at slot.
func (n *Node) Output(slot int) (value.Value, error) {
	if slot < 0 || slot >= len(n.outputs) {
		return value.Value{}, &NoOutputSlotError{Slot: slot}
	}
	return n.outputs[slot], nil
}

// OutputValues exposes the computed output slice. The engine adjusts
// texture handles in it directly.
func (n *Node) OutputValues() []value.Value { return n.outputs }

// Execute resolves the node's effective inputs, runs the operation, and
// clears the dirty flag on success. On failure the flag stays set.
func (n *Node) Execute(ectx *ops.ExecContext) error {
	in := make(value.Inputs, n.sig.InputCount())
	for i := range in {
		v, err := n.EffectiveInput(i)
		if err != nil {
			return err
		}
		in[i] = v
	}
	if err := n.op.Execute(ectx, in, value.Outputs(n.outputs)); err != nil {
		return err
	}
	n.dirty.Clear()
	return nil
}

// Op downcasts a node's operation to a concrete type, for clients that
// need an operator-specific side channel.
func Op[T ops.Operation](n *Node) (T, bool) {
	t, ok := n.op.(T)
	return t, ok
}
