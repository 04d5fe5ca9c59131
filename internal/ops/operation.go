// Package ops defines the contract node behaviors implement and the
// registry the engine instantiates them from. One Operation value exists
// per node; the engine drives it through setup, configure, execute, and
// teardown and hands it an ExecContext for backend access.
package ops

import (
	"github.com/vk/grafiek/internal/signature"
	"github.com/vk/grafiek/internal/value"
)

// OpPath identifies an operator implementation: a library namespace and an
// operator name, written library/operator.
type OpPath struct {
	Library  string
	Operator string
}

func (p OpPath) String() string {
	return p.Library + "/" + p.Operator
}

// Operation is the behavior behind one node. Implementations embed Base and
// override what they need; only Path has no default.
type Operation interface {
	// Path returns the operator's registry identity.
	Path() OpPath
	// Stateful reports whether repeated execution has side effects, so
	// schedulers cannot skip the node even when its inputs are unchanged.
	Stateful() bool
	// Setup declares the initial signature and acquires long-lived
	// resources. It runs once, right after the node is created.
	Setup(ectx *ExecContext, sig *signature.Registry) error
	// Configure re-derives the signature from the node's current config
	// values. It runs after every config edit.
	Configure(ectx *ExecContext, config value.Inputs, sig *signature.Registry) error
	// Execute computes the node's outputs from its resolved inputs.
	Execute(ectx *ExecContext, in value.Inputs, out value.Outputs) error
	// Teardown releases resources acquired in Setup or Configure. It runs
	// once, right before the node is destroyed.
	Teardown(ectx *ExecContext)
	// EdgeConnected reacts to a new upstream driver on an input slot.
	// connected is the driving output's declared type.
	EdgeConnected(slot int, connected value.Type, sig *signature.Registry) error
	// EdgeDisconnected reacts to the removal of an upstream driver.
	EdgeDisconnected(slot int, connected value.Type, sig *signature.Registry) error
}

// Base supplies no-op defaults for every Operation method except Path.
type Base struct{}

func (Base) Stateful() bool { return false }

func (Base) Setup(*ExecContext, *signature.Registry) error { return nil }

func (Base) Configure(*ExecContext, value.Inputs, *signature.Registry) error { return nil }

func (Base) Execute(*ExecContext, value.Inputs, value.Outputs) error { return nil }

func (Base) Teardown(*ExecContext) {}

func (Base) EdgeConnected(int, value.Type, *signature.Registry) error { return nil }

func (Base) EdgeDisconnected(int, value.Type, *signature.Registry) error { return nil }

// Factory creates instances of one operator kind and carries the static
// identity clients build their node menus from.
type Factory struct {
	Library  string
	Operator string
	// Label is the human name shown in menus.
	Label string
	// New builds a fresh operation instance.
	New func() (Operation, error)
}

// Path returns the factory's registry identity.
func (f *Factory) Path() OpPath {
	return OpPath{Library: f.Library, Operator: f.Operator}
}

// Module registers a family of operators on a registry.
type Module interface {
	Register(r *Registry) error
}
