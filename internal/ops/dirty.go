package ops

import "sync/atomic"

// DirtyFlag marks a node as needing re-execution. It is the one primitive
// safe to touch from outside the engine's thread, so background producers
// like file watchers can signal without locking graph state.
type DirtyFlag struct {
	v *atomic.Bool
}

// NewDirtyFlag returns a cleared flag.
func NewDirtyFlag() DirtyFlag {
	return DirtyFlag{v: new(atomic.Bool)}
}

// Mark sets the flag.
func (f DirtyFlag) Mark() { f.v.Store(true) }

// Clear resets the flag.
func (f DirtyFlag) Clear() { f.v.Store(false) }

// Dirty reports whether the flag is set.
func (f DirtyFlag) Dirty() bool { return f.v.Load() }

// DirtyBinder is implemented by operations that keep a handle to their
// node's dirty flag, typically to signal from a goroutine watching an
// external resource.
type DirtyBinder interface {
	BindDirty(flag DirtyFlag)
}
