package node

import (
	"slices"

	"github.com/vk/grafiek/internal/ops"
	"github.com/vk/grafiek/internal/value"
)

// ID is the engine-issued identity of a node. Ids are handed out
// monotonically and never reused, so a stale reference to a deleted node
// stays detectable.
type ID uint64

// Record is the serializable part of a node: everything a document or a
// mutation needs to rebuild it. Output values are not part of the record;
// they are recomputed.
type Record struct {
	ID ID
	// Path names the operator implementation the node was built from.
	Path ops.OpPath
	// Label is the user-given display name. Empty means unlabeled.
	Label string
	// Position is the node's placement on the client's canvas.
	Position [2]float32
	// InputValues are the stored per-slot input values, used whenever a
	// slot has no upstream driver.
	InputValues []value.Value
	// ConfigValues are the stored per-slot config values the operation
	// derives its signature from.
	ConfigValues []value.Value
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	r.InputValues = slices.Clone(r.InputValues)
	r.ConfigValues = slices.Clone(r.ConfigValues)
	return r
}
