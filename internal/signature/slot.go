// Package signature describes the editable surface of a node: the ordered
// input, output, and config slots its operation declares, plus the metadata
// a client needs to render controls for them.
//
// Operations declare slots during Setup and may re-derive them during
// Configure. The signature is the single source of truth the node layer
// reconciles stored values against.
package signature

import (
	"github.com/vk/grafiek/internal/value"
)

// Common is the metadata every slot carries regardless of its value type.
type Common struct {
	// Tooltip is a short human description shown on hover.
	Tooltip string
	// Interactive reports whether the client should offer direct
	// manipulation (drags, scrubbing) for the slot.
	Interactive bool
	// Enabled reports whether the slot is currently editable.
	Enabled bool
	// Visible reports whether the slot should be rendered at all.
	Visible bool
	// OnNodeBody asks the client to render the control on the node body
	// itself instead of an inspector panel.
	OnNodeBody bool
}

func defaultCommon() Common {
	return Common{Interactive: true, Enabled: true, Visible: true}
}

// Extended is the per-type hint block a slot can carry, such as a numeric
// range or an enum option list. The concrete types below implement it.
type Extended interface {
	extendedMeta()
}

// AngleUnit selects how an angle slot is displayed and edited.
type AngleUnit uint8

const (
	Radians AngleUnit = iota
	Degrees
)

// StringKind tells the client what kind of editor a string slot wants.
type StringKind uint8

const (
	// StringPlain is ordinary single purpose text.
	StringPlain StringKind = iota
	// StringCode is source text in an embedded language.
	StringCode
	// StringPath names a file on disk.
	StringPath
)

// FloatRange bounds a float slot and gives clients a drag step.
type FloatRange struct {
	Min  float32
	Max  float32
	Step float32
}

// Angle marks a float slot as an angle with display bounds.
type Angle struct {
	Min  float32
	Max  float32
	Unit AngleUnit
}

// IntRange bounds an integer slot and gives clients a drag step.
type IntRange struct {
	Min  int32
	Max  int32
	Step int32
}

// EnumOption is one selectable entry of an IntEnum.
type EnumOption struct {
	Label string
	Value int32
}

// IntEnum restricts an integer slot to a labeled option list.
type IntEnum struct {
	Options []EnumOption
}

// StringMeta describes how a string slot should be edited.
type StringMeta struct {
	Kind      StringKind
	Multiline bool
}

// TextureMeta carries display hints for texture slots.
type TextureMeta struct {
	// Preview asks the client to render the texture contents inline.
	Preview bool
}

func (FloatRange) extendedMeta()  {}
func (Angle) extendedMeta()       {}
func (IntRange) extendedMeta()    {}
func (IntEnum) extendedMeta()     {}
func (StringMeta) extendedMeta()  {}
func (TextureMeta) extendedMeta() {}

// metaFor pins each Extended implementation to the slot types it may attach
// to, so a float range cannot end up on a texture slot.
func (FloatRange) metaFor(float32)              {}
func (Angle) metaFor(float32)                   {}
func (IntRange) metaFor(int32)                  {}
func (IntEnum) metaFor(int32)                   {}
func (StringMeta) metaFor(string)               {}
func (TextureMeta) metaFor(value.TextureHandle) {}

// SlotDef is one declared slot: its value type, name, metadata, and an
// optional default replacing the type's zero value.
type SlotDef struct {
	Type     value.Type
	Name     string
	Extended Extended // nil when the slot carries no hints
	Common   Common
	// DefaultOverride, when set, is the stored value a fresh slot starts
	// with instead of the zero default for Type.
	DefaultOverride *value.Value
}

// DefaultValue returns the stored value a freshly declared slot starts with.
func (d *SlotDef) DefaultValue() value.Value {
	if d.DefaultOverride != nil {
		return *d.DefaultOverride
	}
	return value.DefaultFor(d.Type)
}
