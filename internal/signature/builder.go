package signature

import (
	"github.com/vk/grafiek/internal/value"
)

// SlotType constrains the Go types slots can be declared over. AnyValue
// declares a slot that accepts every value type.
type SlotType interface {
	int32 | float32 | bool | string | value.TextureHandle | AnyValue
}

// AnyValue is the marker type for declaring slots of type Any. Such slots
// accept a connection of every value type and default to null.
type AnyValue struct{}

// Metadata is satisfied by Extended implementations compatible with slots
// declared over T. The binding is checked at compile time.
type Metadata[T SlotType] interface {
	Extended
	metaFor(T)
}

// TypeOf maps a slot's Go type to its wire type.
func TypeOf[T SlotType]() value.Type {
	var z T
	switch any(z).(type) {
	case int32:
		return value.I32
	case float32:
		return value.F32
	case bool:
		return value.Bool
	case string:
		return value.String
	case value.TextureHandle:
		return value.Texture
	}
	return value.Any
}

func valueOf[T SlotType](v T) value.Value {
	switch v := any(v).(type) {
	case int32:
		return value.NewI32(v)
	case float32:
		return value.NewF32(v)
	case bool:
		return value.NewBool(v)
	case string:
		return value.NewString(v)
	case value.TextureHandle:
		return value.NewTexture(v)
	}
	return value.Null()
}

// Builder configures the slot it was created for. AddInput and friends
// register the slot immediately; the builder then mutates it in place, so
// chains need no terminating call.
type Builder[T SlotType] struct {
	list *[]SlotDef
	idx  int
}

func appendSlot(list *[]SlotDef, t value.Type, name string) int {
	*list = append(*list, SlotDef{Type: t, Name: name, Common: defaultCommon()})
	return len(*list) - 1
}

// AddInput declares an input slot of T's value type on the registry.
func AddInput[T SlotType](r *Registry, name string) *Builder[T] {
	return &Builder[T]{list: &r.inputs, idx: appendSlot(&r.inputs, TypeOf[T](), name)}
}

// AddOutput declares an output slot of T's value type on the registry.
func AddOutput[T SlotType](r *Registry, name string) *Builder[T] {
	return &Builder[T]{list: &r.outputs, idx: appendSlot(&r.outputs, TypeOf[T](), name)}
}

// AddConfig declares a config slot of T's value type on the registry.
func AddConfig[T SlotType](r *Registry, name string) *Builder[T] {
	return &Builder[T]{list: &r.config, idx: appendSlot(&r.config, TypeOf[T](), name)}
}

func (b *Builder[T]) def() *SlotDef {
	return &(*b.list)[b.idx]
}

// Meta attaches type-bound extended metadata to the slot.
func (b *Builder[T]) Meta(m Metadata[T]) *Builder[T] {
	b.def().Extended = m
	return b
}

// Default replaces the zero default the slot's stored value starts with.
func (b *Builder[T]) Default(v T) *Builder[T] {
	dv := valueOf(v)
	b.def().DefaultOverride = &dv
	return b
}

// Tooltip sets the slot's hover description.
func (b *Builder[T]) Tooltip(s string) *Builder[T] {
	b.def().Common.Tooltip = s
	return b
}

// Visible controls whether the client renders the slot.
func (b *Builder[T]) Visible(v bool) *Builder[T] {
	b.def().Common.Visible = v
	return b
}

// Interactive controls whether the client offers direct manipulation.
func (b *Builder[T]) Interactive(v bool) *Builder[T] {
	b.def().Common.Interactive = v
	return b
}

// Enabled controls whether the slot is currently editable.
func (b *Builder[T]) Enabled(v bool) *Builder[T] {
	b.def().Common.Enabled = v
	return b
}

// OnNodeBody asks the client to render the control on the node body.
func (b *Builder[T]) OnNodeBody(v bool) *Builder[T] {
	b.def().Common.OnNodeBody = v
	return b
}

// Dimensions sets the default texture handle's size. It panics when the
// slot is not a texture slot; that is a programming error at registration.
func (b *Builder[T]) Dimensions(w, h uint32) *Builder[T] {
	th := b.textureDefault()
	th.Width = w
	th.Height = h
	b.setTextureDefault(th)
	return b
}

// Format sets the default texture handle's pixel format. Panics when the
// slot is not a texture slot.
func (b *Builder[T]) Format(f value.TextureFormat) *Builder[T] {
	th := b.textureDefault()
	th.Format = f
	b.setTextureDefault(th)
	return b
}

func (b *Builder[T]) textureDefault() value.TextureHandle {
	d := b.def()
	if d.Type != value.Texture {
		panic("signature: texture dimensions on a " + d.Type.String() + " slot")
	}
	if d.DefaultOverride != nil {
		if th, err := d.DefaultOverride.Texture(); err == nil {
			return th
		}
	}
	return value.TextureHandle{}
}

func (b *Builder[T]) setTextureDefault(th value.TextureHandle) {
	dv := value.NewTexture(th)
	b.def().DefaultOverride = &dv
}

// DynBuilder configures a slot whose value type was chosen at runtime, for
// operations that derive their signature from config. Extended metadata on
// dynamic slots is not type checked.
type DynBuilder struct {
	list *[]SlotDef
	idx  int
}

// AddInputOf declares an input slot of a runtime-chosen value type.
func (r *Registry) AddInputOf(t value.Type, name string) *DynBuilder {
	return &DynBuilder{list: &r.inputs, idx: appendSlot(&r.inputs, t, name)}
}

// AddOutputOf declares an output slot of a runtime-chosen value type.
func (r *Registry) AddOutputOf(t value.Type, name string) *DynBuilder {
	return &DynBuilder{list: &r.outputs, idx: appendSlot(&r.outputs, t, name)}
}

// AddConfigOf declares a config slot of a runtime-chosen value type.
func (r *Registry) AddConfigOf(t value.Type, name string) *DynBuilder {
	return &DynBuilder{list: &r.config, idx: appendSlot(&r.config, t, name)}
}

func (b *DynBuilder) def() *SlotDef {
	return &(*b.list)[b.idx]
}

// Meta attaches extended metadata without compile-time type binding.
func (b *DynBuilder) Meta(m Extended) *DynBuilder {
	b.def().Extended = m
	return b
}

// Default replaces the slot's zero default. The value's type is the
// caller's responsibility.
func (b *DynBuilder) Default(v value.Value) *DynBuilder {
	b.def().DefaultOverride = &v
	return b
}

// Tooltip sets the slot's hover description.
func (b *DynBuilder) Tooltip(s string) *DynBuilder {
	b.def().Common.Tooltip = s
	return b
}

// Visible controls whether the client renders the slot.
func (b *DynBuilder) Visible(v bool) *DynBuilder {
	b.def().Common.Visible = v
	return b
}

// Interactive controls whether the client offers direct manipulation.
func (b *DynBuilder) Interactive(v bool) *DynBuilder {
	b.def().Common.Interactive = v
	return b
}

// OnNodeBody asks the client to render the control on the node body.
func (b *DynBuilder) OnNodeBody(v bool) *DynBuilder {
	b.def().Common.OnNodeBody = v
	return b
}
