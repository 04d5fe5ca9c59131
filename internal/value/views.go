package value

// Mut is the writable view handed to edit callbacks. Scalar writes are
// detected by the caller comparing against a checkpoint copy; writes to
// heap-backed kinds mark the touched flag instead, so long strings are
// never compared byte-by-byte on every UI frame.
type Mut struct {
	val     *Value
	touched *bool
}

// NewMut wraps a stored value for editing. touched may be nil when the
// caller relies on comparison alone.
func NewMut(val *Value, touched *bool) Mut {
	return Mut{val: val, touched: touched}
}

// Type returns the current discriminant of the wrapped value.
func (m Mut) Type() Type { return m.val.kind }

// Value returns a copy of the wrapped value.
func (m Mut) Value() Value { return *m.val }

// I32 reads the wrapped value as an int32.
func (m Mut) I32() (int32, error) { return m.val.I32() }

// F32 reads the wrapped value as a float32.
func (m Mut) F32() (float32, error) { return m.val.F32() }

// Bool reads the wrapped value as a bool.
func (m Mut) Bool() (bool, error) { return m.val.Bool() }

// Str reads the wrapped value as a string.
func (m Mut) Str() (string, error) { return m.val.Str() }

// Texture reads the wrapped value as a texture handle.
func (m Mut) Texture() (TextureHandle, error) { return m.val.Texture() }

// SetI32 overwrites the wrapped value with an I32.
func (m Mut) SetI32(v int32) { *m.val = NewI32(v) }

// SetF32 overwrites the wrapped value with an F32.
func (m Mut) SetF32(v float32) { *m.val = NewF32(v) }

// SetBool overwrites the wrapped value with a Bool.
func (m Mut) SetBool(v bool) { *m.val = NewBool(v) }

// SetStr overwrites the wrapped value with a String and marks it touched.
func (m Mut) SetStr(v string) {
	*m.val = NewString(v)
	m.touch()
}

// SetTexture overwrites the wrapped value with a texture handle.
func (m Mut) SetTexture(h TextureHandle) { *m.val = NewTexture(h) }

// SetNull overwrites the wrapped value with Null.
func (m Mut) SetNull() { *m.val = Null() }

// Set overwrites the wrapped value wholesale.
func (m Mut) Set(v Value) {
	*m.val = v
	if v.kind == String {
		m.touch()
	}
}

func (m Mut) touch() {
	if m.touched != nil {
		*m.touched = true
	}
}

// Inputs is the resolved read view over a node's input slots passed to an
// operation's execute. Entry i holds the connected value cast to the
// declared slot type when a driver exists, otherwise the node's own stored
// value.
type Inputs []Value

// Len returns the number of input slots.
func (in Inputs) Len() int { return len(in) }

// Value returns the resolved value at slot i.
func (in Inputs) Value(i int) (Value, error) {
	if i < 0 || i >= len(in) {
		return Value{}, &SlotIndexError{Index: i}
	}
	return in[i], nil
}

// I32 reads slot i as an int32.
func (in Inputs) I32(i int) (int32, error) {
	v, err := in.Value(i)
	if err != nil {
		return 0, err
	}
	return v.I32()
}

// F32 reads slot i as a float32.
func (in Inputs) F32(i int) (float32, error) {
	v, err := in.Value(i)
	if err != nil {
		return 0, err
	}
	return v.F32()
}

// Bool reads slot i as a bool.
func (in Inputs) Bool(i int) (bool, error) {
	v, err := in.Value(i)
	if err != nil {
		return false, err
	}
	return v.Bool()
}

// Str reads slot i as a string.
func (in Inputs) Str(i int) (string, error) {
	v, err := in.Value(i)
	if err != nil {
		return "", err
	}
	return v.Str()
}

// Texture reads slot i as a texture handle.
func (in Inputs) Texture(i int) (TextureHandle, error) {
	v, err := in.Value(i)
	if err != nil {
		return TextureHandle{}, err
	}
	return v.Texture()
}

// Outputs is the writable view over a node's output slots passed to an
// operation's execute. It aliases the node's stored output values, so writes
// land directly in the node.
type Outputs []Value

// Len returns the number of output slots.
func (out Outputs) Len() int { return len(out) }

// Value returns a copy of the value at slot i.
func (out Outputs) Value(i int) (Value, error) {
	if i < 0 || i >= len(out) {
		return Value{}, &SlotIndexError{Index: i}
	}
	return out[i], nil
}

// Set overwrites slot i wholesale.
func (out Outputs) Set(i int, v Value) error {
	if i < 0 || i >= len(out) {
		return &SlotIndexError{Index: i}
	}
	out[i] = v
	return nil
}

// SetI32 writes an int32 to slot i.
func (out Outputs) SetI32(i int, v int32) error { return out.Set(i, NewI32(v)) }

// SetF32 writes a float32 to slot i.
func (out Outputs) SetF32(i int, v float32) error { return out.Set(i, NewF32(v)) }

// SetBool writes a bool to slot i.
func (out Outputs) SetBool(i int, v bool) error { return out.Set(i, NewBool(v)) }

// SetStr writes a string to slot i.
func (out Outputs) SetStr(i int, v string) error { return out.Set(i, NewString(v)) }

// SetTexture writes a texture handle to slot i.
func (out Outputs) SetTexture(i int, h TextureHandle) error { return out.Set(i, NewTexture(h)) }

// Texture returns a pointer to the handle stored in slot i so callers can
// resize or allocate it in place. The slot must already hold a texture.
func (out Outputs) Texture(i int) (*TextureHandle, error) {
	if i < 0 || i >= len(out) {
		return nil, &SlotIndexError{Index: i}
	}
	if out[i].kind != Texture {
		return nil, &TypeMismatchError{Wanted: Texture, Found: out[i].kind}
	}
	return &out[i].tex, nil
}
