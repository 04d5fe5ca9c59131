package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var concreteTypes = []Type{I32, F32, Bool, String, Texture}

func TestTypeCanCastTo(t *testing.T) {
	t.Run("identity is always castable", func(t *testing.T) {
		for _, ty := range append([]Type{Any}, concreteTypes...) {
			assert.True(t, ty.CanCastTo(ty), "%s -> %s", ty, ty)
		}
	})

	t.Run("any is permissive in both directions", func(t *testing.T) {
		for _, ty := range concreteTypes {
			assert.True(t, Any.CanCastTo(ty), "any -> %s", ty)
			assert.True(t, ty.CanCastTo(Any), "%s -> any", ty)
		}
	})

	t.Run("only i32 and f32 inter-convert", func(t *testing.T) {
		assert.True(t, I32.CanCastTo(F32))
		assert.True(t, F32.CanCastTo(I32))

		for _, from := range concreteTypes {
			for _, to := range concreteTypes {
				if from == to {
					continue
				}
				if (from == I32 && to == F32) || (from == F32 && to == I32) {
					continue
				}
				assert.False(t, from.CanCastTo(to), "%s -> %s", from, to)
			}
		}
	})
}

func TestValueCast(t *testing.T) {
	t.Run("identity keeps the value", func(t *testing.T) {
		v, ok := NewI32(42).Cast(I32)
		require.True(t, ok)
		assert.Equal(t, NewI32(42), v)
	})

	t.Run("any target accepts any concrete value", func(t *testing.T) {
		for _, v := range []Value{NewI32(1), NewF32(2.5), NewBool(true), NewString("x"), NewTexture(TextureHandle{ID: 7})} {
			got, ok := v.Cast(Any)
			require.True(t, ok, "%s -> any", v.Type())
			assert.Equal(t, v, got)
		}
	})

	t.Run("i32 widens to f32 exactly", func(t *testing.T) {
		v, ok := NewI32(-3).Cast(F32)
		require.True(t, ok)
		f, err := v.F32()
		require.NoError(t, err)
		assert.Equal(t, float32(-3), f)
	})

	t.Run("f32 narrows to i32 truncating toward zero", func(t *testing.T) {
		cases := map[float32]int32{
			3.9:  3,
			-3.9: -3,
			0.5:  0,
			-0.5: 0,
			7.0:  7,
		}
		for in, want := range cases {
			v, ok := NewF32(in).Cast(I32)
			require.True(t, ok, "%v", in)
			i, err := v.I32()
			require.NoError(t, err)
			assert.Equal(t, want, i, "%v", in)
		}
	})

	t.Run("null casts to nothing, any included", func(t *testing.T) {
		for _, ty := range append([]Type{Any}, concreteTypes...) {
			_, ok := Null().Cast(ty)
			assert.False(t, ok, "null -> %s", ty)
		}
	})

	t.Run("texture never converts to scalars", func(t *testing.T) {
		tex := NewTexture(TextureHandle{ID: 3, Width: 4, Height: 4})
		for _, ty := range []Type{I32, F32, Bool, String} {
			_, ok := tex.Cast(ty)
			assert.False(t, ok, "texture -> %s", ty)
		}
	})
}

func TestTypedExtraction(t *testing.T) {
	t.Run("matching kind extracts", func(t *testing.T) {
		i, err := NewI32(5).I32()
		require.NoError(t, err)
		assert.Equal(t, int32(5), i)

		s, err := NewString("hi").Str()
		require.NoError(t, err)
		assert.Equal(t, "hi", s)
	})

	t.Run("mismatch reports wanted and found", func(t *testing.T) {
		_, err := NewF32(1).I32()
		require.Error(t, err)
		var mismatch *TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, I32, mismatch.Wanted)
		assert.Equal(t, F32, mismatch.Found)
	})

	t.Run("null reports any as found", func(t *testing.T) {
		_, err := Null().F32()
		var mismatch *TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, Any, mismatch.Found)
	})
}

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
	assert.Equal(t, Any, v.Type())
	assert.Equal(t, Null(), v)
}

func TestMutTouchTracking(t *testing.T) {
	t.Run("string writes mark touched", func(t *testing.T) {
		stored := NewString("before")
		touched := false
		NewMut(&stored, &touched).SetStr("after")
		assert.True(t, touched)
		s, err := stored.Str()
		require.NoError(t, err)
		assert.Equal(t, "after", s)
	})

	t.Run("scalar writes rely on comparison", func(t *testing.T) {
		stored := NewI32(1)
		checkpoint := stored
		touched := false
		NewMut(&stored, &touched).SetI32(2)
		assert.False(t, touched)
		assert.NotEqual(t, checkpoint, stored)
	})

	t.Run("writing the same scalar compares equal", func(t *testing.T) {
		stored := NewF32(1.5)
		checkpoint := stored
		touched := false
		NewMut(&stored, &touched).SetF32(1.5)
		assert.False(t, touched)
		assert.Equal(t, checkpoint, stored)
	})

	t.Run("setters replace the whole value", func(t *testing.T) {
		stored := NewString("long contents that must not linger")
		NewMut(&stored, nil).SetI32(9)
		assert.Equal(t, NewI32(9), stored)
	})
}

func TestInputsView(t *testing.T) {
	in := Inputs{NewI32(3), NewF32(4.5)}

	i, err := in.I32(0)
	require.NoError(t, err)
	assert.Equal(t, int32(3), i)

	f, err := in.F32(1)
	require.NoError(t, err)
	assert.Equal(t, float32(4.5), f)

	_, err = in.Value(2)
	var idxErr *SlotIndexError
	require.ErrorAs(t, err, &idxErr)
	assert.Equal(t, 2, idxErr.Index)

	_, err = in.Bool(0)
	assert.Error(t, err)
}

func TestOutputsView(t *testing.T) {
	t.Run("writes land in the backing slice", func(t *testing.T) {
		backing := []Value{NewF32(0)}
		out := Outputs(backing)
		require.NoError(t, out.SetF32(0, 7))
		f, err := backing[0].F32()
		require.NoError(t, err)
		assert.Equal(t, float32(7), f)
	})

	t.Run("texture pointer mutates in place", func(t *testing.T) {
		backing := []Value{NewTexture(TextureHandle{Width: 1, Height: 1})}
		out := Outputs(backing)
		h, err := out.Texture(0)
		require.NoError(t, err)
		h.Width = 640
		h.Height = 480

		got, err := backing[0].Texture()
		require.NoError(t, err)
		assert.Equal(t, uint32(640), got.Width)
		assert.Equal(t, uint32(480), got.Height)
	})

	t.Run("texture pointer rejects non-texture slots", func(t *testing.T) {
		out := Outputs{NewI32(1)}
		_, err := out.Texture(0)
		var mismatch *TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, Texture, mismatch.Wanted)
	})
}

func TestDefaultFor(t *testing.T) {
	assert.Equal(t, NewI32(0), DefaultFor(I32))
	assert.Equal(t, NewF32(0), DefaultFor(F32))
	assert.Equal(t, NewBool(false), DefaultFor(Bool))
	assert.Equal(t, NewString(""), DefaultFor(String))
	assert.Equal(t, NewTexture(TextureHandle{}), DefaultFor(Texture))
	assert.True(t, DefaultFor(Any).IsNull())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "42", NewI32(42).String())
	assert.Equal(t, "1.500", NewF32(1.5).String())
	assert.Equal(t, "true", NewBool(true).String())
	assert.Equal(t, "hello", NewString("hello").String())
	assert.Equal(t, "texture(9)", NewTexture(TextureHandle{ID: 9}).String())
	assert.Equal(t, "null", Null().String())
}

func TestTextureHandle(t *testing.T) {
	assert.False(t, TextureHandle{}.Allocated())
	assert.True(t, TextureHandle{ID: 1}.Allocated())

	a := TextureHandle{ID: 1, Width: 2, Height: 2, Format: RGBA8}
	b := TextureHandle{ID: 9, Width: 2, Height: 2, Format: RGBA8}
	assert.True(t, a.SameShape(b))
	b.Format = RGBAF32
	assert.False(t, a.SameShape(b))

	assert.Equal(t, 16, a.ByteSize())
	assert.Equal(t, 64, TextureHandle{Width: 2, Height: 2, Format: RGBAF32}.ByteSize())
}
