package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/grafiek/internal/value"
)

func TestBuilders(t *testing.T) {
	t.Run("declares slots in order with mapped types", func(t *testing.T) {
		var r Registry
		AddInput[float32](&r, "a")
		AddInput[int32](&r, "b")
		AddOutput[value.TextureHandle](&r, "out")
		AddConfig[string](&r, "source")
		AddConfig[bool](&r, "preview")
		AddInput[AnyValue](&r, "anything")

		require.Equal(t, 3, r.InputCount())
		require.Equal(t, 1, r.OutputCount())
		require.Equal(t, 2, r.ConfigCount())

		assert.Equal(t, value.F32, r.Input(0).Type)
		assert.Equal(t, "a", r.Input(0).Name)
		assert.Equal(t, value.I32, r.Input(1).Type)
		assert.Equal(t, value.Texture, r.Output(0).Type)
		assert.Equal(t, value.String, r.Config(0).Type)
		assert.Equal(t, value.Bool, r.Config(1).Type)
		assert.Equal(t, value.Any, r.Input(2).Type)
	})

	t.Run("defaults to interactive visible and enabled", func(t *testing.T) {
		var r Registry
		AddInput[float32](&r, "a")

		c := r.Input(0).Common
		assert.True(t, c.Interactive)
		assert.True(t, c.Enabled)
		assert.True(t, c.Visible)
		assert.False(t, c.OnNodeBody)
		assert.Empty(t, c.Tooltip)
	})

	t.Run("chained setters land on the declared slot", func(t *testing.T) {
		var r Registry
		AddConfig[int32](&r, "width").
			Meta(IntRange{Min: 1, Max: 8192, Step: 1}).
			Default(512).
			Tooltip("render target width").
			Interactive(false)

		d := r.Config(0)
		assert.Equal(t, IntRange{Min: 1, Max: 8192, Step: 1}, d.Extended)
		assert.Equal(t, "render target width", d.Common.Tooltip)
		assert.False(t, d.Common.Interactive)
		require.NotNil(t, d.DefaultOverride)
		w, err := d.DefaultOverride.I32()
		require.NoError(t, err)
		assert.Equal(t, int32(512), w)
	})

	t.Run("dimensions seed the default texture handle", func(t *testing.T) {
		var r Registry
		AddOutput[value.TextureHandle](&r, "output").
			Dimensions(512, 256).
			Format(value.RGBAF32).
			Meta(TextureMeta{Preview: true})

		d := r.Output(0)
		th, err := d.DefaultValue().Texture()
		require.NoError(t, err)
		assert.Equal(t, uint32(512), th.Width)
		assert.Equal(t, uint32(256), th.Height)
		assert.Equal(t, value.RGBAF32, th.Format)
		assert.False(t, th.Allocated())
	})

	t.Run("dimensions on a scalar slot panic", func(t *testing.T) {
		var r Registry
		b := AddOutput[float32](&r, "result")
		assert.Panics(t, func() { b.Dimensions(4, 4) })
	})

	t.Run("dynamic builder declares runtime-chosen types", func(t *testing.T) {
		var r Registry
		r.AddOutputOf(value.I32, "value").Default(value.NewI32(7))
		r.AddInputOf(value.Any, "input")

		require.Equal(t, value.I32, r.Output(0).Type)
		assert.Equal(t, value.NewI32(7), r.Output(0).DefaultValue())
		assert.Equal(t, value.Any, r.Input(0).Type)
		assert.True(t, r.Input(0).DefaultValue().IsNull())
	})
}

func TestDefaultValue(t *testing.T) {
	t.Run("falls back to the zero value for the type", func(t *testing.T) {
		var r Registry
		AddInput[float32](&r, "a")
		AddInput[string](&r, "s")
		AddInput[AnyValue](&r, "any")

		assert.Equal(t, value.NewF32(0), r.Input(0).DefaultValue())
		assert.Equal(t, value.NewString(""), r.Input(1).DefaultValue())
		assert.True(t, r.Input(2).DefaultValue().IsNull())
	})

	t.Run("prefers the override", func(t *testing.T) {
		var r Registry
		AddInput[float32](&r, "a").Default(1.5)
		assert.Equal(t, value.NewF32(1.5), r.Input(0).DefaultValue())
	})
}

func TestValidateUniqueNames(t *testing.T) {
	t.Run("accepts distinct names per list", func(t *testing.T) {
		var r Registry
		AddInput[float32](&r, "value")
		AddOutput[float32](&r, "value")
		AddConfig[float32](&r, "value")
		assert.NoError(t, r.ValidateUniqueNames())
	})

	t.Run("rejects duplicates within one list", func(t *testing.T) {
		var r Registry
		AddInput[float32](&r, "a")
		AddInput[int32](&r, "a")

		err := r.ValidateUniqueNames()
		var dup *DuplicateSlotNameError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "a", dup.Slot)
		assert.Equal(t, ListInputs, dup.List)
	})
}

func TestByNameLookup(t *testing.T) {
	var r Registry
	AddInput[float32](&r, "a")
	AddInput[float32](&r, "b")
	AddConfig[string](&r, "source")

	t.Run("finds the slot and its index", func(t *testing.T) {
		d, idx, err := InputByName[float32](&r, "b")
		require.NoError(t, err)
		assert.Equal(t, 1, idx)
		assert.Equal(t, "b", d.Name)
	})

	t.Run("reports unknown names", func(t *testing.T) {
		_, _, err := InputByName[float32](&r, "missing")
		var unknown *UnknownSlotError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, ListInputs, unknown.List)
	})

	t.Run("rejects a mismatched declared type", func(t *testing.T) {
		_, _, err := ConfigByName[int32](&r, "source")
		var mismatch *value.TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, value.I32, mismatch.Wanted)
		assert.Equal(t, value.String, mismatch.Found)
	})

	t.Run("mutates the declared slot through the pointer", func(t *testing.T) {
		d, _, err := InputByName[float32](&r, "a")
		require.NoError(t, err)
		dv := value.NewF32(2.5)
		d.DefaultOverride = &dv
		assert.Equal(t, value.NewF32(2.5), r.Input(0).DefaultValue())
	})
}

func TestClear(t *testing.T) {
	t.Run("clearing inputs and outputs keeps config", func(t *testing.T) {
		var r Registry
		AddInput[float32](&r, "a")
		AddOutput[float32](&r, "result")
		AddConfig[int32](&r, "operation")

		r.ClearInputs()
		r.ClearOutputs()

		assert.Zero(t, r.InputCount())
		assert.Zero(t, r.OutputCount())
		assert.Equal(t, 1, r.ConfigCount())
	})

	t.Run("clear drops everything", func(t *testing.T) {
		var r Registry
		AddInput[float32](&r, "a")
		AddConfig[int32](&r, "operation")
		r.Clear()
		assert.Zero(t, r.InputCount()+r.OutputCount()+r.ConfigCount())
	})
}
