package mathops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/grafiek/internal/signature"
	"github.com/vk/grafiek/internal/value"
)

func configured(t *testing.T, op ArithOp) (*Arithmetic, *signature.Registry) {
	t.Helper()
	a := NewArithmetic()
	var sig signature.Registry
	require.NoError(t, a.Setup(nil, &sig))
	require.NoError(t, a.Configure(nil, value.Inputs{value.NewI32(int32(op))}, &sig))
	return a, &sig
}

func TestConfigureShapesInputs(t *testing.T) {
	cases := []struct {
		op    ArithOp
		names []string
	}{
		{Add, []string{"a", "b"}},
		{Subtract, []string{"minuend", "subtrahend"}},
		{Multiply, []string{"a", "b"}},
		{Power, []string{"base", "exponent"}},
		{Log, []string{"base", "a"}},
		{Divide, []string{"dividend", "divisor"}},
		{Min, []string{"a", "b"}},
		{Max, []string{"a", "b"}},
		{Abs, []string{"a"}},
	}
	for _, tc := range cases {
		_, sig := configured(t, tc.op)
		require.Equal(t, len(tc.names), sig.InputCount())
		for i, name := range tc.names {
			assert.Equal(t, name, sig.Input(i).Name)
			assert.Equal(t, value.F32, sig.Input(i).Type)
		}
		require.Equal(t, 1, sig.OutputCount())
		assert.Equal(t, "result", sig.Output(0).Name)
	}
}

func TestConfigureKeepsConfigSlot(t *testing.T) {
	_, sig := configured(t, Abs)
	require.Equal(t, 1, sig.ConfigCount())
	assert.Equal(t, "operation", sig.Config(0).Name)
}

func TestConfigureRejectsUnknownOperation(t *testing.T) {
	a := NewArithmetic()
	var sig signature.Registry
	require.NoError(t, a.Setup(nil, &sig))
	assert.Error(t, a.Configure(nil, value.Inputs{value.NewI32(42)}, &sig))
}

func TestExecute(t *testing.T) {
	eval := func(t *testing.T, op ArithOp, in ...float32) float32 {
		t.Helper()
		a, _ := configured(t, op)
		vals := make(value.Inputs, len(in))
		for i, v := range in {
			vals[i] = value.NewF32(v)
		}
		out := value.Outputs{value.NewF32(0)}
		require.NoError(t, a.Execute(nil, vals, out))
		r, err := out.Value(0)
		require.NoError(t, err)
		f, err := r.F32()
		require.NoError(t, err)
		return f
	}

	t.Run("add", func(t *testing.T) {
		assert.Equal(t, float32(7), eval(t, Add, 3, 4))
	})
	t.Run("subtract", func(t *testing.T) {
		assert.Equal(t, float32(-1), eval(t, Subtract, 3, 4))
	})
	t.Run("multiply", func(t *testing.T) {
		assert.Equal(t, float32(12), eval(t, Multiply, 3, 4))
	})
	t.Run("power", func(t *testing.T) {
		assert.Equal(t, float32(81), eval(t, Power, 3, 4))
	})
	t.Run("log uses the base slot as base", func(t *testing.T) {
		assert.InDelta(t, 3, eval(t, Log, 2, 8), 1e-6)
	})
	t.Run("divide", func(t *testing.T) {
		assert.Equal(t, float32(0.75), eval(t, Divide, 3, 4))
	})
	t.Run("divide by zero yields infinity", func(t *testing.T) {
		assert.True(t, math.IsInf(float64(eval(t, Divide, 3, 0)), 1))
	})
	t.Run("min", func(t *testing.T) {
		assert.Equal(t, float32(3), eval(t, Min, 3, 4))
	})
	t.Run("max", func(t *testing.T) {
		assert.Equal(t, float32(4), eval(t, Max, 3, 4))
	})
	t.Run("abs", func(t *testing.T) {
		assert.Equal(t, float32(5), eval(t, Abs, -5))
	})
}
