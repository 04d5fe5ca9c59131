package ops

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/grafiek/internal/gpu"
	"github.com/vk/grafiek/internal/value"
)

type noop struct {
	Base
	path OpPath
}

func (n *noop) Path() OpPath { return n.path }

func factoryFor(lib, op string) *Factory {
	return &Factory{
		Library:  lib,
		Operator: op,
		Label:    op,
		New: func() (Operation, error) {
			return &noop{path: OpPath{Library: lib, Operator: op}}, nil
		},
	}
}

func TestRegistry(t *testing.T) {
	t.Run("registers and builds by path", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(factoryFor("core", "input")))

		op, err := r.New(OpPath{Library: "core", Operator: "input"})
		require.NoError(t, err)
		assert.Equal(t, "core/input", op.Path().String())
	})

	t.Run("rejects duplicate paths", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(factoryFor("core", "input")))

		err := r.Register(factoryFor("core", "input"))
		var dup *DuplicateOperationTypeError
		require.ErrorAs(t, err, &dup)
		assert.EqualError(t, err, "duplicate operation type: core/input")
	})

	t.Run("unknown paths are typed errors", func(t *testing.T) {
		r := NewRegistry()
		_, err := r.New(OpPath{Library: "nope", Operator: "missing"})
		var unknown *UnknownOperationTypeError
		require.ErrorAs(t, err, &unknown)
	})

	t.Run("categories and operators come back sorted", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(factoryFor("math", "add")))
		require.NoError(t, r.Register(factoryFor("core", "output")))
		require.NoError(t, r.Register(factoryFor("core", "input")))

		assert.Equal(t, []string{"core", "math"}, r.Categories())

		factories := r.Operators("core")
		require.Len(t, factories, 2)
		assert.Equal(t, "input", factories[0].Operator)
		assert.Equal(t, "output", factories[1].Operator)
	})
}

func TestBaseDefaults(t *testing.T) {
	op := &noop{path: OpPath{Library: "core", Operator: "comment"}}

	assert.False(t, op.Stateful())
	assert.NoError(t, op.Setup(nil, nil))
	assert.NoError(t, op.Configure(nil, nil, nil))
	assert.NoError(t, op.Execute(nil, nil, nil))
	assert.NoError(t, op.EdgeConnected(0, value.F32, nil))
	assert.NoError(t, op.EdgeDisconnected(0, value.F32, nil))
}

func TestDirtyFlag(t *testing.T) {
	t.Run("marks across goroutines", func(t *testing.T) {
		flag := NewDirtyFlag()
		var wg sync.WaitGroup
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				flag.Mark()
			}()
		}
		wg.Wait()
		assert.True(t, flag.Dirty())

		flag.Clear()
		assert.False(t, flag.Dirty())
	})

	t.Run("copies share the same state", func(t *testing.T) {
		flag := NewDirtyFlag()
		shared := flag
		shared.Mark()
		assert.True(t, flag.Dirty())
	})
}

func newTestContext(t *testing.T) *ExecContext {
	t.Helper()
	device, queue := gpu.NewSoftware()
	pool, err := gpu.NewPool(device, queue)
	require.NoError(t, err)
	return NewExecContext(device, queue, pool, slog.Default())
}

func TestEnsureTexture(t *testing.T) {
	t.Run("allocates unbacked handles", func(t *testing.T) {
		ectx := newTestContext(t)
		ectx.SetOwner(gpu.Owner(1))

		h := value.TextureHandle{Width: 8, Height: 4, Format: value.RGBA8}
		require.NoError(t, ectx.EnsureTexture(&h))
		assert.True(t, h.Allocated())

		tex, ok := ectx.Texture(h)
		require.True(t, ok)
		assert.Equal(t, uint32(8), tex.Desc().Width)
	})

	t.Run("is idempotent for an unchanged shape", func(t *testing.T) {
		ectx := newTestContext(t)
		h := value.TextureHandle{Width: 8, Height: 4, Format: value.RGBA8}
		require.NoError(t, ectx.EnsureTexture(&h))
		id := h.ID

		require.NoError(t, ectx.EnsureTexture(&h))
		assert.Equal(t, id, h.ID)
	})

	t.Run("replaces in place when the shape changed", func(t *testing.T) {
		ectx := newTestContext(t)
		h := value.TextureHandle{Width: 8, Height: 4, Format: value.RGBA8}
		require.NoError(t, ectx.EnsureTexture(&h))
		id := h.ID

		h.Width, h.Height = 16, 16
		require.NoError(t, ectx.EnsureTexture(&h))
		assert.Equal(t, id, h.ID, "replacement keeps the id")

		tex, ok := ectx.Texture(h)
		require.True(t, ok)
		assert.Equal(t, uint32(16), tex.Desc().Width)
	})

	t.Run("resolves system textures", func(t *testing.T) {
		ectx := newTestContext(t)
		tex, ok := ectx.Texture(gpu.Check)
		require.True(t, ok)
		assert.Equal(t, uint32(2), tex.Desc().Width)
	})
}

func TestScriptError(t *testing.T) {
	err := &ScriptError{Diags: []LocatedError{
		{Message: "unknown variable", Line: 2, Column: 5},
		{Message: "missing operand", Line: 3, Column: 1},
	}}
	assert.Equal(t, "2:5: unknown variable\n3:1: missing operand", err.Error())

	single := NewScriptError("boom")
	assert.Equal(t, "1:1: boom", single.Error())
}
