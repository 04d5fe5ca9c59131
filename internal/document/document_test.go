package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/grafiek/internal/engine"
	"github.com/vk/grafiek/internal/gpu"
	"github.com/vk/grafiek/internal/ops"
	"github.com/vk/grafiek/internal/signature"
	"github.com/vk/grafiek/internal/value"
	"github.com/vk/grafiek/modules/mathops"
	"github.com/vk/grafiek/modules/system"
)

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	device, queue := gpu.NewSoftware()
	e, err := engine.Init(engine.Descriptor{Device: device, Queue: queue})
	require.NoError(t, err)
	return e
}

func writeDoc(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.grafiek.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newEngine(t)

	a, err := src.InstanceNode(system.InputPath)
	require.NoError(t, err)
	require.NoError(t, src.EditGraphInput(a, func(_ *signature.SlotDef, m value.Mut) { m.SetF32(3) }))
	require.NoError(t, src.SetLabel(a, "left"))
	require.NoError(t, src.SetNodePosition(a, [2]float32{-120, 40}))

	b, err := src.InstanceNode(system.InputPath)
	require.NoError(t, err)
	require.NoError(t, src.EditGraphInput(b, func(_ *signature.SlotDef, m value.Mut) { m.SetF32(4) }))

	sub, err := src.InstanceNode(mathops.AddPath)
	require.NoError(t, err)
	require.NoError(t, src.EditNodeConfig(sub, 0, func(_ *signature.SlotDef, m value.Mut) {
		m.SetI32(int32(mathops.Subtract))
	}))

	out, err := src.InstanceNode(system.OutputPath)
	require.NoError(t, err)

	require.NoError(t, src.Connect(a, sub, 0, 0))
	require.NoError(t, src.Connect(b, sub, 0, 1))
	require.NoError(t, src.Connect(sub, out, 0, 0))

	path := filepath.Join(t.TempDir(), "graph.grafiek.hcl")
	id, err := Save(ctx, src, uuid.Nil, path)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id, "a nil id gets a fresh identity")

	dst := newEngine(t)
	info, err := Load(ctx, dst, path)
	require.NoError(t, err)
	assert.Equal(t, id, info.ID)
	assert.Equal(t, Version, info.Version)

	assert.Equal(t, src.NodeCount(), dst.NodeCount())
	assert.Equal(t, src.EdgeCount(), dst.EdgeCount())
	assert.False(t, dst.CanUndo(), "loading must not leave undo entries")

	left, ok := dst.GetNode(info.Nodes[uint64(a)])
	require.True(t, ok)
	assert.Equal(t, "left", left.Record().Label)
	assert.Equal(t, [2]float32{-120, 40}, left.Record().Position)

	subNode, ok := dst.GetNode(info.Nodes[uint64(sub)])
	require.True(t, ok)
	assert.Equal(t, "minuend", subNode.Signature().Input(0).Name,
		"config must reshape the signature before inputs apply")

	dst.Execute()
	got, ok := dst.Result(0)
	require.True(t, ok)
	assert.Equal(t, value.NewF32(-1), got)
}

func TestSaveIsDeterministic(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)
	a, err := e.InstanceNode(system.InputPath)
	require.NoError(t, err)
	add, err := e.InstanceNode(mathops.AddPath)
	require.NoError(t, err)
	require.NoError(t, e.Connect(a, add, 0, 0))

	dir := t.TempDir()
	id := uuid.New()
	first := filepath.Join(dir, "first.hcl")
	second := filepath.Join(dir, "second.hcl")
	_, err = Save(ctx, e, id, first)
	require.NoError(t, err)
	_, err = Save(ctx, e, id, second)
	require.NoError(t, err)

	b1, err := os.ReadFile(first)
	require.NoError(t, err)
	b2, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b2))
}

func TestGraphInputValueKeepsConfiguredType(t *testing.T) {
	ctx := context.Background()
	src := newEngine(t)
	in, err := src.InstanceNode(system.InputPath)
	require.NoError(t, err)
	require.NoError(t, src.EditNodeConfig(in, 0, func(_ *signature.SlotDef, m value.Mut) {
		m.SetI32(int32(value.I32))
	}))
	require.NoError(t, src.EditGraphInput(in, func(_ *signature.SlotDef, m value.Mut) {
		m.SetI32(7)
	}))

	path := filepath.Join(t.TempDir(), "graph.grafiek.hcl")
	_, err = Save(ctx, src, uuid.Nil, path)
	require.NoError(t, err)

	dst := newEngine(t)
	info, err := Load(ctx, dst, path)
	require.NoError(t, err)

	n, ok := dst.GetNode(info.Nodes[uint64(in)])
	require.True(t, ok)
	assert.Equal(t, value.NewI32(7), n.OutputValues()[0])
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported version", func(t *testing.T) {
		path := writeDoc(t, "version = 2\n")
		_, err := Load(ctx, newEngine(t), path)
		var ve *UnsupportedVersionError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, 2, ve.Found)
	})

	t.Run("unknown operator", func(t *testing.T) {
		path := writeDoc(t, `version = 1

node "nope/nothing" {
  id = 1
}
`)
		_, err := Load(ctx, newEngine(t), path)
		var ue *ops.UnknownOperationTypeError
		assert.ErrorAs(t, err, &ue)
	})

	t.Run("malformed operator path", func(t *testing.T) {
		path := writeDoc(t, `version = 1

node "add" {
  id = 1
}
`)
		_, err := Load(ctx, newEngine(t), path)
		assert.ErrorContains(t, err, "malformed operator path")
	})

	t.Run("duplicate node id", func(t *testing.T) {
		path := writeDoc(t, `version = 1

node "math/add" {
  id = 1
}

node "math/add" {
  id = 1
}
`)
		_, err := Load(ctx, newEngine(t), path)
		assert.ErrorContains(t, err, "duplicate node id")
	})

	t.Run("edge to unknown node", func(t *testing.T) {
		path := writeDoc(t, `version = 1

edge {
  from = 1
  to   = 2
}
`)
		_, err := Load(ctx, newEngine(t), path)
		assert.ErrorContains(t, err, "unknown node id")
	})

	t.Run("unknown slot name", func(t *testing.T) {
		path := writeDoc(t, `version = 1

node "math/add" {
  id = 1

  inputs {
    nope = 3
  }
}
`)
		_, err := Load(ctx, newEngine(t), path)
		assert.ErrorContains(t, err, `no slot named "nope"`)
	})

	t.Run("short position", func(t *testing.T) {
		path := writeDoc(t, `version = 1

node "math/add" {
  id       = 1
  position = [4]
}
`)
		_, err := Load(ctx, newEngine(t), path)
		assert.ErrorContains(t, err, "position needs two coordinates")
	})
}

func TestLoadAppliesStoredInputs(t *testing.T) {
	ctx := context.Background()
	path := writeDoc(t, `version = 1

node "math/add" {
  id = 1

  inputs {
    a = 2
    b = 5
  }
}

node "core/output" {
  id = 2
}

edge {
  from = 1
  to   = 2
}
`)
	e := newEngine(t)
	_, err := Load(ctx, e, path)
	require.NoError(t, err)

	e.Execute()
	got, ok := e.Result(0)
	require.True(t, ok)
	assert.Equal(t, value.NewF32(7), got)
}
