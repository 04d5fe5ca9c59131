package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slots struct {
	from int
	to   int
}

func TestInsertAndRemove(t *testing.T) {
	t.Run("stores payloads under caller ids", func(t *testing.T) {
		g := New[uint64, string, slots]()
		require.NoError(t, g.Insert(1, "a"))
		require.NoError(t, g.Insert(7, "b"))

		got, ok := g.Get(7)
		require.True(t, ok)
		assert.Equal(t, "b", got)
		assert.Equal(t, 2, g.Len())
		assert.Equal(t, []uint64{1, 7}, g.IDs())
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		g := New[uint64, string, slots]()
		require.NoError(t, g.Insert(1, "a"))
		assert.Error(t, g.Insert(1, "again"))
	})

	t.Run("remove returns the payload and drops incident edges", func(t *testing.T) {
		g := New[uint64, string, slots]()
		require.NoError(t, g.Insert(1, "a"))
		require.NoError(t, g.Insert(2, "b"))
		require.NoError(t, g.Insert(3, "c"))
		require.NoError(t, g.AddEdge(1, 2, slots{0, 0}))
		require.NoError(t, g.AddEdge(2, 3, slots{0, 0}))

		payload, ok := g.Remove(2)
		require.True(t, ok)
		assert.Equal(t, "b", payload)
		assert.Zero(t, g.EdgeCount())
		assert.Empty(t, g.Outgoing(1))
		assert.Empty(t, g.Incoming(3))
	})

	t.Run("removing an unknown id reports false", func(t *testing.T) {
		g := New[uint64, string, slots]()
		_, ok := g.Remove(42)
		assert.False(t, ok)
	})
}

func TestEdges(t *testing.T) {
	t.Run("parallel edges with distinct payloads coexist", func(t *testing.T) {
		g := New[uint64, string, slots]()
		require.NoError(t, g.Insert(1, "a"))
		require.NoError(t, g.Insert(2, "b"))
		require.NoError(t, g.AddEdge(1, 2, slots{0, 0}))
		require.NoError(t, g.AddEdge(1, 2, slots{0, 1}))

		assert.Equal(t, 2, g.EdgeCount())
		assert.Len(t, g.Incoming(2), 2)
	})

	t.Run("identical edges may not be added twice", func(t *testing.T) {
		g := New[uint64, string, slots]()
		require.NoError(t, g.Insert(1, "a"))
		require.NoError(t, g.Insert(2, "b"))
		require.NoError(t, g.AddEdge(1, 2, slots{0, 0}))
		assert.Error(t, g.AddEdge(1, 2, slots{0, 0}))
	})

	t.Run("self-referential edges are rejected", func(t *testing.T) {
		g := New[uint64, string, slots]()
		require.NoError(t, g.Insert(1, "a"))
		assert.Error(t, g.AddEdge(1, 1, slots{0, 0}))
	})

	t.Run("edges to missing nodes are rejected", func(t *testing.T) {
		g := New[uint64, string, slots]()
		require.NoError(t, g.Insert(1, "a"))
		assert.Error(t, g.AddEdge(1, 99, slots{0, 0}))
		assert.Error(t, g.AddEdge(99, 1, slots{0, 0}))
	})

	t.Run("remove edge matches the payload exactly", func(t *testing.T) {
		g := New[uint64, string, slots]()
		require.NoError(t, g.Insert(1, "a"))
		require.NoError(t, g.Insert(2, "b"))
		require.NoError(t, g.AddEdge(1, 2, slots{0, 0}))
		require.NoError(t, g.AddEdge(1, 2, slots{0, 1}))

		assert.False(t, g.RemoveEdge(1, 2, slots{0, 5}))
		assert.True(t, g.RemoveEdge(1, 2, slots{0, 1}))
		assert.Equal(t, 1, g.EdgeCount())

		remaining := g.Outgoing(1)
		require.Len(t, remaining, 1)
		assert.Equal(t, slots{0, 0}, remaining[0].Payload)
	})

	t.Run("incident lists incoming then outgoing", func(t *testing.T) {
		g := New[uint64, string, slots]()
		for id := uint64(1); id <= 3; id++ {
			require.NoError(t, g.Insert(id, "n"))
		}
		require.NoError(t, g.AddEdge(1, 2, slots{0, 0}))
		require.NoError(t, g.AddEdge(2, 3, slots{1, 0}))

		incident := g.Incident(2)
		require.Len(t, incident, 2)
		assert.Equal(t, uint64(1), incident[0].From)
		assert.Equal(t, uint64(3), incident[1].To)
	})
}

func TestHasPath(t *testing.T) {
	g := New[uint64, string, slots]()
	for id := uint64(1); id <= 4; id++ {
		require.NoError(t, g.Insert(id, "n"))
	}
	require.NoError(t, g.AddEdge(1, 2, slots{0, 0}))
	require.NoError(t, g.AddEdge(2, 3, slots{0, 0}))

	assert.True(t, g.HasPath(1, 3))
	assert.False(t, g.HasPath(3, 1), "edges are directed")
	assert.False(t, g.HasPath(1, 4))
	assert.True(t, g.HasPath(2, 2), "a node reaches itself")
	assert.False(t, g.HasPath(1, 99))
}

func TestTopoOrder(t *testing.T) {
	t.Run("sources come before sinks with ascending ties", func(t *testing.T) {
		// Diamond: 1 and 4 feed 2, which feeds 3.
		g := New[uint64, string, slots]()
		for _, id := range []uint64{3, 1, 4, 2} {
			require.NoError(t, g.Insert(id, "n"))
		}
		require.NoError(t, g.AddEdge(1, 2, slots{0, 0}))
		require.NoError(t, g.AddEdge(4, 2, slots{0, 1}))
		require.NoError(t, g.AddEdge(2, 3, slots{0, 0}))

		assert.Equal(t, []uint64{1, 4, 2, 3}, g.TopoOrder())
	})

	t.Run("order is complete on acyclic graphs", func(t *testing.T) {
		g := New[uint64, string, slots]()
		for id := uint64(1); id <= 5; id++ {
			require.NoError(t, g.Insert(id, "n"))
		}
		require.NoError(t, g.AddEdge(5, 1, slots{0, 0}))
		require.NoError(t, g.AddEdge(3, 2, slots{0, 0}))

		order := g.TopoOrder()
		assert.Len(t, order, 5)
		assert.Less(t, indexOf(order, 5), indexOf(order, 1))
		assert.Less(t, indexOf(order, 3), indexOf(order, 2))
	})
}

func indexOf(ids []uint64, id uint64) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
