package remotesync

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/grafiek/internal/history"
	"github.com/vk/grafiek/internal/value"
)

func TestEncode(t *testing.T) {
	t.Run("mutation", func(t *testing.T) {
		env, ok := encode(history.Message{Mutation: history.Connect{
			FromNode: 1, FromSlot: 0, ToNode: 2, ToSlot: 1,
		}})
		require.True(t, ok)
		assert.Equal(t, "mutation", env.Kind)
		assert.Equal(t, "Connect", env.Type)
	})

	t.Run("event", func(t *testing.T) {
		env, ok := encode(history.Message{Event: history.GraphDirtied{}})
		require.True(t, ok)
		assert.Equal(t, "event", env.Kind)
		assert.Equal(t, "GraphDirtied", env.Type)
	})

	t.Run("empty message", func(t *testing.T) {
		_, ok := encode(history.Message{})
		assert.False(t, ok)
	})
}

func TestEnvelopeCarriesSlotValues(t *testing.T) {
	env, ok := encode(history.Message{Mutation: history.SetInput{
		Node:     3,
		Slot:     1,
		OldValue: value.Null(),
		NewValue: value.NewF32(2.5),
	}})
	require.True(t, ok)

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded struct {
		Kind string `json:"kind"`
		Type string `json:"type"`
		Data struct {
			Node     uint64 `json:"Node"`
			OldValue struct {
				Type  string `json:"type"`
				Value any    `json:"value"`
			} `json:"OldValue"`
			NewValue struct {
				Type  string `json:"type"`
				Value any    `json:"value"`
			} `json:"NewValue"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "SetInput", decoded.Type)
	assert.Equal(t, uint64(3), decoded.Data.Node)
	assert.Equal(t, "null", decoded.Data.OldValue.Type)
	assert.Nil(t, decoded.Data.OldValue.Value)
	assert.Equal(t, "f32", decoded.Data.NewValue.Type)
	assert.InDelta(t, 2.5, decoded.Data.NewValue.Value, 0.0001)
}
