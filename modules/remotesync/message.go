package remotesync

import (
	"reflect"

	"github.com/vk/grafiek/internal/history"
)

// envelope is the wire form of one engine message. Kind separates mutations
// from events; Type carries the concrete message name so the remote side
// can dispatch without inspecting the payload.
type envelope struct {
	Kind string `json:"kind"`
	Type string `json:"type"`
	Data any    `json:"data"`
}

func encode(m history.Message) (envelope, bool) {
	switch {
	case m.Mutation != nil:
		return envelope{Kind: "mutation", Type: reflect.TypeOf(m.Mutation).Name(), Data: m.Mutation}, true
	case m.Event != nil:
		return envelope{Kind: "event", Type: reflect.TypeOf(m.Event).Name(), Data: m.Event}, true
	default:
		return envelope{}, false
	}
}
