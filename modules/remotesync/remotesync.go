// Package remotesync forwards every engine message to a remote editor over
// a socket.io connection. It is a message sink, not an operator library:
// plug Sink.Handle into engine.Descriptor.OnMessage and a detached editor
// sees the same mutation and event stream a local one would.
package remotesync

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"sync/atomic"

	"log/slog"

	"github.com/vk/grafiek/internal/ctxlog"
	"github.com/vk/grafiek/internal/history"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// defaultEvent names the socket.io event messages ride on.
const defaultEvent = "graph:message"

// Options tunes a Sink beyond its URL.
type Options struct {
	// Namespace selects the socket.io namespace. Empty means the root
	// namespace.
	Namespace string

	// Event overrides the socket.io event name messages are emitted under.
	Event string

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool
}

// Sink is a live connection to a remote editor. Messages emitted while the
// connection is down are dropped; a remote editor resynchronizes by loading
// the document when it attaches.
type Sink struct {
	log       *slog.Logger
	io        *socket.Socket
	event     string
	connected atomic.Bool
}

// New connects to a remote editor and returns the sink. The connection is
// established in the background; Handle drops messages until it is up.
func New(ctx context.Context, rawURL string, opts Options) (*Sink, error) {
	logger := ctxlog.FromContext(ctx).With("sink", "remotesync", "url", rawURL)

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	event := opts.Event
	if event == "" {
		event = defaultEvent
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	sockOpts := socket.DefaultOptions()
	sockOpts.SetPath(parsedURL.Path)

	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sockOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sockOpts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, sockOpts)
	io := manager.Socket(opts.Namespace, sockOpts)

	s := &Sink{log: logger, io: io, event: event}

	io.On(types.EventName("connect"), func(...any) {
		s.connected.Store(true)
		logger.Info("Editor link connected.", "namespace", opts.Namespace, "sid", io.Id())
	})
	io.On(types.EventName("disconnect"), func(...any) {
		s.connected.Store(false)
		logger.Info("Editor link disconnected.")
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			logger.Warn("Editor link connection failed.", "error", errs[0])
		}
	})

	io.Connect()
	return s, nil
}

// Handle forwards one engine message. It is shaped to plug straight into
// engine.Descriptor.OnMessage.
func (s *Sink) Handle(m history.Message) {
	env, ok := encode(m)
	if !ok {
		return
	}
	if !s.connected.Load() {
		return
	}
	s.io.Emit(s.event, env)
}

// Close disconnects from the remote editor.
func (s *Sink) Close() error {
	s.log.Debug("Disconnecting editor link.")
	s.io.Disconnect()
	return nil
}
