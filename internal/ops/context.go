package ops

import (
	"log/slog"

	"github.com/vk/grafiek/internal/gpu"
	"github.com/vk/grafiek/internal/value"
)

// TimeInfo carries the timing the application sets before an execution
// pass, for operators whose output varies over time.
type TimeInfo struct {
	// Time is the current time in seconds.
	Time float32
	// Delta is the time since the last pass in seconds.
	Delta float32
	// Frame is the current frame number.
	Frame uint64
}

// ExecContext is handed to every operation call: the backend device and
// queue, texture resolution, timing, and a logger. The engine tags it with
// the owning node before each per-node call so texture allocations are
// attributed correctly.
type ExecContext struct {
	Device gpu.Device
	Queue  gpu.Queue
	Logger *slog.Logger

	pool   *gpu.Pool
	owner  gpu.Owner
	timing TimeInfo
}

// NewExecContext builds the context operations run against.
func NewExecContext(device gpu.Device, queue gpu.Queue, pool *gpu.Pool, logger *slog.Logger) *ExecContext {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecContext{Device: device, Queue: queue, Logger: logger, pool: pool}
}

// SetOwner attributes subsequent texture allocations to the given owner.
// The engine sets it; operations never call this.
func (e *ExecContext) SetOwner(o gpu.Owner) { e.owner = o }

// SetTiming records the timing for the next execution pass.
func (e *ExecContext) SetTiming(t TimeInfo) { e.timing = t }

// Time returns the current time in seconds.
func (e *ExecContext) Time() float32 { return e.timing.Time }

// Timing returns the full timing block.
func (e *ExecContext) Timing() TimeInfo { return e.timing }

// Texture resolves a handle to its live pool texture.
func (e *ExecContext) Texture(h value.TextureHandle) (gpu.Texture, bool) {
	if !h.Allocated() {
		return nil, false
	}
	return e.pool.Get(h.ID)
}

// EnsureTexture makes the handle's texture exist at the handle's shape:
// allocate when unallocated, replace in place preserving the id when the
// shape changed, otherwise leave it as is. Contents after a call are
// undefined; render targets are expected to be overwritten.
func (e *ExecContext) EnsureTexture(h *value.TextureHandle) error {
	if !h.Allocated() {
		id, err := e.pool.Alloc(e.owner, *h)
		if err != nil {
			return err
		}
		h.ID = id
		return nil
	}
	tex, ok := e.pool.Get(h.ID)
	if !ok {
		// The id went stale, typically after its node was rebuilt.
		id, err := e.pool.Alloc(e.owner, *h)
		if err != nil {
			return err
		}
		h.ID = id
		return nil
	}
	desc := tex.Desc()
	if desc.Width != h.Width || desc.Height != h.Height || desc.Format != h.Format {
		return e.pool.Replace(h.ID, *h)
	}
	return nil
}
