package gpu

import (
	"fmt"

	"github.com/vk/grafiek/internal/value"
)

// System texture handles, allocated once at pool construction. Their ids
// are stable across the engine's lifetime.
var (
	// Speck is a 1x1 black pixel, the default sample for missing inputs.
	Speck = value.TextureHandle{ID: 1, Width: 1, Height: 1, Format: value.RGBA8}
	// Fleck is a 1x1 white pixel.
	Fleck = value.TextureHandle{ID: 2, Width: 1, Height: 1, Format: value.RGBA8}
	// TransparentSpeck is a 1x1 fully transparent pixel.
	TransparentSpeck = value.TextureHandle{ID: 3, Width: 1, Height: 1, Format: value.RGBA8}
	// Check is a 2x2 black and magenta checkerboard marking missing
	// textures.
	Check = value.TextureHandle{ID: 4, Width: 2, Height: 2, Format: value.RGBA8}
)

var checkData = []byte{
	0, 0, 0, 255, 255, 0, 255, 255,
	255, 0, 255, 255, 0, 0, 0, 255,
}

// userIDStart is the first id handed to user textures; everything below is
// reserved for system textures.
const userIDStart = 16

type poolEntry struct {
	tex   Texture
	owner Owner
}

// Pool owns every live texture, keyed by a stable id that survives
// replacement. Entries are tagged with an owner so all textures a node
// allocated can be released when it goes away.
type Pool struct {
	device  Device
	queue   Queue
	entries map[value.TextureID]poolEntry
	nextID  uint64
}

// NewPool builds a pool on the given backend and uploads the system
// textures.
func NewPool(device Device, queue Queue) (*Pool, error) {
	p := &Pool{
		device:  device,
		queue:   queue,
		entries: make(map[value.TextureID]poolEntry),
		nextID:  userIDStart,
	}
	for _, sys := range []struct {
		handle value.TextureHandle
		label  string
		data   []byte
	}{
		{Speck, "speck", []byte{0, 0, 0, 255}},
		{Fleck, "fleck", []byte{255, 255, 255, 255}},
		{TransparentSpeck, "transparent-speck", []byte{0, 0, 0, 0}},
		{Check, "check", checkData},
	} {
		if err := p.insertSystem(sys.handle, sys.label, sys.data); err != nil {
			return nil, fmt.Errorf("loading system texture %s: %w", sys.label, err)
		}
	}
	return p, nil
}

func (p *Pool) insertSystem(h value.TextureHandle, label string, data []byte) error {
	tex, err := p.device.CreateTexture(TextureDesc{
		Width:  h.Width,
		Height: h.Height,
		Format: h.Format,
		Label:  label,
	})
	if err != nil {
		return err
	}
	if err := p.queue.WriteTexture(tex, data); err != nil {
		tex.Destroy()
		return err
	}
	p.entries[h.ID] = poolEntry{tex: tex, owner: OwnerEngine}
	return nil
}

func (p *Pool) create(h value.TextureHandle, id value.TextureID) (Texture, error) {
	return p.device.CreateTexture(TextureDesc{
		Width:  h.Width,
		Height: h.Height,
		Format: h.Format,
		Label:  fmt.Sprintf("pool-%d", id),
	})
}

// Alloc creates a zeroed texture with the handle's shape and returns its
// fresh id.
func (p *Pool) Alloc(owner Owner, h value.TextureHandle) (value.TextureID, error) {
	id := value.TextureID(p.nextID)
	tex, err := p.create(h, id)
	if err != nil {
		return 0, err
	}
	p.nextID++
	p.entries[id] = poolEntry{tex: tex, owner: owner}
	return id, nil
}

// AllocWithData creates a texture with the handle's shape, uploads the
// pixel buffer, and returns its fresh id.
func (p *Pool) AllocWithData(owner Owner, h value.TextureHandle, data []byte) (value.TextureID, error) {
	id, err := p.Alloc(owner, h)
	if err != nil {
		return 0, err
	}
	if err := p.queue.WriteTexture(p.entries[id].tex, data); err != nil {
		p.Release(id)
		return 0, err
	}
	return id, nil
}

// Replace swaps the texture behind id for a fresh zeroed one with the
// handle's shape. The id and owner are preserved.
func (p *Pool) Replace(id value.TextureID, h value.TextureHandle) error {
	entry, ok := p.entries[id]
	if !ok {
		return &UnknownTextureError{ID: id}
	}
	tex, err := p.create(h, id)
	if err != nil {
		return err
	}
	entry.tex.Destroy()
	p.entries[id] = poolEntry{tex: tex, owner: entry.owner}
	return nil
}

// Get resolves an id to its live texture.
func (p *Pool) Get(id value.TextureID) (Texture, bool) {
	entry, ok := p.entries[id]
	if !ok {
		return nil, false
	}
	return entry.tex, true
}

// Release destroys the texture behind id. System texture ids are permanent
// and ignored.
func (p *Pool) Release(id value.TextureID) {
	if id < userIDStart {
		return
	}
	if entry, ok := p.entries[id]; ok {
		entry.tex.Destroy()
		delete(p.entries, id)
	}
}

// ReleaseOwned destroys every texture tagged with the owner and reports how
// many were released.
func (p *Pool) ReleaseOwned(owner Owner) int {
	released := 0
	for id, entry := range p.entries {
		if entry.owner == owner && id >= userIDStart {
			entry.tex.Destroy()
			delete(p.entries, id)
			released++
		}
	}
	return released
}

// Count returns the number of live textures, system textures included.
func (p *Pool) Count() int { return len(p.entries) }
