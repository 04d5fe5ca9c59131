package value

// TextureID is a stable identifier into the engine's texture pool. Pool ids
// survive texture replacement, so UI caches and downstream nodes can key by
// id. The zero id means the handle is not backed by a pool texture yet.
type TextureID uint64

// TextureFormat enumerates the pixel layouts the pool can allocate.
type TextureFormat uint8

const (
	RGBA8 TextureFormat = iota
	RGBA16
	RGBAF32
	BGRA8
)

// BytesPerPixel returns the size of one texel in bytes.
func (f TextureFormat) BytesPerPixel() uint32 {
	switch f {
	case RGBA16:
		return 8
	case RGBAF32:
		return 16
	}
	return 4
}

func (f TextureFormat) String() string {
	switch f {
	case RGBA8:
		return "rgba8"
	case RGBA16:
		return "rgba16"
	case RGBAF32:
		return "rgbaf32"
	case BGRA8:
		return "bgra8"
	}
	return "unknown"
}

// TextureHandle is the value-level reference to a texture: a pool id plus
// the dimensions and format the texture was allocated with. The handle
// itself carries no pixel data.
type TextureHandle struct {
	ID     TextureID
	Width  uint32
	Height uint32
	Format TextureFormat
}

// Allocated reports whether the handle points at a pool texture.
func (h TextureHandle) Allocated() bool { return h.ID != 0 }

// SameShape reports whether two handles agree on dimensions and format,
// ignoring the pool id.
func (h TextureHandle) SameShape(other TextureHandle) bool {
	return h.Width == other.Width && h.Height == other.Height && h.Format == other.Format
}

// ByteSize returns the size of the texture's pixel contents in bytes.
func (h TextureHandle) ByteSize() int {
	return int(h.Width) * int(h.Height) * int(h.Format.BytesPerPixel())
}
