// Package gpu abstracts the texture backend the engine renders with. The
// interfaces mirror a device/queue split so a hardware implementation can
// slot in; the in-tree backend is a software one that keeps pixels
// addressable by the CPU, which is what the built-in graphics operators and
// the tests run against.
package gpu

import (
	"fmt"

	"github.com/vk/grafiek/internal/value"
)

// TextureDesc describes one texture allocation.
type TextureDesc struct {
	Width  uint32
	Height uint32
	Format value.TextureFormat
	Label  string
}

// ByteSize returns the tightly packed pixel buffer size for the texture.
func (d TextureDesc) ByteSize() int {
	return int(d.Width) * int(d.Height) * int(d.Format.BytesPerPixel())
}

// Texture is a backend-resident 2D image.
type Texture interface {
	// Desc returns the descriptor the texture was created with.
	Desc() TextureDesc
	// Destroy releases the backing storage. The texture must not be used
	// afterwards.
	Destroy()
}

// Device creates backend resources.
type Device interface {
	CreateTexture(desc TextureDesc) (Texture, error)
}

// Queue moves pixel data and submits encoded work.
type Queue interface {
	// WriteTexture uploads a tightly packed pixel buffer covering the
	// whole texture.
	WriteTexture(t Texture, data []byte) error
	// ReadTexture downloads the texture contents as a tightly packed
	// pixel buffer.
	ReadTexture(t Texture) ([]byte, error)
	// Submit flushes pending work to the device.
	Submit() error
}

// Owner tags a pool entry with who releases it. Node ids start at one, so
// the zero Owner marks engine-lifetime textures.
type Owner uint64

// OwnerEngine marks textures that live as long as the engine itself.
const OwnerEngine Owner = 0

// UnknownTextureError reports an operation on a texture id that is not in
// the pool.
type UnknownTextureError struct {
	ID value.TextureID
}

func (e *UnknownTextureError) Error() string {
	return fmt.Sprintf("no texture with id %d in the pool", e.ID)
}

// PixelSizeError reports a pixel buffer that does not cover a texture.
type PixelSizeError struct {
	Want int
	Got  int
}

func (e *PixelSizeError) Error() string {
	return fmt.Sprintf("pixel buffer holds %d bytes, texture needs %d", e.Got, e.Want)
}
