package gpu

import (
	"errors"
	"fmt"
)

// ErrForeignTexture reports a texture handed to a backend that did not
// create it.
var ErrForeignTexture = errors.New("texture was not created by this backend")

const maxDimension = 16384

// SoftwareDevice is the in-memory reference backend.
type SoftwareDevice struct{}

// SoftwareQueue transfers pixel data for textures created by a
// SoftwareDevice.
type SoftwareQueue struct{}

// NewSoftware returns a software device and its queue.
func NewSoftware() (*SoftwareDevice, *SoftwareQueue) {
	return &SoftwareDevice{}, &SoftwareQueue{}
}

type softwareTexture struct {
	desc TextureDesc
	pix  []byte
}

func (t *softwareTexture) Desc() TextureDesc { return t.desc }

func (t *softwareTexture) Destroy() { t.pix = nil }

// CreateTexture allocates a zeroed pixel buffer for the descriptor.
func (d *SoftwareDevice) CreateTexture(desc TextureDesc) (Texture, error) {
	if desc.Width == 0 || desc.Height == 0 || desc.Width > maxDimension || desc.Height > maxDimension {
		return nil, fmt.Errorf("invalid texture dimensions %dx%d", desc.Width, desc.Height)
	}
	return &softwareTexture{desc: desc, pix: make([]byte, desc.ByteSize())}, nil
}

func (q *SoftwareQueue) WriteTexture(t Texture, data []byte) error {
	st, ok := t.(*softwareTexture)
	if !ok {
		return ErrForeignTexture
	}
	if len(data) != len(st.pix) {
		return &PixelSizeError{Want: len(st.pix), Got: len(data)}
	}
	copy(st.pix, data)
	return nil
}

func (q *SoftwareQueue) ReadTexture(t Texture) ([]byte, error) {
	st, ok := t.(*softwareTexture)
	if !ok {
		return nil, ErrForeignTexture
	}
	out := make([]byte, len(st.pix))
	copy(out, st.pix)
	return out, nil
}

// Submit is a no-op; software work completes synchronously.
func (q *SoftwareQueue) Submit() error { return nil }
