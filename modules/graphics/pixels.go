package graphics

import (
	"encoding/binary"
	"math"

	"github.com/vk/grafiek/internal/value"
)

// rgba is one texel in linear float form, the common currency the pixel
// codecs below convert through.
type rgba struct {
	r, g, b, a float32
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// putPixel encodes one texel at byte offset off. The buffer must hold a
// full texel at that offset.
func putPixel(format value.TextureFormat, dst []byte, off int, px rgba) {
	switch format {
	case value.RGBA16:
		binary.LittleEndian.PutUint16(dst[off:], uint16(clamp01(px.r)*65535+0.5))
		binary.LittleEndian.PutUint16(dst[off+2:], uint16(clamp01(px.g)*65535+0.5))
		binary.LittleEndian.PutUint16(dst[off+4:], uint16(clamp01(px.b)*65535+0.5))
		binary.LittleEndian.PutUint16(dst[off+6:], uint16(clamp01(px.a)*65535+0.5))
	case value.RGBAF32:
		binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(px.r))
		binary.LittleEndian.PutUint32(dst[off+4:], math.Float32bits(px.g))
		binary.LittleEndian.PutUint32(dst[off+8:], math.Float32bits(px.b))
		binary.LittleEndian.PutUint32(dst[off+12:], math.Float32bits(px.a))
	case value.BGRA8:
		dst[off] = uint8(clamp01(px.b)*255 + 0.5)
		dst[off+1] = uint8(clamp01(px.g)*255 + 0.5)
		dst[off+2] = uint8(clamp01(px.r)*255 + 0.5)
		dst[off+3] = uint8(clamp01(px.a)*255 + 0.5)
	default:
		dst[off] = uint8(clamp01(px.r)*255 + 0.5)
		dst[off+1] = uint8(clamp01(px.g)*255 + 0.5)
		dst[off+2] = uint8(clamp01(px.b)*255 + 0.5)
		dst[off+3] = uint8(clamp01(px.a)*255 + 0.5)
	}
}

// getPixel decodes one texel at byte offset off.
func getPixel(format value.TextureFormat, src []byte, off int) rgba {
	switch format {
	case value.RGBA16:
		return rgba{
			r: float32(binary.LittleEndian.Uint16(src[off:])) / 65535,
			g: float32(binary.LittleEndian.Uint16(src[off+2:])) / 65535,
			b: float32(binary.LittleEndian.Uint16(src[off+4:])) / 65535,
			a: float32(binary.LittleEndian.Uint16(src[off+6:])) / 65535,
		}
	case value.RGBAF32:
		return rgba{
			r: math.Float32frombits(binary.LittleEndian.Uint32(src[off:])),
			g: math.Float32frombits(binary.LittleEndian.Uint32(src[off+4:])),
			b: math.Float32frombits(binary.LittleEndian.Uint32(src[off+8:])),
			a: math.Float32frombits(binary.LittleEndian.Uint32(src[off+12:])),
		}
	case value.BGRA8:
		return rgba{
			r: float32(src[off+2]) / 255,
			g: float32(src[off+1]) / 255,
			b: float32(src[off]) / 255,
			a: float32(src[off+3]) / 255,
		}
	default:
		return rgba{
			r: float32(src[off]) / 255,
			g: float32(src[off+1]) / 255,
			b: float32(src[off+2]) / 255,
			a: float32(src[off+3]) / 255,
		}
	}
}

// fill renders a constant color into a tightly packed buffer covering the
// handle's texture.
func fill(h value.TextureHandle, px rgba) []byte {
	stride := int(h.Format.BytesPerPixel())
	buf := make([]byte, h.ByteSize())
	for off := 0; off < len(buf); off += stride {
		putPixel(h.Format, buf, off, px)
	}
	return buf
}
