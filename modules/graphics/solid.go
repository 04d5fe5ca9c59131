package graphics

import (
	"fmt"

	"github.com/vk/grafiek/internal/gpu"
	"github.com/vk/grafiek/internal/ops"
	"github.com/vk/grafiek/internal/signature"
	"github.com/vk/grafiek/internal/value"
)

const (
	defaultSide = 512
	maxSide     = 8192
)

// Solid renders a constant color. Dimensions and format come from config;
// the color channels are inputs so upstream nodes can drive them.
type Solid struct {
	ops.Base
}

// NewSolid returns a solid color operator rendering opaque white at 512²
// until configured otherwise.
func NewSolid() *Solid { return &Solid{} }

func (*Solid) Path() ops.OpPath { return SolidPath }

func (*Solid) Setup(_ *ops.ExecContext, sig *signature.Registry) error {
	addRenderConfig(sig)
	for _, name := range []string{"r", "g", "b", "a"} {
		signature.AddInput[float32](sig, name).
			Meta(signature.FloatRange{Min: 0, Max: 1, Step: 0.01}).
			Default(1)
	}
	signature.AddOutput[value.TextureHandle](sig, "output").
		Meta(signature.TextureMeta{Preview: true}).
		Dimensions(defaultSide, defaultSide)
	return nil
}

func (*Solid) Configure(_ *ops.ExecContext, config value.Inputs, sig *signature.Registry) error {
	format, width, height, preview, err := renderConfig(config)
	if err != nil {
		return err
	}
	sig.ClearOutputs()
	signature.AddOutput[value.TextureHandle](sig, "output").
		Meta(signature.TextureMeta{Preview: preview}).
		Dimensions(width, height).
		Format(format)
	return nil
}

func (*Solid) Execute(ectx *ops.ExecContext, in value.Inputs, out value.Outputs) error {
	var px rgba
	for i, ch := range []*float32{&px.r, &px.g, &px.b, &px.a} {
		v, err := in.F32(i)
		if err != nil {
			return err
		}
		*ch = v
	}

	h, err := out.Texture(0)
	if err != nil {
		return err
	}
	if err := ectx.EnsureTexture(h); err != nil {
		return err
	}
	tex, ok := ectx.Texture(*h)
	if !ok {
		return &gpu.UnknownTextureError{ID: h.ID}
	}
	if err := ectx.Queue.WriteTexture(tex, fill(*h, px)); err != nil {
		return err
	}
	return ectx.Queue.Submit()
}

// addRenderConfig declares the config shared by texture generators: pixel
// format, fixed output dimensions, and an on-node preview toggle.
func addRenderConfig(sig *signature.Registry) {
	signature.AddConfig[int32](sig, "format").
		Meta(signature.IntEnum{Options: []signature.EnumOption{
			{Label: "RGBA8", Value: int32(value.RGBA8)},
			{Label: "RGBA16", Value: int32(value.RGBA16)},
			{Label: "RGBAf32", Value: int32(value.RGBAF32)},
		}}).
		Default(int32(value.RGBA8))
	signature.AddConfig[int32](sig, "width").
		Meta(signature.IntRange{Min: 1, Max: maxSide, Step: 1}).
		Default(defaultSide).
		Interactive(false)
	signature.AddConfig[int32](sig, "height").
		Meta(signature.IntRange{Min: 1, Max: maxSide, Step: 1}).
		Default(defaultSide).
		Interactive(false)
	signature.AddConfig[bool](sig, "preview").
		Default(true).
		OnNodeBody(true)
}

// renderConfig extracts and bounds the shared generator config.
func renderConfig(config value.Inputs) (value.TextureFormat, uint32, uint32, bool, error) {
	format, err := config.I32(0)
	if err != nil {
		return 0, 0, 0, false, err
	}
	if format < int32(value.RGBA8) || format > int32(value.BGRA8) {
		return 0, 0, 0, false, fmt.Errorf("unknown texture format %d", format)
	}
	width, err := config.I32(1)
	if err != nil {
		return 0, 0, 0, false, err
	}
	height, err := config.I32(2)
	if err != nil {
		return 0, 0, 0, false, err
	}
	preview, err := config.Bool(3)
	if err != nil {
		return 0, 0, 0, false, err
	}
	clamp := func(v int32) uint32 {
		if v < 1 {
			return 1
		}
		if v > maxSide {
			return maxSide
		}
		return uint32(v)
	}
	return value.TextureFormat(format), clamp(width), clamp(height), preview, nil
}
