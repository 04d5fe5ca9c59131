package graphics

import (
	"github.com/vk/grafiek/internal/gpu"
	"github.com/vk/grafiek/internal/ops"
	"github.com/vk/grafiek/internal/signature"
	"github.com/vk/grafiek/internal/value"
)

// Grayscale converts its input texture to luma, preserving alpha. The
// output tracks the input's dimensions and format at execution time.
type Grayscale struct {
	ops.Base
}

// NewGrayscale returns a grayscale filter.
func NewGrayscale() *Grayscale { return &Grayscale{} }

func (*Grayscale) Path() ops.OpPath { return GrayscalePath }

func (*Grayscale) Setup(_ *ops.ExecContext, sig *signature.Registry) error {
	signature.AddConfig[bool](sig, "preview").
		Default(true).
		OnNodeBody(true)
	signature.AddInput[value.TextureHandle](sig, "input")
	signature.AddOutput[value.TextureHandle](sig, "output").
		Meta(signature.TextureMeta{Preview: true}).
		Dimensions(defaultSide, defaultSide)
	return nil
}

func (*Grayscale) Configure(_ *ops.ExecContext, config value.Inputs, sig *signature.Registry) error {
	preview, err := config.Bool(0)
	if err != nil {
		return err
	}
	sig.ClearOutputs()
	signature.AddOutput[value.TextureHandle](sig, "output").
		Meta(signature.TextureMeta{Preview: preview}).
		Dimensions(defaultSide, defaultSide)
	return nil
}

func (*Grayscale) Execute(ectx *ops.ExecContext, in value.Inputs, out value.Outputs) error {
	src, err := in.Texture(0)
	if err != nil {
		return err
	}
	if !src.Allocated() {
		return nil
	}
	srcTex, ok := ectx.Texture(src)
	if !ok {
		return nil
	}

	h, err := out.Texture(0)
	if err != nil {
		return err
	}
	h.Width, h.Height, h.Format = src.Width, src.Height, src.Format
	if err := ectx.EnsureTexture(h); err != nil {
		return err
	}
	dstTex, ok := ectx.Texture(*h)
	if !ok {
		return &gpu.UnknownTextureError{ID: h.ID}
	}

	pixels, err := ectx.Queue.ReadTexture(srcTex)
	if err != nil {
		return err
	}
	stride := int(src.Format.BytesPerPixel())
	for off := 0; off+stride <= len(pixels); off += stride {
		px := getPixel(src.Format, pixels, off)
		y := 0.299*px.r + 0.587*px.g + 0.114*px.b
		putPixel(src.Format, pixels, off, rgba{r: y, g: y, b: y, a: px.a})
	}
	if err := ectx.Queue.WriteTexture(dstTex, pixels); err != nil {
		return err
	}
	return ectx.Queue.Submit()
}
