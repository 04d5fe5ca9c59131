package imageio

import (
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fsnotify/fsnotify"

	"github.com/vk/grafiek/internal/gpu"
	"github.com/vk/grafiek/internal/ops"
	"github.com/vk/grafiek/internal/signature"
	"github.com/vk/grafiek/internal/value"
)

// Image loads a png or jpeg file into a texture. The file is watched; a
// save on disk marks the node dirty and forces a reload on the next pass.
type Image struct {
	ops.Base

	watcher *fsnotify.Watcher
	log     *slog.Logger
	reload  atomic.Bool

	mu    sync.Mutex
	dirty ops.DirtyFlag
	bound bool
	path  string

	loadedPath string
}

// NewImage returns an image source with no file selected.
func NewImage() *Image { return &Image{} }

func (*Image) Path() ops.OpPath { return ImagePath }

func (im *Image) Setup(ectx *ops.ExecContext, sig *signature.Registry) error {
	signature.AddConfig[string](sig, "path").
		Meta(signature.StringMeta{Kind: signature.StringPath}).
		Tooltip("Image file to load (png or jpeg).")
	signature.AddOutput[value.TextureHandle](sig, "output").
		Meta(signature.TextureMeta{Preview: true}).
		Dimensions(1, 1)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	im.watcher = w
	im.log = ectx.Logger
	go im.watch()
	return nil
}

// BindDirty keeps the node's dirty flag so the watch goroutine can signal
// the engine.
func (im *Image) BindDirty(flag ops.DirtyFlag) {
	im.mu.Lock()
	im.dirty = flag
	im.bound = true
	im.mu.Unlock()
}

func (im *Image) Configure(_ *ops.ExecContext, config value.Inputs, sig *signature.Registry) error {
	path, err := config.Str(0)
	if err != nil {
		return err
	}

	im.mu.Lock()
	old := im.path
	im.path = path
	im.mu.Unlock()
	if path == old {
		return nil
	}

	im.reload.Store(true)
	if old != "" {
		_ = im.watcher.Remove(old)
	}
	if path != "" {
		if err := im.watcher.Add(path); err != nil {
			im.log.Warn("Image file cannot be watched.", "path", path, "error", err)
		}
	}
	return nil
}

func (im *Image) Execute(ectx *ops.ExecContext, _ value.Inputs, out value.Outputs) error {
	im.mu.Lock()
	path := im.path
	im.mu.Unlock()

	h, err := out.Texture(0)
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	if !im.reload.Swap(false) && h.Allocated() && im.loadedPath == path {
		return nil
	}

	pixels, width, height, err := decodeRGBA(path)
	if err != nil {
		return err
	}

	h.Width, h.Height, h.Format = width, height, value.RGBA8
	if err := ectx.EnsureTexture(h); err != nil {
		return err
	}
	tex, ok := ectx.Texture(*h)
	if !ok {
		return &gpu.UnknownTextureError{ID: h.ID}
	}
	if err := ectx.Queue.WriteTexture(tex, pixels); err != nil {
		return err
	}
	if err := ectx.Queue.Submit(); err != nil {
		return err
	}
	im.loadedPath = path
	im.log.Debug("Image loaded.", "path", filepath.Base(path), "width", width, "height", height)
	return nil
}

func (im *Image) Teardown(_ *ops.ExecContext) {
	if im.watcher != nil {
		_ = im.watcher.Close()
	}
}

func (im *Image) watch() {
	for {
		select {
		case ev, ok := <-im.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			im.reload.Store(true)
			im.mu.Lock()
			dirty, bound := im.dirty, im.bound
			im.mu.Unlock()
			if bound {
				dirty.Mark()
			}
		case err, ok := <-im.watcher.Errors:
			if !ok {
				return
			}
			im.log.Error("Image watcher failed.", "error", err)
		}
	}
}

// decodeRGBA reads and decodes the file into tightly packed RGBA8 pixels.
func decodeRGBA(path string) ([]byte, uint32, uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decoding image %s: %w", filepath.Base(path), err)
	}

	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst.Pix, uint32(bounds.Dx()), uint32(bounds.Dy()), nil
}
