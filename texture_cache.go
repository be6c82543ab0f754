package cursor

import (
	"github.com/pkg/errors"

	"github.com/gogpu/cursor/internal/cache"
	"github.com/gogpu/cursor/pixbuf"
	"github.com/gogpu/cursor/xcursor"
)

// ErrFrameIndex is returned for a frame index outside a cursor's frames.
var ErrFrameIndex = errors.New("cursor: frame index out of range")

type textureKey struct {
	icon  Icon
	scale int
}

// TextureCache converts raster cursor frames to pixel buffers once per
// (icon, scale) pair.
type TextureCache struct {
	entries *cache.Cache[textureKey, []*pixbuf.Buffer]

	// size is the logical cursor size; with resample set, frames are scaled
	// to size*scale when their nominal size differs.
	size     int
	resample bool
}

// NewTextureCache creates a cache for cursors of the given logical size.
func NewTextureCache(size int, resample bool) *TextureCache {
	return &TextureCache{
		entries:  cache.New[textureKey, []*pixbuf.Buffer](),
		size:     size,
		resample: resample,
	}
}

// Get returns frame idx of set as a pixel buffer.
//
// All frames of set are converted on the first call for (icon, scale), so
// set must be the frame set the manager resolves for that pair.
func (c *TextureCache) Get(icon Icon, scale int, set *xcursor.FrameSet, idx int) (*pixbuf.Buffer, error) {
	frames, err := c.entries.Load(textureKey{icon, scale}, func() ([]*pixbuf.Buffer, error) {
		return c.convert(set, scale)
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(frames) {
		return nil, errors.Wrapf(ErrFrameIndex, "%s: %d of %d", icon, idx, len(frames))
	}
	return frames[idx], nil
}

func (c *TextureCache) convert(set *xcursor.FrameSet, scale int) ([]*pixbuf.Buffer, error) {
	target := c.size * scale
	images := set.Frames()
	out := make([]*pixbuf.Buffer, 0, len(images))
	for i, img := range images {
		buf, err := pixbuf.FromBGRA(img.Pix, int(img.Width), int(img.Height), scale)
		if err != nil {
			return nil, errors.Wrapf(err, "frame %d", i)
		}
		if c.resample && target > 0 && img.Size > 0 && int(img.Size) != target {
			w := int(img.Width) * target / int(img.Size)
			h := int(img.Height) * target / int(img.Size)
			buf = buf.Resample(w, h)
		}
		out = append(out, buf)
	}
	return out, nil
}

// Hotspot returns the hotspot of frame img in the buffer Get produces for it.
func (c *TextureCache) Hotspot(img xcursor.Image, scale int) (x, y int) {
	target := c.size * scale
	if c.resample && target > 0 && img.Size > 0 && int(img.Size) != target {
		return int(img.XHot) * target / int(img.Size), int(img.YHot) * target / int(img.Size)
	}
	return int(img.XHot), int(img.YHot)
}

// Clear drops every converted frame.
func (c *TextureCache) Clear() {
	c.entries.Clear()
}

// Len returns the number of cached (icon, scale) pairs.
func (c *TextureCache) Len() int {
	return c.entries.Len()
}
