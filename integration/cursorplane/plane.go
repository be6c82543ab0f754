// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cursorplane

import (
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/pkg/errors"

	"github.com/gogpu/cursor"
	"github.com/gogpu/cursor/internal/logx"
	"github.com/gogpu/cursor/pixbuf"
)

// Common errors returned by Plane operations.
var (
	// ErrPlaneClosed is returned when drawing on a closed plane.
	ErrPlaneClosed = errors.New("cursorplane: plane is closed")

	// ErrNilDrawer is returned when a nil TextureDrawer is passed.
	ErrNilDrawer = errors.New("cursorplane: nil TextureDrawer")

	// ErrNoTextureCreator is returned when the drawer has no texture creator.
	ErrNoTextureCreator = errors.New("cursorplane: drawer has no TextureCreator")

	// ErrSurfaceCursor is returned for client surface cursors, which the
	// host composites itself.
	ErrSurfaceCursor = errors.New("cursorplane: surface cursor must be composited by the host")

	// ErrUnknownCursor is returned for a RenderCursor of unknown type.
	ErrUnknownCursor = errors.New("cursorplane: unknown render cursor")
)

// textureDestroyer is the interface for destroying textures.
// This matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// Plane uploads cursor images to a GPU texture and draws them at the pointer.
//
// One texture is kept. It is rewritten in place when the next image has
// the same size, and recreated otherwise.
type Plane struct {
	manager *cursor.Manager

	texture    gpucontext.Texture
	oldTexture gpucontext.Texture // replaced texture awaiting destruction
	source     *pixbuf.Buffer     // buffer currently in texture
	uploads    int
	closed     bool
}

// New creates a plane drawing cursors resolved by m. Raster frames are
// converted through m's texture cache and animated by m's clock.
func New(m *cursor.Manager) *Plane {
	return &Plane{manager: m}
}

// Draw draws rc with its hotspot at the pointer position (x, y) in device
// pixels. [cursor.Hidden] draws nothing, and [cursor.SurfaceCursor] returns
// [ErrSurfaceCursor].
func (p *Plane) Draw(dc gpucontext.TextureDrawer, rc cursor.RenderCursor, x, y float32) error {
	if p.closed {
		return ErrPlaneClosed
	}
	if dc == nil {
		return ErrNilDrawer
	}

	buf, hot, err := p.resolve(rc)
	if err != nil || buf == nil {
		return err
	}

	tex, err := p.upload(dc, buf)
	if err != nil {
		return err
	}
	return dc.DrawTexture(tex, x-float32(hot.X), y-float32(hot.Y))
}

// resolve returns the pixels and device-pixel hotspot of rc. A nil buffer
// means there is nothing to draw.
func (p *Plane) resolve(rc cursor.RenderCursor) (*pixbuf.Buffer, image.Point, error) {
	switch c := rc.(type) {
	case cursor.Hidden, nil:
		return nil, image.Point{}, nil
	case cursor.SurfaceCursor:
		return nil, image.Point{}, ErrSurfaceCursor
	case cursor.VectorCursor:
		if c.Buffer.Empty() {
			return nil, image.Point{}, nil
		}
		return c.Buffer, c.Hotspot, nil
	case cursor.NamedCursor:
		textures := p.manager.Textures()
		idx, img := c.Cursor.Frame(p.manager.Clock())
		buf, err := textures.Get(c.Icon, c.Scale, c.Cursor, idx)
		if err != nil {
			return nil, image.Point{}, errors.Wrapf(err, "cursorplane: %s frame %d", c.Icon, idx)
		}
		hx, hy := textures.Hotspot(img, c.Scale)
		return buf, image.Pt(hx, hy), nil
	default:
		return nil, image.Point{}, errors.Wrapf(ErrUnknownCursor, "%T", rc)
	}
}

// upload makes buf the texture content, reusing the texture when possible.
func (p *Plane) upload(dc gpucontext.TextureDrawer, buf *pixbuf.Buffer) (gpucontext.Texture, error) {
	if buf == p.source && p.texture != nil {
		return p.texture, nil
	}
	// textures take RGBA; buffers are BGRA
	data := buf.RGBA().Pix

	if p.texture != nil && p.texture.Width() == buf.Width && p.texture.Height() == buf.Height {
		if updater, ok := p.texture.(gpucontext.TextureUpdater); ok {
			if err := updater.UpdateData(data); err != nil {
				return nil, errors.Wrap(err, "cursorplane: texture update failed")
			}
			p.source = buf
			p.uploads++
			return p.texture, nil
		}
	}

	creator := dc.TextureCreator()
	if creator == nil {
		return nil, ErrNoTextureCreator
	}
	tex, err := creator.NewTextureFromRGBA(buf.Width, buf.Height, data)
	if err != nil {
		return nil, errors.Wrap(err, "cursorplane: NewTextureFromRGBA failed")
	}
	if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
		pt.SetPremultiplied(true)
	}

	// The GPU may still read the previous texture this frame, so it is
	// destroyed one replacement later.
	destroy(p.oldTexture)
	p.oldTexture = p.texture
	p.texture = tex
	p.source = buf
	p.uploads++
	logx.Logger().Debug("cursorplane: texture created", "w", buf.Width, "h", buf.Height)
	return tex, nil
}

// Uploads returns how many times pixel data was sent to the GPU.
func (p *Plane) Uploads() int { return p.uploads }

// Texture returns the current GPU texture, or nil before the first Draw.
func (p *Plane) Texture() gpucontext.Texture { return p.texture }

// Close releases the textures. Close is idempotent.
func (p *Plane) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	destroy(p.oldTexture)
	destroy(p.texture)
	p.oldTexture, p.texture, p.source = nil, nil, nil
	return nil
}

func destroy(tex gpucontext.Texture) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}
