package cursor

import (
	"image"

	"github.com/gogpu/cursor/pixbuf"
	"github.com/gogpu/cursor/xcursor"
)

// Surface is a client-provided cursor surface, supplied by the display
// protocol layer.
type Surface interface {
	// Alive reports whether the client still holds the surface.
	Alive() bool
	// Hotspot returns the hotspot the client attached, in logical pixels.
	Hotspot() image.Point
}

// ImageStatus is what the client asked the cursor to look like. It is one of
// [StatusHidden], [StatusSurface] or [StatusNamed].
type ImageStatus interface {
	imageStatus()
}

// StatusHidden hides the cursor.
type StatusHidden struct{}

// StatusSurface shows a client surface.
type StatusSurface struct {
	Surface Surface
}

// StatusNamed shows a named icon from the theme.
type StatusNamed struct {
	Icon Icon
}

func (StatusHidden) imageStatus()  {}
func (StatusSurface) imageStatus() {}
func (StatusNamed) imageStatus()   {}

// RenderCursor is the cursor image resolved for one frame. It is one of
// [Hidden], [SurfaceCursor], [NamedCursor] or [VectorCursor].
type RenderCursor interface {
	renderCursor()
}

// Hidden draws nothing.
type Hidden struct{}

// SurfaceCursor is composited by the host from the client surface.
type SurfaceCursor struct {
	// Hotspot in logical pixels.
	Hotspot image.Point
	Surface Surface
}

// NamedCursor is a raster cursor from the Xcursor theme. The frame to draw
// is picked with Cursor.Frame.
type NamedCursor struct {
	Icon   Icon
	Scale  int
	Cursor *xcursor.FrameSet
}

// VectorCursor is a rendered vector cursor frame.
type VectorCursor struct {
	// Hotspot in device pixels.
	Hotspot image.Point
	Buffer  *pixbuf.Buffer

	// CursorID is the vector id shown, the target id while transitioning.
	CursorID string
	// Frame is the frame index drawn.
	Frame uint32
}

func (Hidden) renderCursor()        {}
func (SurfaceCursor) renderCursor() {}
func (NamedCursor) renderCursor()   {}
func (VectorCursor) renderCursor()  {}
