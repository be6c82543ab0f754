package vector

import (
	"image"
	"math"

	"github.com/pkg/errors"

	"github.com/gogpu/cursor/pixbuf"
	"github.com/gogpu/cursor/theme"
)

// Errors returned by the store and renderers.
var (
	// ErrNotFound is returned for cursor ids missing from the theme.
	ErrNotFound = errors.New("vector: cursor not found")

	// ErrAsset is returned when a cursor's source document cannot be read.
	ErrAsset = errors.New("vector: cursor source unreadable")

	// ErrRender is returned for malformed document content.
	ErrRender = errors.New("vector: cursor document invalid")
)

// Frame is one rendered cursor image.
type Frame struct {
	Buffer *pixbuf.Buffer
	// Hotspot in device pixels.
	Hotspot image.Point
	// Index is the frame actually drawn after wrapping.
	Index uint32
}

// Renderer renders one vector cursor. It is implemented only by
// [*PathScene] and [*KeyframeComposition].
type Renderer interface {
	// ID returns the cursor id the renderer was built for.
	ID() string

	// Format returns the source document format.
	Format() theme.Format

	// RenderFrame renders frame at the integer device scale.
	RenderFrame(frame uint32, scale int) (Frame, error)

	// Hotspot returns the declared hotspot in logical pixels.
	Hotspot() image.Point

	// TotalFrames returns the number of frames in one playback cycle.
	TotalFrames() uint32

	// FrameDuration returns the display time of one frame in milliseconds.
	FrameDuration() uint32

	sealed()
}

// maxDimension bounds the width and height of a rendered frame, logical or
// scaled. It is the limit Xcursor images carry.
const maxDimension = 0x7fff

// checkSize rejects document dimensions no frame can be rendered at.
func checkSize(id string, width, height float64) error {
	if !finiteIn(width) || !finiteIn(height) {
		return errors.Wrapf(ErrRender, "cursor %q: size %gx%g", id, width, height)
	}
	return nil
}

func finiteIn(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= maxDimension
}

// frameSize returns the pixel size of a width x height document at scale, or
// ErrRender when the scaled frame would exceed maxDimension.
func frameSize(id string, width, height float64, scale int) (int, int, error) {
	sw, sh := width*float64(scale), height*float64(scale)
	if !finiteIn(sw) || !finiteIn(sh) {
		return 0, 0, errors.Wrapf(ErrRender, "cursor %q: %gx%g at scale %d exceeds %d pixels",
			id, width, height, scale, maxDimension)
	}
	return scaledSize(width, scale), scaledSize(height, scale), nil
}

// scaledSize returns ceil(n * scale) for a document dimension.
func scaledSize(n float64, scale int) int {
	v := n * float64(scale)
	i := int(v)
	if float64(i) < v {
		i++
	}
	return max(i, 0)
}

func hotspotOrOrigin(p *image.Point) image.Point {
	if p == nil {
		return image.Point{}
	}
	return *p
}
