// Package pixbuf provides the premultiplied pixel buffer handed to the
// compositor for every rendered cursor frame.
//
// Buffers are stored in the compositor's channel order: 4 bytes per pixel,
// B, G, R, A in memory (ARGB8888 little-endian, [gputypes.TextureFormatBGRA8Unorm]),
// with color channels premultiplied by alpha.
package pixbuf

import (
	"image"

	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
)

// BytesPerPixel is the size of one BGRA8 pixel.
const BytesPerPixel = 4

// Common errors for buffer construction.
var (
	// ErrInvalidDimensions is returned when width or height is negative.
	ErrInvalidDimensions = errors.New("pixbuf: invalid dimensions")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("pixbuf: data buffer too small")
)

// Buffer is a premultiplied BGRA8 pixel buffer.
//
// Scale records the device scale the buffer was rendered for so the host can
// map it back to logical size. Buffers are not retained by the cursor
// packages once returned; the caller owns them.
type Buffer struct {
	Width  int
	Height int
	Stride int
	Scale  int
	Format gputypes.TextureFormat
	Pix    []byte
}

// New creates a transparent buffer. Negative dimensions are clamped to zero
// and a scale below 1 is stored as 1.
func New(width, height, scale int) *Buffer {
	width = max(width, 0)
	height = max(height, 0)
	return &Buffer{
		Width:  width,
		Height: height,
		Stride: width * BytesPerPixel,
		Scale:  max(scale, 1),
		Format: gputypes.TextureFormatBGRA8Unorm,
		Pix:    make([]byte, width*height*BytesPerPixel),
	}
}

// FromBGRA copies tightly packed premultiplied BGRA8 data into a new buffer.
func FromBGRA(pix []byte, width, height, scale int) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "%dx%d", width, height)
	}
	need := width * height * BytesPerPixel
	if len(pix) < need {
		return nil, errors.Wrapf(ErrDataTooSmall, "have %d bytes, need %d", len(pix), need)
	}
	b := New(width, height, scale)
	copy(b.Pix, pix[:need])
	return b, nil
}

// FromRGBA converts a premultiplied RGBA image into a BGRA buffer.
func FromRGBA(img *image.RGBA, scale int) *Buffer {
	bounds := img.Bounds()
	b := New(bounds.Dx(), bounds.Dy(), scale)
	for y := range b.Height {
		src := img.Pix[y*img.Stride : y*img.Stride+b.Width*BytesPerPixel]
		dst := b.Pix[y*b.Stride : (y+1)*b.Stride]
		swizzle(dst, src)
	}
	return b
}

// swizzle swaps the first and third byte of every pixel. It converts in
// both directions between RGBA and BGRA.
func swizzle(dst, src []byte) {
	for i := 0; i+3 < len(src) && i+3 < len(dst); i += BytesPerPixel {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
}

// Bounds returns the pixel rectangle of the buffer.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// Empty reports whether the buffer has no pixels.
func (b *Buffer) Empty() bool {
	return b == nil || b.Width == 0 || b.Height == 0
}

// Offset returns the byte offset of pixel (x, y), or -1 if outside the buffer.
func (b *Buffer) Offset(x, y int) int {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return -1
	}
	return y*b.Stride + x*BytesPerPixel
}

// Pixel returns the premultiplied BGRA bytes at (x, y).
// Pixels outside the buffer are transparent.
func (b *Buffer) Pixel(x, y int) [4]byte {
	i := b.Offset(x, y)
	if i < 0 {
		return [4]byte{}
	}
	return [4]byte{b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]}
}

// SetPixel overwrites the pixel at (x, y). Writes outside the buffer are dropped.
func (b *Buffer) SetPixel(x, y int, c [4]byte) {
	i := b.Offset(x, y)
	if i < 0 {
		return
	}
	copy(b.Pix[i:i+BytesPerPixel], c[:])
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	c := *b
	c.Pix = append([]byte(nil), b.Pix...)
	return &c
}

// RGBA converts the buffer into a premultiplied *image.RGBA.
func (b *Buffer) RGBA() *image.RGBA {
	img := image.NewRGBA(b.Bounds())
	for y := range b.Height {
		swizzle(img.Pix[y*img.Stride:y*img.Stride+b.Width*BytesPerPixel], b.Pix[y*b.Stride:])
	}
	return img
}

// Resample returns a copy scaled to width x height with Catmull-Rom filtering.
// Filtering happens on premultiplied data, so edges do not pick up dark fringes.
func (b *Buffer) Resample(width, height int) *Buffer {
	if width == b.Width && height == b.Height {
		return b.Clone()
	}
	dst := image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	if !b.Empty() && !dst.Rect.Empty() {
		xdraw.CatmullRom.Scale(dst, dst.Rect, b.RGBA(), b.Bounds(), xdraw.Src, nil)
	}
	return FromRGBA(dst, b.Scale)
}

// Premultiply converts a straight-alpha RGBA color into premultiplied BGRA bytes.
func Premultiply(r, g, bl, a uint8) [4]byte {
	mul := func(c uint8) uint8 {
		return uint8((uint16(c)*uint16(a) + 127) / 255)
	}
	return [4]byte{mul(bl), mul(g), mul(r), a}
}
