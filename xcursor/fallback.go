package xcursor

import (
	"bytes"
	_ "embed"
)

// fallbackPix is a 64x64 left pointing arrow, premultiplied BGRA.
//
//go:embed fallback.rgba
var fallbackPix []byte

const (
	fallbackSize    = 32
	fallbackExtent  = 64
	fallbackHotspot = 1
)

// Fallback returns the built-in arrow cursor, used when a theme provides no
// default pointer at all. Each call returns its own copy of the pixels.
func Fallback() *FrameSet {
	return &FrameSet{images: []Image{{
		Size:   fallbackSize,
		Width:  fallbackExtent,
		Height: fallbackExtent,
		XHot:   fallbackHotspot,
		YHot:   fallbackHotspot,
		Pix:    bytes.Clone(fallbackPix),
	}}}
}
