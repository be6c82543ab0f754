package vector

import (
	"bytes"
	"encoding/xml"
	"image"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/net/html/charset"

	"github.com/gogpu/cursor/pixbuf"
	"github.com/gogpu/cursor/theme"
)

// PathScene renders an SVG cursor. It has a single static frame.
type PathScene struct {
	id       string
	hotspot  image.Point
	baseSize int
	width    float64
	height   float64

	// mu serializes drawing: the parsed icon carries its target transform.
	mu   sync.Mutex
	icon *oksvg.SvgIcon
}

// NewPathScene parses an SVG document.
//
// The intrinsic size is the root element's width and height in pixels. A
// missing dimension follows the viewBox aspect ratio, and with neither
// attribute the viewBox size is used. An empty size is an error.
func NewPathScene(id string, data []byte, hotspot *image.Point, baseSize int) (*PathScene, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrapf(ErrRender, "parse svg %q: %v", id, err)
	}
	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return nil, errors.Wrapf(ErrRender, "svg %q has empty viewBox", id)
	}

	w, h := documentSize(data)
	switch {
	case w > 0 && h > 0:
	case w > 0:
		h = w * vh / vw
	case h > 0:
		w = h * vw / vh
	default:
		w, h = vw, vh
	}
	if err := checkSize(id, w, h); err != nil {
		return nil, err
	}

	return &PathScene{
		id:       id,
		hotspot:  hotspotOrOrigin(hotspot),
		baseSize: baseSize,
		width:    w,
		height:   h,
		icon:     icon,
	}, nil
}

// documentSize reads the width and height attributes of the root svg
// element. A dimension that is missing, relative or not a number is 0.
func documentSize(data []byte) (width, height float64) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	for {
		tok, err := dec.Token()
		if err != nil {
			return 0, 0
		}
		el, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if el.Name.Local != "svg" {
			return 0, 0
		}
		for _, attr := range el.Attr {
			switch attr.Name.Local {
			case "width":
				width = pixelLength(attr.Value)
			case "height":
				height = pixelLength(attr.Value)
			}
		}
		return width, height
	}
}

// pixelLength parses an absolute length in pixels, with or without the px
// suffix.
func pixelLength(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}

func (s *PathScene) sealed() {}

// ID returns the cursor id.
func (s *PathScene) ID() string { return s.id }

// Format returns [theme.FormatPathScene].
func (s *PathScene) Format() theme.Format { return theme.FormatPathScene }

// Size returns the intrinsic document size.
func (s *PathScene) Size() (width, height float64) { return s.width, s.height }

// Hotspot returns the declared hotspot in logical pixels.
func (s *PathScene) Hotspot() image.Point { return s.hotspot }

// TotalFrames is always 1.
func (s *PathScene) TotalFrames() uint32 { return 1 }

// FrameDuration is always 0.
func (s *PathScene) FrameDuration() uint32 { return 0 }

// RenderFrame rasterizes the scene at ceil(size * scale). frame is ignored.
// A scaled size beyond 0x7fff pixels fails with [ErrRender].
func (s *PathScene) RenderFrame(_ uint32, scale int) (Frame, error) {
	scale = max(scale, 1)
	w, h, err := frameSize(s.id, s.width, s.height, scale)
	if err != nil {
		return Frame{}, err
	}
	if w == 0 || h == 0 {
		return Frame{}, errors.Wrapf(ErrRender, "svg %q renders to %dx%d", s.id, w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)

	s.mu.Lock()
	s.icon.SetTarget(0, 0, s.width*float64(scale), s.height*float64(scale))
	s.icon.Draw(dasher, 1)
	s.mu.Unlock()

	return Frame{
		Buffer:  pixbuf.FromRGBA(img, scale),
		Hotspot: s.hotspot.Mul(scale),
	}, nil
}
