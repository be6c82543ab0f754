package vector

import (
	"encoding/json"
	"image"
	"math"

	"github.com/pkg/errors"

	"github.com/gogpu/cursor/internal/raster"
	"github.com/gogpu/cursor/pixbuf"
	"github.com/gogpu/cursor/theme"
)

// Composition defaults for fields a document omits.
const (
	defaultCompositionSize      = 24
	defaultCompositionFrameRate = 60
	defaultFrameDuration        = 16
)

// segmentIndices splits the 4-vertex segment approximation into two triangles.
var segmentIndices = []uint16{0, 1, 2, 2, 1, 3}

// primitive is one extracted path: vertices in document space, a triangle
// index list and optional paint.
type primitive struct {
	vertices []raster.Vertex
	indices  []uint16

	fill      *[4]byte
	stroke    *[4]byte
	lineWidth float32
}

// KeyframeComposition renders a Lottie-like JSON cursor.
//
// Only the shape subset needed for flat cursor glyphs is understood: groups
// ("gr") holding paths ("sh"), fills ("fl") and strokes ("st"). Each path
// contributes a single cubic segment approximated by its four control
// vertices, not a flattened curve. Keyframes are not interpolated; every
// frame renders the same primitives.
type KeyframeComposition struct {
	id          string
	hotspot     image.Point
	baseSize    int
	width       float64
	height      float64
	frameRate   float64
	totalFrames uint32
	primitives  []primitive
}

// NewKeyframeComposition parses a composition document.
func NewKeyframeComposition(id string, data []byte, hotspot *image.Point, baseSize int) (*KeyframeComposition, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(ErrRender, "parse composition %q: %v", id, err)
	}

	k := &KeyframeComposition{
		id:        id,
		hotspot:   hotspotOrOrigin(hotspot),
		baseSize:  baseSize,
		width:     number(doc["w"], defaultCompositionSize),
		height:    number(doc["h"], defaultCompositionSize),
		frameRate: number(doc["fr"], defaultCompositionFrameRate),
	}

	if err := checkSize(id, k.width, k.height); err != nil {
		return nil, err
	}
	if out := number(doc["op"], 0); out > 0 {
		k.totalFrames = uint32(min(out, math.MaxUint32))
	}

	layers, _ := doc["layers"].([]any)
	for _, l := range layers {
		layer, ok := l.(map[string]any)
		if !ok || truthy(layer["hd"]) {
			continue
		}
		k.primitives = append(k.primitives, layerPrimitives(layer)...)
	}
	return k, nil
}

func (k *KeyframeComposition) sealed() {}

// ID returns the cursor id.
func (k *KeyframeComposition) ID() string { return k.id }

// Format returns [theme.FormatKeyframe].
func (k *KeyframeComposition) Format() theme.Format { return theme.FormatKeyframe }

// Size returns the composition size in logical pixels.
func (k *KeyframeComposition) Size() (width, height float64) { return k.width, k.height }

// Hotspot returns the declared hotspot in logical pixels.
func (k *KeyframeComposition) Hotspot() image.Point { return k.hotspot }

// TotalFrames returns the declared out-point, or 0 when the document has
// none.
func (k *KeyframeComposition) TotalFrames() uint32 { return k.totalFrames }

// FrameDuration returns 1000/frameRate ms, or 16 ms for a non-positive rate.
func (k *KeyframeComposition) FrameDuration() uint32 {
	if k.frameRate > 0 {
		return uint32(1000 / k.frameRate)
	}
	return defaultFrameDuration
}

// RenderFrame draws frame (modulo the frame count) at the device scale.
func (k *KeyframeComposition) RenderFrame(frame uint32, scale int) (Frame, error) {
	if k.totalFrames > 0 {
		frame %= k.totalFrames
	} else {
		frame = 0
	}

	scale = max(scale, 1)
	w, h, err := frameSize(k.id, k.width, k.height, scale)
	if err != nil {
		return Frame{}, err
	}
	buf := pixbuf.New(w, h, scale)
	for i := range k.primitives {
		k.primitives[i].draw(buf, scale)
	}

	return Frame{
		Buffer:  buf,
		Hotspot: k.hotspot.Mul(scale),
		Index:   frame,
	}, nil
}

func (p *primitive) draw(dst *pixbuf.Buffer, scale int) {
	if p.fill != nil {
		for i := 0; i+2 < len(p.indices); i += 3 {
			a, b, c := int(p.indices[i]), int(p.indices[i+1]), int(p.indices[i+2])
			if a >= len(p.vertices) || b >= len(p.vertices) || c >= len(p.vertices) {
				continue
			}
			raster.FillTriangle(dst,
				p.vertices[a].Scale(scale),
				p.vertices[b].Scale(scale),
				p.vertices[c].Scale(scale),
				*p.fill)
		}
	}

	if p.stroke != nil {
		radius := int(min(p.lineWidth*float32(scale)/2, 2*maxDimension))
		for _, v := range p.vertices {
			raster.StampDisc(dst, v.Scale(scale), radius, *p.stroke)
		}
	}
}

// layerPrimitives walks the shape groups of one layer.
func layerPrimitives(layer map[string]any) []primitive {
	var out []primitive
	shapes, _ := layer["shapes"].([]any)
	for _, s := range shapes {
		shape, ok := s.(map[string]any)
		if !ok || shape["ty"] != "gr" {
			continue
		}
		items, _ := shape["it"].([]any)
		out = append(out, groupPrimitives(items)...)
	}
	return out
}

// groupPrimitives extracts the paths of one group. A fill or stroke applies
// to the most recent path in the group that has none yet.
func groupPrimitives(items []any) []primitive {
	var group []primitive
	for _, it := range items {
		item, ok := it.(map[string]any)
		if !ok {
			continue
		}
		switch item["ty"] {
		case "sh":
			if p, ok := shapePath(item); ok {
				group = append(group, p)
			}
		case "fl":
			c, ok := paintColor(item["c"])
			if !ok {
				continue
			}
			for i := len(group) - 1; i >= 0; i-- {
				if group[i].fill == nil {
					group[i].fill = &c
					break
				}
			}
		case "st":
			c, ok := paintColor(item["c"])
			if !ok {
				continue
			}
			width := float32(number(unwrapStatic(item["w"]), 1))
			for i := len(group) - 1; i >= 0; i-- {
				if group[i].stroke == nil {
					group[i].stroke = &c
					group[i].lineWidth = width
					break
				}
			}
		}
	}
	return group
}

// shapePath reads one path item. Two encodings are accepted:
//
//   - flat: "ks": {"k": [[sx, sy, ex, ey, c1x, c1y, c2x, c2y]]} with at least
//     six numbers; missing trailing values are 0
//   - bezier: "ks": {"k": {"v": [...], "i": [...], "o": [...]}}, using the
//     first segment v0 -> v1 with control points v0+o0 and v1+i1
func shapePath(item map[string]any) (primitive, bool) {
	ks, ok := item["ks"].(map[string]any)
	if !ok {
		return primitive{}, false
	}

	var verts []raster.Vertex
	switch k := ks["k"].(type) {
	case []any:
		if len(k) == 0 {
			return primitive{}, false
		}
		flat, ok := k[0].([]any)
		if !ok || len(flat) < 6 {
			return primitive{}, false
		}
		at := func(i int) float32 {
			if i < len(flat) {
				return float32(number(flat[i], 0))
			}
			return 0
		}
		verts = []raster.Vertex{
			{X: at(0), Y: at(1)},
			{X: at(2), Y: at(3)},
			{X: at(4), Y: at(5)},
			{X: at(6), Y: at(7)},
		}
	case map[string]any:
		v := points(k["v"])
		if len(v) < 2 {
			return primitive{}, false
		}
		in, out := points(k["i"]), points(k["o"])
		c1, c2 := v[0], v[1]
		if len(out) > 0 {
			c1 = raster.Vertex{X: v[0].X + out[0].X, Y: v[0].Y + out[0].Y}
		}
		if len(in) > 1 {
			c2 = raster.Vertex{X: v[1].X + in[1].X, Y: v[1].Y + in[1].Y}
		}
		verts = []raster.Vertex{v[0], v[1], c1, c2}
	default:
		return primitive{}, false
	}

	return primitive{
		vertices: verts,
		indices:  segmentIndices,
	}, true
}

func points(v any) []raster.Vertex {
	list, _ := v.([]any)
	out := make([]raster.Vertex, 0, len(list))
	for _, p := range list {
		xy, ok := p.([]any)
		if !ok || len(xy) < 2 {
			continue
		}
		out = append(out, raster.Vertex{X: float32(number(xy[0], 0)), Y: float32(number(xy[1], 0))})
	}
	return out
}

// paintColor reads an [r, g, b, a] color with 0..1 components, either bare
// or wrapped in a static {"a": 0, "k": [...]} property. A non-numeric alpha
// counts as opaque.
func paintColor(v any) ([4]byte, bool) {
	arr, ok := unwrapStatic(v).([]any)
	if !ok || len(arr) < 4 {
		return [4]byte{}, false
	}
	channel := func(i int, def float64) uint8 {
		f := number(arr[i], def)
		return uint8(min(max(f, 0), 1) * 255)
	}
	return pixbuf.Premultiply(channel(0, 0), channel(1, 0), channel(2, 0), channel(3, 1)), true
}

// unwrapStatic returns the "k" value of a {"k": ...} property object, or v itself.
func unwrapStatic(v any) any {
	if m, ok := v.(map[string]any); ok {
		return m["k"]
	}
	return v
}

func number(v any, def float64) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return def
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	}
	return false
}
