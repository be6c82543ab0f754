// Package raster implements the small scan converter used by keyframed
// cursor compositions: solid triangle fills and round stroke stamps written
// straight into a pixel buffer.
//
// There is no anti-aliasing and no blending. Every covered pixel is
// overwritten with the source color, and every write is clipped to the
// buffer bounds.
package raster

import (
	"image"

	"github.com/gogpu/cursor/pixbuf"
)

// Vertex is a point in unscaled document space.
type Vertex struct {
	X, Y float32
}

// Scale maps v to device pixels, truncating toward zero.
func (v Vertex) Scale(scale int) image.Point {
	s := float32(scale)
	return image.Pt(int(v.X*s), int(v.Y*s))
}

// FillTriangle scan-converts the triangle v0 v1 v2 (device pixels) into dst.
//
// Pixels are visited over the clipped bounding box and kept when all three
// barycentric weights are non-negative, so both windings fill. Degenerate
// triangles (zero signed area) draw nothing.
func FillTriangle(dst *pixbuf.Buffer, v0, v1, v2 image.Point, c [4]byte) {
	det := (v1.Y-v2.Y)*(v0.X-v2.X) + (v2.X-v1.X)*(v0.Y-v2.Y)
	if det == 0 {
		return
	}

	minX := max(min(v0.X, v1.X, v2.X), 0)
	maxX := min(max(v0.X, v1.X, v2.X), dst.Width-1)
	minY := max(min(v0.Y, v1.Y, v2.Y), 0)
	maxY := min(max(v0.Y, v1.Y, v2.Y), dst.Height-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if inside(image.Pt(x, y), v0, v1, v2, det) {
				dst.SetPixel(x, y, c)
			}
		}
	}
}

// Inside reports whether p lies in or on the triangle v0 v1 v2.
func Inside(p, v0, v1, v2 image.Point) bool {
	det := (v1.Y-v2.Y)*(v0.X-v2.X) + (v2.X-v1.X)*(v0.Y-v2.Y)
	if det == 0 {
		return false
	}
	return inside(p, v0, v1, v2, det)
}

func inside(p, v0, v1, v2 image.Point, det int) bool {
	l1 := float32((v1.Y-v2.Y)*(p.X-v2.X)+(v2.X-v1.X)*(p.Y-v2.Y)) / float32(det)
	l2 := float32((v2.Y-v0.Y)*(p.X-v2.X)+(v0.X-v2.X)*(p.Y-v2.Y)) / float32(det)
	l3 := 1 - l1 - l2
	return l1 >= 0 && l2 >= 0 && l3 >= 0
}

// StampDisc fills every pixel within radius of center (squared-distance test).
// A radius of zero stamps the single center pixel. Only the part of the disc
// inside dst is visited.
func StampDisc(dst *pixbuf.Buffer, center image.Point, radius int, c [4]byte) {
	if radius < 0 {
		return
	}
	minX := max(center.X-radius, 0)
	maxX := min(center.X+radius, dst.Width-1)
	minY := max(center.Y-radius, 0)
	maxY := min(center.Y+radius, dst.Height-1)

	r2 := int64(radius) * int64(radius)
	for y := minY; y <= maxY; y++ {
		dy := int64(y - center.Y)
		for x := minX; x <= maxX; x++ {
			dx := int64(x - center.X)
			if dx*dx+dy*dy <= r2 {
				dst.SetPixel(x, y, c)
			}
		}
	}
}
