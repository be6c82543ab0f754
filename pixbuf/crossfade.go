package pixbuf

import "image"

// Crossfade blends from into to with weight t (0 = only from, 1 = only to).
//
// The result has the size and scale of to. from is positioned so that its
// hotspot lands on to's hotspot; pixels of from falling outside are dropped.
func Crossfade(from, to *Buffer, fromHot, toHot image.Point, t float64) *Buffer {
	t = min(max(t, 0), 1)
	out := New(to.Width, to.Height, to.Scale)
	offset := toHot.Sub(fromHot)

	wt := uint32(t*256 + 0.5)
	wf := 256 - wt

	for y := range out.Height {
		for x := range out.Width {
			dst := to.Pixel(x, y)
			src := [4]byte{}
			if from != nil {
				src = from.Pixel(x-offset.X, y-offset.Y)
			}
			var c [4]byte
			for i := range c {
				c[i] = uint8((uint32(src[i])*wf + uint32(dst[i])*wt + 128) >> 8)
			}
			out.SetPixel(x, y, c)
		}
	}
	return out
}
