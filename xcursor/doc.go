// Package xcursor loads raster cursors from Xcursor icon themes.
//
// An Xcursor file holds a table of contents followed by image chunks, each
// a premultiplied ARGB32 bitmap with a nominal size, a hotspot and a frame
// delay. Files are located through the freedesktop icon-theme search path,
// following each theme's Inherits chain.
//
// Pixel data is kept exactly as stored: 32-bit little-endian ARGB, which is
// BGRA byte order in memory, the layout [pixbuf.Buffer] uses.
//
// [pixbuf.Buffer]: https://pkg.go.dev/github.com/gogpu/cursor/pixbuf#Buffer
package xcursor
