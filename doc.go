// Package cursor resolves what the pointer looks like each frame.
//
// # Overview
//
// A [Manager] combines two cursor sources:
//   - an Xcursor icon theme, looked up by CSS cursor name with legacy
//     fallbacks, always able to produce the default arrow
//   - an optional vector theme (theme.toml or theme.yaml plus SVG and
//     Lottie-like documents) rendered at any scale, with animated
//     transitions between cursors
//
// # Quick Start
//
//	import "github.com/gogpu/cursor"
//
//	m := cursor.New("Adwaita", 24, cursor.WithVectorTheme("/path/to/vector/theme"))
//	defer m.Close()
//
//	m.SetCursorImage(cursor.StatusNamed{Icon: cursor.Pointer})
//
//	// every frame
//	m.Update(elapsedMs)
//	switch rc := m.RenderCursor(scale).(type) {
//	case cursor.VectorCursor:
//		// rc.Buffer is premultiplied BGRA8, rc.Hotspot in device pixels
//	case cursor.NamedCursor:
//		_, img := rc.Cursor.Frame(m.Clock())
//		_ = img
//	}
//
// # Architecture
//
// The module is organized into:
//   - cursor: Manager, icons, image status, texture cache
//   - theme: vector theme descriptor
//   - vector: renderers, renderer store, animator
//   - xcursor: Xcursor files and icon-theme lookup
//   - pixbuf: premultiplied BGRA pixel buffers
//   - integration/cursorplane: drawing a RenderCursor through gpucontext
//
// # Threading
//
// The Manager and the vector animator belong to the render loop that drives
// them. The renderer and frame caches underneath are safe for concurrent
// readers.
package cursor

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
