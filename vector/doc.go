// Package vector implements the vector cursor engine: the two renderer
// backends, the per-cursor renderer store and the transition/animation
// state machine.
//
// # Renderers
//
// A [Renderer] turns one cursor's source document into premultiplied BGRA
// frames on demand. Two backends exist and the set is closed:
//   - [PathScene]: an SVG document rendered through oksvg/rasterx, one static frame
//   - [KeyframeComposition]: a Lottie-like JSON document drawn by a small
//     built-in triangle rasterizer
//
// Renderer construction and rendering are pure functions of the source
// bytes, declared hotspot, scale and frame index. [Store] relies on this:
// two goroutines missing on the same cursor id may both build a renderer and
// the first one inserted wins.
//
// # Animation
//
// [Animator] is driven only by elapsed-time deltas passed to Update; it owns
// no timer and never blocks. It is not safe for concurrent use: the host
// render loop owns it.
package vector
