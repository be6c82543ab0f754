// Package theme parses vector cursor theme descriptors.
//
// A theme directory holds a theme.toml (or theme.yaml) descriptor and the
// source documents it references:
//
//	[cursors.default]
//	format = "svg"
//	file = "default.svg"
//	hotspot = [4, 4]
//
//	[cursors.wait]
//	format = "lottie"
//	file = "wait.json"
//	loop_mode = "loop"
//
//	[transitions."default->wait"]
//	type = "crossfade"
//	duration_ms = 300
//	easing = "easeinout"
//
// A parsed [Config] is immutable and safe to share between goroutines.
package theme
