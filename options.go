package cursor

// Option configures a Manager during creation.
//
// Example:
//
//	// Raster only
//	m := cursor.New("Adwaita", 24)
//
//	// Vector theme with hot reload
//	m := cursor.New("Adwaita", 24,
//		cursor.WithVectorTheme("/usr/share/cursors/vector/breeze"),
//		cursor.WithWatch(true))
type Option func(*options)

// options holds optional configuration for Manager creation.
type options struct {
	vectorDir     string
	watch         bool
	searchPath    []string
	exportEnv     bool
	framePlayback bool
	resample      bool
}

// defaultOptions returns the default manager options.
func defaultOptions() options {
	return options{
		exportEnv:     true,
		framePlayback: true,
	}
}

// WithVectorTheme loads a vector cursor theme from dir in addition to the
// raster theme. A theme that fails to load is logged and ignored.
func WithVectorTheme(dir string) Option {
	return func(o *options) {
		o.vectorDir = dir
	}
}

// WithWatch reloads the vector theme when files in its directory change.
// The reload happens inside Manager.Update.
func WithWatch(enabled bool) Option {
	return func(o *options) {
		o.watch = enabled
	}
}

// WithSearchPath replaces the Xcursor search path.
func WithSearchPath(dirs ...string) Option {
	return func(o *options) {
		o.searchPath = append([]string(nil), dirs...)
	}
}

// WithEnv controls whether XCURSOR_THEME and XCURSOR_SIZE are exported to the
// process environment on creation and reload, so that child processes pick
// up the same theme. Enabled by default.
func WithEnv(enabled bool) Option {
	return func(o *options) {
		o.exportEnv = enabled
	}
}

// WithFramePlayback selects the vector frame from the animator playhead.
// When disabled every vector cursor shows its first frame. Enabled by default.
func WithFramePlayback(enabled bool) Option {
	return func(o *options) {
		o.framePlayback = enabled
	}
}

// WithResample rescales raster frames whose nominal size differs from the
// requested size, for themes that lack the exact size.
func WithResample(enabled bool) Option {
	return func(o *options) {
		o.resample = enabled
	}
}
