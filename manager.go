package cursor

import (
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/gogpu/cursor/internal/cache"
	"github.com/gogpu/cursor/internal/logx"
	"github.com/gogpu/cursor/pixbuf"
	"github.com/gogpu/cursor/theme"
	"github.com/gogpu/cursor/vector"
	"github.com/gogpu/cursor/xcursor"
)

// ErrNoActiveVector is returned when no vector cursor is showing, either
// because no vector theme is loaded or because its animator is static.
var ErrNoActiveVector = errors.New("cursor: no active vector cursor")

type namedKey struct {
	icon  Icon
	scale int
}

type frameKey struct {
	id    string
	frame uint32
	scale int
}

// vectorSystem is a loaded vector theme.
type vectorSystem struct {
	dir      string
	store    *vector.Store
	animator *vector.Animator
	// frames caches rendered frames; renderers are pure, so a frame never changes.
	frames *cache.Cache[frameKey, vector.Frame]
	// failed remembers ids whose renderer could not be built, so each
	// failure is logged and retried once per theme load.
	failed map[string]error
}

// Manager decides what the pointer looks like.
//
// It tracks the client's requested [ImageStatus] and resolves it each frame
// into a [RenderCursor]. Named icons resolve through an Xcursor theme. When
// a vector theme is loaded, icons it defines are drawn by the vector engine
// instead, with the raster theme as the fallback for anything it cannot
// draw.
//
// A Manager is driven by a single owner, the host render loop, which calls
// Update and then RenderCursor once per frame. It is not safe for
// concurrent use.
type Manager struct {
	opts options

	theme   *xcursor.Theme
	size    int
	current ImageStatus

	named    *cache.Cache[namedKey, *xcursor.FrameSet]
	textures *TextureCache

	vector       *vectorSystem
	iconToVector map[Icon]string
	watcher      *vector.Watcher

	clock uint32
}

// New creates a manager for the Xcursor theme themeName at the logical
// cursor size. It never fails: a vector theme that cannot be loaded is
// logged and the manager runs raster only.
func New(themeName string, size int, opts ...Option) *Manager {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	m := &Manager{
		opts:     o,
		size:     size,
		current:  StatusNamed{Icon: Default},
		named:    cache.New[namedKey, *xcursor.FrameSet](),
		textures: NewTextureCache(size, o.resample),
	}
	m.loadRaster(themeName)

	if o.vectorDir != "" {
		vs, err := loadVector(o.vectorDir, size)
		if err != nil {
			logx.Logger().Warn("cursor: vector theme unavailable, using xcursor only",
				"dir", o.vectorDir, "err", err)
		} else {
			m.setVector(vs)
			logx.Logger().Info("cursor: vector theme loaded",
				"dir", o.vectorDir, "cursors", vs.store.Config().Len(), "mapped", len(m.iconToVector))
		}
	}

	if m.vector != nil && o.watch {
		w, err := vector.Watch(o.vectorDir)
		if err != nil {
			logx.Logger().Warn("cursor: vector theme watch failed", "dir", o.vectorDir, "err", err)
		} else {
			m.watcher = w
		}
	}
	return m
}

func (m *Manager) loadRaster(themeName string) {
	if m.opts.exportEnv {
		ensureEnv(themeName, m.size)
	}
	m.theme = xcursor.LoadTheme(themeName, m.opts.searchPath)
}

// ensureEnv exports the theme for child processes.
func ensureEnv(themeName string, size int) {
	if err := os.Setenv("XCURSOR_THEME", themeName); err != nil {
		logx.Logger().Warn("cursor: setenv failed", "key", "XCURSOR_THEME", "err", err)
	}
	if err := os.Setenv("XCURSOR_SIZE", strconv.Itoa(size)); err != nil {
		logx.Logger().Warn("cursor: setenv failed", "key", "XCURSOR_SIZE", "err", err)
	}
}

func loadVector(dir string, size int) (*vectorSystem, error) {
	cfg, err := theme.Load(dir)
	if err != nil {
		return nil, err
	}
	return &vectorSystem{
		dir:      dir,
		store:    vector.NewStore(dir, cfg, size),
		animator: vector.NewAnimator(cfg, size),
		frames:   cache.New[frameKey, vector.Frame](),
		failed:   make(map[string]error),
	}, nil
}

func (m *Manager) setVector(vs *vectorSystem) {
	m.vector = vs
	m.iconToVector = iconMapping(vs.store.Config().IDs())
	for icon, id := range m.iconToVector {
		logx.Logger().Debug("cursor: icon mapped to vector cursor", "icon", icon.Name(), "id", id)
	}
}

// Reload switches to another Xcursor theme or size and drops every cached
// raster cursor. The vector theme is left as is.
func (m *Manager) Reload(themeName string, size int) {
	m.size = size
	m.loadRaster(themeName)
	m.named.Clear()
	m.textures = NewTextureCache(size, m.opts.resample)
	logx.Logger().Info("cursor: xcursor theme reloaded", "theme", themeName, "size", size)
}

// reloadVector re-reads the vector theme after a change on disk. A theme
// that no longer parses keeps the previous one.
func (m *Manager) reloadVector() {
	vs := m.vector
	cfg, err := theme.Load(vs.dir)
	if err != nil {
		logx.Logger().Warn("cursor: vector theme reload failed, keeping previous", "dir", vs.dir, "err", err)
		return
	}
	vs.store.Reload(cfg)
	vs.animator.SetConfig(cfg)
	vs.frames.Clear()
	clear(vs.failed)
	m.iconToVector = iconMapping(cfg.IDs())
	logx.Logger().Info("cursor: vector theme reloaded", "dir", vs.dir, "cursors", cfg.Len())
}

// ThemeName returns the Xcursor theme name.
func (m *Manager) ThemeName() string { return m.theme.Name() }

// Size returns the logical cursor size.
func (m *Manager) Size() int { return m.size }

// CursorImage returns the current image status.
func (m *Manager) CursorImage() ImageStatus { return m.current }

// SetCursorImage sets the requested image status.
//
// A named icon that the vector theme defines also selects that vector cursor;
// the raster status is stored either way and serves as the fallback.
func (m *Manager) SetCursorImage(status ImageStatus) {
	if status == nil {
		status = StatusNamed{Icon: Default}
	}
	if named, ok := status.(StatusNamed); ok && m.vector != nil {
		if id, ok := m.iconToVector[named.Icon]; ok {
			m.vector.animator.SetCursor(id)
		} else {
			logx.Logger().Debug("cursor: no vector cursor for icon", "icon", named.Icon.Name())
		}
	}
	m.current = status
}

// SelectVector shows the vector cursor id directly, including ids no icon
// maps to. It reports false when no vector theme is loaded.
func (m *Manager) SelectVector(id string) bool {
	if m.vector == nil {
		return false
	}
	m.vector.animator.SetCursor(id)
	return true
}

// VectorState returns the animator state, if a vector theme is loaded.
func (m *Manager) VectorState() (vector.State, bool) {
	if m.vector == nil {
		return vector.State{}, false
	}
	return m.vector.animator.State(), true
}

// Update advances animations by elapsedMs. A pending vector theme change is
// applied first.
func (m *Manager) Update(elapsedMs uint32) {
	m.clock += elapsedMs
	if m.vector == nil {
		return
	}
	if m.watcher != nil && m.watcher.Pending() {
		m.reloadVector()
	}
	m.vector.animator.Update(elapsedMs)
}

// Clock returns the milliseconds accumulated by Update, wrapping at 2^32.
// It is the time base for raster frame selection.
func (m *Manager) Clock() uint32 { return m.clock }

// CheckSurfaceAlive resets a client surface cursor whose surface is gone
// back to the default icon.
func (m *Manager) CheckSurfaceAlive() {
	if s, ok := m.current.(StatusSurface); ok && (s.Surface == nil || !s.Surface.Alive()) {
		m.current = StatusNamed{Icon: Default}
	}
}

// RenderCursor resolves the cursor to draw at the integer output scale.
//
// An active vector cursor wins. Otherwise, or when the vector cursor cannot
// be drawn, the image status decides.
func (m *Manager) RenderCursor(scale int) RenderCursor {
	scale = max(scale, 1)

	rc, err := m.vectorCursor(scale)
	if err == nil {
		return rc
	}

	switch s := m.current.(type) {
	case StatusHidden:
		return Hidden{}
	case StatusSurface:
		if s.Surface == nil {
			return Hidden{}
		}
		return SurfaceCursor{Hotspot: s.Surface.Hotspot(), Surface: s.Surface}
	case StatusNamed:
		return m.namedCursor(s.Icon, scale)
	default:
		return m.namedCursor(Default, scale)
	}
}

func (m *Manager) namedCursor(icon Icon, scale int) NamedCursor {
	if fs, ok := m.CursorWithName(icon, scale); ok {
		return NamedCursor{Icon: icon, Scale: scale, Cursor: fs}
	}
	return NamedCursor{Icon: Default, Scale: scale, Cursor: m.DefaultCursor(scale)}
}

func (m *Manager) vectorCursor(scale int) (VectorCursor, error) {
	vs := m.vector
	if vs == nil {
		return VectorCursor{}, ErrNoActiveVector
	}
	st := vs.animator.State()
	id, ok := st.Target()
	if !ok {
		return VectorCursor{}, ErrNoActiveVector
	}

	frame, err := m.vectorFrame(id, st, scale)
	if err != nil {
		return VectorCursor{}, err
	}
	buf := frame.Buffer

	if st.Kind == vector.StateTransitioning {
		tc, ok := vs.store.Config().Transition(st.FromID, st.ToID)
		if ok && tc.Kind == theme.TransitionCrossFade {
			from, err := m.vectorFrame(st.FromID, vector.State{}, scale)
			if err == nil {
				buf = pixbuf.Crossfade(from.Buffer, frame.Buffer, from.Hotspot, frame.Hotspot, st.Progress)
			}
		}
	}

	return VectorCursor{
		Hotspot:  frame.Hotspot,
		Buffer:   buf,
		CursorID: id,
		Frame:    frame.Index,
	}, nil
}

// vectorFrame renders the frame of id that st selects, through the frame cache.
func (m *Manager) vectorFrame(id string, st vector.State, scale int) (vector.Frame, error) {
	vs := m.vector
	if err, ok := vs.failed[id]; ok {
		return vector.Frame{}, err
	}

	r, err := vs.store.Renderer(id)
	if err != nil {
		vs.failed[id] = err
		logx.Logger().Warn("cursor: vector cursor unavailable, falling back to xcursor", "id", id, "err", err)
		return vector.Frame{}, err
	}

	var idx uint32
	if m.opts.framePlayback {
		idx = vector.SampleFrame(st, r)
	}
	return vs.frames.Load(frameKey{id, idx, scale}, func() (vector.Frame, error) {
		f, err := r.RenderFrame(idx, scale)
		if err != nil {
			logx.Logger().Warn("cursor: vector render failed", "id", id, "frame", idx, "err", err)
		}
		return f, err
	})
}

// IsCurrentCursorAnimated reports whether the current named cursor has more
// than one raster frame. Vector animation is not considered.
func (m *Manager) IsCurrentCursorAnimated(scale int) bool {
	named, ok := m.current.(StatusNamed)
	if !ok {
		return false
	}
	fs, ok := m.CursorWithName(named.Icon, scale)
	if !ok {
		fs = m.DefaultCursor(scale)
	}
	return fs.IsAnimated()
}

// CursorWithName returns the raster cursor for icon at scale, loading it on
// first use. The icon's CSS name is tried first, then its legacy names.
// Misses are cached too. [Default] always resolves, to the built-in arrow
// if the theme has nothing.
func (m *Manager) CursorWithName(icon Icon, scale int) (*xcursor.FrameSet, bool) {
	scale = max(scale, 1)
	fs, _ := m.named.Load(namedKey{icon, scale}, func() (*xcursor.FrameSet, error) {
		size := m.size * scale
		fs, err := m.theme.LoadFirst(icon.Names(), size)
		if err != nil {
			logx.Logger().Warn("cursor: xcursor load failed",
				"icon", icon.Name(), "size", size, "theme", m.theme.Name(), "err", err)
			if icon == Default {
				return xcursor.Fallback(), nil
			}
			return nil, nil
		}
		return fs, nil
	})
	return fs, fs != nil
}

// DefaultCursor returns the raster cursor for [Default]. It is never nil.
func (m *Manager) DefaultCursor(scale int) *xcursor.FrameSet {
	fs, ok := m.CursorWithName(Default, scale)
	if !ok {
		return xcursor.Fallback()
	}
	return fs
}

// Textures returns the pixel buffer cache for raster frames. It is replaced
// on Reload.
func (m *Manager) Textures() *TextureCache { return m.textures }

// Close stops the vector theme watcher, if any.
func (m *Manager) Close() error {
	if m.watcher == nil {
		return nil
	}
	err := m.watcher.Close()
	m.watcher = nil
	return errors.Wrap(err, "cursor: close watcher")
}
