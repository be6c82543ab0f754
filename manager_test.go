package cursor

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/cursor/vector"
	"github.com/gogpu/cursor/xcursor"
)

const vectorTheme = `
[cursors.default]
format = "svg"
file = "default.svg"
hotspot = [4, 4]

[cursors.wait]
format = "lottie"
file = "wait.json"

[cursors.pointer]
format = "svg"
file = "pointer.svg"

[cursors.custom]
format = "svg"
file = "default.svg"

[transitions."default->wait"]
type = "crossfade"
duration_ms = 300
easing = "linear"
`

const defaultSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
  <rect x="4" y="4" width="16" height="16" fill="#ff0000"/>
</svg>`

const waitJSON = `{
  "w": 24, "h": 24, "fr": 30, "op": 30,
  "layers": [{"shapes": [{"ty": "gr", "it": [
    {"ty": "sh", "ks": {"k": [[0, 0, 10, 0, 0, 10, 10, 10]]}},
    {"ty": "fl", "c": [1, 0, 0, 1]}
  ]}]}]
}`

func writeVectorTheme(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range map[string]string{
		"theme.toml":  vectorTheme,
		"default.svg": defaultSVG,
		"wait.json":   waitJSON,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	return dir
}

func frame(size, w uint32, delay uint32, fill byte) xcursor.Image {
	pix := make([]byte, w*w*4)
	for i := range pix {
		pix[i] = fill
	}
	return xcursor.Image{Size: size, Width: w, Height: w, XHot: 2, YHot: 3, Delay: delay, Pix: pix}
}

func writeXcursor(t *testing.T, root, theme, name string, images ...xcursor.Image) {
	t.Helper()
	dir := filepath.Join(root, theme, "cursors")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), xcursor.Encode(images, ""), 0o600))
}

func newRasterOnly(t *testing.T, root string, opts ...Option) *Manager {
	t.Helper()
	opts = append([]Option{WithSearchPath(root), WithEnv(false)}, opts...)
	m := New("Test", 24, opts...)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

type fakeSurface struct {
	alive bool
	hot   image.Point
}

func (s *fakeSurface) Alive() bool          { return s.alive }
func (s *fakeSurface) Hotspot() image.Point { return s.hot }

func TestDefaultAlwaysResolves(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Test", "cursors"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Test", "cursors", "default"), []byte("corrupt"), 0o600))

	m := newRasterOnly(t, root)

	_, ok := m.CursorWithName(Progress, 1)
	assert.False(t, ok)

	fs, ok := m.CursorWithName(Default, 1)
	require.True(t, ok)
	img := fs.Frames()[0]
	assert.Equal(t, uint32(64), img.Width)
	assert.Equal(t, uint32(1), img.XHot)
	assert.NotNil(t, m.DefaultCursor(3))

	rc, ok := m.RenderCursor(1).(NamedCursor)
	require.True(t, ok)
	assert.Equal(t, Default, rc.Icon)
	assert.Equal(t, 1, rc.Scale)
}

func TestNamedCursorFromTheme(t *testing.T) {
	root := t.TempDir()
	writeXcursor(t, root, "Test", "left_ptr", frame(24, 24, 0, 1), frame(48, 48, 0, 2))
	writeXcursor(t, root, "Test", "hand1", frame(24, 24, 0, 3))
	m := newRasterOnly(t, root)

	fs, ok := m.CursorWithName(Default, 2)
	require.True(t, ok)
	assert.Equal(t, uint32(48), fs.Frames()[0].Width, "closest to size*scale")

	fs, ok = m.CursorWithName(Pointer, 1)
	require.True(t, ok, "legacy name")
	assert.Equal(t, byte(3), fs.Frames()[0].Pix[0])

	m.SetCursorImage(StatusNamed{Icon: Pointer})
	rc, ok := m.RenderCursor(1).(NamedCursor)
	require.True(t, ok)
	assert.Equal(t, Pointer, rc.Icon)
	assert.Same(t, fs, rc.Cursor, "cached")

	m.SetCursorImage(StatusNamed{Icon: ZoomIn})
	rc, ok = m.RenderCursor(1).(NamedCursor)
	require.True(t, ok)
	assert.Equal(t, Default, rc.Icon, "missing icons fall back to default")
}

func TestImageStatusVariants(t *testing.T) {
	m := newRasterOnly(t, t.TempDir())

	assert.Equal(t, StatusNamed{Icon: Default}, m.CursorImage())

	m.SetCursorImage(StatusHidden{})
	assert.Equal(t, Hidden{}, m.RenderCursor(1))

	s := &fakeSurface{alive: true, hot: image.Pt(5, 6)}
	m.SetCursorImage(StatusSurface{Surface: s})
	assert.Equal(t, SurfaceCursor{Hotspot: image.Pt(5, 6), Surface: s}, m.RenderCursor(2))

	m.CheckSurfaceAlive()
	assert.Equal(t, StatusSurface{Surface: s}, m.CursorImage())

	s.alive = false
	m.CheckSurfaceAlive()
	assert.Equal(t, StatusNamed{Icon: Default}, m.CursorImage())
}

func TestIsCurrentCursorAnimated(t *testing.T) {
	root := t.TempDir()
	writeXcursor(t, root, "Test", "watch", frame(24, 24, 50, 1), frame(24, 24, 50, 2))
	m := newRasterOnly(t, root)

	assert.False(t, m.IsCurrentCursorAnimated(1), "fallback arrow")

	m.SetCursorImage(StatusNamed{Icon: Wait})
	assert.True(t, m.IsCurrentCursorAnimated(1))

	m.SetCursorImage(StatusHidden{})
	assert.False(t, m.IsCurrentCursorAnimated(1))
}

func TestReloadClearsRasterCache(t *testing.T) {
	root := t.TempDir()
	writeXcursor(t, root, "Test", "left_ptr", frame(24, 24, 0, 1))
	writeXcursor(t, root, "Other", "left_ptr", frame(24, 24, 0, 9))
	m := newRasterOnly(t, root, WithVectorTheme(writeVectorTheme(t)))

	fs, _ := m.CursorWithName(Default, 1)
	assert.Equal(t, byte(1), fs.Frames()[0].Pix[0])

	m.SetCursorImage(StatusNamed{Icon: Wait})
	before, _ := m.VectorState()

	m.Reload("Other", 32)
	assert.Equal(t, "Other", m.ThemeName())
	assert.Equal(t, 32, m.Size())

	fs, _ = m.CursorWithName(Default, 1)
	assert.Equal(t, byte(9), fs.Frames()[0].Pix[0])

	after, _ := m.VectorState()
	assert.Equal(t, before, after, "vector side untouched")
}

func TestEnvExport(t *testing.T) {
	t.Setenv("XCURSOR_THEME", "")
	t.Setenv("XCURSOR_SIZE", "")

	m := New("Exported", 32, WithSearchPath(t.TempDir()))
	defer m.Close()
	assert.Equal(t, "Exported", os.Getenv("XCURSOR_THEME"))
	assert.Equal(t, "32", os.Getenv("XCURSOR_SIZE"))
}

func TestVectorCursor(t *testing.T) {
	m := newRasterOnly(t, t.TempDir(), WithVectorTheme(writeVectorTheme(t)))

	st, ok := m.VectorState()
	require.True(t, ok)
	assert.Equal(t, vector.StateAnimated, st.Kind)
	assert.Equal(t, "default", st.CursorID)

	rc, ok := m.RenderCursor(2).(VectorCursor)
	require.True(t, ok)
	assert.Equal(t, "default", rc.CursorID)
	assert.Equal(t, image.Pt(8, 8), rc.Hotspot)
	assert.Equal(t, 48, rc.Buffer.Width)
	assert.Equal(t, 2, rc.Buffer.Scale)

	again := m.RenderCursor(2).(VectorCursor)
	assert.Same(t, rc.Buffer, again.Buffer, "frame cache")
}

func TestVectorTransition(t *testing.T) {
	m := newRasterOnly(t, t.TempDir(), WithVectorTheme(writeVectorTheme(t)))

	m.SetCursorImage(StatusNamed{Icon: Wait})
	assert.Equal(t, StatusNamed{Icon: Wait}, m.CursorImage(), "raster status is kept")

	m.Update(150)
	st, _ := m.VectorState()
	require.Equal(t, vector.StateTransitioning, st.Kind)

	rc, ok := m.RenderCursor(1).(VectorCursor)
	require.True(t, ok)
	assert.Equal(t, "wait", rc.CursorID)
	assert.Equal(t, image.Point{}, rc.Hotspot)
	// the default square, aligned on the hotspots, at half weight
	assert.Equal(t, [4]byte{0, 0, 128, 128}, rc.Buffer.Pixel(12, 12))

	m.Update(150)
	st, _ = m.VectorState()
	assert.Equal(t, vector.State{Kind: vector.StateAnimated, CursorID: "wait", Loop: vector.Loop}, st)

	m.Update(100)
	rc = m.RenderCursor(1).(VectorCursor)
	assert.Equal(t, uint32(3), rc.Frame, "playhead 100ms at 33ms per frame")
	assert.Equal(t, uint32(400), m.Clock())
}

func TestVectorFirstFrameOnly(t *testing.T) {
	m := newRasterOnly(t, t.TempDir(), WithVectorTheme(writeVectorTheme(t)), WithFramePlayback(false))
	m.SelectVector("wait")
	m.Update(300)
	m.Update(100)

	rc, ok := m.RenderCursor(1).(VectorCursor)
	require.True(t, ok)
	assert.Equal(t, "wait", rc.CursorID)
	assert.Zero(t, rc.Frame)
}

func TestVectorFallsBackToRaster(t *testing.T) {
	root := t.TempDir()
	writeXcursor(t, root, "Test", "pointer", frame(24, 24, 0, 7))
	m := newRasterOnly(t, root, WithVectorTheme(writeVectorTheme(t)))

	// pointer.svg does not exist
	m.SetCursorImage(StatusNamed{Icon: Pointer})
	st, _ := m.VectorState()
	require.Equal(t, "pointer", st.CursorID)

	for range 2 {
		rc, ok := m.RenderCursor(1).(NamedCursor)
		require.True(t, ok)
		assert.Equal(t, Pointer, rc.Icon)
	}

	// unmapped ids are reachable directly
	require.True(t, m.SelectVector("custom"))
	_, ok := m.RenderCursor(1).(VectorCursor)
	assert.True(t, ok)

	m.SelectVector("nonexistent")
	st, _ = m.VectorState()
	assert.Equal(t, vector.StateStatic, st.Kind)
	_, ok = m.RenderCursor(1).(NamedCursor)
	assert.True(t, ok)
}

func TestVectorOversizedFallsBackToRaster(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"theme.toml": "[cursors.default]\nformat = \"lottie\"\nfile = \"huge.json\"\n\n[cursors.wait]\nformat = \"lottie\"\nfile = \"wide.json\"\n",
		"huge.json":  `{"w": 1e10, "h": 1e10, "op": 1}`,
		"wide.json":  `{"w": 1000, "h": 24}`,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	m := newRasterOnly(t, t.TempDir(), WithVectorTheme(dir))

	st, ok := m.VectorState()
	require.True(t, ok)
	require.Equal(t, "default", st.CursorID)

	nc, ok := m.RenderCursor(1).(NamedCursor)
	require.True(t, ok, "document too large to render")
	assert.Equal(t, Default, nc.Icon)

	m.SetCursorImage(StatusNamed{Icon: Wait})
	_, ok = m.RenderCursor(1).(VectorCursor)
	assert.True(t, ok)

	nc, ok = m.RenderCursor(64).(NamedCursor)
	require.True(t, ok, "scaled frame too large to render")
	assert.Equal(t, Default, nc.Icon, "test theme has no raster wait cursor")
}

func TestVectorThemeLoadFailure(t *testing.T) {
	m := newRasterOnly(t, t.TempDir(), WithVectorTheme(t.TempDir()))

	_, ok := m.VectorState()
	assert.False(t, ok)
	assert.False(t, m.SelectVector("default"))

	_, ok = m.RenderCursor(1).(NamedCursor)
	assert.True(t, ok)
}

func TestVectorThemeWatch(t *testing.T) {
	dir := writeVectorTheme(t)
	m := newRasterOnly(t, t.TempDir(), WithVectorTheme(dir), WithWatch(true))

	replacement := "[cursors.wait]\nformat = \"lottie\"\nfile = \"wait.json\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "theme.toml"), []byte(replacement), 0o600))

	assert.Eventually(t, func() bool {
		m.Update(0)
		st, _ := m.VectorState()
		return st.Kind == vector.StateStatic
	}, 5*time.Second, 20*time.Millisecond)

	m.SetCursorImage(StatusNamed{Icon: Wait})
	rc, ok := m.RenderCursor(1).(VectorCursor)
	require.True(t, ok)
	assert.Equal(t, "wait", rc.CursorID)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}
