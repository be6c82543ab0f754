package vector

import (
	"image"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/cursor/theme"
)

const redSquareSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
  <rect x="4" y="4" width="16" height="16" fill="#ff0000"/>
</svg>`

func TestPathSceneRender(t *testing.T) {
	s, err := NewPathScene("default", []byte(redSquareSVG), &image.Point{X: 4, Y: 4}, 24)
	require.NoError(t, err)

	assert.Equal(t, "default", s.ID())
	assert.Equal(t, theme.FormatPathScene, s.Format())
	assert.Equal(t, uint32(1), s.TotalFrames())
	assert.Equal(t, uint32(0), s.FrameDuration())

	f, err := s.RenderFrame(7, 2)
	require.NoError(t, err)
	assert.Equal(t, 48, f.Buffer.Width)
	assert.Equal(t, 48, f.Buffer.Height)
	assert.Equal(t, image.Pt(8, 8), f.Hotspot)

	assert.Equal(t, [4]byte{0, 0, 255, 255}, f.Buffer.Pixel(24, 24), "BGRA order")
	assert.Equal(t, [4]byte{}, f.Buffer.Pixel(2, 2))
}

func TestPathSceneFractionalSizeRoundsUp(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.5 10.5"></svg>`
	s, err := NewPathScene("x", []byte(svg), nil, 24)
	require.NoError(t, err)

	f, err := s.RenderFrame(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 11, f.Buffer.Width)
	assert.Equal(t, image.Point{}, f.Hotspot)
}

func TestPathSceneRenderIsRepeatable(t *testing.T) {
	s, err := NewPathScene("x", []byte(redSquareSVG), nil, 24)
	require.NoError(t, err)

	a, err := s.RenderFrame(0, 1)
	require.NoError(t, err)
	b, err := s.RenderFrame(0, 1)
	require.NoError(t, err)
	assert.Equal(t, a.Buffer.Pix, b.Buffer.Pix)
}

func TestPathSceneEmptyViewBox(t *testing.T) {
	_, err := NewPathScene("x", []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), nil, 24)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRender))
}

func TestPathSceneDocumentSize(t *testing.T) {
	const body = `<rect x="0" y="0" width="8" height="8" fill="#ff0000"/></svg>`
	tests := []struct {
		name  string
		root  string
		wantW int
		wantH int
	}{
		{"width and height", `width="32" height="32" viewBox="0 0 16 16"`, 32, 32},
		{"px suffix", `width="32px" height="32px" viewBox="0 0 16 16"`, 32, 32},
		{"width only", `width="32" viewBox="0 0 16 8"`, 32, 16},
		{"height only", `height="16" viewBox="0 0 16 8"`, 32, 16},
		{"viewBox only", `viewBox="0 0 16 16"`, 16, 16},
		{"no viewBox", `width="20" height="10"`, 20, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := `<svg xmlns="http://www.w3.org/2000/svg" ` + tt.root + `>` + body
			s, err := NewPathScene("x", []byte(svg), nil, 24)
			require.NoError(t, err)

			f, err := s.RenderFrame(0, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, f.Buffer.Width)
			assert.Equal(t, tt.wantH, f.Buffer.Height)
		})
	}
}

func TestPathSceneScalesViewBoxToDocumentSize(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="32" height="32" viewBox="0 0 16 16">
  <rect x="0" y="0" width="8" height="8" fill="#ff0000"/>
</svg>`
	s, err := NewPathScene("x", []byte(svg), nil, 24)
	require.NoError(t, err)

	f, err := s.RenderFrame(0, 1)
	require.NoError(t, err)
	assert.Equal(t, redBGRA, f.Buffer.Pixel(12, 12), "8 viewBox units cover 16 pixels")
	assert.Equal(t, [4]byte{}, f.Buffer.Pixel(20, 20))
}

func TestPathSceneRejectsOversizedDocument(t *testing.T) {
	for _, root := range []string{
		`viewBox="0 0 1e10 1e10"`,
		`width="40000" height="24" viewBox="0 0 24 24"`,
	} {
		svg := `<svg xmlns="http://www.w3.org/2000/svg" ` + root + `></svg>`
		_, err := NewPathScene("x", []byte(svg), nil, 24)
		require.Error(t, err, root)
		assert.True(t, errors.Is(err, ErrRender), root)
	}
}

func TestPathSceneRejectsOversizedScale(t *testing.T) {
	s, err := NewPathScene("x", []byte(redSquareSVG), nil, 24)
	require.NoError(t, err)

	_, err = s.RenderFrame(0, 2000)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRender))
}
