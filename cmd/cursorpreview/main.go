// Command cursorpreview renders cursors from an Xcursor theme and an optional
// vector theme to PNG files, or bundles the frames into an Xcursor file.
//
// Examples:
//
//	cursorpreview -theme Adwaita -icon wait -frames 8 -out wait.png
//	cursorpreview -vector ~/.config/cursors/neon -id loading -scale 2 -frames 30 -out loading.xcur
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/cursor"
	"github.com/gogpu/cursor/pixbuf"
	"github.com/gogpu/cursor/xcursor"
)

func main() {
	var (
		themeName = flag.String("theme", xcursor.DefaultThemeName, "Xcursor theme name")
		size      = flag.Int("size", 24, "nominal cursor size in logical pixels")
		vectorDir = flag.String("vector", "", "vector theme directory")
		iconName  = flag.String("icon", "default", "CSS cursor name")
		id        = flag.String("id", "", "vector cursor id (overrides -icon)")
		scale     = flag.Int("scale", 1, "device scale")
		frames    = flag.Int("frames", 1, "number of frames to render")
		step      = flag.Uint("step", 16, "milliseconds between frames")
		output    = flag.String("out", "cursor.png", "output file; .xcur writes an Xcursor file")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	cursor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	opts := []cursor.Option{cursor.WithEnv(false)}
	if *vectorDir != "" {
		opts = append(opts, cursor.WithVectorTheme(*vectorDir))
	}
	m := cursor.New(*themeName, *size, opts...)
	defer m.Close()

	if *id != "" {
		if !m.SelectVector(*id) {
			log.Fatalf("-id %q needs a vector theme (-vector)", *id)
		}
	} else {
		icon, ok := cursor.ParseIcon(*iconName)
		if !ok {
			log.Fatalf("unknown cursor name %q", *iconName)
		}
		m.SetCursorImage(cursor.StatusNamed{Icon: icon})
	}

	var images []xcursor.Image
	for i := range max(*frames, 1) {
		buf, hot, err := resolve(m, m.RenderCursor(*scale))
		if err != nil {
			log.Fatalf("frame %d: %v", i, err)
		}
		if buf == nil {
			log.Fatalf("frame %d: cursor is hidden", i)
		}
		images = append(images, toXcursor(buf, hot, *size * *scale, uint32(*step)))
		m.Update(uint32(*step))
	}

	if strings.EqualFold(filepath.Ext(*output), ".xcur") {
		if err := os.WriteFile(*output, xcursor.Encode(images, "cursorpreview"), 0o644); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("%d frames saved to %s\n", len(images), *output)
		return
	}

	for i, img := range images {
		name := *output
		if len(images) > 1 {
			ext := filepath.Ext(name)
			name = fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(name, ext), i, ext)
		}
		if err := savePNG(name, img); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
	}
	log.Printf("%d frames saved to %s\n", len(images), *output)
}

// resolve returns the pixels and hotspot of rc. Surface cursors have no
// pixels here; a nil buffer means there is nothing to draw.
func resolve(m *cursor.Manager, rc cursor.RenderCursor) (*pixbuf.Buffer, image.Point, error) {
	switch c := rc.(type) {
	case cursor.VectorCursor:
		if c.Buffer.Empty() {
			return nil, image.Point{}, nil
		}
		return c.Buffer, c.Hotspot, nil
	case cursor.NamedCursor:
		idx, img := c.Cursor.Frame(m.Clock())
		buf, err := m.Textures().Get(c.Icon, c.Scale, c.Cursor, idx)
		if err != nil {
			return nil, image.Point{}, err
		}
		x, y := m.Textures().Hotspot(img, c.Scale)
		return buf, image.Pt(x, y), nil
	default:
		return nil, image.Point{}, nil
	}
}

func toXcursor(buf *pixbuf.Buffer, hot image.Point, nominal int, delay uint32) xcursor.Image {
	pix := make([]byte, 0, buf.Width*buf.Height*pixbuf.BytesPerPixel)
	for y := range buf.Height {
		off := buf.Offset(0, y)
		pix = append(pix, buf.Pix[off:off+buf.Width*pixbuf.BytesPerPixel]...)
	}
	return xcursor.Image{
		Size:   uint32(nominal),
		Width:  uint32(buf.Width),
		Height: uint32(buf.Height),
		XHot:   uint32(min(max(hot.X, 0), buf.Width-1)),
		YHot:   uint32(min(max(hot.Y, 0), buf.Height-1)),
		Delay:  delay,
		Pix:    pix,
	}
}

func savePNG(name string, img xcursor.Image) error {
	buf, err := pixbuf.FromBGRA(img.Pix, int(img.Width), int(img.Height), 1)
	if err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, buf.RGBA()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
