package xcursor

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/gogpu/cursor/internal/logx"
)

// FrameSet is the sequence of images of one cursor at one size.
type FrameSet struct {
	images   []Image
	duration uint32
}

// NewFrameSet builds a frame set from images. The total duration is the sum
// of the image delays.
func NewFrameSet(images []Image) (*FrameSet, error) {
	if len(images) == 0 {
		return nil, errors.Wrap(ErrFormat, "empty frame set")
	}
	var d uint32
	for _, img := range images {
		d += img.Delay
	}
	return &FrameSet{images: images, duration: d}, nil
}

// Frame returns the frame to show at millis along with its index.
//
// millis wraps at the total duration, so any absolute or relative clock
// gives the same periodic playback. A set with zero duration always shows
// frame 0.
func (f *FrameSet) Frame(millis uint32) (int, Image) {
	if f.duration == 0 {
		return 0, f.images[0]
	}
	millis %= f.duration
	for i, img := range f.images {
		if millis < img.Delay {
			return i, img
		}
		millis -= img.Delay
	}
	return 0, f.images[0]
}

// Frames returns the images in playback order.
func (f *FrameSet) Frames() []Image { return f.images }

// IsAnimated reports whether the set has more than one frame.
func (f *FrameSet) IsAnimated() bool { return len(f.images) > 1 }

// Duration returns the length of one playback cycle in milliseconds.
func (f *FrameSet) Duration() uint32 { return f.duration }

// Closest keeps the images whose nominal size is nearest to size. Ties go to
// the size listed first.
func Closest(images []Image, size int) []Image {
	if len(images) == 0 {
		return nil
	}
	best := images[0].Size
	bestDist := distance(best, size)
	for _, img := range images[1:] {
		if d := distance(img.Size, size); d < bestDist {
			best, bestDist = img.Size, d
		}
	}

	var out []Image
	for _, img := range images {
		if img.Size == best {
			out = append(out, img)
		}
	}
	return out
}

func distance(nominal uint32, size int) int {
	d := int(nominal) - size
	if d < 0 {
		return -d
	}
	return d
}

// LoadFile reads the Xcursor file at path and returns its frames closest to size.
func LoadFile(path string, size int) (*FrameSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	images, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return NewFrameSet(Closest(images, size))
}

// Load finds the cursor name in the theme and loads its frames closest to size.
func (t *Theme) Load(name string, size int) (*FrameSet, error) {
	path, ok := t.Find(name)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%q in theme %q", name, t.name)
	}
	fs, err := LoadFile(path, size)
	if err != nil {
		return nil, err
	}
	logx.Logger().Debug("xcursor: loaded", "name", name, "path", path, "size", size, "frames", len(fs.images))
	return fs, nil
}

// LoadFirst tries each name in turn and returns the first cursor that loads.
// When none does, the error combines every attempt.
func (t *Theme) LoadFirst(names []string, size int) (*FrameSet, error) {
	var errs error
	for _, name := range names {
		fs, err := t.Load(name, size)
		if err == nil {
			return fs, nil
		}
		errs = multierr.Append(errs, err)
	}
	if errs == nil {
		errs = errors.Wrap(ErrNotFound, "no names given")
	}
	return nil, errs
}
