package xcursor

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Errors returned by the parser and theme lookup.
var (
	// ErrFormat is returned for data that is not a well-formed Xcursor file.
	ErrFormat = errors.New("xcursor: malformed file")

	// ErrNotFound is returned when no theme in the chain provides a cursor.
	ErrNotFound = errors.New("xcursor: cursor not found")
)

const (
	fileMagic = "Xcur"

	fileHeaderSize  = 16
	tocEntrySize    = 12
	imageHeaderSize = 36

	fileVersion  = 0x00010000
	imageVersion = 1

	chunkImage   = 0xfffd0002
	chunkComment = 0xfffe0001

	maxDimension = 0x7fff
)

// Image is one cursor bitmap.
type Image struct {
	// Size is the nominal cursor size the image was drawn for.
	Size   uint32
	Width  uint32
	Height uint32
	XHot   uint32
	YHot   uint32
	// Delay is the display time in milliseconds when animated.
	Delay uint32
	// Pix holds Width*Height premultiplied pixels in BGRA byte order.
	Pix []byte
}

// Parse decodes every image chunk of an Xcursor file, in table order.
// Comment chunks are skipped. A file with no images is an error.
func Parse(data []byte) ([]Image, error) {
	if len(data) < fileHeaderSize || string(data[:4]) != fileMagic {
		return nil, errors.Wrap(ErrFormat, "bad magic")
	}
	le := binary.LittleEndian
	header := le.Uint32(data[4:])
	ntoc := le.Uint32(data[12:])
	if header < fileHeaderSize || uint64(header) > uint64(len(data)) {
		return nil, errors.Wrapf(ErrFormat, "header size %d", header)
	}
	if uint64(header)+uint64(ntoc)*tocEntrySize > uint64(len(data)) {
		return nil, errors.Wrapf(ErrFormat, "table of %d entries exceeds file", ntoc)
	}

	var images []Image
	for i := range ntoc {
		entry := data[header+i*tocEntrySize:]
		typ, subtype, pos := le.Uint32(entry), le.Uint32(entry[4:]), le.Uint32(entry[8:])
		if typ != chunkImage {
			continue
		}
		img, err := parseImage(data, pos, subtype)
		if err != nil {
			return nil, errors.WithMessagef(err, "toc entry %d", i)
		}
		images = append(images, img)
	}
	if len(images) == 0 {
		return nil, errors.Wrap(ErrFormat, "no images")
	}
	return images, nil
}

func parseImage(data []byte, pos, size uint32) (Image, error) {
	if uint64(pos)+imageHeaderSize > uint64(len(data)) {
		return Image{}, errors.Wrapf(ErrFormat, "image chunk at %d exceeds file", pos)
	}
	le := binary.LittleEndian
	h := data[pos:]
	if le.Uint32(h) != imageHeaderSize || le.Uint32(h[4:]) != chunkImage || le.Uint32(h[8:]) != size {
		return Image{}, errors.Wrapf(ErrFormat, "image chunk at %d: header mismatch", pos)
	}

	img := Image{
		Size:   size,
		Width:  le.Uint32(h[16:]),
		Height: le.Uint32(h[20:]),
		XHot:   le.Uint32(h[24:]),
		YHot:   le.Uint32(h[28:]),
		Delay:  le.Uint32(h[32:]),
	}
	if img.Width == 0 || img.Height == 0 || img.Width > maxDimension || img.Height > maxDimension {
		return Image{}, errors.Wrapf(ErrFormat, "image size %dx%d", img.Width, img.Height)
	}
	if img.XHot > img.Width || img.YHot > img.Height {
		return Image{}, errors.Wrapf(ErrFormat, "hotspot (%d,%d) outside %dx%d", img.XHot, img.YHot, img.Width, img.Height)
	}

	start := uint64(pos) + imageHeaderSize
	end := start + uint64(img.Width)*uint64(img.Height)*4
	if end > uint64(len(data)) {
		return Image{}, errors.Wrapf(ErrFormat, "image at %d: pixel data truncated", pos)
	}
	img.Pix = make([]byte, end-start)
	copy(img.Pix, data[start:end])
	return img, nil
}

// Encode writes images as an Xcursor file, one table entry per image.
// comment, when non-empty, is stored as a copyright comment chunk.
func Encode(images []Image, comment string) []byte {
	le := binary.LittleEndian
	ntoc := uint32(len(images))
	if comment != "" {
		ntoc++
	}

	size := fileHeaderSize + int(ntoc)*tocEntrySize
	for _, img := range images {
		size += imageHeaderSize + len(img.Pix)
	}
	if comment != "" {
		size += 20 + len(comment)
	}

	out := make([]byte, 0, size)
	out = append(out, fileMagic...)
	out = le.AppendUint32(out, fileHeaderSize)
	out = le.AppendUint32(out, fileVersion)
	out = le.AppendUint32(out, ntoc)

	pos := uint32(fileHeaderSize) + ntoc*tocEntrySize
	for _, img := range images {
		out = le.AppendUint32(out, chunkImage)
		out = le.AppendUint32(out, img.Size)
		out = le.AppendUint32(out, pos)
		pos += imageHeaderSize + uint32(len(img.Pix))
	}
	if comment != "" {
		out = le.AppendUint32(out, chunkComment)
		out = le.AppendUint32(out, 1)
		out = le.AppendUint32(out, pos)
	}

	for _, img := range images {
		out = le.AppendUint32(out, imageHeaderSize)
		out = le.AppendUint32(out, chunkImage)
		out = le.AppendUint32(out, img.Size)
		out = le.AppendUint32(out, imageVersion)
		out = le.AppendUint32(out, img.Width)
		out = le.AppendUint32(out, img.Height)
		out = le.AppendUint32(out, img.XHot)
		out = le.AppendUint32(out, img.YHot)
		out = le.AppendUint32(out, img.Delay)
		out = append(out, img.Pix...)
	}
	if comment != "" {
		out = le.AppendUint32(out, 20)
		out = le.AppendUint32(out, chunkComment)
		out = le.AppendUint32(out, 1)
		out = le.AppendUint32(out, 1)
		out = le.AppendUint32(out, uint32(len(comment)))
		out = append(out, comment...)
	}
	return out
}
