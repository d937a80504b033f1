/*
Package frame loads an image file and quantizes its pixels to packed RGB565
colors.

Pixels are visited in column-major order; every row of the first column from
top to bottom, then every row of the second column and so on. This matches a
display that is driven one vertical line at a time, such as a spinning strip
of LEDs. No resizing or cropping takes place, so a 2 by 3 image produces six
values.
*/
package frame

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"

	"github.com/bodgit/pixeldata/rgb565"
	"github.com/ericpauley/go-quantize/quantize"
)

const (
	// MaxColors is the largest palette Colors accepts
	MaxColors = 256

	// DefaultMaxPixels is the largest image Open decodes unless overridden
	// with MaxPixels
	DefaultMaxPixels = 1 << 24
)

var (
	// ErrColors is returned when the palette reduction size is out of range
	ErrColors = errors.New("frame: colors must be between 0 and 256")
	// ErrTooLarge is returned when an image header claims more pixels than
	// allowed
	ErrTooLarge = errors.New("frame: image is too large")
)

// Option is a functional option for Open
type Option func(*options) error

type options struct {
	colors    int
	maxPixels int
}

// Colors reduces the image to at most n colors with a median cut before
// packing. Zero leaves the image untouched.
func Colors(n int) Option {
	return func(o *options) error {
		if n < 0 || n > MaxColors {
			return ErrColors
		}
		o.colors = n
		return nil
	}
}

// MaxPixels limits the size of image Open will decode, checked against the
// image header before any pixel data is read. Zero removes the limit.
func MaxPixels(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return errors.New("frame: maximum pixels must not be negative")
		}
		o.maxPixels = n
		return nil
	}
}

// Sequence yields the packed colors of an image exactly once.
type Sequence struct {
	m      image.Image
	bounds image.Rectangle
	i, n   int
}

func newSequence(m image.Image) *Sequence {
	b := m.Bounds()
	return &Sequence{
		m:      m,
		bounds: b,
		n:      b.Dx() * b.Dy(),
	}
}

// Width returns the number of columns
func (s *Sequence) Width() int {
	return s.bounds.Dx()
}

// Height returns the number of rows, which is also the number of values per
// column
func (s *Sequence) Height() int {
	return s.bounds.Dy()
}

// Len returns the total number of values in the sequence
func (s *Sequence) Len() int {
	return s.n
}

// Remaining returns the number of values not yet consumed
func (s *Sequence) Remaining() int {
	return s.n - s.i
}

// Next returns the next packed color, or false once the sequence is
// exhausted
func (s *Sequence) Next() (rgb565.Color, bool) {
	if s.i >= s.n {
		return 0, false
	}

	h := s.bounds.Dy()
	x := s.bounds.Min.X + s.i/h
	y := s.bounds.Min.Y + s.i%h
	s.i++

	return rgb565.Convert(s.m.At(x, y)), true
}

func reduce(m image.Image, n int) image.Image {
	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}

func parseOptions(opts []Option) (*options, error) {
	o := &options{
		maxPixels: DefaultMaxPixels,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func decode(m image.Image, o *options) *Sequence {
	if o.colors > 0 && !m.Bounds().Empty() {
		m = reduce(m, o.colors)
	}
	return newSequence(m)
}

// Decode quantizes an already decoded image
func Decode(m image.Image, opts ...Option) (*Sequence, error) {
	o, err := parseOptions(opts)
	if err != nil {
		return nil, err
	}
	return decode(m, o), nil
}

// Open decodes the image at path with any of the registered image formats.
// The file is closed before returning in all cases.
func Open(path string, opts ...Option) (*Sequence, error) {
	o, err := parseOptions(opts)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if o.maxPixels > 0 {
		c, _, err := image.DecodeConfig(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if c.Width < 0 || c.Height < 0 || c.Height > 0 && c.Width > o.maxPixels/c.Height {
			return nil, fmt.Errorf("%s: %dx%d: %w", path, c.Width, c.Height, ErrTooLarge)
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
	}

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return decode(m, o), nil
}
