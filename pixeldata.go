/*
Package pixeldata converts a directory of images into C source for a
persistence of vision display: a two dimensional table of RGB565 pixel data
with one row per image, a count of the images and a pair of gamma correction
tables for 5-bit and 6-bit channels.
*/
package pixeldata

import (
	"errors"
	"fmt"
	"io"

	"github.com/bodgit/pixeldata/frame"
	"github.com/bodgit/pixeldata/gamma"
	"github.com/bodgit/pixeldata/hextable"
	"github.com/rs/zerolog"
)

const (
	// DefaultRowWidth is the declared number of values in each image row
	DefaultRowWidth = 240

	pixelDigits  = 4
	pixelColumns = 9
	gammaDigits  = 2
	gammaColumns = 12

	maxBitmaps = 255
)

var errTooMany = fmt.Errorf("more than %d images", maxBitmaps)

// Option is a functional option for New
type Option func(*Converter) error

// RowWidth overrides the declared width of each image row. The width is not
// checked against the images.
func RowWidth(n int) Option {
	return func(c *Converter) error {
		if n < 1 {
			return errors.New("row width must be positive")
		}
		c.rowWidth = n
		return nil
	}
}

// Colors reduces each image to at most n colors before packing
func Colors(n int) Option {
	return func(c *Converter) error {
		if n < 0 || n > frame.MaxColors {
			return frame.ErrColors
		}
		c.frameOptions = append(c.frameOptions, frame.Colors(n))
		return nil
	}
}

// Converter writes the generated source to an io.Writer
type Converter struct {
	w      io.Writer
	logger zerolog.Logger
	table  *hextable.Writer

	rowWidth     int
	frameOptions []frame.Option
}

// New returns a Converter writing to w and logging progress to logger
func New(w io.Writer, logger zerolog.Logger, options ...Option) (*Converter, error) {
	c := &Converter{
		w:        w,
		logger:   logger,
		table:    hextable.New(w, 0, pixelColumns, pixelDigits),
		rowWidth: DefaultRowWidth,
	}

	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *Converter) printf(format string, a ...interface{}) error {
	_, err := fmt.Fprintf(c.w, format, a...)
	return err
}

// Convert writes the tables for every image in dir and returns the number of
// images converted. Entries that are not regular files are ignored and files
// that cannot be decoded are logged and skipped.
func (c *Converter) Convert(dir string) (int, error) {
	files, err := regularFiles(dir, c.logger)
	if err != nil {
		return 0, err
	}

	if err := c.printf("const uint16_t PROGMEM pixelData[][%d] = {\n", c.rowWidth); err != nil {
		return 0, err
	}

	count := 0
	for _, file := range files {
		ok, err := c.convertImage(file, count > 0)
		if err != nil {
			return count, err
		}
		if ok {
			count++
		}
	}

	if err := c.printf("\n};\n\n"); err != nil {
		return count, err
	}

	if count > maxBitmaps {
		return count, errTooMany
	}

	if err := c.printf("const uint8_t PROGMEM bitmapCount = %d;\n\n", count); err != nil {
		return count, err
	}

	if err := c.writeGamma("gamma5", gamma.Table5()); err != nil {
		return count, err
	}

	if err := c.writeGamma("gamma6", gamma.Table6()); err != nil {
		return count, err
	}

	return count, nil
}

// convertImage writes one row, preceded by a row separator if this is not
// the first. A file that fails to decode writes nothing and is not an error.
func (c *Converter) convertImage(file string, separate bool) (bool, error) {
	c.logger.Info().Str("file", file).Msg("Image processing")

	s, err := frame.Open(file, c.frameOptions...)
	if err != nil {
		c.logger.Warn().Err(err).Str("file", file).Msg("Not an image file")
		return false, nil
	}

	c.logger.Debug().Str("file", file).Int("width", s.Width()).Int("height", s.Height()).Msg("Decoded")

	return true, c.writeRow(s, separate)
}

func (c *Converter) writeRow(s *frame.Sequence, separate bool) error {
	if separate {
		if err := c.printf(",\n"); err != nil {
			return err
		}
	}

	if err := c.printf("{ "); err != nil {
		return err
	}

	if s.Len() == 0 {
		// The table writer never closes an empty table
		return c.printf("}")
	}

	c.table.Reset(s.Len(), pixelColumns, pixelDigits)
	for v, ok := s.Next(); ok; v, ok = s.Next() {
		if err := c.table.WriteValue(uint64(v)); err != nil {
			return err
		}
	}

	return nil
}

func (c *Converter) writeGamma(name string, t []uint8) error {
	if err := c.printf("const uint8_t PROGMEM %s[] = { ", name); err != nil {
		return err
	}

	c.table.Reset(len(t), gammaColumns, gammaDigits)
	for _, v := range t {
		if err := c.table.WriteValue(uint64(v)); err != nil {
			return err
		}
	}

	return c.printf(";\n\n")
}
