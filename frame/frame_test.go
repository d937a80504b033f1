package frame

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/pixeldata/rgb565"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s *Sequence) []rgb565.Color {
	var out []rgb565.Color
	for {
		c, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, c)
	}
}

// Each pixel encodes its own position, red is x and blue is y
func positional(r image.Rectangle) *image.RGBA {
	m := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.Set(x, y, color.RGBA{uint8(x-r.Min.X) << 3, 0, uint8(y-r.Min.Y) << 3, 0xff})
		}
	}
	return m
}

func writePNG(t *testing.T, path string, m image.Image) {
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, m))
}

func TestColumnMajor(t *testing.T) {
	for _, r := range []image.Rectangle{
		image.Rect(0, 0, 2, 3),
		image.Rect(5, 7, 8, 9),
	} {
		s, err := Decode(positional(r))
		require.NoError(t, err)

		w, h := r.Dx(), r.Dy()
		assert.Equal(t, w, s.Width())
		assert.Equal(t, h, s.Height())
		assert.Equal(t, w*h, s.Len())

		got := drain(s)
		require.Len(t, got, w*h)
		for i, c := range got {
			assert.Equal(t, rgb565.Pack(uint8(i/h)<<3, 0, uint8(i%h)<<3), c, "value %d", i)
		}
	}
}

func TestNotRestartable(t *testing.T) {
	s, err := Decode(positional(image.Rect(0, 0, 1, 2)))
	require.NoError(t, err)

	assert.Equal(t, 2, s.Remaining())
	assert.Len(t, drain(s), 2)
	assert.Equal(t, 0, s.Remaining())

	_, ok := s.Next()
	assert.False(t, ok)
	assert.Empty(t, drain(s))
}

func TestEmptyImage(t *testing.T) {
	s, err := Decode(image.NewRGBA(image.Rect(0, 0, 0, 0)), Colors(4))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	_, ok := s.Next()
	assert.False(t, ok)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	red := image.NewRGBA(image.Rect(0, 0, 2, 1))
	red.Set(0, 0, color.RGBA{0xff, 0x00, 0x00, 0xff})
	red.Set(1, 0, color.RGBA{0xff, 0x00, 0x00, 0xff})

	path := filepath.Join(dir, "red.png")
	writePNG(t, path, red)

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, []rgb565.Color{0xf800, 0xf800}, drain(s))
}

func TestOpenFailure(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "readme.txt")
	require.NoError(t, ioutil.WriteFile(text, []byte("not an image\n"), 0644))

	truncated := filepath.Join(dir, "truncated.png")
	require.NoError(t, ioutil.WriteFile(truncated, []byte("\x89PNG\r\n\x1a\n\x00\x00"), 0644))

	tests := map[string]string{
		"text":      text,
		"truncated": truncated,
		"missing":   filepath.Join(dir, "missing.png"),
	}

	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := Open(path)
			assert.Error(t, err)
			assert.Nil(t, s)
		})
	}
}

func TestColors(t *testing.T) {
	m := positional(image.Rect(0, 0, 8, 8))

	s, err := Decode(m, Colors(2))
	require.NoError(t, err)

	unique := make(map[rgb565.Color]struct{})
	for _, c := range drain(s) {
		unique[c] = struct{}{}
	}
	assert.LessOrEqual(t, len(unique), 2)
	assert.NotEmpty(t, unique)
}

func TestColorsRange(t *testing.T) {
	m := positional(image.Rect(0, 0, 1, 1))
	for _, n := range []int{-1, 257} {
		_, err := Decode(m, Colors(n))
		assert.Equal(t, ErrColors, err)

		// Options are checked before the file is touched
		_, err = Open("does-not-exist.png", Colors(n))
		assert.Equal(t, ErrColors, err)
	}
}

// pngHeader returns just the signature and IHDR chunk of an 8-bit RGB PNG
func pngHeader(width, height uint32) []byte {
	b := new(bytes.Buffer)
	b.WriteString("\x89PNG\r\n\x1a\n")

	var chunk [4 + 13]byte
	copy(chunk[:4], "IHDR")
	binary.BigEndian.PutUint32(chunk[4:8], width)
	binary.BigEndian.PutUint32(chunk[8:12], height)
	chunk[12] = 8 // Bit depth
	chunk[13] = 2 // Truecolor

	_ = binary.Write(b, binary.BigEndian, uint32(13))
	b.Write(chunk[:])
	_ = binary.Write(b, binary.BigEndian, crc32.ChecksumIEEE(chunk[:]))

	return b.Bytes()
}

func TestMaxPixels(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "wide.png")
	writePNG(t, path, positional(image.Rect(0, 0, 2, 1)))

	_, err := Open(path, MaxPixels(1))
	assert.True(t, errors.Is(err, ErrTooLarge), err)

	for _, n := range []int{0, 2} {
		s, err := Open(path, MaxPixels(n))
		require.NoError(t, err)
		assert.Equal(t, 2, s.Len())
	}

	_, err = Open(path, MaxPixels(-1))
	assert.Error(t, err)
}

func TestOpenHugeHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.png")
	require.NoError(t, ioutil.WriteFile(path, pngHeader(100000, 100000), 0644))

	s, err := Open(path)
	assert.True(t, errors.Is(err, ErrTooLarge), err)
	assert.Nil(t, s)
}
