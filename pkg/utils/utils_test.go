package utils

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizeToJPGResizes(t *testing.T) {
	out, err := NormalizeToJPG(pngBytes(t, 400, 200), 100, 90)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestNormalizeToJPGKeepsSmallImages(t *testing.T) {
	out, err := NormalizeToJPG(pngBytes(t, 30, 20), 1200, 0)
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
}

func TestNormalizeToJPGRejectsGarbage(t *testing.T) {
	_, err := NormalizeToJPG([]byte("%PDF-1.4 not an image"), 100, 85)
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = NormalizeToJPG(nil, 100, 85)
	assert.Error(t, err)
}

func TestApplyOrientationSwapsDimensions(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	src.Set(0, 0, color.RGBA{R: 255, A: 255})

	for _, ori := range []int{5, 6, 7, 8} {
		out := applyOrientation(src, ori)
		assert.Equal(t, 2, out.Bounds().Dx(), "orientation %d", ori)
		assert.Equal(t, 4, out.Bounds().Dy(), "orientation %d", ori)
	}

	// rotate 90 CW moves the top-left pixel to the top-right
	out := applyOrientation(src, 6)
	r, _, _, _ := out.At(1, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)

	assert.Equal(t, src, applyOrientation(src, 1))
}

func TestReadAllLimit(t *testing.T) {
	b, err := ReadAllLimit(strings.NewReader("hello"), 5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	_, err = ReadAllLimit(strings.NewReader("hello!"), 5)
	assert.True(t, errors.Is(err, ErrFileTooLarge))
}

func TestCheckPDFRejectsNonPDF(t *testing.T) {
	_, err := CheckPDF([]byte("definitely not a pdf"))
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_cv.pdf", SanitizeFilename("my cv.pdf"))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "scan.png", SanitizeFilename(`C:\Users\thandi\scan.png`))
	assert.Equal(t, "file", SanitizeFilename("..."+"/"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("CV.PDF", nil))
	assert.Equal(t, "image/webp", ContentType("me.webp", nil))
	assert.True(t, IsImageExt(Ext("photo.JPG")))
	assert.False(t, IsImageExt(Ext("cv.pdf")))
}

func TestCheckImage(t *testing.T) {
	format, err := CheckImage(pngBytes(t, 3, 3))
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	_, err = CheckImage([]byte("%PDF-1.4 this is not a jpeg"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
	_, err = CheckImage([]byte("\x89PNG\r\n\x1a\n"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}
