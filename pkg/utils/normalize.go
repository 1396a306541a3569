package utils

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"math"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

var ErrUnsupportedImage = errors.New("unsupported image format (jpeg/png/webp)")

// NormalizeToJPG decodes a jpeg/png/webp image, applies its EXIF orientation,
// shrinks it to maxWidth (when > 0) and re-encodes it as JPEG.
func NormalizeToJPG(input []byte, maxWidth int, quality int) ([]byte, error) {
	if len(input) == 0 {
		return nil, errors.New("empty image")
	}
	if quality <= 0 || quality > 100 {
		quality = 85
	}

	img, err := decodeImage(input)
	if err != nil {
		return nil, err
	}

	img = applyOrientation(img, readOrientation(input))
	if maxWidth > 0 {
		img = resizeMaxWidth(img, maxWidth)
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// CheckImage reads only the image header and returns the detected format.
func CheckImage(b []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return "", ErrUnsupportedImage
	}
	return format, nil
}

func decodeImage(b []byte) (image.Image, error) {
	decoders := []func(*bytes.Reader) (image.Image, error){
		func(r *bytes.Reader) (image.Image, error) { return jpeg.Decode(r) },
		func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		func(r *bytes.Reader) (image.Image, error) { return webp.Decode(r) },
	}
	for _, decode := range decoders {
		if img, err := decode(bytes.NewReader(b)); err == nil {
			return img, nil
		}
	}
	return nil, ErrUnsupportedImage
}

// readOrientation returns the EXIF orientation tag, 1 when absent.
func readOrientation(b []byte) int {
	x, err := exif.Decode(bytes.NewReader(b))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	ori, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return ori
}

// pixelMap maps a source pixel (x, y) of a w*h image to its destination.
type pixelMap func(x, y, w, h int) (int, int)

var (
	flipH  pixelMap = func(x, y, w, h int) (int, int) { return w - 1 - x, y }
	flipV  pixelMap = func(x, y, w, h int) (int, int) { return x, h - 1 - y }
	rot180 pixelMap = func(x, y, w, h int) (int, int) { return w - 1 - x, h - 1 - y }
	rotCW  pixelMap = func(x, y, w, h int) (int, int) { return h - 1 - y, x }
	rotCCW pixelMap = func(x, y, w, h int) (int, int) { return y, w - 1 - x }
)

func remap(src image.Image, m pixelMap, swap bool) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dw, dh := w, h
	if swap {
		dw, dh = h, w
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := m(x, y, w, h)
			dst.Set(dx, dy, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

// applyOrientation undoes EXIF orientations 2..8.
func applyOrientation(src image.Image, ori int) image.Image {
	switch ori {
	case 2:
		return remap(src, flipH, false)
	case 3:
		return remap(src, rot180, false)
	case 4:
		return remap(src, flipV, false)
	case 5:
		return remap(remap(src, flipH, false), rotCW, true)
	case 6:
		return remap(src, rotCW, true)
	case 7:
		return remap(remap(src, flipH, false), rotCCW, true)
	case 8:
		return remap(src, rotCCW, true)
	default:
		return src
	}
}

func resizeMaxWidth(src image.Image, maxW int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || w <= maxW {
		return src
	}

	newH := int(math.Round(float64(h) * float64(maxW) / float64(w)))
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
