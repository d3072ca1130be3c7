package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	"github.com/blezek/tga"
	_ "github.com/oov/psd"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// DecodeImage decodes data in any supported format.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		return img, nil
	}
	img, tgaErr := tga.Decode(bytes.NewReader(data))
	if tgaErr != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// ImageSize returns the pixel dimensions of the encoded image.
// TGA has no registered header decoder, so it is decoded in full.
func ImageSize(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err == nil {
		return cfg.Width, cfg.Height, nil
	}
	img, tgaErr := tga.Decode(bytes.NewReader(data))
	if tgaErr != nil {
		return 0, 0, fmt.Errorf("failed to read image header: %w", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

// Resize scales img down so its longest side is at most maxSize.
// Images already within bounds are returned unchanged.
func Resize(img image.Image, maxSize int) image.Image {
	rect := img.Bounds()
	longest := rect.Dx()
	if rect.Dy() > longest {
		longest = rect.Dy()
	}
	if maxSize <= 0 || longest <= maxSize {
		return img
	}

	scale := float64(maxSize) / float64(longest)
	w := max(1, int(float64(rect.Dx())*scale))
	h := max(1, int(float64(rect.Dy())*scale))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, rect, draw.Src, nil)
	return dst
}

// Encode writes img as JPEG at quality when compressed is set, as PNG
// otherwise. It returns the encoded bytes and the matching file extension.
func Encode(img image.Image, compressed bool, quality int) ([]byte, string, error) {
	var buf bytes.Buffer
	if compressed {
		if quality < 1 || quality > 100 {
			quality = jpeg.DefaultQuality
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, "", fmt.Errorf("failed to encode jpeg: %w", err)
		}
		return buf.Bytes(), ".jpg", nil
	}
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), ".png", nil
}

// Reimport decodes data, bounds it to maxSize and re-encodes it.
func Reimport(data []byte, maxSize int, compressed bool, quality int) ([]byte, string, error) {
	img, err := DecodeImage(data)
	if err != nil {
		return nil, "", err
	}
	return Encode(Resize(img, maxSize), compressed, quality)
}
