package media

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageSize(t *testing.T) {
	w, h, err := ImageSize(encodePNG(t, testImage(200, 100)))
	require.NoError(t, err)
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)

	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, testImage(30, 40)))
	w, h, err = ImageSize(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 30, w)
	assert.Equal(t, 40, h)

	_, _, err = ImageSize([]byte("not an image"))
	assert.Error(t, err)
}

func TestResize(t *testing.T) {
	img := testImage(200, 100)

	out := Resize(img, 64)
	assert.Equal(t, 64, out.Bounds().Dx())
	assert.Equal(t, 32, out.Bounds().Dy())

	assert.Same(t, img, Resize(img, 256))
	assert.Same(t, img, Resize(img, 0))
}

func TestReimport(t *testing.T) {
	src := encodePNG(t, testImage(256, 128))

	t.Run("Compressed", func(t *testing.T) {
		data, ext, err := Reimport(src, 128, true, 50)
		require.NoError(t, err)
		assert.Equal(t, ".jpg", ext)

		cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 128, cfg.Width)
		assert.Equal(t, 64, cfg.Height)
	})

	t.Run("Lossless", func(t *testing.T) {
		data, ext, err := Reimport(src, 0, false, 0)
		require.NoError(t, err)
		assert.Equal(t, ".png", ext)

		cfg, err := png.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 256, cfg.Width)
	})
}

func testWAV(t *testing.T, rate beep.SampleRate, samples int) []byte {
	t.Helper()
	buf := &seekBuffer{}
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(buf, beep.Silence(samples), format))
	return buf.Bytes()
}

func TestResampleWAV(t *testing.T) {
	src := testWAV(t, 44100, 4410)

	rate, err := WAVSampleRate(src)
	require.NoError(t, err)
	assert.Equal(t, 44100, rate)

	out, err := ResampleWAV(src, 22050, ResampleQuality(0.5))
	require.NoError(t, err)

	stream, format, err := wav.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	defer stream.Close()
	assert.Equal(t, beep.SampleRate(22050), format.SampleRate)
	assert.Equal(t, 2, format.NumChannels)
	assert.InDelta(t, 2205, stream.Len(), 16)

	_, err = ResampleWAV(src, 0, 4)
	assert.Error(t, err)
	_, err = ResampleWAV([]byte("RIFF"), 22050, 4)
	assert.Error(t, err)
}

func TestResampleQuality(t *testing.T) {
	assert.Equal(t, 1, ResampleQuality(0))
	assert.Equal(t, 4, ResampleQuality(0.5))
	assert.Equal(t, 6, ResampleQuality(1))
	assert.Equal(t, 6, ResampleQuality(3))
}

func TestSeekBuffer(t *testing.T) {
	b := &seekBuffer{}
	_, err := b.Write([]byte("hello world"))
	require.NoError(t, err)

	pos, err := b.Seek(0, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)
	_, err = b.Write([]byte("J"))
	require.NoError(t, err)

	_, err = b.Seek(-5, io.SeekEnd)
	require.NoError(t, err)
	_, err = b.Write([]byte("There!"))
	require.NoError(t, err)
	assert.Equal(t, "Jello There!", string(b.Bytes()))

	_, err = b.Seek(-100, io.SeekCurrent)
	assert.Error(t, err)
}
