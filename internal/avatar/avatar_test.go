package avatar

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(t *testing.T, width, height int, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, encode(&buf, img))
	return buf.Bytes()
}

func encodePNG(buf *bytes.Buffer, img image.Image) error {
	return png.Encode(buf, img)
}

func encodeJPEG(buf *bytes.Buffer, img image.Image) error {
	return jpeg.Encode(buf, img, nil)
}

func TestNormalizePNG(t *testing.T) {
	out, err := Normalize(testImage(t, 600, 400, encodePNG))
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, Size, img.Bounds().Dx())
	assert.Equal(t, Size, img.Bounds().Dy())
}

func TestNormalizeJPEGReencodesAsPNG(t *testing.T) {
	out, err := Normalize(testImage(t, 300, 700, encodeJPEG))
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, Size, img.Bounds().Dx())
	assert.Equal(t, Size, img.Bounds().Dy())
}

func TestNormalizeUpscalesSmallImages(t *testing.T) {
	out, err := Normalize(testImage(t, 40, 40, encodePNG))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, Size, img.Bounds().Dx())
	assert.Equal(t, Size, img.Bounds().Dy())
}

func TestNormalizeRejectsNonImage(t *testing.T) {
	_, err := Normalize([]byte("definitely not an image"))
	assert.Error(t, err)

	_, err = Normalize(nil)
	assert.Error(t, err)
}

func TestAllowedExt(t *testing.T) {
	tests := []struct {
		filename string
		ok       bool
	}{
		{"me.jpg", true},
		{"me.jpeg", true},
		{"me.png", true},
		{"ME.PNG", true},
		{"photo.JPeG", true},
		{"me.gif", false},
		{"me.pdf", false},
		{"me", false},
		{"me.png.exe", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, AllowedExt(tt.filename), "filename %q", tt.filename)
	}
}
