package composite

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func solid(r image.Rectangle, c color.Color) *image.RGBA {
	img := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encode(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestComposeDimensions(t *testing.T) {
	tests := []struct {
		name        string
		left, right image.Rectangle
		want        image.Rectangle
	}{
		{"equal", image.Rect(0, 0, 10, 20), image.Rect(0, 0, 10, 20), image.Rect(0, 0, 20, 20)},
		{"left wider", image.Rect(0, 0, 30, 5), image.Rect(0, 0, 10, 40), image.Rect(0, 0, 60, 40)},
		{"right taller", image.Rect(0, 0, 8, 8), image.Rect(0, 0, 12, 100), image.Rect(0, 0, 24, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Compose(solid(tt.left, red), solid(tt.right, blue))
			assert.Equal(t, tt.want, out.Bounds())
		})
	}
}

func TestComposePlacementAndWhiteFill(t *testing.T) {
	left := solid(image.Rect(0, 0, 4, 6), red)
	right := solid(image.Rect(0, 0, 3, 2), blue)

	out := Compose(left, right)
	require.Equal(t, image.Rect(0, 0, 8, 6), out.Bounds())

	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			var want color.RGBA
			switch {
			case x < 4:
				want = red
			case x < 7 && y < 2:
				want = blue
			default:
				want = white
			}
			assert.Equal(t, want, out.RGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestComposeTransparentPixelsShowWhite(t *testing.T) {
	left := image.NewRGBA(image.Rect(0, 0, 2, 2))
	right := solid(image.Rect(0, 0, 2, 2), blue)

	out := Compose(left, right)
	assert.Equal(t, white, out.RGBAAt(0, 0))
	assert.Equal(t, blue, out.RGBAAt(2, 0))
}

func TestComposeNonZeroOrigin(t *testing.T) {
	left := solid(image.Rect(5, 5, 7, 7), red)
	right := solid(image.Rect(0, 0, 2, 2), blue)

	out := Compose(left, right)
	assert.Equal(t, red, out.RGBAAt(0, 0))
	assert.Equal(t, red, out.RGBAAt(1, 1))
}

func TestComposePNG(t *testing.T) {
	data, err := ComposePNG(
		encode(t, solid(image.Rect(0, 0, 10, 10), red)),
		encode(t, solid(image.Rect(0, 0, 5, 20), blue)),
	)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 20), img.Bounds())
	assert.Equal(t, white, color.RGBAModel.Convert(img.At(19, 19)))
}

func TestComposePNGDecodeErrors(t *testing.T) {
	good := encode(t, solid(image.Rect(0, 0, 1, 1), red))

	_, err := ComposePNG([]byte("junk"), good)
	assert.ErrorContains(t, err, "decode left image")

	_, err = ComposePNG(good, nil)
	assert.ErrorContains(t, err, "decode right image")
}
