// Package composite places two screenshots side by side on a white canvas.
package composite

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
)

// Compose returns a canvas 2*max(width) wide and max(height) tall. left is
// drawn at the origin and right at x = max(width). Areas not covered by
// either image are opaque white.
func Compose(left, right image.Image) *image.RGBA {
	lb, rb := left.Bounds(), right.Bounds()
	cellW := max(lb.Dx(), rb.Dx())
	h := max(lb.Dy(), rb.Dy())

	canvas := image.NewRGBA(image.Rect(0, 0, 2*cellW, h))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	draw.Draw(canvas, image.Rect(0, 0, lb.Dx(), lb.Dy()), left, lb.Min, draw.Over)
	draw.Draw(canvas, image.Rect(cellW, 0, cellW+rb.Dx(), rb.Dy()), right, rb.Min, draw.Over)

	return canvas
}

// ComposePNG decodes two PNG images, composes them and encodes the result
func ComposePNG(leftPNG, rightPNG []byte) ([]byte, error) {
	left, err := png.Decode(bytes.NewReader(leftPNG))
	if err != nil {
		return nil, fmt.Errorf("decode left image: %w", err)
	}
	right, err := png.Decode(bytes.NewReader(rightPNG))
	if err != nil {
		return nil, fmt.Errorf("decode right image: %w", err)
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, Compose(left, right)); err != nil {
		return nil, fmt.Errorf("encode composite: %w", err)
	}
	return buf.Bytes(), nil
}
