package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultPlaceholderWidth  = 400
	DefaultPlaceholderHeight = 200

	placeholderMargin = 10
)

var placeholderText = color.RGBA{R: 0xd0, A: 0xff}

// Placeholder renders a white PNG of the given size with "HTTP <status>"
// and reason drawn in red. The reason is wrapped to the image width and
// cut off at the bottom edge.
func Placeholder(width, height, status int, reason string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(placeholderText),
		Face: face,
	}

	lineHeight := face.Metrics().Height.Ceil() + 2
	charWidth := face.Advance
	perLine := (width - 2*placeholderMargin) / charWidth

	lines := append([]string{fmt.Sprintf("HTTP %d", status)}, wrap(reason, perLine)...)
	y := placeholderMargin + face.Ascent
	for _, line := range lines {
		if y+face.Descent > height {
			break
		}
		d.Dot = fixed.P(placeholderMargin, y)
		d.DrawString(line)
		y += lineHeight
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}

// wrap splits s into lines of at most width characters, preferring word
// boundaries
func wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		for len(word) > width {
			if cur.Len() > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
