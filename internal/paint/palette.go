// Package paint implements the drawing state machine and on-frame toolbar
// for the Rangoli gesture painter.
package paint

import (
	"fmt"
	"image/color"
)

// Palette colors. gocv converts color.RGBA to OpenCV's BGR scalar, so the
// values here are plain RGB.
var (
	White = color.RGBA{R: 255, G: 255, B: 255}
	Black = color.RGBA{}
	Red   = color.RGBA{R: 255}
	Green = color.RGBA{G: 255}
	Blue  = color.RGBA{B: 255}
)

// paletteNames maps display labels to palette colors in toolbar order.
var paletteNames = []struct {
	Name  string
	Color color.RGBA
}{
	{"Red", Red},
	{"Green", Green},
	{"Blue", Blue},
	{"Black", Black},
	{"White", White},
}

// ColorByName resolves a palette color from its display label.
func ColorByName(name string) (color.RGBA, error) {
	for _, p := range paletteNames {
		if p.Name == name {
			return p.Color, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("unknown palette color %q", name)
}

// NameOf returns the display label of a palette color, or "" if the
// color is not part of the palette.
func NameOf(c color.RGBA) string {
	for _, p := range paletteNames {
		if p.Color == c {
			return p.Name
		}
	}
	return ""
}
