package scene

import (
	"fmt"
	"image/color"
)

// Color is a named color from the SVG palette.
type Color string

const (
	Black  Color = "black"
	Red    Color = "red"
	Green  Color = "green"
	Blue   Color = "blue"
	Yellow Color = "yellow"
	Purple Color = "purple"
	White  Color = "white"
)

var palette = map[Color]color.RGBA{
	Black:  {0, 0, 0, 255},
	Red:    {255, 0, 0, 255},
	Green:  {0, 128, 0, 255},
	Blue:   {0, 0, 255, 255},
	Yellow: {255, 255, 0, 255},
	Purple: {128, 0, 128, 255},
	White:  {255, 255, 255, 255},
}

// RGBA resolves the color. Unknown names resolve to opaque gray.
func (c Color) RGBA() color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return color.RGBA{128, 128, 128, 255}
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	rgba := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
