package render

import "image/color"

// Canvas and primitive colors tuned for the light editor theme.
var (
	ColorCanvas    = color.NRGBA{R: 235, G: 237, B: 240, A: 255}
	ColorHole      = color.NRGBA{R: 70, G: 74, B: 82, A: 255}
	ColorChipBody  = color.NRGBA{R: 40, G: 42, B: 48, A: 255}
	ColorChipPin   = color.NRGBA{R: 190, G: 195, B: 200, A: 255}
	ColorChipLabel = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	ColorGhost     = color.NRGBA{R: 80, G: 120, B: 255, A: 110}
)

// wireColors maps the wire color names stored on entities to render
// colors. Unknown names fall back to ColorWireDefault.
var wireColors = map[string]color.NRGBA{
	"red":    {R: 205, G: 50, B: 50, A: 255},
	"green":  {R: 50, G: 160, B: 70, A: 255},
	"blue":   {R: 55, G: 95, B: 210, A: 255},
	"yellow": {R: 215, G: 185, B: 40, A: 255},
	"orange": {R: 230, G: 140, B: 40, A: 255},
	"black":  {R: 30, G: 30, B: 30, A: 255},
	"white":  {R: 245, G: 245, B: 245, A: 255},
	"grey":   {R: 130, G: 134, B: 140, A: 255},
}

// ColorWireDefault is used for wires with no or unknown color.
var ColorWireDefault = color.NRGBA{R: 55, G: 95, B: 210, A: 255}

// WireColor resolves a wire color name to its render color.
func WireColor(name string) color.NRGBA {
	if c, ok := wireColors[name]; ok {
		return c
	}
	return ColorWireDefault
}

// WireColorNames lists the selectable wire colors in palette order.
func WireColorNames() []string {
	return []string{"red", "green", "blue", "yellow", "orange", "black", "white", "grey"}
}
