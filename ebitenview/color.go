package ebitenview

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to ebiten.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the flash target for bouncing bodies.
var ColorWhite = Color{1, 1, 1, 1}

// DefaultBackground is the clear color used when RunConfig leaves it unset.
var DefaultBackground = Color{R: 0.06, G: 0.06, B: 0.09, A: 1}

// DefaultPalette colors bodies by index, wrapping around.
var DefaultPalette = []Color{
	{R: 0.93, G: 0.33, B: 0.31, A: 1},
	{R: 0.99, G: 0.75, B: 0.27, A: 1},
	{R: 0.40, G: 0.80, B: 0.45, A: 1},
	{R: 0.31, G: 0.71, B: 0.98, A: 1},
	{R: 0.67, G: 0.48, B: 0.93, A: 1},
	{R: 0.98, G: 0.55, B: 0.75, A: 1},
}

// Lerp returns the color t of the way from c to to. t is clamped to [0, 1].
func (c Color) Lerp(to Color, t float64) Color {
	t = clamp01(t)
	return Color{
		R: c.R + (to.R-c.R)*t,
		G: c.G + (to.G-c.G)*t,
		B: c.B + (to.B-c.B)*t,
		A: c.A + (to.A-c.A)*t,
	}
}

// ToRGBA converts c to a premultiplied color.RGBA.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
