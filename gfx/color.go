// Copyright 2025 the Ori Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gfx

import (
	"honnef.co/go/color"
)

// Color is a straight-alpha linear sRGB color, the form draw instances
// and the compositor work in.
type Color struct {
	R, G, B, A float32
}

var (
	Transparent = Color{}
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
)

// FromColor converts a managed color to the linear sRGB form used by
// the rasterizer.
func FromColor(c *color.Color) Color {
	cc := c.Convert(color.LinearSRGB)
	return Color{
		R: float32(cc.Values[0]),
		G: float32(cc.Values[1]),
		B: float32(cc.Values[2]),
		A: float32(cc.Values[3]),
	}
}

// Premul returns the premultiplied vec4 form written into draw
// instances.
func (c Color) Premul() [4]float32 {
	return [4]float32{
		c.R * c.A,
		c.G * c.A,
		c.B * c.A,
		c.A,
	}
}

func (c Color) WithAlphaFactor(alpha float32) Color {
	c.A *= alpha
	return c
}
