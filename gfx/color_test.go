// Copyright 2025 the Ori Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gfx

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"honnef.co/go/color"
)

func TestFromColorLinearizes(t *testing.T) {
	var c color.Color
	c.Space = color.SRGB
	c.Values[0] = 0.5
	c.Values[1] = 1
	c.Values[2] = 0
	c.Values[3] = 0.8

	got := FromColor(&c)
	// sRGB 0.5 decodes to roughly 0.214 in linear light; 0 and 1 are
	// fixed points of the transfer function.
	assert.InDelta(t, 0.214, got.R, 0.005)
	assert.InDelta(t, 1, got.G, 1e-4)
	assert.InDelta(t, 0, got.B, 1e-4)
	assert.InDelta(t, 0.8, got.A, 1e-6)
}

func TestPremul(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}
	p := c.Premul()
	assert.InDelta(t, 0.5, p[0], 1e-6)
	assert.InDelta(t, 0.25, p[1], 1e-6)
	assert.InDelta(t, 0, p[2], 1e-6)
	assert.InDelta(t, 0.5, p[3], 1e-6)
}

func TestWithAlphaFactor(t *testing.T) {
	c := White.WithAlphaFactor(0.25)
	assert.InDelta(t, 0.25, c.A, 1e-6)
	assert.InDelta(t, 1, c.R, 1e-6)
}

func TestImageSampleClamps(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	// Top-left texel red, the rest transparent.
	src.Pix[0] = 255
	src.Pix[3] = 255
	img := NewImage(src)

	texel := img.Sample(0.1, 0.1)
	assert.InDelta(t, 1, texel[0], 0.01)

	// Out-of-range coordinates clamp to the edge texels.
	edge := img.Sample(-3, -3)
	assert.Equal(t, texel, edge)
}
