// Copyright 2025 the Ori Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gfx

import (
	"image"

	"golang.org/x/image/draw"
)

// Image is a pattern source in the premultiplied form the compositor
// samples from.
type Image struct {
	Pix *image.RGBA
}

// NewImage converts an arbitrary image to sampling form.
func NewImage(src image.Image) *Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &Image{Pix: dst}
}

func (img *Image) Width() int  { return img.Pix.Rect.Dx() }
func (img *Image) Height() int { return img.Pix.Rect.Dy() }

// Sample returns the premultiplied linear [0,1] color of the texel
// containing the normalized coordinate (u, v), clamped at the edges.
func (img *Image) Sample(u, v float32) [4]float32 {
	w, h := img.Width(), img.Height()
	x := int(u * float32(w))
	y := int(v * float32(h))
	x = min(max(x, 0), w-1)
	y = min(max(y, 0), h-1)
	i := img.Pix.PixOffset(x, y)
	s := img.Pix.Pix[i : i+4 : i+4]
	const inv = 1.0 / 255.0
	return [4]float32{
		float32(s[0]) * inv,
		float32(s[1]) * inv,
		float32(s[2]) * inv,
		float32(s[3]) * inv,
	}
}
