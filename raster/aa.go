// Copyright 2025 the Ori Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package raster

import (
	"github.com/chewxy/math32"

	"github.com/ori-ui/fill/fmath"
)

// Defaults for the distance-probe strategy.
const (
	// DefaultAARadius is the filter radius in device pixels.
	DefaultAARadius = 1.0
	// DefaultAlphaBias shifts boundary coverage toward the inside
	// verdict. Thin strokes lose too much mass at 0.5.
	DefaultAlphaBias = 0.65
)

// sampleOffsets is the 6-point rook pattern of the supersampling
// strategy, in units of one device pixel. Offsets are multiples of
// 1/12 so every sample lands on a distinct row and column.
var sampleOffsets = [6]fmath.Vec2{
	{X: -0.25, Y: -0.41666666},
	{X: 0.41666666, Y: -0.25},
	{X: 0.083333336, Y: -0.083333336},
	{X: -0.41666666, Y: 0.083333336},
	{X: 0.25, Y: 0.25},
	{X: -0.083333336, Y: 0.41666666},
}

// coverageSupersampled evaluates the fixed 6-sample pattern around pos.
// jx and jy are the local-space footprints of one device pixel step in
// x and y, so the pattern stays pixel-sized under any instance
// transform.
func (v View) coverageSupersampled(inst *Instance, pos, jx, jy fmath.Vec2) float32 {
	inside := 0
	for _, off := range sampleOffsets {
		p := pos.Add(jx.Mul(off.X)).Add(jy.Mul(off.Y))
		if v.isInside(inst, p) {
			inside++
		}
	}
	return float32(inside) / float32(len(sampleOffsets))
}

// coverageDistance estimates coverage from the distance to the nearest
// outline, probed along n directions spread over a half turn. Each
// probe normalizes the pixel footprint out of the local frame, so the
// distance is measured in device pixels regardless of the instance
// transform. A sample count of zero degrades to the boolean fill.
func (v View) coverageDistance(inst *Instance, pos, jx, jy fmath.Vec2, aaRadius, alphaBias float32) float32 {
	inside := v.isInside(inst, pos)
	n := inst.SampleCount()
	if n == 0 {
		if inside {
			return 1
		}
		return 0
	}

	sx := 1 / (jx.Length() * aaRadius)
	sy := 1 / (jy.Length() * aaRadius)

	d := float32(1)
	for k := range n {
		theta := float32(k) * math32.Pi / float32(n)
		sin, cos := math32.Sincos(theta)
		toProbe := func(p fmath.Vec2) fmath.Vec2 {
			q := p.Sub(pos)
			q.X *= sx
			q.Y *= sy
			// Rotate by -theta so the probe direction becomes the x
			// axis.
			return fmath.Vec2{
				X: q.X*cos + q.Y*sin,
				Y: -q.X*sin + q.Y*cos,
			}
		}
		if dist, ok := v.rayDistance(inst, pos, toProbe); ok {
			d = min(d, dist)
		}
	}

	if inside {
		return alphaBias + d*(1-alphaBias)
	}
	return alphaBias - d*alphaBias
}
