// Copyright 2025 the Ori Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ori-ui/fill/fmath"
)

func TestEvalEndpoints(t *testing.T) {
	p0 := fmath.Vec2{X: 1, Y: 2}
	p1 := fmath.Vec2{X: 4, Y: -3}
	p2 := fmath.Vec2{X: 7, Y: 5}
	p3 := fmath.Vec2{X: -2, Y: 0.5}

	assert.Equal(t, p0, evalQuad(p0, p1, p2, 0))
	assert.Equal(t, p2, evalQuad(p0, p1, p2, 1))
	assert.Equal(t, p0, evalCubic(p0, p1, p2, p3, 0))
	assert.Equal(t, p3, evalCubic(p0, p1, p2, p3, 1))
}

func TestLineCrossings(t *testing.T) {
	up := fmath.Vec2{X: 2, Y: 0}
	down := fmath.Vec2{X: 2, Y: 4}

	// Segment to the right of the sample crosses once.
	assert.Equal(t, 1, lineCrossings(up, down, fmath.Vec2{X: 0, Y: 2}))
	// Segment to the left does not.
	assert.Equal(t, 0, lineCrossings(up, down, fmath.Vec2{X: 3, Y: 2}))
	// Sample above or below the segment's y range.
	assert.Equal(t, 0, lineCrossings(up, down, fmath.Vec2{X: 0, Y: 5}))
	assert.Equal(t, 0, lineCrossings(up, down, fmath.Vec2{X: 0, Y: -1}))
	// Horizontal segments never cross the ray.
	assert.Equal(t, 0, lineCrossings(
		fmath.Vec2{X: 0, Y: 2}, fmath.Vec2{X: 4, Y: 2}, fmath.Vec2{X: -1, Y: 2}))
}

func TestLineCrossingsHalfOpen(t *testing.T) {
	a := fmath.Vec2{X: 2, Y: 0}
	b := fmath.Vec2{X: 2, Y: 4}
	// A crossing exactly at the start parameter counts, at the end it
	// does not; two segments sharing a vertex count it exactly once.
	assert.Equal(t, 1, lineCrossings(a, b, fmath.Vec2{X: 0, Y: 0}))
	assert.Equal(t, 0, lineCrossings(a, b, fmath.Vec2{X: 0, Y: 4}))
}

func TestLineWinding(t *testing.T) {
	up := fmath.Vec2{X: 2, Y: 0}
	down := fmath.Vec2{X: 2, Y: 4}
	pos := fmath.Vec2{X: 0, Y: 2}

	assert.Equal(t, 1, lineWinding(up, down, pos))
	assert.Equal(t, -1, lineWinding(down, up, pos))
}

func TestQuadClassifiers(t *testing.T) {
	// Upward-opening parabola from (0,4) to (4,4) dipping to y=-2 at
	// its vertex; it crosses y=0 twice.
	p0 := fmath.Vec2{X: 0, Y: 4}
	p1 := fmath.Vec2{X: 2, Y: -8}
	p2 := fmath.Vec2{X: 4, Y: 4}

	// Ray at y=0 from the far left hits both branches.
	assert.Equal(t, 2, quadCrossings(p0, p1, p2, fmath.Vec2{X: -1, Y: 0}))
	// From between the branches only the rising one remains.
	assert.Equal(t, 1, quadCrossings(p0, p1, p2, fmath.Vec2{X: 2, Y: 0}))
	// The two branches have opposite directions.
	assert.Equal(t, 0, quadWinding(p0, p1, p2, fmath.Vec2{X: -1, Y: 0}))
	assert.Equal(t, 1, quadWinding(p0, p1, p2, fmath.Vec2{X: 2, Y: 0}))
	// Above the curve's y range.
	assert.Equal(t, 0, quadCrossings(p0, p1, p2, fmath.Vec2{X: -1, Y: 5}))
}

func TestCubicClassifiers(t *testing.T) {
	// Monotonically rising S-curve from (2,0) to (2,4).
	p0 := fmath.Vec2{X: 2, Y: 0}
	p1 := fmath.Vec2{X: 0, Y: 1.5}
	p2 := fmath.Vec2{X: 4, Y: 2.5}
	p3 := fmath.Vec2{X: 2, Y: 4}

	assert.Equal(t, 1, cubicCrossings(p0, p1, p2, p3, fmath.Vec2{X: -1, Y: 2}))
	assert.Equal(t, 1, cubicWinding(p0, p1, p2, p3, fmath.Vec2{X: -1, Y: 2}))
	assert.Equal(t, -1, cubicWinding(p3, p2, p1, p0, fmath.Vec2{X: -1, Y: 2}))
	assert.Equal(t, 0, cubicCrossings(p0, p1, p2, p3, fmath.Vec2{X: 5, Y: 2}))
}

func TestCubicEndpointGuards(t *testing.T) {
	p0 := fmath.Vec2{X: 2, Y: 0}
	p1 := fmath.Vec2{X: 0, Y: 1.5}
	p2 := fmath.Vec2{X: 4, Y: 2.5}
	p3 := fmath.Vec2{X: 2, Y: 4}

	// Sample exactly at the start height: the t=0 crossing counts once,
	// taken from the start point itself.
	assert.Equal(t, 1, cubicCrossings(p0, p1, p2, p3, fmath.Vec2{X: 0, Y: 0}))
	assert.Equal(t, 1, cubicWinding(p0, p1, p2, p3, fmath.Vec2{X: 0, Y: 0}))
	// Sample exactly at the end height: the t=1 crossing belongs to the
	// next segment.
	assert.Equal(t, 0, cubicCrossings(p0, p1, p2, p3, fmath.Vec2{X: 0, Y: 4}))
}

func TestRayDistances(t *testing.T) {
	// Vertical line at x=3 in the probe frame.
	d, ok := lineRayDistance(fmath.Vec2{X: 3, Y: -1}, fmath.Vec2{X: 3, Y: 1})
	assert.True(t, ok)
	assert.InDelta(t, 3.0, d, 1e-6)

	// Horizontal segment never intersects the probe axis.
	_, ok = lineRayDistance(fmath.Vec2{X: 0, Y: 1}, fmath.Vec2{X: 4, Y: 1})
	assert.False(t, ok)

	// Parabola crossing y=0 twice; the nearer crossing wins.
	d, ok = quadRayDistance(
		fmath.Vec2{X: 1, Y: -2}, fmath.Vec2{X: 3, Y: 6}, fmath.Vec2{X: 5, Y: -2})
	assert.True(t, ok)
	assert.InDelta(t, 1.586, d, 1e-2)
}
