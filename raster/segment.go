// Copyright 2025 the Ori Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package raster

import (
	"github.com/chewxy/math32"

	"github.com/ori-ui/fill/fmath"
)

// Crossings and windings are computed from the parametric intersections
// of a segment with the horizontal ray running right from the sample.
// Roots are kept on the half-open interval [0, 1): a crossing at a
// shared vertex belongs to exactly one of the two adjacent segments, so
// boundaries neither double-count nor leave gaps.
const (
	// derivEpsilon bounds y-derivatives considered tangent to the ray;
	// tangent touches contribute no winding.
	derivEpsilon = 1e-6
	// endpointEpsilon matches sample heights against segment endpoint
	// heights.
	endpointEpsilon = 1e-6
	// rootEpsilon brackets parameter values too close to an endpoint
	// for the cubic solver's precision.
	rootEpsilon = 1e-4
)

func evalQuad(p0, p1, p2 fmath.Vec2, t float32) fmath.Vec2 {
	m := 1 - t
	return p0.Mul(m * m).Add(p1.Mul(2 * m * t)).Add(p2.Mul(t * t))
}

func evalCubic(p0, p1, p2, p3 fmath.Vec2, t float32) fmath.Vec2 {
	m := 1 - t
	mm := m * m
	tt := t * t
	return p0.Mul(mm * m).
		Add(p1.Mul(3 * mm * t)).
		Add(p2.Mul(3 * m * tt)).
		Add(p3.Mul(tt * t))
}

func windingSign(dy float32) int {
	if math32.Abs(dy) < derivEpsilon {
		return 0
	}
	if dy > 0 {
		return 1
	}
	return -1
}

// lineCrossings reports how often the segment crosses the rightward ray
// from pos, for the even-odd rule.
func lineCrossings(p0, p1 fmath.Vec2, pos fmath.Vec2) int {
	if max(p0.Y, p1.Y) < pos.Y || min(p0.Y, p1.Y) > pos.Y {
		return 0
	}
	dy := p1.Y - p0.Y
	if math32.Abs(dy) < derivEpsilon {
		return 0
	}
	t := (pos.Y - p0.Y) / dy
	if t < 0 || t >= 1 {
		return 0
	}
	if fmath.Mix(p0.X, p1.X, t) > pos.X {
		return 1
	}
	return 0
}

// lineWinding is lineCrossings with the crossing signed by ray
// direction, for the nonzero rule.
func lineWinding(p0, p1 fmath.Vec2, pos fmath.Vec2) int {
	if max(p0.Y, p1.Y) < pos.Y || min(p0.Y, p1.Y) > pos.Y {
		return 0
	}
	dy := p1.Y - p0.Y
	if math32.Abs(dy) < derivEpsilon {
		return 0
	}
	t := (pos.Y - p0.Y) / dy
	if t < 0 || t >= 1 {
		return 0
	}
	if fmath.Mix(p0.X, p1.X, t) > pos.X {
		return windingSign(dy)
	}
	return 0
}

// quadYCoeffs returns the power-basis coefficients of the quadratic's
// y(t) − y.
func quadYCoeffs(p0, p1, p2 fmath.Vec2, y float32) (a, b, c float32) {
	a = p0.Y - 2*p1.Y + p2.Y
	b = 2 * (p1.Y - p0.Y)
	c = p0.Y - y
	return a, b, c
}

func quadCrossings(p0, p1, p2 fmath.Vec2, pos fmath.Vec2) int {
	if max(p0.Y, p1.Y, p2.Y) < pos.Y || min(p0.Y, p1.Y, p2.Y) > pos.Y {
		return 0
	}
	a, b, c := quadYCoeffs(p0, p1, p2, pos.Y)
	roots, n := solveQuadratic(a, b, c)
	crossings := 0
	for _, t := range roots[:n] {
		if t < 0 || t >= 1 {
			continue
		}
		if evalQuad(p0, p1, p2, t).X > pos.X {
			crossings++
		}
	}
	return crossings
}

func quadWinding(p0, p1, p2 fmath.Vec2, pos fmath.Vec2) int {
	if max(p0.Y, p1.Y, p2.Y) < pos.Y || min(p0.Y, p1.Y, p2.Y) > pos.Y {
		return 0
	}
	a, b, c := quadYCoeffs(p0, p1, p2, pos.Y)
	roots, n := solveQuadratic(a, b, c)
	winding := 0
	for _, t := range roots[:n] {
		if t < 0 || t >= 1 {
			continue
		}
		if evalQuad(p0, p1, p2, t).X > pos.X {
			winding += windingSign(2*a*t + b)
		}
	}
	return winding
}

func cubicYCoeffs(p0, p1, p2, p3 fmath.Vec2, y float32) (a, b, c, d float32) {
	a = -p0.Y + 3*p1.Y - 3*p2.Y + p3.Y
	b = 3 * (p0.Y - 2*p1.Y + p2.Y)
	c = 3 * (p1.Y - p0.Y)
	d = p0.Y - y
	return a, b, c, d
}

// cubicX evaluates the crossing's x coordinate. The solver loses
// precision near the segment ends, so parameters within rootEpsilon of
// 0 read the start point directly.
func cubicX(p0, p1, p2, p3 fmath.Vec2, t float32) float32 {
	if t < rootEpsilon {
		return p0.X
	}
	return evalCubic(p0, p1, p2, p3, t).X
}

func cubicCrossings(p0, p1, p2, p3 fmath.Vec2, pos fmath.Vec2) int {
	if max(p0.Y, p1.Y, p2.Y, p3.Y) < pos.Y || min(p0.Y, p1.Y, p2.Y, p3.Y) > pos.Y {
		return 0
	}
	crossings := 0
	startOnRay := math32.Abs(p0.Y-pos.Y) < endpointEpsilon
	endOnRay := math32.Abs(p3.Y-pos.Y) < endpointEpsilon
	if startOnRay {
		// The t=0 root is exact; take it from the start point instead
		// of the solver.
		if p0.X > pos.X {
			crossings++
		}
	}
	a, b, c, d := cubicYCoeffs(p0, p1, p2, p3, pos.Y)
	roots, n := solveCubic(a, b, c, d)
	for _, t := range roots[:n] {
		if t < 0 || t >= 1 {
			continue
		}
		if startOnRay && t < rootEpsilon {
			continue
		}
		if endOnRay && t > 1-rootEpsilon {
			continue
		}
		if cubicX(p0, p1, p2, p3, t) > pos.X {
			crossings++
		}
	}
	return crossings
}

func cubicWinding(p0, p1, p2, p3 fmath.Vec2, pos fmath.Vec2) int {
	if max(p0.Y, p1.Y, p2.Y, p3.Y) < pos.Y || min(p0.Y, p1.Y, p2.Y, p3.Y) > pos.Y {
		return 0
	}
	winding := 0
	startOnRay := math32.Abs(p0.Y-pos.Y) < endpointEpsilon
	endOnRay := math32.Abs(p3.Y-pos.Y) < endpointEpsilon
	a, b, c, d := cubicYCoeffs(p0, p1, p2, p3, pos.Y)
	if startOnRay && p0.X > pos.X {
		winding += windingSign(c)
	}
	roots, n := solveCubic(a, b, c, d)
	for _, t := range roots[:n] {
		if t < 0 || t >= 1 {
			continue
		}
		if startOnRay && t < rootEpsilon {
			continue
		}
		if endOnRay && t > 1-rootEpsilon {
			continue
		}
		if cubicX(p0, p1, p2, p3, t) > pos.X {
			winding += windingSign(3*a*t*t + 2*b*t + c)
		}
	}
	return winding
}

// lineRayDistance returns the unsigned distance along the x axis from
// the origin to the segment's intersection with y=0, in the probe
// frame. ok is false when the parametric intersection falls outside
// [0, 1).
func lineRayDistance(p0, p1 fmath.Vec2) (float32, bool) {
	dy := p1.Y - p0.Y
	if math32.Abs(dy) < derivEpsilon {
		return 0, false
	}
	t := -p0.Y / dy
	if t < 0 || t >= 1 {
		return 0, false
	}
	return math32.Abs(fmath.Mix(p0.X, p1.X, t)), true
}

func quadRayDistance(p0, p1, p2 fmath.Vec2) (float32, bool) {
	a, b, c := quadYCoeffs(p0, p1, p2, 0)
	roots, n := solveQuadratic(a, b, c)
	d := float32(math32.MaxFloat32)
	ok := false
	for _, t := range roots[:n] {
		if t < 0 || t >= 1 {
			continue
		}
		d = min(d, math32.Abs(evalQuad(p0, p1, p2, t).X))
		ok = true
	}
	return d, ok
}

func cubicRayDistance(p0, p1, p2, p3 fmath.Vec2) (float32, bool) {
	a, b, c, dd := cubicYCoeffs(p0, p1, p2, p3, 0)
	roots, n := solveCubic(a, b, c, dd)
	d := float32(math32.MaxFloat32)
	ok := false
	for _, t := range roots[:n] {
		if t < 0 || t >= 1 {
			continue
		}
		d = min(d, math32.Abs(cubicX(p0, p1, p2, p3, t)))
		ok = true
	}
	return d, ok
}
