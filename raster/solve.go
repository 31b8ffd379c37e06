// Copyright 2025 the Ori Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package raster

import (
	"github.com/chewxy/math32"
)

// Coefficients with magnitude below coeffEpsilon degrade the solvers to
// the next lower degree.
const coeffEpsilon = 1e-6

// solveQuadratic returns the real roots of a·t² + b·t + c = 0. A
// near-zero leading coefficient falls back to the linear root; a
// negative discriminant yields no roots. The function is total: it
// never fails, it only returns fewer roots.
func solveQuadratic(a, b, c float32) ([2]float32, int) {
	var roots [2]float32
	if math32.Abs(a) < coeffEpsilon {
		if math32.Abs(b) < coeffEpsilon {
			return roots, 0
		}
		roots[0] = -c / b
		return roots, 1
	}
	d := b*b - 4*a*c
	if d < 0 {
		return roots, 0
	}
	sq := math32.Sqrt(d)
	roots[0] = (-b - sq) / (2 * a)
	roots[1] = (-b + sq) / (2 * a)
	return roots, 2
}

// solveCubic returns the real roots of a·t³ + b·t² + c·t + d = 0.
//
// A near-zero leading coefficient delegates to solveQuadratic. The
// depressed form's discriminant picks between the one-real-root branch,
// solved with the sign-preserving real cube root, and the
// three-real-root branch, solved with the atan2 form of the
// trigonometric method. atan2 is immune to the arccos domain overshoot
// near ±1 that the textbook formula suffers from in float32.
func solveCubic(a, b, c, d float32) ([3]float32, int) {
	var roots [3]float32
	if math32.Abs(a) < coeffEpsilon {
		qr, n := solveQuadratic(b, c, d)
		roots[0], roots[1] = qr[0], qr[1]
		return roots, n
	}

	c2 := b / (3 * a)
	c1 := c / (3 * a)
	c0 := d / a
	if math32.IsInf(c2, 0) || math32.IsInf(c1, 0) || math32.IsInf(c0, 0) {
		return roots, 0
	}

	// Depressed form, following Blinn's formulation.
	d0 := c1 - c2*c2
	d1 := c0 - c1*c2
	d2 := c2*c0 - c1*c1
	disc := 4*d0*d2 - d1*d1
	de := d1 - 2*c2*d0

	if disc < 0 {
		sq := math32.Sqrt(-0.25 * disc)
		r := -0.5 * de
		t1 := math32.Cbrt(r+sq) + math32.Cbrt(r-sq)
		roots[0] = t1 - c2
		return roots, 1
	}

	th := math32.Atan2(math32.Sqrt(disc), -de) / 3
	sin, cos := math32.Sincos(th)
	ss3 := sin * math32.Sqrt(3)
	// Rounding can leave d0 marginally positive when disc is near zero;
	// the square root must not see it.
	t := 2 * math32.Sqrt(-min(d0, 0))
	roots[0] = t*cos - c2
	roots[1] = t*0.5*(-cos+ss3) - c2
	roots[2] = t*0.5*(-cos-ss3) - c2
	return roots, 3
}
