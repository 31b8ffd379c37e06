// Copyright 2025 the Ori Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package fmath provides the float32 vector and affine math used by the
// band rasterizer. Everything mirrors the layouts the GPU shaders used,
// so matrices are column-major [4]float32 pairs with a separate
// translation.
package fmath

import (
	"structs"

	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// Epsilon below which leading coefficients, denominators, and
// derivatives are treated as degenerate.
const Epsilon = 1e-6

func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// Mix linearly interpolates between a and b.
func Mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Mul(f float32) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

func (v Vec2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

// Transform is a 2D affine transform, stored the way draw instances
// carry it: a column-major 2×2 matrix and a translation vector.
type Transform struct {
	_ structs.HostLayout

	Matrix      [4]float32
	Translation [2]float32
}

var Identity = Transform{
	Matrix: [4]float32{1, 0, 0, 1},
}

func Translate(x, y float32) Transform {
	return Transform{
		Matrix:      [4]float32{1, 0, 0, 1},
		Translation: [2]float32{x, y},
	}
}

func Scale(x, y float32) Transform {
	return Transform{
		Matrix: [4]float32{x, 0, 0, y},
	}
}

func Rotate(angle float32) Transform {
	sin, cos := math32.Sincos(angle)
	return Transform{
		Matrix: [4]float32{cos, sin, -sin, cos},
	}
}

func (t Transform) Mul(other Transform) Transform {
	return Transform{
		Matrix: [4]float32{
			t.Matrix[0]*other.Matrix[0] + t.Matrix[2]*other.Matrix[1],
			t.Matrix[1]*other.Matrix[0] + t.Matrix[3]*other.Matrix[1],
			t.Matrix[0]*other.Matrix[2] + t.Matrix[2]*other.Matrix[3],
			t.Matrix[1]*other.Matrix[2] + t.Matrix[3]*other.Matrix[3],
		},
		Translation: [2]float32{
			t.Matrix[0]*other.Translation[0] +
				t.Matrix[2]*other.Translation[1] +
				t.Translation[0],
			t.Matrix[1]*other.Translation[0] +
				t.Matrix[3]*other.Translation[1] +
				t.Translation[1],
		},
	}
}

func (t Transform) Apply(p Vec2) Vec2 {
	return Vec2{
		t.Matrix[0]*p.X + t.Matrix[2]*p.Y + t.Translation[0],
		t.Matrix[1]*p.X + t.Matrix[3]*p.Y + t.Translation[1],
	}
}

// ApplyVec applies only the linear part of the transform.
func (t Transform) ApplyVec(v Vec2) Vec2 {
	return Vec2{
		t.Matrix[0]*v.X + t.Matrix[2]*v.Y,
		t.Matrix[1]*v.X + t.Matrix[3]*v.Y,
	}
}

// Inverse returns the inverse transform. ok is false when the linear
// part is singular.
func (t Transform) Inverse() (Transform, bool) {
	det := t.Matrix[0]*t.Matrix[3] - t.Matrix[1]*t.Matrix[2]
	if math32.Abs(det) < Epsilon*Epsilon {
		return Identity, false
	}
	invDet := 1.0 / det
	m := [4]float32{
		t.Matrix[3] * invDet,
		-t.Matrix[1] * invDet,
		-t.Matrix[2] * invDet,
		t.Matrix[0] * invDet,
	}
	return Transform{
		Matrix: m,
		Translation: [2]float32{
			-(m[0]*t.Translation[0] + m[2]*t.Translation[1]),
			-(m[1]*t.Translation[0] + m[3]*t.Translation[1]),
		},
	}, true
}
