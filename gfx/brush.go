// Copyright 2025 the Ori Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gfx

import "github.com/ori-ui/fill/fmath"

// Paint describes how a filled shape is shaded.
type Paint struct {
	Brush     Brush
	AntiAlias AntiAlias
}

type Brush interface {
	isBrush()
}

type SolidBrush struct {
	Color Color
}

// PatternBrush samples an image. Transform maps image space to the
// shape's local space; Opacity scales the sampled alpha.
type PatternBrush struct {
	Image     *Image
	Transform fmath.Transform
	Opacity   float32
}

func (SolidBrush) isBrush()   {}
func (PatternBrush) isBrush() {}
