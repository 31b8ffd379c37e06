// Copyright 2025 the Ori Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package fill renders filled and stroked vector paths with a software
// port of a band-buffer fill shader. A Scene records draw commands; a
// Renderer encodes them into band geometry and draw instances and
// rasterizes the batches into an image.
package fill

import (
	"slices"

	"honnef.co/go/curve"

	"github.com/ori-ui/fill/encoding"
	"github.com/ori-ui/fill/fmath"
	"github.com/ori-ui/fill/gfx"
)

// strokeTolerance is the accuracy of stroke outline expansion. It is
// finer than the shape tolerance because stroking magnifies geometric
// error by up to half the stroke width.
const strokeTolerance = 0.01

// Scene records draw commands for one frame. Recording is cheap; all
// geometry processing happens in the Renderer.
type Scene struct {
	items []item
	stack []layer
}

type item struct {
	path      curve.BezPath
	fill      gfx.Fill
	paint     gfx.Paint
	transform fmath.Transform
	clip      *clipNode
	opacity   float32
}

type layer struct {
	transform fmath.Transform
	opacity   float32
	clip      *clipNode
}

// clipNode is one link in the chain of clip shapes active at a draw.
// Nodes are shared between items recorded under the same layer, so a
// renderer can build each mask once.
type clipNode struct {
	parent    *clipNode
	path      curve.BezPath
	transform fmath.Transform
}

// Reset clears the scene for reuse, retaining allocations.
func (s *Scene) Reset() {
	s.items = s.items[:0]
	s.stack = s.stack[:0]
}

func (s *Scene) current() layer {
	if len(s.stack) == 0 {
		return layer{transform: fmath.Identity, opacity: 1}
	}
	return s.stack[len(s.stack)-1]
}

// Fill records a filled shape. transform maps the shape's local space
// to the space of the current layer.
func (s *Scene) Fill(shape curve.Shape, fill gfx.Fill, paint gfx.Paint, transform fmath.Transform) {
	cur := s.current()
	s.items = append(s.items, item{
		path:      shape.Path(encoding.ShapeTolerance),
		fill:      fill,
		paint:     paint,
		transform: cur.transform.Mul(transform),
		clip:      cur.clip,
		opacity:   cur.opacity,
	})
}

// Stroke records a stroked shape. The outline is expanded on the CPU
// and filled nonzero, matching how the original fed strokes to the same
// fill programs.
func (s *Scene) Stroke(shape curve.Shape, stroke curve.Stroke, paint gfx.Paint, transform fmath.Transform) {
	stroked := curve.StrokePath(
		shape.PathElements(encoding.ShapeTolerance),
		stroke,
		curve.StrokeOpts{},
		strokeTolerance,
	)
	cur := s.current()
	s.items = append(s.items, item{
		path:      curve.BezPath(slices.Collect(stroked)),
		fill:      gfx.NonZero,
		paint:     paint,
		transform: cur.transform.Mul(transform),
		clip:      cur.clip,
		opacity:   cur.opacity,
	})
}

// PushLayer opens a layer. Draws recorded inside it compose transform
// on top of the current one and have their alpha scaled by opacity.
// clip, when non-nil, restricts the layer's draws to the shape's
// nonzero fill.
func (s *Scene) PushLayer(clip curve.Shape, opacity float32, transform fmath.Transform) {
	cur := s.current()
	next := layer{
		transform: cur.transform.Mul(transform),
		opacity:   cur.opacity * fmath.Clamp(opacity, 0, 1),
		clip:      cur.clip,
	}
	if clip != nil {
		next.clip = &clipNode{
			parent:    cur.clip,
			path:      clip.Path(encoding.ShapeTolerance),
			transform: next.transform,
		}
	}
	s.stack = append(s.stack, next)
}

// PopLayer closes the innermost layer. Popping the base layer is a
// recording bug and panics.
func (s *Scene) PopLayer() {
	if len(s.stack) == 0 {
		panic("fill: PopLayer without matching PushLayer")
	}
	s.stack = s.stack[:len(s.stack)-1]
}
