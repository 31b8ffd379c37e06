// Copyright 2025 the Ori Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package raster

import (
	"image"
	"runtime"
	"sync"

	"github.com/chewxy/math32"

	"github.com/ori-ui/fill/fmath"
	"github.com/ori-ui/fill/gfx"
)

// CoverageThreshold is the coverage below which a sample is discarded
// outright, mirroring the fragment discard of the GPU programs.
const CoverageThreshold = 0.01

// Rasterizer fills band-encoded instances into an RGBA target. The
// target holds premultiplied color; blending is ONE over
// ONE_MINUS_SRC_ALPHA.
type Rasterizer struct {
	Target *image.RGBA

	// Mask, when set, modulates every sample's coverage. It must have
	// the target's dimensions. Layers use this for software clipping.
	Mask *image.Alpha

	// AARadius and AlphaBias parameterize the distance-probe strategy.
	// Zero values take the defaults.
	AARadius  float32
	AlphaBias float32

	// Workers caps row parallelism. Zero means GOMAXPROCS.
	Workers int
}

// Clear overwrites the whole target with one color, without blending.
func (r *Rasterizer) Clear(c gfx.Color) {
	p := c.Premul()
	px := [4]uint8{
		uint8(fmath.Clamp(p[0], 0, 1)*255 + 0.5),
		uint8(fmath.Clamp(p[1], 0, 1)*255 + 0.5),
		uint8(fmath.Clamp(p[2], 0, 1)*255 + 0.5),
		uint8(fmath.Clamp(p[3], 0, 1)*255 + 0.5),
	}
	b := r.Target.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := r.Target.Pix[r.Target.PixOffset(b.Min.X, y):r.Target.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			copy(row[i:i+4], px[:])
		}
	}
}

// Fill draws a batch of instances over the shared geometry view, in
// order. img supplies texels for instances carrying a pattern opacity
// above zero and may be nil otherwise.
func (r *Rasterizer) Fill(view View, instances []Instance, img *gfx.Image) {
	for i := range instances {
		r.fillInstance(view, &instances[i], img)
	}
}

func (r *Rasterizer) fillInstance(view View, inst *Instance, img *gfx.Image) {
	tf := fmath.Transform{Matrix: inst.Transform, Translation: inst.Translation}

	// Device-space AABB of the transformed local bounds, clipped to the
	// target.
	bx, by := inst.Bounds[0], inst.Bounds[1]
	bw, bh := inst.Bounds[2], inst.Bounds[3]
	corners := [4]fmath.Vec2{
		tf.Apply(fmath.Vec2{X: bx, Y: by}),
		tf.Apply(fmath.Vec2{X: bx + bw, Y: by}),
		tf.Apply(fmath.Vec2{X: bx, Y: by + bh}),
		tf.Apply(fmath.Vec2{X: bx + bw, Y: by + bh}),
	}
	minP, maxP := corners[0], corners[0]
	for _, c := range corners[1:] {
		minP.X = min(minP.X, c.X)
		minP.Y = min(minP.Y, c.Y)
		maxP.X = max(maxP.X, c.X)
		maxP.Y = max(maxP.Y, c.Y)
	}
	tb := r.Target.Bounds()
	// One pixel of apron keeps antialiased edges inside the region.
	x0 := max(int(math32.Floor(minP.X))-1, tb.Min.X)
	y0 := max(int(math32.Floor(minP.Y))-1, tb.Min.Y)
	x1 := min(int(math32.Ceil(maxP.X))+1, tb.Max.X)
	y1 := min(int(math32.Ceil(maxP.Y))+1, tb.Max.Y)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	inv, ok := tf.Inverse()
	if !ok {
		return
	}
	// Local-space footprint of one device pixel step along each axis.
	jx := fmath.Vec2{X: inv.Matrix[0], Y: inv.Matrix[2]}
	jy := fmath.Vec2{X: inv.Matrix[1], Y: inv.Matrix[3]}

	aaRadius := r.AARadius
	if aaRadius == 0 {
		aaRadius = DefaultAARadius
	}
	alphaBias := r.AlphaBias
	if alphaBias == 0 {
		alphaBias = DefaultAlphaBias
	}

	r.parallelRows(y0, y1, func(y int) {
		for x := x0; x < x1; x++ {
			center := fmath.Vec2{X: float32(x) + 0.5, Y: float32(y) + 0.5}
			local := inv.Apply(center)
			if local.X < bx || local.X >= bx+bw || local.Y < by || local.Y >= by+bh {
				continue
			}

			var coverage float32
			switch {
			case inst.SampleCount() == 0:
				if view.isInside(inst, local) {
					coverage = 1
				}
			case inst.Flags&FlagsSupersampleBit != 0:
				coverage = view.coverageSupersampled(inst, local, jx, jy)
			default:
				coverage = view.coverageDistance(inst, local, jx, jy, aaRadius, alphaBias)
			}

			if r.Mask != nil {
				m := r.Mask.AlphaAt(x, y).A
				coverage *= float32(m) / 255
			}
			if coverage < CoverageThreshold {
				continue
			}

			src := [4]float32{
				inst.Color[0] * coverage,
				inst.Color[1] * coverage,
				inst.Color[2] * coverage,
				inst.Color[3] * coverage,
			}
			if opacity := inst.ImageOffsetOpacity[2]; opacity > 0 && img != nil {
				m := inst.ImageTransform
				q := fmath.Vec2{
					X: m[0]*local.X + m[1]*local.Y + inst.ImageOffsetOpacity[0],
					Y: m[2]*local.X + m[3]*local.Y + inst.ImageOffsetOpacity[1],
				}
				texel := img.Sample(q.X/float32(img.Width()), q.Y/float32(img.Height()))
				// Opacity fades the pattern toward a no-op multiply.
				for c := range 4 {
					src[c] *= fmath.Mix(1, texel[c], opacity)
				}
			}
			r.blend(x, y, src)
		}
	})
}

// blend composites one premultiplied source sample over the target.
func (r *Rasterizer) blend(x, y int, src [4]float32) {
	i := r.Target.PixOffset(x, y)
	px := r.Target.Pix[i : i+4 : i+4]
	const inv = 1.0 / 255.0
	ia := 1 - fmath.Clamp(src[3], 0, 1)
	for c := range 4 {
		v := src[c] + float32(px[c])*inv*ia
		px[c] = uint8(fmath.Clamp(v, 0, 1)*255 + 0.5)
	}
}

// parallelRows runs fn over [y0, y1) rows, striped across workers.
// Instances within a batch still composite in order because every
// instance's rows are finished before the next instance starts.
func (r *Rasterizer) parallelRows(y0, y1 int, fn func(y int)) {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	rows := y1 - y0
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		for y := y0; y < y1; y++ {
			fn(y)
		}
		return
	}
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := y0 + w; y < y1; y += workers {
				fn(y)
			}
		}()
	}
	wg.Wait()
}
