// Copyright 2025 the Ori Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package raster

import (
	"github.com/chewxy/math32"

	"github.com/ori-ui/fill/fmath"
)

// Verb codes of band segment references, as stored by the encoder.
const (
	verbLine  uint32 = 1
	verbQuad  uint32 = 2
	verbCubic uint32 = 3
)

// View is a read-only window onto the geometry buffers of one batch.
// Offsets inside the buffers are absolute, so a View can be shared by
// every instance of the batch.
type View struct {
	Points [][2]float32
	Bands  [][2]uint32
}

func (v View) point(i uint32) fmath.Vec2 {
	p := v.Points[i]
	return fmath.Vec2{X: p[0], Y: p[1]}
}

// bandFor picks the band containing the local-space height y. Samples
// outside the vertical bounds clamp to the edge bands, which hold the
// segments nearest to them.
func bandFor(y float32, bounds [4]float32, count uint32) uint32 {
	height := max(bounds[3], fmath.Epsilon)
	band := (y - bounds[1]) / height * float32(count)
	return uint32(fmath.Clamp(math32.Floor(band), 0, float32(count-1)))
}

// isInside classifies one local-space sample against the instance's
// band of segments under its fill rule. Unknown verbs are skipped, so a
// corrupt record degrades to a miss instead of a crash; hand-built
// buffers are expected to pass encoding.Validate first.
func (v View) isInside(inst *Instance, pos fmath.Vec2) bool {
	band := bandFor(pos.Y, inst.Bounds, inst.BandCount())
	header := v.Bands[inst.BandIndex+band]
	off, count := header[0], header[1]

	nonZero := inst.NonZero()
	acc := 0
	for _, rec := range v.Bands[off : off+count] {
		i, verb := rec[0], rec[1]
		switch verb {
		case verbLine:
			if nonZero {
				acc += lineWinding(v.point(i), v.point(i+1), pos)
			} else {
				acc += lineCrossings(v.point(i), v.point(i+1), pos)
			}
		case verbQuad:
			if nonZero {
				acc += quadWinding(v.point(i), v.point(i+1), v.point(i+2), pos)
			} else {
				acc += quadCrossings(v.point(i), v.point(i+1), v.point(i+2), pos)
			}
		case verbCubic:
			if nonZero {
				acc += cubicWinding(v.point(i), v.point(i+1), v.point(i+2), v.point(i+3), pos)
			} else {
				acc += cubicCrossings(v.point(i), v.point(i+1), v.point(i+2), v.point(i+3), pos)
			}
		}
	}

	if nonZero {
		return acc != 0
	}
	return acc%2 != 0
}

// rayDistance returns the smallest unsigned distance from the probe
// origin to the band's segments along the probe's x axis, with the
// segments already transformed into the probe frame by toProbe. The
// band is chosen from the untransformed sample position. ok is false
// when no segment intersects the probe axis.
func (v View) rayDistance(inst *Instance, pos fmath.Vec2, toProbe func(fmath.Vec2) fmath.Vec2) (float32, bool) {
	band := bandFor(pos.Y, inst.Bounds, inst.BandCount())
	header := v.Bands[inst.BandIndex+band]
	off, count := header[0], header[1]

	best := float32(math32.MaxFloat32)
	ok := false
	for _, rec := range v.Bands[off : off+count] {
		i, verb := rec[0], rec[1]
		var d float32
		var hit bool
		switch verb {
		case verbLine:
			d, hit = lineRayDistance(toProbe(v.point(i)), toProbe(v.point(i+1)))
		case verbQuad:
			d, hit = quadRayDistance(toProbe(v.point(i)), toProbe(v.point(i+1)), toProbe(v.point(i+2)))
		case verbCubic:
			d, hit = cubicRayDistance(toProbe(v.point(i)), toProbe(v.point(i+1)), toProbe(v.point(i+2)), toProbe(v.point(i+3)))
		}
		if hit {
			best = min(best, d)
			ok = true
		}
	}
	return best, ok
}
