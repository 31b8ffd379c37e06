// Copyright 2025 the Ori Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package encoding builds the geometry buffers consumed by the band
// rasterizer.
//
// A path is encoded as a run of points in a shared point buffer and a
// run of records in a shared band buffer. The band buffer run starts
// with one (offset, count) header per horizontal band of the path's
// bounding box, followed by the (pointOffset, verb) segment references
// the headers point at. A segment is referenced from every band its
// control points touch, so a sample only ever classifies the segments
// of its own band.
package encoding

import (
	"fmt"
	"iter"

	"github.com/chewxy/math32"
	"honnef.co/go/curve"
	"honnef.co/go/safeish"

	"github.com/ori-ui/fill/fmath"
)

// Verb codes stored in band segment references.
const (
	VerbMove  uint32 = 0
	VerbLine  uint32 = 1
	VerbQuad  uint32 = 2
	VerbCubic uint32 = 3
)

const (
	// MaxBands is the number of band headers a single path may use.
	// Band counts are packed into eight bits of the instance flags, so
	// the effective per-path limit is MaxBands-1.
	MaxBands = 256

	// MaxPoints and MaxBandData bound one buffer generation. They match
	// the reference renderer's texture-buffer rows (2048 texels wide,
	// two rows). Larger scenes are split into multiple batches.
	MaxPoints   = 4096
	MaxBandData = 4096

	// Target band height in local units; the band count is derived from
	// the path's bounding-box height at this granularity.
	bandHeight = 5.0

	// Tolerance used when converting shapes to path elements.
	ShapeTolerance = 0.1
)

// PathRef locates one encoded path inside the shared buffers.
type PathRef struct {
	BandIndex uint32
	BandCount uint32
	// Bounds is the control-point bounding box: min x, min y, width,
	// height.
	Bounds [4]float32
}

// Encoding accumulates the point and band buffers for one batch.
type Encoding struct {
	Points [][2]float32
	Bands  [][2]uint32

	els   []curve.PathElement
	bands [][][2]uint32
}

func (enc *Encoding) Reset() {
	enc.Points = enc.Points[:0]
	enc.Bands = enc.Bands[:0]
}

// EncodeShape encodes a shape's outline. It reports false when the
// batch buffers are full; the caller is expected to flush the batch and
// encode again.
func (enc *Encoding) EncodeShape(shape curve.Shape) (PathRef, bool) {
	return enc.EncodePathElements(shape.PathElements(ShapeTolerance))
}

// EncodePathElements encodes one path. Subpaths are closed implicitly,
// matching fill semantics.
func (enc *Encoding) EncodePathElements(elements iter.Seq[curve.PathElement]) (PathRef, bool) {
	enc.els = enc.els[:0]
	for el := range elements {
		enc.els = append(enc.els, el)
	}
	bounds := controlBounds(enc.els)
	count := bandCount(bounds)

	oldPoints := len(enc.Points)
	oldBands := len(enc.Bands)
	if !enc.pushBands(bounds, count) {
		enc.Points = enc.Points[:oldPoints]
		enc.Bands = enc.Bands[:oldBands]
		return PathRef{}, false
	}

	return PathRef{
		BandIndex: uint32(oldBands),
		BandCount: count,
		Bounds:    bounds,
	}, true
}

func controlBounds(els []curve.PathElement) [4]float32 {
	first := true
	var minX, minY, maxX, maxY float32
	add := func(p curve.Point) {
		x, y := float32(p.X), float32(p.Y)
		if first {
			minX, minY, maxX, maxY = x, y, x, y
			first = false
			return
		}
		minX = min(minX, x)
		minY = min(minY, y)
		maxX = max(maxX, x)
		maxY = max(maxY, y)
	}
	for _, el := range els {
		switch el.Kind {
		case curve.MoveToKind, curve.LineToKind:
			add(el.P0)
		case curve.QuadToKind:
			add(el.P0)
			add(el.P1)
		case curve.CubicToKind:
			add(el.P0)
			add(el.P1)
			add(el.P2)
		}
	}
	if first {
		return [4]float32{}
	}
	return [4]float32{minX, minY, maxX - minX, maxY - minY}
}

func bandCount(bounds [4]float32) uint32 {
	count := math32.Ceil(bounds[3] / bandHeight)
	return uint32(fmath.Clamp(count, 1, MaxBands-1))
}

func (enc *Encoding) pushBands(bounds [4]float32, count uint32) bool {
	if cap(enc.bands) < int(count) {
		enc.bands = append(enc.bands[:cap(enc.bands)], make([][][2]uint32, int(count)-cap(enc.bands))...)
	}
	enc.bands = enc.bands[:count]
	for i := range enc.bands {
		enc.bands[i] = enc.bands[i][:0]
	}

	height := max(bounds[3], fmath.Epsilon)
	getBand := func(p curve.Point) int {
		band := (float32(p.Y) - bounds[1]) / height * float32(count)
		return int(fmath.Clamp(math32.Floor(band), 0, float32(count-1)))
	}
	ref := func(lo, hi int, point int, verb uint32) {
		for b := lo; b <= hi; b++ {
			enc.bands[b] = append(enc.bands[b], [2]uint32{uint32(point), verb})
		}
	}
	push := func(p curve.Point) {
		enc.Points = append(enc.Points, [2]float32{float32(p.X), float32(p.Y)})
	}

	var first curve.Point
	started := false
	b0 := 0
	closeSubpath := func() {
		if !started {
			return
		}
		last := enc.Points[len(enc.Points)-1]
		if last == [2]float32{float32(first.X), float32(first.Y)} {
			return
		}
		b1 := getBand(first)
		ref(min(b0, b1), max(b0, b1), len(enc.Points)-1, VerbLine)
		push(first)
		b0 = b1
	}

	for _, el := range enc.els {
		switch el.Kind {
		case curve.MoveToKind:
			closeSubpath()
			first = el.P0
			started = true
			b0 = getBand(el.P0)
			push(el.P0)
		case curve.LineToKind:
			b1 := getBand(el.P0)
			ref(min(b0, b1), max(b0, b1), len(enc.Points)-1, VerbLine)
			push(el.P0)
			b0 = b1
		case curve.QuadToKind:
			b1 := getBand(el.P0)
			b2 := getBand(el.P1)
			ref(min(b0, min(b1, b2)), max(b0, max(b1, b2)), len(enc.Points)-1, VerbQuad)
			push(el.P0)
			push(el.P1)
			b0 = b2
		case curve.CubicToKind:
			b1 := getBand(el.P0)
			b2 := getBand(el.P1)
			b3 := getBand(el.P2)
			ref(min(b0, min(b1, min(b2, b3))), max(b0, max(b1, max(b2, b3))), len(enc.Points)-1, VerbCubic)
			push(el.P0)
			push(el.P1)
			push(el.P2)
			b0 = b3
		case curve.ClosePathKind:
			closeSubpath()
		}
	}
	closeSubpath()

	if len(enc.Points) > MaxPoints {
		return false
	}

	index := len(enc.Bands)
	offset := uint32(index) + count
	records := 0
	for _, band := range enc.bands {
		enc.Bands = append(enc.Bands, [2]uint32{offset, uint32(len(band))})
		offset += uint32(len(band))
		records += len(band)
	}
	if index+int(count)+records > MaxBandData {
		return false
	}
	for _, band := range enc.bands {
		enc.Bands = append(enc.Bands, band...)
	}
	return true
}

// PointBytes returns the point buffer in its upload form.
func (enc *Encoding) PointBytes() []byte {
	return safeish.SliceCast[[]byte](enc.Points)
}

// BandBytes returns the band buffer in its upload form.
func (enc *Encoding) BandBytes() []byte {
	return safeish.SliceCast[[]byte](enc.Bands)
}

// Validate checks the invariants the sampling core assumes: headers and
// segment references stay within their buffers and verbs are known.
// Hand-built buffers should be validated once at construction; the
// per-sample core does no checking of its own.
func Validate(points [][2]float32, bands [][2]uint32, ref PathRef) error {
	if ref.BandCount < 1 {
		return fmt.Errorf("encoding: band count must be at least 1")
	}
	if int(ref.BandIndex)+int(ref.BandCount) > len(bands) {
		return fmt.Errorf("encoding: band headers [%d, %d) exceed band buffer of %d records",
			ref.BandIndex, ref.BandIndex+ref.BandCount, len(bands))
	}
	for b := range ref.BandCount {
		header := bands[ref.BandIndex+b]
		off, count := header[0], header[1]
		if int(off)+int(count) > len(bands) {
			return fmt.Errorf("encoding: band %d segments [%d, %d) exceed band buffer of %d records",
				b, off, off+count, len(bands))
		}
		for i := range count {
			rec := bands[off+i]
			point, verb := rec[0], rec[1]
			var n uint32
			switch verb {
			case VerbMove:
				// Moves carry no segment; the core ignores them.
				n = 1
			case VerbLine:
				n = 2
			case VerbQuad:
				n = 3
			case VerbCubic:
				n = 4
			default:
				return fmt.Errorf("encoding: band %d record %d has invalid verb %d", b, i, verb)
			}
			if int(point)+int(n) > len(points) {
				return fmt.Errorf("encoding: band %d record %d references points [%d, %d) beyond point buffer of %d",
					b, i, point, point+n, len(points))
			}
		}
	}
	return nil
}
