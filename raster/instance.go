// Copyright 2025 the Ori Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package raster evaluates fill coverage for band-encoded vector paths.
//
// It is a software port of the per-sample GPU fill programs: every
// sample is classified against the segments of one horizontal band of
// the shape, inside/outside is decided by the instance's fill rule, and
// boundary coverage comes from one of two antialiasing strategies. All
// evaluation is pure; the geometry buffers are never written.
package raster

import (
	"structs"
)

// Instance is the per-draw record, laid out the way the GPU pipeline
// consumed it.
type Instance struct {
	_ structs.HostLayout

	// Transform and Translation map the shape's local space to device
	// pixels.
	Transform   [4]float32
	Translation [2]float32
	// Bounds is the local-space bounding box: min x, min y, width,
	// height.
	Bounds [4]float32
	// Color is the premultiplied fill color.
	Color [4]float32
	Flags uint32
	// BandIndex is the offset of the shape's band 0 header in the band
	// buffer.
	BandIndex uint32
	// ImageTransform is the inverse 2×2 matrix mapping local space to
	// image texels; ImageOffsetOpacity carries the translation and the
	// pattern opacity.
	ImageTransform     [4]float32
	ImageOffsetOpacity [3]float32
}

const (
	// FlagsNonZeroBit selects the nonzero winding rule; unset means
	// even-odd.
	FlagsNonZeroBit uint32 = 1 << 31
	// FlagsSupersampleBit selects the fixed supersampling strategy;
	// unset selects rotated distance probing.
	FlagsSupersampleBit uint32 = 1 << 30
	// FlagsSampleMask holds the antialiasing sample count. Zero
	// disables antialiasing for either strategy.
	FlagsSampleMask  uint32 = 0x3f << 8
	FlagsSampleShift        = 8
	// FlagsBandMask holds the shape's band count.
	FlagsBandMask uint32 = 0xff
)

func (inst *Instance) BandCount() uint32 {
	return max(inst.Flags&FlagsBandMask, 1)
}

func (inst *Instance) SampleCount() uint32 {
	return (inst.Flags & FlagsSampleMask) >> FlagsSampleShift
}

func (inst *Instance) NonZero() bool {
	return inst.Flags&FlagsNonZeroBit != 0
}
