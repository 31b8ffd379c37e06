// Copyright 2025 the Ori Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gfx

// Fill selects how the inside of a path is determined.
type Fill int

const (
	NonZero Fill = iota
	EvenOdd
)

// AntiAlias selects the coverage strategy used along path boundaries.
//
// Fast probes the distance to the nearest boundary along a few rotated
// directions and blends coverage from it. Full supersamples the
// inside/outside test at six sub-pixel offsets; it costs the same
// everywhere but produces exact sample counts.
type AntiAlias int

const (
	AntiAliasNone AntiAlias = iota
	AntiAliasFast
	AntiAliasFull
)
