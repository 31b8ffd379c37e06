// Copyright 2025 the Ori Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package fill

import (
	"image"

	"github.com/ori-ui/fill/encoding"
	"github.com/ori-ui/fill/fmath"
	"github.com/ori-ui/fill/gfx"
	"github.com/ori-ui/fill/raster"
)

// MaxInstances is the instance cap of one dispatch. Together with the
// encoder's buffer caps it bounds the working set of a batch; larger
// scenes are split across several dispatches.
const MaxInstances = 256

// AA sample counts packed into instance flags for the two quality
// presets.
const (
	fastSampleCount = 4
	fullSampleCount = 6
)

type RendererOptions struct {
	// Workers caps rasterization parallelism. Zero means GOMAXPROCS.
	Workers int
	// AARadius and AlphaBias tune the distance-probe antialiasing.
	// Zero values take the raster defaults.
	AARadius  float32
	AlphaBias float32
}

// Renderer resolves recorded scenes into geometry buffers and draw
// instances and rasterizes them. A Renderer is reusable across frames
// but not concurrently.
type Renderer struct {
	opts RendererOptions

	enc       encoding.Encoding
	instances []raster.Instance

	maskEnc encoding.Encoding
	masks   map[*clipNode]*image.Alpha
}

func NewRenderer(opts RendererOptions) *Renderer {
	return &Renderer{opts: opts}
}

// Render draws the scene over a base color into target. Items are
// composited in recording order.
func (r *Renderer) Render(scene *Scene, target *image.RGBA, base gfx.Color) {
	ras := raster.Rasterizer{
		Target:    target,
		AARadius:  r.opts.AARadius,
		AlphaBias: r.opts.AlphaBias,
		Workers:   r.opts.Workers,
	}
	ras.Clear(base)

	r.enc.Reset()
	r.instances = r.instances[:0]
	r.masks = make(map[*clipNode]*image.Alpha)

	var batchImage *gfx.Image
	var batchMask *image.Alpha
	for i := range scene.items {
		it := &scene.items[i]

		var img *gfx.Image
		if pat, ok := it.paint.Brush.(gfx.PatternBrush); ok {
			img = pat.Image
		}
		mask := r.maskFor(it.clip, target)

		if mask != batchMask || (img != nil && batchImage != nil && img != batchImage) {
			r.flush(&ras, batchMask, batchImage)
			batchImage = nil
		}
		batchMask = mask
		if img != nil {
			batchImage = img
		}

		ref, ok := r.enc.EncodeShape(&it.path)
		if !ok || len(r.instances) >= MaxInstances {
			r.flush(&ras, batchMask, batchImage)
			if img == nil {
				batchImage = nil
			}
			ref, ok = r.enc.EncodeShape(&it.path)
			if !ok {
				// The path alone exceeds a batch's buffers.
				continue
			}
		}
		r.instances = append(r.instances, makeInstance(it, ref))
	}
	r.flush(&ras, batchMask, batchImage)
}

func (r *Renderer) flush(ras *raster.Rasterizer, mask *image.Alpha, img *gfx.Image) {
	if len(r.instances) > 0 {
		ras.Mask = mask
		view := raster.View{Points: r.enc.Points, Bands: r.enc.Bands}
		ras.Fill(view, r.instances, img)
		r.instances = r.instances[:0]
	}
	r.enc.Reset()
}

func makeInstance(it *item, ref encoding.PathRef) raster.Instance {
	inst := raster.Instance{
		Transform:   it.transform.Matrix,
		Translation: it.transform.Translation,
		Bounds:      ref.Bounds,
		Flags:       packFlags(it.fill, it.paint.AntiAlias, ref.BandCount),
		BandIndex:   ref.BandIndex,
	}
	switch brush := it.paint.Brush.(type) {
	case gfx.SolidBrush:
		inst.Color = brush.Color.WithAlphaFactor(it.opacity).Premul()
	case gfx.PatternBrush:
		// The pattern multiplies into the base color, so the base is
		// opaque white and the texels carry the paint.
		inst.Color = gfx.White.WithAlphaFactor(it.opacity).Premul()
		if inv, ok := brush.Transform.Inverse(); ok {
			inst.ImageTransform = inv.Matrix
			inst.ImageOffsetOpacity = [3]float32{
				inv.Translation[0],
				inv.Translation[1],
				fmath.Clamp(brush.Opacity, 0, 1),
			}
		}
	}
	return inst
}

func packFlags(fill gfx.Fill, aa gfx.AntiAlias, bands uint32) uint32 {
	flags := bands & raster.FlagsBandMask
	if fill == gfx.NonZero {
		flags |= raster.FlagsNonZeroBit
	}
	switch aa {
	case gfx.AntiAliasFast:
		flags |= fastSampleCount << raster.FlagsSampleShift
	case gfx.AntiAliasFull:
		flags |= raster.FlagsSupersampleBit | fullSampleCount<<raster.FlagsSampleShift
	}
	return flags
}

// maskFor returns the coverage mask of a clip chain, building and
// caching it on first use. The whole chain multiplies into one alpha
// plane at target resolution.
func (r *Renderer) maskFor(node *clipNode, target *image.RGBA) *image.Alpha {
	if node == nil {
		return nil
	}
	if mask, ok := r.masks[node]; ok {
		return mask
	}

	parent := r.maskFor(node.parent, target)

	// The mask shares the target's bounds so device coordinates index
	// both the same way.
	b := target.Bounds()
	scratch := image.NewRGBA(b)
	ras := raster.Rasterizer{Target: scratch, Workers: r.opts.Workers}

	r.maskEnc.Reset()
	ref, ok := r.maskEnc.EncodeShape(&node.path)
	if ok {
		inst := raster.Instance{
			Transform:   node.transform.Matrix,
			Translation: node.transform.Translation,
			Bounds:      ref.Bounds,
			Color:       gfx.White.Premul(),
			Flags:       packFlags(gfx.NonZero, gfx.AntiAliasFast, ref.BandCount),
			BandIndex:   ref.BandIndex,
		}
		view := raster.View{Points: r.maskEnc.Points, Bands: r.maskEnc.Bands}
		ras.Fill(view, []raster.Instance{inst}, nil)
	}

	mask := image.NewAlpha(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := scratch.Pix[scratch.PixOffset(x, y)+3]
			if parent != nil {
				pa := parent.Pix[parent.PixOffset(x, y)]
				a = uint8((uint32(a)*uint32(pa) + 127) / 255)
			}
			mask.Pix[mask.PixOffset(x, y)] = a
		}
	}
	r.masks[node] = mask
	return mask
}
