// Copyright 2025 the Ori Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package fill

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"honnef.co/go/curve"

	"github.com/ori-ui/fill/fmath"
	"github.com/ori-ui/fill/gfx"
)

func solid(r, g, b, a float32) gfx.Paint {
	return gfx.Paint{Brush: gfx.SolidBrush{Color: gfx.Color{R: r, G: g, B: b, A: a}}}
}

func renderScene(scene *Scene, size int, base gfx.Color) *image.RGBA {
	target := image.NewRGBA(image.Rect(0, 0, size, size))
	NewRenderer(RendererOptions{Workers: 1}).Render(scene, target, base)
	return target
}

func pixel(img *image.RGBA, x, y int) [4]uint8 {
	i := img.PixOffset(x, y)
	return [4]uint8(img.Pix[i : i+4])
}

func TestRenderSolidRect(t *testing.T) {
	var scene Scene
	rect := curve.NewRectFromPoints(curve.Point{X: 8, Y: 8}, curve.Point{X: 56, Y: 56})
	scene.Fill(rect, gfx.NonZero, solid(1, 0, 0, 1), fmath.Identity)

	img := renderScene(&scene, 64, gfx.White)
	assert.Equal(t, [4]uint8{255, 0, 0, 255}, pixel(img, 32, 32))
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, pixel(img, 2, 2))
}

func TestRenderBlending(t *testing.T) {
	var scene Scene
	rect := curve.NewRectFromPoints(curve.Point{X: 0, Y: 0}, curve.Point{X: 64, Y: 64})
	scene.Fill(rect, gfx.NonZero, solid(0, 0, 0, 0.5), fmath.Identity)

	img := renderScene(&scene, 64, gfx.White)
	px := pixel(img, 32, 32)
	for c := range 3 {
		assert.InDelta(t, 128, px[c], 1)
	}
	assert.Equal(t, uint8(255), px[3])
}

func TestRenderOrder(t *testing.T) {
	var scene Scene
	rect := curve.NewRectFromPoints(curve.Point{X: 8, Y: 8}, curve.Point{X: 56, Y: 56})
	scene.Fill(rect, gfx.NonZero, solid(1, 0, 0, 1), fmath.Identity)
	scene.Fill(rect, gfx.NonZero, solid(0, 0, 1, 1), fmath.Identity)

	img := renderScene(&scene, 64, gfx.White)
	assert.Equal(t, [4]uint8{0, 0, 255, 255}, pixel(img, 32, 32))
}

func TestRenderTransform(t *testing.T) {
	var scene Scene
	rect := curve.NewRectFromPoints(curve.Point{X: 0, Y: 0}, curve.Point{X: 8, Y: 8})
	scene.Fill(rect, gfx.NonZero, solid(0, 1, 0, 1), fmath.Translate(40, 40).Mul(fmath.Scale(2, 2)))

	img := renderScene(&scene, 64, gfx.White)
	// The 8x8 rect lands at (40,40)-(56,56) after scaling.
	assert.Equal(t, [4]uint8{0, 255, 0, 255}, pixel(img, 48, 48))
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, pixel(img, 32, 32))
}

func TestRenderStroke(t *testing.T) {
	var scene Scene
	line := curve.Line{P0: curve.Point{X: 10, Y: 32}, P1: curve.Point{X: 54, Y: 32}}
	scene.Stroke(line, curve.Stroke{Width: 6}, solid(0, 0, 0, 1), fmath.Identity)

	img := renderScene(&scene, 64, gfx.White)
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, pixel(img, 32, 32))
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, pixel(img, 32, 20))
}

func TestRenderClipLayer(t *testing.T) {
	var scene Scene
	clip := curve.NewRectFromPoints(curve.Point{X: 0, Y: 0}, curve.Point{X: 32, Y: 64})
	full := curve.NewRectFromPoints(curve.Point{X: 0, Y: 0}, curve.Point{X: 64, Y: 64})

	scene.PushLayer(clip, 1, fmath.Identity)
	scene.Fill(full, gfx.NonZero, solid(1, 0, 0, 1), fmath.Identity)
	scene.PopLayer()

	img := renderScene(&scene, 64, gfx.White)
	assert.Equal(t, [4]uint8{255, 0, 0, 255}, pixel(img, 10, 32))
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, pixel(img, 50, 32))
}

func TestRenderClipLayerOffsetTarget(t *testing.T) {
	// Targets need not start at the origin; clip masks must line up
	// with device coordinates regardless.
	target := image.NewRGBA(image.Rect(16, 16, 80, 80))

	var scene Scene
	clip := curve.NewRectFromPoints(curve.Point{X: 16, Y: 16}, curve.Point{X: 48, Y: 80})
	full := curve.NewRectFromPoints(curve.Point{X: 16, Y: 16}, curve.Point{X: 80, Y: 80})
	scene.PushLayer(clip, 1, fmath.Identity)
	scene.Fill(full, gfx.NonZero, solid(1, 0, 0, 1), fmath.Identity)
	scene.PopLayer()

	NewRenderer(RendererOptions{Workers: 1}).Render(&scene, target, gfx.White)
	assert.Equal(t, [4]uint8{255, 0, 0, 255}, pixel(target, 30, 48))
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, pixel(target, 66, 48))
}

func TestRenderLayerOpacity(t *testing.T) {
	var scene Scene
	rect := curve.NewRectFromPoints(curve.Point{X: 0, Y: 0}, curve.Point{X: 64, Y: 64})

	scene.PushLayer(nil, 0.5, fmath.Identity)
	scene.Fill(rect, gfx.NonZero, solid(0, 0, 0, 1), fmath.Identity)
	scene.PopLayer()

	img := renderScene(&scene, 64, gfx.White)
	px := pixel(img, 32, 32)
	for c := range 3 {
		assert.InDelta(t, 128, px[c], 1)
	}
}

func TestRenderBatchSplitting(t *testing.T) {
	var scene Scene
	rect := curve.NewRectFromPoints(curve.Point{X: 8, Y: 8}, curve.Point{X: 56, Y: 56})
	// More instances than fit in one dispatch; the last one must still
	// end up on top.
	for range MaxInstances + 20 {
		scene.Fill(rect, gfx.NonZero, solid(1, 0, 0, 1), fmath.Identity)
	}
	scene.Fill(rect, gfx.NonZero, solid(0, 0, 1, 1), fmath.Identity)

	img := renderScene(&scene, 64, gfx.White)
	assert.Equal(t, [4]uint8{0, 0, 255, 255}, pixel(img, 32, 32))
}

func TestRenderPattern(t *testing.T) {
	// A solid yellow source image drawn through a pattern brush.
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i+0] = 255
		src.Pix[i+1] = 255
		src.Pix[i+2] = 0
		src.Pix[i+3] = 255
	}
	pat := gfx.PatternBrush{
		Image:     gfx.NewImage(src),
		Transform: fmath.Scale(16, 16),
		Opacity:   1,
	}

	var scene Scene
	rect := curve.NewRectFromPoints(curve.Point{X: 0, Y: 0}, curve.Point{X: 64, Y: 64})
	scene.Fill(rect, gfx.NonZero, gfx.Paint{Brush: pat}, fmath.Identity)

	img := renderScene(&scene, 64, gfx.White)
	assert.Equal(t, [4]uint8{255, 255, 0, 255}, pixel(img, 32, 32))
}

func BenchmarkRender(b *testing.B) {
	var scene Scene
	circle := curve.Circle{Center: curve.Point{X: 128, Y: 128}, Radius: 100}
	scene.Fill(circle, gfx.NonZero, gfx.Paint{
		Brush:     gfx.SolidBrush{Color: gfx.Color{R: 0.2, G: 0.4, B: 0.8, A: 1}},
		AntiAlias: gfx.AntiAliasFast,
	}, fmath.Identity)

	target := image.NewRGBA(image.Rect(0, 0, 256, 256))
	r := NewRenderer(RendererOptions{})
	b.ResetTimer()
	for range b.N {
		r.Render(&scene, target, gfx.White)
	}
}
