// Copyright 2025 the Ori Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Command filldemo renders a sample scene to a PNG file.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"honnef.co/go/color"
	"honnef.co/go/curve"

	"github.com/ori-ui/fill"
	"github.com/ori-ui/fill/fmath"
	"github.com/ori-ui/fill/gfx"
)

// srgb converts a designer-authored sRGB color to the linear form the
// rasterizer blends in.
func srgb(r, g, b, a float64) gfx.Color {
	var c color.Color
	c.Space = color.SRGB
	c.Values[0] = r
	c.Values[1] = g
	c.Values[2] = b
	c.Values[3] = a
	return gfx.FromColor(&c)
}

func main() {
	var (
		out  string
		size int
	)
	flag.StringVar(&out, "out", "filldemo.png", "Path to output `file`")
	flag.IntVar(&size, "size", 512, "Output size in `pixels`")
	flag.Parse()

	target := image.NewRGBA(image.Rect(0, 0, size, size))
	var scene fill.Scene
	buildScene(&scene, float64(size))

	r := fill.NewRenderer(fill.RendererOptions{})
	r.Render(&scene, target, gfx.White)

	f, err := os.Create(out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, target); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildScene(scene *fill.Scene, size float64) {
	s := size / 512

	// A five-pointed star under the even-odd rule.
	star := starPath(curve.Point{X: 140, Y: 150}, 110, 5)
	scene.Fill(&star, gfx.EvenOdd, gfx.Paint{
		Brush:     gfx.SolidBrush{Color: srgb(0.95, 0.72, 0.2, 1)},
		AntiAlias: gfx.AntiAliasFast,
	}, fmath.Scale(float32(s), float32(s)))

	// The same star under nonzero, rotated, supersampled.
	scene.Fill(&star, gfx.NonZero, gfx.Paint{
		Brush:     gfx.SolidBrush{Color: srgb(0.35, 0.58, 0.92, 0.8)},
		AntiAlias: gfx.AntiAliasFull,
	}, fmath.Scale(float32(s), float32(s)).
		Mul(fmath.Translate(370, 150)).
		Mul(fmath.Rotate(0.4)).
		Mul(fmath.Translate(-140, -150)))

	// A stroked circle.
	circle := curve.Circle{Center: curve.Point{X: 256, Y: 256}, Radius: 180}
	scene.Stroke(circle, curve.Stroke{Width: 6}, gfx.Paint{
		Brush:     gfx.SolidBrush{Color: srgb(0.45, 0.45, 0.45, 1)},
		AntiAlias: gfx.AntiAliasFast,
	}, fmath.Scale(float32(s), float32(s)))

	// A translucent layer clipped to the circle.
	scene.PushLayer(circle, 0.6, fmath.Scale(float32(s), float32(s)))
	rect := curve.NewRectFromPoints(curve.Point{X: 120, Y: 300}, curve.Point{X: 400, Y: 440})
	scene.Fill(rect, gfx.NonZero, gfx.Paint{
		Brush:     gfx.SolidBrush{Color: srgb(0.36, 0.8, 0.58, 1)},
		AntiAlias: gfx.AntiAliasFast,
	}, fmath.Identity)
	scene.PopLayer()
}

func starPath(center curve.Point, radius float64, points int) curve.BezPath {
	var path curve.BezPath
	for i := range 2 * points {
		r := radius
		if i%2 == 1 {
			r *= 0.45
		}
		a := float64(i) * math.Pi / float64(points)
		p := curve.Point{
			X: center.X + r*math.Sin(a),
			Y: center.Y - r*math.Cos(a),
		}
		if i == 0 {
			path.MoveTo(p)
		} else {
			path.LineTo(p)
		}
	}
	path.ClosePath()
	return path
}
