// Copyright 2016 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// fltimg provides image.Image implementations for the float32- and
// float64-image encodings of FITS, plus a demosaiced-superpixel view
// used by the Bayer-pattern decode path.
package fltimg

import (
	"encoding/binary"
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	gamma = 1 / 2.2
)

type f32Gray float32

func (c f32Gray) RGBA() (r, g, b, a uint32) {
	f := math.Pow(float64(c), gamma)
	switch {
	case f > 1:
		f = 1
	case f < 0:
		f = 0
	}
	i := uint32(f * 0xffff)
	return i, i, i, 0xffff
}

// Gray32 represents an image.Image encoded in 32b IEEE floating-point values
type Gray32 struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
	Min    float32
	Max    float32
}

// NewGray32 creates a new Gray32 image with the given bounds.
func NewGray32(rect image.Rectangle, pix []byte) *Gray32 {
	w, h := rect.Dx(), rect.Dy()
	switch {
	case pix == nil:
		panic("fltimg: nil pixel buffer")
	case len(pix) != 4*w*h:
		panic("fltimg: inconsistent pixels size")
	}
	img := &Gray32{Pix: pix, Stride: 4 * w, Rect: rect}
	min := float32(+math.MaxFloat32)
	max := float32(-math.MaxFloat32)
	for i := 0; i < len(img.Pix); i += 4 {
		v := img.at(i)
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	img.Min = min
	img.Max = max
	return img
}

func (p *Gray32) at(i int) float32 {
	bits := binary.BigEndian.Uint32(p.Pix[i : i+4])
	return math.Float32frombits(bits)
}

func (p *Gray32) setf(i int, v float32) {
	binary.BigEndian.PutUint32(p.Pix[i:i+4], math.Float32bits(v))
}

func (p *Gray32) ColorModel() color.Model { return Gray32Model }
func (p *Gray32) Bounds() image.Rectangle { return p.Rect }
func (p *Gray32) At(x, y int) color.Color {
	i := p.PixOffset(x, y)
	v := p.at(i)
	f := (v - p.Min) / (p.Max - p.Min)
	switch {
	case f < 0:
		f = 0
	case f > 1:
		f = 1
	}
	return f32Gray(f)
}

func (p *Gray32) Set(x, y int, c color.Color) {
	i := p.PixOffset(x, y)
	r, _, _, _ := Gray32Model.Convert(c).RGBA()
	v := math.Exp(math.Log(float64(r)/float64(0xffff)) / gamma)
	p.setf(i, float32(v))
}

func (p *Gray32) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*4
}

type f64Gray float64

func (c f64Gray) RGBA() (r, g, b, a uint32) {
	f := math.Pow(float64(c), gamma)
	switch {
	case f > 1:
		f = 1
	case f < 0:
		f = 0
	}
	i := uint32(f * 0xffff)
	return i, i, i, 0xffff
}

// Gray64 represents an image.Image encoded in 64b IEEE floating-point values
type Gray64 struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
	Min    float64
	Max    float64
}

// NewGray64 creates a new Gray64 image with the given bounds.
func NewGray64(rect image.Rectangle, pix []byte) *Gray64 {
	w, h := rect.Dx(), rect.Dy()
	switch {
	case pix == nil:
		panic("fltimg: nil pixel buffer")
	case len(pix) != 8*w*h:
		panic("fltimg: inconsistent pixels size")
	}
	img := &Gray64{pix, 8 * w, rect, 0, 0}
	min := +math.MaxFloat64
	max := -math.MaxFloat64
	for i := 0; i < len(img.Pix); i += 8 {
		v := img.at(i)
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	img.Min = min
	img.Max = max
	return img

}

func (p *Gray64) at(i int) float64 {
	bits := binary.BigEndian.Uint64(p.Pix[i : i+8])
	return math.Float64frombits(bits)
}

func (p *Gray64) setf(i int, v float64) {
	binary.BigEndian.PutUint64(p.Pix[i:i+8], math.Float64bits(v))
}

func (p *Gray64) ColorModel() color.Model { return Gray64Model }
func (p *Gray64) Bounds() image.Rectangle { return p.Rect }
func (p *Gray64) At(x, y int) color.Color {
	i := p.PixOffset(x, y)
	v := p.at(i)
	f := (1 - (v-p.Min)/(p.Max-p.Min))
	switch {
	case f < 0:
		f = 0
	case f > 1:
		f = 1
	}
	return f64Gray(f)
}

func (p *Gray64) Set(x, y int, c color.Color) {
	i := p.PixOffset(x, y)
	r, _, _, _ := Gray64Model.Convert(c).RGBA()
	v := math.Exp(math.Log(float64(r)/float64(0xffff)) / gamma)
	p.setf(i, v)
}

func (p *Gray64) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*8
}

// Models for the fltimg color types.
var (
	Gray32Model color.Model = color.ModelFunc(gray32Model)
	Gray64Model color.Model = color.ModelFunc(gray64Model)
)

func gray32Model(c color.Color) color.Color {
	if _, ok := c.(f32Gray); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 16
	v := math.Exp(math.Log(float64(y)/float64(0xffff)) / gamma)
	return f32Gray(v)
}

func gray64Model(c color.Color) color.Color {
	if _, ok := c.(f64Gray); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 16
	v := math.Exp(math.Log(float64(y)/float64(0xffff)) / gamma)
	return f64Gray(v)
}

// Superpixel is an image.Image built from the RGB triples a Bayer
// demosaic produces: one pixel per 2x2 sensor tile, already normalized
// to [0,1] per channel.
type Superpixel struct {
	Pix    []float64 // R,G,B triples, row-major
	Stride int       // floats per row (3 * width)
	Rect   image.Rectangle
}

// NewSuperpixel creates a Superpixel image of the given bounds; rgb must
// contain 3*w*h float64 values in [0,1].
func NewSuperpixel(rect image.Rectangle, rgb []float64) *Superpixel {
	w, h := rect.Dx(), rect.Dy()
	if len(rgb) != 3*w*h {
		panic("fltimg: inconsistent superpixel buffer size")
	}
	return &Superpixel{Pix: rgb, Stride: 3 * w, Rect: rect}
}

func (p *Superpixel) ColorModel() color.Model { return color.RGBA64Model }
func (p *Superpixel) Bounds() image.Rectangle { return p.Rect }

func (p *Superpixel) At(x, y int) color.Color {
	i := (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
	clamp := func(v float64) uint16 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint16(v * 0xffff)
	}
	return color.RGBA64{
		R: clamp(p.Pix[i]),
		G: clamp(p.Pix[i+1]),
		B: clamp(p.Pix[i+2]),
		A: 0xffff,
	}
}

// ToColorful renders this image's pixels, row-major, as go-colorful
// colors, for callers doing perceptual-space blending (as a
// multi-frame stacking pipeline would when combining aligned exposures).
func (p *Superpixel) ToColorful() []colorful.Color {
	w, h := p.Rect.Dx(), p.Rect.Dy()
	out := make([]colorful.Color, 0, w*h)
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		for x := p.Rect.Min.X; x < p.Rect.Max.X; x++ {
			i := (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
			out = append(out, colorful.Color{R: p.Pix[i], G: p.Pix[i+1], B: p.Pix[i+2]})
		}
	}
	return out
}
