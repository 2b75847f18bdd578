/*
Package gfx holds the device-level graphics types of textimg: 32-bit
pixel images and fill colors.

Images store pixels in blue, green, red, alpha byte order with 8 bits per
channel and premultiplied alpha, which is the layout of ARGB32 surfaces on
little-endian machines. Colors are given as non-premultiplied 8-bit
channels, as users usually state them.

BSD License

Copyright (c) 2017-21, Norbert Pillmayer <norbert@pillmayer.com>

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of Norbert Pillmayer nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package gfx

import (
	"image"
	"image/color"
)

// Depth is the number of bits per pixel of every Image.
const Depth = 32

// Channel offsets within a pixel.
const (
	Blue  = 0
	Green = 1
	Red   = 2
	Alpha = 3
)

// Image is a 32-bit BGRA pixel buffer with premultiplied alpha.
// An Image is exclusively owned by the client it has been handed to.
//
// Image implements draw.Image.
type Image struct {
	Width  int
	Height int
	Depth  int
	Stride int    // bytes per row
	Pix    []byte // B, G, R, A
}

// NewImage allocates a transparent image of size w×h.
func NewImage(w, h int) *Image {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Image{
		Width:  w,
		Height: h,
		Depth:  Depth,
		Stride: 4 * w,
		Pix:    make([]byte, 4*w*h),
	}
}

// PixOffset returns the index of the first byte of pixel (x, y) in Pix.
func (img *Image) PixOffset(x, y int) int {
	return y*img.Stride + x*4
}

// ColorModel returns the premultiplied RGBA color model.
func (img *Image) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds returns the image rectangle, anchored at (0,0).
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// At returns the color of a pixel. Pixels outside the image are transparent.
func (img *Image) At(x, y int) color.Color {
	return img.RGBAAt(x, y)
}

// RGBAAt returns the premultiplied color of a pixel.
func (img *Image) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{x, y}.In(img.Bounds())) {
		return color.RGBA{}
	}
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+4 : i+4]
	return color.RGBA{R: p[Red], G: p[Green], B: p[Blue], A: p[Alpha]}
}

// Set sets the color of a pixel. Pixels outside the image are ignored.
func (img *Image) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(img.Bounds())) {
		return
	}
	i := img.PixOffset(x, y)
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	p := img.Pix[i : i+4 : i+4]
	p[Blue], p[Green], p[Red], p[Alpha] = rgba.B, rgba.G, rgba.R, rgba.A
}

// Opaque is a predicate: are all pixels of the image fully opaque?
func (img *Image) Opaque() bool {
	for i := Alpha; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			return false
		}
	}
	return true
}

// InkBounds returns the smallest rectangle containing all non-transparent
// pixels of the image.
func (img *Image) InkBounds() image.Rectangle {
	var ink image.Rectangle
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if img.Pix[img.PixOffset(x, y)+Alpha] != 0 {
				ink = ink.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return ink
}

// ToRGBA converts the image to an image.RGBA, e.g., for encoding.
func (img *Image) ToRGBA() *image.RGBA {
	rgba := image.NewRGBA(img.Bounds())
	for y := 0; y < img.Height; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+4*img.Width]
		dst := rgba.Pix[y*rgba.Stride : y*rgba.Stride+4*img.Width]
		for x := 0; x < len(src); x += 4 {
			dst[x+0] = src[x+Red]
			dst[x+1] = src[x+Green]
			dst[x+2] = src[x+Blue]
			dst[x+3] = src[x+Alpha]
		}
	}
	return rgba
}
