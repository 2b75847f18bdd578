// Package dimen implements dimensions and units for rendering text to
// device pixels.
//
// Fonts are scaled at a fixed device resolution of 100 dots per inch.
// Positions on the pen grid are measured in 1/64 of a pixel, which is the
// 26.6 fixed point format of golang.org/x/image/math/fixed.
/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer (norbert@pillmayer.com)

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
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
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package dimen

import (
	"errors"
	"math"
	"regexp"
	"strconv"

	"golang.org/x/image/math/fixed"
)

// DPI is the device resolution fonts are scaled to.
const DPI = 100

// PenDPI is the number of pen units per pixel.
const PenDPI = 64

// PointsPerInch is the number of (PostScript) points per inch.
const PointsPerInch = 72

// UserSpaceDPI is the resolution at which one point maps to one pixel.
// Rendered text is scaled to it, with the em equal to the point size.
const UserSpaceDPI = PointsPerInch

// PPEM returns the pixels-per-em for a point size at a device resolution,
// in pen units.
func PPEM(pointSize int, dpi int) fixed.Int26_6 {
	// FreeType computes char size * dpi / 72 on the 26.6 grid, rounding
	return fixed.Int26_6((pointSize*PenDPI*dpi + PointsPerInch/2) / PointsPerInch)
}

// ToPixels converts pen units to whole pixels, truncating towards zero.
// This is integer division by PenDPI, not flooring.
func ToPixels(u fixed.Int26_6) int {
	return int(u) / PenDPI
}

// ToPen converts whole pixels to pen units.
func ToPen(px int) fixed.Int26_6 {
	return fixed.Int26_6(px * PenDPI)
}

// PenPoint creates a point in pen units from pixel coordinates.
func PenPoint(x, y int) fixed.Point26_6 {
	return fixed.Point26_6{X: ToPen(x), Y: ToPen(y)}
}

// ---------------------------------------------------------------------------

var sizePattern = regexp.MustCompile(`^\s*([0-9]+)\s*(pt|PT|px|PX)?\s*$`)

// ParseSize parses a font size given either in points (`32`, `32pt`) or in
// pixels (`44px`). Pixel sizes are converted to points at resolution dpi,
// rounding to the nearest whole point.
//
// ParseSize returns an error for malformed input and for non-positive sizes.
func ParseSize(s string, dpi int) (int, error) {
	d := sizePattern.FindStringSubmatch(s)
	if len(d) < 2 {
		return 0, errors.New("format error parsing font size")
	}
	n, err := strconv.Atoi(d[1])
	if err != nil {
		return 0, errors.New("format error parsing font size")
	}
	switch d[2] {
	case "px", "PX":
		if dpi <= 0 {
			return 0, errors.New("cannot convert pixel size without resolution")
		}
		n = int(math.Round(float64(n) * PointsPerInch / float64(dpi)))
	}
	if n <= 0 {
		return 0, errors.New("font size must be positive")
	}
	return n, nil
}

// ---------------------------------------------------------------------------

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Abs returns the absolute value of an integer.
func Abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
