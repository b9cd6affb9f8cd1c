// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

// Bitpix is the pixel storage type of an image HDU, taken from the
// BITPIX card. A 64-bit integer image is not a recognized Bitpix here:
// FITS readers in practice only ever produce {-64,-32,8,16,32}, and
// accepting BITPIX=64 would be unverified surface with no real fixture
// to exercise it.
type Bitpix int

const (
	Float64 Bitpix = -64
	Float32 Bitpix = -32
	Uint8   Bitpix = 8
	Int16   Bitpix = 16
	Int32   Bitpix = 32
)

// ByteSize returns the number of bytes one pixel of this type occupies.
func (b Bitpix) ByteSize() int {
	v := int(b)
	if v < 0 {
		v = -v
	}
	return v / 8
}

// Float reports whether this Bitpix stores IEEE floating point pixels.
func (b Bitpix) Float() bool {
	return b == Float32 || b == Float64
}

// TypeMax returns the divisor the canonical normalization formula uses
// for this type: the maximum magnitude representable by the pixel's
// storage type. Floating-point pixels are assumed pre-scaled to roughly
// [0,1] by BSCALE/BZERO already and use 1.0.
func (b Bitpix) TypeMax() float64 {
	switch b {
	case Uint8:
		return 255
	case Int16:
		return 32767
	case Int32:
		return 2147483647
	case Float32, Float64:
		return 1
	default:
		return 1
	}
}

func (b Bitpix) String() string {
	switch b {
	case Float64:
		return "FLOAT64"
	case Float32:
		return "FLOAT32"
	case Uint8:
		return "UINT8"
	case Int16:
		return "INT16"
	case Int32:
		return "INT32"
	default:
		return "INVALID"
	}
}

// ParseBitpix validates a raw BITPIX integer value.
func ParseBitpix(v int64) (Bitpix, error) {
	switch Bitpix(v) {
	case Float64, Float32, Uint8, Int16, Int32:
		return Bitpix(v), nil
	default:
		return 0, errf(KindInvalidHeader, "ParseBitpix", "unsupported BITPIX value %d", v)
	}
}
