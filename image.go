// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"bytes"
	"encoding/binary"
	"image"
	"io"
	"math"

	bin "github.com/gonuts/binary"
	"github.com/sbinet-labs/gofits/fltimg"
	"golang.org/x/image/tiff"
)

// imageHDU is an ImageHDU: a rectangular (or higher-dimensional) array of
// BITPIX-typed pixels, optionally tagged with a BAYERPAT card.
type imageHDU struct {
	baseHDU
	src dataSource

	raw  []byte // cached raw big-endian bytes, filled lazily by Raw()
	bp   Bitpix
	axes []int64
}

// Raw returns this HDU's data segment as undecoded big-endian bytes (see
// Pixels for the decode), read on first use and cached afterwards -- the
// lazy re-read the random-access Segmenter was built to support.
func (h *imageHDU) Raw() ([]byte, error) {
	if h.raw != nil {
		return h.raw, nil
	}

	raw := make([]byte, h.dataLen)
	if h.dataLen == 0 {
		h.raw = raw
		return raw, nil
	}
	n, rerr := h.src.ReadAt(raw, h.dataOff)
	if rerr != nil && !(rerr == io.EOF && int64(n) == h.dataLen) {
		return nil, wrapf(KindShortRead, "imageHDU.Raw", rerr, "short image data read (wanted %d got %d)", h.dataLen, n)
	}
	h.raw = raw
	return raw, nil
}

func (h *imageHDU) dims() (Bitpix, []int64, error) {
	if h.axes != nil {
		return h.bp, h.axes, nil
	}
	bp, ok := h.hdr.Bitpix()
	if !ok {
		return 0, nil, errf(KindInvalidHeader, "imageHDU.dims", "missing BITPIX")
	}
	axes, err := h.hdr.Axes()
	if err != nil {
		return 0, nil, err
	}
	h.bp, h.axes = bp, axes
	return bp, axes, nil
}

// Pixels decodes the raw big-endian pixel words into float64, in the
// original BITPIX-native numeric range (i.e. *before* BZERO/BSCALE
// normalization -- see Normalized).
func (h *imageHDU) Pixels() ([]float64, error) {
	bp, axes, err := h.dims()
	if err != nil {
		return nil, err
	}
	raw, err := h.Raw()
	if err != nil {
		return nil, err
	}
	n := int64(1)
	for _, a := range axes {
		n *= a
	}
	return decodePixels(bp, raw, n)
}

// decodePixels reads n BITPIX-typed big-endian words out of raw into
// float64, in the pixel's native numeric range.
func decodePixels(bp Bitpix, raw []byte, n int64) ([]float64, error) {
	dec := bin.NewDecoder(bytes.NewReader(raw))
	dec.Order = bin.BigEndian

	out := make([]float64, n)
	for i := int64(0); i < n; i++ {
		switch bp {
		case Uint8:
			var v uint8
			if err := dec.Decode(&v); err != nil {
				return nil, wrapf(KindShortRead, "decodePixels", err, "decoding pixel %d", i)
			}
			out[i] = float64(v)
		case Int16:
			var v int16
			if err := dec.Decode(&v); err != nil {
				return nil, wrapf(KindShortRead, "decodePixels", err, "decoding pixel %d", i)
			}
			out[i] = float64(v)
		case Int32:
			var v int32
			if err := dec.Decode(&v); err != nil {
				return nil, wrapf(KindShortRead, "decodePixels", err, "decoding pixel %d", i)
			}
			out[i] = float64(v)
		case Float32:
			var v float32
			if err := dec.Decode(&v); err != nil {
				return nil, wrapf(KindShortRead, "decodePixels", err, "decoding pixel %d", i)
			}
			out[i] = float64(v)
		case Float64:
			var v float64
			if err := dec.Decode(&v); err != nil {
				return nil, wrapf(KindShortRead, "decodePixels", err, "decoding pixel %d", i)
			}
			out[i] = v
		default:
			return nil, errf(KindInvalidHeader, "decodePixels", "unsupported BITPIX %v", bp)
		}
	}
	return out, nil
}

// ReadImage selects frame index out of a NAXIS=3 image stack (NAXIS3
// frames of NAXIS1 x NAXIS2 pixels each) and decodes just that frame,
// without reading the rest of the cube. index out of [0,NAXIS3) is not
// an error: it reports ok=false, the explicit "no such image" result.
func (h *imageHDU) ReadImage(index int64) (pixels []float64, ok bool, err error) {
	bp, axes, err := h.dims()
	if err != nil {
		return nil, false, err
	}
	if len(axes) != 3 {
		return nil, false, errf(KindInvalidHeader, "imageHDU.ReadImage", "image is not a NAXIS=3 stack (NAXIS=%d)", len(axes))
	}
	w, ht, depth := axes[0], axes[1], axes[2]
	if index < 0 || index >= depth {
		return nil, false, nil
	}

	frameN, err := mulOverflow(uint64(w), uint64(ht))
	if err != nil {
		return nil, false, err
	}
	frameBytes, err := mulOverflow(frameN, uint64(bp.ByteSize()))
	if err != nil {
		return nil, false, err
	}
	skipBytes, err := mulOverflow(uint64(index), frameBytes)
	if err != nil {
		return nil, false, err
	}

	off := h.dataOff + int64(skipBytes)
	raw := make([]byte, frameBytes)
	n, rerr := h.src.ReadAt(raw, off)
	if rerr != nil && !(rerr == io.EOF && uint64(n) == frameBytes) {
		return nil, false, wrapf(KindShortRead, "imageHDU.ReadImage", rerr, "short frame read (wanted %d got %d)", frameBytes, n)
	}

	pixels, err = decodePixels(bp, raw, int64(frameN))
	if err != nil {
		return nil, false, err
	}
	return pixels, true, nil
}

// Normalized decodes pixels and applies the single canonical
// normalization formula uniformly across every BITPIX:
//
//	out = clamp(((pixel + BZERO) * BSCALE) / TypeMax, 0, 1)
//
// The original source applied a different, inconsistent formula per
// pixel type (one branch divided where it should have multiplied,
// another folded BZERO into the denominator); this package deliberately
// does not carry that bug forward.
func (h *imageHDU) Normalized() ([]float64, error) {
	bp, _, err := h.dims()
	if err != nil {
		return nil, err
	}
	pixels, err := h.Pixels()
	if err != nil {
		return nil, err
	}
	bzero := h.hdr.Bzero()
	bscale := h.hdr.Bscale()
	typeMax := bp.TypeMax()

	out := make([]float64, len(pixels))
	for i, p := range pixels {
		v := ((p + bzero) * bscale) / typeMax
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		out[i] = v
	}
	return out, nil
}

// Image renders this HDU as a stdlib image.Image. A 2-D, non-Bayer image
// becomes a gamma-corrected fltimg.Gray32 view (float BITPIX) or a
// flat 8-bit grayscale image.Gray (integer BITPIX); a 2-D image carrying
// a BAYERPAT card is demosaiced into an fltimg.Superpixel half the width
// and height.
func (h *imageHDU) Image() (image.Image, error) {
	bp, axes, err := h.dims()
	if err != nil {
		return nil, err
	}
	if len(axes) != 2 {
		return nil, UnsupportedFeature("imageHDU.Image", "non-2D image display")
	}
	w, ht := int(axes[0]), int(axes[1])

	if pattern, ok := h.hdr.BayerPattern(); ok {
		return h.demosaic(pattern, w, ht)
	}

	norm, err := h.Normalized()
	if err != nil {
		return nil, err
	}

	if bp.Float() {
		pix := make([]byte, 4*w*ht)
		for i, v := range norm {
			binary.BigEndian.PutUint32(pix[i*4:], math.Float32bits(float32(v)))
		}
		return fltimg.NewGray32(image.Rect(0, 0, w, ht), pix), nil
	}

	img := image.NewGray(image.Rect(0, 0, w, ht))
	for i, v := range norm {
		img.Pix[i] = uint8(v * 255)
	}
	return img, nil
}

func (h *imageHDU) demosaic(pattern BayerPattern, w, ht int) (image.Image, error) {
	norm, err := h.Normalized()
	if err != nil {
		return nil, err
	}
	ow, oh := w/2, ht/2
	rgb := make([]float64, 3*ow*oh)
	at := func(x, y int) float64 { return norm[y*w+x] }
	for y := 0; y < oh; y++ {
		for x := 0; x < ow; x++ {
			tl := at(2*x, 2*y)
			tr := at(2*x+1, 2*y)
			bl := at(2*x, 2*y+1)
			br := at(2*x+1, 2*y+1)
			c, err := Demosaic(pattern, tl, tr, bl, br)
			if err != nil {
				return nil, err
			}
			i := (y*ow + x) * 3
			rgb[i], rgb[i+1], rgb[i+2] = c.R, c.G, c.B
		}
	}
	return fltimg.NewSuperpixel(image.Rect(0, 0, ow, oh), rgb), nil
}

// EncodeTIFF writes this HDU's rendered image.Image out as a TIFF, the
// one concrete third-party pixel-buffer sink this package targets
// (golang.org/x/image ships codecs, not a generic in-memory buffer type,
// so TIFF is the natural terminal format for a normalized image).
func (h *imageHDU) EncodeTIFF(w io.Writer) error {
	img, err := h.Image()
	if err != nil {
		return err
	}
	return tiff.Encode(w, img, nil)
}
