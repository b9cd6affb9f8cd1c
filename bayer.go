// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import "strings"

// BayerPattern names a 2x2 color-filter-array tile, taken from the
// BAYERPAT card of a raw-sensor image HDU.
type BayerPattern int

const (
	RGGB BayerPattern = iota
	BGGR
	GRBG
	GBRG
)

func (p BayerPattern) String() string {
	switch p {
	case RGGB:
		return "RGGB"
	case BGGR:
		return "BGGR"
	case GRBG:
		return "GRBG"
	case GBRG:
		return "GBRG"
	default:
		return "UNKNOWN"
	}
}

// ParseBayerPattern parses a BAYERPAT card value.
func ParseBayerPattern(s string) (BayerPattern, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RGGB":
		return RGGB, nil
	case "BGGR":
		return BGGR, nil
	case "GRBG":
		return GRBG, nil
	case "GBRG":
		return GBRG, nil
	default:
		return 0, errf(KindInvalidHeader, "ParseBayerPattern", "invalid BAYERPAT value %q", s)
	}
}

// RGB is one demosaiced superpixel.
type RGB struct {
	R, G, B float64
}

// quad holds the four normalized samples of one 2x2 Bayer tile, read in
// the fixed raster order (x,y), (x+1,y), (x,y+1), (x+1,y+1) -- the same
// order the RGGB case binds r/g1/g2/b to.
type quad struct {
	topLeft, topRight, botLeft, botRight float64
}

// Demosaic reduces one 2x2 Bayer tile into a single RGB superpixel.
// RGGB is the pattern every known source (this package's predecessor and
// mlnoga/nightlight's debayer package alike) actually implements; BGGR,
// GRBG and GBRG are filled in here by the symmetry of the tile: each is
// RGGB with the red/blue diagonal, the column order or the row order
// swapped.
func Demosaic(pattern BayerPattern, topLeft, topRight, botLeft, botRight float64) (RGB, error) {
	q := quad{topLeft, topRight, botLeft, botRight}
	switch pattern {
	case RGGB:
		// R  G1
		// G2 B
		return RGB{R: q.topLeft, G: (q.topRight + q.botLeft) / 2, B: q.botRight}, nil
	case BGGR:
		// B  G1
		// G2 R
		// mirror of RGGB across the diagonal: swap the R and B corners.
		return RGB{R: q.botRight, G: (q.topRight + q.botLeft) / 2, B: q.topLeft}, nil
	case GRBG:
		// G1 R
		// B  G2
		// RGGB with the two columns of the tile swapped left-to-right.
		return RGB{R: q.topRight, G: (q.topLeft + q.botRight) / 2, B: q.botLeft}, nil
	case GBRG:
		// G1 B
		// R  G2
		// RGGB with rows swapped top-to-bottom.
		return RGB{R: q.botLeft, G: (q.topLeft + q.botRight) / 2, B: q.topRight}, nil
	default:
		return RGB{}, UnsupportedFeature("Demosaic", "bayer:"+pattern.String())
	}
}
