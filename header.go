// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import "fmt"

// Header is the parsed card list of one HDU, plus the handful of
// structural fields (type, bitpix, axes) every HDU needs regardless of
// its payload. Lookups are linear, first-match scans over the card
// slice: headers rarely carry more than a few hundred cards, so a map
// index buys nothing over a scan.
type Header struct {
	htype HDUType
	cards []Card
}

// newHeaderFrom builds a Header from an already-parsed card slice. No
// validation beyond what ParseCard already did is performed here;
// mandatory-keyword checks happen in the Segmenter, which knows the HDU
// type and can give a more precise error.
func newHeaderFrom(cards []Card, htype HDUType) *Header {
	return &Header{htype: htype, cards: cards}
}

// Type returns the kind of HDU this Header describes.
func (hdr *Header) Type() HDUType { return hdr.htype }

// NumCards returns the number of cards in this Header (including
// structural COMMENT/HISTORY/blank lines and the END card).
func (hdr *Header) NumCards() int { return len(hdr.cards) }

// Card returns the i-th card. Card panics if i is out of range.
func (hdr *Header) Card(i int) *Card { return &hdr.cards[i] }

// Get returns the first card named n, or nil if none exists.
func (hdr *Header) Get(n string) *Card {
	for i := range hdr.cards {
		if hdr.cards[i].Name == n {
			return &hdr.cards[i]
		}
	}
	return nil
}

// GetIndexed returns the first card whose base keyword is prefix and
// whose Index is idx (e.g. GetIndexed("NAXIS", 2) finds "NAXIS2").
func (hdr *Header) GetIndexed(prefix string, idx int) *Card {
	want := fmt.Sprintf("%s%d", prefix, idx)
	return hdr.Get(want)
}

// Index returns the position of the first card named n, or -1.
func (hdr *Header) Index(n string) int {
	for i := range hdr.cards {
		if hdr.cards[i].Name == n {
			return i
		}
	}
	return -1
}

// Keys returns the names of all non-structural cards (COMMENT, HISTORY,
// END and blank lines are excluded), in header order.
func (hdr *Header) Keys() []string {
	keys := make([]string, 0, len(hdr.cards))
	for i := range hdr.cards {
		switch hdr.cards[i].Name {
		case "END", "COMMENT", "HISTORY", "":
			continue
		default:
			keys = append(keys, hdr.cards[i].Name)
		}
	}
	return keys
}

// Comment concatenates every COMMENT card's text.
func (hdr *Header) Comment() string {
	var out string
	for i := range hdr.cards {
		if hdr.cards[i].Kind == KComment {
			out += hdr.cards[i].Comment
		}
	}
	return out
}

// History concatenates every HISTORY card's text.
func (hdr *Header) History() string {
	var out string
	for i := range hdr.cards {
		if hdr.cards[i].Kind == KHistory {
			out += hdr.cards[i].Comment
		}
	}
	return out
}

// Bitpix returns the parsed BITPIX value. ok is false if the BITPIX card
// is missing or its value did not parse into a recognized Bitpix.
func (hdr *Header) Bitpix() (bp Bitpix, ok bool) {
	card := hdr.Get("BITPIX")
	if card == nil {
		return 0, false
	}
	bp, ok = card.Value.(Bitpix)
	return bp, ok
}

// Naxis returns the NAXIS value (number of axes).
func (hdr *Header) Naxis() (int, bool) {
	card := hdr.Get("NAXIS")
	if card == nil {
		return 0, false
	}
	v, ok := card.Int64()
	return int(v), ok
}

// Axes returns the NAXIS1..NAXISn dimensions, in that order.
func (hdr *Header) Axes() ([]int64, error) {
	n, ok := hdr.Naxis()
	if !ok {
		return nil, errf(KindInvalidHeader, "Header.Axes", "missing NAXIS card")
	}
	axes := make([]int64, n)
	for i := 0; i < n; i++ {
		card := hdr.GetIndexed("NAXIS", i+1)
		if card == nil {
			return nil, errf(KindInvalidHeader, "Header.Axes", "missing NAXIS%d card", i+1)
		}
		v, ok := card.Int64()
		if !ok {
			return nil, errf(KindInvalidHeader, "Header.Axes", "NAXIS%d has non-integer value", i+1)
		}
		axes[i] = v
	}
	return axes, nil
}

// Bscale returns the BSCALE value, defaulting to 1.0 if absent.
func (hdr *Header) Bscale() float64 {
	if card := hdr.Get("BSCALE"); card != nil {
		if v, ok := card.Float64(); ok {
			return v
		}
	}
	return 1.0
}

// Bzero returns the BZERO value, defaulting to 0.0 if absent.
func (hdr *Header) Bzero() float64 {
	if card := hdr.Get("BZERO"); card != nil {
		if v, ok := card.Float64(); ok {
			return v
		}
	}
	return 0.0
}

// BayerPattern returns the BAYERPAT value, if present and valid.
func (hdr *Header) BayerPattern() (BayerPattern, bool) {
	card := hdr.Get("BAYERPAT")
	if card == nil {
		return 0, false
	}
	bp, ok := card.Value.(BayerPattern)
	return bp, ok
}

// ExtensionName returns the EXTNAME value, or "PRIMARY" for a primary HDU
// with no EXTNAME card.
func (hdr *Header) ExtensionName() string {
	if card := hdr.Get("EXTNAME"); card != nil {
		if s, ok := card.String(); ok {
			return s
		}
	}
	if hdr.Get("SIMPLE") != nil {
		return "PRIMARY"
	}
	return ""
}

// ExtensionVersion returns the EXTVER value, defaulting to 1.
func (hdr *Header) ExtensionVersion() int {
	if card := hdr.Get("EXTVER"); card != nil {
		if v, ok := card.Int64(); ok {
			return int(v)
		}
	}
	return 1
}
