// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"fmt"
	"strings"
	"testing"

	"github.com/valyala/fastrand"
)

// TestPropertyIntegerCardRoundTrip checks, over a batch of random values
// sampled with fastrand (cheaper than math/rand for this kind of
// high-volume, non-cryptographic sampling), that ParseCard recovers
// exactly the integer a numeric card was built from.
func TestPropertyIntegerCardRoundTrip(t *testing.T) {
	for i := 0; i < 200; i++ {
		v := int64(fastrand.Uint32())
		if fastrand.Uint32n(2) == 0 {
			v = -v
		}
		line := fmt.Sprintf("VALINT  = %20d", v)
		c, err := ParseCard(card80(line))
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", line, err)
		}
		got, ok := c.Int64()
		if !ok {
			t.Fatalf("ParseCard(%q).Int64() ok = false", line)
		}
		if got != v {
			t.Fatalf("ParseCard(%q) = %d, want %d", line, got, v)
		}
	}
}

// TestPropertyBitpixRoundTrip checks that every BITPIX value FITS allows
// parses to a Bitpix whose ByteSize/Float are mutually consistent
// (exactly one of the five legal codes, never zero-sized).
func TestPropertyBitpixRoundTrip(t *testing.T) {
	legal := []int64{8, 16, 32, -32, -64}
	for i := 0; i < 200; i++ {
		v := legal[fastrand.Uint32n(uint32(len(legal)))]
		line := fmt.Sprintf("BITPIX  = %20d", v)
		c, err := ParseCard(card80(line))
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", line, err)
		}
		bp, ok := c.Value.(Bitpix)
		if !ok {
			t.Fatalf("ParseCard(%q).Value is %T, want Bitpix", line, c.Value)
		}
		if bp.ByteSize() <= 0 {
			t.Errorf("Bitpix(%d).ByteSize() = %d, want > 0", v, bp.ByteSize())
		}
		if bp.Float() != (v < 0) {
			t.Errorf("Bitpix(%d).Float() = %v, want %v", v, bp.Float(), v < 0)
		}
	}
}

// TestPropertyQuotedStringRoundTrip checks that processQuotedString
// recovers a random alphanumeric payload embedded in a FITS string card,
// independent of how much trailing pad the 8-character-aligned quoted
// field carries.
func TestPropertyQuotedStringRoundTrip(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	for i := 0; i < 200; i++ {
		n := int(fastrand.Uint32n(12)) + 1
		var sb strings.Builder
		for j := 0; j < n; j++ {
			sb.WriteByte(alphabet[fastrand.Uint32n(uint32(len(alphabet)))])
		}
		want := sb.String()

		padded := want
		for len(padded) < 8 {
			padded += " "
		}
		in := "'" + padded + "'"

		got, _, err := processQuotedString(in)
		if err != nil {
			t.Fatalf("processQuotedString(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("processQuotedString(%q) = %q, want %q", in, got, want)
		}
	}
}
