// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import "testing"

func cardsFixture() []Card {
	return []Card{
		{Kind: KSimple, Name: "SIMPLE", Value: true},
		{Kind: KBitpix, Name: "BITPIX", Value: Uint8},
		{Kind: KNaxis, Name: "NAXIS", Value: int64(2)},
		{Kind: KNaxisN, Name: "NAXIS1", Index: 1, Value: int64(100)},
		{Kind: KNaxisN, Name: "NAXIS2", Index: 2, Value: int64(200)},
		{Kind: KBscale, Name: "BSCALE", Value: 2.0},
		{Kind: KBzero, Name: "BZERO", Value: 32768.0},
		{Kind: KBayerPat, Name: "BAYERPAT", Value: RGGB},
		{Kind: KObject, Name: "OBJECT", Value: "M 31"},
		{Kind: KComment, Name: "COMMENT", Comment: "first "},
		{Kind: KComment, Name: "COMMENT", Comment: "second"},
		{Kind: KHistory, Name: "HISTORY", Comment: "reduced "},
		{Kind: KHistory, Name: "HISTORY", Comment: "calibrated"},
		{Kind: KBlank, Name: ""},
		{Kind: KEnd, Name: "END"},
	}
}

func TestHeaderGetAndIndex(t *testing.T) {
	hdr := newHeaderFrom(cardsFixture(), ImageHDU)

	c := hdr.Get("OBJECT")
	if c == nil {
		t.Fatalf("Get(OBJECT) = nil")
	}
	if s, ok := c.String(); !ok || s != "M 31" {
		t.Errorf("OBJECT = %q, %v", s, ok)
	}

	if hdr.Get("NOSUCH") != nil {
		t.Errorf("Get(NOSUCH) should be nil")
	}

	if idx := hdr.Index("BZERO"); idx != 6 {
		t.Errorf("Index(BZERO) = %d, want 6", idx)
	}
	if idx := hdr.Index("NOSUCH"); idx != -1 {
		t.Errorf("Index(NOSUCH) = %d, want -1", idx)
	}
}

func TestHeaderGetIndexed(t *testing.T) {
	hdr := newHeaderFrom(cardsFixture(), ImageHDU)
	c := hdr.GetIndexed("NAXIS", 2)
	if c == nil {
		t.Fatalf("GetIndexed(NAXIS, 2) = nil")
	}
	if v, ok := c.Int64(); !ok || v != 200 {
		t.Errorf("NAXIS2 = %v, want 200", v)
	}
	if hdr.GetIndexed("NAXIS", 9) != nil {
		t.Errorf("GetIndexed(NAXIS, 9) should be nil")
	}
}

func TestHeaderKeysExcludesStructural(t *testing.T) {
	hdr := newHeaderFrom(cardsFixture(), ImageHDU)
	keys := hdr.Keys()
	for _, k := range keys {
		switch k {
		case "END", "COMMENT", "HISTORY", "":
			t.Errorf("Keys() included structural keyword %q", k)
		}
	}
	want := []string{"SIMPLE", "BITPIX", "NAXIS", "NAXIS1", "NAXIS2", "BSCALE", "BZERO", "BAYERPAT", "OBJECT"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], k)
		}
	}
}

func TestHeaderCommentAndHistory(t *testing.T) {
	hdr := newHeaderFrom(cardsFixture(), ImageHDU)
	if got := hdr.Comment(); got != "first second" {
		t.Errorf("Comment() = %q, want %q", got, "first second")
	}
	if got := hdr.History(); got != "reduced calibrated" {
		t.Errorf("History() = %q, want %q", got, "reduced calibrated")
	}
}

func TestHeaderBitpixNaxisAxes(t *testing.T) {
	hdr := newHeaderFrom(cardsFixture(), ImageHDU)

	bp, ok := hdr.Bitpix()
	if !ok || bp != Uint8 {
		t.Errorf("Bitpix() = %v, %v, want Uint8, true", bp, ok)
	}

	n, ok := hdr.Naxis()
	if !ok || n != 2 {
		t.Errorf("Naxis() = %v, %v, want 2, true", n, ok)
	}

	axes, err := hdr.Axes()
	if err != nil {
		t.Fatalf("Axes(): %v", err)
	}
	want := []int64{100, 200}
	if len(axes) != len(want) || axes[0] != want[0] || axes[1] != want[1] {
		t.Errorf("Axes() = %v, want %v", axes, want)
	}
}

func TestHeaderAxesMissingCard(t *testing.T) {
	hdr := newHeaderFrom([]Card{
		{Kind: KNaxis, Name: "NAXIS", Value: int64(1)},
	}, ImageHDU)
	if _, err := hdr.Axes(); err == nil {
		t.Fatalf("expected error for missing NAXIS1")
	}
}

func TestHeaderAxesMissingNaxis(t *testing.T) {
	hdr := newHeaderFrom(nil, ImageHDU)
	if _, err := hdr.Axes(); err == nil {
		t.Fatalf("expected error for missing NAXIS")
	}
}

func TestHeaderBscaleBzeroDefaults(t *testing.T) {
	hdr := newHeaderFrom(cardsFixture(), ImageHDU)
	if v := hdr.Bscale(); v != 2.0 {
		t.Errorf("Bscale() = %v, want 2.0", v)
	}
	if v := hdr.Bzero(); v != 32768.0 {
		t.Errorf("Bzero() = %v, want 32768.0", v)
	}

	empty := newHeaderFrom(nil, ImageHDU)
	if v := empty.Bscale(); v != 1.0 {
		t.Errorf("Bscale() default = %v, want 1.0", v)
	}
	if v := empty.Bzero(); v != 0.0 {
		t.Errorf("Bzero() default = %v, want 0.0", v)
	}
}

func TestHeaderBayerPattern(t *testing.T) {
	hdr := newHeaderFrom(cardsFixture(), ImageHDU)
	bp, ok := hdr.BayerPattern()
	if !ok || bp != RGGB {
		t.Errorf("BayerPattern() = %v, %v, want RGGB, true", bp, ok)
	}

	empty := newHeaderFrom(nil, ImageHDU)
	if _, ok := empty.BayerPattern(); ok {
		t.Errorf("BayerPattern() on empty header should be false")
	}
}

func TestHeaderExtensionNameAndVersion(t *testing.T) {
	hdr := newHeaderFrom(cardsFixture(), ImageHDU)
	if got := hdr.ExtensionName(); got != "PRIMARY" {
		t.Errorf("ExtensionName() = %q, want PRIMARY (SIMPLE present, no EXTNAME)", got)
	}
	if got := hdr.ExtensionVersion(); got != 1 {
		t.Errorf("ExtensionVersion() = %d, want default 1", got)
	}

	named := newHeaderFrom([]Card{
		{Kind: KExtname, Name: "EXTNAME", Value: "SCI"},
		{Kind: KExtver, Name: "EXTVER", Value: int64(3)},
	}, ImageHDU)
	if got := named.ExtensionName(); got != "SCI" {
		t.Errorf("ExtensionName() = %q, want SCI", got)
	}
	if got := named.ExtensionVersion(); got != 3 {
		t.Errorf("ExtensionVersion() = %d, want 3", got)
	}

	anon := newHeaderFrom(nil, ImageHDU)
	if got := anon.ExtensionName(); got != "" {
		t.Errorf("ExtensionName() = %q, want empty for a headerless HDU", got)
	}
}

func TestHeaderNumCardsAndCard(t *testing.T) {
	cards := cardsFixture()
	hdr := newHeaderFrom(cards, ImageHDU)
	if hdr.NumCards() != len(cards) {
		t.Errorf("NumCards() = %d, want %d", hdr.NumCards(), len(cards))
	}
	if hdr.Card(0).Name != "SIMPLE" {
		t.Errorf("Card(0).Name = %q, want SIMPLE", hdr.Card(0).Name)
	}
	if hdr.Type() != ImageHDU {
		t.Errorf("Type() = %v, want ImageHDU", hdr.Type())
	}
}
