// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"bytes"
	"compress/gzip"
	"os"
	"testing"
)

func buildTwoHDUBlob() []byte {
	primary := buildHeaderBlock(
		"SIMPLE  =                    T / conforms to FITS standard",
		"BITPIX  =                    8 / unsigned byte data",
		"NAXIS   =                    0 / no data in primary HDU",
		"END",
	)
	ext := buildHeaderBlock(
		"XTENSION= 'IMAGE   '           / image extension",
		"BITPIX  =                    8 / unsigned byte data",
		"NAXIS   =                    0 / no data in this extension",
		"EXTNAME = 'SCI     '           / extension name",
		"END",
	)
	var buf bytes.Buffer
	buf.Write(primary)
	buf.Write(ext)
	return buf.Bytes()
}

func TestOpenBytesSingleHDU(t *testing.T) {
	blob := buildImageHDU([]byte{1, 2, 3, 4})
	f, err := OpenBytes("mem.fits", blob)
	if err != nil {
		t.Fatalf("OpenBytes(): %v", err)
	}
	defer f.Close()

	if f.Name() != "mem.fits" {
		t.Errorf("Name() = %q, want mem.fits", f.Name())
	}
	if f.NumHDUs() != 1 {
		t.Fatalf("NumHDUs() = %d, want 1", f.NumHDUs())
	}
	hdus := f.HDUs()
	if len(hdus) != 1 || hdus[0].Type() != ImageHDU {
		t.Fatalf("HDUs() = %+v", hdus)
	}
	if f.Get("PRIMARY") == nil {
		t.Errorf("Get(PRIMARY) = nil")
	}
	if !f.Has("PRIMARY") {
		t.Errorf("Has(PRIMARY) = false")
	}
	if f.Has("NOPE") {
		t.Errorf("Has(NOPE) = true")
	}
	if f.HDU(5) != nil {
		t.Errorf("HDU(5) should be nil past the end")
	}
}

func TestOpenReaderAtLazyHDUs(t *testing.T) {
	blob := buildTwoHDUBlob()
	f, err := OpenReaderAt("lazy.fits", newTestSource(blob), WithLazyHDUs())
	if err != nil {
		t.Fatalf("OpenReaderAt(): %v", err)
	}
	defer f.Close()

	first := f.HDU(0)
	if first == nil || first.Type() != ImageHDU {
		t.Fatalf("HDU(0) = %+v", first)
	}
	if len(f.hdus) != 1 {
		t.Errorf("lazy Open should not have segmented the extension yet, hdus = %d", len(f.hdus))
	}

	sci := f.Get("SCI")
	if sci == nil {
		t.Fatalf("Get(SCI) = nil")
	}
	if f.NumHDUs() != 2 {
		t.Errorf("NumHDUs() = %d, want 2", f.NumHDUs())
	}
}

func TestOpenEagerSegmentsEverything(t *testing.T) {
	blob := buildTwoHDUBlob()
	f, err := OpenReaderAt("eager.fits", newTestSource(blob))
	if err != nil {
		t.Fatalf("OpenReaderAt(): %v", err)
	}
	defer f.Close()
	if len(f.hdus) != 2 {
		t.Errorf("eager Open should segment every HDU up front, got %d", len(f.hdus))
	}
}

func TestOpenBytesMalformedFails(t *testing.T) {
	if _, err := OpenBytes("bad.fits", []byte("not a fits file")); err == nil {
		t.Fatalf("expected an error opening a malformed file")
	}
}

func TestOpenGzipTransparent(t *testing.T) {
	blob := buildImageHDU([]byte{5, 6, 7, 8})

	dir := t.TempDir()
	path := dir + "/test.fits.gz"
	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test file: %v", err)
	}
	zw := gzip.NewWriter(fh)
	if _, err := zw.Write(blob); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open(%q): %v", path, err)
	}
	defer f.Close()
	if f.NumHDUs() != 1 {
		t.Fatalf("NumHDUs() = %d, want 1", f.NumHDUs())
	}
	img := f.HDU(0).(*imageHDU)
	raw, err := img.Raw()
	if err != nil {
		t.Fatalf("Raw(): %v", err)
	}
	if !bytes.Equal(raw, []byte{5, 6, 7, 8}) {
		t.Errorf("Raw() = %v, want [5 6 7 8]", raw)
	}
}
