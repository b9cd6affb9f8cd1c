// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"os"
	"testing"
)

func TestOpenAsyncDeliversAllHDUs(t *testing.T) {
	blob := buildTwoHDUBlob()
	dir := t.TempDir()
	path := dir + "/async.fits"
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		t.Fatalf("WriteFile(): %v", err)
	}

	af, err := OpenAsync(path)
	if err != nil {
		t.Fatalf("OpenAsync(): %v", err)
	}

	var got []HDU
	for {
		hdu, err, ok := af.Next()
		if !ok {
			break
		}
		if err != nil {
			t.Fatalf("Next(): %v", err)
		}
		got = append(got, hdu)
	}

	if len(got) != 2 {
		t.Fatalf("delivered %d HDUs, want 2", len(got))
	}
	if got[0].Type() != ImageHDU || got[1].Type() != ImageHDU {
		t.Errorf("HDU types = %v, %v, want ImageHDU, ImageHDU", got[0].Type(), got[1].Type())
	}
	if name := got[1].Header().ExtensionName(); name != "SCI" {
		t.Errorf("second HDU EXTNAME = %q, want SCI", name)
	}
}

func TestOpenAsyncMissingFile(t *testing.T) {
	if _, err := OpenAsync("/no/such/file.fits"); err == nil {
		t.Fatalf("expected an error opening a missing file")
	}
}
