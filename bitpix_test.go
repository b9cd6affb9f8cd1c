// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import "testing"

func TestParseBitpix(t *testing.T) {
	for _, tc := range []struct {
		v       int64
		want    Bitpix
		wantErr bool
	}{
		{8, Uint8, false},
		{16, Int16, false},
		{32, Int32, false},
		{-32, Float32, false},
		{-64, Float64, false},
		{64, 0, true},
		{0, 0, true},
	} {
		got, err := ParseBitpix(tc.v)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseBitpix(%d): expected error, got nil", tc.v)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseBitpix(%d): unexpected error %v", tc.v, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseBitpix(%d) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestBitpixByteSize(t *testing.T) {
	for _, tc := range []struct {
		bp   Bitpix
		want int
	}{
		{Uint8, 1},
		{Int16, 2},
		{Int32, 4},
		{Float32, 4},
		{Float64, 8},
	} {
		if got := tc.bp.ByteSize(); got != tc.want {
			t.Errorf("%v.ByteSize() = %d, want %d", tc.bp, got, tc.want)
		}
	}
}

func TestBitpixFloat(t *testing.T) {
	for _, tc := range []struct {
		bp   Bitpix
		want bool
	}{
		{Uint8, false},
		{Int16, false},
		{Int32, false},
		{Float32, true},
		{Float64, true},
	} {
		if got := tc.bp.Float(); got != tc.want {
			t.Errorf("%v.Float() = %v, want %v", tc.bp, got, tc.want)
		}
	}
}

func TestBitpixTypeMax(t *testing.T) {
	if Uint8.TypeMax() != 255 {
		t.Errorf("Uint8.TypeMax() = %v, want 255", Uint8.TypeMax())
	}
	if Int16.TypeMax() != 32767 {
		t.Errorf("Int16.TypeMax() = %v, want 32767", Int16.TypeMax())
	}
	if Float32.TypeMax() != 1 {
		t.Errorf("Float32.TypeMax() = %v, want 1", Float32.TypeMax())
	}
}
