// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"bytes"
	"io"
	"testing"
)

func TestAlignBlock(t *testing.T) {
	for _, tc := range []struct {
		sz   int64
		want int64
	}{
		{0, 0},
		{1, blockSize},
		{blockSize, blockSize},
		{blockSize + 1, 2 * blockSize},
		{2*blockSize - 1, 2 * blockSize},
	} {
		if got := alignBlock(tc.sz); got != tc.want {
			t.Errorf("alignBlock(%d) = %d, want %d", tc.sz, got, tc.want)
		}
	}
}

func TestPadBlock(t *testing.T) {
	for _, tc := range []struct {
		sz   int64
		want int64
	}{
		{0, 0},
		{blockSize, 0},
		{blockSize - 1, 1},
		{blockSize + 10, blockSize - 10},
	} {
		if got := padBlock(tc.sz); got != tc.want {
			t.Errorf("padBlock(%d) = %d, want %d", tc.sz, got, tc.want)
		}
	}
}

// testSource is a dataSource wrapping an in-memory buffer, used
// throughout the package's tests.
type testSource struct {
	data []byte
}

func newTestSource(data []byte) *testSource { return &testSource{data: data} }

func (s *testSource) Size() int64 { return int64(len(s.data)) }

func (s *testSource) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func TestBlockReaderReadBlock(t *testing.T) {
	block := bytes.Repeat([]byte("X"), blockSize)
	src := newTestSource(append(append([]byte{}, block...), block...))
	br := newBlockReader(src, 0)

	got, err := br.readBlock()
	if err != nil {
		t.Fatalf("readBlock: %v", err)
	}
	if !bytes.Equal(got, block) {
		t.Fatalf("readBlock returned unexpected content")
	}
	if br.Offset() != blockSize {
		t.Fatalf("Offset() = %d, want %d", br.Offset(), blockSize)
	}
	if br.atEOF() {
		t.Fatalf("atEOF() true too early")
	}

	if _, err := br.readBlock(); err != nil {
		t.Fatalf("second readBlock: %v", err)
	}
	if !br.atEOF() {
		t.Fatalf("atEOF() false at end of source")
	}
}

func TestBlockReaderSkip(t *testing.T) {
	src := newTestSource(bytes.Repeat([]byte("Y"), 2*blockSize))
	br := newBlockReader(src, 0)
	br.skip(blockSize)
	if br.Offset() != blockSize {
		t.Fatalf("Offset() after skip = %d, want %d", br.Offset(), blockSize)
	}
}

func TestBlockReaderShortRead(t *testing.T) {
	src := newTestSource(bytes.Repeat([]byte("Z"), 10))
	br := newBlockReader(src, 0)
	if _, err := br.readBlock(); err == nil {
		t.Fatalf("expected short-read error, got nil")
	}
}
