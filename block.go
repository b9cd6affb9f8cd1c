// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import "io"

// blockSize is the FITS record-unit size: every header and every data
// segment is a whole multiple of 2880 bytes.
const blockSize = 2880

// cardSize is the length of one 80-byte header card.
const cardSize = 80

// cardsPerBlock is the number of 80-byte cards packed into one block.
const cardsPerBlock = blockSize / cardSize

// alignBlock returns sz rounded up to the next multiple of blockSize.
func alignBlock(sz int64) int64 {
	return sz + padBlock(sz)
}

// padBlock returns the number of padding bytes needed to round sz up to
// the next multiple of blockSize.
func padBlock(sz int64) int64 {
	return (blockSize - (sz % blockSize)) % blockSize
}

// dataSource is the random-access byte source the Segmenter reads HDUs
// from. An *os.File, a bytes.Reader, or anything else that can hand back
// arbitrary byte ranges satisfies it; the façade is responsible for
// buffering non-seekable streams (e.g. a gzip.Reader) into one before
// handing it to Open.
type dataSource interface {
	io.ReaderAt
	// Size returns the total number of bytes available.
	Size() int64
}

// blockReader reads whole 2880-byte blocks out of a dataSource starting
// at a given byte offset, the way the original decoder consumed its
// underlying io.Reader one block at a time -- except here each read is
// addressed, so a Header can be parsed without forcing its data segment
// to be read too.
type blockReader struct {
	src dataSource
	off int64
}

func newBlockReader(src dataSource, off int64) *blockReader {
	return &blockReader{src: src, off: off}
}

// Offset returns the current read position.
func (r *blockReader) Offset() int64 { return r.off }

// readBlock reads exactly one 2880-byte block and advances the cursor.
func (r *blockReader) readBlock() ([]byte, error) {
	buf := make([]byte, blockSize)
	n, err := r.src.ReadAt(buf, r.off)
	if err != nil && !(err == io.EOF && n == blockSize) {
		return nil, wrapf(KindShortRead, "readBlock", err, "short block at offset %d (got %d bytes)", r.off, n)
	}
	r.off += blockSize
	return buf, nil
}

// readRaw reads n raw bytes (not necessarily block-aligned) and advances
// the cursor by n, leaving block alignment to the caller.
func (r *blockReader) readRaw(n int64) ([]byte, error) {
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	got, err := r.src.ReadAt(buf, r.off)
	if err != nil && !(err == io.EOF && int64(got) == n) {
		return nil, wrapf(KindShortRead, "readRaw", err, "short read at offset %d: wanted %d got %d", r.off, n, got)
	}
	r.off += n
	return buf, nil
}

// skip advances the cursor by n bytes without reading them.
func (r *blockReader) skip(n int64) { r.off += n }

// atEOF reports whether the cursor has reached the end of the source.
func (r *blockReader) atEOF() bool { return r.off >= r.src.Size() }
