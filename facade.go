// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"compress/gzip"
	"io"
	"os"
	"path"
	"strings"
)

// File is an opened FITS file: its ordered list of Header-Data Units,
// already segmented but not necessarily read -- each HDU's data segment
// is decoded lazily on first access (Pixels/Image/Rows). Read-only: no
// Create/Write/append path.
type File struct {
	name string
	src  dataSource
	hdus []HDU

	seg *segmenter // nil once every HDU has been segmented

	closer io.Closer // non-nil when Open owns the underlying *os.File
}

// OpenOption configures Open.
type OpenOption func(*openConfig)

type openConfig struct {
	lazy bool
}

// WithLazyHDUs defers segmenting past the first HDU until the caller
// asks for a later one via HDU/Get/Has, instead of walking the whole
// file up front. Off by default, so Open fails fast on malformed
// input; turn it on for very large multi-extension files where only a
// few HDUs are ever touched.
func WithLazyHDUs() OpenOption {
	return func(c *openConfig) { c.lazy = true }
}

// Open opens the named FITS file for reading, transparently
// decompressing it first if its extension is .gz or .gzip. Grounded on
// the suffix sniff mlnoga/nightlight's ReadFile uses, generalized here
// to feed a random-access dataSource instead of a one-shot io.Reader,
// since gzip.Reader itself cannot seek.
func Open(name string, opts ...OpenOption) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, wrapf(KindShortRead, "Open", err, "opening %q", name)
	}

	ext := strings.ToLower(path.Ext(name))
	if ext == ".gz" || ext == ".gzip" {
		defer f.Close()
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, wrapf(KindInvalidFITS, "Open", err, "gzip header of %q", name)
		}
		defer zr.Close()
		data, err := io.ReadAll(zr)
		if err != nil {
			return nil, wrapf(KindShortRead, "Open", err, "decompressing %q", name)
		}
		logf("fits: decompressed %q (%d bytes)", name, len(data))
		return openSource(name, newMemSource(data), opts, nil)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, wrapf(KindShortRead, "Open", err, "stat %q", name)
	}
	return openSource(name, &fileSource{f: f, size: fi.Size()}, opts, f)
}

// OpenBytes opens an in-memory FITS image, e.g. one already fetched
// over the network or extracted from an archive member.
func OpenBytes(name string, data []byte) (*File, error) {
	return openSource(name, newMemSource(data), nil, nil)
}

// OpenReaderAt opens a FITS image backed by any caller-supplied
// random-access source (a memory-mapped file, an S3 range-GET shim,
// ...).
func OpenReaderAt(name string, src dataSource, opts ...OpenOption) (*File, error) {
	return openSource(name, src, opts, nil)
}

func openSource(name string, src dataSource, opts []OpenOption, closer io.Closer) (*File, error) {
	cfg := &openConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	f := &File{name: name, src: src, closer: closer, seg: newSegmenter(src)}

	// Always segment the first HDU eagerly, so Open fails fast on a
	// malformed file even in lazy mode.
	if err := f.segmentNext(); err != nil && err != io.EOF {
		if f.closer != nil {
			f.closer.Close()
		}
		return nil, err
	}
	if !cfg.lazy {
		if err := f.segmentAll(); err != nil {
			if f.closer != nil {
				f.closer.Close()
			}
			return nil, err
		}
	}
	return f, nil
}

// segmentNext parses and appends the next HDU, or returns io.EOF once
// the source is exhausted. Safe to call repeatedly; a no-op once
// segmenting has finished.
func (f *File) segmentNext() error {
	if f.seg == nil {
		return io.EOF
	}
	hdu, err := f.seg.next()
	if err != nil {
		if err == io.EOF {
			f.seg = nil
		}
		return err
	}
	f.hdus = append(f.hdus, hdu)
	logf("fits: %q: read HDU %d (%s, %q)", f.name, len(f.hdus)-1, hdu.Type(), hdu.Name())
	return nil
}

// segmentAll walks the remaining HDUs until the source is exhausted.
func (f *File) segmentAll() error {
	for {
		if err := f.segmentNext(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// Close releases the file descriptor Open opened, if any. It is a no-op
// for Files built from OpenBytes/OpenReaderAt, which never owned one.
func (f *File) Close() error {
	if f.closer != nil {
		return f.closer.Close()
	}
	return nil
}

// Name returns the path or label this File was opened with.
func (f *File) Name() string { return f.name }

// HDUs returns every Header-Data Unit in file order, forcing the rest of
// a lazily opened file to be segmented first.
func (f *File) HDUs() []HDU {
	f.segmentAll()
	return f.hdus
}

// HDU returns the i-th HDU, segmenting further into the file (under
// WithLazyHDUs) until it is reached or the source is exhausted.
func (f *File) HDU(i int) HDU {
	for i >= len(f.hdus) {
		if err := f.segmentNext(); err != nil {
			return nil
		}
	}
	return f.hdus[i]
}

// NumHDUs returns the number of HDUs in the file, forcing the rest of a
// lazily opened file to be segmented first.
func (f *File) NumHDUs() int {
	f.segmentAll()
	return len(f.hdus)
}

// Get returns the HDU named name (matched against EXTNAME, "PRIMARY"
// for the first HDU), or nil. Under WithLazyHDUs this segments forward
// through the file until a match is found or the source is exhausted.
func (f *File) Get(name string) HDU {
	_, hdu := f.gethdu(name)
	return hdu
}

// Has reports whether the File has an HDU named name.
func (f *File) Has(name string) bool {
	i, _ := f.gethdu(name)
	return i >= 0
}

func (f *File) gethdu(name string) (int, HDU) {
	for i := 0; ; i++ {
		hdu := f.HDU(i)
		if hdu == nil {
			return -1, nil
		}
		if hdu.Name() == name {
			return i, hdu
		}
	}
}

// memSource is a dataSource backed by an in-memory byte slice, used for
// gzip-decompressed input (gzip.Reader itself has no ReadAt).
type memSource struct {
	data []byte
}

func newMemSource(data []byte) *memSource { return &memSource{data: data} }

func (m *memSource) Size() int64 { return int64(len(m.data)) }

func (m *memSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(m.data)) {
		if off == int64(len(m.data)) {
			return 0, io.EOF
		}
		return 0, errf(KindShortRead, "memSource.ReadAt", "offset %d out of range", off)
	}
	n := copy(p, m.data[off:])
	var err error
	if n < len(p) {
		err = io.EOF
	}
	return n, err
}

// fileSource adapts an *os.File (already an io.ReaderAt) into a
// dataSource by caching the size Stat reported at Open time.
type fileSource struct {
	f    *os.File
	size int64
}

func (s *fileSource) Size() int64 { return s.size }

func (s *fileSource) ReadAt(p []byte, off int64) (int, error) {
	return s.f.ReadAt(p, off)
}
