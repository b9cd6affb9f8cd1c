// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import "io"

// AsyncFile walks a File's HDUs in the background, handing each one to
// the caller over a channel as soon as it is segmented, instead of
// forcing a caller that only wants the first few HDUs to wait for
// segmentAll. Grounded on the buffered-channel producer idiom
// mlnoga/nightlight/internal/rest uses for its long-running job queue,
// adapted here from an HTTP job queue to a plain HDU pump.
type AsyncFile struct {
	hdus <-chan asyncResult
}

type asyncResult struct {
	hdu HDU
	err error
}

// OpenAsync opens name exactly as Open would, but returns as soon as the
// primary HDU is available; the rest of the file is segmented on a
// background goroutine and delivered through Next.
func OpenAsync(name string, opts ...OpenOption) (*AsyncFile, error) {
	f, err := Open(name, append(opts, WithLazyHDUs())...)
	if err != nil {
		return nil, err
	}

	ch := make(chan asyncResult, 4)
	go func() {
		defer close(ch)
		defer f.Close()
		for _, hdu := range f.hdus {
			ch <- asyncResult{hdu: hdu}
		}
		for {
			err := f.segmentNext()
			switch {
			case err == nil:
				ch <- asyncResult{hdu: f.hdus[len(f.hdus)-1]}
			case err == io.EOF:
				return
			default:
				ch <- asyncResult{err: err}
				return
			}
		}
	}()
	return &AsyncFile{hdus: ch}, nil
}

// Next blocks until the next HDU is available, returning ok=false once
// the file is exhausted.
func (a *AsyncFile) Next() (hdu HDU, err error, ok bool) {
	r, open := <-a.hdus
	if !open {
		return nil, nil, false
	}
	return r.hdu, r.err, true
}
