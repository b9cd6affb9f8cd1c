// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"sync"

	"github.com/klauspost/cpuid/v2"
	"github.com/pbnjay/memory"
)

// RowFunc is applied to one decoded row by ParallelRows.
type RowFunc func(irow int64, row map[string]interface{}) error

// ParallelRows decodes and processes rows [begin,end) of t concurrently,
// splitting the range into one chunk per worker. Worker count is sized
// from the physical core count rather than runtime.GOMAXPROCS, since
// decoding a table row is CPU-bound byte-shuffling with no benefit from
// hyperthread siblings; it is also capped so that no more workers run
// than the table's row buffer can fit in free memory at once. Grounded
// on mlnoga/nightlight/internal/ops/pre/badpixels.go's chunked
// sync.WaitGroup fan-out.
func ParallelRows(t *tableHDU, begin, end int64, fn RowFunc) error {
	if err := t.ensureColumns(); err != nil {
		return err
	}
	if err := t.ensureData(); err != nil {
		return err
	}
	if begin < 0 || end > t.nrows || begin > end {
		return errf(KindInvalidHeader, "ParallelRows", "invalid row range [%d,%d) of %d", begin, end, t.nrows)
	}
	total := end - begin
	if total == 0 {
		return nil
	}

	workers := workerCount(t.rowsz, total)

	chunk := (total + int64(workers) - 1) / int64(workers)
	if chunk == 0 {
		chunk = 1
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for cbeg := begin; cbeg < end; cbeg += chunk {
		cend := cbeg + chunk
		if cend > end {
			cend = end
		}
		wg.Add(1)
		go func(cbeg, cend int64) {
			defer wg.Done()
			for irow := cbeg; irow < cend; irow++ {
				row, err := t.decodeRow(irow)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
				if err := fn(irow, row); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
			}
		}(cbeg, cend)
	}
	wg.Wait()
	return firstErr
}

// workerCount picks a worker count bounded above by the physical core
// count and by how many row buffers of size rowsz fit in a conservative
// slice of free memory, so a wide table with many physical cores does
// not spawn more goroutines than available memory can back with
// in-flight row buffers.
func workerCount(rowsz, nrows int64) int {
	cores := cpuid.CPU.PhysicalCores
	if cores < 1 {
		cores = 1
	}
	if nrows > 0 && int64(cores) > nrows {
		cores = int(nrows)
	}

	if rowsz <= 0 {
		return cores
	}
	free := memory.FreeMemory()
	budget := free / 4 // leave headroom for the caller's own buffers
	byMemory := int(budget / uint64(rowsz))
	if byMemory < 1 {
		byMemory = 1
	}
	if byMemory < cores {
		return byMemory
	}
	return cores
}
