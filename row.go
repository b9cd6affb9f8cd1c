// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"io"
)

// Column describes one field of a table HDU: its name, its on-disk
// format, and (for a binary table) the decoded TableColumnFormat that
// drives the byte-level decode.
type Column struct {
	Name   string
	Unit   string
	Form   string // raw TFORMn string, kept for diagnostics
	Bscale float64
	Bzero  float64

	binFormat   TableColumnFormat
	asciiFormat asciiFormat
	start       int64 // ASCII tables only: TBCOLn, 1-based
	offset      int   // binary tables only: byte offset within a row
	width       int   // on-disk byte width of this column within a row
}

// tableHDU is an AsciiTable or BinaryTable HDU: a fixed-size grid of
// rows, read lazily and decoded one row at a time by Rows.
type tableHDU struct {
	baseHDU
	src dataSource

	cols   []Column
	colidx map[string]int
	rowsz  int64
	nrows  int64

	data []byte // this HDU's row data, read lazily by ensureData
}

func (t *tableHDU) ensureData() error {
	if t.data != nil {
		return nil
	}
	buf := make([]byte, t.dataLen)
	if t.dataLen == 0 {
		t.data = buf
		return nil
	}
	n, err := t.src.ReadAt(buf, t.dataOff)
	if err != nil && !(err == io.EOF && int64(n) == t.dataLen) {
		return wrapf(KindShortRead, "tableHDU.ensureData", err, "short table data read")
	}
	t.data = buf
	return nil
}

// ensureColumns parses TTYPE/TFORM/TUNIT/TSCAL/TZERO/TBCOL cards into the
// Column slice, on first use.
func (t *tableHDU) ensureColumns() error {
	if t.cols != nil {
		return nil
	}
	hdr := &t.hdr
	tfields := hdr.Get("TFIELDS")
	if tfields == nil {
		return errf(KindInvalidHeader, "tableHDU.ensureColumns", "missing TFIELDS card")
	}
	n64, _ := tfields.Int64()
	ncols := int(n64)

	rowszCard := hdr.GetIndexed("NAXIS", 1)
	nrowsCard := hdr.GetIndexed("NAXIS", 2)
	if rowszCard == nil || nrowsCard == nil {
		return errf(KindInvalidHeader, "tableHDU.ensureColumns", "missing NAXIS1/NAXIS2")
	}
	rowsz, _ := rowszCard.Int64()
	nrows, _ := nrowsCard.Int64()

	cols := make([]Column, ncols)
	colidx := make(map[string]int, ncols)
	offset := 0
	for i := 0; i < ncols; i++ {
		col := &cols[i]
		nameCard := hdr.GetIndexed("TTYPE", i+1)
		if nameCard != nil {
			col.Name, _ = nameCard.String()
		}
		formCard := hdr.GetIndexed("TFORM", i+1)
		if formCard == nil {
			return errf(KindInvalidHeader, "tableHDU.ensureColumns", "missing TFORM%d", i+1)
		}
		col.Form, _ = formCard.String()
		if unitCard := hdr.GetIndexed("TUNIT", i+1); unitCard != nil {
			col.Unit, _ = unitCard.String()
		}
		col.Bscale = 1.0
		if sc := hdr.GetIndexed("TSCAL", i+1); sc != nil {
			if v, ok := sc.Float64(); ok {
				col.Bscale = v
			}
		}
		if zc := hdr.GetIndexed("TZERO", i+1); zc != nil {
			if v, ok := zc.Float64(); ok {
				col.Bzero = v
			}
		}

		switch t.hdr.Type() {
		case BinaryTable:
			bf, err := ParseTFORM(col.Form)
			if err != nil {
				return err
			}
			col.binFormat = bf
			col.offset = offset
			col.width = bf.BytesLen()
			offset += col.width

		case AsciiTable:
			af, err := ParseASCIITFORM(col.Form)
			if err != nil {
				return err
			}
			col.asciiFormat = af
			col.width = af.width
			if bc := hdr.GetIndexed("TBCOL", i+1); bc != nil {
				col.start, _ = bc.Int64()
			}

		default:
			return errf(KindInvalidHeader, "tableHDU.ensureColumns", "not a table HDU")
		}

		colidx[col.Name] = i
	}

	t.cols = cols
	t.colidx = colidx
	t.rowsz = rowsz
	t.nrows = nrows
	return nil
}

// Columns returns the parsed column descriptors.
func (t *tableHDU) Columns() ([]Column, error) {
	if err := t.ensureColumns(); err != nil {
		return nil, err
	}
	return t.cols, nil
}

// ColumnIndex returns the 0-based position of the column named name, or
// -1 if no TTYPE card declared it.
func (t *tableHDU) ColumnIndex(name string) (int, error) {
	if err := t.ensureColumns(); err != nil {
		return -1, err
	}
	if i, ok := t.colidx[name]; ok {
		return i, nil
	}
	return -1, nil
}

// NumRows returns the row count (NAXIS2).
func (t *tableHDU) NumRows() (int64, error) {
	if err := t.ensureColumns(); err != nil {
		return 0, err
	}
	return t.nrows, nil
}

// Rows returns an iterator over [begin,end) rows (end exclusive); pass
// (0, NumRows()) to iterate the whole table.
func (t *tableHDU) Rows(begin, end int64) (*Rows, error) {
	if err := t.ensureColumns(); err != nil {
		return nil, err
	}
	if err := t.ensureData(); err != nil {
		return nil, err
	}
	if begin < 0 || end > t.nrows || begin > end {
		return nil, errf(KindInvalidHeader, "tableHDU.Rows", "invalid row range [%d,%d) of %d", begin, end, t.nrows)
	}
	return &Rows{table: t, cur: begin - 1, end: end}, nil
}

// Rows iterates over a table's rows, decoding one row's columns at a
// time into a map[string]interface{} -- the row-level decode the Segmenter
// and Column-Format Codec feed into, independent of any particular
// user-record type (struct binding lives in bridge.go, one layer up).
type Rows struct {
	table *tableHDU
	cur   int64
	end   int64
	row   map[string]interface{}
	err   error
}

// Next advances to the next row, decoding it; it reports whether a row
// was available.
func (r *Rows) Next() bool {
	if r.err != nil {
		return false
	}
	r.cur++
	if r.cur >= r.end {
		return false
	}
	row, err := r.table.decodeRow(r.cur)
	if err != nil {
		r.err = err
		return false
	}
	r.row = row
	return true
}

// Err returns the first error encountered by Next, if any.
func (r *Rows) Err() error { return r.err }

// Row returns the current row as a column-name-keyed map.
func (r *Rows) Row() map[string]interface{} { return r.row }

// Value returns the decoded value of column name in the current row.
func (r *Rows) Value(name string) (interface{}, bool) {
	v, ok := r.row[name]
	return v, ok
}

func (t *tableHDU) decodeRow(irow int64) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(t.cols))
	switch t.hdr.Type() {
	case BinaryTable:
		base := irow * t.rowsz
		for i := range t.cols {
			col := &t.cols[i]
			beg := base + int64(col.offset)
			raw := t.data[beg : beg+int64(col.width)]
			v, err := col.binFormat.Decode(raw)
			if err != nil {
				return nil, wrapf(KindInvalidHeader, "tableHDU.decodeRow", err, "column %q row %d", col.Name, irow)
			}
			out[col.Name] = applyScale(v, col.Bscale, col.Bzero)
		}
	case AsciiTable:
		base := irow * t.rowsz
		for i := range t.cols {
			col := &t.cols[i]
			beg := base + (col.start - 1)
			raw := t.data[beg : beg+int64(col.width)]
			v, err := col.asciiFormat.Decode(raw)
			if err != nil {
				return nil, wrapf(KindInvalidHeader, "tableHDU.decodeRow", err, "column %q row %d", col.Name, irow)
			}
			out[col.Name] = applyScale(v, col.Bscale, col.Bzero)
		}
	}
	return out, nil
}

// applyScale applies TSCAL/TZERO to a numeric column value, leaving
// non-numeric values (strings, bools, byte slices) untouched.
func applyScale(v interface{}, bscale, bzero float64) interface{} {
	if bscale == 1.0 && bzero == 0.0 {
		return v
	}
	switch x := v.(type) {
	case int64:
		return float64(x)*bscale + bzero
	case int32:
		return float64(x)*bscale + bzero
	case int16:
		return float64(x)*bscale + bzero
	case float32:
		return float64(x)*bscale + bzero
	case float64:
		return x*bscale + bzero
	default:
		return v
	}
}
