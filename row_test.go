// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildBinaryTableHDU assembles a two-column (VAL int32, NAME 8-char
// string), two-row binary table HDU backed by an in-memory dataSource, for
// use across this package's table-related tests.
func buildBinaryTableHDU() *tableHDU {
	cards := []Card{
		{Kind: KTfields, Name: "TFIELDS", Value: int64(2)},
		{Kind: KNaxisN, Name: "NAXIS1", Index: 1, Value: int64(12)},
		{Kind: KNaxisN, Name: "NAXIS2", Index: 2, Value: int64(2)},
		{Kind: KTtypeN, Name: "TTYPE1", Index: 1, Value: "VAL"},
		{Kind: KTformN, Name: "TFORM1", Index: 1, Value: "1J"},
		{Kind: KTtypeN, Name: "TTYPE2", Index: 2, Value: "NAME"},
		{Kind: KTformN, Name: "TFORM2", Index: 2, Value: "8A"},
	}
	hdr := newHeaderFrom(cards, BinaryTable)

	var buf bytes.Buffer
	row := make([]byte, 4)
	binary.BigEndian.PutUint32(row, uint32(int32(42)))
	buf.Write(row)
	buf.WriteString("ABC     ")
	neg := int32(-7)
	binary.BigEndian.PutUint32(row, uint32(neg))
	buf.Write(row)
	buf.WriteString("XY      ")

	return &tableHDU{
		baseHDU: baseHDU{hdr: *hdr, dataOff: 0, dataLen: int64(buf.Len())},
		src:     newTestSource(buf.Bytes()),
	}
}

func TestTableHDUColumnsAndIndex(t *testing.T) {
	tbl := buildBinaryTableHDU()
	cols, err := tbl.Columns()
	if err != nil {
		t.Fatalf("Columns(): %v", err)
	}
	if len(cols) != 2 || cols[0].Name != "VAL" || cols[1].Name != "NAME" {
		t.Fatalf("Columns() = %+v", cols)
	}

	idx, err := tbl.ColumnIndex("NAME")
	if err != nil || idx != 1 {
		t.Errorf("ColumnIndex(NAME) = %d, %v, want 1, nil", idx, err)
	}
	idx, err = tbl.ColumnIndex("NOSUCH")
	if err != nil || idx != -1 {
		t.Errorf("ColumnIndex(NOSUCH) = %d, %v, want -1, nil", idx, err)
	}
}

func TestTableHDUNumRows(t *testing.T) {
	tbl := buildBinaryTableHDU()
	n, err := tbl.NumRows()
	if err != nil {
		t.Fatalf("NumRows(): %v", err)
	}
	if n != 2 {
		t.Errorf("NumRows() = %d, want 2", n)
	}
}

func TestTableHDURowsDecode(t *testing.T) {
	tbl := buildBinaryTableHDU()
	rows, err := tbl.Rows(0, 2)
	if err != nil {
		t.Fatalf("Rows(): %v", err)
	}

	var got []map[string]interface{}
	for rows.Next() {
		row := rows.Row()
		cp := make(map[string]interface{}, len(row))
		for k, v := range row {
			cp[k] = v
		}
		got = append(got, cp)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Rows iteration error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0]["VAL"].(int32) != 42 || got[0]["NAME"].(string) != "ABC" {
		t.Errorf("row 0 = %+v", got[0])
	}
	if got[1]["VAL"].(int32) != -7 || got[1]["NAME"].(string) != "XY" {
		t.Errorf("row 1 = %+v", got[1])
	}
}

func TestTableHDURowsValueAccessor(t *testing.T) {
	tbl := buildBinaryTableHDU()
	rows, err := tbl.Rows(0, 1)
	if err != nil {
		t.Fatalf("Rows(): %v", err)
	}
	if !rows.Next() {
		t.Fatalf("Next() = false, want true")
	}
	v, ok := rows.Value("VAL")
	if !ok || v.(int32) != 42 {
		t.Errorf("Value(VAL) = %v, %v, want 42, true", v, ok)
	}
	if _, ok := rows.Value("NOSUCH"); ok {
		t.Errorf("Value(NOSUCH) should be false")
	}
	if rows.Next() {
		t.Errorf("Next() should be false past the requested range")
	}
}

func TestTableHDURowsInvalidRange(t *testing.T) {
	tbl := buildBinaryTableHDU()
	if _, err := tbl.Rows(1, 0); err == nil {
		t.Fatalf("expected error for begin > end")
	}
	if _, err := tbl.Rows(0, 5); err == nil {
		t.Fatalf("expected error for end beyond NumRows")
	}
}

func TestApplyScale(t *testing.T) {
	if v := applyScale(int64(10), 1.0, 0.0); v != int64(10) {
		t.Errorf("applyScale identity = %v, want int64(10)", v)
	}
	if v := applyScale(int32(10), 2.0, 5.0); v != 25.0 {
		t.Errorf("applyScale(10, 2, 5) = %v, want 25.0", v)
	}
	if v := applyScale("unchanged", 2.0, 5.0); v != "unchanged" {
		t.Errorf("applyScale on string should be a no-op, got %v", v)
	}
}
