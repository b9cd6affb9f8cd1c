// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// columnCode is the FITS TFORMn type letter.
type columnCode byte

const (
	codeString      columnCode = 'A'
	codeStringArray columnCode = 'a' // internal: A with a trailing width, e.g. "10A5"
	codeBoolean     columnCode = 'L'
	codeBit         columnCode = 'X'
	codeByte        columnCode = 'B'
	codeInt8        columnCode = 'S' // non-standard: signed byte
	codeInt16       columnCode = 'I'
	codeInt32       columnCode = 'J'
	codeInt64       columnCode = 'K'
	codeUint16      columnCode = 'U' // non-standard: unsigned 16-bit
	codeUint32      columnCode = 'V' // non-standard: unsigned 32-bit
	codeFloat32     columnCode = 'E'
	codeFloat64     columnCode = 'D'
	codeComplex64   columnCode = 'C'
	codeComplex128  columnCode = 'M'
)

// TableColumnFormat is the decoded form of a binary-table TFORMn card: a
// repeat count paired with an element type. It is a closed set -- every
// recognized FITS table type code has exactly one constructor below --
// the same shape as the Rust TableColumnFormat enum this design is
// grounded on (original_source/src/header/table_column_format.rs).
type TableColumnFormat struct {
	code   columnCode
	repeat int // element or character count
	width  int // StringArray only: width of each fixed-width item
}

func String(repeat int) TableColumnFormat      { return TableColumnFormat{code: codeString, repeat: repeat} }
func Boolean(repeat int) TableColumnFormat     { return TableColumnFormat{code: codeBoolean, repeat: repeat} }
func Bit(repeat int) TableColumnFormat         { return TableColumnFormat{code: codeBit, repeat: repeat} }
func ByteCol(repeat int) TableColumnFormat     { return TableColumnFormat{code: codeByte, repeat: repeat} }
func Int8Col(repeat int) TableColumnFormat     { return TableColumnFormat{code: codeInt8, repeat: repeat} }
func Int16Col(repeat int) TableColumnFormat    { return TableColumnFormat{code: codeInt16, repeat: repeat} }
func Int32Col(repeat int) TableColumnFormat    { return TableColumnFormat{code: codeInt32, repeat: repeat} }
func Int64Col(repeat int) TableColumnFormat    { return TableColumnFormat{code: codeInt64, repeat: repeat} }
func Uint16Col(repeat int) TableColumnFormat   { return TableColumnFormat{code: codeUint16, repeat: repeat} }
func Uint32Col(repeat int) TableColumnFormat   { return TableColumnFormat{code: codeUint32, repeat: repeat} }
func Float32Col(repeat int) TableColumnFormat  { return TableColumnFormat{code: codeFloat32, repeat: repeat} }
func Float64Col(repeat int) TableColumnFormat  { return TableColumnFormat{code: codeFloat64, repeat: repeat} }
func Complex64Col(repeat int) TableColumnFormat {
	return TableColumnFormat{code: codeComplex64, repeat: repeat}
}
func Complex128Col(repeat int) TableColumnFormat {
	return TableColumnFormat{code: codeComplex128, repeat: repeat}
}
func StringArray(count, width int) TableColumnFormat {
	return TableColumnFormat{code: codeStringArray, repeat: count, width: width}
}

// ItemSize returns the on-disk size, in bytes, of a single repeat unit.
func (f TableColumnFormat) ItemSize() int {
	switch f.code {
	case codeString:
		return 1
	case codeStringArray:
		return f.width
	case codeBoolean, codeByte, codeInt8, codeBit:
		return 1
	case codeInt16, codeUint16:
		return 2
	case codeInt32, codeUint32, codeFloat32:
		return 4
	case codeInt64, codeFloat64, codeComplex64:
		return 8
	case codeComplex128:
		return 16
	default:
		return 0
	}
}

// BytesLen returns the total on-disk size of the column in one row, the
// Go equivalent of TableColumnFormat::bytes_len in the Rust original.
func (f TableColumnFormat) BytesLen() int {
	switch f.code {
	case codeBit:
		return (f.repeat + 7) / 8
	default:
		return f.repeat * f.ItemSize()
	}
}

// FormString renders the TFORMn value this format would have come from.
func (f TableColumnFormat) FormString() string {
	switch f.code {
	case codeStringArray:
		return fmt.Sprintf("%d%c%d", f.repeat, 'A', f.width)
	default:
		return fmt.Sprintf("%d%c", f.repeat, rune(f.code))
	}
}

// ParseTFORM parses a binary-table TFORMn value into a TableColumnFormat,
// following the "leading digits = repeat count, next char = type code,
// trailing digits on 'A' = item width" grammar.
func ParseTFORM(form string) (TableColumnFormat, error) {
	form = strings.TrimSpace(form)
	if form == "" {
		return TableColumnFormat{}, errf(KindInvalidHeader, "ParseTFORM", "empty TFORM value")
	}
	i := 0
	for i < len(form) && form[i] >= '0' && form[i] <= '9' {
		i++
	}
	repeat := 1
	if i > 0 {
		r, err := strconv.Atoi(form[:i])
		if err != nil {
			return TableColumnFormat{}, wrapf(KindInvalidHeader, "ParseTFORM", err, "bad repeat count in %q", form)
		}
		repeat = r
	}
	if i >= len(form) {
		return TableColumnFormat{}, errf(KindInvalidHeader, "ParseTFORM", "missing type code in %q", form)
	}
	letter := form[i]
	rest := form[i+1:]

	switch letter {
	case 'A':
		if rest != "" {
			w, err := strconv.Atoi(rest)
			if err != nil {
				return TableColumnFormat{}, wrapf(KindInvalidHeader, "ParseTFORM", err, "bad width in %q", form)
			}
			if w <= 0 {
				return TableColumnFormat{}, errf(KindInvalidHeader, "ParseTFORM", "non-positive width in %q", form)
			}
			return StringArray(repeat, w), nil
		}
		return String(repeat), nil
	case 'L':
		return Boolean(repeat), nil
	case 'X':
		return Bit(repeat), nil
	case 'B':
		return ByteCol(repeat), nil
	case 'S':
		return Int8Col(repeat), nil
	case 'I':
		return Int16Col(repeat), nil
	case 'J':
		return Int32Col(repeat), nil
	case 'K':
		return Int64Col(repeat), nil
	case 'U':
		return Uint16Col(repeat), nil
	case 'V':
		return Uint32Col(repeat), nil
	case 'E':
		return Float32Col(repeat), nil
	case 'D':
		return Float64Col(repeat), nil
	case 'C':
		return Complex64Col(repeat), nil
	case 'M':
		return Complex128Col(repeat), nil
	case 'P', 'Q':
		return TableColumnFormat{}, UnsupportedFeature("ParseTFORM", "variable-length-array column")
	default:
		return TableColumnFormat{}, errf(KindInvalidHeader, "ParseTFORM", "unrecognized TFORM type code %q in %q", letter, form)
	}
}

// Decode reads one column value out of raw, the on-disk big-endian bytes
// for this column in one row. Semantics mirror
// TableColumnFormat::parse_into_value in the Rust original:
//   - String: UTF-8 decode, strip trailing NULs, then trim ASCII spaces.
//   - StringArray: split into `repeat` fixed-width substrings, each kept
//     as-is (no NUL-stripping -- the items are concatenated fields, not a
//     single C string).
//   - Boolean: nonzero byte is true.
//   - Bit/Byte/Int8: raw byte values (Int8 is byte-reinterpreted-signed).
//   - everything else: big-endian multi-byte values.
func (f TableColumnFormat) Decode(raw []byte) (interface{}, error) {
	if len(raw) < f.BytesLen() {
		return nil, errf(KindShortRead, "TableColumnFormat.Decode", "need %d bytes, have %d", f.BytesLen(), len(raw))
	}
	switch f.code {
	case codeString:
		s := strings.TrimRight(string(raw[:f.repeat]), "\x00")
		return strings.Trim(s, " "), nil

	case codeStringArray:
		out := make([]string, f.repeat)
		for i := range out {
			out[i] = string(raw[i*f.width : (i+1)*f.width])
		}
		return out, nil

	case codeBoolean:
		out := make([]bool, f.repeat)
		for i := range out {
			out[i] = raw[i] != 0
		}
		if f.repeat == 1 {
			return out[0], nil
		}
		return out, nil

	case codeBit:
		out := make([]byte, f.BytesLen())
		copy(out, raw[:f.BytesLen()])
		return out, nil

	case codeByte:
		out := make([]byte, f.repeat)
		copy(out, raw[:f.repeat])
		if f.repeat == 1 {
			return out[0], nil
		}
		return out, nil

	case codeInt8:
		out := make([]int8, f.repeat)
		for i := range out {
			out[i] = int8(raw[i])
		}
		if f.repeat == 1 {
			return out[0], nil
		}
		return out, nil

	case codeInt16:
		out := make([]int16, f.repeat)
		for i := range out {
			out[i] = int16(binary.BigEndian.Uint16(raw[i*2:]))
		}
		if f.repeat == 1 {
			return out[0], nil
		}
		return out, nil

	case codeInt32:
		out := make([]int32, f.repeat)
		for i := range out {
			out[i] = int32(binary.BigEndian.Uint32(raw[i*4:]))
		}
		if f.repeat == 1 {
			return out[0], nil
		}
		return out, nil

	case codeInt64:
		out := make([]int64, f.repeat)
		for i := range out {
			out[i] = int64(binary.BigEndian.Uint64(raw[i*8:]))
		}
		if f.repeat == 1 {
			return out[0], nil
		}
		return out, nil

	case codeUint16:
		out := make([]uint16, f.repeat)
		for i := range out {
			out[i] = binary.BigEndian.Uint16(raw[i*2:])
		}
		if f.repeat == 1 {
			return out[0], nil
		}
		return out, nil

	case codeUint32:
		out := make([]uint32, f.repeat)
		for i := range out {
			out[i] = binary.BigEndian.Uint32(raw[i*4:])
		}
		if f.repeat == 1 {
			return out[0], nil
		}
		return out, nil

	case codeFloat32:
		out := make([]float32, f.repeat)
		for i := range out {
			out[i] = math.Float32frombits(binary.BigEndian.Uint32(raw[i*4:]))
		}
		if f.repeat == 1 {
			return out[0], nil
		}
		return out, nil

	case codeFloat64:
		out := make([]float64, f.repeat)
		for i := range out {
			out[i] = math.Float64frombits(binary.BigEndian.Uint64(raw[i*8:]))
		}
		if f.repeat == 1 {
			return out[0], nil
		}
		return out, nil

	case codeComplex64:
		out := make([]complex64, f.repeat)
		for i := range out {
			re := math.Float32frombits(binary.BigEndian.Uint32(raw[i*8:]))
			im := math.Float32frombits(binary.BigEndian.Uint32(raw[i*8+4:]))
			out[i] = complex(re, im)
		}
		if f.repeat == 1 {
			return out[0], nil
		}
		return out, nil

	case codeComplex128:
		out := make([]complex128, f.repeat)
		for i := range out {
			re := math.Float64frombits(binary.BigEndian.Uint64(raw[i*16:]))
			im := math.Float64frombits(binary.BigEndian.Uint64(raw[i*16+8:]))
			out[i] = complex(re, im)
		}
		if f.repeat == 1 {
			return out[0], nil
		}
		return out, nil

	default:
		return nil, errf(KindInvalidHeader, "TableColumnFormat.Decode", "unhandled column code %q", f.code)
	}
}

// asciiFormat is a parsed ASCII-table TFORMn ('Aw', 'Iw', 'Fw.d', 'Ew.d',
// 'Dw.d'): fixed-width decimal text, not binary words.
type asciiFormat struct {
	code  byte
	width int
}

// ParseASCIITFORM parses an ASCII-table TFORMn value.
func ParseASCIITFORM(form string) (asciiFormat, error) {
	form = strings.TrimSpace(form)
	if form == "" {
		return asciiFormat{}, errf(KindInvalidHeader, "ParseASCIITFORM", "empty TFORM value")
	}
	code := form[0]
	rest := form[1:]
	if dot := strings.IndexByte(rest, '.'); dot >= 0 {
		rest = rest[:dot]
	}
	w, err := strconv.Atoi(rest)
	if err != nil {
		return asciiFormat{}, wrapf(KindInvalidHeader, "ParseASCIITFORM", err, "bad width in %q", form)
	}
	switch code {
	case 'A', 'I', 'F', 'E', 'D':
		return asciiFormat{code: code, width: w}, nil
	default:
		return asciiFormat{}, errf(KindInvalidHeader, "ParseASCIITFORM", "unrecognized ASCII TFORM code %q in %q", code, form)
	}
}

// Decode reads one fixed-width decimal-text field.
func (f asciiFormat) Decode(raw []byte) (interface{}, error) {
	s := strings.TrimSpace(string(raw))
	switch f.code {
	case 'A':
		return strings.TrimRight(string(raw), " "), nil
	case 'I':
		if s == "" {
			return int64(0), nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, wrapf(KindInvalidHeader, "asciiFormat.Decode", err, "bad integer field %q", s)
		}
		return v, nil
	case 'F', 'E', 'D':
		if s == "" {
			return float64(0), nil
		}
		s = strings.Replace(s, "D", "E", 1)
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, wrapf(KindInvalidHeader, "asciiFormat.Decode", err, "bad float field %q", s)
		}
		return v, nil
	default:
		return nil, errf(KindInvalidHeader, "asciiFormat.Decode", "unhandled ASCII code %q", f.code)
	}
}
