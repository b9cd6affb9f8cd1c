// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"image"
	"io"
	"strings"
)

// HDUType is the kind of payload a Header-Data Unit carries.
type HDUType int

const (
	ImageHDU    HDUType = iota // primary array or IMAGE extension
	AsciiTable                 // ASCII-table extension
	BinaryTable                // binary-table extension
	AnyHDU                     // the XTENSION value was "ANY"/"ANY_HDU"
)

func (t HDUType) String() string {
	switch t {
	case ImageHDU:
		return "IMAGE"
	case AsciiTable:
		return "TABLE"
	case BinaryTable:
		return "BINTABLE"
	case AnyHDU:
		return "ANY_HDU"
	default:
		return "INVALID"
	}
}

// parseXtension maps an XTENSION card value to an HDUType.
func parseXtension(s string) (HDUType, error) {
	switch strings.TrimSpace(s) {
	case "IMAGE":
		return ImageHDU, nil
	case "TABLE":
		return AsciiTable, nil
	case "BINTABLE":
		return BinaryTable, nil
	case "ANY", "ANY_HDU":
		return AnyHDU, nil
	default:
		return 0, errf(KindInvalidHeader, "parseXtension", "invalid XTENSION value %q", s)
	}
}

// HDU is one Header-Data Unit: a Header plus a handle on its (lazily
// read) payload. The concrete payload accessor depends on the HDU's
// Type(): an ImageHDU payload comes from Image(), a table payload from
// Rows()/Columns().
type HDU interface {
	Type() HDUType
	Header() *Header
	Name() string
	Version() int
}

// baseHDU carries the bookkeeping every concrete HDU needs: its parsed
// Header and the byte range of its (still unread) data segment, so the
// Segmenter can hand back a Header immediately without forcing the data
// segment to be read (the lazy re-read requirement of the random-access
// Segmenter).
type baseHDU struct {
	hdr      Header
	primary  bool
	dataOff  int64 // byte offset of this HDU's data segment in the source
	dataLen  int64 // raw (unpadded) data segment size, in bytes
}

func (h *baseHDU) Type() HDUType   { return h.hdr.Type() }
func (h *baseHDU) Header() *Header { return &h.hdr }
func (h *baseHDU) Name() string    { return h.hdr.ExtensionName() }
func (h *baseHDU) Version() int    { return h.hdr.ExtensionVersion() }

// ImageData is the interface an ImageHDU additionally satisfies, for
// callers that know (from Type()) they are looking at a pixel array and
// want to decode it. A plain HDU type-asserted against this interface
// gives pixel access without exposing the concrete imageHDU type.
type ImageData interface {
	HDU
	Raw() ([]byte, error)
	Pixels() ([]float64, error)
	Normalized() ([]float64, error)
	Image() (image.Image, error)
	EncodeTIFF(w io.Writer) error
	ReadImage(index int64) (pixels []float64, ok bool, err error)
}

// TableData is the interface an AsciiTable/BinaryTable HDU additionally
// satisfies, for callers that want row/column access without the
// concrete tableHDU type.
type TableData interface {
	HDU
	Columns() ([]Column, error)
	ColumnIndex(name string) (int, error)
	NumRows() (int64, error)
	Rows(begin, end int64) (*Rows, error)
	Describe(col string, begin, end int64) (mean, stddev float64, err error)
}

var (
	_ ImageData = (*imageHDU)(nil)
	_ TableData = (*tableHDU)(nil)
)
