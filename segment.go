// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"io"
	"strings"
)

// segmenter walks a dataSource and splits it into a sequence of Header-Data
// Units: parse the header's 2880-byte card blocks, compute the size of the
// data segment that follows from BITPIX/NAXISn (image) or NAXIS1/NAXIS2/
// PCOUNT (table), and advance past it without reading it -- the data is
// only materialized when a caller asks for it, via the offset/length
// baseHDU records, rather than reading it eagerly: the underlying
// dataSource is random-access, so there is no need to buffer a data
// segment just to skip over it.
type segmenter struct {
	src dataSource
	br  *blockReader
}

func newSegmenter(src dataSource) *segmenter {
	return &segmenter{src: src, br: newBlockReader(src, 0)}
}

// next parses and returns the next HDU, or io.EOF once the source is
// exhausted.
func (s *segmenter) next() (HDU, error) {
	if s.br.atEOF() {
		return nil, io.EOF
	}

	isFirst := s.br.Offset() == 0
	cards, err := s.readHeaderCards()
	if err != nil {
		return nil, err
	}

	htype, primary, err := classifyHDU(cards)
	if err != nil {
		return nil, err
	}
	hdr := *newHeaderFrom(cards, htype)

	dataLen, err := dataBytesLen(&hdr, htype)
	if err != nil {
		return nil, err
	}

	base := baseHDU{
		hdr:     hdr,
		primary: primary && isFirst,
		dataOff: s.br.Offset(),
		dataLen: dataLen,
	}
	s.br.skip(alignBlock(dataLen))

	switch htype {
	case ImageHDU:
		return &imageHDU{baseHDU: base, src: s.src}, nil
	case AsciiTable, BinaryTable:
		return &tableHDU{baseHDU: base, src: s.src}, nil
	default:
		return nil, errf(KindUnsupportedFeature, "segmenter.next", "HDU type %v has no decoder", htype)
	}
}

// readHeaderCards reads whole 2880-byte blocks, parsing the 36 cards in
// each, joining CONTINUE cards onto the preceding string value, until an
// END card is seen.
func (s *segmenter) readHeaderCards() ([]Card, error) {
	cards := make([]Card, 0, cardsPerBlock)
	for {
		block, err := s.br.readBlock()
		if err != nil {
			return nil, err
		}
		for i := 0; i < cardsPerBlock; i++ {
			line := block[i*cardSize : (i+1)*cardSize]
			card, err := ParseCard(line)
			if err != nil {
				return nil, err
			}
			if card.Kind == KContinuation {
				if len(cards) == 0 {
					return nil, errf(KindInvalidCard, "readHeaderCards", "CONTINUE card with no preceding string card")
				}
				last := &cards[len(cards)-1]
				str, ok := last.Value.(string)
				if ok && len(str) > 0 && strings.HasSuffix(str, "&") {
					last.Value = str[:len(str)-1] + card.Comment
				} else if ok {
					last.Value = str + card.Comment
				}
				continue
			}
			cards = append(cards, *card)
			if card.Kind == KEnd {
				return cards, nil
			}
		}
	}
}

// classifyHDU determines the HDUType and whether this is the file's
// primary HDU, from the SIMPLE/XTENSION card.
func classifyHDU(cards []Card) (htype HDUType, primary bool, err error) {
	for i := range cards {
		switch cards[i].Kind {
		case KSimple:
			return ImageHDU, true, nil
		case KXtension:
			ht, ok := cards[i].Value.(HDUType)
			if !ok {
				return 0, false, errf(KindInvalidHeader, "classifyHDU", "invalid XTENSION value")
			}
			return ht, false, nil
		}
	}
	return 0, false, errf(KindInvalidHeader, "classifyHDU", "header has neither a SIMPLE nor an XTENSION card")
}

// dataBytesLen computes the size, in bytes, of an HDU's data segment.
// Uses uint64 arithmetic with an explicit overflow check, since a
// maliciously large NAXISn/PCOUNT combination could otherwise wrap
// silently; overflow is reported as KindInvalidFITS instead of
// producing a truncated read.
func dataBytesLen(hdr *Header, htype HDUType) (int64, error) {
	switch htype {
	case ImageHDU:
		bp, ok := hdr.Bitpix()
		if !ok {
			return 0, errf(KindInvalidHeader, "dataBytesLen", "missing or invalid BITPIX card")
		}
		axes, err := hdr.Axes()
		if err != nil {
			return 0, err
		}
		var nelem uint64 = 1
		for _, dim := range axes {
			if dim < 0 {
				return 0, errf(KindInvalidHeader, "dataBytesLen", "negative axis length %d", dim)
			}
			nelem, err = mulOverflow(nelem, uint64(dim))
			if err != nil {
				return 0, err
			}
		}
		if len(axes) == 0 {
			nelem = 0
		}
		total, err := mulOverflow(nelem, uint64(bp.ByteSize()))
		if err != nil {
			return 0, err
		}
		return int64(total), nil

	case AsciiTable, BinaryTable:
		rowCard := hdr.GetIndexed("NAXIS", 1)
		rowsCard := hdr.GetIndexed("NAXIS", 2)
		if rowCard == nil || rowsCard == nil {
			return 0, errf(KindInvalidHeader, "dataBytesLen", "table HDU missing NAXIS1/NAXIS2")
		}
		rowsz, _ := rowCard.Int64()
		nrows, _ := rowsCard.Int64()
		if rowsz < 0 || nrows < 0 {
			return 0, errf(KindInvalidHeader, "dataBytesLen", "negative NAXIS1/NAXIS2")
		}
		datasz, err := mulOverflow(uint64(rowsz), uint64(nrows))
		if err != nil {
			return 0, err
		}
		heapsz := uint64(0)
		if card := hdr.Get("PCOUNT"); card != nil {
			if v, ok := card.Int64(); ok && v > 0 {
				heapsz = uint64(v)
			}
		}
		total, err := addOverflow(datasz, heapsz)
		if err != nil {
			return 0, err
		}
		return int64(total), nil

	default:
		return 0, nil
	}
}

func mulOverflow(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	r := a * b
	if r/a != b {
		return 0, errf(KindInvalidFITS, "mulOverflow", "data size overflow (%d * %d)", a, b)
	}
	return r, nil
}

func addOverflow(a, b uint64) (uint64, error) {
	r := a + b
	if r < a {
		return 0, errf(KindInvalidFITS, "addOverflow", "data size overflow (%d + %d)", a, b)
	}
	return r, nil
}
