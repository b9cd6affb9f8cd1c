// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import "fmt"

// Kind classifies the errors this package returns, so callers can
// distinguish "this file is corrupt" from "this feature isn't supported
// yet" with errors.As instead of string matching.
type Kind int

const (
	// KindInvalidFITS marks a structural violation of the FITS block/card
	// layout: bad magic, non-2880-aligned blocks, overflowing sizes.
	KindInvalidFITS Kind = iota
	// KindInvalidCard marks a malformed 80-byte header card.
	KindInvalidCard
	// KindInvalidHeader marks a header missing a mandatory keyword, or
	// carrying an inconsistent one (NAXIS vs NAXISn count, bad BITPIX...).
	KindInvalidHeader
	// KindUnsupportedFeature marks a well-formed construct this package
	// deliberately does not implement.
	KindUnsupportedFeature
	// KindShortRead marks an I/O error: fewer bytes available than the
	// header promised.
	KindShortRead
)

func (k Kind) String() string {
	switch k {
	case KindInvalidFITS:
		return "invalid-fits"
	case KindInvalidCard:
		return "invalid-card"
	case KindInvalidHeader:
		return "invalid-header"
	case KindUnsupportedFeature:
		return "unsupported-feature"
	case KindShortRead:
		return "short-read"
	default:
		return "unknown"
	}
}

// Error is the error type returned throughout this package.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "parseCard", "decodeHDU"
	Msg  string
	Err  error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fits: %s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("fits: %s: %s", e.Op, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func errf(kind Kind, op, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func wrapf(kind Kind, op string, err error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...), Err: err}
}

// UnsupportedFeature builds the error this package returns when asked to
// decode a well-formed but deliberately-unimplemented construct (a Bayer
// pattern with no symmetry rule, a VLA column, a non-2-D image display...).
func UnsupportedFeature(op, feature string) error {
	return errf(KindUnsupportedFeature, op, "unsupported feature: %s", feature)
}
