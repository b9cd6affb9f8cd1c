// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

// Card is one decoded 80-byte header record. Kind names which of the
// known FITS keywords (or structural fallback) this card is; Value holds
// a concrete Go type drawn from a closed set (bool, int64, float64,
// complex128, string, time.Time, time.Duration, Bitpix, BayerPattern,
// HDUType, Undefined, Invalid) depending on Kind -- never a raw untyped
// string for a keyword this package recognizes.
type Card struct {
	Kind    CardKind
	Name    string      // the literal keyword, e.g. "NAXIS2", "HIERARCH ESO DET ID"
	Index   int         // 1-based column/axis index for indexed keywords, else 0
	Value   interface{} // see Kind for the concrete type this holds
	Comment string
	Raw     string // the original 80-byte line, for diagnostics
}

// Int64 returns the Card's value as an int64, if it holds one.
func (c *Card) Int64() (int64, bool) {
	v, ok := c.Value.(int64)
	return v, ok
}

// Float64 returns the Card's value as a float64, if it holds one.
func (c *Card) Float64() (float64, bool) {
	switch v := c.Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// String returns the Card's value as a string, if it holds one.
func (c *Card) String() (string, bool) {
	v, ok := c.Value.(string)
	return v, ok
}

// Bool returns the Card's value as a bool, if it holds one.
func (c *Card) Bool() (bool, bool) {
	v, ok := c.Value.(bool)
	return v, ok
}
