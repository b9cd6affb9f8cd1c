// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"strconv"
	"strings"
	"time"
)

// CardKind tags a Card with one of a closed set of known FITS keywords
// (plus a handful of structural fallbacks for anything else). Unlike a
// bare string keyword lookup, CardKind lets XORGSUBF and YORGSUBF -- two
// distinct keywords the source once collapsed into a shared tag -- carry
// their own enum values, so they can never alias each other.
type CardKind int

const (
	KUnknown CardKind = iota

	// structural / fallback
	KEnd
	KComment
	KHistory
	KBlank // an entirely empty keyword (column 1-8 all spaces)
	KHierarch
	KContinuation
	KUndefinedValue // a recognized-looking card whose value slot was blank

	// mandatory / structural keywords
	KSimple
	KXtension
	KBitpix
	KNaxis
	KNaxisN
	KExtend
	KExtname
	KExtver
	KExtlevel
	KPcount
	KGcount
	KGroups
	KTfields
	KTheap
	KBlocked

	// WCS / scaling
	KBscale
	KBzero
	KBlank_
	KBunit
	KDatamax
	KDatamin
	KCdeltN
	KCrotaN
	KCrpixN
	KCrvalN
	KCtypeN
	KEpoch
	KEquinox

	// provenance
	KAuthor
	KDate
	KDateObs
	KInstrume
	KObject
	KObserver
	KOrigin
	KReferenc
	KTelescop

	// random-groups parameters (not a Non-goal to *tag*, only to *decode*)
	KPscalN
	KPtypeN
	KPzeroN

	// table-column descriptors
	KTbcolN
	KTdimN
	KTdispN
	KTformN
	KTnullN
	KTscalN
	KTtypeN
	KTunitN
	KTzeroN

	// camera/observatory extras (original_source's "ADDITIONAL CARDS")
	KFocalLen
	KExptime
	KCCDTemp
	KBayerPat
	KCreator
	KXorgsubf
	KYorgsubf
	KXbinning
	KYbinning
	KCcdxbin
	KCcdybin
	KXpixsz
	KYpixsz
	KImagetyp
	KExposure
	KRA
	KDec
	KGuidecam
	KFocuspos
	KSitelong
	KSitelat
	KImagew
	KImageh
)

// Undefined is the Value held by a card whose value slot is present but
// blank (e.g. "BLANK   =                      /").
type Undefined struct{}

// Invalid is the Value held by a card this package could tokenize but
// not meaningfully type (an out-of-range number, an unparsable date...);
// Raw carries the original value token so callers can inspect it.
type Invalid struct{ Raw string }

// keywordDesc drives post-processing of the generic line-parse result
// into a typed Value for a specific keyword.
type keywordDesc struct {
	kind    CardKind
	indexed bool // true if this keyword carries a trailing column/axis index
	convert func(generic interface{}) interface{}
}

func asFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

func asInt(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func timestampConvert(v interface{}) interface{} {
	s, ok := v.(string)
	if !ok {
		return Invalid{Raw: strconvAny(v)}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return Invalid{Raw: s}
}

func durationConvert(v interface{}) interface{} {
	f, ok := asFloat(v)
	if !ok {
		return Invalid{Raw: strconvAny(v)}
	}
	return time.Duration(f * float64(time.Second))
}

func bitpixConvert(v interface{}) interface{} {
	i, ok := asInt(v)
	if !ok {
		return Invalid{Raw: strconvAny(v)}
	}
	bp, err := ParseBitpix(i)
	if err != nil {
		return Invalid{Raw: strconvAny(v)}
	}
	return bp
}

func bayerConvert(v interface{}) interface{} {
	s, ok := v.(string)
	if !ok {
		return Invalid{Raw: strconvAny(v)}
	}
	bp, err := ParseBayerPattern(s)
	if err != nil {
		return Invalid{Raw: s}
	}
	return bp
}

func xtensionConvert(v interface{}) interface{} {
	s, ok := v.(string)
	if !ok {
		return Invalid{Raw: strconvAny(v)}
	}
	ht, err := parseXtension(s)
	if err != nil {
		return Invalid{Raw: s}
	}
	return ht
}

func strconvAny(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// nonIndexedKeywords maps an exact keyword to its descriptor.
var nonIndexedKeywords = map[string]keywordDesc{
	"SIMPLE":   {kind: KSimple},
	"XTENSION": {kind: KXtension, convert: xtensionConvert},
	"BITPIX":   {kind: KBitpix, convert: bitpixConvert},
	"NAXIS":    {kind: KNaxis},
	"EXTEND":   {kind: KExtend},
	"EXTNAME":  {kind: KExtname},
	"EXTVER":   {kind: KExtver},
	"EXTLEVEL": {kind: KExtlevel},
	"PCOUNT":   {kind: KPcount},
	"GCOUNT":   {kind: KGcount},
	"GROUPS":   {kind: KGroups},
	"TFIELDS":  {kind: KTfields},
	"THEAP":    {kind: KTheap},
	"BLOCKED":  {kind: KBlocked},

	"BSCALE":  {kind: KBscale},
	"BZERO":   {kind: KBzero},
	"BLANK":   {kind: KBlank_},
	"BUNIT":   {kind: KBunit},
	"DATAMAX": {kind: KDatamax},
	"DATAMIN": {kind: KDatamin},
	"EPOCH":   {kind: KEpoch},
	"EQUINOX": {kind: KEquinox},

	"AUTHOR":   {kind: KAuthor},
	"DATE":     {kind: KDate, convert: timestampConvert},
	"DATE-OBS": {kind: KDateObs, convert: timestampConvert},
	"INSTRUME": {kind: KInstrume},
	"OBJECT":   {kind: KObject},
	"OBSERVER": {kind: KObserver},
	"ORIGIN":   {kind: KOrigin},
	"REFERENC": {kind: KReferenc},
	"TELESCOP": {kind: KTelescop},

	"FOCALLEN":  {kind: KFocalLen},
	"EXPTIME":   {kind: KExptime, convert: durationConvert},
	"CCD-TEMP":  {kind: KCCDTemp},
	"BAYERPAT":  {kind: KBayerPat, convert: bayerConvert},
	"CREATOR":   {kind: KCreator},
	"XORGSUBF":  {kind: KXorgsubf},
	"YORGSUBF":  {kind: KYorgsubf},
	"XBINNING":  {kind: KXbinning},
	"YBINNING":  {kind: KYbinning},
	"CCDXBIN":   {kind: KCcdxbin},
	"CCDYBIN":   {kind: KCcdybin},
	"XPIXSZ":    {kind: KXpixsz},
	"YPIXSZ":    {kind: KYpixsz},
	"IMAGETYP":  {kind: KImagetyp},
	"EXPOSURE":  {kind: KExposure, convert: durationConvert},
	"RA":        {kind: KRA},
	"DEC":       {kind: KDec},
	"GUIDECAM":  {kind: KGuidecam},
	"FOCUSPOS":  {kind: KFocuspos},
	"SITELONG":  {kind: KSitelong},
	"SITELAT":   {kind: KSitelat},
	"IMAGEW":    {kind: KImagew},
	"IMAGEH":    {kind: KImageh},
}

// indexedPrefixes maps a keyword prefix (e.g. "NAXIS") to its descriptor;
// the numeric suffix (e.g. the "3" in "NAXIS3") is parsed separately.
var indexedPrefixes = map[string]keywordDesc{
	"NAXIS": {kind: KNaxisN, indexed: true},
	"CDELT": {kind: KCdeltN, indexed: true},
	"CROTA": {kind: KCrotaN, indexed: true},
	"CRPIX": {kind: KCrpixN, indexed: true},
	"CRVAL": {kind: KCrvalN, indexed: true},
	"CTYPE": {kind: KCtypeN, indexed: true},
	"PSCAL": {kind: KPscalN, indexed: true},
	"PTYPE": {kind: KPtypeN, indexed: true},
	"PZERO": {kind: KPzeroN, indexed: true},
	"TBCOL": {kind: KTbcolN, indexed: true},
	"TDIM":  {kind: KTdimN, indexed: true},
	"TDISP": {kind: KTdispN, indexed: true},
	"TFORM": {kind: KTformN, indexed: true},
	"TNULL": {kind: KTnullN, indexed: true},
	"TSCAL": {kind: KTscalN, indexed: true},
	"TTYPE": {kind: KTtypeN, indexed: true},
	"TUNIT": {kind: KTunitN, indexed: true},
	"TZERO": {kind: KTzeroN, indexed: true},
}

// classifyKeyword resolves a raw card keyword to its descriptor (CardKind
// and conversion) and index (1-based, 0 if none).
// NAXIS is special-cased: bare "NAXIS" is KNaxis, but "NAXIS1".."NAXISn"
// are KNaxisN -- both share the "NAXIS" prefix, so the indexed lookup is
// tried only once the exact-match lookup has failed.
func classifyKeyword(name string) (desc keywordDesc, index int) {
	if d, ok := nonIndexedKeywords[name]; ok {
		return d, 0
	}
	for prefix, d := range indexedPrefixes {
		if strings.HasPrefix(name, prefix) && len(name) > len(prefix) {
			suffix := name[len(prefix):]
			if n, err := strconv.Atoi(suffix); err == nil && n > 0 {
				return d, n
			}
		}
	}
	return keywordDesc{kind: KUnknown}, 0
}
