// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"bytes"
	"strconv"
	"strings"
)

var (
	kHIERARCH = []byte("HIERARCH ")
	kCOMMENT  = []byte("COMMENT ")
	kCONTINUE = []byte("CONTINUE")
	kHISTORY  = []byte("HISTORY ")
	kEND      = []byte("END     ")
	kEMPTY    = []byte("        ")
)

// processQuotedString is a transliteration of CFITSIO's ffpsvc string
// handling: a 3-state scan that turns a pair of adjacent single quotes
// inside a quoted value into one literal quote.
func processQuotedString(s string) (value string, consumed int, err error) {
	var buf bytes.Buffer
	state := 0
	for i, ch := range s {
		quote := ch == '\''
		switch state {
		case 0:
			if !quote {
				return "", i, errf(KindInvalidCard, "processQuotedString", "string does not start with a quote (%q)", s)
			}
			state = 1
		case 1:
			if quote {
				state = 2
			} else {
				buf.WriteRune(ch)
			}
		case 2:
			if quote {
				buf.WriteRune(ch)
				state = 1
			} else {
				return strings.TrimRight(buf.String(), " "), i, nil
			}
		}
	}
	if len(s) > 0 && s[len(s)-1] == '\'' {
		return strings.TrimRight(buf.String(), " "), len(s), nil
	}
	return "", 0, errf(KindInvalidCard, "processQuotedString", "string ends prematurely (%q)", s)
}

// ParseCard parses one 80-byte header line into a Card, following
// CFITSIO's ffpsvc value/comment split: it recognizes HIERARCH, COMMENT,
// CONTINUE, HISTORY, END and blank-keyword cards as comment-only lines,
// then falls back to the positional KEYWORD = VALUE / COMMENT layout.
func ParseCard(bline []byte) (*Card, error) {
	if len(bline) != cardSize {
		return nil, errf(KindInvalidCard, "ParseCard", "invalid header line length (%d)", len(bline))
	}
	raw := string(bline)

	var name, comment string
	var genericValue interface{}
	valpos := 0
	keybeg, keyend := 0, 0
	isHierarch := false

	switch {
	case bytes.HasPrefix(bline, kHIERARCH):
		idx := bytes.IndexByte(bline, '=')
		if idx < 0 {
			return &Card{Kind: KHierarch, Name: strings.TrimSpace(string(bline[len(kHIERARCH):])), Comment: strings.TrimRight(string(bline[8:]), " "), Raw: raw}, nil
		}
		isHierarch = true
		valpos = idx + 1
		keybeg = len(kHIERARCH)
		keyend = idx

	case len(bline) < 9,
		bytes.HasPrefix(bline, kCOMMENT),
		bytes.HasPrefix(bline, kCONTINUE),
		bytes.HasPrefix(bline, kHISTORY),
		bytes.HasPrefix(bline, kEND),
		bytes.HasPrefix(bline, kEMPTY),
		!bytes.HasPrefix(bline[8:], []byte("= ")):

		comment = strings.TrimRight(string(bline[8:]), " ")
		switch {
		case bytes.HasPrefix(bline, kCOMMENT):
			return &Card{Kind: KComment, Name: "COMMENT", Comment: comment, Raw: raw}, nil
		case bytes.HasPrefix(bline, kCONTINUE):
			str := strings.TrimSpace(string(bline[len(kCONTINUE):]))
			value, _, err := processQuotedString(str)
			if err != nil {
				return nil, err
			}
			return &Card{Kind: KContinuation, Name: "CONTINUE", Comment: value, Raw: raw}, nil
		case bytes.HasPrefix(bline, kHISTORY):
			return &Card{Kind: KHistory, Name: "HISTORY", Comment: comment, Raw: raw}, nil
		case bytes.HasPrefix(bline, kEND):
			return &Card{Kind: KEnd, Name: "END", Raw: raw}, nil
		default:
			return &Card{Kind: KBlank, Name: "", Comment: comment, Raw: raw}, nil
		}

	default:
		valpos = 10
		keybeg, keyend = 0, 8
	}

	name = strings.TrimSpace(string(bline[keybeg:keyend]))

	nblanks := 0
	for _, c := range bline[valpos:] {
		if c != ' ' {
			break
		}
		nblanks++
	}

	if nblanks+valpos == len(bline) {
		// legal: the keyword's value is undefined.
		kind, index := KHierarch, 0
		if !isHierarch {
			var desc keywordDesc
			desc, index = classifyKeyword(name)
			kind = desc.kind
		}
		return &Card{Kind: kind, Name: name, Index: index, Value: Undefined{}, Raw: raw}, nil
	}

	i := valpos + nblanks
	switch bline[i] {
	case '/':
		// value slot left blank; the '/' here is the comment separator,
		// not a value token, so leave i in place for the comment scan below.
		genericValue = Undefined{}

	case '\'':
		str, idx, err := processQuotedString(string(bline[i:]))
		if err != nil {
			return nil, err
		}
		if len(str) > 69 {
			str = str[:70]
		}
		genericValue = str
		i += idx

	case '(':
		idx := bytes.IndexByte(bline[i:], ')')
		if idx < 0 {
			return nil, errf(KindInvalidCard, "ParseCard", "complex value missing closing ')' (%q)", raw)
		}
		inner := strings.TrimSpace(string(bline[i : i+idx+1]))
		inner = strings.TrimPrefix(inner, "(")
		inner = strings.TrimSuffix(inner, ")")
		parts := strings.SplitN(inner, ",", 2)
		if len(parts) != 2 {
			return nil, errf(KindInvalidCard, "ParseCard", "malformed complex value (%q)", raw)
		}
		re, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, wrapf(KindInvalidCard, "ParseCard", err, "bad complex real part (%q)", raw)
		}
		im, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, wrapf(KindInvalidCard, "ParseCard", err, "bad complex imag part (%q)", raw)
		}
		genericValue = complex(re, im)
		i += idx + 1

	default:
		v0 := bline[i]
		var token string
		if valend := bytes.Index(bline[i:], []byte(" /")); valend < 0 {
			token = string(bline[i:])
		} else {
			token = string(bline[i : i+valend])
		}
		i += len(token)

		switch {
		case (v0 >= '0' && v0 <= '9') || v0 == '+' || v0 == '-':
			token = strings.TrimSpace(token)
			if strings.ContainsAny(token, ".DE") {
				token = strings.Replace(token, "D", "E", 1)
				x, err := strconv.ParseFloat(token, 64)
				if err != nil {
					return nil, wrapf(KindInvalidCard, "ParseCard", err, "bad float value (%q)", raw)
				}
				genericValue = x
			} else {
				x, err := strconv.ParseInt(token, 10, 64)
				if err != nil {
					return nil, wrapf(KindInvalidCard, "ParseCard", err, "bad integer value (%q)", raw)
				}
				genericValue = x
			}
		case v0 == 'T':
			genericValue = true
		case v0 == 'F':
			genericValue = false
		default:
			return nil, errf(KindInvalidCard, "ParseCard", "invalid card line (%q)", raw)
		}
	}

	if idx := bytes.IndexByte(bline[i:], '/'); idx >= 0 {
		comment = strings.TrimSpace(string(bline[i+idx+1:]))
	}

	desc, index := classifyKeyword(name)
	value := genericValue
	if desc.convert != nil && genericValue != nil {
		value = desc.convert(genericValue)
	}

	kind := desc.kind
	if isHierarch {
		kind = KHierarch
	}

	return &Card{Kind: kind, Name: name, Index: index, Value: value, Comment: comment, Raw: raw}, nil
}
