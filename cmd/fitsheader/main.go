// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sbinet-labs/gofits"
)

func main() {
	os.Exit(run())
}

func run() int {
	var single bool

	flag.Usage = func() {
		const msg = `Usage: fitsheader [-first] filename

List the FITS header keywords of every HDU in the file, or only
of the primary HDU when -first is given.

Examples:

   fitsheader file.fits         - list every header in the file
   fitsheader file.fits.gz      - same, transparently gunzipped
   fitsheader -first file.fits  - list the primary header only
`
		fmt.Fprintf(os.Stderr, "%v\n", msg)
		flag.PrintDefaults()
	}
	flag.BoolVar(&single, "first", false, "only list the primary HDU's header")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return 1
	}

	f, err := fits.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "**error** %v\n", err)
		return 1
	}
	defer f.Close()

	for i, hdu := range f.HDUs() {
		hdr := hdu.Header()
		fmt.Printf("Header listing for HDU #%d (%s %q):\n", i, hdu.Type(), hdu.Name())

		for _, key := range hdr.Keys() {
			k := hdr.Index(key)
			card := hdr.Card(k)
			fmt.Printf("%-8s= %-29v / %s\n", card.Name, card.Value, card.Comment)
		}
		fmt.Printf("END\n\n")

		if single {
			break
		}
	}

	return 0
}
