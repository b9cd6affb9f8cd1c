// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sbinet-labs/gofits"
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() {
		const msg = `Usage: fitstable filename

List the contents of every table HDU in a FITS file. There is no
option to select a single extension.

Examples:
  fitstable tab.fits        - list every table extension
`
		fmt.Fprintf(os.Stderr, "%v\n", msg)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		return 1
	}

	f, err := fits.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer f.Close()

	for _, hdu := range f.HDUs() {
		table, ok := hdu.(fits.TableData)
		if !ok {
			continue
		}
		if err := listTable(hdu.Name(), table); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	return 0
}

func listTable(name string, table fits.TableData) error {
	cols, err := table.Columns()
	if err != nil {
		return err
	}
	nrows, err := table.NumRows()
	if err != nil {
		return err
	}

	maxname := 10
	for _, col := range cols {
		if len(col.Name) > maxname {
			maxname = len(col.Name)
		}
	}
	rowfmt := fmt.Sprintf("%%-%ds | %%v\n", maxname)
	hdrline := strings.Repeat("=", 80-15)

	rows, err := table.Rows(0, nrows)
	if err != nil {
		return err
	}
	for irow := int64(0); rows.Next(); irow++ {
		fmt.Printf("== %s %05d/%05d %s\n", name, irow, nrows, hdrline)
		row := rows.Row()
		for _, col := range cols {
			fmt.Printf(rowfmt, col.Name, row[col.Name])
		}
	}
	return rows.Err()
}
