// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// fitsview serves a read-only HTTP view of a FITS file: its HDU list,
// each HDU's header cards, and a PNG rendering of any image HDU.
// Grounded on the route/handler shape of mlnoga/nightlight's
// internal/rest.Serve (gin.Default, grouped routes, gin.H JSON bodies).
package main

import (
	"flag"
	"fmt"
	"image/png"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sbinet-labs/gofits"
)

func main() {
	var addr string
	flag.StringVar(&addr, "addr", ":8080", "address to listen on")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fitsview [-addr host:port] filename\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	f, err := fits.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "**error** %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	r := gin.Default()
	api := r.Group("/api/v1")
	{
		api.GET("/hdus", listHDUs(f))
		api.GET("/hdus/:i/header", hduHeader(f))
		api.GET("/hdus/:i/image.png", hduImagePNG(f))
	}
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "**error** %v\n", err)
		os.Exit(1)
	}
}

func hduByIndex(c *gin.Context, f *fits.File) (fits.HDU, int, bool) {
	i, err := strconv.Atoi(c.Param("i"))
	if err != nil || i < 0 || i >= f.NumHDUs() {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such HDU"})
		return nil, 0, false
	}
	return f.HDU(i), i, true
}

func listHDUs(f *fits.File) gin.HandlerFunc {
	return func(c *gin.Context) {
		type summary struct {
			Index   int    `json:"index"`
			Type    string `json:"type"`
			Name    string `json:"name"`
			Version int    `json:"version"`
		}
		out := make([]summary, 0, f.NumHDUs())
		for i, hdu := range f.HDUs() {
			out = append(out, summary{Index: i, Type: hdu.Type().String(), Name: hdu.Name(), Version: hdu.Version()})
		}
		c.JSON(http.StatusOK, gin.H{"hdus": out})
	}
}

func hduHeader(f *fits.File) gin.HandlerFunc {
	return func(c *gin.Context) {
		hdu, _, ok := hduByIndex(c, f)
		if !ok {
			return
		}
		hdr := hdu.Header()
		type card struct {
			Name    string      `json:"name"`
			Value   interface{} `json:"value"`
			Comment string      `json:"comment"`
		}
		cards := make([]card, 0, hdr.NumCards())
		for _, key := range hdr.Keys() {
			k := hdr.Card(hdr.Index(key))
			cards = append(cards, card{Name: k.Name, Value: k.Value, Comment: k.Comment})
		}
		c.JSON(http.StatusOK, gin.H{"cards": cards})
	}
}

func hduImagePNG(f *fits.File) gin.HandlerFunc {
	return func(c *gin.Context) {
		hdu, _, ok := hduByIndex(c, f)
		if !ok {
			return
		}
		img, ok := hdu.(fits.ImageData)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "not an image HDU"})
			return
		}
		rendered, err := img.Image()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Writer.Header().Set("Content-Type", "image/png")
		c.Writer.WriteHeader(http.StatusOK)
		if err := png.Encode(c.Writer, rendered); err != nil {
			fits.Logger("fitsview: png encode failed: %v", err)
		}
	}
}
