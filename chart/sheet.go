// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Sheet tiles the png images into a contact sheet with cols columns of
// cell x cell pixel thumbnails and writes it as png to file.  Images that
// cannot be decoded are logged and skipped.
func Sheet(images []string, cols, cell int, file string) error {
	if cols <= 0 || cell <= 0 {
		return fmt.Errorf("bad sheet geometry %d columns of %dpx", cols, cell)
	}
	thumbs := make([]image.Image, 0, len(images))
	for _, p := range images {
		img, e := decodePNG(p)
		if e != nil {
			log.Printf("skipping %s: %s\n", p, e)
			continue
		}
		thumbs = append(thumbs, img)
	}
	if len(thumbs) == 0 {
		return fmt.Errorf("no images for sheet")
	}
	if cols > len(thumbs) {
		cols = len(thumbs)
	}
	rows := (len(thumbs) + cols - 1) / cols
	dst := image.NewRGBA(image.Rect(0, 0, cols*cell, rows*cell))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	for i, img := range thumbs {
		x0 := (i % cols) * cell
		y0 := (i / cols) * cell
		xdraw.CatmullRom.Scale(dst, fit(img.Bounds(), image.Rect(x0, y0, x0+cell, y0+cell)), img, img.Bounds(), xdraw.Over, nil)
	}
	f, e := os.Create(file)
	if e != nil {
		return e
	}
	if e := png.Encode(f, dst); e != nil {
		f.Close()
		return e
	}
	return f.Close()
}

// fit centers a rectangle with the aspect ratio of src in cell.
func fit(src, cell image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	cw, ch := cell.Dx(), cell.Dy()
	if sw == 0 || sh == 0 {
		return cell
	}
	w, h := cw, sh*cw/sw
	if h > ch {
		w, h = sw*ch/sh, ch
	}
	x := cell.Min.X + (cw-w)/2
	y := cell.Min.Y + (ch-h)/2
	return image.Rect(x, y, x+w, y+h)
}

func decodePNG(p string) (image.Image, error) {
	f, e := os.Open(p)
	if e != nil {
		return nil, e
	}
	defer f.Close()
	return png.Decode(f)
}
