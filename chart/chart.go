// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package chart plots spline tracer timings with gonum/plot.
//
// Every plot is written to a file whose format is chosen by extension
// (png, svg, pdf, ...).
package chart

import (
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/giacomonazzaro/yocto-gl/timings"
)

// Default plot size.
var (
	Width  = 8 * vg.Inch
	Height = 6 * vg.Inch
)

var pointColor = color.RGBA{R: 0, G: 128, B: 255, A: 255}

// Type Labels titles a plot.
type Labels struct {
	Title string
	X     string
	Y     string
}

func newPlot(l Labels) *plot.Plot {
	p := plot.New()
	p.Title.Text = l.Title
	p.X.Label.Text = l.X
	p.Y.Label.Text = l.Y
	return p
}

// Box writes a box plot with one box per group to file.
func Box(groups []timings.Group, l Labels, file string) error {
	if len(groups) == 0 {
		return fmt.Errorf("no groups to plot")
	}
	p := newPlot(l)
	names := make([]string, len(groups))
	for i, g := range groups {
		b, e := plotter.NewBoxPlot(vg.Points(20), float64(i), plotter.Values(g.Values))
		if e != nil {
			return fmt.Errorf("box %d: %w", g.Key, e)
		}
		p.Add(b)
		names[i] = strconv.Itoa(g.Key)
	}
	p.NominalX(names...)
	return p.Save(Width, Height, file)
}

func indexed(vs []float64) plotter.XYs {
	xys := make(plotter.XYs, len(vs))
	for i, v := range vs {
		xys[i].X = float64(i)
		xys[i].Y = v
	}
	return xys
}

// Line writes a line plot of vs against their index to file.
func Line(vs []float64, l Labels, file string) error {
	if len(vs) == 0 {
		return fmt.Errorf("no values to plot")
	}
	p := newPlot(l)
	line, e := plotter.NewLine(indexed(vs))
	if e != nil {
		return e
	}
	line.LineStyle.Color = pointColor
	p.Add(line)
	return p.Save(Width, Height, file)
}

// Scatter writes a scatter plot of vs against their index to file, with
// 1 point glyphs.
func Scatter(vs []float64, l Labels, file string) error {
	if len(vs) == 0 {
		return fmt.Errorf("no values to plot")
	}
	p := newPlot(l)
	sc, e := plotter.NewScatter(indexed(vs))
	if e != nil {
		return e
	}
	sc.GlyphStyle = draw.GlyphStyle{
		Color:  pointColor,
		Radius: vg.Points(1),
		Shape:  draw.CircleGlyph{}}
	p.Add(sc)
	return p.Save(Width, Height, file)
}
