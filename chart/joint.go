// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// JointBins is the number of bins of the marginal histograms.
var JointBins = 30

var margColor = color.NRGBA{G: 128, A: 77}

// Type Point is a joint plot sample.
type Point struct {
	X, Y float64
	Hue  float64
}

// Joint writes a joint grid to file: a log-log scatter of the points
// coloured by Hue, a histogram of X above it and a sideways histogram of
// Y to its right.  Bins are uniform in log10 and each marginal shares the
// scatter's range on its value axis.  Points with a non positive
// coordinate are dropped.
func Joint(pts []Point, l Labels, file string) error {
	xys := make(plotter.XYs, 0, len(pts))
	hues := make([]float64, 0, len(pts))
	lx := make(plotter.Values, 0, len(pts))
	ly := make(plotter.Values, 0, len(pts))
	for _, pt := range pts {
		if pt.X <= 0 || pt.Y <= 0 {
			continue
		}
		xys = append(xys, plotter.XY{X: pt.X, Y: pt.Y})
		hues = append(hues, pt.Hue)
		lx = append(lx, math.Log10(pt.X))
		ly = append(ly, math.Log10(pt.Y))
	}
	if len(xys) == 0 {
		return fmt.Errorf("no positive points to plot")
	}

	joint, e := jointScatter(xys, hues, l)
	if e != nil {
		return e
	}
	top, e := marginal(lx, joint.X, false)
	if e != nil {
		return e
	}
	right, e := marginal(ly, joint.Y, true)
	if e != nil {
		return e
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(file)), ".")
	c, e := draw.NewFormattedCanvas(Height, Height, format)
	if e != nil {
		return e
	}
	dc := draw.New(c)
	tiles := draw.Tiles{
		Rows:      2,
		Cols:      2,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4)}
	top.Draw(tiles.At(dc, 0, 0))
	joint.Draw(tiles.At(dc, 0, 1))
	right.Draw(tiles.At(dc, 1, 1))

	f, e := os.Create(file)
	if e != nil {
		return e
	}
	if _, e := c.WriteTo(f); e != nil {
		f.Close()
		return e
	}
	return f.Close()
}

func jointScatter(xys plotter.XYs, hues []float64, l Labels) (*plot.Plot, error) {
	p := newPlot(l)
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, h := range hues {
		lo = math.Min(lo, h)
		hi = math.Max(hi, h)
	}
	if hi <= lo {
		hi = lo + 1
	}
	cm := moreland.ExtendedKindlmann()
	cm.SetMin(lo)
	cm.SetMax(hi)

	sc, e := plotter.NewScatter(xys)
	if e != nil {
		return nil, e
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		gs := draw.GlyphStyle{Radius: vg.Points(2), Shape: draw.CircleGlyph{}}
		c, e := cm.At(hues[i])
		if e != nil {
			c = pointColor
		}
		gs.Color = c
		return gs
	}
	p.Add(sc)
	return p, nil
}

// marginal histograms the log10 values vs into bins drawn back on the
// log scale of axis, counts growing rightwards if side is set and upwards
// otherwise.
func marginal(vs plotter.Values, axis plot.Axis, side bool) (*plot.Plot, error) {
	h, e := plotter.NewHist(vs, JointBins)
	if e != nil {
		return nil, e
	}
	p := plot.New()
	val, cnt := &p.X, &p.Y
	if side {
		val, cnt = &p.Y, &p.X
	}
	for _, b := range h.Bins {
		lo, hi := math.Pow(10, b.Min), math.Pow(10, b.Max)
		rect := plotter.XYs{{X: lo, Y: 0}, {X: hi, Y: 0}, {X: hi, Y: b.Weight}, {X: lo, Y: b.Weight}}
		if side {
			for i := range rect {
				rect[i].X, rect[i].Y = rect[i].Y, rect[i].X
			}
		}
		poly, e := plotter.NewPolygon(rect)
		if e != nil {
			return nil, e
		}
		poly.Color = margColor
		poly.LineStyle.Width = 0
		p.Add(poly)
	}
	val.Scale = plot.LogScale{}
	val.Tick.Marker = plot.LogTicks{Prec: -1}
	val.Min, val.Max = axis.Min, axis.Max
	cnt.Min = 0
	cnt.Label.Text = "count"
	return p, nil
}
