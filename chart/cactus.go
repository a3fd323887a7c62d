// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package chart

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Type Series is a named sample.
type Series struct {
	Name   string
	Values []float64
}

// Cactus writes a cactus plot of the series to file: for each series,
// the k'th point is the k'th smallest value.
func Cactus(series []Series, l Labels, file string) error {
	if len(series) == 0 {
		return fmt.Errorf("no series to plot")
	}
	p := newPlot(l)
	p.Legend.Top = true
	p.Legend.Left = true
	n := 0
	for i, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		n++
		vs := append([]float64(nil), s.Values...)
		sort.Float64s(vs)
		xys := make(plotter.XYs, len(vs))
		for j, v := range vs {
			xys[j].X = float64(j + 1)
			xys[j].Y = v
		}
		line, pts, e := plotter.NewLinePoints(xys)
		if e != nil {
			return fmt.Errorf("series %s: %w", s.Name, e)
		}
		line.LineStyle.Color = plotutil.Color(i)
		pts.GlyphStyle.Color = plotutil.Color(i)
		pts.GlyphStyle.Shape = plotutil.Shape(i)
		pts.GlyphStyle.Radius = vg.Points(2)
		p.Add(line, pts)
		p.Legend.Add(s.Name, line, pts)
	}
	if n == 0 {
		return fmt.Errorf("all series empty")
	}
	return p.Save(Width, Height, file)
}
