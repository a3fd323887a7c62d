// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package chart

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/giacomonazzaro/yocto-gl/timings"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

func nonEmpty(t *testing.T, p string) {
	t.Helper()
	st, e := os.Stat(p)
	if e != nil {
		t.Fatal(e)
	}
	if st.Size() == 0 {
		t.Errorf("%s is empty", p)
	}
}

func TestBox(t *testing.T) {
	gs := []timings.Group{
		{Key: 1000000, Values: []float64{1, 2, 3, 4}},
		{Key: 2000000, Values: []float64{2, 3, 5, 8, 13}}}
	p := filepath.Join(t.TempDir(), "box.png")
	if e := Box(gs, Labels{Title: "box", X: "triangles", Y: "points"}, p); e != nil {
		t.Fatal(e)
	}
	nonEmpty(t, p)
	if e := Box(nil, Labels{}, p); e == nil {
		t.Errorf("no error for empty groups")
	}
}

func TestLineScatter(t *testing.T) {
	vs := []float64{0.5, 0.25, 0.75, 1}
	dir := t.TempDir()
	lp := filepath.Join(dir, "line.svg")
	if e := Line(vs, Labels{Title: "bezier(s)"}, lp); e != nil {
		t.Fatal(e)
	}
	nonEmpty(t, lp)
	sp := filepath.Join(dir, "scatter.png")
	if e := Scatter(vs, Labels{Title: "bezier(s)"}, sp); e != nil {
		t.Fatal(e)
	}
	nonEmpty(t, sp)
	if e := Scatter(nil, Labels{}, sp); e == nil {
		t.Errorf("no error for no values")
	}
}

func TestJoint(t *testing.T) {
	var pts []Point
	for i := 1; i <= 50; i++ {
		x := float64(i * 1000)
		pts = append(pts, Point{X: x, Y: float64(i*i + 3), Hue: math.Log(float64(i) / 10)})
	}
	pts = append(pts, Point{X: 0, Y: 1})
	p := filepath.Join(t.TempDir(), "joint.png")
	if e := Joint(pts, Labels{X: "Triangles", Y: "Length"}, p); e != nil {
		t.Fatal(e)
	}
	nonEmpty(t, p)
	if e := Joint([]Point{{X: -1, Y: 1}}, Labels{}, p); e == nil {
		t.Errorf("no error for non positive points")
	}
}

func TestJointMarginals(t *testing.T) {
	xys := plotter.XYs{{X: 10, Y: 2}, {X: 100, Y: 20}, {X: 1000, Y: 2000}}
	joint, e := jointScatter(xys, []float64{0, 1, 2}, Labels{})
	if e != nil {
		t.Fatal(e)
	}
	ly := plotter.Values{math.Log10(2), math.Log10(20), math.Log10(2000)}
	right, e := marginal(ly, joint.Y, true)
	if e != nil {
		t.Fatal(e)
	}
	if right.Y.Min != joint.Y.Min || right.Y.Max != joint.Y.Max {
		t.Errorf("side marginal spans %g..%g, scatter %g..%g", right.Y.Min, right.Y.Max, joint.Y.Min, joint.Y.Max)
	}
	if _, ok := right.Y.Scale.(plot.LogScale); !ok {
		t.Errorf("side marginal value axis not logarithmic")
	}
	if right.X.Min != 0 || right.X.Max < 1 {
		t.Errorf("side marginal counts %g..%g", right.X.Min, right.X.Max)
	}
	lx := plotter.Values{1, 2, 3}
	top, e := marginal(lx, joint.X, false)
	if e != nil {
		t.Fatal(e)
	}
	if top.X.Min != joint.X.Min || top.X.Max != joint.X.Max || top.Y.Min != 0 {
		t.Errorf("top marginal x %g..%g y from %g", top.X.Min, top.X.Max, top.Y.Min)
	}
}

func TestCactus(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cactus.png")
	ss := []Series{
		{Name: "dc-uniform-4", Values: []float64{3, 1, 2}},
		{Name: "lr-uniform-4", Values: []float64{0.5, 4}},
		{Name: "empty"}}
	if e := Cactus(ss, Labels{Title: "cactus"}, p); e != nil {
		t.Fatal(e)
	}
	nonEmpty(t, p)
	if e := Cactus([]Series{{Name: "empty"}}, Labels{}, p); e == nil {
		t.Errorf("no error for empty series")
	}
}

func writePNG(t *testing.T, p string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	f, e := os.Create(p)
	if e != nil {
		t.Fatal(e)
	}
	defer f.Close()
	if e := png.Encode(f, img); e != nil {
		t.Fatal(e)
	}
}

func TestSheet(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	c := filepath.Join(dir, "c.png")
	writePNG(t, a, 40, 20)
	writePNG(t, b, 20, 40)
	writePNG(t, c, 30, 30)
	if e := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("nope"), 0644); e != nil {
		t.Fatal(e)
	}
	out := filepath.Join(dir, "sheet.png")
	if e := Sheet([]string{a, b, filepath.Join(dir, "bad.png"), c}, 2, 16, out); e != nil {
		t.Fatal(e)
	}
	f, e := os.Open(out)
	if e != nil {
		t.Fatal(e)
	}
	defer f.Close()
	img, e := png.Decode(f)
	if e != nil {
		t.Fatal(e)
	}
	if got := img.Bounds(); got.Dx() != 32 || got.Dy() != 32 {
		t.Errorf("sheet bounds %v", got)
	}
	if e := Sheet(nil, 2, 16, out); e == nil {
		t.Errorf("no error for no images")
	}
}

func TestFit(t *testing.T) {
	r := fit(image.Rect(0, 0, 40, 20), image.Rect(0, 0, 16, 16))
	if r != image.Rect(0, 4, 16, 12) {
		t.Errorf("got %v", r)
	}
	r = fit(image.Rect(0, 0, 20, 40), image.Rect(16, 0, 32, 16))
	if r != image.Rect(20, 0, 28, 16) {
		t.Errorf("got %v", r)
	}
}
