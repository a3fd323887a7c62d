// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package timings

import (
	"math"
	"strings"
	"testing"
)

const sample = `model,triangles,trial,num_points,seconds,error
meshes/a.ply, 2000000, 0, 10, 0.500000000000000 
meshes/a.ply, 2000000, 1, 12, 0.700000000000000 
meshes/b.ply, 3000000, 0, 20, 1.000000000000000 path too short
meshes/c.ply, 500, 0, 7, 0.100000000000000 
meshes/d.ply, not-a-number, 0, 7, 0.1
"broken
`

func TestRead(t *testing.T) {
	tab, e := Read(strings.NewReader(sample))
	if e != nil {
		t.Fatal(e)
	}
	if len(tab.Header) != 6 || tab.Column("num_points") != 3 {
		t.Errorf("header %v", tab.Header)
	}
	if tab.ColumnIndex("seconds") != 4 || tab.ColumnIndex("2") != 2 || tab.ColumnIndex("nope") != -1 {
		t.Errorf("column index")
	}
	secs := tab.Floats(4)
	if len(secs) != 5 || secs[2] != 1.0 {
		t.Errorf("seconds %v", secs)
	}
	pts := tab.Points(1, 3, 4)
	if len(pts) != 4 {
		t.Errorf("points %v", pts)
	}
}

func TestReadNoHeader(t *testing.T) {
	tab, e := Read(strings.NewReader("x, 1, 2\ny, 3, 4\n"))
	if e != nil {
		t.Fatal(e)
	}
	if tab.Header != nil || len(tab.Rows) != 2 {
		t.Errorf("got %+v", tab)
	}
}

func TestGroupBy(t *testing.T) {
	tab, e := Read(strings.NewReader(sample))
	if e != nil {
		t.Fatal(e)
	}
	gs := tab.GroupBy(DefaultKeyCol, DefaultValueCol, DefaultThreshold)
	if len(gs) != 2 {
		t.Fatalf("groups %v", gs)
	}
	if gs[0].Key != 2000000 || len(gs[0].Values) != 2 || gs[0].Values[1] != 12 {
		t.Errorf("group 0 %v", gs[0])
	}
	if gs[1].Key != 3000000 || gs[1].Values[0] != 20 {
		t.Errorf("group 1 %v", gs[1])
	}
	if all := tab.GroupBy(1, 3, 0); len(all) != 3 {
		t.Errorf("unfiltered groups %v", all)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{4, 1, 3, 2})
	if s.N != 4 || s.Mean != 2.5 || s.Min != 1 || s.Max != 4 || s.Median != 2 {
		t.Errorf("got %+v", s)
	}
	if math.Abs(s.StdDev-1.2909944) > 1e-6 {
		t.Errorf("std dev %f", s.StdDev)
	}
	if z := Summarize(nil); z.N != 0 {
		t.Errorf("empty %+v", z)
	}
}

func TestFloat(t *testing.T) {
	if v, ok := Float("0.25 some error"); !ok || v != 0.25 {
		t.Errorf("got %v %v", v, ok)
	}
	if _, ok := Float(""); ok {
		t.Errorf("empty parsed")
	}
	if _, ok := Int("1.5"); ok {
		t.Errorf("int parsed float")
	}
}
