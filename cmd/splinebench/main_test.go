// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"strings"
	"testing"

	"github.com/giacomonazzaro/yocto-gl/bench"
	"github.com/giacomonazzaro/yocto-gl/timings"
)

func TestValueCol(t *testing.T) {
	tab, e := timings.Read(strings.NewReader("model,triangles,num_points,bezier(s)\nm, 1, 2, 0.5\n"))
	if e != nil {
		t.Fatal(e)
	}
	kind, col := "scatter", ""
	o := &plotOptsT{Kind: &kind, Col: &col}
	if i, nm := o.valueCol(tab); i != 3 || nm != "bezier(s)" {
		t.Errorf("scatter: got %d %s", i, nm)
	}
	kind = "box"
	if i, nm := o.valueCol(tab); i != timings.DefaultValueCol || nm != "bezier(s)" {
		t.Errorf("box: got %d %s", i, nm)
	}
	col = "num_points"
	if i, _ := o.valueCol(tab); i != 2 {
		t.Errorf("explicit: got %d", i)
	}
}

func TestRunFilt(t *testing.T) {
	runs := "dc-*,lr-uniform-4"
	co := &cmpOptsT{Runs: &runs}
	f := co.runFilt()
	for name, want := range map[string]bool{
		"dc-uniform-4":  true,
		"lr-uniform-4":  true,
		"lr-adaptive-4": false} {
		if got := f(&bench.Run{Name: name}); got != want {
			t.Errorf("%s: got %v", name, got)
		}
	}
}
