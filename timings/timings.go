// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package timings reads the timing tables written by the spline tracer.
//
// The tracer appends rows of the form
//
//	model, triangles, trial, num_points, seconds error
//
// where seconds and error are not separated by a comma, so numeric fields
// are taken from the first space separated token of a field.  Rows that
// fail to parse are skipped.
package timings

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Default grouping used for box plots: group by triangles (column 1),
// plot column 3, drop meshes below a million triangles.
const (
	DefaultKeyCol    = 1
	DefaultValueCol  = 3
	DefaultThreshold = 1000000
)

// Type Table holds the raw fields of a timings file.
type Table struct {
	Header []string // nil if the file has none.
	Rows   [][]string
}

// ReadFile reads the timings file at p.
func ReadFile(p string) (*Table, error) {
	f, e := os.Open(p)
	if e != nil {
		return nil, e
	}
	defer f.Close()
	return Read(f)
}

// Read reads a timings table from r.  The first record is taken as a
// header if none of its fields is numeric.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	t := &Table{}
	first := true
	for {
		rec, e := cr.Read()
		if e == io.EOF {
			break
		}
		var pe *csv.ParseError
		if errors.As(e, &pe) {
			continue
		}
		if e != nil {
			return nil, e
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		if first {
			first = false
			if !anyNumeric(rec) {
				t.Header = rec
				continue
			}
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

func anyNumeric(rec []string) bool {
	for _, f := range rec {
		if _, ok := Float(f); ok {
			return true
		}
	}
	return false
}

// Column gives the index of the header column name, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// ColumnIndex resolves s as a header name or else a column index.
func (t *Table) ColumnIndex(s string) int {
	if i := t.Column(s); i >= 0 {
		return i
	}
	if i, e := strconv.Atoi(s); e == nil && i >= 0 {
		return i
	}
	return -1
}

// Float parses the first space separated token of field.
func Float(field string) (float64, bool) {
	toks := strings.Fields(field)
	if len(toks) == 0 {
		return 0, false
	}
	v, e := strconv.ParseFloat(toks[0], 64)
	if e != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Int parses the first space separated token of field as an integer.
func Int(field string) (int, bool) {
	toks := strings.Fields(field)
	if len(toks) == 0 {
		return 0, false
	}
	v, e := strconv.Atoi(toks[0])
	if e != nil {
		return 0, false
	}
	return v, true
}

// Floats gives the values of column col, skipping rows where it does not
// parse.
func (t *Table) Floats(col int) []float64 {
	res := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if col >= len(row) {
			continue
		}
		if v, ok := Float(row[col]); ok {
			res = append(res, v)
		}
	}
	return res
}

// Points gives, for each row where all of cols parse, the values of cols.
func (t *Table) Points(cols ...int) [][]float64 {
	res := make([][]float64, 0, len(t.Rows))
outer:
	for _, row := range t.Rows {
		pt := make([]float64, len(cols))
		for i, c := range cols {
			if c < 0 || c >= len(row) {
				continue outer
			}
			v, ok := Float(row[c])
			if !ok {
				continue outer
			}
			pt[i] = v
		}
		res = append(res, pt)
	}
	return res
}

// Type Group holds the values of rows sharing an integer key.
type Group struct {
	Key    int
	Values []float64
}

// GroupBy groups the values of column valCol by the integer in column
// keyCol, dropping rows whose key is below min.  Groups are ordered by key.
func (t *Table) GroupBy(keyCol, valCol, min int) []Group {
	idx := make(map[int]int)
	var gs []Group
	for _, row := range t.Rows {
		if keyCol >= len(row) || valCol >= len(row) {
			continue
		}
		k, ok := Int(row[keyCol])
		if !ok || k < min {
			continue
		}
		v, ok := Float(row[valCol])
		if !ok {
			continue
		}
		i, ok := idx[k]
		if !ok {
			i = len(gs)
			idx[k] = i
			gs = append(gs, Group{Key: k})
		}
		gs[i].Values = append(gs[i].Values, v)
	}
	sort.Slice(gs, func(i, j int) bool { return gs[i].Key < gs[j].Key })
	return gs
}

// Type Summary gives descriptive statistics of a sample.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Median float64
	Max    float64
}

// Summarize computes the summary of vs.  The zero Summary is returned for
// an empty sample.
func Summarize(vs []float64) Summary {
	if len(vs) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), vs...)
	sort.Float64s(sorted)
	s := Summary{
		N:      len(vs),
		Mean:   stat.Mean(sorted, nil),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil)}
	if len(vs) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}
