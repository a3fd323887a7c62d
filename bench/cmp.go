// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bench

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Times gives the total real, user and system time in seconds the
// tracer spent in run r.
func Times(r *Run) (real float64, user float64, sys float64) {
	sec := float64(time.Second)
	for _, mr := range r.Info.Meshes {
		real += float64(mr.Dur) / sec
		user += float64(mr.UDur) / sec
		sys += float64(mr.SDur) / sec
	}
	return
}

// KindTotal gives the number of meshes of run r with outcome k.
func KindTotal(r *Run, k Kind) int {
	if k == OK {
		return len(r.Result.OK)
	}
	return len(r.Result.Errors[k])
}

// OKPortion gives the portion of meshes in r traced successfully.
func OKPortion(r *Run) float64 {
	if r.Result.NumTests == 0 {
		return 0
	}
	return float64(len(r.Result.OK)) / float64(r.Result.NumTests)
}

var errorKinds = []Kind{AppError, AppTerminated, AppTimeout, OSError}

// Summary produces a summary of all runs in the Dataset d.
func Summary(d *Dataset) string {
	hdr := `
Dataset %s
------------------------------------------------------------------------------------------------------------------
| Run                  | tests  | ok     | error  | term   | timeout | os     |  time      | utime      | stime      |
------------------------------------------------------------------------------------------------------------------`
	rSum := `| %-20s | %-6d | %-6d | %-6d | %-6d | %-7d | %-6d |  %-7.2fs  | %-7.2fs   | %-7.2fs   |
------------------------------------------------------------------------------------------------------------------`
	parts := make([]string, 0, len(d.Runs)+1)
	parts = append(parts, fmt.Sprintf(hdr, filepath.Base(d.Root)))
	for _, r := range d.Runs {
		real, user, sys := Times(r)
		counts := make([]interface{}, 0, 10)
		counts = append(counts, rtrunc(r.Name, 20), r.Result.NumTests, KindTotal(r, OK))
		for _, k := range errorKinds {
			counts = append(counts, KindTotal(r, k))
		}
		counts = append(counts, real, user, sys)
		parts = append(parts, fmt.Sprintf(rSum, counts...))
	}
	return strings.Join(parts, "\n")
}

var kindTicks = map[Kind]string{
	OK:            "✓",
	AppError:      "e",
	AppTerminated: "t",
	AppTimeout:    "T",
	OSError:       "o"}

// Listing produces a listing of all meshes in all runs.
func Listing(d *Dataset) string {
	cols := make([][]string, len(d.Runs)+2)
	nms := make([]string, len(d.Meshes)+1)
	nms[0] = " name             "
	nums := make([]string, len(d.Meshes)+1)
	nums[0] = "id   "
	for i, m := range d.Meshes {
		nms[i+1] = fmt.Sprintf("%-18s", rtrunc(MeshName(m), 18))
		nums[i+1] = fmt.Sprintf("%-5d", i)
	}
	cols[0] = nums
	cols[1] = nms

	for i, run := range d.Runs {
		col := make([]string, len(d.Meshes)+1)
		col[0] = fmt.Sprintf(" %-10s ", rtrunc(run.Name, 10))
		for j, m := range d.Meshes {
			mr := run.Mesh(MeshName(m))
			if mr == nil {
				col[j+1] = fmt.Sprintf(" %s %8s ", "?", "-")
				continue
			}
			ds := float64(mr.Dur) / float64(time.Second)
			col[j+1] = fmt.Sprintf(" %s % 8.2f ", kindTicks[mr.Kind], ds)
		}
		cols[i+2] = col
	}
	rows := make([]string, len(d.Meshes)+1)
	for i := range rows {
		row := make([]string, len(cols))
		for j := range cols {
			row[j] = cols[j][i]
		}
		rows[i] = strings.Join(row, " | ")
	}
	return strings.Join(rows, "|\n") + "|"
}

// Type Cactus contains info necessary for a cactus plot
// of an arbitrary number of runs.
type Cactus struct {
	Runs   []*Run            // runs to plot.
	D      [][]time.Duration // D[i] sorted durations of the meshes run i traced ok.
	MaxDur time.Duration
}

// NewCactus makes a new cactus object for the runs of d.  filt, if
// non-nil, selects the meshes (by name) to show.
func NewCactus(d *Dataset, filt func(name string) bool) *Cactus {
	c := &Cactus{Runs: d.Runs}
	for _, run := range d.Runs {
		ds := make([]time.Duration, 0, len(run.Info.Meshes))
		for _, mr := range run.Info.Meshes {
			if mr.Kind != OK {
				continue
			}
			if filt != nil && !filt(mr.Name) {
				continue
			}
			ds = append(ds, mr.Dur)
			if mr.Dur > c.MaxDur {
				c.MaxDur = mr.Dur
			}
		}
		sort.Slice(ds, func(i, j int) bool { return ds[i] < ds[j] })
		c.D = append(c.D, ds)
	}
	return c
}

// Seconds gives the durations of c in seconds, one slice per run.
func (c *Cactus) Seconds() [][]float64 {
	res := make([][]float64, len(c.D))
	for i, ds := range c.D {
		res[i] = make([]float64, len(ds))
		for j, d := range ds {
			res[i][j] = d.Seconds()
		}
	}
	return res
}

// Utf8 produces a text image of the cactus data suitable
// for a utf8 monospaced font terminal: x is the number of
// meshes traced, y the time to trace the x'th fastest.
func (c *Cactus) Utf8(N int) string {
	ticks := []rune("¤♠☆Ϟ★Ω▽◇✠♡☼·")
	grid := make([][]rune, N)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", 2*N))
	}
	maxLen := 0
	for _, ds := range c.D {
		if len(ds) > maxLen {
			maxLen = len(ds)
		}
	}
	for ri, ds := range c.D {
		tick := ticks[ri%len(ticks)]
		for j, dur := range ds {
			x := 0
			if maxLen > 1 {
				x = j * (N - 1) / (maxLen - 1)
			}
			y := 0
			if c.MaxDur > 0 {
				y = int(float64(dur) / float64(c.MaxDur) * float64(N-1))
			}
			cell := &grid[N-1-y][2*x]
			if *cell == ' ' || rand.Intn(len(c.D)) == ri {
				*cell = tick
			}
		}
	}
	mds := fmt.Sprintf("%.2fs", c.MaxDur.Seconds())
	pad := strings.Repeat(" ", len(mds))
	lines := make([]string, N)
	for i, row := range grid {
		lines[i] = fmt.Sprintf("%s|%s", pad, string(row))
	}
	lines[0] = fmt.Sprintf("%s|%s", mds, string(grid[0]))
	lines[N-1] = fmt.Sprintf("%s0s|%s", strings.Repeat(" ", len(mds)-2), string(grid[N-1]))

	prefix := strings.Repeat(" ", len(mds)+1)
	legend := make([]string, 0, len(c.Runs))
	for i, r := range c.Runs {
		legend = append(legend, fmt.Sprintf("%s\t%c - %s\n", prefix, ticks[i%len(ticks)], r.Name))
	}
	delim := strings.Repeat("-", 2*N)
	sx := fmt.Sprintf("0%s%-5d", strings.Repeat(" ", 2*N+1-5), maxLen)
	return fmt.Sprintf("%s\n%s%s\n%s%s\n%s", strings.Join(lines, "\n"), prefix, delim, prefix, sx, strings.Join(legend, ""))
}

// Type Scatter contains info necessary for a scatter plot
// of 2 runs.
type Scatter struct {
	Runs [2]*Run
	Xs   []time.Duration // Xs[i], Ys[i] gives point for run 0,1 on mesh i.
	Ys   []time.Duration
}

// NewScatter creates a new Scatter object for a pair of runs r1, r2 over
// the meshes both traced ok.
func NewScatter(r1, r2 *Run) *Scatter {
	s := &Scatter{}
	s.Runs[0] = r1
	s.Runs[1] = r2
	for _, a := range r1.Info.Meshes {
		if a.Kind != OK {
			continue
		}
		b := r2.Mesh(a.Name)
		if b == nil || b.Kind != OK {
			continue
		}
		s.Xs = append(s.Xs, a.Dur)
		s.Ys = append(s.Ys, b.Dur)
	}
	return s
}

// Utf8 returns a text scatter plot with 2n columns and n rows,
// making up for the width/height ratio of most monospaced fonts.
func (s *Scatter) Utf8(n int) string {
	grid := make([][]rune, n)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", 2*n))
		grid[i][2*(n-1-i)] = '/'
	}
	maxDur := time.Duration(0)
	for i := range s.Xs {
		if s.Xs[i] > maxDur {
			maxDur = s.Xs[i]
		}
		if s.Ys[i] > maxDur {
			maxDur = s.Ys[i]
		}
	}
	for i, xd := range s.Xs {
		yd := s.Ys[i]
		xi, yi := 0, 0
		if maxDur > 0 {
			xi = int(float64(xd) / float64(maxDur) * float64(n-1))
			yi = int(float64(yd) / float64(maxDur) * float64(n-1))
		}
		c := '☆'
		if xi < yi || (xi == yi && rand.Intn(2) == 1) {
			c = '★'
		}
		grid[n-1-yi][2*xi] = c
	}
	lines := make([]string, 0, n+1)
	for _, row := range grid {
		lines = append(lines, string(row))
	}
	lines = append(lines, strings.Repeat("-", 2*n))
	legend := fmt.Sprintf("\t%s - %s wins\n\t%s - %s wins\n", "★", s.Runs[0].Name,
		"☆", s.Runs[1].Name)
	return fmt.Sprintf("%s\n%s", strings.Join(lines, "\n"), legend)
}

func rtrunc(s string, n int) string {
	ct := utf8.RuneCountInString(s)
	j := 0
	for i := range s {
		if j >= ct-n {
			return s[i:]
		}
		j++
	}
	return s
}
