// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/giacomonazzaro/yocto-gl/bench"
	"github.com/giacomonazzaro/yocto-gl/chart"
	"github.com/giacomonazzaro/yocto-gl/timings"
)

func configs(s string) []bench.Config {
	cs, e := bench.ParseConfigs(s)
	if e != nil {
		fmt.Fprintf(os.Stderr, "bad -algs: %s\n", e)
		os.Exit(1)
	}
	return cs
}

var traceFlags = flag.NewFlagSet("trace", flag.ExitOnError)

type traceOptsT struct {
	Bin  *string
	Algs *string
	Dur  *time.Duration
	Del  *string
}

var traceOpts = &traceOptsT{
	Bin:  traceFlags.String("bin", bench.DefaultTracer, "path to the spline tracer"),
	Algs: traceFlags.String("algs", "dc-uniform:4", "comma separated algorithm:subdivisions list"),
	Dur:  traceFlags.Duration("dur", bench.DefaultTraceTimeout, "max per-mesh duration"),
	Del:  traceFlags.String("d", "", "delete the named configuration directory")}

func (o *traceOptsT) Run(ctx context.Context, flags *flag.FlagSet) {
	if *o.Del != "" {
		o.delRuns(flags)
		return
	}
	cs := configs(*o.Algs)
	tr := &bench.Tracer{
		Bin:      *o.Bin,
		Timeout:  *o.Dur,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Progress: os.Stdout}
	for _, dir := range flags.Args() {
		start := time.Now()
		res, e := tr.TraceAll(ctx, dir, cs)
		for i, r := range res {
			log.Printf("%s/%s: %d tests, %d errors\n", dir, cs[i], r.NumTests, r.NumErrors)
		}
		if e != nil {
			log.Printf("error tracing %s: %s\n", dir, e)
			if ctx.Err() != nil {
				return
			}
			continue
		}
		log.Printf("traced %s in %s\n", dir, time.Since(start))
	}
}

func (o *traceOptsT) delRuns(flags *flag.FlagSet) {
	for _, dir := range flags.Args() {
		d, e := bench.OpenDataset(dir)
		if e != nil {
			fmt.Fprintf(os.Stderr, "cannot open dataset %s: %s\n", dir, e)
			continue
		}
		if e := d.RemoveRun(*o.Del); e != nil {
			fmt.Fprintf(os.Stderr, "error removing %s from %s: %s\n", *o.Del, dir, e)
		}
	}
}

var renderFlags = flag.NewFlagSet("render", flag.ExitOnError)

type renderOptsT struct {
	Bin     *string
	Algs    *string
	Samples *int
	Dur     *time.Duration
	Sheet   *bool
	Cols    *int
	Cell    *int
}

var renderOpts = &renderOptsT{
	Bin:     renderFlags.String("bin", bench.DefaultRenderer, "path to the scene renderer"),
	Algs:    renderFlags.String("algs", "dc-uniform:4", "comma separated algorithm:subdivisions list"),
	Samples: renderFlags.Int("samples", bench.DefaultSamples, "samples per pixel"),
	Dur:     renderFlags.Duration("dur", bench.DefaultRenderTimeout, "max per-scene duration"),
	Sheet:   renderFlags.Bool("sheet", false, "tile the rendered images into images/sheet.png"),
	Cols:    renderFlags.Int("cols", 8, "contact sheet columns"),
	Cell:    renderFlags.Int("cell", 256, "contact sheet thumbnail size in pixels")}

func (o *renderOptsT) Run(ctx context.Context, flags *flag.FlagSet) {
	cs := configs(*o.Algs)
	r := &bench.Renderer{
		Bin:      *o.Bin,
		Samples:  *o.Samples,
		Timeout:  *o.Dur,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Progress: os.Stdout}
	for _, dir := range flags.Args() {
		if _, e := r.RenderAll(ctx, dir, cs); e != nil {
			log.Printf("error rendering %s: %s\n", dir, e)
			return
		}
		if !*o.Sheet {
			continue
		}
		for _, c := range cs {
			o.sheet(bench.ImagesDir(filepath.Join(dir, c.String())))
		}
	}
}

func (o *renderOptsT) sheet(dir string) {
	out := filepath.Join(dir, "sheet.png")
	ps, e := filepath.Glob(filepath.Join(dir, "*.png"))
	if e != nil {
		log.Printf("error listing %s: %s\n", dir, e)
		return
	}
	imgs := ps[:0]
	for _, p := range ps {
		if p != out {
			imgs = append(imgs, p)
		}
	}
	if len(imgs) == 0 {
		return
	}
	if e := chart.Sheet(imgs, *o.Cols, *o.Cell, out); e != nil {
		log.Printf("error writing %s: %s\n", out, e)
		return
	}
	log.Printf("wrote %s\n", out)
}

var oneFlags = flag.NewFlagSet("one", flag.ExitOnError)

type oneOptsT struct {
	Tracer   *string
	Renderer *string
	Algs     *string
	Samples  *int
	Dur      *time.Duration
}

var oneOpts = &oneOptsT{
	Tracer:   oneFlags.String("tracer", bench.DefaultTracer, "path to the spline tracer"),
	Renderer: oneFlags.String("renderer", bench.DefaultRenderer, "path to the scene renderer"),
	Algs:     oneFlags.String("algs", "lr-uniform:4", "comma separated algorithm:subdivisions list"),
	Samples:  oneFlags.Int("samples", bench.DefaultCheckSamples, "samples per pixel"),
	Dur:      oneFlags.Duration("dur", 600*time.Second, "max duration of each tracer and renderer invocation")}

func (o *oneOptsT) Run(ctx context.Context, flags *flag.FlagSet) {
	if flags.NArg() != 3 {
		oneFlags.Usage()
		os.Exit(1)
	}
	dir, mesh := flags.Arg(0), flags.Arg(1)
	trial, e := strconv.Atoi(flags.Arg(2))
	if e != nil {
		fmt.Fprintf(os.Stderr, "bad trial %q: %s\n", flags.Arg(2), e)
		os.Exit(1)
	}
	tr := &bench.Tracer{Bin: *o.Tracer, Timeout: *o.Dur, Stdout: os.Stdout, Stderr: os.Stderr, Progress: os.Stdout}
	r := &bench.Renderer{Bin: *o.Renderer, Samples: *o.Samples, Timeout: *o.Dur, Stdout: os.Stdout, Stderr: os.Stderr, Progress: os.Stdout}
	cks, e := tr.Check(ctx, r, dir, mesh, trial, configs(*o.Algs))
	for _, ck := range cks {
		if ck.Err != nil {
			log.Printf("%s: tracer did not start: %s\n", ck.Config.Algorithm, ck.Err)
			continue
		}
		msg := fmt.Sprintf("%s: tracer exit %d in %s", ck.Config.Algorithm, ck.Trace.Code, ck.Trace.Dur)
		if ck.Render != nil && ck.Render.Err == nil {
			msg += fmt.Sprintf(", renderer exit %d in %s", ck.Render.Exit.Code, ck.Render.Exit.Dur)
		}
		log.Println(msg)
	}
	if e != nil {
		log.Printf("error: %s\n", e)
	}
}

var plotFlags = flag.NewFlagSet("plot", flag.ExitOnError)

type plotOptsT struct {
	Kind  *string
	Out   *string
	Title *string
	Key   *string
	Col   *string
	Min   *int
	X     *string
	Y     *string
	Hue   *string
}

var plotOpts = &plotOptsT{
	Kind:  plotFlags.String("kind", "scatter", "box, line, scatter, joint or summary"),
	Out:   plotFlags.String("o", "", "output file, format by extension (default <input>-<kind>.png)"),
	Title: plotFlags.String("title", "", "plot title (default input name)"),
	Key:   plotFlags.String("key", strconv.Itoa(timings.DefaultKeyCol), "box plot grouping column, name or index"),
	Col:   plotFlags.String("col", "", "value column, name or index (default 3 for box, else bezier(s) or seconds)"),
	Min:   plotFlags.Int("min", timings.DefaultThreshold, "box plot: drop rows whose key is below this"),
	X:     plotFlags.String("x", "triangles", "joint plot x column"),
	Y:     plotFlags.String("y", "num_points", "joint plot y column"),
	Hue:   plotFlags.String("hue", "seconds", "joint plot colour column, log scaled")}

func (o *plotOptsT) Run(flags *flag.FlagSet) {
	for _, in := range flags.Args() {
		tab, e := timings.ReadFile(in)
		if e != nil {
			log.Printf("error reading %s: %s\n", in, e)
			continue
		}
		out := *o.Out
		if out == "" {
			out = strings.TrimSuffix(in, filepath.Ext(in)) + "-" + *o.Kind + ".png"
		}
		if e := o.plot(tab, in, out); e != nil {
			log.Printf("error plotting %s: %s\n", in, e)
			continue
		}
		if *o.Kind != "summary" {
			log.Printf("wrote %s\n", out)
		}
	}
}

func (o *plotOptsT) valueCol(tab *timings.Table) (int, string) {
	if *o.Col != "" {
		return tab.ColumnIndex(*o.Col), *o.Col
	}
	if *o.Kind == "box" {
		return timings.DefaultValueCol, headerName(tab, timings.DefaultValueCol)
	}
	for _, nm := range []string{"bezier(s)", "seconds"} {
		if i := tab.Column(nm); i >= 0 {
			return i, nm
		}
	}
	return 4, headerName(tab, 4)
}

func headerName(tab *timings.Table, i int) string {
	if i >= 0 && i < len(tab.Header) {
		return tab.Header[i]
	}
	return strconv.Itoa(i)
}

func (o *plotOptsT) plot(tab *timings.Table, in, out string) error {
	title := *o.Title
	if title == "" {
		title = filepath.Base(in)
	}
	col, colName := o.valueCol(tab)
	if col < 0 {
		return fmt.Errorf("no column %q", *o.Col)
	}
	switch *o.Kind {
	case "box":
		key := tab.ColumnIndex(*o.Key)
		if key < 0 {
			return fmt.Errorf("no column %q", *o.Key)
		}
		gs := tab.GroupBy(key, col, *o.Min)
		return chart.Box(gs, chart.Labels{Title: title, X: headerName(tab, key), Y: colName}, out)
	case "line":
		return chart.Line(tab.Floats(col), chart.Labels{Title: title, X: "row", Y: colName}, out)
	case "scatter":
		return chart.Scatter(tab.Floats(col), chart.Labels{Title: title, X: "row", Y: colName}, out)
	case "joint":
		return o.joint(tab, title, out)
	case "summary":
		s := timings.Summarize(tab.Floats(col))
		fmt.Printf("%s %s: n %d mean %g std %g min %g median %g max %g\n",
			in, colName, s.N, s.Mean, s.StdDev, s.Min, s.Median, s.Max)
		return nil
	}
	return fmt.Errorf("unknown plot kind %q", *o.Kind)
}

func (o *plotOptsT) joint(tab *timings.Table, title, out string) error {
	cols := []int{tab.ColumnIndex(*o.X), tab.ColumnIndex(*o.Y), tab.ColumnIndex(*o.Hue)}
	for i, nm := range []string{*o.X, *o.Y, *o.Hue} {
		if cols[i] < 0 {
			return fmt.Errorf("no column %q", nm)
		}
	}
	rows := tab.Points(cols...)
	pts := make([]chart.Point, 0, len(rows))
	for _, r := range rows {
		if r[2] <= 0 {
			continue
		}
		pts = append(pts, chart.Point{X: r[0], Y: r[1], Hue: math.Log(r[2])})
	}
	return chart.Joint(pts, chart.Labels{Title: title, X: *o.X, Y: *o.Y}, out)
}

var cmpFlags = flag.NewFlagSet("cmp", flag.ExitOnError)

type cmpOptsT struct {
	Listing *bool
	Summary *bool
	Cactus  *bool
	Scatter *bool
	Png     *string
	Runs    *string
}

var cmpOpts = &cmpOptsT{
	Listing: cmpFlags.Bool("list", false, "list all meshes in all runs."),
	Summary: cmpFlags.Bool("sum", true, "dataset summary."),
	Cactus:  cmpFlags.Bool("cactus", false, "cactus plot"),
	Scatter: cmpFlags.Bool("scatter", false, "scatter plot of run pairs"),
	Png:     cmpFlags.String("png", "", "also write the cactus plot to this file"),
	Runs:    cmpFlags.String("runs", "*", "comma separated list of run globs")}

func (co *cmpOptsT) runFilt() func(*bench.Run) bool {
	parts := strings.Split(*co.Runs, ",")
	return func(r *bench.Run) bool {
		for _, pat := range parts {
			m, e := filepath.Match(pat, r.Name)
			if e != nil {
				log.Printf("warning: match '%s' gave an error on '%s'", pat, r.Name)
				continue
			}
			if m {
				return true
			}
		}
		return false
	}
}

func (co *cmpOptsT) Run(flags *flag.FlagSet) {
	for _, arg := range flags.Args() {
		d, e := bench.OpenDataset(arg)
		if e != nil {
			log.Printf("error opening dataset %s: %s\n", arg, e)
			continue
		}
		d = d.RunSelect(co.runFilt())
		if len(d.Runs) == 0 {
			log.Printf("no traced configurations in %s\n", arg)
			continue
		}
		if *co.Summary {
			fmt.Println(bench.Summary(d))
		}
		if *co.Listing {
			fmt.Println(bench.Listing(d))
		}
		if *co.Scatter {
			for i, ra := range d.Runs {
				for j := 0; j < i; j++ {
					sc := bench.NewScatter(ra, d.Runs[j])
					fmt.Printf("%s: %s v %s\n%s\n", d.Root, ra.Name, d.Runs[j].Name, sc.Utf8(40))
				}
			}
		}
		if !*co.Cactus && *co.Png == "" {
			continue
		}
		cactus := bench.NewCactus(d, nil)
		if *co.Cactus {
			fmt.Printf("\n%s\n", cactus.Utf8(40))
		}
		if *co.Png != "" {
			co.cactusPng(d, cactus)
		}
	}
}

func (co *cmpOptsT) cactusPng(d *bench.Dataset, c *bench.Cactus) {
	secs := c.Seconds()
	ss := make([]chart.Series, len(secs))
	for i, vs := range secs {
		ss[i] = chart.Series{Name: c.Runs[i].Name, Values: vs}
	}
	l := chart.Labels{Title: filepath.Base(d.Root), X: "meshes traced", Y: "seconds"}
	if e := chart.Cactus(ss, l, *co.Png); e != nil {
		log.Printf("error writing %s: %s\n", *co.Png, e)
		return
	}
	log.Printf("wrote %s\n", *co.Png)
}

var selFlags = flag.NewFlagSet("sel", flag.ExitOnError)

type selOptsT struct {
	N       *int
	Link    *bool
	Name    *string
	Pattern *string
}

var selOpts = &selOptsT{
	N:       selFlags.Int("n", 100, "number of meshes to select"),
	Link:    selFlags.Bool("link", false, "symlink meshes instead of copying"),
	Name:    selFlags.String("name", "dataset", "put the dataset in this directory"),
	Pattern: selFlags.String("pattern", "", "match this pattern when selecting files.")}

func (sel *selOptsT) Run(flags *flag.FlagSet) {
	meshes := bench.MatchSelect(*sel.Pattern, *sel.N, flags.Args()...)
	d, e := bench.CreateDataset(*sel.Name, meshes, *sel.Link)
	if e != nil {
		fmt.Fprintf(os.Stderr, "error creating dataset: %s\n", e)
		return
	}
	fmt.Printf("created dataset '%s' with %d meshes\n", d.Root, d.Len())
}

// isDir reports whether the first argument names a directory, in which
// case the command line is "splinebench dir [render]".
func isDir(p string) bool {
	st, e := os.Stat(p)
	return e == nil && st.IsDir()
}

func main() {
	log.SetPrefix(" [splinebench] ")
	traceFlags.Usage = func() {
		fmt.Fprintf(os.Stderr, "trace [traceoptions] dir [ dir ... ]\n")
		fmt.Fprintf(os.Stderr, "\ttrace runs the spline tracer on every mesh of dir/meshes\n")
		fmt.Fprintf(os.Stderr, "\tfor each configuration, recording results in dir/<alg>-<subdivisions>.\n")
		traceFlags.PrintDefaults()
	}
	renderFlags.Usage = func() {
		fmt.Fprintf(os.Stderr, "render [renderoptions] dir [ dir ... ]\n")
		fmt.Fprintf(os.Stderr, "\trender renders the traced scenes of each configuration.\n")
		renderFlags.PrintDefaults()
	}
	oneFlags.Usage = func() {
		fmt.Fprintf(os.Stderr, "one [oneoptions] dir mesh trial\n")
		fmt.Fprintf(os.Stderr, "\tone traces a single trial of dir/meshes/mesh and renders it.\n")
		oneFlags.PrintDefaults()
	}
	plotFlags.Usage = func() {
		fmt.Fprintf(os.Stderr, "plot [plotoptions] timings.csv [ timings.csv ... ]\n")
		plotFlags.PrintDefaults()
	}
	cmpFlags.Usage = func() {
		fmt.Fprintf(os.Stderr, "cmp [cmp options] dir [ dir ... ]\n")
		cmpFlags.PrintDefaults()
	}
	selFlags.Usage = func() {
		fmt.Fprintf(os.Stderr, "sel [seloptions] dir [ dir [ dir ... ] ]\n")
		fmt.Fprintf(os.Stderr, "\tsel selects mesh files and puts them in dataset format.\n")
		selFlags.PrintDefaults()
	}
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "splinebench <cmd> [options] arg arg ...\n")
		fmt.Fprintf(os.Stderr, "splinebench dir [render]\n")
		fmt.Fprintf(os.Stderr, "<cmd> may be\n\ttrace\n\trender\n\tone\n\tplot\n\tcmp\n\tsel\n")
		fmt.Fprintf(os.Stderr, "For help with a command, run splinebench <cmd> -h.\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if len(os.Args) == 1 {
		flag.Usage()
		os.Exit(1)
	}
	ctx := interruptible()
	cmd := os.Args[1]
	switch cmd {
	case "trace":
		traceFlags.Parse(os.Args[2:])
		traceOpts.Run(ctx, traceFlags)
	case "render":
		renderFlags.Parse(os.Args[2:])
		renderOpts.Run(ctx, renderFlags)
	case "one":
		oneFlags.Parse(os.Args[2:])
		oneOpts.Run(ctx, oneFlags)
	case "plot":
		plotFlags.Parse(os.Args[2:])
		plotOpts.Run(plotFlags)
	case "cmp":
		cmpFlags.Parse(os.Args[2:])
		cmpOpts.Run(cmpFlags)
	case "sel":
		selFlags.Parse(os.Args[2:])
		selOpts.Run(selFlags)
	default:
		if !isDir(cmd) {
			flag.Usage()
			os.Exit(1)
		}
		if len(os.Args) >= 3 && os.Args[2] == "render" {
			renderFlags.Parse([]string{cmd})
			renderOpts.Run(ctx, renderFlags)
			return
		}
		traceFlags.Parse([]string{cmd})
		traceOpts.Run(ctx, traceFlags)
	}
}
