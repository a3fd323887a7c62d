// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bench

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTracer       = "./bin/splinetest"
	DefaultTraceTimeout = 60 * time.Second
)

// Type Tracer runs the spline tracer binary on meshes.
type Tracer struct {
	Bin      string        // path to the tracer, DefaultTracer if empty.
	Timeout  time.Duration // per mesh, DefaultTraceTimeout if zero.
	Stdout   io.Writer     // tracer output, discarded if nil.
	Stderr   io.Writer
	Progress io.Writer // progress lines, none if nil.
}

func (t *Tracer) bin() string {
	if t.Bin == "" {
		return DefaultTracer
	}
	return t.Bin
}

func (t *Tracer) timeout() time.Duration {
	if t.Timeout == 0 {
		return DefaultTraceTimeout
	}
	return t.Timeout
}

func (t *Tracer) argv(mesh, output string, c Config, appendTimings bool) []string {
	argv := []string{t.bin(), mesh,
		"--algorithm", c.Algorithm,
		"--output", output,
		"--trials", "1"}
	if appendTimings {
		argv = append(argv, "--append-timings")
	}
	return append(argv,
		"--subdivisions", strconv.Itoa(c.Subdivisions),
		"--scene", scenePath(output, MeshName(mesh)),
		"--timings", timingsPath(output))
}

func (t *Tracer) printf(format string, args ...interface{}) {
	if t.Progress == nil {
		return
	}
	fmt.Fprintf(t.Progress, format, args...)
}

// Trace runs the tracer with configuration c on every mesh of the dataset
// rooted at dir, writing outputs to the directory output.
//
// Failures of single meshes are recorded in the result and the per-mesh
// stats file; they never stop the loop.  The result is written to
// output/trace-result.json even if ctx is canceled part way, in which
// case the mesh being traced is not recorded and ctx.Err() is returned.
func (t *Tracer) Trace(ctx context.Context, dir, output string, c Config) (*Result, error) {
	meshes, e := Meshes(dir)
	if e != nil {
		return nil, e
	}
	os.Mkdir(statsDir(output), 0755)

	res := NewResult()
	info := newRunInfo(t.bin(), c, t.timeout())
	N := len(meshes)
	appendTimings := false
	for i, mesh := range meshes {
		if ctx.Err() != nil {
			break
		}
		t.printf("%-78s\n", fmt.Sprintf("[%d/%d] %s", i, N, mesh))
		argv := t.argv(mesh, output, c, appendTimings)
		t.printf("%s\n", strings.Join(argv, " "))
		appendTimings = true

		x, se := Invoke(ctx, argv, t.timeout(), t.Stdout, t.Stderr)
		if x.Canceled {
			break
		}
		k := Classify(x, se)
		res.Add(mesh, k)
		info.add(mesh, k, x)
		if k == OK {
			continue
		}
		t.printf("%-78s\n", "error: "+string(k))
		if e := writeStats(statsPath(output, MeshName(mesh)), k); e != nil {
			log.Printf("error writing stats for %s: %s\n", mesh, e)
		}
	}
	if e := writeJSON(resultPath(output), res); e != nil {
		return res, e
	}
	if e := writeJSON(runInfoPath(output), info); e != nil {
		return res, e
	}
	return res, ctx.Err()
}

// TraceAll traces the dataset at dir once for each configuration in cs,
// into dir/<algorithm>-<subdivisions>.
func (t *Tracer) TraceAll(ctx context.Context, dir string, cs []Config) ([]*Result, error) {
	res := make([]*Result, 0, len(cs))
	for _, c := range cs {
		output := filepath.Join(dir, c.String())
		os.Mkdir(output, 0755)
		r, e := t.Trace(ctx, dir, output, c)
		if e != nil {
			return res, fmt.Errorf("tracing %s: %w", output, e)
		}
		res = append(res, r)
	}
	return res, nil
}
