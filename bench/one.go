// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bench

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultCheckSamples is the renderer sample count used by Check.
const DefaultCheckSamples = 8

// Type Checked records tracing then rendering one mesh for a configuration.
type Checked struct {
	Config Config
	Scene  string
	Trace  *Exit
	Render *Rendered
	Err    error // set if the tracer could not be started.
}

// Check traces the mesh dir/meshes/mesh running only the given trial, once
// for each configuration in cs, and renders each resulting scene with
// renderer r.  Outputs go to dir/<algorithm>/{scenes,images}.
//
// Exit codes are reported, not interpreted.
func (t *Tracer) Check(ctx context.Context, r *Renderer, dir, mesh string, trial int, cs []Config) ([]*Checked, error) {
	res := make([]*Checked, 0, len(cs))
	name := MeshName(mesh)
	for _, c := range cs {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		adir := filepath.Join(dir, c.Algorithm)
		for _, d := range []string{adir, imagesDir(adir), scenesDir(adir), filepath.Join(scenesDir(adir), name)} {
			os.Mkdir(d, 0755)
		}
		ck := &Checked{Config: c, Scene: scenePath(adir, name)}
		argv := []string{t.bin(), filepath.Join(meshDir(dir), mesh),
			"--algorithm", c.Algorithm,
			"--selected-trial", strconv.Itoa(trial),
			"--subdivisions", strconv.Itoa(c.Subdivisions),
			"--scene", ck.Scene}
		t.printf("%s\n", strings.Join(argv, " "))
		ck.Trace, ck.Err = Invoke(ctx, argv, t.timeout(), t.Stdout, t.Stderr)
		if ck.Trace.Canceled {
			res = append(res, ck)
			return res, ctx.Err()
		}
		ck.Render = r.RenderScene(ctx, ck.Scene, imagePath(imagesDir(adir), name))
		res = append(res, ck)
	}
	return res, ctx.Err()
}
