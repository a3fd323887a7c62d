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
	DefaultRenderer      = "./bin/yscenetrace"
	DefaultRenderTimeout = 600 * time.Second
	DefaultSamples       = 1
)

// Type Renderer runs the scene renderer binary on traced scenes.
type Renderer struct {
	Bin      string        // path to the renderer, DefaultRenderer if empty.
	Samples  int           // samples per pixel, DefaultSamples if zero.
	Timeout  time.Duration // per scene, DefaultRenderTimeout if zero.
	Stdout   io.Writer
	Stderr   io.Writer
	Progress io.Writer
}

// Type Rendered records the rendering of one scene.
type Rendered struct {
	Scene string
	Image string
	Exit  *Exit
	Err   error // set if the renderer could not be started.
}

func (r *Renderer) bin() string {
	if r.Bin == "" {
		return DefaultRenderer
	}
	return r.Bin
}

func (r *Renderer) samples() int {
	if r.Samples == 0 {
		return DefaultSamples
	}
	return r.Samples
}

func (r *Renderer) timeout() time.Duration {
	if r.Timeout == 0 {
		return DefaultRenderTimeout
	}
	return r.Timeout
}

func (r *Renderer) printf(format string, args ...interface{}) {
	if r.Progress == nil {
		return
	}
	fmt.Fprintf(r.Progress, format, args...)
}

func (r *Renderer) argv(scene, image string) []string {
	return []string{r.bin(), scene, "-o", image, "-s", strconv.Itoa(r.samples())}
}

// RenderScene renders the scene file scene to image.
func (r *Renderer) RenderScene(ctx context.Context, scene, image string) *Rendered {
	argv := r.argv(scene, image)
	r.printf("%s\n", strings.Join(argv, " "))
	x, e := Invoke(ctx, argv, r.timeout(), r.Stdout, r.Stderr)
	return &Rendered{Scene: scene, Image: image, Exit: x, Err: e}
}

// Render renders every scene under dir/scenes into output/<name>.png.
//
// Return codes are logged but not interpreted.  An empty or missing
// scenes directory renders nothing.  The returned error is non-nil only
// if ctx is done.
func (r *Renderer) Render(ctx context.Context, dir, output string) ([]*Rendered, error) {
	scenes, e := globSorted(filepath.Join(scenesDir(dir), "*"))
	if e != nil {
		return nil, e
	}
	os.Mkdir(output, 0755)
	N := len(scenes)
	res := make([]*Rendered, 0, N)
	for i, scene := range scenes {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		name := MeshName(scene)
		r.printf("%-78s\n", fmt.Sprintf("[%d/%d] %s", i, N, scene))
		rd := r.RenderScene(ctx, filepath.Join(scene, "scene.json"), imagePath(output, name))
		if rd.Err != nil {
			log.Printf("error starting renderer on %s: %s\n", scene, rd.Err)
		} else if rd.Exit.Code != 0 {
			log.Printf("renderer exited %d on %s\n", rd.Exit.Code, scene)
		}
		res = append(res, rd)
	}
	return res, ctx.Err()
}

// RenderAll renders each configuration cs of the dataset at dir into
// dir/<config>/images.
func (r *Renderer) RenderAll(ctx context.Context, dir string, cs []Config) ([][]*Rendered, error) {
	res := make([][]*Rendered, 0, len(cs))
	for _, c := range cs {
		cdir := filepath.Join(dir, c.String())
		r.printf("%s\n", cdir)
		rds, e := r.Render(ctx, cdir, imagesDir(cdir))
		res = append(res, rds)
		if e != nil {
			return res, e
		}
	}
	return res, nil
}
