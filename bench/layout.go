// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bench

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Type Config names a tracer configuration.
type Config struct {
	Algorithm    string
	Subdivisions int
}

// DefaultConfigs are the configurations traced when none are given.
var DefaultConfigs = []Config{{Algorithm: "dc-uniform", Subdivisions: 4}}

// String gives the configuration directory name, eg "dc-uniform-4".
func (c Config) String() string {
	return fmt.Sprintf("%s-%d", c.Algorithm, c.Subdivisions)
}

// ParseConfigs parses a comma separated list of algorithm:subdivisions
// pairs.  A missing subdivision count defaults to 4.
func ParseConfigs(s string) ([]Config, error) {
	var res []Config
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c := Config{Algorithm: part, Subdivisions: 4}
		if i := strings.LastIndex(part, ":"); i >= 0 {
			n, e := strconv.Atoi(part[i+1:])
			if e != nil {
				return nil, fmt.Errorf("bad subdivisions in %q: %w", part, e)
			}
			c.Algorithm = part[:i]
			c.Subdivisions = n
		}
		if c.Algorithm == "" {
			return nil, fmt.Errorf("empty algorithm in %q", part)
		}
		res = append(res, c)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("no configurations in %q", s)
	}
	return res, nil
}

// MeshName gives the name used for the outputs of mesh path p: the
// base name up to the first '.'.
func MeshName(p string) string {
	base := filepath.Base(p)
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}

// Meshes lists the mesh files of the dataset rooted at root.
func Meshes(root string) ([]string, error) {
	return globSorted(filepath.Join(meshDir(root), "*"))
}

func globSorted(pat string) ([]string, error) {
	ps, e := filepath.Glob(pat)
	if e != nil {
		return nil, e
	}
	sort.Strings(ps)
	return ps, nil
}

func meshDir(root string) string {
	return filepath.Join(root, "meshes")
}
func datasetMapPath(root string) string {
	return filepath.Join(root, "map")
}
func datasetHashPath(root string) string {
	return filepath.Join(root, "hash")
}
func statsDir(c string) string {
	return filepath.Join(c, "stats")
}
func statsPath(c, name string) string {
	return filepath.Join(statsDir(c), name+".json")
}
func scenesDir(c string) string {
	return filepath.Join(c, "scenes")
}
func scenePath(c, name string) string {
	return filepath.Join(scenesDir(c), name, "scene.json")
}
func imagesDir(c string) string {
	return filepath.Join(c, "images")
}
func imagePath(out, name string) string {
	return filepath.Join(out, name+".png")
}
func resultPath(c string) string {
	return filepath.Join(c, "trace-result.json")
}
func timingsPath(c string) string {
	return filepath.Join(c, "timings.csv")
}
func runInfoPath(c string) string {
	return filepath.Join(c, "run.json")
}

// TimingsPath gives the timings file of configuration directory c.
func TimingsPath(c string) string {
	return timingsPath(c)
}

// ImagesDir gives the rendered images directory of configuration
// directory c.
func ImagesDir(c string) string {
	return imagesDir(c)
}
