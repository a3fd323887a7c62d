// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bench

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Type MeshRun records the invocation of the tracer on one mesh.
type MeshRun struct {
	Mesh  string        `json:"mesh"`
	Name  string        `json:"name"`
	Kind  Kind          `json:"kind"`
	Code  int           `json:"code"`
	Start time.Time     `json:"start"`
	Dur   time.Duration `json:"dur"`
	UDur  time.Duration `json:"udur"`
	SDur  time.Duration `json:"sdur"`
	Error string        `json:"error,omitempty"`
}

// Type RunInfo describes a run of the tracer over a dataset for one
// configuration.  It is stored as run.json next to trace-result.json.
type RunInfo struct {
	Cmd          string        `json:"cmd"`
	Algorithm    string        `json:"algorithm"`
	Subdivisions int           `json:"subdivisions"`
	Arch         string        `json:"arch"`
	Os           string        `json:"os"`
	NumCPU       int           `json:"ncpu"`
	Start        time.Time     `json:"start"`
	InstTimeout  time.Duration `json:"inst_timeout"`
	Meshes       []MeshRun     `json:"meshes"`
}

func newRunInfo(cmd string, c Config, ito time.Duration) *RunInfo {
	return &RunInfo{
		Cmd:          cmd,
		Algorithm:    c.Algorithm,
		Subdivisions: c.Subdivisions,
		Arch:         runtime.GOARCH,
		Os:           runtime.GOOS,
		NumCPU:       runtime.NumCPU(),
		Start:        time.Now(),
		InstTimeout:  ito,
		Meshes:       []MeshRun{}}
}

func (ri *RunInfo) add(mesh string, k Kind, x *Exit) {
	ri.Meshes = append(ri.Meshes, MeshRun{
		Mesh:  mesh,
		Name:  MeshName(mesh),
		Kind:  k,
		Code:  x.Code,
		Start: x.Start,
		Dur:   x.Dur,
		UDur:  x.UDur,
		SDur:  x.SDur,
		Error: x.Error})
}

// Type Run is a traced configuration directory of a dataset.
type Run struct {
	Root   string
	Name   string
	Info   *RunInfo
	Result *Result
}

// IsRunDir tests whether or not root looks like a traced configuration
// directory.
func IsRunDir(root string) bool {
	for _, p := range []string{root, resultPath(root), runInfoPath(root)} {
		if _, ste := os.Stat(p); ste != nil {
			return false
		}
	}
	return true
}

// OpenRun opens the traced configuration directory root.
func OpenRun(root string) (*Run, error) {
	r := &Run{Root: root, Name: filepath.Base(root)}
	res, e := OpenResult(resultPath(root))
	if e != nil {
		return nil, e
	}
	r.Result = res
	r.Info = &RunInfo{}
	if e := readJSON(runInfoPath(root), r.Info); e != nil {
		return nil, e
	}
	return r, nil
}

// Mesh gives the record of the mesh named name, or nil.
func (r *Run) Mesh(name string) *MeshRun {
	for i := range r.Info.Meshes {
		if r.Info.Meshes[i].Name == name {
			return &r.Info.Meshes[i]
		}
	}
	return nil
}
