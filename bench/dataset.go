// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bench

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Type Dataset describes a directory of meshes and the configurations
// traced on it.
type Dataset struct {
	Root   string   // root directory
	Meshes []string // mesh pathnames, sorted.
	Runs   []*Run   // traced configurations.
}

// IsDatasetDir returns true if d contains a meshes directory.
func IsDatasetDir(d string) bool {
	st, e := os.Stat(meshDir(d))
	return e == nil && st.IsDir()
}

// OpenDataset opens the dataset rooted at root together with every
// traced configuration directory directly below it.
func OpenDataset(root string) (*Dataset, error) {
	ms, e := Meshes(root)
	if e != nil {
		return nil, e
	}
	d := &Dataset{Root: root, Meshes: ms}
	if e := d.readRuns(); e != nil {
		return nil, e
	}
	return d, nil
}

func (d *Dataset) readRuns() error {
	files, e := os.ReadDir(d.Root)
	if e != nil {
		return e
	}
	for _, f := range files {
		if !f.IsDir() {
			continue
		}
		p := filepath.Join(d.Root, f.Name())
		if !IsRunDir(p) {
			continue
		}
		r, re := OpenRun(p)
		if re != nil {
			log.Printf("error opening run '%s': %s\n", f.Name(), re)
			continue
		}
		d.Runs = append(d.Runs, r)
	}
	return nil
}

// RunSelect gives a dataset identical to d except that it only contains
// the runs r of d for which filt(r) is true.
func (d *Dataset) RunSelect(filt func(*Run) bool) *Dataset {
	res := &Dataset{Root: d.Root, Meshes: d.Meshes}
	for _, r := range d.Runs {
		if filt(r) {
			res.Runs = append(res.Runs, r)
		}
	}
	return res
}

// RemoveRun removes the configuration directory name from d.
func (d *Dataset) RemoveRun(name string) error {
	if e := os.RemoveAll(filepath.Join(d.Root, name)); e != nil {
		return e
	}
	j := 0
	for _, r := range d.Runs {
		if r.Name == name {
			continue
		}
		d.Runs[j] = r
		j++
	}
	d.Runs = d.Runs[:j]
	return nil
}

// Len returns the number of meshes in the dataset.
func (d *Dataset) Len() int {
	return len(d.Meshes)
}

// CreateDataset creates a dataset rooted at root whose meshes are copies
// of, or if link is true symlinks to, the files in meshes.  The origin
// and sha256 of each mesh are recorded in root/map and root/hash.
func CreateDataset(root string, meshes []string, link bool) (*Dataset, error) {
	if _, ste := os.Stat(meshDir(root)); ste == nil {
		return nil, fmt.Errorf("%s already exists", meshDir(root))
	}
	if e := os.MkdirAll(meshDir(root), 0755); e != nil {
		return nil, e
	}
	d := &Dataset{Root: root}
	var omap, hmap []byte
	seen := make(map[string]bool, len(meshes))
	iFmt := iFmtFor(len(meshes))
	for i, m := range meshes {
		base := filepath.Base(m)
		if seen[base] {
			base = fmt.Sprintf(iFmt, i, base)
		}
		seen[base] = true
		dst := filepath.Join(meshDir(root), base)
		var e error
		if link {
			e = linkFile(m, dst)
		} else {
			e = copyFile(m, dst)
		}
		if e != nil {
			return nil, e
		}
		h, e := hash(m)
		if e != nil {
			return nil, e
		}
		omap = fmt.Appendf(omap, "%s\t%s\n", base, m)
		hmap = fmt.Appendf(hmap, "%s\t%s\n", base, h)
		d.Meshes = append(d.Meshes, dst)
	}
	if e := s2f(string(omap), datasetMapPath(root)); e != nil {
		return nil, e
	}
	if e := s2f(string(hmap), datasetHashPath(root)); e != nil {
		return nil, e
	}
	return d, nil
}

func iFmtFor(N int) string {
	n := 1
	w := 1
	for w < N {
		w *= 10
		n++
	}
	return fmt.Sprintf("%%0%dd-%%s", n)
}

func linkFile(src, dst string) error {
	abs, e := filepath.Abs(src)
	if e != nil {
		return e
	}
	return os.Symlink(abs, dst)
}

func copyFile(src, dst string) error {
	r, e := os.Open(src)
	if e != nil {
		return e
	}
	defer r.Close()
	w, e := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if e != nil {
		return e
	}
	if _, e := io.Copy(w, r); e != nil {
		w.Close()
		return e
	}
	return w.Close()
}

func hash(p string) (string, error) {
	f, e := os.Open(p)
	if e != nil {
		return "", e
	}
	defer f.Close()
	sha := sha256.New()
	if _, e := io.Copy(sha, f); e != nil {
		return "", e
	}
	return hex.EncodeToString(sha.Sum(nil)), nil
}
