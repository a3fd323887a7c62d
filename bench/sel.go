// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bench

import (
	"io/fs"
	"log"
	"math/rand"
	"path/filepath"
	"strings"
)

// MeshExts lists the file extensions Select treats as meshes when no
// pattern is given.
var MeshExts = []string{".ply", ".obj", ".stl", ".off"}

// IsMesh tells whether the base name of p carries one of MeshExts,
// ignoring case and dot files.
func IsMesh(p string) bool {
	base := filepath.Base(p)
	if strings.HasPrefix(base, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(base))
	for _, m := range MeshExts {
		if ext == m {
			return true
		}
	}
	return false
}

// meshFinder collects candidate meshes under a set of roots.
type meshFinder struct {
	match  func(string) (bool, error)
	meshes []string
}

func newMeshFinder(pattern string) *meshFinder {
	if pattern == "" {
		return &meshFinder{match: func(nm string) (bool, error) { return IsMesh(nm), nil }}
	}
	return &meshFinder{match: func(nm string) (bool, error) { return filepath.Match(pattern, nm) }}
}

func (f *meshFinder) visit(p string, d fs.DirEntry, e error) error {
	if e != nil {
		return e
	}
	if d.IsDir() {
		return nil
	}
	ok, e := f.match(d.Name())
	if e != nil {
		return e
	}
	if ok {
		f.meshes = append(f.meshes, p)
	}
	return nil
}

// Select picks up to n meshes at random from everything found under
// dirs, recognising meshes by MeshExts.
//
// Walk errors are logged and the offending root skipped.
func Select(n int, dirs ...string) []string {
	return MatchSelect("", n, dirs...)
}

// MatchSelect is like Select but, when pattern is not empty, keeps the
// files whose base name matches it with filepath.Match instead.
func MatchSelect(pattern string, n int, dirs ...string) []string {
	f := newMeshFinder(pattern)
	for _, root := range dirs {
		if e := filepath.WalkDir(root, f.visit); e != nil {
			log.Printf("couldn't walk %s: %s, skipping.\n", root, e)
		}
	}
	found := len(f.meshes)
	if found < n {
		log.Printf("couldn't select %d meshes, only %d found.\n", n, found)
		n = found
	}
	rand.Shuffle(found, func(i, j int) { f.meshes[i], f.meshes[j] = f.meshes[j], f.meshes[i] })
	return f.meshes[:n:n]
}
