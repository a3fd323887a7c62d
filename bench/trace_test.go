// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bench

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const fakeTracer = `#!/bin/sh
echo "$@" >> "$(dirname "$0")/args"
case "$(basename "$1")" in
*ok*) exit 0 ;;
*fail*) exit 3 ;;
*kill*) kill -9 $$ ;;
*slow*) exec sleep 10 ;;
esac
exit 0
`

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if e := os.WriteFile(p, []byte(body), 0755); e != nil {
		t.Fatal(e)
	}
	return p
}

func makeDataset(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	if e := os.Mkdir(meshDir(root), 0755); e != nil {
		t.Fatal(e)
	}
	for _, nm := range names {
		if e := os.WriteFile(filepath.Join(meshDir(root), nm), []byte("mesh"), 0644); e != nil {
			t.Fatal(e)
		}
	}
	return root
}

func readArgs(t *testing.T, bin string) []string {
	t.Helper()
	b, e := os.ReadFile(filepath.Join(filepath.Dir(bin), "args"))
	if e != nil {
		t.Fatal(e)
	}
	return strings.Split(strings.TrimSpace(string(b)), "\n")
}

func TestTraceClassifies(t *testing.T) {
	bin := writeScript(t, t.TempDir(), "splinetest", fakeTracer)
	dir := makeDataset(t, "ok1.ply", "ok2.obj", "fail.ply", "kill.ply", "slow.ply")
	c := Config{Algorithm: "dc-uniform", Subdivisions: 4}
	tr := &Tracer{Bin: bin, Timeout: 500 * time.Millisecond}

	res, e := tr.TraceAll(context.Background(), dir, []Config{c})
	if e != nil {
		t.Fatal(e)
	}
	if len(res) != 1 {
		t.Fatalf("got %d results", len(res))
	}
	r := res[0]
	if r.NumTests != 5 {
		t.Errorf("num tests %d", r.NumTests)
	}
	if r.NumErrors+len(r.OK) != r.NumTests {
		t.Errorf("errors %d + ok %d != tests %d", r.NumErrors, len(r.OK), r.NumTests)
	}
	if len(r.OK) != 2 {
		t.Errorf("ok: %v", r.OK)
	}
	for k, want := range map[Kind]string{AppError: "fail", AppTerminated: "kill", AppTimeout: "slow"} {
		ms := r.Errors[k]
		if len(ms) != 1 || MeshName(ms[0]) != want {
			t.Errorf("%s: got %v", k, ms)
		}
	}

	output := filepath.Join(dir, c.String())
	var st Stats
	if e := readJSON(statsPath(output, "slow"), &st); e != nil {
		t.Fatal(e)
	}
	if st.Error != AppTimeout {
		t.Errorf("slow stats %q", st.Error)
	}
	if _, e := os.Stat(statsPath(output, "ok1")); e == nil {
		t.Errorf("stats written for ok mesh")
	}

	stored, e := OpenResult(resultPath(output))
	if e != nil {
		t.Fatal(e)
	}
	if stored.NumTests != 5 || stored.NumErrors != 3 || len(stored.OK) != 2 {
		t.Errorf("stored result %+v", stored)
	}

	args := readArgs(t, bin)
	if len(args) != 5 {
		t.Fatalf("tracer ran %d times", len(args))
	}
	if strings.Contains(args[0], "--append-timings") {
		t.Errorf("first invocation appends timings: %s", args[0])
	}
	for _, a := range args[1:] {
		if !strings.Contains(a, "--append-timings") {
			t.Errorf("later invocation does not append timings: %s", a)
		}
	}
	if !strings.Contains(args[0], "--subdivisions 4") || !strings.Contains(args[0], "--algorithm dc-uniform") {
		t.Errorf("bad flags: %s", args[0])
	}
	if !strings.Contains(args[0], filepath.Join(output, "scenes", "fail", "scene.json")) {
		t.Errorf("bad scene path: %s", args[0])
	}
}

func TestTraceOSError(t *testing.T) {
	dir := makeDataset(t, "a.ply", "b.ply")
	output := filepath.Join(dir, "out")
	os.Mkdir(output, 0755)
	tr := &Tracer{Bin: filepath.Join(t.TempDir(), "missing")}
	r, e := tr.Trace(context.Background(), dir, output, DefaultConfigs[0])
	if e != nil {
		t.Fatal(e)
	}
	if len(r.Errors[OSError]) != 2 || len(r.OK) != 0 {
		t.Errorf("got %+v", r)
	}
	var st Stats
	if e := readJSON(statsPath(output, "a"), &st); e != nil || st.Error != OSError {
		t.Errorf("stats %v %v", st, e)
	}
}

func TestTraceEmpty(t *testing.T) {
	dir := makeDataset(t)
	output := filepath.Join(dir, "out")
	os.Mkdir(output, 0755)
	tr := &Tracer{Bin: "true"}
	r, e := tr.Trace(context.Background(), dir, output, DefaultConfigs[0])
	if e != nil {
		t.Fatal(e)
	}
	b, e := json.Marshal(r)
	if e != nil {
		t.Fatal(e)
	}
	if string(b) != `{"num_tests":0,"num_errors":0,"ok":[]}` {
		t.Errorf("got %s", b)
	}
}

func TestTraceCanceled(t *testing.T) {
	bin := writeScript(t, t.TempDir(), "splinetest", fakeTracer)
	dir := makeDataset(t, "a_ok.ply", "b_slow.ply", "c_ok.ply")
	output := filepath.Join(dir, "out")
	os.Mkdir(output, 0755)
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	tr := &Tracer{Bin: bin, Timeout: time.Minute}
	r, e := tr.Trace(ctx, dir, output, DefaultConfigs[0])
	if e != context.DeadlineExceeded {
		t.Errorf("got error %v", e)
	}
	if r.NumTests != 1 || len(r.OK) != 1 || MeshName(r.OK[0]) != "a_ok" {
		t.Errorf("got %+v", r)
	}
	if r.NumErrors != 0 || len(r.Kinds()) != 0 {
		t.Errorf("interrupted mesh recorded as error: %+v", r.Errors)
	}
	if _, e := os.Stat(statsPath(output, "b_slow")); e == nil {
		t.Errorf("stats written for interrupted mesh")
	}
	if args := readArgs(t, bin); len(args) != 2 {
		t.Errorf("tracer ran %d times after cancel: %v", len(args), args)
	}
	stored, e := OpenResult(resultPath(output))
	if e != nil {
		t.Fatalf("result not written: %s", e)
	}
	if stored.NumTests != 1 || len(stored.OK) != 1 {
		t.Errorf("stored result %+v", stored)
	}
}

func TestParseConfigs(t *testing.T) {
	cs, e := ParseConfigs("dc-uniform:4, lr-adaptive:2,lr-uniform")
	if e != nil {
		t.Fatal(e)
	}
	want := []Config{{"dc-uniform", 4}, {"lr-adaptive", 2}, {"lr-uniform", 4}}
	if len(cs) != len(want) {
		t.Fatalf("got %v", cs)
	}
	for i := range want {
		if cs[i] != want[i] {
			t.Errorf("%d: got %v want %v", i, cs[i], want[i])
		}
	}
	if cs[1].String() != "lr-adaptive-2" {
		t.Errorf("name %s", cs[1])
	}
	for _, bad := range []string{"", "a:x", ":3"} {
		if _, e := ParseConfigs(bad); e == nil {
			t.Errorf("no error for %q", bad)
		}
	}
}

func TestMeshName(t *testing.T) {
	for p, want := range map[string]string{
		"d/meshes/bunny.ply":    "bunny",
		"d/meshes/bunny.v2.ply": "bunny",
		"bunny":                 "bunny"} {
		if got := MeshName(p); got != want {
			t.Errorf("%s: got %s want %s", p, got, want)
		}
	}
}
