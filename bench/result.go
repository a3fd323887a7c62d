// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bench

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Type Kind classifies the outcome of tracing one mesh.
type Kind string

const (
	OK            Kind = "ok"
	AppTerminated Kind = "app_terminated"
	AppError      Kind = "app_error"
	OSError       Kind = "os_error"
	AppTimeout    Kind = "app_timeout"
)

// Classify gives the kind of an invocation which ended in x, startErr
// being the error Invoke returned.
func Classify(x *Exit, startErr error) Kind {
	switch {
	case startErr != nil:
		return OSError
	case x.TimedOut:
		return AppTimeout
	case x.Code < 0:
		return AppTerminated
	case x.Code > 0:
		return AppError
	}
	return OK
}

// Type Result is the aggregate outcome of tracing a dataset, stored as
// trace-result.json.
//
// In JSON, each error kind is a top level key listing the failing meshes.
type Result struct {
	NumTests  int
	NumErrors int
	OK        []string
	Errors    map[Kind][]string
	kinds     []Kind // order in which Errors keys first appeared
}

// NewResult makes an empty result.
func NewResult() *Result {
	return &Result{
		OK:     []string{},
		Errors: make(map[Kind][]string)}
}

// Add records the outcome k for mesh.
func (r *Result) Add(mesh string, k Kind) {
	r.NumTests++
	if k == OK {
		r.OK = append(r.OK, mesh)
		return
	}
	r.NumErrors++
	if _, ok := r.Errors[k]; !ok {
		r.kinds = append(r.kinds, k)
	}
	r.Errors[k] = append(r.Errors[k], mesh)
}

// Kinds gives the error kinds present in r in order of first
// appearance.
func (r *Result) Kinds() []Kind {
	return r.kinds
}

type jsonField struct {
	key string
	val interface{}
}

// MarshalJSON implements json.Marshaler.  Keys come out as num_tests,
// num_errors, ok and then the error kinds in order of first appearance,
// the order the trace scripts have always written them in.
func (r *Result) MarshalJSON() ([]byte, error) {
	ok := r.OK
	if ok == nil {
		ok = []string{}
	}
	fields := []jsonField{
		{"num_tests", r.NumTests},
		{"num_errors", r.NumErrors},
		{"ok", ok}}
	for _, k := range r.orderedKinds() {
		fields = append(fields, jsonField{string(k), r.Errors[k]})
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, _ := json.Marshal(f.key)
		vb, e := json.Marshal(f.val)
		if e != nil {
			return nil, fmt.Errorf("trace result key %q: %w", f.key, e)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Result) orderedKinds() []Kind {
	if len(r.kinds) == len(r.Errors) {
		return r.kinds
	}
	ks := make([]Kind, 0, len(r.Errors))
	for k := range r.Errors {
		ks = append(ks, k)
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i] < ks[j] })
	return ks
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if e := json.Unmarshal(b, &m); e != nil {
		return e
	}
	*r = *NewResult()
	for k, v := range m {
		var e error
		switch k {
		case "num_tests":
			e = json.Unmarshal(v, &r.NumTests)
		case "num_errors":
			e = json.Unmarshal(v, &r.NumErrors)
		case "ok":
			e = json.Unmarshal(v, &r.OK)
		default:
			var meshes []string
			e = json.Unmarshal(v, &meshes)
			r.Errors[Kind(k)] = meshes
		}
		if e != nil {
			return fmt.Errorf("trace result key %q: %w", k, e)
		}
	}
	r.kinds = r.orderedKinds()
	return nil
}

// OpenResult reads a trace-result.json file.
func OpenResult(p string) (*Result, error) {
	r := &Result{}
	if e := readJSON(p, r); e != nil {
		return nil, e
	}
	return r, nil
}

// Type Stats is the per-mesh stats file written on failure.
type Stats struct {
	Error Kind `json:"error"`
}

func writeStats(p string, k Kind) error {
	return writeJSON(p, &Stats{Error: k})
}

func writeJSON(p string, v interface{}) error {
	b, e := json.MarshalIndent(v, "", "  ")
	if e != nil {
		return e
	}
	return s2f(string(b), p)
}

func readJSON(p string, v interface{}) error {
	b, e := os.ReadFile(p)
	if e != nil {
		return e
	}
	if e := json.Unmarshal(b, v); e != nil {
		return fmt.Errorf("%s: %w", p, e)
	}
	return nil
}

func s2f(s, p string) error {
	f, e := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if e != nil {
		return e
	}
	if _, e := f.WriteString(s); e != nil {
		f.Close()
		return e
	}
	return f.Close()
}
