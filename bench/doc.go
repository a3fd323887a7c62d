// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package bench drives the spline tracer and scene renderer binaries over
// batches of meshes and records the outcomes.
//
// Package bench addresses the needs of spline benchmarking by:
//
// 1. providing a dataset format: a directory with a meshes/ subdirectory.
//
// 2. providing a tool to create such datasets by selecting mesh files.
//
// 3. running the tracer on every mesh of a dataset for a configuration
// (algorithm and subdivisions), enforcing a timeout per mesh and recording
// an aggregate result, per-mesh error stats and run metadata.
//
// 4. rendering the scenes the tracer produced.
//
// 5. providing a tool to query and compare configurations.
//
// A configuration directory looks like
//
//	<dataset>/<algorithm>-<subdivisions>/
//		stats/<name>.json
//		scenes/<name>/scene.json
//		images/<name>.png
//		trace-result.json
//		timings.csv
//		run.json
package bench
