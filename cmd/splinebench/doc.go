// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Command splinebench runs the spline tracer and scene renderer over
// datasets of meshes and plots their timings.
//
//	⎣ ⇨ splinebench
//	splinebench <cmd> [options] arg arg ...
//	splinebench dir [render]
//	<cmd> may be
//		trace
//		render
//		one
//		plot
//		cmp
//		sel
//	For help with a command, run splinebench <cmd> -h.
//
//	⎣ ⇨ splinebench trace -h
//	trace [traceoptions] dir [ dir ... ]
//		trace runs the spline tracer on every mesh of dir/meshes
//		for each configuration, recording results in dir/<alg>-<subdivisions>.
//	  -algs string
//	    	comma separated algorithm:subdivisions list (default "dc-uniform:4")
//	  -bin string
//	    	path to the spline tracer (default "./bin/splinetest")
//	  -d string
//	    	delete the named configuration directory
//	  -dur duration
//	    	max per-mesh duration (default 1m0s)
//
//	⎣ ⇨ splinebench render -h
//	render [renderoptions] dir [ dir ... ]
//		render renders the traced scenes of each configuration.
//	  -algs string
//	    	comma separated algorithm:subdivisions list (default "dc-uniform:4")
//	  -bin string
//	    	path to the scene renderer (default "./bin/yscenetrace")
//	  -cell int
//	    	contact sheet thumbnail size in pixels (default 256)
//	  -cols int
//	    	contact sheet columns (default 8)
//	  -dur duration
//	    	max per-scene duration (default 10m0s)
//	  -samples int
//	    	samples per pixel (default 1)
//	  -sheet
//	    	tile the rendered images into images/sheet.png
//
//	⎣ ⇨ splinebench one -h
//	one [oneoptions] dir mesh trial
//		one traces a single trial of dir/meshes/mesh and renders it.
//
//	⎣ ⇨ splinebench plot -h
//	plot [plotoptions] timings.csv [ timings.csv ... ]
//	  -kind string
//	    	box, line, scatter, joint or summary (default "scatter")
//
//	⎣ ⇨ splinebench cmp -h
//	cmp [cmp options] dir [ dir ... ]
//	  -cactus
//	    	cactus plot
//	  -list
//	    	list all meshes in all runs.
//	  -png string
//	    	also write the cactus plot to this file
//	  -scatter
//	    	scatter plot of run pairs
//	  -sum
//	    	dataset summary. (default true)
//
//	⎣ ⇨ splinebench sel -h
//	sel [seloptions] dir [ dir [ dir ... ] ]
//		sel selects mesh files and puts them in dataset format.
package main
