// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

var sigs = make(chan os.Signal, 2)

// interruptible gives a context canceled on the first SIGINT or SIGTERM;
// a second one exits immediately.
func interruptible() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Printf("%s: stopping after recording results\n", sig)
		cancel()
		<-sigs
		log.Printf("interrupted twice, exiting\n")
		os.Exit(1)
	}()
	return ctx
}
