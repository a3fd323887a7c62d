// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bench

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// waitDelay bounds how long Wait keeps copying output after the process
// has exited or been killed.
const waitDelay = time.Second

// Type Exit records how one invocation of an external binary ended.
type Exit struct {
	Argv     []string
	Code     int // negative: terminated by signal -Code
	TimedOut bool
	Canceled bool
	Start    time.Time
	Dur      time.Duration
	UDur     time.Duration
	SDur     time.Duration
	Error    string
}

// Invoke runs argv, killing it once timeout elapses (timeout <= 0 means no
// timeout) or ctx is done.  Output of the process goes to out and errw,
// which may be nil.
//
// The returned error is non-nil only if the process could not be started;
// the returned *Exit is always non-nil.
func Invoke(ctx context.Context, argv []string, timeout time.Duration, out, errw io.Writer) (*Exit, error) {
	x := &Exit{Argv: argv}
	if len(argv) == 0 {
		e := fmt.Errorf("empty command")
		x.Error = e.Error()
		return x, e
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = out
	cmd.Stderr = errw
	cmd.WaitDelay = waitDelay

	x.Start = time.Now()
	if e := cmd.Start(); e != nil {
		x.Error = e.Error()
		return x, e
	}
	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	var alarm <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		alarm = t.C
	}
	x.capture(ctx, cmd, done, alarm)
	return x, nil
}

func (x *Exit) capture(ctx context.Context, cmd *exec.Cmd, done <-chan error, alarm <-chan time.Time) {
	cancel := ctx.Done()
	for {
		select {
		case <-alarm:
			x.TimedOut = true
			cmd.Process.Kill()
			alarm = nil
		case <-cancel:
			x.Canceled = true
			cmd.Process.Kill()
			cancel = nil
		case e := <-done:
			x.Dur = time.Since(x.Start)
			if e != nil {
				x.Error = e.Error()
			}
			st := cmd.ProcessState
			if st == nil {
				return
			}
			x.UDur = st.UserTime()
			x.SDur = st.SystemTime()
			x.Code = st.ExitCode()
			if ws, ok := st.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
				x.Code = -int(ws.Signal())
			}
			return
		}
	}
}

// String gives the command line of x.
func (x *Exit) String() string {
	return strings.Join(x.Argv, " ")
}
