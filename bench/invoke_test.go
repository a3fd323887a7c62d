// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bench

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestInvokeOutput(t *testing.T) {
	var out, errw bytes.Buffer
	x, e := Invoke(context.Background(), []string{"sh", "-c", "echo hi; echo oops >&2; exit 7"}, time.Minute, &out, &errw)
	if e != nil {
		t.Fatal(e)
	}
	if x.Code != 7 || x.TimedOut || x.Canceled {
		t.Errorf("got %+v", x)
	}
	if strings.TrimSpace(out.String()) != "hi" || strings.TrimSpace(errw.String()) != "oops" {
		t.Errorf("out %q err %q", out.String(), errw.String())
	}
}

func TestInvokeTimeout(t *testing.T) {
	start := time.Now()
	x, e := Invoke(context.Background(), []string{"sleep", "10"}, 100*time.Millisecond, nil, nil)
	if e != nil {
		t.Fatal(e)
	}
	if !x.TimedOut || x.Code >= 0 {
		t.Errorf("got %+v", x)
	}
	if d := time.Since(start); d > 5*time.Second {
		t.Errorf("took %s", d)
	}
}

func TestInvokeNoCommand(t *testing.T) {
	if _, e := Invoke(context.Background(), nil, 0, nil, nil); e == nil {
		t.Errorf("no error for empty argv")
	}
	x, e := Invoke(context.Background(), []string{"/nonexistent/splinetest"}, 0, nil, nil)
	if e == nil || x.Error == "" {
		t.Errorf("no error for missing binary")
	}
}
