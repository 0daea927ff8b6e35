// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package robots

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/uxinsight/pkg/types"
)

// robotsServer serves the given robots.txt body and counts policy fetches.
func robotsServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var fetches int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			w.WriteHeader(http.StatusOK)
			return
		}
		atomic.AddInt32(&fetches, 1)
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts, &fetches
}

func testGate(client *http.Client) *Gate {
	return New(types.PolicyConfig{Timeout: 2 * time.Second}, "uxinsight-test", client)
}

func TestAllowedHonorsDisallow(t *testing.T) {
	ts, _ := robotsServer(t, http.StatusOK, "User-agent: *\nDisallow: /private/\n")
	run := testGate(ts.Client()).NewRun()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "disallowed path", path: "/private/page", want: false},
		{name: "disallowed subtree", path: "/private/deeper/page", want: false},
		{name: "allowed path", path: "/articles/buttons", want: true},
		{name: "root", path: "/", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run.Allowed(context.Background(), ts.URL+tt.path)
			if got != tt.want {
				t.Errorf("Allowed(%s) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestAllowedEvaluatesWildcardGroup(t *testing.T) {
	// Only a named bot is restricted; the wildcard group governs us.
	ts, _ := robotsServer(t, http.StatusOK, "User-agent: BadBot\nDisallow: /\n")
	run := testGate(ts.Client()).NewRun()

	if !run.Allowed(context.Background(), ts.URL+"/anything") {
		t.Error("restriction on a named agent should not deny the wildcard agent")
	}
}

func TestAllowedFailsOpenOnStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
		t.Run(fmt.Sprintf("status %d", status), func(t *testing.T) {
			ts, _ := robotsServer(t, status, "User-agent: *\nDisallow: /\n")
			run := testGate(ts.Client()).NewRun()

			if !run.Allowed(context.Background(), ts.URL+"/page") {
				t.Errorf("status %d robots.txt should fail open", status)
			}
		})
	}
}

func TestAllowedFailsOpenOnUnreachableHost(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	target := ts.URL + "/page"
	ts.Close()

	run := testGate(nil).NewRun()
	if !run.Allowed(context.Background(), target) {
		t.Error("unreachable robots host should fail open")
	}
}

func TestAllowedFailsOpenOnTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		fmt.Fprint(w, "User-agent: *\nDisallow: /\n")
	}))
	t.Cleanup(ts.Close)

	gate := New(types.PolicyConfig{Timeout: 50 * time.Millisecond}, "", ts.Client())
	run := gate.NewRun()

	start := time.Now()
	if !run.Allowed(context.Background(), ts.URL+"/page") {
		t.Error("robots timeout should fail open")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("verdict took %v, want well under a second", elapsed)
	}
}

func TestAllowedFailsOpenOnGarbageBody(t *testing.T) {
	ts, _ := robotsServer(t, http.StatusOK, "\x00\x01garbage\xff not a policy")
	run := testGate(ts.Client()).NewRun()

	if !run.Allowed(context.Background(), ts.URL+"/page") {
		t.Error("unparseable robots.txt should fail open")
	}
}

func TestRunMemoizesPerDomain(t *testing.T) {
	ts, fetches := robotsServer(t, http.StatusOK, "User-agent: *\nDisallow: /private/\n")
	run := testGate(ts.Client()).NewRun()

	for _, path := range []string{"/a", "/b", "/private/c"} {
		run.Allowed(context.Background(), ts.URL+path)
	}

	if got := atomic.LoadInt32(fetches); got != 1 {
		t.Errorf("robots.txt fetched %d times in one run, want 1", got)
	}

	// A fresh run re-fetches.
	testGate(ts.Client()).NewRun().Allowed(context.Background(), ts.URL+"/a")
	if got := atomic.LoadInt32(fetches); got != 2 {
		t.Errorf("robots.txt fetched %d times across two runs, want 2", got)
	}
}
