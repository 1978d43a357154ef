package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const (
	nationalJSON = `[
	  {"dateChecked":"2021-01-03T24:00:00Z","positiveIncrease":30,"negativeIncrease":300,"deathIncrease":3},
	  {"dateChecked":"2021-01-02T24:00:00Z","positiveIncrease":20,"negativeIncrease":200,"deathIncrease":2},
	  {"dateChecked":"2021-01-01T24:00:00Z","positiveIncrease":10,"negativeIncrease":100,"deathIncrease":1}
	]`
	statesJSON = `[
	  {"dateChecked":"2021-01-02T24:00:00Z","state":"NY","positiveIncrease":-5},
	  {"dateChecked":"2021-01-02T24:00:00Z","state":"AK","positiveIncrease":4},
	  {"dateChecked":"2021-01-01T24:00:00Z","state":"NY","positiveIncrease":7}
	]`
)

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/us/daily.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(nationalJSON))
	})
	mux.HandleFunc("/v1/states/daily.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(statesJSON))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNationalCommand(t *testing.T) {
	srv := newUpstream(t)

	out, err := run(t, "national", "--base-url", srv.URL+"/v1/", "--metric", "death")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	for _, want := range []string{
		"region=all metric=death window=max count=3",
		"bounds: index [0, 2] value [1, 3]",
		"latest: 2021-01-04 3",
		"2021-01-02",
		"2021-01-04",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRegionCommand(t *testing.T) {
	srv := newUpstream(t)

	out, err := run(t, "region", "NY", "--base-url", srv.URL+"/v1/")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "value [0, 7]") {
		t.Fatalf("expected sanitized bounds in output:\n%s", out)
	}

	if _, err := run(t, "region", "ZZ", "--base-url", srv.URL+"/v1/"); err == nil {
		t.Fatal("expected error for unknown region")
	}
}

func TestRegionsCommand(t *testing.T) {
	srv := newUpstream(t)

	out, err := run(t, "regions", "--base-url", srv.URL+"/v1/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "AK\nNY" {
		t.Fatalf("unexpected regions output: %q", out)
	}
}

func TestInvalidWindow(t *testing.T) {
	srv := newUpstream(t)

	if _, err := run(t, "national", "--base-url", srv.URL+"/v1/", "--window", "decade"); err == nil {
		t.Fatal("expected validation error for unknown window")
	}
}
