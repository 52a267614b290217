package tui

import (
	"strings"
	"testing"
)

func TestRenderDecode_Empty(t *testing.T) {
	out := renderDecode("   ")
	if !strings.Contains(out, "waiting for a path") {
		t.Fatalf("out=%q", out)
	}
}

func TestRenderDecode_Error(t *testing.T) {
	out := renderDecode("api/oil/series/BRENT/z")
	if !strings.Contains(out, "error:") || !strings.Contains(out, "invalid frequency") {
		t.Fatalf("out=%q", out)
	}
}

func TestRenderDecode_FullQuery(t *testing.T) {
	out := renderDecode("api/oil/series/BRENT/m/eop/2015/2017/csv")
	for _, want := range []string{"oil", "BRENT", "eop", "2015-01-01", "2017-12-31", "csv"} {
		if !strings.Contains(out, want) {
			t.Fatalf("out=%q missing %q", out, want)
		}
	}
}
