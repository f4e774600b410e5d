package diag

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEachVisitsErrorsThenWarnings(t *testing.T) {
	var l List
	l.Warnf("a.md", 0, 0, "first warning")
	l.Errorf("a.md", 3, 7, "bad token")
	l.Warnf("b.md", 1, 1, "second warning")

	var got []string
	l.Each(func(sev Severity, d Diagnostic) {
		got = append(got, fmt.Sprintf("%s: %s", sev, d))
	})
	want := []string{
		"error: a.md:3:7: bad token",
		"warning: a.md: first warning",
		"warning: b.md:1:1: second warning",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}
}

func TestErr(t *testing.T) {
	var l List
	if l.Err() != nil {
		t.Fatal("expected nil error for an empty list")
	}
	l.Errorf("x.enum", 0, 0, "one")
	if got := l.Err().Error(); got != "x.enum: one" {
		t.Errorf("expected x.enum: one, got %s", got)
	}
	l.Errorf("", 0, 0, "two")
	if got := l.Err().Error(); got != "2 errors:\n  x.enum: one\n  two" {
		t.Errorf("unexpected joined error %q", got)
	}
}
