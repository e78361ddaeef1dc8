package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02"
	t.Cleanup(func() { Version, Commit, Date = "dev", "none", "unknown" })

	if got := Template(); !strings.Contains(got, "version v1.2.3") || !strings.Contains(got, "commit: abc123") {
		t.Fatalf("Template() = %q", got)
	}
	if got := String(); got != "version: v1.2.3\ncommit: abc123\nbuilt: 2026-01-02" {
		t.Fatalf("String() = %q", got)
	}
}
