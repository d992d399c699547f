package common

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func newProcRoot(t *testing.T, target string) string {
	procRoot := t.TempDir()
	pidDir := filepath.Join(procRoot, strconv.Itoa(os.Getpid()))
	if err := os.MkdirAll(pidDir, 0755); err != nil {
		t.Fatalf("Failed to create %s: %q", pidDir, err)
	}
	if err := os.Symlink(target, filepath.Join(pidDir, "exe")); err != nil {
		t.Fatalf("Failed to create exe link: %q", err)
	}
	return procRoot
}

func TestResolveExecutable(t *testing.T) {
	procRoot := newProcRoot(t, "/opt/jenkins/bin/time-machine-gateway")
	exe, err := ResolveExecutable(procRoot)
	if err != nil {
		t.Fatalf("ResolveExecutable failed with %q", err)
	}
	if exe != "/opt/jenkins/bin/time-machine-gateway" {
		t.Errorf("ResolveExecutable() = %q", exe)
	}

	sibling, err := ResolveSibling(procRoot, "time_machine")
	if err != nil {
		t.Fatalf("ResolveSibling failed with %q", err)
	}
	if sibling != "/opt/jenkins/bin/time_machine" {
		t.Errorf("ResolveSibling() = %q", sibling)
	}
}

func TestResolveExecutableRealProc(t *testing.T) {
	if _, err := os.Stat("/proc/self/exe"); err != nil {
		t.Skip("/proc not available")
	}
	exe, err := ResolveExecutable(DefaultProcRoot)
	if err != nil {
		t.Fatalf("ResolveExecutable failed with %q", err)
	}
	if !filepath.IsAbs(exe) {
		t.Errorf("ResolveExecutable() = %q, expected an absolute path", exe)
	}
}

func TestResolveExecutableFailures(t *testing.T) {
	for _, tt := range []struct {
		name     string
		procRoot func(t *testing.T) string
		expected int
	}{
		{
			"missing",
			func(t *testing.T) string { return t.TempDir() },
			ExitIdentity,
		},
		{
			"relative",
			func(t *testing.T) string { return newProcRoot(t, "bin/gateway") },
			ExitIdentity,
		},
		{
			"deleted",
			func(t *testing.T) string { return newProcRoot(t, "/usr/local/bin/gateway (deleted)") },
			ExitIdentity,
		},
		{
			"too long",
			func(t *testing.T) string { return "/" + strings.Repeat("p", 5000) },
			ExitResource,
		},
	} {
		_, err := ResolveExecutable(tt.procRoot(t))
		if err == nil {
			t.Errorf("%s: ResolveExecutable succeeded unexpectedly", tt.name)
			continue
		}
		if got := ExitCode(err); got != tt.expected {
			t.Errorf("%s: ExitCode(%q) = %d, expected %d", tt.name, err, got, tt.expected)
		}
	}
}
