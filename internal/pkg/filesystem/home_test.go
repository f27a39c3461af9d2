package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := map[string]string{
		"~":               home,
		"~/a/b.yaml":      filepath.Join(home, "a", "b.yaml"),
		"/etc/../tmp/x":   "/tmp/x",
		"relative/./file": "relative/file",
	}
	for in, want := range tests {
		if got := ExpandPath(in); got != want {
			t.Errorf("ExpandPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEnsureParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one", "two", "config.yaml")
	if err := EnsureParentDir(path, 0o755); err != nil {
		t.Fatalf("EnsureParentDir error: %v", err)
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected directory at %s", filepath.Dir(path))
	}
}
