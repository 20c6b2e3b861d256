package paths

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestHomeDirUsesHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	home, err := HomeDir()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if home != filepath.Join("/tmp", "test-home") {
		t.Fatalf("expected %s, got %s", filepath.Join("/tmp", "test-home"), home)
	}
}

func TestDefaultConfigPathUsesHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := filepath.Join("/tmp", "test-home", ".config", "lists", "config.toml")
	if path != expected {
		t.Fatalf("expected %s, got %s", expected, path)
	}
}

func TestResolveWithDefault(t *testing.T) {
	fallbackErr := errors.New("no fallback")

	path, err := ResolveWithDefault("explicit.toml", func() (string, error) {
		return "", fallbackErr
	})
	if err != nil || path != "explicit.toml" {
		t.Fatalf("expected explicit path, got %q, %v", path, err)
	}

	_, err = ResolveWithDefault("", func() (string, error) {
		return "", fallbackErr
	})
	if !errors.Is(err, fallbackErr) {
		t.Fatalf("expected fallback error, got %v", err)
	}
}

func TestResolveRelative(t *testing.T) {
	cases := []struct {
		base, path, want string
	}{
		{"/srv/app", "tasks", "/srv/app/tasks"},
		{"/srv/app", "/var/lib/tasks/", "/var/lib/tasks"},
		{"/srv/app", "tasks/lists.db", "/srv/app/tasks/lists.db"},
		{"/srv/app", "", ""},
	}
	for _, tc := range cases {
		if got := ResolveRelative(tc.base, tc.path); got != tc.want {
			t.Fatalf("ResolveRelative(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}

func TestWorkingDirReturnsCurrentDir(t *testing.T) {
	workDir := t.TempDir()
	t.Chdir(workDir)

	resolved, err := WorkingDir()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resolved != workDir {
		t.Fatalf("expected %s, got %s", workDir, resolved)
	}
}
