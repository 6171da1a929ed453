package detect

import (
	"path/filepath"
	"testing"

	"github.com/flarebyte/reposh/internal/testutil"
)

func TestGuess_MarkerInWorkingDirectory(t *testing.T) {
	cases := map[string]string{
		".git":   "git",
		".hg":    "hg",
		"_darcs": "darcs",
		".svn":   "svn",
	}
	for dir, want := range cases {
		root := t.TempDir()
		testutil.MakeDirs(t, root, dir)
		got, err := Guess(root)
		if err != nil {
			t.Fatalf("guess %s: %v", dir, err)
		}
		if got != want {
			t.Fatalf("marker %s: got %q want %q", dir, got, want)
		}
	}
}

func TestGuess_WalksUpToParent(t *testing.T) {
	root := t.TempDir()
	testutil.MakeDirs(t, root, ".hg", "src/pkg/deep")
	got, err := Guess(filepath.Join(root, "src", "pkg", "deep"))
	if err != nil {
		t.Fatalf("guess: %v", err)
	}
	if got != "hg" {
		t.Fatalf("got %q want hg", got)
	}
}

func TestGuess_NearestMarkerWins(t *testing.T) {
	root := t.TempDir()
	testutil.MakeDirs(t, root, ".git", "vendor/lib/.svn")
	got, err := Guess(filepath.Join(root, "vendor", "lib"))
	if err != nil {
		t.Fatalf("guess: %v", err)
	}
	if got != "svn" {
		t.Fatalf("got %q want svn", got)
	}
}

func TestGuess_MarkerOrderWithinDirectory(t *testing.T) {
	root := t.TempDir()
	testutil.MakeDirs(t, root, ".svn", ".git")
	got, err := Guess(root)
	if err != nil {
		t.Fatalf("guess: %v", err)
	}
	if got != "git" {
		t.Fatalf("got %q want git", got)
	}
}

func TestGuess_MarkerMustBeDirectory(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, filepath.Join(root, ".hg"), "not a repo")
	testutil.MakeDirs(t, root, "_darcs")
	got, err := Guess(root)
	if err != nil {
		t.Fatalf("guess: %v", err)
	}
	if got != "darcs" {
		t.Fatalf("got %q want darcs", got)
	}
}
