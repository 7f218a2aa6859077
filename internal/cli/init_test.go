package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPrompterDefaultsAndRetries(t *testing.T) {
	var out bytes.Buffer
	ask := newPrompter(strings.NewReader("maybe\ny\n\nresults.db\n"), &out)

	yes, err := ask.YesNo("Continue?", false)
	if err != nil || !yes {
		t.Fatalf("YesNo = %v, %v", yes, err)
	}
	if !strings.Contains(out.String(), "Please answer yes or no.") {
		t.Fatalf("expected a retry hint, got %q", out.String())
	}
	value, err := ask.String("Results database", "default.db")
	if err != nil || value != "default.db" {
		t.Fatalf("String with empty answer = %q, %v", value, err)
	}
	value, err = ask.String("Results database", "default.db")
	if err != nil || value != "results.db" {
		t.Fatalf("String = %q, %v", value, err)
	}
	if _, err := ask.String("Title", ""); err == nil {
		t.Fatalf("expected error at EOF without a default")
	}
}

func TestIgnoreInRepoAppendsOnce(t *testing.T) {
	root := t.TempDir()
	gitignore := filepath.Join(root, ".gitignore")
	if err := os.WriteFile(gitignore, []byte("bin/\n.env"), 0o644); err != nil {
		t.Fatalf("write .gitignore: %v", err)
	}

	added, err := ignoreInRepo(root, filepath.Join(root, ".quizform"), filepath.Join(root, ".env"))
	if err != nil {
		t.Fatalf("ignoreInRepo: %v", err)
	}
	if strings.Join(added, ",") != ".quizform" {
		t.Fatalf("unexpected added entries %v", added)
	}
	data, err := os.ReadFile(gitignore)
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	if string(data) != "bin/\n.env\n.quizform\n" {
		t.Fatalf("unexpected .gitignore %q", data)
	}

	added, err = ignoreInRepo(root, ".quizform")
	if err != nil || len(added) != 0 {
		t.Fatalf("expected no change, got %v, %v", added, err)
	}
	if _, err := ignoreInRepo(root, filepath.Dir(root)); err == nil {
		t.Fatalf("expected error for a path outside the repo")
	}
}

func TestDiscoverGitRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	if got := discoverGitRoot(nested); got != root {
		t.Fatalf("discoverGitRoot = %q, want %q", got, root)
	}
}
