package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ignoreInRepo appends each path to repoRoot/.gitignore unless an equal
// line is already there. It returns the entries it added.
func ignoreInRepo(repoRoot string, paths ...string) ([]string, error) {
	gitignorePath := filepath.Join(repoRoot, ".gitignore")
	existing, err := os.ReadFile(gitignorePath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read .gitignore: %w", err)
	}
	present := strings.Split(string(existing), "\n")
	for i, line := range present {
		present[i] = strings.TrimSpace(line)
	}

	var added []string
	for _, path := range paths {
		entry, err := repoRelative(repoRoot, path)
		if err != nil {
			return nil, err
		}
		if slices.Contains(present, entry) || slices.Contains(added, entry) {
			continue
		}
		added = append(added, entry)
	}
	if len(added) == 0 {
		return nil, nil
	}

	updated := string(existing)
	if updated != "" && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += strings.Join(added, "\n") + "\n"
	if err := os.WriteFile(gitignorePath, []byte(updated), 0o644); err != nil {
		return nil, fmt.Errorf("write .gitignore: %w", err)
	}
	return added, nil
}

// repoRelative turns path into a slash-separated entry under repoRoot.
func repoRelative(repoRoot, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("gitignore entry is empty")
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) {
		rel, err := filepath.Rel(repoRoot, clean)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", path, err)
		}
		clean = rel
	}
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q is outside the repo root", path)
	}
	return filepath.ToSlash(clean), nil
}
