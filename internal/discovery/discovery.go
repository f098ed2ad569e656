// Package discovery lists the media files in a working directory that a
// batch run should transcribe.
package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotDirectory reports that the working directory is missing or is a file.
var ErrNotDirectory = errors.New("not a directory")

// Options controls which directory entries count as media.
type Options struct {
	// Patterns are shell globs matched against entry names, e.g. "*.mp4".
	Patterns []string
	// CaseInsensitive folds case on both pattern and name before matching.
	CaseInsensitive bool
}

// Discover returns the absolute paths of regular files directly inside dir
// whose names match any pattern. Each path appears once and the result is
// sorted lexicographically. An empty result is not an error.
func Discover(dir string, opts Options) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", abs, ErrNotDirectory)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", abs, ErrNotDirectory)
	}

	patterns := opts.Patterns
	if opts.CaseInsensitive {
		patterns = make([]string, len(opts.Patterns))
		for i, p := range opts.Patterns {
			patterns[i] = strings.ToLower(p)
		}
	}
	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", abs, err)
	}

	// ReadDir yields each name once and matchesAny accepts a name on its
	// first matching pattern, so overlapping patterns cannot duplicate a path.
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if !matchesAny(patterns, name, opts.CaseInsensitive) {
			continue
		}
		path := filepath.Join(abs, name)
		if !isRegular(entry, path) {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

func matchesAny(patterns []string, name string, fold bool) bool {
	if fold {
		name = strings.ToLower(name)
	}
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// isRegular follows symlinks so a linked media file is still picked up.
func isRegular(entry os.DirEntry, path string) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Extensions returns the distinct extensions named by simple "*.ext"
// patterns, lowercased and without the dot, in first-seen order. It is used
// to tell the user which formats were searched for.
func Extensions(patterns []string) []string {
	seen := make(map[string]struct{}, len(patterns))
	var out []string
	for _, pattern := range patterns {
		ext, ok := strings.CutPrefix(pattern, "*.")
		if !ok || ext == "" || strings.ContainsAny(ext, "*?[") {
			continue
		}
		ext = strings.ToLower(ext)
		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
}

// OutputPath replaces the final extension of mediaPath with ext.
func OutputPath(mediaPath, ext string) string {
	return strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + ext
}
