// Package assets resolves the image file candidates named by catalog and
// step records against local directories. Records list candidate file names
// in priority order; a candidate that does not exist on disk is skipped and
// a record with no surviving candidate is a normal condition, not an error.
package assets

import (
	"os"
	"path/filepath"
	"strings"
)

// FirstExisting returns the full path of the first candidate under dir that
// exists on disk, preserving the caller-supplied candidate order. The
// boolean is false when the candidate list is empty or nothing exists.
func FirstExisting(dir string, names []string) (string, bool) {
	for _, name := range names {
		if name == "" {
			continue
		}
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// AllExisting returns every candidate under dir that exists on disk,
// preserving order. Used for records that may legitimately carry several
// illustrations (a step with multiple photographs).
func AllExisting(dir string, names []string) []string {
	var paths []string
	for _, name := range names {
		if name == "" {
			continue
		}
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			paths = append(paths, p)
		}
	}
	return paths
}

// ResolveDir returns the first directory among primary and alternates that
// exists. When none exist, primary is returned unchanged so that downstream
// lookups degrade to empty results rather than failing.
func ResolveDir(primary string, alternates ...string) string {
	candidates := append([]string{primary}, alternates...)
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return primary
}

// DirVariants returns spelling variants of dir's base name with spaces and
// underscores swapped. Image folders in the wild are named both ways
// ("step images" vs "step_images"); ResolveDir uses these as fallbacks.
func DirVariants(dir string) []string {
	base := filepath.Base(dir)
	parent := filepath.Dir(dir)

	var variants []string
	if strings.Contains(base, " ") {
		variants = append(variants, filepath.Join(parent, strings.ReplaceAll(base, " ", "_")))
	}
	if strings.Contains(base, "_") {
		variants = append(variants, filepath.Join(parent, strings.ReplaceAll(base, "_", " ")))
	}
	return variants
}
