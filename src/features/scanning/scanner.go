package scanning

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tinysort/src/features/metrics"
	"tinysort/src/triage"
)

// DefaultMaxDepth bounds directory descent when callers have no opinion.
const DefaultMaxDepth = 3

// skipDirs are transient directory names never worth descending into.
var skipDirs = map[string]bool{
	"temp":       true,
	"tmp":        true,
	"cache":      true,
	"appdata":    true,
	"localcache": true,
}

// Scanner enumerates image files with bounded depth and best-effort error
// handling. It implements triage.Scanner.
type Scanner struct{}

func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan walks root iteratively up to maxDepth levels deep and returns the
// paths of all recognized image files, in filesystem enumeration order.
// limit > 0 stops the scan once that many results are collected.
//
// Every per-entry failure (permission denied, vanished file, unreadable
// directory) is skipped so a single bad subtree cannot abort enumeration of
// a large dataset; a missing root simply yields an empty result.
func (s *Scanner) Scan(root string, maxDepth, limit int) []string {
	if _, err := os.Stat(root); err != nil {
		return nil
	}

	type frame struct {
		dir   string
		depth int
	}

	var images []string
	queue := []frame{{dir: root, depth: 0}}

	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(f.dir)
		if err != nil {
			slog.Debug("skipping unreadable directory", "dir", f.dir, "error", err)
			continue
		}

		for _, entry := range entries {
			if limit > 0 && len(images) >= limit {
				return images
			}
			if entry.IsDir() {
				name := strings.ToLower(entry.Name())
				if strings.HasPrefix(name, ".") || skipDirs[name] {
					continue
				}
				if f.depth < maxDepth {
					queue = append(queue, frame{dir: filepath.Join(f.dir, entry.Name()), depth: f.depth + 1})
				}
				continue
			}
			if triage.IsImage(entry.Name()) {
				images = append(images, filepath.Join(f.dir, entry.Name()))
			}
		}
	}

	metrics.FilesScanned.Add(float64(len(images)))
	return images
}

// Count is a convenience for callers that only need the number of images
// under a directory.
func (s *Scanner) Count(root string, maxDepth int) int {
	return len(s.Scan(root, maxDepth, 0))
}

// FirstImage returns the first image found under root, or "" when there is
// none. Used to cheaply fetch icons and previews without scanning entire
// subtrees.
func (s *Scanner) FirstImage(root string, maxDepth int) string {
	images := s.Scan(root, maxDepth, 1)
	if len(images) == 0 {
		return ""
	}
	return images[0]
}
