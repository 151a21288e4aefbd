package classes

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"tinysort/src/features/scanning"
	"tinysort/src/triage"
)

// ClassInfo is one class as the class list presents it: raw folder name,
// optional friendly name, per-state counts and a preview image.
type ClassInfo struct {
	Name     string `json:"name"`
	Friendly string `json:"friendly,omitempty"`
	Keep     int    `json:"keep"`
	Review   int    `json:"review"`
	Delete   int    `json:"delete"`
	Icon     string `json:"icon,omitempty"`
}

// Service supplies class metadata for a project base directory. The core
// consumes this read-only; persistence of the labelmap is plain JSON next
// to the classes.
type Service struct {
	scanner *scanning.Scanner
}

func NewService(scanner *scanning.Scanner) *Service {
	return &Service{scanner: scanner}
}

// List returns the classes of a project with counts and preview icons.
// Numeric folder names sort numerically before lexicographic ones; the
// delete folder is infrastructure, not a class.
func (s *Service) List(base string) ([]ClassInfo, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("failed to read project directory: %w", err)
	}

	labelmap := LoadLabelmap(base)

	var names []string
	for _, entry := range entries {
		if entry.IsDir() && entry.Name() != "delete" && !strings.HasPrefix(entry.Name(), ".") {
			names = append(names, entry.Name())
		}
	}
	SortClassNames(names)

	infos := make([]ClassInfo, 0, len(names))
	for _, name := range names {
		ctx := triage.ClassContext{Base: base, Name: name}
		info := ClassInfo{
			Name:     name,
			Friendly: labelmap[name],
			Keep:     len(s.scanner.Scan(ctx.KeepDir(), 2, 0)),
			Review:   len(s.scanner.Scan(ctx.ReviewDir(), 2, 0)),
			Delete:   len(s.scanner.Scan(ctx.DeleteDir(), 2, 0)),
			Icon:     s.scanner.FirstImage(ctx.Dir(), 2),
		}
		infos = append(infos, info)
	}
	slog.Debug("listed classes", "base", base, "count", len(infos))
	return infos, nil
}

// ClassCounts is the per-state tally of one class.
type ClassCounts struct {
	Keep   int `json:"keep"`
	Review int `json:"review"`
	Delete int `json:"delete"`
}

// Counts returns the per-state tally for one class.
func (s *Service) Counts(base, name string) ClassCounts {
	ctx := triage.ClassContext{Base: base, Name: name}
	return ClassCounts{
		Keep:   len(s.scanner.Scan(ctx.KeepDir(), 2, 0)),
		Review: len(s.scanner.Scan(ctx.ReviewDir(), 2, 0)),
		Delete: len(s.scanner.Scan(ctx.DeleteDir(), 2, 0)),
	}
}

// FirstImage returns a preview image path for a class, or "".
func (s *Service) FirstImage(base, name string) string {
	ctx := triage.ClassContext{Base: base, Name: name}
	return s.scanner.FirstImage(ctx.Dir(), 2)
}

// SortClassNames orders class folder names the way the class list shows
// them: all-digit names numerically first, the rest case-insensitively.
func SortClassNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		ni, iNum := strconv.Atoi(names[i])
		nj, jNum := strconv.Atoi(names[j])
		switch {
		case iNum == nil && jNum == nil:
			return ni < nj
		case iNum == nil:
			return true
		case jNum == nil:
			return false
		default:
			return strings.ToLower(names[i]) < strings.ToLower(names[j])
		}
	})
}
