package triage

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ClassContext identifies one class (a category folder) within a project
// base directory and knows the directory layout the sorter preserves:
//
//	<base>/<class>/              unsorted pool (recursive, minus keep/review)
//	<base>/<class>/keep/         kept images
//	<base>/<class>/review/       images marked for review
//	<base>/delete/<class>/       deleted-but-retained images
type ClassContext struct {
	Base string
	Name string
}

// Dir returns the class root directory.
func (c ClassContext) Dir() string {
	return filepath.Join(c.Base, c.Name)
}

// KeepDir returns the directory holding kept images.
func (c ClassContext) KeepDir() string {
	return filepath.Join(c.Base, c.Name, "keep")
}

// ReviewDir returns the directory holding images marked for review.
func (c ClassContext) ReviewDir() string {
	return filepath.Join(c.Base, c.Name, "review")
}

// DeleteDir returns the delete folder for this class. Deletion keeps the
// file on disk; the class name is preserved as a subfolder of <base>/delete.
func (c ClassContext) DeleteDir() string {
	return filepath.Join(c.Base, "delete", c.Name)
}

// TargetDir maps a sort action to its destination directory.
func (c ClassContext) TargetDir(action State) (string, error) {
	switch action {
	case StateKeep:
		return c.KeepDir(), nil
	case StateReview:
		return c.ReviewDir(), nil
	case StateDelete:
		return c.DeleteDir(), nil
	}
	return "", fmt.Errorf("invalid sort action %q", action)
}

// StateOf derives the triage state of a path from its location relative to
// the class directories. Anything under the class root outside keep/review
// is unsorted.
func (c ClassContext) StateOf(path string) State {
	if inside(c.KeepDir(), path) {
		return StateKeep
	}
	if inside(c.ReviewDir(), path) {
		return StateReview
	}
	if inside(c.DeleteDir(), path) {
		return StateDelete
	}
	return StateUnsorted
}

func inside(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
