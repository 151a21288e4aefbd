package triage

import (
	"path/filepath"
	"strings"
)

// State is the triage state of an image, derived from the directory that
// currently contains it. The directory move IS the state transition; a State
// is never stored independently of the file's location.
type State string

const (
	StateUnsorted State = "unsorted"
	StateKeep     State = "keep"
	StateReview   State = "review"
	StateDelete   State = "delete"
)

// SortActions are the states a user action can move an unsorted image into.
var SortActions = map[State]bool{
	StateKeep:   true,
	StateReview: true,
	StateDelete: true,
}

// ImageExtensions is the recognized set of image file extensions, lower case.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".gif":  true,
}

// IsImage reports whether path has a recognized image extension.
func IsImage(path string) bool {
	return ImageExtensions[strings.ToLower(filepath.Ext(path))]
}

// SidecarPath returns the path of the annotation sidecar bound to an image:
// same basename, .txt extension. The sidecar may or may not exist on disk.
func SidecarPath(imagePath string) string {
	ext := filepath.Ext(imagePath)
	return strings.TrimSuffix(imagePath, ext) + ".txt"
}

// ImageEntry identifies one image file. The path is the identity key; once
// the file is moved the old entry is stale and must not be used again.
type ImageEntry struct {
	Path string
}
