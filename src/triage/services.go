package triage

import "image"

// FileMover moves an image file (and its sidecar annotation, when present)
// into a destination directory and returns the new path. Moving a file onto
// its current path is a no-op.
type FileMover interface {
	Move(src, dstDir string) (string, error)
}

// Scanner enumerates image files under a root directory. maxDepth bounds the
// descent, limit (0 = unlimited) stops the scan early. Scanners never fail;
// inaccessible entries are skipped.
type Scanner interface {
	Scan(root string, maxDepth, limit int) []string
}

// BitmapLoader materializes images from disk. Load never fails: unreadable
// files yield a placeholder bitmap, which is a valid, cacheable value.
type BitmapLoader interface {
	Load(path string) image.Image
	Dimensions(path string) (int, int)
}

// AsyncBitmapLoader schedules a decode on the worker pool and invokes done
// with the completed path and bitmap. By the time the callback runs the
// caller may want a different path; the caller owns the staleness check.
type AsyncBitmapLoader interface {
	BitmapLoader
	Submit(path string, done func(path string, img image.Image))
}

// JobService is the slice of job management the sorting engine needs to run
// background re-enumeration.
type JobService interface {
	StartJob(jobType string, name string, metadata map[string]any) (string, error)
	UpdateJobProgress(jobID string, progress int, message string)
}
