package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"tinysort/src/triage"
)

// Mover is the infrastructure implementation of triage.FileMover. It moves
// an image and its sidecar annotation between the class state directories.
type Mover struct{}

func NewMover() *Mover {
	return &Mover{}
}

// Move moves src into dstDir, creating dstDir as needed, and returns the new
// path. When src already resolves to the destination path the move is a
// no-op. A sidecar .txt with the same basename is co-moved best effort: a
// sidecar failure after the image moved is reported, but the image stays at
// the destination (each file move is its own unit, not a transaction).
func (m *Mover) Move(src, dstDir string) (string, error) {
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return "", &triage.MoveError{Path: src, Dest: dstDir, Err: err}
	}

	dst := filepath.Join(dstDir, filepath.Base(src))
	if dst == src {
		return dst, nil
	}

	if err := moveFile(src, dst); err != nil {
		return "", &triage.MoveError{Path: src, Dest: dst, Err: err}
	}

	sidecar := triage.SidecarPath(src)
	if _, err := os.Stat(sidecar); err == nil {
		sidecarDst := filepath.Join(dstDir, filepath.Base(sidecar))
		if err := moveFile(sidecar, sidecarDst); err != nil {
			return dst, &triage.MoveError{Path: sidecar, Dest: sidecarDst, Err: err}
		}
	}

	return dst, nil
}

// moveFile renames src to dst, falling back to copy+remove when the rename
// crosses filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove original file after copy: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	sourceFileStat, err := os.Stat(src)
	if err != nil {
		return err
	}

	if !sourceFileStat.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destination.Close()
	_, err = io.Copy(destination, source)
	return err
}
