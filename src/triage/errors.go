package triage

import (
	"errors"
	"fmt"
)

// Benign "nothing to do" conditions. Callers treat these as no-ops, not
// failures requiring recovery.
var (
	ErrNoCurrentImage = errors.New("no current image in work queue")
	ErrNothingToUndo  = errors.New("history is empty, nothing to undo")
	ErrNoSession      = errors.New("no sorting session open")
)

// MoveError reports a failed physical move during sort or undo. Move
// failures are never swallowed: losing track of a file's true location
// would break the agreement between queue, history and filesystem, so the
// caller gets the path, the attempted destination and the OS cause.
type MoveError struct {
	Path string
	Dest string
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("failed to move %s to %s: %v", e.Path, e.Dest, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
