package sorting

import (
	"image"
	"path/filepath"
	"testing"
	"time"

	"tinysort/src/features/scanning"
	"tinysort/src/infra/files"
	"tinysort/src/infra/imaging"
	"tinysort/src/triage"
)

// manualLoader defers submitted decodes until the test fires them, making
// completion ordering fully deterministic.
type manualLoader struct {
	pending []func()
}

func (l *manualLoader) Load(path string) image.Image {
	return imaging.Placeholder()
}

func (l *manualLoader) Dimensions(path string) (int, int) {
	return 0, 0
}

func (l *manualLoader) Submit(path string, done func(string, image.Image)) {
	l.pending = append(l.pending, func() { done(path, imaging.Placeholder()) })
}

func (l *manualLoader) fire(t *testing.T, i int) {
	t.Helper()
	if i >= len(l.pending) {
		t.Fatalf("no pending load %d, have %d", i, len(l.pending))
	}
	l.pending[i]()
}

func TestStaleLoadCompletionIsDiscarded(t *testing.T) {
	base := t.TempDir()
	writePNG(t, filepath.Join(base, "cat", "a.jpg"), 10, 10)
	writePNG(t, filepath.Join(base, "cat", "b.jpg"), 10, 10)

	loader := &manualLoader{}
	s := NewSession(
		triage.ClassContext{Base: base, Name: "cat"},
		scanning.NewScanner(),
		loader,
		files.NewMover(),
		Options{},
	)

	// One load was requested for the initial head (a.jpg). Navigate before
	// it completes: the head is now b.jpg and a second load is pending.
	s.Navigate(1)
	if len(loader.pending) != 2 {
		t.Fatalf("expected 2 pending loads, got %d", len(loader.pending))
	}

	// The stale completion for a.jpg must be dropped.
	loader.fire(t, 0)
	select {
	case result := <-s.ImageReady():
		t.Fatalf("stale completion delivered: %q", result.Path)
	case <-time.After(50 * time.Millisecond):
	}

	// The completion matching the current head is applied.
	loader.fire(t, 1)
	select {
	case result := <-s.ImageReady():
		if filepath.Base(result.Path) != "b.jpg" {
			t.Fatalf("expected b.jpg, got %q", result.Path)
		}
	case <-time.After(time.Second):
		t.Fatal("fresh completion never delivered")
	}
}

func TestLatestResultWinsWhenUnconsumed(t *testing.T) {
	base := t.TempDir()
	writePNG(t, filepath.Join(base, "cat", "a.jpg"), 10, 10)

	loader := &manualLoader{}
	s := NewSession(
		triage.ClassContext{Base: base, Name: "cat"},
		scanning.NewScanner(),
		loader,
		files.NewMover(),
		Options{},
	)

	// Two completions for the same head with nobody reading: the channel
	// must end up holding the latest without blocking.
	loader.fire(t, 0)
	s.Navigate(1) // single-item queue, head unchanged, schedules another load
	loader.fire(t, 1)

	select {
	case result := <-s.ImageReady():
		if filepath.Base(result.Path) != "a.jpg" {
			t.Fatalf("unexpected result %q", result.Path)
		}
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}
}
