package scanning

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanFiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.jpg"))
	touch(t, filepath.Join(dir, "b.PNG"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "c.mp4"))

	got := NewScanner().Scan(dir, 3, 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 images, got %d: %v", len(got), got)
	}
}

func TestScanDepthBound(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "root.jpg"))
	touch(t, filepath.Join(dir, "l1", "one.jpg"))
	touch(t, filepath.Join(dir, "l1", "l2", "two.jpg"))
	touch(t, filepath.Join(dir, "l1", "l2", "l3", "three.jpg"))

	got := NewScanner().Scan(dir, 2, 0)
	if len(got) != 3 {
		t.Fatalf("expected 3 images within depth 2, got %d: %v", len(got), got)
	}
	for _, p := range got {
		if filepath.Base(p) == "three.jpg" {
			t.Errorf("file beyond max depth was returned: %s", p)
		}
	}
}

func TestScanSkipsHiddenAndTransientDirs(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "visible.jpg"))
	touch(t, filepath.Join(dir, ".hidden", "h.jpg"))
	touch(t, filepath.Join(dir, "Temp", "t.jpg"))
	touch(t, filepath.Join(dir, "CACHE", "c.jpg"))
	touch(t, filepath.Join(dir, "tmp", "x.jpg"))

	got := NewScanner().Scan(dir, 3, 0)
	if len(got) != 1 || filepath.Base(got[0]) != "visible.jpg" {
		t.Fatalf("expected only visible.jpg, got %v", got)
	}
}

func TestScanLimitStopsEarly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"} {
		touch(t, filepath.Join(dir, name))
	}

	got := NewScanner().Scan(dir, 3, 2)
	if len(got) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(got))
	}
}

func TestScanMissingRootReturnsEmpty(t *testing.T) {
	got := NewScanner().Scan(filepath.Join(t.TempDir(), "nope"), 3, 0)
	if len(got) != 0 {
		t.Fatalf("expected empty result for missing root, got %v", got)
	}
}

func TestScanSurvivesBrokenSymlink(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "ok.jpg"))
	if err := os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "dangling")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got := NewScanner().Scan(dir, 3, 0)
	if len(got) != 1 {
		t.Fatalf("expected scan to survive dangling symlink, got %v", got)
	}
}

func TestFirstImage(t *testing.T) {
	dir := t.TempDir()
	if got := NewScanner().FirstImage(dir, 2); got != "" {
		t.Fatalf("expected empty first image, got %q", got)
	}
	touch(t, filepath.Join(dir, "sub", "p.png"))
	if got := NewScanner().FirstImage(dir, 2); filepath.Base(got) != "p.png" {
		t.Fatalf("expected p.png, got %q", got)
	}
}
