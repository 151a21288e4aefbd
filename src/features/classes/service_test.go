package classes

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"tinysort/src/features/scanning"
)

func mkdirs(t *testing.T, base string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(base, d), 0755); err != nil {
			t.Fatal(err)
		}
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestSortClassNamesNumericFirst(t *testing.T) {
	names := []string{"zebra", "10", "Apple", "2", "banana", "1"}
	SortClassNames(names)
	want := []string{"1", "2", "10", "Apple", "banana", "zebra"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("got %v, want %v", names, want)
	}
}

func TestListSkipsDeleteAndHiddenDirs(t *testing.T) {
	base := t.TempDir()
	mkdirs(t, base, "cat", "dog", "delete", ".git")

	infos, err := NewService(scanning.NewScanner()).List(base)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 2 || infos[0].Name != "cat" || infos[1].Name != "dog" {
		t.Fatalf("unexpected classes: %+v", infos)
	}
}

func TestListCountsAndFriendlyNames(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "cat", "unsorted.jpg"))
	touch(t, filepath.Join(base, "cat", "keep", "k1.jpg"))
	touch(t, filepath.Join(base, "cat", "keep", "k2.jpg"))
	touch(t, filepath.Join(base, "cat", "review", "r.jpg"))
	touch(t, filepath.Join(base, "delete", "cat", "d.jpg"))
	if err := SaveLabelmap(base, map[string]string{"cat": "Cats"}); err != nil {
		t.Fatal(err)
	}

	infos, err := NewService(scanning.NewScanner()).List(base)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected one class, got %+v", infos)
	}
	got := infos[0]
	if got.Keep != 2 || got.Review != 1 || got.Delete != 1 {
		t.Errorf("unexpected counts: %+v", got)
	}
	if got.Friendly != "Cats" {
		t.Errorf("expected friendly name Cats, got %q", got.Friendly)
	}
	if got.Icon == "" {
		t.Error("expected a preview icon path")
	}
}

func TestLabelmapRoundTripAndCorruption(t *testing.T) {
	base := t.TempDir()

	if m := LoadLabelmap(base); len(m) != 0 {
		t.Fatalf("missing labelmap should load empty, got %v", m)
	}

	want := map[string]string{"0": "background", "1": "person"}
	if err := SaveLabelmap(base, want); err != nil {
		t.Fatal(err)
	}
	if got := LoadLabelmap(base); !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch: %v", got)
	}

	if err := os.WriteFile(filepath.Join(base, LabelmapFile), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if m := LoadLabelmap(base); len(m) != 0 {
		t.Fatalf("corrupt labelmap should load empty, got %v", m)
	}
}
