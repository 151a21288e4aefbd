package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x), A: 255})
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func newTestLoader(t *testing.T, size int) *Loader {
	t.Helper()
	cache, err := NewCache(size)
	if err != nil {
		t.Fatal(err)
	}
	return NewLoader(cache)
}

func TestLoadDecodesRealImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writePNG(t, path, 12, 8)

	img := newTestLoader(t, 16).Load(path)
	b := img.Bounds()
	if b.Dx() != 12 || b.Dy() != 8 {
		t.Fatalf("expected 12x8, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestLoadMissingFileReturnsSharedPlaceholder(t *testing.T) {
	loader := newTestLoader(t, 16)
	path := filepath.Join(t.TempDir(), "missing.png")

	first := loader.Load(path)
	second := loader.Load(path)

	if first != second {
		t.Error("expected repeated loads to return the identical placeholder")
	}
	if first != Placeholder() {
		t.Error("expected the shared placeholder bitmap")
	}
	b := first.Bounds()
	if b.Dx() != 200 || b.Dy() != 200 {
		t.Errorf("placeholder is %dx%d, want 200x200", b.Dx(), b.Dy())
	}
	if loader.cache.Len() != 1 {
		t.Errorf("expected a single cached entry, got %d", loader.cache.Len())
	}
}

func TestLoadCorruptFileReturnsPlaceholder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.jpg")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	zero := filepath.Join(dir, "zero.png")
	if err := os.WriteFile(zero, nil, 0644); err != nil {
		t.Fatal(err)
	}

	loader := newTestLoader(t, 16)
	if loader.Load(path) != Placeholder() {
		t.Error("corrupt file should yield the placeholder")
	}
	if loader.Load(zero) != Placeholder() {
		t.Error("zero-byte file should yield the placeholder")
	}
}

func TestDimensionsHeaderProbe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writePNG(t, path, 800, 600)

	loader := newTestLoader(t, 16)
	w, h := loader.Dimensions(path)
	if w != 800 || h != 600 {
		t.Fatalf("expected 800x600, got %dx%d", w, h)
	}
	if w, h := loader.Dimensions(filepath.Join(dir, "gone.png")); w != 0 || h != 0 {
		t.Fatalf("expected 0x0 for missing file, got %dx%d", w, h)
	}
}

func TestThumbnailScalesToHeight(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writePNG(t, path, 400, 200)

	thumb := newTestLoader(t, 16).Thumbnail(path, 100)
	b := thumb.Bounds()
	if b.Dy() != 100 {
		t.Fatalf("expected height 100, got %d", b.Dy())
	}
	if b.Dx() != 200 {
		t.Fatalf("expected aspect-preserving width 200, got %d", b.Dx())
	}
}

func TestCacheEvictionBound(t *testing.T) {
	dir := t.TempDir()
	loader := newTestLoader(t, 2)
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		p := filepath.Join(dir, name)
		writePNG(t, p, 4, 4)
		loader.Load(p)
	}
	if loader.cache.Len() != 2 {
		t.Fatalf("expected cache bounded at 2 entries, got %d", loader.cache.Len())
	}
}

func TestInfoReportsSizeAndDimensions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writePNG(t, path, 32, 16)

	info, err := newTestLoader(t, 16).Info(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Width != 32 || info.Height != 16 {
		t.Errorf("expected 32x16, got %dx%d", info.Width, info.Height)
	}
	if info.Bytes <= 0 {
		t.Error("expected a positive byte size")
	}
	if info.Taken != nil {
		t.Error("png without exif should have no capture time")
	}
}

type syncPool struct{ wg sync.WaitGroup }

func (p *syncPool) Submit(task func()) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		task()
	}()
}

func TestAsyncLoaderDeliversPathAndBitmap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writePNG(t, path, 6, 6)

	pool := &syncPool{}
	async := NewAsyncLoader(newTestLoader(t, 16), pool)

	done := make(chan struct{})
	async.Submit(path, func(p string, img image.Image) {
		if p != path {
			t.Errorf("expected completion for %q, got %q", path, p)
		}
		if img.Bounds().Dx() != 6 {
			t.Errorf("unexpected bitmap %v", img.Bounds())
		}
		close(done)
	})
	pool.wg.Wait()
	<-done
}
