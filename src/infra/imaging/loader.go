package imaging

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"time"

	"github.com/nfnt/resize"
	"github.com/rwcarlsen/goexif/exif"

	"tinysort/src/features/metrics"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Loader decodes image files into bitmaps, memoized in a bounded cache.
// From the caller's perspective Load is pure and infallible: the same path
// always yields an equivalent bitmap, and any failure (missing file,
// zero-byte file, corrupt data, unsupported format) yields the shared error
// placeholder instead of an error.
type Loader struct {
	cache *Cache
}

func NewLoader(cache *Cache) *Loader {
	return &Loader{cache: cache}
}

// Load returns the decoded bitmap for path, or the error placeholder when
// the file cannot be decoded. Results, placeholder included, are cached.
func (l *Loader) Load(path string) image.Image {
	if img, ok := l.cache.Get(path); ok {
		return img
	}

	img, err := decode(path)
	if err != nil {
		slog.Debug("image decode failed, using placeholder", "path", path, "error", err)
		metrics.DecodeFailures.Inc()
		img = Placeholder()
	}
	l.cache.Add(path, img)
	return img
}

// Dimensions probes the pixel size of an image from its header without a
// full decode. Returns (0, 0) for anything unreadable.
func (l *Loader) Dimensions(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

// Thumbnail returns the bitmap for path scaled to the given height,
// preserving aspect ratio.
func (l *Loader) Thumbnail(path string, height int) image.Image {
	if height <= 0 {
		return l.Load(path)
	}
	return resize.Resize(0, uint(height), l.Load(path), resize.Lanczos3)
}

// ImageInfo is the metadata shown alongside a loaded image.
type ImageInfo struct {
	Path     string     `json:"path"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Bytes    int64      `json:"bytes"`
	Taken    *time.Time `json:"taken,omitempty"`
	CameraID string     `json:"camera,omitempty"`
}

// Info collects size, dimensions and best-effort EXIF metadata for path.
func (l *Loader) Info(path string) (*ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}

	w, h := l.Dimensions(path)
	info := &ImageInfo{Path: path, Width: w, Height: h, Bytes: stat.Size()}

	f, err := os.Open(path)
	if err != nil {
		return info, nil
	}
	defer f.Close()

	// EXIF is optional; most png/bmp files carry none.
	meta, err := exif.Decode(f)
	if err != nil {
		return info, nil
	}
	if taken, err := meta.DateTime(); err == nil {
		info.Taken = &taken
	}
	if model, err := meta.Get(exif.Model); err == nil {
		if s, err := model.StringVal(); err == nil {
			info.CameraID = s
		}
	}
	return info, nil
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode image %s: %w", path, err)
	}
	return img, nil
}
