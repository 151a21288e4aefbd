package sorting

import (
	"context"
	"image"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"tinysort/src/features/metrics"
	"tinysort/src/triage"
)

// Options tune a sorting session. Zero values fall back to the defaults.
type Options struct {
	ChunkSize   int
	HistorySize int
	ScanDepth   int
}

func (o Options) withDefaults() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.HistorySize <= 0 {
		o.HistorySize = DefaultHistorySize
	}
	if o.ScanDepth <= 0 {
		o.ScanDepth = 3
	}
	return o
}

// LoadResult is the async image-ready notification: the decoded bitmap for
// a path that was the queue head when the decode was requested.
type LoadResult struct {
	Path  string
	Image image.Image
}

// Counts is the per-state tally of a class, derived entirely from the
// filesystem.
type Counts struct {
	Keep      int `json:"keep"`
	Review    int `json:"review"`
	Delete    int `json:"delete"`
	Remaining int `json:"remaining"`
}

// ChunkInfo describes the chunking state of the open session.
type ChunkInfo struct {
	ActiveIndex int `json:"active_index"`
	ChunkCount  int `json:"chunk_count"`
	ChunkImages int `json:"chunk_images"`
}

// Stats is the session throughput summary the info panel displays.
type Stats struct {
	Processed    int     `json:"processed"`
	Total        int     `json:"total"`
	ImagesPerMin float64 `json:"images_per_min"`
	ETASeconds   int     `json:"eta_seconds"`
}

// Session is the sort/undo engine for one open class. All mutations to the
// work queue, history stack and chunk index go through the session mutex;
// worker goroutines only decode bitmaps and never touch this state.
type Session struct {
	mu    sync.Mutex
	class triage.ClassContext
	opts  Options

	scanner triage.Scanner
	loader  triage.AsyncBitmapLoader
	mover   triage.FileMover

	chunks  *Chunks
	active  int
	queue   *WorkQueue
	history *History

	ready     chan LoadResult
	startedAt time.Time
}

// NewSession enumerates the unsorted pool of class, activates chunk 0 and
// kicks off the first async load.
func NewSession(class triage.ClassContext, scanner triage.Scanner, loader triage.AsyncBitmapLoader, mover triage.FileMover, opts Options) *Session {
	s := &Session{
		class:     class,
		opts:      opts.withDefaults(),
		scanner:   scanner,
		loader:    loader,
		mover:     mover,
		history:   NewHistory(opts.withDefaults().HistorySize),
		ready:     make(chan LoadResult, 1),
		startedAt: time.Now(),
	}
	s.mu.Lock()
	s.enumerateLocked(nil)
	s.mu.Unlock()
	return s
}

// Class returns the class this session sorts.
func (s *Session) Class() triage.ClassContext {
	return s.class
}

// enumerateLocked recomputes the full unsorted list, repartitions it and
// activates chunk 0. Chunk indices from before the call are meaningless
// afterwards.
func (s *Session) enumerateLocked(progress func(int, string)) {
	all := s.scanner.Scan(s.class.Dir(), s.opts.ScanDepth, 0)
	unsorted := all[:0:0]
	for _, p := range all {
		if s.class.StateOf(p) == triage.StateUnsorted {
			unsorted = append(unsorted, p)
		}
	}
	if progress != nil {
		progress(50, "enumerated unsorted pool")
	}
	s.chunks = NewChunks(unsorted, s.opts.ChunkSize)
	s.activateChunkLocked(0)
	if progress != nil {
		progress(100, "chunk 0 active")
	}
	slog.Info("class enumerated", "class", s.class.Name, "unsorted", len(unsorted), "chunks", s.chunks.Count())
}

// activateChunkLocked loads one chunk into the work queue, ordered by
// descending max(width, height) so the largest images surface first.
// Dimensions come from a header-only probe, not a full decode.
func (s *Session) activateChunkLocked(index int) {
	s.active = s.chunks.Clamp(index)
	paths := s.chunks.Slice(s.active)

	type sized struct {
		path string
		dim  int
	}
	entries := make([]sized, len(paths))
	for i, p := range paths {
		w, h := s.loader.Dimensions(p)
		d := w
		if h > d {
			d = h
		}
		entries[i] = sized{path: p, dim: d}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].dim > entries[j].dim
	})

	ordered := make([]string, len(entries))
	for i, e := range entries {
		ordered[i] = e.path
	}
	s.queue = NewWorkQueue(ordered)
	metrics.QueueLength.Set(float64(s.queue.Len()))
	s.requestLoadLocked()
}

// Current returns the path at the head of the work queue.
func (s *Session) Current() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Front()
}

// Sort moves the current image (and sidecar) into the directory of the
// given action, records the move in history, pops the queue head and
// triggers a load of the new head. On a move failure the queue and history
// are left untouched and the error is returned to the caller.
func (s *Session) Sort(action triage.State) error {
	if !triage.SortActions[action] {
		_, err := s.class.TargetDir(action)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	src, ok := s.queue.Front()
	if !ok {
		return triage.ErrNoCurrentImage
	}

	dstDir, err := s.class.TargetDir(action)
	if err != nil {
		return err
	}

	origParent := filepath.Dir(src)
	newPath, err := s.mover.Move(src, dstDir)
	if err != nil {
		metrics.MoveFailures.Inc()
		slog.Error("sort move failed", "path", src, "dest", dstDir, "error", err)
		return err
	}

	s.history.Push(HistoryEntry{NewPath: newPath, OrigParent: origParent, State: action})
	s.queue.PopFront()
	metrics.Sorts.WithLabelValues(string(action)).Inc()
	metrics.QueueLength.Set(float64(s.queue.Len()))
	slog.Debug("image sorted", "path", src, "action", action, "new_path", newPath)
	s.requestLoadLocked()
	return nil
}

// Undo reverses the most recent move: the file (and sidecar) returns to its
// recorded original parent and the restored path becomes the queue head so
// the user immediately re-sees it. Single-level per call, no redo.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.history.Pop()
	if !ok {
		return triage.ErrNothingToUndo
	}

	restored, err := s.mover.Move(entry.NewPath, entry.OrigParent)
	if err != nil {
		// The move did not happen; keep the entry undoable.
		s.history.Push(entry)
		metrics.MoveFailures.Inc()
		slog.Error("undo move failed", "path", entry.NewPath, "dest", entry.OrigParent, "error", err)
		return err
	}

	s.queue.PushFront(restored)
	metrics.Undos.Inc()
	metrics.QueueLength.Set(float64(s.queue.Len()))
	slog.Debug("sort undone", "path", restored, "was", entry.State)
	s.requestLoadLocked()
	return nil
}

// Navigate rotates the work queue circularly without moving any files and
// without touching history. Positive steps advance, negative go back.
func (s *Session) Navigate(step int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Rotate(step)
	s.requestLoadLocked()
}

// Counts derives the per-state tally by scanning the state directories;
// remaining is the current queue length.
func (s *Session) Counts() Counts {
	s.mu.Lock()
	remaining := s.queue.Len()
	s.mu.Unlock()

	return Counts{
		Keep:      len(s.scanner.Scan(s.class.KeepDir(), s.opts.ScanDepth, 0)),
		Review:    len(s.scanner.Scan(s.class.ReviewDir(), s.opts.ScanDepth, 0)),
		Delete:    len(s.scanner.Scan(s.class.DeleteDir(), s.opts.ScanDepth, 0)),
		Remaining: remaining,
	}
}

// ChunkInfo reports the active chunk index, the chunk count and the number
// of images left in the active chunk's queue.
func (s *Session) ChunkInfo() ChunkInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ChunkInfo{
		ActiveIndex: s.active,
		ChunkCount:  s.chunks.Count(),
		ChunkImages: s.queue.Len(),
	}
}

// SetActiveChunk switches the work queue to the chunk at index (clamped).
func (s *Session) SetActiveChunk(index int) ChunkInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activateChunkLocked(index)
	return ChunkInfo{
		ActiveIndex: s.active,
		ChunkCount:  s.chunks.Count(),
		ChunkImages: s.queue.Len(),
	}
}

// Reenumerate recomputes the unsorted pool and chunk boundaries from
// scratch and resets the active chunk to 0.
func (s *Session) Reenumerate(progress func(int, string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enumerateLocked(progress)
}

// Stats summarizes session throughput from the derived counts.
func (s *Session) Stats() Stats {
	counts := s.Counts()
	processed := counts.Keep + counts.Review + counts.Delete
	stats := Stats{
		Processed: processed,
		Total:     processed + counts.Remaining,
	}
	elapsed := time.Since(s.startedAt).Seconds()
	if processed > 0 && elapsed > 0 {
		rate := float64(processed) / elapsed
		stats.ImagesPerMin = rate * 60
		stats.ETASeconds = int(float64(counts.Remaining) / rate)
	}
	return stats
}

// ImageReady delivers decoded bitmaps for the current queue head. Stale
// completions are dropped before they ever reach this channel.
func (s *Session) ImageReady() <-chan LoadResult {
	return s.ready
}

// requestLoadLocked schedules an async decode of the queue head. When the
// decode completes the path is compared against the head again: the user
// may have sorted or navigated away in the meantime, in which case the
// completion is stale and discarded.
func (s *Session) requestLoadLocked() {
	path, ok := s.queue.Front()
	if !ok {
		return
	}
	s.loader.Submit(path, func(p string, img image.Image) {
		s.mu.Lock()
		want, ok := s.queue.Front()
		s.mu.Unlock()
		if !ok || want != p {
			slog.Debug("discarding stale image load", "path", p)
			return
		}
		s.publish(LoadResult{Path: p, Image: img})
	})
}

// publish delivers a result, replacing an unconsumed older one so the
// channel always holds the freshest bitmap.
func (s *Session) publish(result LoadResult) {
	for {
		select {
		case s.ready <- result:
			return
		default:
			select {
			case <-s.ready:
			default:
			}
		}
	}
}

// WaitImage blocks until a bitmap for the current head arrives, or ctx
// expires.
func (s *Session) WaitImage(ctx context.Context) (LoadResult, error) {
	select {
	case result := <-s.ready:
		return result, nil
	case <-ctx.Done():
		return LoadResult{}, ctx.Err()
	}
}
