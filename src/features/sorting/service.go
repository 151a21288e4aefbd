package sorting

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"tinysort/src/features/jobs"
	"tinysort/src/triage"
)

// JobTypeReenumerate is the background job recomputing a class's chunks.
const JobTypeReenumerate = "class_reenumerate"

// DirectoryWatcher is the slice of the filesystem watcher the service
// drives: it watches the open class directory so external changes trigger a
// re-enumeration.
type DirectoryWatcher interface {
	Watch(path string) error
	Unwatch(path string) error
}

// Service owns the single open sorting session. The application sorts one
// class at a time; opening a class replaces the previous session.
type Service struct {
	mu      sync.Mutex
	session *Session

	scanner triage.Scanner
	loader  triage.AsyncBitmapLoader
	mover   triage.FileMover
	jobs    triage.JobService
	watcher DirectoryWatcher
	opts    Options
}

func NewService(scanner triage.Scanner, loader triage.AsyncBitmapLoader, mover triage.FileMover, jobService triage.JobService, watcher DirectoryWatcher, opts Options) *Service {
	return &Service{
		scanner: scanner,
		loader:  loader,
		mover:   mover,
		jobs:    jobService,
		watcher: watcher,
		opts:    opts,
	}
}

// Open starts a session for (base, class), replacing any open one, and
// points the directory watcher at the class dir.
func (s *Service) Open(base, class string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil && s.watcher != nil {
		if err := s.watcher.Unwatch(s.session.Class().Dir()); err != nil {
			slog.Debug("failed to unwatch previous class", "error", err)
		}
	}

	session := NewSession(triage.ClassContext{Base: base, Name: class}, s.scanner, s.loader, s.mover, s.opts)
	s.session = session

	if s.watcher != nil {
		if err := s.watcher.Watch(session.Class().Dir()); err != nil {
			slog.Warn("failed to watch class directory", "dir", session.Class().Dir(), "error", err)
		}
	}
	slog.Info("sorting session opened", "base", base, "class", class)
	return session
}

// Session returns the open session.
func (s *Service) Session() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, triage.ErrNoSession
	}
	return s.session, nil
}

// HandleDirectoryEvent reacts to a filesystem change under the open class
// directory by scheduling a re-enumeration job. Events elsewhere are
// ignored.
func (s *Service) HandleDirectoryEvent(path string) {
	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	if session == nil || s.jobs == nil {
		return
	}
	if !strings.HasPrefix(path, session.Class().Dir()) {
		return
	}
	if _, err := s.jobs.StartJob(JobTypeReenumerate, "re-enumerate "+session.Class().Name, nil); err != nil {
		slog.Warn("failed to start re-enumeration job", "error", err)
	}
}

// ReenumerateTask implements jobs.Task for recomputing the open session's
// chunks after the class directory changed.
type ReenumerateTask struct {
	service *Service
}

func NewReenumerateTask(service *Service) *ReenumerateTask {
	return &ReenumerateTask{service: service}
}

func (t *ReenumerateTask) MetadataKeys() []string {
	return nil
}

func (t *ReenumerateTask) Execute(ctx context.Context, job *jobs.Job, progressUpdater func(int, string)) (map[string]any, error) {
	session, err := t.service.Session()
	if err != nil {
		return nil, err
	}
	session.Reenumerate(progressUpdater)
	info := session.ChunkInfo()
	return map[string]any{"chunks": info.ChunkCount, "chunk_images": info.ChunkImages}, nil
}
