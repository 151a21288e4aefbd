package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type fakeTask struct {
	keys    []string
	execute func(ctx context.Context, job *Job, progress func(int, string)) (map[string]any, error)
}

func (t *fakeTask) MetadataKeys() []string { return t.keys }

func (t *fakeTask) Execute(ctx context.Context, job *Job, progress func(int, string)) (map[string]any, error) {
	return t.execute(ctx, job, progress)
}

func waitForStatus(t *testing.T, s *Service, id string, want JobStatus) *Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if job, ok := s.GetJob(id); ok && job.Status == want {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	job, _ := s.GetJob(id)
	t.Fatalf("job %s never reached %s, last: %+v", id, want, job)
	return nil
}

func TestStartJobUnknownTypeFails(t *testing.T) {
	s := NewService()
	if _, err := s.StartJob("nope", "nope", nil); err == nil {
		t.Fatal("expected error for unregistered job type")
	}
}

func TestJobRunsToCompletionWithProgress(t *testing.T) {
	s := NewService()
	s.RegisterHandler("count", &fakeTask{
		execute: func(ctx context.Context, job *Job, progress func(int, string)) (map[string]any, error) {
			progress(50, "halfway")
			return map[string]any{"counted": 7}, nil
		},
	})

	id, err := s.StartJob("count", "count things", nil)
	if err != nil {
		t.Fatal(err)
	}
	job := waitForStatus(t, s, id, JobStatusCompleted)
	if job.Progress != 100 {
		t.Errorf("expected progress 100, got %d", job.Progress)
	}
	if job.Metadata["counted"] != 7 {
		t.Errorf("expected task stats merged into metadata, got %v", job.Metadata)
	}
}

func TestJobFailureRecordsError(t *testing.T) {
	s := NewService()
	s.RegisterHandler("boom", &fakeTask{
		execute: func(ctx context.Context, job *Job, progress func(int, string)) (map[string]any, error) {
			return nil, errors.New("went wrong")
		},
	})

	id, _ := s.StartJob("boom", "boom", nil)
	job := waitForStatus(t, s, id, JobStatusFailed)
	if job.Error != "went wrong" {
		t.Errorf("expected error recorded, got %q", job.Error)
	}
}

func TestMissingMetadataFailsJob(t *testing.T) {
	s := NewService()
	s.RegisterHandler("needs", &fakeTask{
		keys: []string{"base"},
		execute: func(ctx context.Context, job *Job, progress func(int, string)) (map[string]any, error) {
			return nil, nil
		},
	})

	id, _ := s.StartJob("needs", "needs", nil)
	waitForStatus(t, s, id, JobStatusFailed)
}

func TestOneJobPerTypeQueuesSecond(t *testing.T) {
	s := NewService()
	release := make(chan struct{})
	s.RegisterHandler("slow", &fakeTask{
		execute: func(ctx context.Context, job *Job, progress func(int, string)) (map[string]any, error) {
			<-release
			return nil, nil
		},
	})

	first, _ := s.StartJob("slow", "first", nil)
	second, _ := s.StartJob("slow", "second", nil)

	waitForStatus(t, s, first, JobStatusRunning)
	if job, _ := s.GetJob(second); job.Status != JobStatusPending {
		t.Fatalf("expected second job pending, got %s", job.Status)
	}

	close(release)
	waitForStatus(t, s, first, JobStatusCompleted)
	waitForStatus(t, s, second, JobStatusCompleted)
}

func TestCancelJobPropagatesContext(t *testing.T) {
	s := NewService()
	started := make(chan struct{})
	s.RegisterHandler("long", &fakeTask{
		execute: func(ctx context.Context, job *Job, progress func(int, string)) (map[string]any, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		},
	})

	id, _ := s.StartJob("long", "long", nil)
	<-started
	if err := s.CancelJob(id); err != nil {
		t.Fatal(err)
	}
	waitForStatus(t, s, id, JobStatusCancelled)
}

func TestPoolRunsTasksOnBoundedWorkers(t *testing.T) {
	pool := NewPool(4)
	var ran atomic.Int32
	done := make(chan struct{}, 32)
	for i := 0; i < 32; i++ {
		pool.Submit(func() {
			ran.Add(1)
			done <- struct{}{}
		})
	}
	for i := 0; i < 32; i++ {
		<-done
	}
	pool.Shutdown()
	if ran.Load() != 32 {
		t.Fatalf("expected 32 tasks run, got %d", ran.Load())
	}
}
