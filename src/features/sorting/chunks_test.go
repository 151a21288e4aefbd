package sorting

import (
	"fmt"
	"reflect"
	"testing"
)

func paths(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("/imgs/%03d.jpg", i)
	}
	return out
}

func TestChunkPartitionCompleteness(t *testing.T) {
	for _, tc := range []struct {
		total, size, wantCount int
	}{
		{0, 2000, 1},
		{1, 2000, 1},
		{2000, 2000, 1},
		{2001, 2000, 2},
		{5, 2, 3},
	} {
		c := NewChunks(paths(tc.total), tc.size)
		if c.Count() != tc.wantCount {
			t.Errorf("total=%d size=%d: count=%d want %d", tc.total, tc.size, c.Count(), tc.wantCount)
		}

		var joined []string
		for i := 0; i < c.Count(); i++ {
			joined = append(joined, c.Slice(i)...)
		}
		if tc.total == 0 {
			if len(joined) != 0 {
				t.Errorf("empty input produced %d paths", len(joined))
			}
			continue
		}
		if !reflect.DeepEqual(joined, paths(tc.total)) {
			t.Errorf("total=%d size=%d: concatenated chunks differ from input", tc.total, tc.size)
		}
	}
}

func TestChunkClamp(t *testing.T) {
	c := NewChunks(paths(5), 2)
	if got := c.Clamp(-1); got != 0 {
		t.Errorf("Clamp(-1)=%d", got)
	}
	if got := c.Clamp(10); got != 2 {
		t.Errorf("Clamp(10)=%d", got)
	}
}

func TestQueueRotate(t *testing.T) {
	q := NewWorkQueue([]string{"a", "b", "c"})
	q.Rotate(1)
	if head, _ := q.Front(); head != "b" {
		t.Errorf("after Rotate(1) head=%q", head)
	}
	q.Rotate(-1)
	if head, _ := q.Front(); head != "a" {
		t.Errorf("after Rotate(-1) head=%q", head)
	}
	q.Rotate(5) // 5 mod 3 == 2
	if head, _ := q.Front(); head != "c" {
		t.Errorf("after Rotate(5) head=%q", head)
	}
}

func TestQueuePushFrontPopFront(t *testing.T) {
	q := NewWorkQueue([]string{"a"})
	q.PushFront("z")
	if head, _ := q.PopFront(); head != "z" {
		t.Errorf("expected z, got %q", head)
	}
	if head, _ := q.PopFront(); head != "a" {
		t.Errorf("expected a, got %q", head)
	}
	if _, ok := q.PopFront(); ok {
		t.Error("pop on empty queue succeeded")
	}
}

func TestHistoryBoundedEviction(t *testing.T) {
	h := NewHistory(2)
	for i := 0; i < 4; i++ {
		h.Push(HistoryEntry{NewPath: fmt.Sprintf("p%d", i)})
	}
	if h.Len() != 2 {
		t.Fatalf("expected capacity 2, got %d", h.Len())
	}
	if e, _ := h.Pop(); e.NewPath != "p3" {
		t.Errorf("expected most recent first, got %q", e.NewPath)
	}
	if e, _ := h.Pop(); e.NewPath != "p2" {
		t.Errorf("expected p2, got %q", e.NewPath)
	}
	if _, ok := h.Pop(); ok {
		t.Error("pop on empty history succeeded")
	}
}
