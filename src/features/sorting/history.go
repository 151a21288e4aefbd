package sorting

import "tinysort/src/triage"

// DefaultHistorySize bounds the undo depth.
const DefaultHistorySize = 20

// HistoryEntry records one completed move so it can be reversed. OrigParent
// is whatever directory held the file immediately before the move, which is
// not necessarily the unsorted pool.
type HistoryEntry struct {
	NewPath    string
	OrigParent string
	State      triage.State
}

// History is a bounded stack of reversible moves. Pushing past capacity
// silently discards the oldest entry, so undo depth is bounded, not
// unlimited.
type History struct {
	entries  []HistoryEntry
	capacity int
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{capacity: capacity}
}

func (h *History) Push(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[len(h.entries)-h.capacity:]
	}
}

// Pop removes and returns the most recent entry.
func (h *History) Pop() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	entry := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return entry, true
}

func (h *History) Len() int {
	return len(h.entries)
}
