// Package metrics exposes prometheus instrumentation for the sorting engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Sorts counts completed sort actions, labelled by action
	// (keep/review/delete).
	Sorts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tinysort_sorts_total",
		Help: "Completed sort actions by action.",
	}, []string{"action"})

	// Undos counts completed undo operations.
	Undos = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tinysort_undos_total",
		Help: "Completed undo operations.",
	})

	// MoveFailures counts failed file moves (sort or undo).
	MoveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tinysort_move_failures_total",
		Help: "Failed file move operations.",
	})

	// CacheHits and CacheMisses track the bitmap cache.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tinysort_bitmap_cache_hits_total",
		Help: "Bitmap cache hits.",
	})
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tinysort_bitmap_cache_misses_total",
		Help: "Bitmap cache misses.",
	})

	// DecodeFailures counts decodes that fell back to the error placeholder.
	DecodeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tinysort_decode_failures_total",
		Help: "Image decodes that produced the error placeholder.",
	})

	// FilesScanned counts image files returned by directory scans.
	FilesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tinysort_files_scanned_total",
		Help: "Image files returned by directory scans.",
	})

	// QueueLength tracks the current work queue length of the open session.
	QueueLength = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tinysort_work_queue_length",
		Help: "Images remaining in the active work queue.",
	})
)
