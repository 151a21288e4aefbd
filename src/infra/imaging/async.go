package imaging

import "image"

// Pool is the worker-pool submission primitive decodes are offloaded to.
type Pool interface {
	Submit(task func())
}

// AsyncLoader decodes images on a worker pool so a large file never blocks
// the coordinating thread. There is no cancellation: an in-flight decode
// always runs to completion, and the consumer decides whether the completed
// path is still the one it wants.
type AsyncLoader struct {
	*Loader
	pool Pool
}

func NewAsyncLoader(loader *Loader, pool Pool) *AsyncLoader {
	return &AsyncLoader{Loader: loader, pool: pool}
}

// Submit schedules a decode of path and invokes done with the completed
// path and bitmap. done runs on a worker goroutine.
func (a *AsyncLoader) Submit(path string, done func(path string, img image.Image)) {
	a.pool.Submit(func() {
		done(path, a.Load(path))
	})
}
