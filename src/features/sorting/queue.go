package sorting

// WorkQueue is the ordered, rotatable sequence of unsorted image paths for
// the active chunk. The head is the image currently presented; rotation is
// circular and never moves files.
type WorkQueue struct {
	items []string
}

func NewWorkQueue(items []string) *WorkQueue {
	return &WorkQueue{items: append([]string(nil), items...)}
}

// Front returns the current image path.
func (q *WorkQueue) Front() (string, bool) {
	if len(q.items) == 0 {
		return "", false
	}
	return q.items[0], true
}

// PopFront removes and returns the current image path.
func (q *WorkQueue) PopFront() (string, bool) {
	if len(q.items) == 0 {
		return "", false
	}
	head := q.items[0]
	q.items = q.items[1:]
	return head, true
}

// PushFront re-inserts a path as the new head, making it the current image.
func (q *WorkQueue) PushFront(path string) {
	q.items = append([]string{path}, q.items...)
}

// Rotate shifts the queue circularly by step positions. A positive step
// advances (head moves to the tail), a negative step goes back.
func (q *WorkQueue) Rotate(step int) {
	n := len(q.items)
	if n < 2 {
		return
	}
	step = ((step % n) + n) % n
	q.items = append(q.items[step:], q.items[:step]...)
}

func (q *WorkQueue) Len() int {
	return len(q.items)
}

// Items returns a copy of the queue in order.
func (q *WorkQueue) Items() []string {
	return append([]string(nil), q.items...)
}
