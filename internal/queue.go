package internal

// Queue implements a fixed capacity FIFO ring of items.
// The zero value has no capacity, use [NewQueue] or [Queue.Reset].
type Queue[T any] struct {
	// buf stores items pushed with Push methods. len(buf) is the queue capacity.
	buf []T
	// off indexes into buf the first item to be popped. off<len(buf) is always true when len(buf)>0.
	off int
	// n is the number of items queued.
	n int
}

// NewQueue returns a queue that holds up to capacity items.
func NewQueue[T any](capacity int) Queue[T] {
	var q Queue[T]
	q.Reset(capacity)
	return q
}

// Reset empties the queue and sets its capacity, reusing the existing buffer if possible.
func (q *Queue[T]) Reset(capacity int) {
	if capacity < 0 {
		panic("negative queue capacity")
	}
	if cap(q.buf) < capacity {
		q.buf = make([]T, capacity)
	} else {
		q.buf = q.buf[:capacity]
	}
	q.Clear()
}

// Clear removes all items from the queue. Capacity is preserved.
func (q *Queue[T]) Clear() {
	var z T
	for i := range q.buf {
		q.buf[i] = z
	}
	q.off = 0
	q.n = 0
}

// Len returns the number of items in the queue.
func (q *Queue[T]) Len() int { return q.n }

// Cap returns the maximum number of items the queue can hold.
func (q *Queue[T]) Cap() int { return len(q.buf) }

// Full returns true if no more items can be pushed.
func (q *Queue[T]) Full() bool { return q.n == len(q.buf) }

// Empty returns true if there are no items to pop.
func (q *Queue[T]) Empty() bool { return q.n == 0 }

// Push appends v to the back of the queue. It returns false if the queue is full.
func (q *Queue[T]) Push(v T) bool {
	if q.Full() {
		return false
	}
	q.buf[q.idx(q.n)] = v
	q.n++
	return true
}

// PushFront inserts v at the front of the queue so it is the next item to be popped.
// It returns false if the queue is full.
func (q *Queue[T]) PushFront(v T) bool {
	if q.Full() {
		return false
	}
	q.off--
	if q.off < 0 {
		q.off = len(q.buf) - 1
	}
	q.buf[q.off] = v
	q.n++
	return true
}

// Pop removes and returns the item at the front of the queue.
func (q *Queue[T]) Pop() (v T, ok bool) {
	if q.n == 0 {
		return v, false
	}
	var z T
	v = q.buf[q.off]
	q.buf[q.off] = z
	q.off++
	if q.off == len(q.buf) {
		q.off = 0
	}
	q.n--
	if q.n == 0 {
		q.off = 0 // Optimization case, keeps data contiguous.
	}
	return v, true
}

// Peek returns the item at the front of the queue without removing it.
func (q *Queue[T]) Peek() (v T, ok bool) {
	if q.n == 0 {
		return v, false
	}
	return q.buf[q.off], true
}

// At returns a pointer to the i'th item counting from the front of the queue.
// It panics if i is out of range.
func (q *Queue[T]) At(i int) *T {
	if i < 0 || i >= q.n {
		panic("queue index out of range")
	}
	return &q.buf[q.idx(i)]
}

func (q *Queue[T]) idx(i int) int {
	i += q.off
	if i >= len(q.buf) {
		i -= len(q.buf)
	}
	return i
}
