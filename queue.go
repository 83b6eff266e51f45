package jobsys

import "sync"

// JobQueue is a worker's bounded double-ended queue of JobHandles, realized
// with a single mutex rather than a lock-free Chase-Lev deque — the spec
// calls for the simpler construction explicitly. The owner pushes and pops
// the bottom (LIFO, cache-hot: usually a child of work already in flight);
// any worker may steal from the top (FIFO, cold end: typically larger,
// amortizing the cost of a steal).
//
// Invariant: 0 <= bottom-top <= capacity. A slot at index i%capacity is
// live iff top <= i < bottom. Only the owner mutates bottom; steal mutates
// top and may be called from any goroutine.
type JobQueue struct {
	mu     sync.Mutex
	slots  []JobHandle
	mask   int
	bottom int
	top    int
}

// newJobQueue constructs a queue of the given capacity (must be a power of
// two; Init normalizes Config.MaxJobsPerWorker before this is called).
func newJobQueue(capacity int) *JobQueue {
	return &JobQueue{
		slots: make([]JobHandle, capacity),
		mask:  capacity - 1,
	}
}

// Push adds h to the bottom of the queue. Owner-only. Returns false if the
// queue is full; the caller (Worker.Submit) is responsible for retrying.
func (q *JobQueue) Push(h JobHandle) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.bottom-q.top >= len(q.slots) {
		return false
	}
	q.slots[q.bottom&q.mask] = h
	q.bottom++
	return true
}

// Pop removes and returns a JobHandle from the bottom of the queue.
// Owner-only, LIFO end.
func (q *JobQueue) Pop() (JobHandle, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.bottom == q.top {
		return JobHandle{}, false
	}
	q.bottom--
	return q.slots[q.bottom&q.mask], true
}

// Steal removes and returns a JobHandle from the top of the queue. May be
// called by any worker. FIFO end. Steal and Pop contending on a
// single-element queue are serialized by the same mutex, so exactly one of
// them observes and returns the element.
func (q *JobQueue) Steal() (JobHandle, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.top >= q.bottom {
		return JobHandle{}, false
	}
	h := q.slots[q.top&q.mask]
	q.top++
	return h, true
}

// Len reports the number of live entries. Racy against concurrent
// Push/Pop/Steal; intended for diagnostics and tests, not scheduling
// decisions.
func (q *JobQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.bottom - q.top
}

// IsEmpty reports whether the queue currently holds no entries.
func (q *JobQueue) IsEmpty() bool {
	return q.Len() == 0
}
