package jobsys

import "sync"

// JobPool is a fixed-capacity ring of Jobs. Allocation is a bump index
// modulo capacity; slots are never freed individually, only overwritten on
// wraparound. Capacity must be a power of two so the modulo collapses to a
// bitmask, per spec.
//
// A JobPool belongs to exactly one Worker, and that Worker's own dispatch
// goroutine is the overwhelmingly common allocator (a job splitting itself
// into children, or a splitter creating the next range). But the public
// entry points that build jobs (Launch, ParallelFor) pick "any worker with
// free capacity" and allocate from its pool directly, from whatever
// goroutine called them — which is generally not that worker's own
// goroutine. alloc is therefore mutex-guarded rather than a bare bump
// index, the same tradeoff JobQueue already makes (spec.md §4.C: a single
// mutex in place of a lock-free structure). Without it, two goroutines
// racing alloc() could both compute the same idx and one's create()/
// createChild() would stomp the other's still-initializing slot.
type JobPool struct {
	mu    sync.Mutex
	slots []Job
	mask  uint32
	next  uint32
}

// newJobPool constructs a pool of the given capacity, rounded up to a power
// of two by the caller (Config.MaxJobsPerWorker is normalized in Init).
func newJobPool(capacity int) *JobPool {
	return &JobPool{
		slots: make([]Job, capacity),
		mask:  uint32(capacity - 1),
	}
}

// alloc returns the next slot, bumping its generation so any previously
// issued JobHandle into this slot can no longer Resolve. Locked so
// concurrent allocators (a worker's own dispatch goroutine and an external
// caller that picked this worker via ThreadWorker) never hand out the same
// slot.
func (p *JobPool) alloc() *Job {
	p.mu.Lock()
	defer p.mu.Unlock()
	idx := p.next & p.mask
	p.next++
	slot := &p.slots[idx]
	slot.generation++
	return slot
}

// Create allocates a root Job (no parent) from this pool.
func (p *JobPool) Create(fn JobFunc) JobHandle {
	j := p.alloc()
	j.create(fn)
	return JobHandle{job: j, generation: j.generation}
}

// CreateChild allocates a Job from this pool as a child of parent,
// reserving parent's "+1" before returning. It reports false if parent has
// already been recycled out from under its handle — a contract violation
// by the caller (children must be created while the parent's own
// reservation is still outstanding).
func (p *JobPool) CreateChild(parent JobHandle, fn JobFunc) (JobHandle, bool) {
	parentJob, ok := parent.Resolve()
	if !ok {
		return JobHandle{}, false
	}
	j := p.alloc()
	j.createChild(parentJob, fn)
	return JobHandle{job: j, generation: j.generation}, true
}

// Cap returns the pool's fixed capacity.
func (p *JobPool) Cap() int {
	return len(p.slots)
}
