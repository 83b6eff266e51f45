package jobsys

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// CacheLineSize is the target size of a single Job, matching the
// CACHE_LINE_SIZE compile-time constant from the C source: adjacent queue
// slots must not share a cache line.
const CacheLineSize = 64

// headerSize is the portion of a Job consumed by its non-payload fields.
// Payload sizing is derived from it, the Go analog of the C source's
// `JOB_DATA_SIZE CACHE_SIZE - (sizeof(JobFunc) + sizeof(Job*) + sizeof(...))`.
const headerSize = unsafe.Sizeof(JobFunc(nil)) +
	unsafe.Sizeof((*Job)(nil)) +
	unsafe.Sizeof(atomic.Int32{}) +
	unsafe.Sizeof(uint32(0))

// PayloadSize is computed, not hand-tuned: changing any header field
// automatically reshrinks the payload so Job keeps occupying one cache line.
const PayloadSize = CacheLineSize - headerSize

// compile-time assertion that the payload fits; a negative array length is
// a compile error, the idiomatic stand-in for a C static_assert.
var _ [PayloadSize]struct{}

// sizeofJob reports the in-memory size of a Job, used by tests to confirm
// it still occupies exactly one cache line.
func sizeofJob(j *Job) uintptr {
	return unsafe.Sizeof(*j)
}

// JobFunc is the callable invoked when a Job runs. payload points at the
// Job's inline data, written earlier via WritePayload. worker is the Worker
// currently executing the Job — Go has no thread-local storage, so rather
// than reproduce the source's job_system_thread_worker() scan (flagged in
// SPEC_FULL.md §9 as finding the wrong worker), the executing worker is
// handed to the function directly. A splitter that wants to submit child
// jobs onto "the current worker" already has it, with no lookup required.
type JobFunc func(job *Job, payload *[PayloadSize]byte, worker *Worker)

// Job is a single schedulable unit of work: a function, an optional parent
// back-reference, and an inline payload, sized so one Job occupies exactly
// one cache line and adjacent queue slots never false-share.
type Job struct {
	fn         JobFunc
	parent     *Job
	unfinished atomic.Int32
	generation uint32
	payload    [PayloadSize]byte
}

// create initializes job in place as a root job (no parent). Callers obtain
// job from a JobPool; create never allocates. Fields are cleared
// individually, not via whole-struct assignment, since Job embeds an
// atomic.Int32 that must never be copied once constructed.
func (j *Job) create(fn JobFunc) *Job {
	j.reset(fn, nil)
	return j
}

// createChild initializes job in place as a child of parent, reserving the
// parent's "+1" before the child becomes visible to any other worker. The
// increment must happen before job is ever submitted, so a racing Finish on
// a sibling can never observe the parent completing prematurely.
func (j *Job) createChild(parent *Job, fn JobFunc) *Job {
	parent.unfinished.Add(1)
	j.reset(fn, parent)
	return j
}

// reset clears a pool slot for reuse, leaving generation (already bumped by
// JobPool.alloc) untouched.
func (j *Job) reset(fn JobFunc, parent *Job) {
	j.fn = fn
	j.parent = parent
	j.unfinished.Store(1)
	for i := range j.payload {
		j.payload[i] = 0
	}
}

// WritePayload copies b into the Job's inline buffer. It panics if b does
// not fit — an oversized payload write is a contract violation (spec §7),
// not a recoverable error, since payload size is a compile-time property of
// the type that wrote it.
func (j *Job) WritePayload(b []byte) {
	if len(b) > len(j.payload) {
		panic(fmt.Sprintf("jobsys: payload of %d bytes exceeds capacity %d", len(b), len(j.payload)))
	}
	copy(j.payload[:], b)
}

// Payload returns a pointer to the Job's inline buffer, valid to read once
// the Job is executing and to write only before Submit.
func (j *Job) Payload() *[PayloadSize]byte {
	return &j.payload
}

// Execute invokes the Job's function on its own payload, then finishes it.
// No error propagates out of Execute: jobs are side-effecting and must
// encode failure into their own payload or an external structure.
func (j *Job) Execute(worker *Worker) {
	j.fn(j, &j.payload, worker)
	j.finish()
}

// finish atomically decrements unfinished; when the decrement's own return
// value is zero the job (and, if it has one, its parent) is complete. Using
// the decrement's return value — rather than a separate post-decrement load
// — is the fix for the source's flagged race: two children finishing
// concurrently must not both observe zero and both cascade into the parent.
func (j *Job) finish() {
	if j.unfinished.Add(-1) == 0 && j.parent != nil {
		j.parent.finish()
	}
}

// Completed reports whether the Job and all its descendants have run.
func (j *Job) Completed() bool {
	return j.unfinished.Load() == 0
}
