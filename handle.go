package jobsys

// JobHandle is a generation-tagged reference to a Job slot. It is the safe
// substitute for a bare *Job once a handle can outlive its pool's ring
// wraparound: Resolve fails instead of silently handing back a slot that
// has since been reused for an unrelated Job. Queues and the Task API deal
// in JobHandle; Job.finish's own parent-cascade stays a raw pointer, since
// that chain is only ever walked while the child is still outstanding.
type JobHandle struct {
	job        *Job
	generation uint32
}

// Resolve returns the underlying *Job if the handle's generation still
// matches the slot's current generation, and false if the slot has been
// recycled since the handle was taken.
func (h JobHandle) Resolve() (*Job, bool) {
	if h.job == nil || h.job.generation != h.generation {
		return nil, false
	}
	return h.job, true
}

// Valid reports whether h refers to an initialized Job.
func (h JobHandle) Valid() bool {
	return h.job != nil
}

// JobHandleFor rewraps a Job a running JobFunc was handed back into a
// JobHandle, tagged with the slot's current generation. JobFunc bodies only
// ever see a live, not-yet-recycled Job, so the handle it produces is always
// valid at the point of creation — useful for spawning children of the job
// currently executing, where no JobHandle to it was kept around.
func JobHandleFor(job *Job) JobHandle {
	return JobHandle{job: job, generation: job.generation}
}
