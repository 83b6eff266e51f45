package jobsys

// ParallelFor builds (but does not submit) the root job of a recursive
// range splitter over data. The caller is responsible for submitting the
// returned handle to a Worker and waiting on it — mirroring spec.md's
// parallel_for, which builds the job and lets the caller drive it.
//
// Because Go slices are element-typed, the splitter advances by elements
// by construction: there is no way to accidentally advance a []T by bytes
// the way the original C (`void*` arithmetic) could. That hazard, flagged
// in SPEC_FULL.md §9, is eliminated rather than guarded against.
func ParallelFor[T any](sys *System, data []T, fn func(chunk []T)) JobHandle {
	groupSize := sys.cfg.ParGroupSize
	w := sys.ThreadWorker(nil)
	return w.pool.Create(parallelForFunc(data, fn, groupSize))
}

// parallelForFunc closes over the sub-range, the leaf callback and the
// configured group size; it is itself the splitter job's JobFunc, so no
// separate ParallelForData payload struct is needed.
func parallelForFunc[T any](data []T, fn func([]T), groupSize int) JobFunc {
	return func(job *Job, _ *[PayloadSize]byte, w *Worker) {
		if len(data) <= groupSize {
			fn(data)
			return
		}

		left := data[0 : len(data)/2]
		right := data[len(data)/2:]

		parent := JobHandleFor(job)

		leftHandle, ok := w.pool.CreateChild(parent, parallelForFunc(left, fn, groupSize))
		if ok {
			w.Submit(leftHandle)
		}

		rightHandle, ok := w.pool.CreateChild(parent, parallelForFunc(right, fn, groupSize))
		if ok {
			w.Submit(rightHandle)
		}
	}
}
