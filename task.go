package jobsys

// Task bundles a submitted Job with the Worker that owns its queue,
// letting Wait turn the calling goroutine into a participant that helps
// drain work until the Job completes.
type Task struct {
	Worker *Worker
	Job    JobHandle
}

// Launch creates a root job from fn, submits it to a worker chosen by
// System.ThreadWorker, and returns a Task handle. It does not wait.
func (s *System) Launch(fn JobFunc) Task {
	w := s.ThreadWorker(nil)
	h := w.pool.Create(fn)
	w.Submit(h)
	return Task{Worker: w, Job: h}
}

// Wait blocks until t's job has completed, running other jobs from t's
// worker (own-queue first, then steals) in the meantime.
func (t Task) Wait() {
	job, ok := t.Job.Resolve()
	if !ok {
		return
	}
	t.Worker.Wait(job)
}

// Submit submits an already-created job handle to a worker chosen by
// System.ThreadWorker and wraps it as a Task, for callers that built the
// job themselves (e.g. via ParallelFor) instead of going through Launch.
func (s *System) Submit(h JobHandle) Task {
	w := s.ThreadWorker(nil)
	w.Submit(h)
	return Task{Worker: w, Job: h}
}
