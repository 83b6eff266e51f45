package jobsys

import (
	"math/rand/v2"
	"runtime"
)

// Worker pairs a Job pool and a Job queue with a dispatch goroutine that
// runs for the process's lifetime. Worker identity doubles as the "current
// thread" the spec's job_system_thread_worker wants to recover — see
// JobFunc's doc comment for why that is threaded explicitly here instead of
// inferred.
type Worker struct {
	id    int
	sys   *System
	pool  *JobPool
	queue *JobQueue
}

// ID returns the worker's index within its System.
func (w *Worker) ID() int {
	return w.id
}

// Pool returns the worker's private job pool.
func (w *Worker) Pool() *JobPool {
	return w.pool
}

// Queue returns the worker's job queue (steal-able by any worker).
func (w *Worker) Queue() *JobQueue {
	return w.queue
}

// run is the dispatch loop: drain our own queue, else steal, else sleep
// until signaled. It never returns unless System.Shutdown has been called.
func (w *Worker) run() {
	for {
		if w.sys.stopping.Load() {
			return
		}

		h, ok := w.queue.Pop()
		if !ok {
			h, ok = w.steal()
		}

		if ok {
			job, resolved := h.Resolve()
			if resolved {
				job.Execute(w)
			}
			continue
		}

		w.sleep()
	}
}

// steal picks a uniformly random victim (possibly self, which just yields)
// and attempts one steal from it.
func (w *Worker) steal() (JobHandle, bool) {
	n := len(w.sys.workers)
	victimID := rand.IntN(n)
	if victimID == w.id {
		runtime.Gosched()
		return JobHandle{}, false
	}

	h, ok := w.sys.workers[victimID].queue.Steal()
	if !ok {
		runtime.Gosched()
		return JobHandle{}, false
	}

	logger().Debug().Int("thief", w.id).Int("victim", victimID).Msg("jobsys: stole job")
	return h, true
}

// sleep blocks the worker on the System's condition variable until another
// worker signals that work became available, or Shutdown broadcasts.
func (w *Worker) sleep() {
	w.sys.mu.Lock()
	defer w.sys.mu.Unlock()
	if w.sys.stopping.Load() {
		return
	}
	logger().Debug().Int("worker", w.id).Msg("jobsys: sleeping")
	w.sys.cond.Wait()
}

// wake signals one sleeping worker that work is available. Called after a
// successful Push and on every failed Push retry, matching spec.md §4.D.
func (w *Worker) wake() {
	w.sys.mu.Lock()
	w.sys.cond.Signal()
	w.sys.mu.Unlock()
}

// Submit pushes h onto w's queue, retrying with a yield and a wake signal
// while the queue is full. After a successful push it signals once so an
// idle worker picks the job up without waiting for its next poll.
func (w *Worker) Submit(h JobHandle) {
	for !w.queue.Push(h) {
		w.wake()
		runtime.Gosched()
	}
	w.wake()
}

// Wait runs jobs from w — its own queue first, then steals — until job
// completes. This turns a waiting caller into a participating worker,
// which is what prevents deadlock when the caller is itself a worker
// goroutine blocked on a child it is also capable of helping execute.
func (w *Worker) Wait(job *Job) {
	for !job.Completed() {
		h, ok := w.queue.Pop()
		if !ok {
			h, ok = w.steal()
		}
		if !ok {
			runtime.Gosched()
			continue
		}
		if j, resolved := h.Resolve(); resolved {
			j.Execute(w)
		}
	}
}
