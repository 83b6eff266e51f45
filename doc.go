// Package jobsys is a work-stealing job scheduler for fine-grained
// parallelism on a single multi-core machine.
//
// It targets fork/join and parallel-for workloads: a computation is
// decomposed into many small Jobs linked by parent/child completion
// counters and run across a fixed pool of Workers, each owning a
// bounded double-ended queue. An idle Worker first drains its own
// queue, then steals from a uniformly random victim, then sleeps
// until signaled.
//
// The scheduler supports:
//   - Generic, element-typed parallel-for splitting
//   - Parent/child completion accounting with no deadlocks from a
//     waiting caller (Wait turns the caller into a participating worker)
//   - Per-worker bump-allocated job pools and bounded steal queues
//   - Optional structured logging of steal and sleep/wake transitions
package jobsys
