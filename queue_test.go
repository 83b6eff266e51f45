package jobsys

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type QueueTestSuite struct {
	suite.Suite
}

func TestQueueTestSuite(t *testing.T) {
	suite.Run(t, new(QueueTestSuite))
}

func handleFor(pool *JobPool) JobHandle {
	return pool.Create(func(*Job, *[PayloadSize]byte, *Worker) {})
}

func (ts *QueueTestSuite) TestPushPopLIFO() {
	q := newJobQueue(8)
	pool := newJobPool(8)

	a := handleFor(pool)
	b := handleFor(pool)
	ts.True(q.Push(a))
	ts.True(q.Push(b))

	got, ok := q.Pop()
	ts.True(ok)
	ts.Equal(b, got, "pop takes from the bottom: most recently pushed first")

	got, ok = q.Pop()
	ts.True(ok)
	ts.Equal(a, got)

	_, ok = q.Pop()
	ts.False(ok)
}

func (ts *QueueTestSuite) TestStealFIFO() {
	q := newJobQueue(8)
	pool := newJobPool(8)

	a := handleFor(pool)
	b := handleFor(pool)
	q.Push(a)
	q.Push(b)

	got, ok := q.Steal()
	ts.True(ok)
	ts.Equal(a, got, "steal takes from the top: oldest first")
}

func (ts *QueueTestSuite) TestPushFailsWhenFull() {
	q := newJobQueue(2)
	pool := newJobPool(8)

	ts.True(q.Push(handleFor(pool)))
	ts.True(q.Push(handleFor(pool)))
	ts.False(q.Push(handleFor(pool)), "push must report false once capacity is reached")
}

func (ts *QueueTestSuite) TestBoundsInvariant() {
	q := newJobQueue(4)
	pool := newJobPool(8)

	for i := 0; i < 3; i++ {
		q.Push(handleFor(pool))
		ts.GreaterOrEqual(q.bottom-q.top, 0)
		ts.LessOrEqual(q.bottom-q.top, len(q.slots))
	}
}

// TestSingleElementRace stresses the boundary spec.md §8 calls out
// explicitly: a Pop and a Steal contending on a one-element queue must
// agree on exactly one winner.
func (ts *QueueTestSuite) TestSingleElementRace() {
	pool := newJobPool(8)

	for trial := 0; trial < 500; trial++ {
		q := newJobQueue(2)
		q.Push(handleFor(pool))

		var wg sync.WaitGroup
		results := make(chan bool, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, ok := q.Pop()
			results <- ok
		}()
		go func() {
			defer wg.Done()
			_, ok := q.Steal()
			results <- ok
		}()
		wg.Wait()
		close(results)

		wins := 0
		for ok := range results {
			if ok {
				wins++
			}
		}
		ts.Equal(1, wins, "exactly one of Pop/Steal must win a one-element queue")
	}
}
