package jobsys

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type PoolTestSuite struct {
	suite.Suite
}

func TestPoolTestSuite(t *testing.T) {
	suite.Run(t, new(PoolTestSuite))
}

func (ts *PoolTestSuite) TestAllocClearsSlot() {
	pool := newJobPool(4)

	h := pool.Create(func(*Job, *[PayloadSize]byte, *Worker) {})
	job, _ := h.Resolve()
	job.WritePayload([]byte("x"))

	// Force wraparound back onto the same slot and confirm the new job
	// doesn't see the old one's payload.
	var last JobHandle
	for i := 0; i < 4; i++ {
		last = pool.Create(func(*Job, *[PayloadSize]byte, *Worker) {})
	}

	reused, ok := last.Resolve()
	ts.True(ok)
	ts.Equal(byte(0), reused.payload[0], "recycled slot must be zeroed")
}

func (ts *PoolTestSuite) TestCapReportsCapacity() {
	pool := newJobPool(16)
	ts.Equal(16, pool.Cap())
}

func (ts *PoolTestSuite) TestCreateChildFailsOnStaleParent() {
	pool := newJobPool(2)
	parentH := pool.Create(func(*Job, *[PayloadSize]byte, *Worker) {})

	// Wrap the pool so parentH's slot gets recycled.
	pool.Create(func(*Job, *[PayloadSize]byte, *Worker) {})
	pool.Create(func(*Job, *[PayloadSize]byte, *Worker) {})

	_, ok := pool.CreateChild(parentH, func(*Job, *[PayloadSize]byte, *Worker) {})
	ts.False(ok, "creating a child of a recycled parent handle must fail")
}
