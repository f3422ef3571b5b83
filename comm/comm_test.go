// Package comm_test validates the collective operations under real
// multi-goroutine process groups, including abort propagation.
package comm_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kagen/comm"
)

func TestNewGroup_BadSize(t *testing.T) {
	_, err := comm.NewGroup(0)
	require.ErrorIs(t, err, comm.ErrBadGroupSize)
}

func TestGroup_BadRank(t *testing.T) {
	g, err := comm.NewGroup(2)
	require.NoError(t, err)
	_, err = g.Comm(2)
	require.ErrorIs(t, err, comm.ErrBadRank)
	_, err = g.Comm(-1)
	require.ErrorIs(t, err, comm.ErrBadRank)
}

func TestAllgather_AllRanksSeeEveryValue(t *testing.T) {
	const p = 4
	err := comm.Run(p, func(c *comm.Comm) error {
		got, err := comm.Allgather(c, int64(c.Rank()*10))
		if err != nil {
			return err
		}
		want := []int64{0, 10, 20, 30}
		assert.Equal(t, want, got, "rank %d", c.Rank())
		return nil
	})
	require.NoError(t, err)
}

func TestAlltoall_RoutesBucketsBySource(t *testing.T) {
	const p = 3
	err := comm.Run(p, func(c *comm.Comm) error {
		// Rank r sends [r, to] to each rank "to".
		buckets := make([][]int, p)
		for to := 0; to < p; to++ {
			buckets[to] = []int{c.Rank(), to}
		}
		got, err := comm.Alltoall(c, buckets)
		if err != nil {
			return err
		}
		for from := 0; from < p; from++ {
			assert.Equal(t, []int{from, c.Rank()}, got[from])
		}
		return nil
	})
	require.NoError(t, err)
}

func TestAlltoall_BucketCountMismatch(t *testing.T) {
	err := comm.Run(2, func(c *comm.Comm) error {
		_, err := comm.Alltoall(c, [][]int{nil})
		if !errors.Is(err, comm.ErrBucketCount) {
			return err
		}
		return nil
	})
	require.NoError(t, err)
}

func TestReductions(t *testing.T) {
	const p = 4
	err := comm.Run(p, func(c *comm.Comm) error {
		or, err := c.AllreduceOr(c.Rank() == 2)
		if err != nil {
			return err
		}
		assert.True(t, or)

		or, err = c.AllreduceOr(false)
		if err != nil {
			return err
		}
		assert.False(t, or)

		maxv, err := c.AllreduceMax(int64(c.Rank()))
		if err != nil {
			return err
		}
		assert.EqualValues(t, p-1, maxv)

		sum, err := c.AllreduceSum(1)
		if err != nil {
			return err
		}
		assert.EqualValues(t, p, sum)

		rsum, err := c.ReduceSum(int64(c.Rank()), 0)
		if err != nil {
			return err
		}
		if c.Rank() == 0 {
			assert.EqualValues(t, 6, rsum)
		} else {
			assert.Zero(t, rsum)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestBarrier_SingleRank(t *testing.T) {
	err := comm.Run(1, func(c *comm.Comm) error {
		return c.Barrier()
	})
	require.NoError(t, err)
}

func TestRun_ErrorAbortsBlockedRanks(t *testing.T) {
	boom := errors.New("boom")
	var mu sync.Mutex
	seen := make(map[int]error)

	err := comm.Run(3, func(c *comm.Comm) error {
		if c.Rank() == 1 {
			return boom // never enters the barrier
		}
		err := c.Barrier()
		mu.Lock()
		seen[c.Rank()] = err
		mu.Unlock()
		return err
	})
	require.Error(t, err)

	// The surviving ranks must have been released, not left hanging.
	mu.Lock()
	defer mu.Unlock()
	for rank, err := range seen {
		assert.ErrorIs(t, err, comm.ErrAborted, "rank %d", rank)
	}
}
