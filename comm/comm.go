package comm

import (
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Sentinel errors for process-group operations.
var (
	// ErrBadGroupSize indicates a requested group size smaller than one.
	ErrBadGroupSize = errors.New("comm: group size must be at least 1")

	// ErrBadRank indicates a rank outside [0, size).
	ErrBadRank = errors.New("comm: rank out of range")

	// ErrBucketCount indicates an Alltoall call with len(buckets) != size.
	ErrBucketCount = errors.New("comm: alltoall requires one bucket per rank")

	// ErrAborted indicates the group was aborted while a collective was in flight.
	ErrAborted = errors.New("comm: process group aborted")
)

// Group owns the mailboxes of a process group of fixed size.
// All ranks of one generation run share a single Group.
type Group struct {
	size      int
	mail      [][]chan any // mail[from][to], buffered one collective deep
	abortOnce sync.Once
	done      chan struct{}
}

// NewGroup creates a process group of the given size.
// Complexity: O(P²) channels.
func NewGroup(size int) (*Group, error) {
	if size < 1 {
		return nil, ErrBadGroupSize
	}
	mail := make([][]chan any, size)
	for from := 0; from < size; from++ {
		mail[from] = make([]chan any, size)
		for to := 0; to < size; to++ {
			mail[from][to] = make(chan any, 1)
		}
	}

	return &Group{size: size, mail: mail, done: make(chan struct{})}, nil
}

// Comm returns the handle for one rank of the group.
func (g *Group) Comm(rank int) (*Comm, error) {
	if rank < 0 || rank >= g.size {
		return nil, ErrBadRank
	}

	return &Comm{rank: rank, size: g.size, group: g}, nil
}

// Comm is a single rank's view of its process group.
// A Comm must only ever be used by the goroutine of its rank.
type Comm struct {
	rank  int
	size  int
	group *Group
}

// Rank returns this rank's index in [0, Size).
func (c *Comm) Rank() int { return c.rank }

// Size returns the number of ranks in the group.
func (c *Comm) Size() int { return c.size }

// Abort releases every rank blocked in (or later entering) a collective
// with ErrAborted. Safe to call from any rank, any number of times.
func (c *Comm) Abort() {
	c.group.abortOnce.Do(func() { close(c.group.done) })
}

// send delivers v into the mailbox (c.rank -> to).
func (c *Comm) send(to int, v any) error {
	select {
	case c.group.mail[c.rank][to] <- v:
		return nil
	case <-c.group.done:
		return ErrAborted
	}
}

// recv takes the next message out of the mailbox (from -> c.rank).
func (c *Comm) recv(from int) (any, error) {
	select {
	case v := <-c.group.mail[from][c.rank]:
		return v, nil
	case <-c.group.done:
		return nil, ErrAborted
	}
}

// Allgather distributes each rank's value to every rank.
// The result is indexed by rank and identical on all ranks.
func Allgather[T any](c *Comm, local T) ([]T, error) {
	for to := 0; to < c.size; to++ {
		if to == c.rank {
			continue
		}
		if err := c.send(to, local); err != nil {
			return nil, err
		}
	}
	out := make([]T, c.size)
	out[c.rank] = local
	for from := 0; from < c.size; from++ {
		if from == c.rank {
			continue
		}
		v, err := c.recv(from)
		if err != nil {
			return nil, err
		}
		out[from] = v.(T)
	}

	return out, nil
}

// Alltoall sends buckets[i] to rank i and returns the buckets received,
// indexed by source rank. len(buckets) must equal Size.
func Alltoall[T any](c *Comm, buckets [][]T) ([][]T, error) {
	if len(buckets) != c.size {
		return nil, ErrBucketCount
	}
	for to := 0; to < c.size; to++ {
		if to == c.rank {
			continue
		}
		if err := c.send(to, buckets[to]); err != nil {
			return nil, err
		}
	}
	out := make([][]T, c.size)
	out[c.rank] = buckets[c.rank]
	for from := 0; from < c.size; from++ {
		if from == c.rank {
			continue
		}
		v, err := c.recv(from)
		if err != nil {
			return nil, err
		}
		out[from] = v.([]T)
	}

	return out, nil
}

// Barrier blocks until every rank has entered it.
func (c *Comm) Barrier() error {
	_, err := Allgather(c, struct{}{})

	return err
}

// AllreduceOr reduces local flags with logical OR; every rank gets the result.
func (c *Comm) AllreduceOr(local bool) (bool, error) {
	all, err := Allgather(c, local)
	if err != nil {
		return false, err
	}
	for _, v := range all {
		if v {
			return true, nil
		}
	}

	return false, nil
}

// AllreduceMax reduces local values with MAX; every rank gets the result.
func (c *Comm) AllreduceMax(local int64) (int64, error) {
	all, err := Allgather(c, local)
	if err != nil {
		return 0, err
	}
	maxv := all[0]
	for _, v := range all[1:] {
		if v > maxv {
			maxv = v
		}
	}

	return maxv, nil
}

// AllreduceSum reduces local values with SUM; every rank gets the result.
func (c *Comm) AllreduceSum(local int64) (int64, error) {
	all, err := Allgather(c, local)
	if err != nil {
		return 0, err
	}
	var sum int64
	for _, v := range all {
		sum += v
	}

	return sum, nil
}

// ReduceSum reduces local values with SUM towards root. Non-root ranks
// receive 0. Implemented over Allgather; the collective cost is identical.
func (c *Comm) ReduceSum(local int64, root int) (int64, error) {
	sum, err := c.AllreduceSum(local)
	if err != nil {
		return 0, err
	}
	if c.rank != root {
		return 0, nil
	}

	return sum, nil
}

// Run hosts one generation run: it creates a group of the given size,
// spawns fn once per rank and waits for all ranks to return.
// The first non-nil error aborts the group and is returned.
func Run(size int, fn func(*Comm) error) error {
	g, err := NewGroup(size)
	if err != nil {
		return err
	}
	var eg errgroup.Group
	for rank := 0; rank < size; rank++ {
		c, err := g.Comm(rank)
		if err != nil {
			return err
		}
		eg.Go(func() error {
			if err := fn(c); err != nil {
				c.Abort()
				return err
			}
			return nil
		})
	}

	return eg.Wait()
}
