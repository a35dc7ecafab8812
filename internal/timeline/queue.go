package timeline

import (
	"github.com/idelchi/dugraph/internal/fstat"
)

// interval is a growth span currently in progress.
type interval struct {
	record fstat.Record
	rate   float64
	// accrued is the number of bytes already attributed to this interval.
	accrued float64
}

// queue is a min-heap of ongoing intervals keyed by modification time.
type queue []*interval

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool { return q[i].record.Modified < q[j].record.Modified }

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(*interval)) } //nolint:forcetypeassert // heap only holds *interval

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]

	return item
}

// earliest returns the smallest modification time in the queue.
func (q queue) earliest() float64 {
	return q[0].record.Modified
}
