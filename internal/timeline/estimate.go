package timeline

import (
	"cmp"
	"container/heap"
	"math"
	"slices"

	"github.com/idelchi/dugraph/internal/fstat"
)

// estimator holds the working state of a single Estimate call.
type estimator struct {
	ongoing queue
	series  Series
	// last is the time up to which ongoing intervals have accrued.
	last float64
	// total is the unrounded cumulative size at last.
	total float64
	// settled is the exact size of every interval that has completed.
	settled int64
}

// Estimate builds the cumulative size series for records.
//
// Records are processed in creation order. Before a record is admitted, every
// ongoing interval that finishes at or before its creation time is drained in
// modification order; after the last record, the remaining intervals are
// burned down the same way. A sample is emitted at every start and end of an
// interval. Intervals that end at the same instant are drained in one sample.
//
// The final sample always equals the sum of all record sizes. An empty input
// yields an empty series.
func Estimate(records []fstat.Record) Series {
	if len(records) == 0 {
		return nil
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b fstat.Record) int {
		return cmp.Or(
			cmp.Compare(a.Created, b.Created),
			cmp.Compare(a.Modified, b.Modified),
			cmp.Compare(a.Size, b.Size),
		)
	})

	first := sorted[0].Created

	est := &estimator{
		last:   first,
		series: Series{{At: first, Bytes: 0}},
	}

	for _, record := range sorted {
		est.drainUntil(record.Created)
		est.admit(record)
	}

	for est.ongoing.Len() > 0 {
		est.drainNext()
	}

	return est.series
}

// advance accrues growth of all ongoing intervals up to t.
func (e *estimator) advance(t float64) {
	elapsed := t - e.last
	if elapsed <= 0 {
		return
	}

	for _, iv := range e.ongoing {
		delta := iv.rate * elapsed
		iv.accrued += delta
		e.total += delta
	}

	e.last = t
}

// emit records the cumulative size at t. A sample at or before the previous
// one replaces its value instead of being appended.
func (e *estimator) emit(t float64) {
	e.advance(t)

	var bytes int64

	if e.ongoing.Len() == 0 {
		e.total = float64(e.settled)
		bytes = e.settled
	} else {
		bytes = max(int64(math.Floor(e.total+0.5)), e.series.Final())
	}

	if n := len(e.series); n > 0 && t <= e.series[n-1].At {
		e.series[n-1].Bytes = bytes

		return
	}

	e.series = append(e.series, Sample{At: t, Bytes: bytes})
}

// drainUntil completes every ongoing interval ending at or before t.
func (e *estimator) drainUntil(t float64) {
	for e.ongoing.Len() > 0 && e.ongoing.earliest() <= t {
		e.drainNext()
	}
}

// drainNext completes all intervals sharing the earliest modification time.
func (e *estimator) drainNext() {
	end := e.ongoing.earliest()

	e.advance(end)

	for e.ongoing.Len() > 0 && e.ongoing.earliest() == end {
		iv := heap.Pop(&e.ongoing).(*interval) //nolint:forcetypeassert // heap only holds *interval

		e.total += float64(iv.record.Size) - iv.accrued
		e.settled += iv.record.Size
	}

	e.emit(end)
}

// admit starts a new record at its creation time.
func (e *estimator) admit(record fstat.Record) {
	e.emit(record.Created)

	if !record.Instant() {
		heap.Push(&e.ongoing, &interval{record: record, rate: record.Rate()})

		return
	}

	// The flat sample above runs up to the jump; the jump itself lands on the
	// next representable instant.
	e.settled += record.Size
	e.total += float64(record.Size)
	e.emit(math.Nextafter(record.Created, math.Inf(1)))
}
