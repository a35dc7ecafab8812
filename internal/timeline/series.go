package timeline

import (
	"sort"
	"time"

	"github.com/idelchi/dugraph/internal/fstat"
)

// Sample is a single point of the cumulative size series.
type Sample struct {
	// At is the timestamp in seconds since the Unix epoch.
	At float64 `json:"time" yaml:"time"`
	// Bytes is the estimated cumulative size at At.
	Bytes int64 `json:"bytes" yaml:"bytes"`
}

// Time returns the sample timestamp as a time.Time.
func (s Sample) Time() time.Time {
	return fstat.Time(s.At)
}

// Series is a piecewise-linear cumulative size estimate, ordered by strictly
// increasing timestamp with non-decreasing byte counts.
type Series []Sample

// Final returns the cumulative size at the end of the series.
func (s Series) Final() int64 {
	if len(s) == 0 {
		return 0
	}

	return s[len(s)-1].Bytes
}

// Start returns the timestamp of the first sample, or 0 for an empty series.
func (s Series) Start() float64 {
	if len(s) == 0 {
		return 0
	}

	return s[0].At
}

// End returns the timestamp of the last sample, or 0 for an empty series.
func (s Series) End() float64 {
	if len(s) == 0 {
		return 0
	}

	return s[len(s)-1].At
}

// At returns the interpolated cumulative size at t.
// Before the first sample the size is 0; after the last it is Final.
func (s Series) At(t float64) float64 {
	if len(s) == 0 || t < s[0].At {
		return 0
	}

	if t >= s[len(s)-1].At {
		return float64(s.Final())
	}

	// first sample strictly after t; always >= 1 here
	i := sort.Search(len(s), func(i int) bool { return s[i].At > t })
	prev, next := s[i-1], s[i]

	frac := (t - prev.At) / (next.At - prev.At)

	return float64(prev.Bytes) + frac*float64(next.Bytes-prev.Bytes)
}
