package fstat

import (
	"time"
)

// Entry is a raw file observation as reported by a collector.
type Entry struct {
	// Path is the file path, used only for diagnostics.
	Path string `json:"path"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
	// Created is the creation (birth) time of the file.
	Created time.Time `json:"created"`
	// Modified is the last modification time of the file.
	Modified time.Time `json:"modified"`
}

// Record is a validated file observation. Timestamps are seconds since the
// Unix epoch with a fractional part, and Created <= Modified always holds
// for records produced by Ingest.
type Record struct {
	// Size is the file size in bytes.
	Size int64 `json:"size"`
	// Created is the creation time in seconds since the epoch.
	Created float64 `json:"created"`
	// Modified is the modification time in seconds since the epoch.
	Modified float64 `json:"modified"`
}

// Instant reports whether the record has no growth duration, meaning its
// whole size appears at a single instant.
func (r Record) Instant() bool {
	return r.Created == r.Modified
}

// Rate returns the linear growth rate in bytes per second.
// It must not be called on an instant record.
func (r Record) Rate() float64 {
	return float64(r.Size) / (r.Modified - r.Created)
}

// FromEntry converts an entry to a record without validating it.
func FromEntry(e Entry) Record {
	return Record{
		Size:     e.Size,
		Created:  Seconds(e.Created),
		Modified: Seconds(e.Modified),
	}
}

// Seconds converts t to fractional seconds since the Unix epoch.
func Seconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
}

// Time converts fractional seconds since the Unix epoch back to a time.Time.
func Time(seconds float64) time.Time {
	sec := int64(seconds)
	nsec := int64((seconds - float64(sec)) * float64(time.Second))

	return time.Unix(sec, nsec)
}
