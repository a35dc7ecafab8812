package collect

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/idelchi/dugraph/internal/fstat"
)

// TimeSource selects where a file's creation time is read from.
type TimeSource string

const (
	// TimeSourceBirth uses the filesystem birth time, falling back to the
	// modification time where none is recorded.
	TimeSourceBirth TimeSource = "birth"
	// TimeSourceModified uses the modification time as creation time, so every
	// file appears instantaneously.
	TimeSourceModified TimeSource = "mtime"
)

// TimeSources lists the accepted time sources.
//
//nolint:gochecknoglobals // Config constant
var TimeSources = []TimeSource{TimeSourceBirth, TimeSourceModified}

// Options configures collection.
type Options struct {
	// Paths are the directories to collect from.
	Paths []string
	// Recursive descends into subdirectories.
	Recursive bool
	// Depth is the maximum traversal depth when recursive (0=unlimited).
	Depth int
	// Extensions to include (empty = all); '!' prefix excludes.
	Extensions []string
	// Excludes contains regex patterns to exclude.
	Excludes []string
	// MinSize is the minimum file size in bytes.
	MinSize int64
	// TimeSource selects the creation time source.
	TimeSource TimeSource
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
}

// Result holds everything collected from the walk.
type Result struct {
	// Entries are the collected files, sorted by path.
	Entries []fstat.Entry
	// FileCount is the number of collected files.
	FileCount int64
	// TotalBytes is the cumulative size of all collected files.
	TotalBytes int64
	// ErrorCount is the number of entries that could not be read.
	ErrorCount int64
	// BirthTimeMissing counts files whose birth time was unavailable.
	BirthTimeMissing int64
	// Elapsed is the total time taken for the walk.
	Elapsed time.Duration
}

// collector aggregates entries from concurrent fastwalk callbacks using a mutex.
type collector struct {
	mu               sync.Mutex // Protect concurrent access
	entries          []fstat.Entry
	fileCount        int64
	totalBytes       int64
	errorCount       int64
	birthTimeMissing int64
}

func newCollector() *collector {
	return &collector{
		entries: make([]fstat.Entry, 0),
	}
}

// addError increments the error counter. This operation is protected by a mutex
// since fastwalk calls the callback from multiple goroutines concurrently.
func (c *collector) addError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorCount++
}

// add records a file entry. This operation is protected by a mutex
// since fastwalk calls the callback from multiple goroutines concurrently.
func (c *collector) add(entry fstat.Entry, birthKnown bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fileCount++
	c.totalBytes += entry.Size

	if !birthKnown {
		c.birthTimeMissing++
	}

	c.entries = append(c.entries, entry)
}

// progress returns the current file and byte counts.
func (c *collector) progress() (int64, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fileCount, c.totalBytes
}

// finalize produces the Result from the collected data.
// Entries are ordered by path so that results do not depend on walk order.
func (c *collector) finalize() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := slices.Clone(c.entries)
	slices.SortFunc(entries, func(a, b fstat.Entry) int {
		return strings.Compare(a.Path, b.Path)
	})

	return &Result{
		Entries:          entries,
		FileCount:        c.fileCount,
		TotalBytes:       c.totalBytes,
		ErrorCount:       c.errorCount,
		BirthTimeMissing: c.birthTimeMissing,
	}
}
