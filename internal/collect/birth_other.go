//go:build !linux && !windows && !darwin && !freebsd && !netbsd

package collect

import (
	"io/fs"
	"time"
)

// birthTime is unsupported here; callers fall back to the modification time.
func birthTime(string, fs.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
