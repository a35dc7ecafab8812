package collect

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// birthTime reads the file birth time with statx. Filesystems that do not
// record it leave STATX_BTIME out of the returned mask.
func birthTime(path string, _ fs.FileInfo) (time.Time, bool) {
	var stx unix.Statx_t

	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME, &stx)
	if err != nil || stx.Mask&unix.STATX_BTIME == 0 {
		return time.Time{}, false
	}

	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), true
}
