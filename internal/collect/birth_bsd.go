//go:build darwin || freebsd || netbsd

package collect

import (
	"io/fs"
	"syscall"
	"time"
)

func birthTime(_ string, info fs.FileInfo) (time.Time, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, false
	}

	sec, nsec := stat.Birthtimespec.Unix()

	return time.Unix(sec, nsec), true
}
