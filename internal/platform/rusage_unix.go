//go:build unix

package platform

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// SelfMaxRSSKB returns the resident set high-water mark of this process in kilobytes.
func SelfMaxRSSKB() (int64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, unavailable(err)
	}

	// darwin reports bytes
	if runtime.GOOS == "darwin" {
		return int64(ru.Maxrss) / 1024, nil
	}
	return int64(ru.Maxrss), nil
}
