//go:build !unix

package platform

import "codeberg.org/mutker/sysmon/internal/errors"

// SelfMaxRSSKB is not supported on this platform.
func SelfMaxRSSKB() (int64, error) {
	return 0, unavailable(errFactory.New(errors.ErrUnavailable))
}
