//go:build !unix

package fs

import "errors"

// DiskUsage is only implemented for unix-like systems; callers treat the
// error as "no readout available".
func DiskUsage(path string) (used, total uint64, err error) {
	return 0, 0, errors.New("disk usage not supported on this platform")
}
