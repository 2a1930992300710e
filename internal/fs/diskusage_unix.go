//go:build unix

package fs

import "golang.org/x/sys/unix"

// DiskUsage reports used and total bytes for the filesystem containing path.
func DiskUsage(path string) (used, total uint64, err error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, 0, Classify(err)
	}
	total = st.Blocks * uint64(st.Bsize)
	avail := st.Bavail * uint64(st.Bsize)
	if avail > total {
		avail = total
	}
	return total - avail, total, nil
}
