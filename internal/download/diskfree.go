package download

import "golang.org/x/sys/unix"

// diskFree returns the bytes available to unprivileged users on the volume
// holding dir.
func diskFree(dir string) (int64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return 0, err
	}
	return int64(st.Bavail) * int64(st.Bsize), nil
}

// DiskFree is the exported probe used for the pre-run usage report.
func DiskFree(dir string) (int64, error) {
	return diskFree(dir)
}
