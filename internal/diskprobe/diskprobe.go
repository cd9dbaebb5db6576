// Package diskprobe wraps the directory/disk-space probes that spec.md §1
// names as an external collaborator: creating an output directory when it is
// absent, and reporting free space on a filesystem. The command-line tools
// and the OBJ exporter call EnsureDir; the cut/convert pipeline (C5) does not
// import this package.
package diskprobe

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// EnsureDir creates dir (and parents) with the given permission bits if it
// does not already exist. An existing directory is left untouched.
func EnsureDir(dir string, perm os.FileMode) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.Errorf("%s exists and is not a directory", dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return errors.Wrapf(err, "stat %s", dir)
	}
	if err := os.MkdirAll(dir, perm); err != nil {
		return errors.Wrapf(err, "creating output directory %s", dir)
	}
	return nil
}

// FreeBytes reports the free space available on the filesystem holding path.
// Failure to probe is a warning, not a fatal error (spec.md §7), so callers
// should log and continue rather than abort on a non-nil error.
func FreeBytes(path string) (uint64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, errors.Wrapf(err, "statfs %s", path)
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}

// HasHeadroom reports whether the filesystem holding path has at least
// wantBytes free. A probe failure is treated as "assume yes" by the caller;
// this function just reports the failure so the caller can decide and warn.
func HasHeadroom(path string, wantBytes uint64) (bool, error) {
	free, err := FreeBytes(path)
	if err != nil {
		return true, err
	}
	return free >= wantBytes, nil
}
