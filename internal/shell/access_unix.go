//go:build unix

package shell

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

// checkEnterable reports whether dir can be made the working directory,
// which needs search permission on it.
func checkEnterable(dir string) error {
	if err := unix.Access(dir, unix.X_OK); err != nil {
		return &fs.PathError{Op: "chdir", Path: dir, Err: err}
	}
	return nil
}
