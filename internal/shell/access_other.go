//go:build !unix

package shell

import "os"

func checkEnterable(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	return f.Close()
}
