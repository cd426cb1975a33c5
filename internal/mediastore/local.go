package mediastore

import (
	"errors"
	"io/fs"
	"os"
)

// RemoveLocal deletes a staged upload file. It is idempotent: removing a
// path that is already gone is not an error, which lets every exit path of
// the pipeline attempt cleanup without coordination.
func RemoveLocal(path string) error {
	if path == "" {
		return nil
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
