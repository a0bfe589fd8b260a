// Package fileutil provides small filesystem helpers shared across remixd.
package fileutil

import (
	"io"
	"os"
)

// WriteStream copies r to a new file at path (0o644), returning the number of
// bytes written. An existing file is truncated.
func WriteStream(path string, r io.Reader) (int64, error) {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	written, err := io.Copy(out, r)
	if err != nil {
		out.Close()
		return written, err
	}
	return written, out.Close()
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
