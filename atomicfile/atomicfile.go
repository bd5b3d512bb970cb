// Package atomicfile writes files atomically: data goes to a temporary
// file in the target directory and only a successful Close moves it into
// place, so readers never observe a partially written file.
package atomicfile

import (
	"os"
	"path/filepath"
)

// File behaves like an os.File, but commits on Close.
type File struct {
	*os.File
	path string
}

// New creates a temporary file next to path, ready for writing.
func New(path string) (*File, error) {
	dir, base := filepath.Split(path)
	f, err := os.CreateTemp(dir, base+".tmp-")
	if err != nil {
		return nil, err
	}
	return &File{File: f, path: path}, nil
}

// Close flushes the temporary file and renames it into place.
func (f *File) Close() error {
	if err := f.File.Sync(); err != nil {
		f.Abort()
		return err
	}
	if err := f.File.Close(); err != nil {
		os.Remove(f.File.Name())
		return err
	}
	return os.Rename(f.File.Name(), f.path)
}

// Abort discards the temporary file.
func (f *File) Abort() error {
	f.File.Close()
	return os.Remove(f.File.Name())
}
