package kv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"

	"github.com/rcliao/ebbinghaus/internal/model"
)

// File implements Substrate with one file per key under a directory.
// Writes go to a temp file that is renamed over the target, so readers see
// either the old or the new value, never a mix.
type File struct {
	fs  afero.Fs
	dir string
}

// NewFile prepares dir on fsys and returns a file-backed substrate.
func NewFile(fsys afero.Fs, dir string) (*File, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create kv dir: %w", err)
	}
	return &File{fs: fsys, dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	b, err := afero.ReadFile(f.fs, f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return string(b), true, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	tmp, err := afero.TempFile(f.fs, f.dir, "."+key+"-*")
	if err != nil {
		return f.writeErr(key, err)
	}
	name := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		f.fs.Remove(name)
		return f.writeErr(key, err)
	}
	if err := tmp.Close(); err != nil {
		f.fs.Remove(name)
		return f.writeErr(key, err)
	}
	if err := f.fs.Rename(name, f.path(key)); err != nil {
		f.fs.Remove(name)
		return f.writeErr(key, err)
	}
	return nil
}

func (f *File) writeErr(key string, err error) error {
	if errors.Is(err, syscall.ENOSPC) {
		return fmt.Errorf("%w: set %s: %v", model.ErrStorageFull, key, err)
	}
	return fmt.Errorf("set %s: %w", key, err)
}

func (f *File) Close() error {
	return nil
}
