package packaging

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Filesystem is the file access the pipeline needs after install.
type Filesystem interface {
	ReadDir(dir string) ([]fs.DirEntry, error)
	CopyFile(src, dst string) error
	RemoveAll(path string) error
}

// OSFilesystem is the local file system.
type OSFilesystem struct{}

// ReadDir lists dir.
func (OSFilesystem) ReadDir(dir string) ([]fs.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	return entries, errors.Wrapf(err, "cannot read directory %s", dir)
}

// CopyFile copies the contents and mode of src to dst, creating the parent
// directories of dst as needed.
func (OSFilesystem) CopyFile(src, dst string) (err error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Wrapf(err, "cannot mkdir %s", filepath.Dir(dst))
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "cannot open %s", src)
	}
	defer in.Close()

	si, err := in.Stat()
	if err != nil {
		return errors.Wrapf(err, "cannot stat %s", src)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, si.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, "cannot create %s", dst)
	}
	defer func() {
		if e := out.Close(); e != nil && err == nil {
			err = errors.Wrapf(e, "cannot close %s", dst)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrapf(err, "cannot copy %s to %s", src, dst)
	}
	return errors.Wrapf(out.Sync(), "cannot sync %s", dst)
}

// RemoveAll removes path and everything below it. A missing path is not an
// error.
func (OSFilesystem) RemoveAll(path string) error {
	return errors.Wrapf(os.RemoveAll(path), "cannot delete %s", path)
}
