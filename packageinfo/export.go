package packageinfo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/albertocavalcante/go-conanrecipe"
)

// Export renders the package info of res and writes it to path. It is
// write-once per evaluation: a second export of the same evaluation returns
// conanrecipe.ErrAlreadyExported and leaves path untouched. The file is
// written to a temporary sibling and renamed into place, so readers see the
// previous content or the complete new one.
func Export(res *conanrecipe.Result, f Format, path string) error {
	data, err := Render(FromResult(res), f)
	if err != nil {
		return err
	}
	if err := res.ClaimExport(); err != nil {
		return err
	}
	return WriteFileAtomic(path, data, 0o644)
}

// ExportTo is Export for an arbitrary writer, e.g. stdout.
func ExportTo(res *conanrecipe.Result, f Format, w io.Writer) error {
	data, err := Render(FromResult(res), f)
	if err != nil {
		return err
	}
	if err := res.ClaimExport(); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write package info: %w", err)
	}
	return nil
}

// WriteFileAtomic writes data to a temporary file in the directory of path
// and renames it over path.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmp.Name(), path, err)
	}
	return nil
}
