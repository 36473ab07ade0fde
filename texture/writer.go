package texture

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/lepinkainen/texturetool/types"
)

// Writer persists operator outputs. It is shared by all tasks of a run;
// directory creation is idempotent so concurrent workers may race on the
// same parent without failing.
type Writer struct {
	dryRun bool
	dirs   sync.Map // parent directory -> struct{}
}

// NewWriter returns a Writer. In dry-run mode targets are computed but
// nothing is created, written or removed.
func NewWriter(dryRun bool) *Writer {
	return &Writer{dryRun: dryRun}
}

// DryRun reports whether the writer is in dry-run mode.
func (w *Writer) DryRun() bool { return w.dryRun }

// Save encodes img in format at path, replacing its extension with the
// format's, and returns the final path.
func (w *Writer) Save(img image.Image, path string, format types.OutputFormat) (string, error) {
	target := swapExt(path, format.Ext())
	if w.dryRun {
		return target, nil
	}
	if err := w.ensureDir(filepath.Dir(target)); err != nil {
		return "", err
	}
	err := w.atomicWrite(target, func(f io.Writer) error {
		return Encode(f, img, format)
	})
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", target, err)
	}
	return target, nil
}

// Copy copies src to dst byte for byte.
func (w *Writer) Copy(src, dst string) error {
	if w.dryRun {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := w.ensureDir(filepath.Dir(dst)); err != nil {
		return err
	}
	err = w.atomicWrite(dst, func(f io.Writer) error {
		_, err := io.Copy(f, in)
		return err
	})
	if err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return nil
}

// Remove deletes a source file after a destructive operation.
func (w *Writer) Remove(path string) error {
	if w.dryRun {
		return nil
	}
	return os.Remove(path)
}

func (w *Writer) ensureDir(dir string) error {
	if _, ok := w.dirs.Load(dir); ok {
		return nil
	}
	// MkdirAll treats an existing directory as success.
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	w.dirs.Store(dir, struct{}{})
	return nil
}

// atomicWrite writes through a temp file in the target directory and renames
// it into place. A failed encode leaves no partial output behind.
func (w *Writer) atomicWrite(target string, fill func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".texturetool-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := fill(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
