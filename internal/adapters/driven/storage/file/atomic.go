package file

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/custodia-labs/reposift/internal/core/domain"
)

const tempPrefix = ".reposift-"

// writeAtomic writes the output of fill to path via a temp file and rename.
func writeAtomic(path string, fill func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, tempPrefix+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %w", domain.ErrPersistence, err)
	}

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err = fill(f); err != nil {
		return fmt.Errorf("%w: writing %s: %w", domain.ErrPersistence, filepath.Base(path), err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("%w: syncing temp file: %w", domain.ErrPersistence, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: closing temp file: %w", domain.ErrPersistence, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: replacing %s: %w", domain.ErrPersistence, filepath.Base(path), err)
	}
	return nil
}
