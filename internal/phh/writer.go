package phh

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lox/holdemsim/internal/game"
)

// Writer records every settled hand as <dir>/<hand id>.phh
type Writer struct {
	dir   string
	table string
}

func NewWriter(dir, table string) *Writer {
	return &Writer{dir: dir, table: table}
}

// Path is where the hand with the given id is written
func (w *Writer) Path(handID string) string {
	return filepath.Join(w.dir, handID+".phh")
}

// RecordHand implements game.Recorder
func (w *Writer) RecordHand(r *game.HandResult) error {
	if r.HandID == "" {
		return fmt.Errorf("phh: hand has no id")
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("phh: %w", err)
	}
	data, err := EncodeToBytes(FromResult(r, w.table))
	if err != nil {
		return err
	}
	return writeFileAtomic(w.Path(r.HandID), data, 0o644)
}

// writeFileAtomic writes through a temporary file in the same directory and
// renames it into place, so readers see either no file or the whole hand.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmp = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
