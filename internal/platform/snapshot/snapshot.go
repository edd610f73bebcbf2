// Package snapshot persists process state as JSON files. Writes go through a
// temp file and rename so a crash mid-write never leaves a truncated snapshot.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Save marshals v and atomically replaces the file at path.
func Save(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapshot dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot marshal: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("snapshot write: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("snapshot rename: %w", err)
	}
	return nil
}

// Load reads the file at path into v. A missing file returns os.ErrNotExist;
// callers decide whether that is fatal (it usually is not).
func Load(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("snapshot parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
