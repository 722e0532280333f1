package processor

import (
	"os"
	"path/filepath"

	"github.com/kartenwerk/gemeindekarte/internal/geo"
)

// Save marshals the collection fully in memory, writes a temp file and
// renames it into place, so a failed run never leaves a partial file behind.
func Save(path string, c geo.Collection) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return nil
}
