package pyproc

import (
	"fmt"
	"os"
	"path/filepath"

	"assistd/internal/common/fsutil"
)

// MaterializeScript writes an embedded worker script under dir and
// returns its path. Existing files are overwritten so upgrades always
// run the script matching the binary.
func MaterializeScript(dir, name string, content []byte) (string, error) {
	if err := fsutil.EnsureDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write worker script %s: %w", name, err)
	}
	return path, nil
}
