// Package fsutil holds small filesystem helpers shared by the CLI
// commands.
package fsutil

import (
	"io/fs"
	"path/filepath"
)

// FindModelFiles recursively finds every .fga file under dir.
func FindModelFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".fga" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
