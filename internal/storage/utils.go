package storage

import (
	"os"
	"path/filepath"
)

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func readDir(dir string) ([]os.DirEntry, error) {
	return os.ReadDir(dir)
}
