// Package files discovers loadable documents in a directory tree.
package files

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ScanDirectory walks root recursively and returns the paths of every
// regular file, in lexical order. Hidden files and directories (leading
// dot) are skipped.
func ScanDirectory(root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path %s: %w", path, err)
		}

		if isHidden(d.Name()) && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
