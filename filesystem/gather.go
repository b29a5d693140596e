package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// GatherFiles collects the absolute paths of all files below the given roots
// whose extension is in extensions. Roots may also name single files. Hidden
// directories and directories named in skipDirs are not descended into.
func GatherFiles(roots []string, extensions []string, skipDirs ...string) ([]string, error) {
	hasExtension := func(name string) bool {
		ext := strings.ToLower(filepath.Ext(name))
		for _, e := range extensions {
			if e == ext {
				return true
			}
		}
		return false
	}

	skip := func(name string) bool {
		if strings.HasPrefix(name, ".") && name != "." {
			return true
		}
		for _, s := range skipDirs {
			if s == name {
				return true
			}
		}
		return false
	}

	appendAbsPath := func(paths []string, path string) ([]string, error) {
		path, err := filepath.Abs(path)
		if err != nil {
			return paths, fmt.Errorf("absolute path: %w", err)
		}
		return append(paths, path), nil
	}

	var paths []string

	for _, root := range roots {
		fi, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if fi.Mode().IsRegular() {
			if !hasExtension(fi.Name()) {
				continue
			}

			paths, err = appendAbsPath(paths, root)
			if err != nil {
				return nil, err
			}

		} else if fi.Mode().IsDir() {
			err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}

				if d.IsDir() {
					if path != root && skip(d.Name()) {
						return filepath.SkipDir
					}
					return nil
				}

				if !hasExtension(d.Name()) {
					return nil
				}

				paths, err = appendAbsPath(paths, path)
				return err
			})
			if err != nil {
				return nil, fmt.Errorf("walk '%s': %w", root, err)
			}
		} else {
			return nil, fmt.Errorf("path '%s' neither directory nor file", root)
		}
	}

	return paths, nil
}
