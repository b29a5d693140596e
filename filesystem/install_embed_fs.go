package filesystem

import (
	"bytes"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// InstallEmbedFS writes the directory dir of fsys below root and returns the
// number of files written. Files whose content is already in place are left
// untouched so their modification times stay stable across builds.
func InstallEmbedFS(fsys fs.FS, dir string, root string) (int, error) {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return 0, fmt.Errorf("could not read embedded FS: %w", err)
	}

	written := 0

	err = fs.WalkDir(sub, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		target := filepath.Join(root, filepath.FromSlash(p))

		if d.IsDir() {
			if err := CreateDirectoryIfNotExists(target); err != nil {
				return fmt.Errorf("creating directory '%s' failed: %w", target, err)
			}
			return nil
		}

		content, err := fs.ReadFile(sub, p)
		if err != nil {
			return fmt.Errorf("could not read embedded file '%s': %w", p, err)
		}

		if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, content) {
			return nil
		}

		log.Printf("installing '%s'", p)

		if err := os.WriteFile(target, content, 0666); err != nil {
			return fmt.Errorf("could not write file '%s': %w", target, err)
		}
		written++

		return nil
	})

	return written, err
}
