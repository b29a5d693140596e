package filesystem

import (
	"fmt"
	"io"
	"os"
)

// Copy copies the regular file src to dst and preserves its timestamps, so
// that later builds can compare modification times.
func Copy(src, dst string) error {
	sourceFileStat, err := os.Stat(src)
	if err != nil {
		return err
	}

	if !sourceFileStat.Mode().IsRegular() {
		return fmt.Errorf("path '%s' does not denote a file", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy '%s': %w", src, err)
	}

	if err := out.Close(); err != nil {
		return err
	}

	modTime := sourceFileStat.ModTime()

	return os.Chtimes(dst, modTime, modTime)
}
