package images

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ak0r/zero-theme/filesystem"
)

// DefaultJPEGQuality is used for all derivatives written as JPEG.
const DefaultJPEGQuality = 85

// Optimize writes the derivative of src to dst. JPEG and PNG images wider
// than maxWidth are scaled down; everything else is copied verbatim.
func Optimize(src string, dst string, maxWidth int) error {
	if err := filesystem.CreateDirectoryIfNotExists(filepath.Dir(dst)); err != nil {
		return err
	}

	if !isScalable(src) || maxWidth <= 0 {
		return filesystem.Copy(src, dst)
	}

	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("image decode failed: %w", err)
	}

	if img.Bounds().Dx() <= maxWidth {
		return filesystem.Copy(src, dst)
	}

	scaled := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	if err := imaging.Save(scaled, dst, imaging.JPEGQuality(DefaultJPEGQuality)); err != nil {
		return fmt.Errorf("saving image failed: %w", err)
	}

	return nil
}

// IsStale reports whether dst is missing or older than src.
func IsStale(src string, dst string) bool {
	dstInfo, err := os.Stat(dst)
	if err != nil {
		return true
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return true
	}

	return dstInfo.ModTime().Before(srcInfo.ModTime())
}

// MakeCover crops the center of src into a size x size square and saves
// it as JPEG to dst.
func MakeCover(src string, dst string, size int) error {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("image decode failed: %w", err)
	}

	cover := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	if err := imaging.Save(cover, dst, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("saving cover image failed: %w", err)
	}

	return nil
}

func isScalable(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}

	return false
}
