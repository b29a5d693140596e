package images

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

var ErrNoExif = errors.New("no EXIF data")

// CaptureTime reads the original capture time of a JPEG or TIFF image.
// Other formats carry no EXIF block and yield ErrNoExif without being
// opened.
func CaptureTime(path string) (time.Time, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".tif", ".tiff":
	default:
		return time.Time{}, ErrNoExif
	}

	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, ErrNoExif
	}

	taken, err := x.DateTime()
	if err != nil {
		return time.Time{}, ErrNoExif
	}

	return taken, nil
}
