package filesystem

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"

	"github.com/ak0r/zero-theme/content"
)

// AttachmentPattern matches files published verbatim next to the pages.
var AttachmentPattern = regexp.MustCompile(`(?i)\.(pdf|mp4|webm|mov|mp3|wav|ogg|m4a|zip|tar|gz|7z|csv|xlsx|docx|pptx)$`)

// SyncAttachments mirrors attachments of the content tree into the output
// tree:
//
//	<content>/attachments/**            -> <out>/attachments/**
//	<content>/<c>/attachments/**        -> <out>/<c>/attachments/**
//	<content>/<c>/<entry>/attachments/** -> <out>/<c>/<entry>/**
//
// Only the shared vault attachments directory is copied completely; the
// collection directories contribute files matching AttachmentPattern. It
// returns the number of copied files. Up-to-date targets are skipped.
func SyncAttachments(contentDir string, outDir string) (int, error) {
	total := 0

	n, err := syncTree(
		filepath.Join(contentDir, content.AttachmentsDirectory),
		filepath.Join(outDir, content.AttachmentsDirectory),
		nil,
	)
	if err != nil {
		return total, err
	}
	total += n

	for _, c := range content.Collections {
		base := filepath.Join(contentDir, string(c))

		n, err := syncTree(
			filepath.Join(base, content.AttachmentsDirectory),
			filepath.Join(outDir, string(c), content.AttachmentsDirectory),
			AttachmentPattern,
		)
		if err != nil {
			return total, err
		}
		total += n

		entries, err := os.ReadDir(base)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() || entry.Name() == content.AttachmentsDirectory {
				continue
			}

			n, err := syncTree(
				filepath.Join(base, entry.Name(), content.AttachmentsDirectory),
				filepath.Join(outDir, string(c), entry.Name()),
				AttachmentPattern,
			)
			if err != nil {
				return total, err
			}

			if n > 0 {
				log.Printf("%s/%s: synced %d attachments", c, entry.Name(), n)
			}
			total += n
		}
	}

	return total, nil
}

func syncTree(srcDir string, dstDir string, include *regexp.Regexp) (int, error) {
	if !IsDirectory(srcDir) {
		return 0, nil
	}

	count := 0

	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if include != nil && !include.MatchString(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		target := filepath.Join(dstDir, rel)
		if !isOlder(target, path) {
			return nil
		}

		if err := CreateDirectoryIfNotExists(filepath.Dir(target)); err != nil {
			return err
		}

		if err := Copy(path, target); err != nil {
			return err
		}

		count++

		return nil
	})
	if err != nil {
		return count, fmt.Errorf("sync '%s': %w", srcDir, err)
	}

	return count, nil
}

// isOlder reports whether target is missing or older than source.
func isOlder(target string, source string) bool {
	targetMod, err := FileModifiedTime(target)
	if err != nil {
		return true
	}

	sourceMod, err := FileModifiedTime(source)
	if err != nil {
		return true
	}

	return targetMod.Before(sourceMod)
}
