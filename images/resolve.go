// Package images resolves image references found in vault documents and
// prepares the referenced files for the build output.
package images

import (
	"regexp"
	"strings"

	"github.com/ak0r/zero-theme/content"
)

// Attachments with these extensions are embedded as media, not images.
var nonImageExtensions = []string{
	".mp3", ".wav", ".ogg", ".m4a", ".3gp", ".flac", ".aac",
	".mp4", ".webm", ".ogv", ".mov", ".mkv", ".avi",
	".pdf",
}

var rasterExtensionPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|bmp|tiff|tif)$`)

// StripObsidianBrackets removes a surrounding [[...]] from value.
func StripObsidianBrackets(value string) string {
	if len(value) > 4 && strings.HasPrefix(value, "[[") && strings.HasSuffix(value, "]]") {
		return value[2 : len(value)-2]
	}

	return value
}

// IsNonImageAttachment reports whether p names an audio, video or PDF file.
func IsNonImageAttachment(p string) bool {
	lower := strings.ToLower(p)
	for _, ext := range nonImageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}

	return false
}

// isResolved reports whether p must not be rewritten: remote and data URLs,
// site-absolute paths and paths that are already explicitly relative.
func isResolved(p string) bool {
	return p == "" ||
		strings.HasPrefix(p, "http") ||
		strings.HasPrefix(p, "data:") ||
		strings.HasPrefix(p, "/") ||
		strings.HasPrefix(p, "./") ||
		strings.HasPrefix(p, "../")
}

func stripAssetDirectory(p string) (string, bool) {
	for _, dir := range []string{content.ImagesDirectory, content.AttachmentsDirectory} {
		if rest, ok := strings.CutPrefix(p, dir+"/"); ok {
			return rest, true
		}
	}

	return p, false
}

// ResolveImagePath rewrites a raw image reference of a document into a
// reference relative to the document's own directory. An images/ or
// attachments/ prefix is dropped, other names of single-file documents point
// into attachments/. References it cannot place are returned unchanged. The
// result always starts with "./" when rewritten, so applying it twice is a
// no-op.
func ResolveImagePath(rawURL string, c content.Classification) string {
	p := StripObsidianBrackets(rawURL)
	if isResolved(p) || IsNonImageAttachment(p) {
		return p
	}

	if c.Collection.IsNone() && !strings.HasPrefix(p, content.AttachmentsDirectory+"/") {
		return p
	}

	if rest, ok := stripAssetDirectory(p); ok || c.IsFolderBased {
		return "./" + rest
	}

	return "./" + content.AttachmentsDirectory + "/" + p
}

// WebPPath replaces a raster image extension with .webp. Remote URLs, SVG
// and WebP paths are returned as they are.
func WebPPath(p string) string {
	lower := strings.ToLower(p)
	if p == "" ||
		strings.HasPrefix(p, "http") ||
		strings.HasSuffix(lower, ".svg") ||
		strings.HasSuffix(lower, ".webp") {
		return p
	}

	return rasterExtensionPattern.ReplaceAllString(p, ".webp")
}
