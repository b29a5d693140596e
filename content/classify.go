package content

import (
	"strings"

	"github.com/ak0r/zero-theme/option"
)

// Classification describes where a document lives in the vault.
// Slug is set iff IsFolderBased is true.
type Classification struct {
	Collection    Collection
	Slug          option.Option[string]
	IsFolderBased bool
}

// Unclassified is the result for paths outside every known collection.
var Unclassified = Classification{}

// Classify infers the collection of a document from its file path and, for
// folder-based documents, the slug of the entry. Both slash styles are
// accepted. The first collection segment in path order wins.
func Classify(filePath string) Classification {
	segments := splitPath(filePath)
	if len(segments) == 0 {
		return Unclassified
	}

	last := len(segments) - 1

	for i, segment := range segments[:last] {
		collection, ok := ParseCollection(segment)
		if !ok {
			continue
		}

		c := Classification{Collection: collection}

		// The slug is the directory directly below the collection, so the
		// index file must be at least two segments further down.
		if isIndexFileName(segments[last]) && i+1 < last {
			c.IsFolderBased = true
			c.Slug = option.Some(segments[i+1])
		}

		return c
	}

	return Unclassified
}

// ClassifyForImage classifies the document that references imagePath. An
// unclassified document still resolves attachments/ references as pages.
func ClassifyForImage(filePath string, imagePath string) Classification {
	c := Classify(filePath)
	if c.Collection.IsNone() && strings.HasPrefix(imagePath, AttachmentsDirectory+"/") {
		c.Collection = Pages
	}

	return c
}

// Directory returns the vault-relative directory of a folder-based entry,
// e.g. "posts/my-post". It is empty for other documents.
func (c Classification) Directory() string {
	entry, ok := c.Slug.Value()
	if !ok {
		return ""
	}

	return string(c.Collection) + "/" + entry
}

// NormalizePath converts backslashes to forward slashes.
func NormalizePath(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

func splitPath(p string) []string {
	var segments []string
	for _, s := range strings.Split(NormalizePath(p), "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}

	return segments
}
