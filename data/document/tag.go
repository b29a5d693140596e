package document

import (
	"strings"

	"github.com/ak0r/zero-theme/util/slug"
)

// Tag is a document tag from frontmatter or an inline #tag. Tags listed
// below a key of a frontmatter tag map carry that key as Category.
type Tag struct {
	Raw      string
	Category string
}

func (t Tag) HasCategory() bool {
	return len(t.Category) > 0
}

func (t Tag) String() string {
	return t.Raw
}

func (t Tag) Normalize() string {
	return NormalizeTagName(t.Raw)
}

// Slug is the URL path segment of the tag page.
func (t Tag) Slug() string {
	return slug.Tag(t.Raw)
}

// NormalizeTagName is the case-insensitive identity of a tag; "#Go" and
// "go" name the same tag.
func NormalizeTagName(tag string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
}
