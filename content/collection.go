// Package content knows the layout conventions of the vault: which
// directories are collections and which files are folder-based entries.
package content

import "strings"

// Collection names a partition of the vault with its own directory root.
type Collection string

const (
	None     Collection = ""
	Posts    Collection = "posts"
	Projects Collection = "projects"
	Docs     Collection = "docs"
	Pages    Collection = "pages"
	Gallery  Collection = "gallery"
)

// Collections in classification priority order.
var Collections = []Collection{Posts, Projects, Docs, Pages, Gallery}

// legacyAliases maps old directory names onto their current collection.
var legacyAliases = map[string]Collection{
	"special": Pages,
}

// IndexFileNames mark a document as the entry point of a folder-based entry.
var IndexFileNames = []string{"index.md", "index.mdx"}

// AttachmentsDirectory is the conventional directory for co-located media.
const AttachmentsDirectory = "attachments"

// ImagesDirectory is accepted as an alternative to AttachmentsDirectory.
const ImagesDirectory = "images"

func (c Collection) String() string {
	return string(c)
}

func (c Collection) IsNone() bool {
	return c == None
}

// ParseCollection maps a directory segment onto a collection, honoring
// legacy aliases.
func ParseCollection(segment string) (Collection, bool) {
	for _, c := range Collections {
		if segment == string(c) {
			return c, true
		}
	}

	if c, ok := legacyAliases[segment]; ok {
		return c, true
	}

	return None, false
}

func isIndexFileName(name string) bool {
	name = strings.ToLower(name)
	for _, n := range IndexFileNames {
		if name == n {
			return true
		}
	}

	return false
}
