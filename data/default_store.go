package data

import (
	"github.com/ak0r/zero-theme/markdown"
)

// NewDefaultStore loads the vault at contentDirectory with the default
// highlight style and orders documents newest first and tags by name.
func NewDefaultStore(contentDirectory string, includeDrafts bool) (*Store, error) {
	store, err := NewStore(
		contentDirectory,
		StoreOptions{
			IncludeDrafts:  includeDrafts,
			HighlightStyle: markdown.DefaultHighlightStyle,
		},
	)

	if err != nil {
		return nil, err
	}

	store.SortDocumentsByDate()
	store.SortTags()

	return store, nil
}
