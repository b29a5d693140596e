package building

import (
	"sort"

	"github.com/ak0r/zero-theme/data/document"
)

// DocumentSet is the set of entries to render, keyed by source path.
type DocumentSet map[string]*document.Document

func NewDocumentSet() DocumentSet {
	return make(DocumentSet)
}

func (s DocumentSet) Add(d *document.Document) {
	s[d.Path] = d
}

func (s DocumentSet) Contains(d *document.Document) bool {
	_, ok := s[d.Path]
	return ok
}

// Documents returns the members ordered by source path.
func (s DocumentSet) Documents() []*document.Document {
	docs := make([]*document.Document, 0, len(s))
	for _, d := range s {
		docs = append(docs, d)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Path < docs[j].Path
	})

	return docs
}

func (s DocumentSet) Len() int {
	return len(s)
}
