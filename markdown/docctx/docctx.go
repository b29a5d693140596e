// Package docctx carries per-document information through the goldmark
// parser.Context, so transformers and addins need not re-derive it from
// the document path.
package docctx

import (
	"github.com/yuin/goldmark/parser"

	"github.com/ak0r/zero-theme/content"
	"github.com/ak0r/zero-theme/images"
)

var (
	documentKey = parser.NewContextKey()
	tagsKey     = parser.NewContextKey()
)

// Document describes the document being parsed.
type Document struct {
	Path           string // file system path
	VaultPath      string // slash separated, relative to the content root
	Classification content.Classification
	Images         *images.Index
}

// New returns a parser context carrying doc.
func New(doc *Document) parser.Context {
	pc := parser.NewContext()
	Set(pc, doc)

	return pc
}

func Set(pc parser.Context, doc *Document) {
	pc.Set(documentKey, doc)
}

// Get returns the document stored in pc. Without one, an unclassified
// document is returned.
func Get(pc parser.Context) (*Document, bool) {
	if doc, ok := pc.Get(documentKey).(*Document); ok && doc != nil {
		return doc, true
	}

	return &Document{Classification: content.Unclassified}, false
}

// AddTag records a tag found in the document body. Duplicates are ignored.
func AddTag(pc parser.Context, tag string) {
	tags := Tags(pc)
	for _, t := range tags {
		if t == tag {
			return
		}
	}

	pc.Set(tagsKey, append(tags, tag))
}

// Tags returns the body tags in order of first occurrence.
func Tags(pc parser.Context) []string {
	if tags, ok := pc.Get(tagsKey).([]string); ok {
		return tags
	}

	return nil
}
