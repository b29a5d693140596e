package render

import (
	"github.com/ak0r/zero-theme/data/document"
	"github.com/ak0r/zero-theme/images"
)

// Render runs the HTML passes over the parsed document body and returns the
// indexed images the body references.
//
// Anchors are normalized twice; the last normalization runs after every pass
// that creates anchors.
func Render(doc *document.Document, index *images.Index) []*images.Asset {
	EmplaceMedia(doc)
	FinalizeImages(doc.HTML)
	NormalizeAnchors(doc.HTML)
	doc.Headings = AutolinkHeadings(doc.HTML)
	NormalizeAnchors(doc.HTML)
	ImplicitFigure(doc.HTML)

	return RecodePaths(doc, index)
}
