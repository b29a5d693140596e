// Package gallery renders ":: gallery" blocks as a lightbox grid of the
// images stored next to the document. The block body may narrow the
// selection:
//
//	:: gallery ---
//	path: attachments/day-1
//	include: "*.jpg"
//	---
package gallery

import (
	"fmt"

	"github.com/yuin/goldmark/parser"

	"github.com/ak0r/zero-theme/content"
	"github.com/ak0r/zero-theme/markdown/docctx"
	"github.com/ak0r/zero-theme/markdown/yamlblock"
)

var galleryCount = parser.NewContextKey()

// Count returns the number of galleries parsed so far with pc.
func Count(pc parser.Context) int {
	count, _ := pc.Get(galleryCount).(int)
	return count
}

// ElementID is the HTML id of the gallery with the given number.
func ElementID(number int) string {
	return fmt.Sprintf("gallery-%02d", number)
}

type addin struct{}

// NewAddin returns the yamlblock addin for ":: gallery" blocks.
func NewAddin() yamlblock.Addin {
	return addin{}
}

func (addin) AddinKey() string {
	return "gallery"
}

func (addin) Make(pc parser.Context) interface{} {
	doc, _ := docctx.Get(pc)

	number := Count(pc)
	pc.Set(galleryCount, number+1)

	return &galleryNode{
		document: doc,
		number:   number,
		Path:     content.AttachmentsDirectory,
		Include:  "*",
	}
}
