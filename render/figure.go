package render

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
)

// ImplicitFigure replaces paragraphs holding nothing but one captioned image
// with a figure carrying the caption.
func ImplicitFigure(doc *goquery.Document) {
	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		var img *xhtml.Node

		for n := s.Nodes[0].FirstChild; n != nil; n = n.NextSibling {
			switch {
			case n.Type == xhtml.TextNode && strings.TrimSpace(n.Data) == "":
				continue
			case n.Type == xhtml.ElementNode && n.Data == "img" && img == nil:
				img = n
			default:
				return
			}
		}

		if img == nil {
			return
		}

		imgSel := s.FindNodes(img)

		caption, ok := imgSel.Attr("data-caption")
		if !ok || strings.TrimSpace(caption) == "" {
			return
		}

		s.ReplaceWithSelection(imgSel)
		imgSel.WrapHtml("<figure></figure>")
		imgSel.AfterHtml("<figcaption>" + html.EscapeString(caption) + "</figcaption>")
	})
}
