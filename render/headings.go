package render

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ak0r/zero-theme/data/document"
	"github.com/ak0r/zero-theme/util/slug"
)

const (
	AnchorLinkClass     = "anchor-link"
	TrailingAnchorClass = "anchor-trailing"
	anchorLinkLabel     = "Link to this section"
)

// AutolinkHeadings gives every h2 to h6 heading an id and wraps its content
// in a link to itself. Headings that already contain a link get a trailing
// "#" link instead, links must not nest. The id of h1 is removed, the page
// title needs no anchor. Headings already linked are left alone. The
// headings are returned in document order.
func AutolinkHeadings(doc *goquery.Document) []document.Heading {
	doc.Find("h1").RemoveAttr("id")

	used := make(map[string]int)
	doc.Find("[id]").Each(func(i int, s *goquery.Selection) {
		used[s.AttrOr("id", "")]++
	})

	var headings []document.Heading

	doc.Find("h2,h3,h4,h5,h6").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())

		id, ok := s.Attr("id")
		if !ok || id == "" {
			id = uniqueID(used, slug.Make(text))
			s.SetAttr("id", id)
		}

		headings = append(headings, document.Heading{
			Level: int(s.Nodes[0].Data[1] - '0'),
			ID:    id,
			Text:  text,
		})

		if s.Children().Filter("a."+AnchorLinkClass).Length() > 0 {
			return
		}

		heading := s.Nodes[0]
		if heading.FirstChild == nil {
			return
		}

		anchor := newAnchorLink(id)

		if s.Find("a").Length() > 0 {
			anchor.Attr = append(anchor.Attr, html.Attribute{Key: "class", Val: AnchorLinkClass + " " + TrailingAnchorClass})
			anchor.AppendChild(&html.Node{Type: html.TextNode, Data: "#"})
			heading.AppendChild(&html.Node{Type: html.TextNode, Data: " "})
			heading.AppendChild(anchor)
			return
		}

		anchor.Attr = append(anchor.Attr, html.Attribute{Key: "class", Val: AnchorLinkClass})
		for c := heading.FirstChild; c != nil; c = heading.FirstChild {
			heading.RemoveChild(c)
			anchor.AppendChild(c)
		}
		heading.AppendChild(anchor)
	})

	return headings
}

func newAnchorLink(id string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "a",
		DataAtom: atom.A,
		Attr: []html.Attribute{
			{Key: "href", Val: "#" + id},
			{Key: "aria-label", Val: anchorLinkLabel},
		},
	}
}

func uniqueID(used map[string]int, base string) string {
	if base == "" {
		base = "section"
	}

	id := base
	for n := 1; used[id] > 0; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	used[id]++

	return id
}
