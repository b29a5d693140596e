package render

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// WikilinkClass is added to anchors created from wikilinks.
const WikilinkClass = "wikilink"

// FinalizeImages sets lazy loading and asynchronous decoding on every image
// and defaults a missing alt text to the empty string. Present attributes
// are kept.
func FinalizeImages(doc *goquery.Document) {
	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		setDefaultAttr(s, "loading", "lazy")
		setDefaultAttr(s, "decoding", "async")
		setDefaultAttr(s, "alt", "")
	})
}

func setDefaultAttr(s *goquery.Selection, name, value string) {
	if _, ok := s.Attr(name); !ok {
		s.SetAttr(name, value)
	}
}

// NormalizeAnchors decodes percent-encoded hrefs and marks anchors that were
// created from wikilinks. Hrefs that fail to decode are left as they are.
func NormalizeAnchors(doc *goquery.Document) {
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if decoded, err := url.PathUnescape(href); err == nil && decoded != href {
			s.SetAttr("href", decoded)
		}

		if _, ok := s.Attr("data-wikilink"); ok {
			s.AddClass(WikilinkClass)
		}
	})
}
