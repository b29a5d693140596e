package render

import (
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ak0r/zero-theme/data/document"
	"github.com/ak0r/zero-theme/images"
)

func isAbsoluteReference(src string) bool {
	uri, err := url.Parse(src)
	if err != nil {
		return true
	}

	return uri.IsAbs() || strings.HasPrefix(src, "/") || strings.HasPrefix(src, "#") || strings.HasPrefix(src, "data:")
}

// RecodePaths replaces relative image sources of doc by their published URL
// and returns the indexed images referenced. Links are only recoded when
// they point at an indexed image, as lightbox links do.
func RecodePaths(doc *document.Document, index *images.Index) []*images.Asset {
	var (
		used []*images.Asset
		seen = make(map[*images.Asset]bool)
	)

	docDir := doc.DocumentDirectory()

	doc.HTML.Find("img,source,a").Each(func(i int, s *goquery.Selection) {
		attribute := "src"
		if s.Is("a") {
			attribute = "href"
		}

		src, ok := s.Attr(attribute)
		if !ok || isAbsoluteReference(src) {
			return
		}

		if index == nil {
			return
		}

		resolved, ok := index.Locate(docDir, src)
		if !ok {
			return
		}

		if resolved.Kind != images.Embedded {
			if s.Is("a") {
				return
			}
			log.Printf("image '%s' of '%s' is not indexed", src, doc.VaultPath)
		}

		s.SetAttr(attribute, resolved.URL)

		if resolved.Asset != nil && !seen[resolved.Asset] {
			seen[resolved.Asset] = true
			used = append(used, resolved.Asset)
		}
	})

	return used
}
