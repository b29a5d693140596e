package gallery

import (
	"html"
	"path"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"

	"github.com/ak0r/zero-theme/images"
	"github.com/ak0r/zero-theme/markdown/docctx"
)

type galleryNode struct {
	document *docctx.Document
	number   int
	Path     string `yaml:"path"`
	Include  string `yaml:"include"`
}

// findImages returns the indexed images of the gallery directory matching
// the include pattern, ordered by capture time.
func (g *galleryNode) findImages() []*images.Asset {
	if g.document.Images == nil {
		return nil
	}

	dir := path.Join(path.Dir(g.document.VaultPath), g.Path)

	var found []*images.Asset
	for _, asset := range g.document.Images.InDirectory(dir) {
		if ok, err := path.Match(g.Include, path.Base(asset.VaultPath)); err != nil || !ok {
			continue
		}

		found = append(found, asset)
	}

	return found
}

func (addin) Render(w util.BufWriter, source []byte, object interface{}, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}

	node := object.(*galleryNode)

	_, _ = w.WriteString("<div class=\"gallery\" id=\"")
	_, _ = w.WriteString(ElementID(node.number))
	_, _ = w.WriteString("\">")

	for _, asset := range node.findImages() {
		url := html.EscapeString(asset.URL())

		_, _ = w.WriteString("<a class=\"gallery-entry glightbox\" data-gallery=\"")
		_, _ = w.WriteString(ElementID(node.number))
		_, _ = w.WriteString("\" href=\"")
		_, _ = w.WriteString(url)
		_, _ = w.WriteString("\"><img class=\"gallery-item\" src=\"")
		_, _ = w.WriteString(url)
		_, _ = w.WriteString("\" alt=\"\"")

		if asset.Taken != nil {
			_, _ = w.WriteString(" title=\"")
			_, _ = w.WriteString(asset.Taken.Format("2006-01-02 15:04:05"))
			_, _ = w.WriteString("\"")
		}

		_, _ = w.WriteString("></a>")
	}

	_, _ = w.WriteString("</div>\n")

	return ast.WalkSkipChildren, nil
}
