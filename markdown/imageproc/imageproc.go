// Package imageproc holds the markdown passes over images: path
// resolution, captions and grids.
package imageproc

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/ak0r/zero-theme/images"
	"github.com/ak0r/zero-theme/markdown/docctx"
)

const (
	GridClass    = "image-grid"
	MaxGridWidth = 6
)

func collectImages(doc ast.Node) []*ast.Image {
	var imgs []*ast.Image

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if img, ok := n.(*ast.Image); ok && entering {
			imgs = append(imgs, img)
		}
		return ast.WalkContinue, nil
	})

	return imgs
}

type resolveTransformer struct{}

// NewPathResolver returns the AST transformer rewriting image destinations
// with images.ResolveImagePath, using the classification of the document
// in the parser context.
func NewPathResolver() parser.ASTTransformer {
	return &resolveTransformer{}
}

func (t *resolveTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	info, _ := docctx.Get(pc)

	for _, img := range collectImages(doc) {
		resolved := images.ResolveImagePath(string(img.Destination), info.Classification)
		img.Destination = []byte(resolved)
	}
}

type captionTransformer struct{}

// NewCaptioner returns the AST transformer moving image titles into the
// data-caption and title attributes.
func NewCaptioner() parser.ASTTransformer {
	return &captionTransformer{}
}

func (t *captionTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	for _, img := range collectImages(doc) {
		Caption(img)
	}
}

// Caption copies the title of img into its attributes. The title field is
// cleared afterwards, the renderer emits it from the attributes.
func Caption(img *ast.Image) {
	if len(img.Title) == 0 {
		return
	}

	title := append([]byte(nil), img.Title...)
	img.SetAttributeString("data-caption", title)
	img.SetAttributeString("title", title)
	img.Title = nil
}

type gridTransformer struct{}

// NewGridder returns the AST transformer marking paragraphs that consist of
// two or more bare images as image grids.
func NewGridder() parser.ASTTransformer {
	return &gridTransformer{}
}

func (t *gridTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	var paras []*ast.Paragraph

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if p, ok := n.(*ast.Paragraph); ok && entering {
			paras = append(paras, p)
		}
		return ast.WalkContinue, nil
	})

	for _, p := range paras {
		Grid(p, reader.Source())
	}
}

// Grid tags p with the grid classes when its only content are two or more
// images. Link-wrapped images count as other content and whitespace is
// ignored. Applying Grid repeatedly yields the same classes.
func Grid(p *ast.Paragraph, source []byte) bool {
	count := 0

	for c := p.FirstChild(); c != nil; c = c.NextSibling() {
		switch n := c.(type) {
		case *ast.Image:
			count++
		case *ast.Text:
			if strings.TrimSpace(string(n.Segment.Value(source))) != "" {
				return false
			}
		case *ast.String:
			if strings.TrimSpace(string(n.Value)) != "" {
				return false
			}
		default:
			return false
		}
	}

	if count < 2 {
		return false
	}

	var classes []string
	if v, ok := p.AttributeString("class"); ok {
		for _, cls := range strings.Fields(attributeString(v)) {
			if !strings.HasPrefix(cls, GridClass) {
				classes = append(classes, cls)
			}
		}
	}

	if count > MaxGridWidth {
		count = MaxGridWidth
	}
	classes = append(classes, GridClass, GridClass+"-"+strconv.Itoa(count))

	p.SetAttributeString("class", []byte(strings.Join(classes, " ")))

	return true
}

func attributeString(v interface{}) string {
	switch s := v.(type) {
	case []byte:
		return string(s)
	case string:
		return s
	}

	return ""
}
