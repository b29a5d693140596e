package obsidian

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/ak0r/zero-theme/markdown/textrun"
)

var calloutPattern = regexp.MustCompile(`^\s*\[!([A-Za-z0-9_-]+)\]([+-]?)\s*(.*)$`)

type calloutTransformer struct{}

// NewCalloutTransformer returns the AST transformer turning blockquotes
// opened by "[!type] Title" into callouts.
func NewCalloutTransformer() parser.ASTTransformer {
	return &calloutTransformer{}
}

func (t *calloutTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	var quotes []*ast.Blockquote

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if q, ok := n.(*ast.Blockquote); ok && entering {
			quotes = append(quotes, q)
		}
		return ast.WalkContinue, nil
	})

	for _, q := range quotes {
		makeCallout(q, reader.Source())
	}
}

func makeCallout(q *ast.Blockquote, source []byte) {
	para, ok := q.FirstChild().(*ast.Paragraph)
	if !ok {
		return
	}

	runs := textrun.Collect(para, source)
	if len(runs) == 0 || runs[0].Parent != ast.Node(para) || runs[0].Nodes[0] != para.FirstChild() {
		return
	}

	header := runs[0]
	m := calloutPattern.FindStringSubmatch(header.Value)
	if m == nil {
		return
	}

	kind := strings.ToLower(m[1])
	title := strings.TrimSpace(m[3])
	if title == "" {
		title = strings.ToUpper(kind[:1]) + kind[1:]
	}

	q.SetAttributeString("class", []byte("callout callout-"+kind))
	q.SetAttributeString("data-callout", []byte(kind))
	switch m[2] {
	case "-":
		q.SetAttributeString("data-callout-fold", []byte("closed"))
	case "+":
		q.SetAttributeString("data-callout-fold", []byte("open"))
	}

	for _, n := range header.Nodes {
		para.RemoveChild(para, n)
	}
	if !para.HasChildren() {
		q.RemoveChild(q, para)
	}

	heading := ast.NewParagraph()
	heading.SetAttributeString("class", []byte("callout-title"))
	heading.AppendChild(heading, textrun.Text(title))
	if first := q.FirstChild(); first != nil {
		q.InsertBefore(q, first, heading)
	} else {
		q.AppendChild(q, heading)
	}
}
