// Package nodes defines the AST node kinds the vault syntax adds to
// goldmark, together with their HTML renderer.
package nodes

import (
	"github.com/yuin/goldmark/ast"
)

var (
	KindHighlight = ast.NewNodeKind("Highlight")
	KindFragment  = ast.NewNodeKind("Fragment")
)

// Highlight is an inline span rendered as <mark>.
type Highlight struct {
	ast.BaseInline
}

func NewHighlight(children ...ast.Node) *Highlight {
	h := &Highlight{}
	for _, c := range children {
		h.AppendChild(h, c)
	}

	return h
}

func (n *Highlight) Kind() ast.NodeKind {
	return KindHighlight
}

func (n *Highlight) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Fragment is a block of prepared HTML, written out verbatim.
type Fragment struct {
	ast.BaseBlock
	HTML string
}

func NewFragment(html string) *Fragment {
	return &Fragment{HTML: html}
}

func (n *Fragment) Kind() ast.NodeKind {
	return KindFragment
}

func (n *Fragment) IsRaw() bool {
	return true
}

func (n *Fragment) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"HTML": n.HTML}, nil)
}
