package yamlblock

import (
	"html"
	"log"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

type blockRenderer struct{}

func (r *blockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindBlock, r.renderBlock)
}

// renderBlock delegates to the addin. Blocks with an invalid body render
// as an HTML comment instead of failing the document.
func (r *blockRenderer) renderBlock(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	block := n.(*Block)
	if block.Err != nil {
		if entering {
			log.Printf("invalid '%s' block: %v", block.Addin.AddinKey(), block.Err)
			_, _ = w.WriteString("<!-- invalid ")
			_, _ = w.WriteString(html.EscapeString(block.Addin.AddinKey()))
			_, _ = w.WriteString(" block -->\n")
		}
		return ast.WalkSkipChildren, nil
	}

	return block.Addin.Render(w, source, block.Object, entering)
}
