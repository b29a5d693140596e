package obsidian

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/ak0r/zero-theme/markdown/textrun"
)

type rewriteTransformer struct{}

// NewRewriter returns the AST transformer applying Rewrite to every text
// run of a document.
func NewRewriter() parser.ASTTransformer {
	return &rewriteTransformer{}
}

func (t *rewriteTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	for _, run := range textrun.Collect(doc, reader.Source()) {
		if replacement, ok := Rewrite(run.Value); ok {
			run.Replace(replacement)
		}
	}
}
