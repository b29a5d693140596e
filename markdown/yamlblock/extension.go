// Package yamlblock adds blocks of the form
//
//	:: name ---
//	key: value
//	---
//
// to goldmark. The YAML body configures the addin registered for name; a
// block without the trailing "---" uses the addin's defaults.
package yamlblock

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Addin renders the blocks of one name.
type Addin interface {
	AddinKey() string
	// Make returns the object the YAML body is decoded into.
	Make(pc parser.Context) interface{}
	Render(w util.BufWriter, source []byte, node interface{}, entering bool) (ast.WalkStatus, error)
}

type Extension struct {
	addins map[string]Addin
}

func New(addins ...Addin) *Extension {
	e := &Extension{
		addins: make(map[string]Addin, len(addins)),
	}

	for _, addin := range addins {
		e.addins[strings.ToLower(addin.AddinKey())] = addin
	}

	return e
}

func (e *Extension) lookup(key string) (Addin, bool) {
	addin, ok := e.addins[strings.ToLower(key)]
	return addin, ok
}

func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(&blockParser{parent: e}, 999),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&blockRenderer{}, 500),
		),
	)
}
