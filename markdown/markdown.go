// Package markdown assembles the goldmark instance converting vault
// documents to HTML.
//
// The AST transformers run in a fixed order: Obsidian inline syntax, inline
// tags, image path resolution, captions, image grids, social embeds and
// callouts. Later passes read attributes set by earlier ones.
package markdown

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/ak0r/zero-theme/markdown/docctx"
	"github.com/ak0r/zero-theme/markdown/embeds"
	"github.com/ak0r/zero-theme/markdown/gallery"
	"github.com/ak0r/zero-theme/markdown/imageproc"
	"github.com/ak0r/zero-theme/markdown/nodes"
	"github.com/ak0r/zero-theme/markdown/obsidian"
	"github.com/ak0r/zero-theme/markdown/yamlblock"
)

// Transformer priorities; lower values run first.
const (
	PriorityObsidian = 100 + iota*10
	PriorityTags
	PriorityImagePaths
	PriorityCaptions
	PriorityGrids
	PriorityEmbeds
	PriorityCallouts
)

// DefaultHighlightStyle is the chroma style of fenced code blocks.
const DefaultHighlightStyle = "github-dark"

type Options struct {
	HighlightStyle string
}

// New returns the goldmark instance for vault documents. It is safe for
// concurrent use, provided every conversion gets its own parser context.
func New(opts Options) goldmark.Markdown {
	style := opts.HighlightStyle
	if style == "" {
		style = DefaultHighlightStyle
	}

	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			meta.Meta,
			nodes.Extension,
			yamlblock.New(
				gallery.NewAddin(),
			),
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WrapLongLines(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(obsidian.NewRewriter(), PriorityObsidian),
				util.Prioritized(obsidian.NewTagLinker(), PriorityTags),
				util.Prioritized(imageproc.NewPathResolver(), PriorityImagePaths),
				util.Prioritized(imageproc.NewCaptioner(), PriorityCaptions),
				util.Prioritized(imageproc.NewGridder(), PriorityGrids),
				util.Prioritized(embeds.NewTransformer(), PriorityEmbeds),
				util.Prioritized(obsidian.NewCalloutTransformer(), PriorityCallouts),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(),
		),
	)
}

// Result is the outcome of converting one document.
type Result struct {
	HTML        []byte
	FrontMatter map[string]interface{}
	Tags        []string
	Galleries   []string
}

// Convert renders source, the full text of the document described by doc,
// frontmatter included.
func Convert(md goldmark.Markdown, source []byte, doc *docctx.Document) (*Result, error) {
	pc := docctx.New(doc)

	var buf bytes.Buffer
	if err := md.Convert(source, &buf, parser.WithContext(pc)); err != nil {
		return nil, fmt.Errorf("convert '%s': %w", doc.VaultPath, err)
	}

	frontMatter, err := meta.TryGet(pc)
	if err != nil {
		return nil, fmt.Errorf("front matter of '%s': %w", doc.VaultPath, err)
	}

	result := &Result{
		HTML:        buf.Bytes(),
		FrontMatter: frontMatter,
		Tags:        docctx.Tags(pc),
	}

	for i := 0; i < gallery.Count(pc); i++ {
		result.Galleries = append(result.Galleries, gallery.ElementID(i))
	}

	return result, nil
}
