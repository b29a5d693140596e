package obsidian

import (
	"regexp"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/ak0r/zero-theme/markdown/docctx"
	"github.com/ak0r/zero-theme/markdown/textrun"
	"github.com/ak0r/zero-theme/util/slug"
)

// TagBase prefixes the URLs of tag pages.
const TagBase = "/tags/"

var inlineTagPattern = regexp.MustCompile(`(?:^|\s)#([A-Za-z][A-Za-z0-9_/-]*)`)

type tagTransformer struct{}

// NewTagLinker returns the AST transformer turning #tags in text into links
// to their tag pages. Found tags are recorded with docctx.AddTag.
func NewTagLinker() parser.ASTTransformer {
	return &tagTransformer{}
}

func (t *tagTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	for _, run := range textrun.Collect(doc, reader.Source()) {
		replacement, tags := linkTags(run.Value)
		if len(tags) == 0 {
			continue
		}

		run.Replace(replacement)
		for _, tag := range tags {
			docctx.AddTag(pc, tag)
		}
	}
}

// linkTags splits value at inline tags.
func linkTags(value string) ([]ast.Node, []string) {
	var (
		out  []ast.Node
		tags []string
		last int
	)

	for _, loc := range inlineTagPattern.FindAllStringSubmatchIndex(value, -1) {
		hash := loc[2] - 1
		if hash > last {
			out = append(out, textrun.Text(value[last:hash]))
		}

		tag := value[loc[2]:loc[3]]
		out = append(out, newTagLink(tag))
		tags = append(tags, tag)

		last = loc[1]
	}

	if len(tags) > 0 && last < len(value) {
		out = append(out, textrun.Text(value[last:]))
	}

	return out, tags
}

func newTagLink(tag string) ast.Node {
	link := ast.NewLink()
	link.Destination = []byte(TagBase + slug.Tag(tag))
	link.SetAttributeString("class", []byte("tag"))
	link.AppendChild(link, textrun.Text("#"+tag))

	return link
}
