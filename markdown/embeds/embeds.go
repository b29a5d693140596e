// Package embeds replaces paragraphs holding a single YouTube or Twitter/X
// link with the embed markup of the service.
package embeds

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/ak0r/zero-theme/markdown/nodes"
)

type Service int

const (
	None Service = iota
	YouTube
	Twitter
)

var youTubeIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[?&]v=([^&]+)`),
	regexp.MustCompile(`youtu\.be/([^?]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^?]+)`),
}

const youTubeTemplate = `<div class="youtube-embed" style="position: relative; padding-bottom: 56.25%%; height: 0; overflow: hidden; max-width: 100%%; margin: 1.5rem 0;">
  <iframe
    style="position: absolute; top: 0; left: 0; width: 100%%; height: 100%%;"
    src="https://www.youtube.com/embed/%s"
    title="YouTube video player"
    frameborder="0"
    allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share"
    referrerpolicy="strict-origin-when-cross-origin"
    allowfullscreen
    loading="lazy">
  </iframe>
</div>`

const twitterTemplate = `<div class="twitter-embed" style="margin: 1.5rem 0;">
  <blockquote class="twitter-tweet" data-dnt="true" data-theme="dark">
    <a href="%s"></a>
  </blockquote>
</div>`

// Detect classifies url.
func Detect(url string) Service {
	switch {
	case strings.Contains(url, "youtube.com/watch") ||
		strings.Contains(url, "youtu.be/") ||
		strings.Contains(url, "youtube.com/embed/"):
		return YouTube
	case (strings.Contains(url, "twitter.com") || strings.Contains(url, "x.com")) &&
		strings.Contains(url, "/status/"):
		return Twitter
	}

	return None
}

// YouTubeID extracts the video id of a YouTube URL.
func YouTubeID(url string) (string, bool) {
	for _, p := range youTubeIDPatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}

	return "", false
}

// Markup returns the embed HTML for url. It fails for URLs of no known
// service and for YouTube URLs without a recognizable video id.
func Markup(url string) (string, bool) {
	switch Detect(url) {
	case YouTube:
		id, ok := YouTubeID(url)
		if !ok {
			return "", false
		}
		return fmt.Sprintf(youTubeTemplate, html.EscapeString(id)), true
	case Twitter:
		clean, _, _ := strings.Cut(url, "?")
		return fmt.Sprintf(twitterTemplate, html.EscapeString(clean)), true
	}

	return "", false
}

type transformer struct{}

// NewTransformer returns the AST transformer replacing single-link
// paragraphs with embed fragments.
func NewTransformer() parser.ASTTransformer {
	return &transformer{}
}

func (t *transformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	var paras []*ast.Paragraph

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if p, ok := n.(*ast.Paragraph); ok && entering {
			paras = append(paras, p)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for _, p := range paras {
		if p.ChildCount() != 1 {
			continue
		}

		url, ok := linkURL(p.FirstChild(), reader.Source())
		if !ok {
			continue
		}

		markup, ok := Markup(url)
		if !ok {
			continue
		}

		p.Parent().ReplaceChild(p.Parent(), p, nodes.NewFragment(markup))
	}
}

func linkURL(n ast.Node, source []byte) (string, bool) {
	switch l := n.(type) {
	case *ast.Link:
		return string(l.Destination), true
	case *ast.AutoLink:
		return string(l.URL(source)), true
	}

	return "", false
}
