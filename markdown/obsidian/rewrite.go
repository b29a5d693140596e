// Package obsidian rewrites Obsidian's inline syntax into regular goldmark
// nodes: image embeds, wikilinks, comments, highlights, inline tags and
// callouts.
package obsidian

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/ak0r/zero-theme/markdown/nodes"
	"github.com/ak0r/zero-theme/markdown/textrun"
)

// WikilinkBase prefixes the targets of wikilinks.
const WikilinkBase = "/posts/"

var (
	embedPattern     = regexp.MustCompile(`!\[\[([^\]|]+)(?:\|([^\]]+))?\]\]`)
	wikilinkPattern  = regexp.MustCompile(`\[\[([^\]|]+)(?:\|([^\]]+))?\]\]`)
	commentPattern   = regexp.MustCompile(`%%.*?%%`)
	highlightPattern = regexp.MustCompile(`==(.*?)==`)
)

type matchKind int

const (
	embedMatch matchKind = iota
	wikilinkMatch
)

// match is a recognized construct spanning value[start:end].
type match struct {
	kind       matchKind
	start, end int
	node       ast.Node
}

func (m match) intersects(start, end int) bool {
	return m.start < end && start < m.end
}

// findMatches returns the embeds and wikilinks of value, ordered by start.
// Wikilinks intersecting an embed are dropped.
func findMatches(value string) []match {
	var matches []match

	for _, loc := range embedPattern.FindAllStringSubmatchIndex(value, -1) {
		target, label := groups(value, loc)
		matches = append(matches, match{
			kind:  embedMatch,
			start: loc[0],
			end:   loc[1],
			node:  newEmbed(target, label),
		})
	}

	embeds := matches

	for _, loc := range wikilinkPattern.FindAllStringSubmatchIndex(value, -1) {
		overlaps := false
		for _, e := range embeds {
			if e.intersects(loc[0], loc[1]) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		target, label := groups(value, loc)
		matches = append(matches, match{
			kind:  wikilinkMatch,
			start: loc[0],
			end:   loc[1],
			node:  newWikilink(target, label),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].start < matches[j].start
	})

	return matches
}

// groups returns the trimmed target and label of a match; the label
// defaults to the target.
func groups(value string, loc []int) (string, string) {
	target := strings.TrimSpace(value[loc[2]:loc[3]])
	label := target
	if loc[4] >= 0 {
		if alias := strings.TrimSpace(value[loc[4]:loc[5]]); alias != "" {
			label = alias
		}
	}

	return target, label
}

func newEmbed(target string, alt string) ast.Node {
	img := ast.NewImage(ast.NewLink())
	img.Destination = []byte(target)
	img.AppendChild(img, textrun.Text(alt))

	return img
}

func newWikilink(target string, label string) ast.Node {
	link := ast.NewLink()
	link.Destination = []byte(WikilinkURL(target))
	link.SetAttributeString("class", []byte("wikilink"))
	link.SetAttributeString("data-wikilink", []byte("true"))
	link.AppendChild(link, textrun.Text(label))

	return link
}

// WikilinkURL maps a wikilink target to its URL. Targets starting with '#'
// stay same-page anchors.
func WikilinkURL(target string) string {
	if strings.HasPrefix(target, "#") {
		return target
	}

	if page, anchor, ok := strings.Cut(target, "#"); ok {
		anchor, _, _ = strings.Cut(anchor, "#")
		return WikilinkBase + page + "#" + anchor
	}

	return WikilinkBase + target
}

// Rewrite converts the Obsidian constructs of value into nodes. It reports
// false when value contains none of them.
func Rewrite(value string) ([]ast.Node, bool) {
	matches := findMatches(value)

	if len(matches) == 0 {
		if !commentPattern.MatchString(value) && !highlightPattern.MatchString(value) {
			return nil, false
		}

		return appendGap(nil, value), true
	}

	var out []ast.Node
	last := 0

	for _, m := range matches {
		if m.start > last {
			out = appendGap(out, value[last:m.start])
		}

		out = append(out, m.node)
		last = m.end
	}

	if last < len(value) {
		out = appendGap(out, value[last:])
	}

	return out, true
}

// appendGap strips comments from the plain text gap and splits it at
// highlights.
func appendGap(out []ast.Node, gap string) []ast.Node {
	gap = commentPattern.ReplaceAllString(gap, "")

	last := 0
	for _, loc := range highlightPattern.FindAllStringSubmatchIndex(gap, -1) {
		if loc[0] > last {
			out = append(out, textrun.Text(gap[last:loc[0]]))
		}

		h := nodes.NewHighlight()
		if inner := gap[loc[2]:loc[3]]; inner != "" {
			h.AppendChild(h, textrun.Text(inner))
		}
		out = append(out, h)

		last = loc[1]
	}

	if last < len(gap) {
		out = append(out, textrun.Text(gap[last:]))
	}

	return out
}
