package obsidian

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark/ast"

	"github.com/ak0r/zero-theme/markdown/nodes"
)

// plain returns the concatenated text of the String nodes below n.
func plain(n ast.Node) string {
	if s, ok := n.(*ast.String); ok {
		return string(s.Value)
	}

	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		sb.WriteString(plain(c))
	}

	return sb.String()
}

func links(out []ast.Node) []*ast.Link {
	var found []*ast.Link
	for _, n := range out {
		if l, ok := n.(*ast.Link); ok {
			found = append(found, l)
		}
	}
	return found
}

func TestRewriteWikilink(t *testing.T) {
	t.Parallel()

	out, ok := Rewrite("[[Page]]")
	require.True(t, ok)
	require.Len(t, out, 1)

	link, isLink := out[0].(*ast.Link)
	require.True(t, isLink)
	assert.Equal(t, "/posts/Page", string(link.Destination))
	assert.Equal(t, "Page", plain(link))

	class, _ := link.AttributeString("class")
	assert.Equal(t, []byte("wikilink"), class)
	marker, _ := link.AttributeString("data-wikilink")
	assert.Equal(t, []byte("true"), marker)
}

func TestRewriteWikilinkAlias(t *testing.T) {
	t.Parallel()

	out, ok := Rewrite("[[Page|Alias]]")
	require.True(t, ok)
	require.Len(t, out, 1)

	link := out[0].(*ast.Link)
	assert.Equal(t, "/posts/Page", string(link.Destination))
	assert.Equal(t, "Alias", plain(link))
}

func TestRewriteEmbed(t *testing.T) {
	t.Parallel()

	out, ok := Rewrite("![[cat.png|A cat]]")
	require.True(t, ok)
	require.Len(t, out, 1)

	img, isImage := out[0].(*ast.Image)
	require.True(t, isImage)
	assert.Equal(t, "cat.png", string(img.Destination))
	assert.Equal(t, "A cat", plain(img))

	out, _ = Rewrite("![[cat.png]]")
	assert.Equal(t, "cat.png", plain(out[0]))
}

func TestRewriteEmbedWinsOverWikilink(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"![[a.png]]",
		"before ![[a.png|x]] after",
		"[[x ![[y.png]]",
		"![[a.png]][[b]]",
	}

	for _, in := range inputs {
		out, ok := Rewrite(in)
		require.True(t, ok, in)

		for _, n := range out {
			if l, isLink := n.(*ast.Link); isLink {
				assert.NotEqual(t, "/posts/a.png", string(l.Destination), in)
				assert.NotContains(t, string(l.Destination), "y.png", in)
			}
		}
	}

	out, _ := Rewrite("![[a.png]][[b]]")
	require.Len(t, out, 2)
	assert.IsType(t, &ast.Image{}, out[0])
	assert.Equal(t, "/posts/b", string(out[1].(*ast.Link).Destination))
}

func TestRewriteLinkCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		labels []string
	}{
		{"see [[A]] and [[B|b]] or [[C#Intro|c]]", []string{"A", "b", "c"}},
		{"[[A]][[B]]", []string{"A", "B"}},
		{"no links here", nil},
	}

	for _, tt := range tests {
		out, _ := Rewrite(tt.in)

		var labels []string
		for _, l := range links(out) {
			labels = append(labels, plain(l))
		}
		assert.Equal(t, tt.labels, labels, tt.in)
	}
}

func TestWikilinkURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#section", WikilinkURL("#section"))
	assert.Equal(t, "/posts/Page#part", WikilinkURL("Page#part"))
	assert.Equal(t, "/posts/Page#a", WikilinkURL("Page#a#b"))
	assert.Equal(t, "/posts/My Page", WikilinkURL("My Page"))
}

func TestRewriteComments(t *testing.T) {
	t.Parallel()

	out, ok := Rewrite("keep %%hidden%% visible")
	require.True(t, ok)
	require.Len(t, out, 1)
	assert.Equal(t, "keep  visible", plain(out[0]))

	out, ok = Rewrite("%%all gone%%")
	require.True(t, ok)
	assert.Empty(t, out)

	out, ok = Rewrite("a %%x%% [[B]] %%y%% c")
	require.True(t, ok)
	require.Len(t, out, 3)
	assert.Equal(t, "a  ", plain(out[0]))
	assert.Equal(t, "  c", plain(out[2]))
}

func TestRewriteHighlight(t *testing.T) {
	t.Parallel()

	out, ok := Rewrite("==bold idea==")
	require.True(t, ok)
	require.Len(t, out, 1)

	h, isHighlight := out[0].(*nodes.Highlight)
	require.True(t, isHighlight)
	assert.Equal(t, "bold idea", plain(h))

	out, _ = Rewrite("an ==important== point")
	require.Len(t, out, 3)
	assert.Equal(t, "an ", plain(out[0]))
	assert.IsType(t, &nodes.Highlight{}, out[1])
	assert.Equal(t, " point", plain(out[2]))
}

func TestRewriteMalformed(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"[[unterminated", "![[also", "[[]]", "[single]", "= not =", "%% open"} {
		_, ok := Rewrite(in)
		assert.False(t, ok, in)
	}
}
