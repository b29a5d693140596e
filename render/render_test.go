package render

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ak0r/zero-theme/content"
	"github.com/ak0r/zero-theme/data/document"
	"github.com/ak0r/zero-theme/images"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	return doc
}

func newDocument(t *testing.T, vaultPath string, html string) *document.Document {
	t.Helper()

	return &document.Document{
		VaultPath:      vaultPath,
		Classification: content.Classify(vaultPath),
		HTML:           parse(t, html),
	}
}

func TestFinalizeImages(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<img src="a.jpg"><img src="b.jpg" alt="B" loading="eager">`)
	FinalizeImages(doc)

	imgs := doc.Find("img")
	assert.Equal(t, "lazy", imgs.Eq(0).AttrOr("loading", ""))
	assert.Equal(t, "async", imgs.Eq(0).AttrOr("decoding", ""))
	alt, ok := imgs.Eq(0).Attr("alt")
	assert.True(t, ok)
	assert.Equal(t, "", alt)

	assert.Equal(t, "eager", imgs.Eq(1).AttrOr("loading", ""))
	assert.Equal(t, "B", imgs.Eq(1).AttrOr("alt", ""))
}

func TestNormalizeAnchors(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<a href="/posts/Getting%20Started" data-wikilink="true">x</a><a href="/bad%zz">y</a><a href="/plain">z</a>`)

	NormalizeAnchors(doc)
	first, _ := doc.Html()
	NormalizeAnchors(doc)
	second, _ := doc.Html()

	assert.Equal(t, first, second)

	links := doc.Find("a")
	assert.Equal(t, "/posts/Getting Started", links.Eq(0).AttrOr("href", ""))
	assert.Equal(t, "wikilink", links.Eq(0).AttrOr("class", ""))
	assert.Equal(t, "/bad%zz", links.Eq(1).AttrOr("href", ""))
	assert.False(t, links.Eq(2).HasClass(WikilinkClass))
}

func TestAutolinkHeadings(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<h1 id="title">Title</h1><h2 id="intro">Intro</h2><h3>No <em>id</em></h3><h3>No id</h3>`)

	headings := AutolinkHeadings(doc)
	AutolinkHeadings(doc)

	assert.Equal(t, []document.Heading{
		{Level: 2, ID: "intro", Text: "Intro"},
		{Level: 3, ID: "no-id", Text: "No id"},
		{Level: 3, ID: "no-id-1", Text: "No id"},
	}, headings)

	_, ok := doc.Find("h1").Attr("id")
	assert.False(t, ok)

	link := doc.Find("h2 > a.anchor-link")
	require.Equal(t, 1, link.Length())
	assert.Equal(t, "#intro", link.AttrOr("href", ""))
	assert.Equal(t, "Link to this section", link.AttrOr("aria-label", ""))
	assert.Equal(t, "Intro", link.Text())

	assert.Equal(t, 1, doc.Find("h3").First().Find("a.anchor-link").Length())
	assert.Equal(t, 1, doc.Find("h3").First().Find("a.anchor-link > em").Length())
}

func TestAutolinkHeadingsPlainText(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<h2>Hello World</h2><h4></h4>`)

	require.NotPanics(t, func() { AutolinkHeadings(doc) })

	link := doc.Find("h2#hello-world > a.anchor-link")
	require.Equal(t, 1, link.Length())
	assert.Equal(t, "#hello-world", link.AttrOr("href", ""))
	assert.Equal(t, "Hello World", link.Text())
	assert.Zero(t, doc.Find("h4 a").Length())
}

func TestAutolinkHeadingsWithLinks(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<h2>Head <a class="wikilink" href="/posts/Page">Page</a></h2>`)

	AutolinkHeadings(doc)
	AutolinkHeadings(doc)

	h2 := doc.Find("h2")
	assert.Equal(t, "head-page", h2.AttrOr("id", ""))
	assert.Zero(t, h2.Find("a a").Length())

	trailing := h2.Children().Filter("a.anchor-trailing")
	require.Equal(t, 1, trailing.Length())
	assert.True(t, trailing.HasClass(AnchorLinkClass))
	assert.Equal(t, "#head-page", trailing.AttrOr("href", ""))
	assert.Equal(t, "Page", h2.Find("a.wikilink").Text())
}

func TestImplicitFigure(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<p> <img src="a.jpg" data-caption="A &amp; B" title="A &amp; B"> </p><p><img src="b.jpg"></p><p><img src="c.jpg" data-caption="c"> text</p>`)
	ImplicitFigure(doc)

	figure := doc.Find("figure")
	require.Equal(t, 1, figure.Length())
	assert.Equal(t, "a.jpg", figure.Find("img").AttrOr("src", ""))
	assert.Equal(t, "A & B", figure.Find("figcaption").Text())
	assert.Equal(t, 0, figure.ParentsFiltered("p").Length())
	assert.Equal(t, 2, doc.Find("p").Length())
}

func TestEmplaceMedia(t *testing.T) {
	t.Parallel()

	doc := newDocument(t, "posts/trip/index.md", `<p><img src="attachments/clip.mp4" data-caption="Waves"></p><p><img src="song.mp3"></p><p><img src="https://example.com/doc.pdf"></p><p><img src="photo.jpg"></p>`)
	EmplaceMedia(doc)

	assert.Equal(t, "/posts/trip/clip.mp4", doc.HTML.Find("video source").AttrOr("src", ""))
	assert.Equal(t, "video/mp4", doc.HTML.Find("video source").AttrOr("type", ""))
	assert.Equal(t, "Waves", doc.HTML.Find("figure.media figcaption").Text())
	assert.Equal(t, "/posts/trip/song.mp3", doc.HTML.Find("audio source").AttrOr("src", ""))
	assert.Equal(t, "https://example.com/doc.pdf", doc.HTML.Find("iframe.pdf").AttrOr("src", ""))
	assert.Equal(t, 1, doc.HTML.Find("img").Length())
}

func TestMediaURL(t *testing.T) {
	t.Parallel()

	single := &document.Document{VaultPath: "posts/hello.md", Classification: content.Classify("posts/hello.md")}
	assert.Equal(t, "/posts/attachments/clip.mp4", MediaURL(single, "clip.mp4"))
	assert.Equal(t, "/posts/attachments/clip.mp4", MediaURL(single, "attachments/clip.mp4"))

	page := &document.Document{VaultPath: "about.md"}
	assert.Equal(t, "/attachments/talk.pdf", MediaURL(page, "./talk.pdf"))
	assert.Equal(t, "/files/talk.pdf", MediaURL(page, "/files/talk.pdf"))
}

func TestRecodePaths(t *testing.T) {
	t.Parallel()

	index := images.NewIndex("/vault")
	cover := index.Add("posts/trip/attachments/cover.jpg", "/vault/posts/trip/attachments/cover.jpg")
	index.Add("posts/trip/images/map.png", "/vault/posts/trip/images/map.png")

	doc := newDocument(t, "posts/trip/index.md", `
<img src="./cover.jpg">
<img src="./map.png">
<img src="./cover.jpg">
<img src="./missing.jpg">
<img src="https://example.com/x.jpg">
<a href="./cover.jpg">full size</a>
<a href="./notes.txt">notes</a>
<a href="#top">top</a>`)

	used := RecodePaths(doc, index)

	require.Len(t, used, 2)
	assert.Same(t, cover, used[0])

	imgs := doc.HTML.Find("img")
	assert.Equal(t, "/posts/trip/attachments/cover.jpg", imgs.Eq(0).AttrOr("src", ""))
	assert.Equal(t, "/posts/trip/images/map.png", imgs.Eq(1).AttrOr("src", ""))
	assert.Equal(t, "/posts/trip/missing.jpg", imgs.Eq(3).AttrOr("src", ""))
	assert.Equal(t, "https://example.com/x.jpg", imgs.Eq(4).AttrOr("src", ""))

	links := doc.HTML.Find("a")
	assert.Equal(t, "/posts/trip/attachments/cover.jpg", links.Eq(0).AttrOr("href", ""))
	assert.Equal(t, "./notes.txt", links.Eq(1).AttrOr("href", ""))
	assert.Equal(t, "#top", links.Eq(2).AttrOr("href", ""))
}

func TestRender(t *testing.T) {
	t.Parallel()

	index := images.NewIndex("/vault")
	index.Add("posts/trip/attachments/cover.jpg", "/vault/posts/trip/attachments/cover.jpg")

	doc := newDocument(t, "posts/trip/index.md", `<h1 id="trip">Trip</h1>
<h2 id="day-one">Day one</h2>
<p><img src="./cover.jpg" alt="Cover" data-caption="The coast"></p>
<p><a href="/posts/Next%20Day" data-wikilink="true">Next Day</a></p>`)

	used := Render(doc, index)

	require.Len(t, used, 1)
	require.Len(t, doc.Headings, 1)

	img := doc.HTML.Find("figure > img")
	assert.Equal(t, "/posts/trip/attachments/cover.jpg", img.AttrOr("src", ""))
	assert.Equal(t, "lazy", img.AttrOr("loading", ""))
	assert.Equal(t, "The coast", doc.HTML.Find("figcaption").Text())

	wikilink := doc.HTML.Find("a.wikilink")
	assert.Equal(t, "/posts/Next Day", wikilink.AttrOr("href", ""))
}

func TestTagSet(t *testing.T) {
	t.Parallel()

	ts := NewTagSet()
	assert.Equal(t, ts.HexColor("Go"), ts.HexColor("#go"))
	assert.Equal(t, ts.HexColor("go"), NewTagSet().HexColor("go"))
	assert.Regexp(t, `^#[0-9a-f]{6}$`, ts.HexColor("travel/europe"))
}

func TestLocale(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "de_DE", string(Locale("de-DE")))
	assert.Equal(t, "en_US", string(Locale("")))
	assert.Equal(t, "en_US", string(Locale("xx")))
	assert.True(t, strings.HasPrefix(string(Locale("fr")), "fr_"))
}

func TestGroupByMonth(t *testing.T) {
	t.Parallel()

	day := func(m time.Month, d int) *document.Document {
		return &document.Document{Date: time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)}
	}

	docs := []*document.Document{day(3, 20), day(3, 2), day(1, 5), day(1, 1)}
	groups := GroupByMonth(docs)

	require.Len(t, groups, 2)
	assert.Equal(t, time.March, groups[0].Month.Month())
	assert.Equal(t, docs[:2], groups[0].Documents)
	assert.Equal(t, docs[2:], groups[1].Documents)
	assert.Nil(t, GroupByMonth(nil))
}
