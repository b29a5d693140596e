package document

import (
	"path"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/ak0r/zero-theme/content"
	"github.com/ak0r/zero-theme/images"
)

// Heading is a section heading of the rendered document.
type Heading struct {
	Level int
	ID    string
	Text  string
}

type Document struct {
	// File system path
	Path string
	// Slash separated path relative to the content root
	VaultPath      string
	Classification content.Classification
	Slug           string

	HTML *goquery.Document // HTML content
	GUID uuid.UUID

	Title        string
	Description  string
	Author       string
	Date         time.Time
	LastModified time.Time
	Tags         []Tag
	Draft        bool
	Featured     bool
	NoIndex      bool
	HideTOC      bool

	Image          *images.ResolvedImage
	ImageAlt       string
	HideCoverImage bool

	Category    string
	Series      string
	SeriesOrder int
	Order       int
	Version     string

	ProjectURL    string
	RepositoryURL string
	Status        string

	Headings       []Heading
	Galleries      []string
	Assets         []*images.Asset // indexed images the body references
	WordCount      int
	ReadingMinutes int
	HasFrontMatter bool
}

func (doc *Document) Collection() content.Collection {
	return doc.Classification.Collection
}

// DocumentDirectory is the vault directory containing the document.
func (doc *Document) DocumentDirectory() string {
	return path.Dir(doc.VaultPath)
}

// URL is the site-absolute URL of the rendered document. Pages are
// published at the site root.
func (doc *Document) URL() string {
	switch doc.Collection() {
	case content.None:
		return "/" + doc.Slug + "/"
	case content.Pages:
		return "/" + doc.Slug + "/"
	}

	return "/" + string(doc.Collection()) + "/" + doc.Slug + "/"
}

// OutputPath is the slash separated path of the rendered file below the
// build directory.
func (doc *Document) OutputPath() string {
	return path.Join(doc.URL(), "index.html")[1:]
}

func (doc *Document) HasImage() bool {
	return doc.Image != nil && !doc.HideCoverImage
}

func (doc *Document) HasDescription() bool {
	return len(doc.Description) > 0
}

func (doc *Document) HasGallery() bool {
	return len(doc.Galleries) > 0
}

func (doc *Document) InSeries() bool {
	return len(doc.Series) > 0
}

func (doc *Document) GalleryElementID(no int) string {
	if no < len(doc.Galleries) {
		return doc.Galleries[no]
	}

	return ""
}

// HasTag reports whether doc carries a tag with the normalized name of
// tag.
func (doc *Document) HasTag(tag string) bool {
	name := NormalizeTagName(tag)
	for _, t := range doc.Tags {
		if t.Normalize() == name {
			return true
		}
	}

	return false
}

// AddTag appends tag unless doc already carries it.
func (doc *Document) AddTag(tag Tag) {
	if !doc.HasTag(tag.Raw) {
		doc.Tags = append(doc.Tags, tag)
	}
}
