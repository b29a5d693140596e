package data

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"golang.org/x/sync/errgroup"

	"github.com/ak0r/zero-theme/content"
	"github.com/ak0r/zero-theme/data/document"
	"github.com/ak0r/zero-theme/filesystem"
	"github.com/ak0r/zero-theme/images"
	"github.com/ak0r/zero-theme/markdown"
	"github.com/ak0r/zero-theme/markdown/docctx"
	"github.com/ak0r/zero-theme/render"
	"github.com/ak0r/zero-theme/util/slug"
)

var ErrNoSuchDocument = errors.New("no such document")

// DocumentExtensions are the file extensions of vault documents.
var DocumentExtensions = []string{".md", ".mdx"}

type StoreOptions struct {
	IncludeDrafts  bool
	HighlightStyle string
}

type Store struct {
	RootDirectory       string
	Documents           []*document.Document
	Images              *images.Index
	Failures            int // documents that could not be loaded
	tagByNormalizedName map[string]document.Tag
	tags                []document.Tag
	options             StoreOptions
	markdown            goldmark.Markdown
}

func NewStore(rootDirectory string, options StoreOptions) (*Store, error) {
	rootDirectory, err := filepath.Abs(rootDirectory)
	if err != nil {
		return nil, fmt.Errorf("content directory: %w", err)
	}

	store := &Store{
		RootDirectory:       rootDirectory,
		tagByNormalizedName: make(map[string]document.Tag),
		options:             options,
		markdown:            markdown.New(markdown.Options{HighlightStyle: options.HighlightStyle}),
	}

	store.Images, err = images.BuildIndex(rootDirectory)
	if err != nil {
		return nil, err
	}

	store.Documents, err = store.LoadDocuments()
	if err != nil {
		return nil, fmt.Errorf("load documents failed: %w", err)
	}

	if !options.IncludeDrafts {
		store.Documents = FilterDrafts(store.Documents)
	}

	for _, doc := range store.Documents {
		for _, tag := range doc.Tags {
			name := tag.Normalize()
			if _, ok := store.tagByNormalizedName[name]; !ok {
				store.tagByNormalizedName[name] = tag
				store.tags = append(store.tags, tag)
			}
		}
	}

	return store, nil
}

func (s *Store) SortDocumentsByDate() {
	s.Documents = SortByDate(s.Documents)
}

func (s *Store) SortTags() {
	sort.Slice(
		s.tags,
		func(i, j int) bool {
			return s.tags[i].Normalize() < s.tags[j].Normalize()
		},
	)
}

func (s *Store) DocumentByGUID(guid uuid.UUID) *document.Document {
	for _, doc := range s.Documents {
		if doc.GUID == guid {
			return doc
		}
	}

	return nil
}

// DocumentByVaultPath returns the document stored at the slash separated
// path p below the content root.
func (s *Store) DocumentByVaultPath(p string) (*document.Document, error) {
	p = strings.TrimPrefix(path.Clean(content.NormalizePath(p)), "/")

	for _, doc := range s.Documents {
		if doc.VaultPath == p {
			return doc, nil
		}
	}

	return nil, fmt.Errorf("'%s': %w", p, ErrNoSuchDocument)
}

func (s *Store) ReloadByGUID(guid uuid.UUID) (*document.Document, error) {
	doc := s.DocumentByGUID(guid)
	if doc == nil {
		return nil, fmt.Errorf("guid %s: %w", guid, ErrNoSuchDocument)
	}

	newDoc, err := s.LoadDocument(doc.Path)
	if err != nil {
		return nil, fmt.Errorf("new document failed: %w", err)
	}

	newDoc.GUID = doc.GUID
	for i, doc := range s.Documents {
		if newDoc.GUID == doc.GUID {
			s.Documents[i] = newDoc
		}
	}

	return newDoc, nil
}

// Collection returns the documents of collection c in store order.
func (s *Store) Collection(c content.Collection) []*document.Document {
	var result []*document.Document

	for _, doc := range s.Documents {
		if doc.Collection() == c {
			result = append(result, doc)
		}
	}

	return result
}

func (s *Store) DocumentsByTagName(name string) []*document.Document {
	return ByTag(s.Documents, name)
}

func (s *Store) TagByName(name string) (document.Tag, bool) {
	if tag, ok := s.tagByNormalizedName[document.NormalizeTagName(name)]; ok {
		return tag, true
	}

	return document.Tag{}, false
}

func (s *Store) Tags() []document.Tag {
	return s.tags
}

// Assets returns the indexed images referenced by any document, each once.
func (s *Store) Assets() []*images.Asset {
	seen := make(map[*images.Asset]bool)

	var assets []*images.Asset
	for _, doc := range s.Documents {
		for _, asset := range doc.Assets {
			if !seen[asset] {
				seen[asset] = true
				assets = append(assets, asset)
			}
		}
	}

	return assets
}

// LoadDocuments loads all documents below the content root in parallel.
// Documents that fail to load are logged and counted in Failures.
func (s *Store) LoadDocuments() ([]*document.Document, error) {
	paths, err := filesystem.GatherFiles(
		[]string{s.RootDirectory},
		DocumentExtensions,
		content.AttachmentsDirectory,
		content.ImagesDirectory,
	)
	if err != nil {
		return nil, fmt.Errorf("could not gather documents: %w", err)
	}

	loaded := make([]*document.Document, len(paths))
	failed := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			loaded[i], failed[i] = s.LoadDocument(p)
			return nil
		})
	}

	_ = g.Wait()

	var docs []*document.Document
	for i, doc := range loaded {
		if failed[i] != nil {
			log.Printf("skipping document '%s': %s", paths[i], failed[i])
			s.Failures++
			continue
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

func (s *Store) LoadDocument(filePath string) (*document.Document, error) {
	sourceText, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("could not read source file: %w", err)
	}

	rel, err := filepath.Rel(s.RootDirectory, filePath)
	if err != nil {
		return nil, fmt.Errorf("document outside content directory: %w", err)
	}
	vaultPath := filepath.ToSlash(rel)

	doc := &document.Document{
		Path:           filePath,
		VaultPath:      vaultPath,
		Classification: content.Classify(vaultPath),
	}

	result, err := markdown.Convert(s.markdown, sourceText, &docctx.Document{
		Path:           filePath,
		VaultPath:      vaultPath,
		Classification: doc.Classification,
		Images:         s.Images,
	})
	if err != nil {
		return nil, err
	}

	if err := populateFromYAMLMetaData(doc, result.FrontMatter, s.Images); err != nil {
		return nil, fmt.Errorf("could not parse YAML meta data: %w", err)
	}

	for _, tag := range result.Tags {
		doc.AddTag(document.Tag{Raw: tag})
	}

	doc.Galleries = result.Galleries

	doc.HTML, err = goquery.NewDocumentFromReader(bytes.NewReader(result.HTML))
	if err != nil {
		return nil, fmt.Errorf("could not parse HTML: %w", err)
	}

	doc.Assets = render.Render(doc, s.Images)
	if doc.Image != nil && doc.Image.Asset != nil {
		doc.Assets = appendAsset(doc.Assets, doc.Image.Asset)
	}

	doc.WordCount = CountWords(doc.HTML)
	doc.ReadingMinutes = ReadingMinutes(doc.WordCount)

	doc.Slug = documentSlug(doc, stringField(result.FrontMatter, "slug"))
	if doc.Title == "" {
		doc.Title = slug.Title(doc.Slug)
	}

	if doc.Date.IsZero() || doc.LastModified.IsZero() {
		info, err := os.Stat(filePath)
		if err != nil {
			return nil, fmt.Errorf("could not stat source file: %w", err)
		}

		if doc.Date.IsZero() {
			doc.Date = info.ModTime()
		}
		if doc.LastModified.IsZero() {
			doc.LastModified = info.ModTime()
		}
	}

	return doc, nil
}

func appendAsset(assets []*images.Asset, asset *images.Asset) []*images.Asset {
	for _, a := range assets {
		if a == asset {
			return assets
		}
	}

	return append(assets, asset)
}

// documentSlug picks the slug of doc: the frontmatter slug, else the entry
// directory of a folder-based document, else the file name.
func documentSlug(doc *document.Document, frontMatterSlug string) string {
	if s := slug.Make(frontMatterSlug); s != "" {
		return s
	}

	if entry, ok := doc.Classification.Slug.Value(); ok {
		return slug.Make(entry)
	}

	name := path.Base(doc.VaultPath)
	return slug.Make(strings.TrimSuffix(name, path.Ext(name)))
}

// GetHtmlFragment returns the rendered body of doc.
func (s *Store) GetHtmlFragment(doc *document.Document) (string, error) {
	if doc.HTML == nil {
		return "", fmt.Errorf("'%s' has no HTML", doc.VaultPath)
	}

	return doc.HTML.Find("body").Html()
}
