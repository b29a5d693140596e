package building

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ak0r/zero-theme/content"
	"github.com/ak0r/zero-theme/data"
	"github.com/ak0r/zero-theme/data/document"
	"github.com/ak0r/zero-theme/filesystem"
	"github.com/ak0r/zero-theme/images"
	"github.com/ak0r/zero-theme/markdown/obsidian"
	"github.com/ak0r/zero-theme/render"
	"github.com/ak0r/zero-theme/res"
)

// ResourceDirectory is the output directory of the embedded static files.
const ResourceDirectory = "res"

// RelatedLimit is the number of related entries shown below an entry.
const RelatedLimit = 3

type Filenamer struct {
}

func (f Filenamer) EntryURL(doc *document.Document) string {
	return doc.URL()
}

func (f Filenamer) EntryFile(doc *document.Document) string {
	return filepath.FromSlash(doc.OutputPath())
}

func (f Filenamer) TagURL(tag document.Tag) string {
	return obsidian.TagBase + tag.Slug() + "/"
}

func (f Filenamer) TagFile(tag document.Tag) string {
	return filepath.Join("tags", tag.Slug(), "index.html")
}

func (f Filenamer) ListURL(page int) string {
	if page <= 1 {
		return "/"
	}

	return fmt.Sprintf("/page/%d/", page)
}

func (f Filenamer) ListFile(page int) string {
	if page <= 1 {
		return "index.html"
	}

	return filepath.Join("page", fmt.Sprint(page), "index.html")
}

func (f Filenamer) CollectionFile(c content.Collection) string {
	return filepath.Join(string(c), "index.html")
}

// Site describes the site as a whole for the templates.
type Site struct {
	Title       string
	Description string
	URL         string
	Author      string
	Language    string
}

type Options struct {
	Clean            bool
	ContentDirectory string
	BuildDirectory   string
	IncludeDrafts    bool
	Site             Site
	PostsPerPage     int
	MaxImageWidth    int
	WebP             bool
}

// Result summarizes a build.
type Result struct {
	Rendered int
	Failed   int
	Assets   int

	// Store is the document store the build was rendered from.
	Store *data.Store
}

func Build(opts Options) (*Result, error) {
	if opts.Clean {
		if err := os.RemoveAll(opts.BuildDirectory); err != nil {
			return nil, fmt.Errorf("could not clean build directory: %w", err)
		}
	}

	if err := filesystem.CreateDirectoryIfNotExists(opts.BuildDirectory); err != nil {
		return nil, fmt.Errorf("could not ensure build directory: %w", err)
	}

	templates, err := render.ReadTemplates(Filenamer{}, opts.Site.Language)
	if err != nil {
		return nil, err
	}

	store, err := data.NewDefaultStore(opts.ContentDirectory, opts.IncludeDrafts)
	if err != nil {
		return nil, err
	}

	state := &buildState{
		Options:   opts,
		templates: templates,
		store:     store,
		filenamer: Filenamer{},
	}
	state.Initialize()

	result := &Result{Failed: store.Failures, Store: store}

	changedDocuments, err := collectPrimaryChangeDocuments(state)
	if err != nil {
		return nil, err
	}

	// Entries whose neighbors changed link to stale pages even when their
	// own source is unchanged.
	currentCache, err := readBuildCache(state.BuildDirectory)
	if err != nil {
		log.Printf("could not read cache: %v\n", err)
	}

	nextCache := makeBuildCache(state)

	log.Printf("curr cache has %d entries\n", len(currentCache.Documents))
	log.Printf("next cache has %d entries\n", len(nextCache.Documents))

	for _, p := range currentCache.stale(nextCache) {
		if doc, ok := state.documentByPath(p); ok {
			changedDocuments.Add(doc)
		}
	}

	removed := currentCache.removed(nextCache)
	for _, outputPath := range removed {
		dir := filepath.Dir(outputPath)
		if dir == "." {
			continue
		}
		if err := os.RemoveAll(filepath.Join(state.BuildDirectory, dir)); err != nil {
			return nil, fmt.Errorf("could not remove '%s': %w", outputPath, err)
		}
		log.Printf("removed entry '%s'", outputPath)
	}

	if changedDocuments.Len() > 0 || len(removed) > 0 {
		rendered, failed := processEntryFiles(state, changedDocuments)
		result.Rendered = rendered
		result.Failed += failed

		if err := writeListFiles(state); err != nil {
			return nil, err
		}

		if err := writeCollectionFiles(state); err != nil {
			return nil, err
		}

		if err := writeArchiveFile(state); err != nil {
			return nil, err
		}

		if err := writeTagFiles(state); err != nil {
			return nil, err
		}

		if err := writeTagsIndexFile(state); err != nil {
			return nil, err
		}
	} else {
		fmt.Println("no entries changed")
	}

	if result.Assets, err = writeAssets(state); err != nil {
		return nil, err
	}

	if state.WebP {
		if err := writeWebPManifest(state); err != nil {
			return nil, err
		}
	}

	if _, err := filesystem.SyncAttachments(state.ContentDirectory, state.BuildDirectory); err != nil {
		return nil, fmt.Errorf("attachment sync failed: %w", err)
	}

	if _, err := filesystem.InstallEmbedFS(res.Static, "static", filepath.Join(state.BuildDirectory, ResourceDirectory)); err != nil {
		return nil, fmt.Errorf("installation of static files failed: %w", err)
	}

	if err := writeBuildCache(state, nextCache); err != nil {
		return nil, fmt.Errorf("write build cache: %w", err)
	}

	log.Println("done")

	return result, nil
}

type buildState struct {
	Options
	templates   *template.Template
	store       *data.Store
	filenamer   Filenamer
	listings    map[content.Collection][]*document.Document
	indexByPath map[string]*document.Document
}

func (state *buildState) Initialize() {
	state.listings = make(map[content.Collection][]*document.Document)
	state.indexByPath = make(map[string]*document.Document)

	for _, c := range content.Collections {
		docs := state.store.Collection(c)
		if c == content.Docs {
			docs = data.SortByOrder(docs)
		}
		state.listings[c] = docs
	}

	for _, d := range state.store.Documents {
		state.indexByPath[d.Path] = d
	}
}

func (state *buildState) documentByPath(p string) (*document.Document, bool) {
	d, ok := state.indexByPath[p]
	return d, ok
}

// neighbors returns the entries linked as previous and next from doc:
// its series neighbors, else its neighbors in the collection listing.
func (state *buildState) neighbors(doc *document.Document) (prev, next *document.Document) {
	listing := state.listings[doc.Collection()]
	if doc.InSeries() {
		return data.AdjacentInSeries(listing, doc)
	}

	return data.Adjacent(listing, doc)
}

// WriteFile writes a file at the given path interpreted relative to the build directory.
func (state *buildState) WriteFile(path string, content []byte) error {
	if filepath.IsAbs(path) {
		return fmt.Errorf("absolute path")
	}

	p := filepath.Join(state.BuildDirectory, path)
	if err := filesystem.CreateDirectoryIfNotExists(filepath.Dir(p)); err != nil {
		return err
	}

	return os.WriteFile(p, content, 0o666)
}

func (state *buildState) execute(name string, fileName string, payload map[string]interface{}) error {
	payload["Site"] = state.Site

	var buf bytes.Buffer
	if err := state.templates.ExecuteTemplate(&buf, name, payload); err != nil {
		return fmt.Errorf("could not execute template '%s': %w", name, err)
	}

	if err := state.WriteFile(fileName, buf.Bytes()); err != nil {
		return fmt.Errorf("could not write '%s': %w", fileName, err)
	}

	return nil
}

// sourceModifiedTime is the latest modification below the entry directory
// of folder-based documents and the file time otherwise.
func sourceModifiedTime(doc *document.Document) (mod time.Time, err error) {
	if doc.Classification.IsFolderBased {
		return filesystem.FullSubtreeModifiedDate(filepath.Dir(doc.Path))
	}

	return filesystem.FileModifiedTime(doc.Path)
}

func collectPrimaryChangeDocuments(state *buildState) (DocumentSet, error) {
	s := NewDocumentSet()

	for _, doc := range state.store.Documents {
		performUpdate := true

		if !state.Clean {
			documentModTime, err := sourceModifiedTime(doc)
			if err != nil {
				return nil, err
			}

			entryFile := filepath.Join(state.BuildDirectory, state.filenamer.EntryFile(doc))
			resultModTime, err := filesystem.FileModifiedTime(entryFile)
			if err != nil {
				if !errors.Is(err, os.ErrNotExist) {
					return nil, err
				}
			} else {
				performUpdate = resultModTime.Before(documentModTime)
			}
		}

		if !performUpdate {
			continue
		}

		s.Add(doc)
	}

	return s, nil
}

func writeListFiles(state *buildState) error {
	posts := state.listings[content.Posts]
	perPage := state.PostsPerPage
	if perPage <= 0 {
		perPage = 10
	}

	first := data.Paginate(posts, 1, perPage)
	for n := 1; n <= first.TotalPages || n == 1; n++ {
		page := data.Paginate(posts, n, perPage)

		err := state.execute("index.html", state.filenamer.ListFile(n), map[string]interface{}{
			"Page":     page,
			"Featured": data.Featured(posts),
			"Series":   latestSeriesPayload(posts),
		})
		if err != nil {
			return err
		}
	}

	log.Printf("written %d list pages", max(first.TotalPages, 1))

	return nil
}

func latestSeriesPayload(docs []*document.Document) *data.Series {
	if series, ok := data.LatestSeries(docs); ok {
		return &series
	}

	return nil
}

func writeCollectionFiles(state *buildState) error {
	for _, c := range content.Collections {
		if c == content.Pages {
			continue
		}

		docs := state.listings[c]
		if len(docs) == 0 {
			continue
		}

		err := state.execute("collection.html", state.filenamer.CollectionFile(c), map[string]interface{}{
			"Collection": c,
			"Documents":  docs,
			"Series":     data.AllSeries(docs),
		})
		if err != nil {
			return err
		}

		log.Printf("written collection file '%s'", c)
	}

	return nil
}

func writeArchiveFile(state *buildState) error {
	type archiveYear struct {
		Year   int
		Months []render.MonthGroup
	}

	var years []archiveYear
	for _, group := range data.GroupByYear(state.listings[content.Posts]) {
		years = append(years, archiveYear{
			Year:   group.Year,
			Months: render.GroupByMonth(group.Documents),
		})
	}

	return state.execute("archive.html", filepath.Join("archive", "index.html"), map[string]interface{}{
		"Years": years,
	})
}

func writeTagsIndexFile(state *buildState) error {
	return state.execute("tags.html", filepath.Join("tags", "index.html"), map[string]interface{}{
		"Tags": data.TagCounts(state.store.Documents),
	})
}

func writeTagFiles(state *buildState) error {
	store := state.store

	for _, tag := range store.Tags() {
		fileName := state.filenamer.TagFile(tag)

		err := state.execute("tag.html", fileName, map[string]interface{}{
			"Tag":       tag,
			"Documents": store.DocumentsByTagName(tag.Raw),
		})
		if err != nil {
			return err
		}

		log.Printf("written tag file '%s'", fileName)
	}

	return nil
}

func processEntryFiles(state *buildState, ds DocumentSet) (int, int) {
	var rendered, failed atomic.Int32

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for _, doc := range ds.Documents() {
		doc := doc
		g.Go(func() error {
			if err := writeEntryFile(state, doc); err != nil {
				log.Printf("could not render '%s': %s", doc.VaultPath, err)
				failed.Add(1)
				return nil
			}

			rendered.Add(1)
			return nil
		})
	}

	_ = g.Wait()

	return int(rendered.Load()), int(failed.Load())
}

func writeEntryFile(state *buildState, doc *document.Document) error {
	fragment, err := state.store.GetHtmlFragment(doc)
	if err != nil {
		return fmt.Errorf("failed to build document: %w", err)
	}

	prev, next := state.neighbors(doc)

	var series []*document.Document
	if doc.InSeries() {
		series = data.SeriesEntries(state.listings[doc.Collection()], doc.Series)
	}

	fileName := state.filenamer.EntryFile(doc)

	err = state.execute("entry.html", fileName, map[string]interface{}{
		"Document":     doc,
		"DocumentPrev": prev,
		"DocumentNext": next,
		"Series":       series,
		"Related":      data.Related(state.store.Documents, doc, RelatedLimit),
		"Fragment":     template.HTML(fragment),
	})
	if err != nil {
		return err
	}

	log.Printf("rendered entry '%s'", fileName)

	return nil
}

// writeAssets writes the derivatives of all referenced images below the
// build directory, mirroring their vault paths. Fresh derivatives are kept.
func writeAssets(state *buildState) (int, error) {
	var written atomic.Int32

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for _, asset := range state.store.Assets() {
		asset := asset
		g.Go(func() error {
			dst := filepath.Join(state.BuildDirectory, filepath.FromSlash(asset.VaultPath))
			if !images.IsStale(asset.FilePath, dst) {
				return nil
			}

			if err := images.Optimize(asset.FilePath, dst, state.MaxImageWidth); err != nil {
				return fmt.Errorf("image '%s': %w", asset.VaultPath, err)
			}

			written.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	log.Printf("written %d images", written.Load())

	return int(written.Load()), nil
}

// WebPManifestFile lists the WebP conversions an external converter is
// expected to perform.
const WebPManifestFile = "webp.json"

type webPConversion struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

func writeWebPManifest(state *buildState) error {
	var conversions []webPConversion

	for _, asset := range state.store.Assets() {
		target := images.WebPPath(asset.URL())
		if target == asset.URL() {
			continue
		}

		conversions = append(conversions, webPConversion{Source: asset.URL(), Target: target})
	}

	jsonBytes, err := json.MarshalIndent(conversions, "", "  ")
	if err != nil {
		return err
	}

	return state.WriteFile(WebPManifestFile, jsonBytes)
}
