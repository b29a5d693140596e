package building

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ak0r/zero-theme/data/document"
)

const cacheFileName = "cache.json"

// cacheVersion is bumped whenever the page layout changes so that every
// entry is rendered again.
const cacheVersion = 2

// buildCache records per entry what its rendered page depends on besides
// its own source: the title, tags and the entries linked as neighbors.
type buildCache struct {
	Version   int                      `json:"version"`
	Documents map[string]cacheDocument `json:"documents"`
}

type cacheDocument struct {
	Title      string    `json:"title"`
	Tags       []string  `json:"tags,omitempty"`
	Date       time.Time `json:"date"`
	OutputPath string    `json:"outputPath"`
	Prev       string    `json:"prev,omitempty"`
	Next       string    `json:"next,omitempty"`
}

func (d cacheDocument) equal(o cacheDocument) bool {
	if d.Title != o.Title || d.Prev != o.Prev || d.Next != o.Next || d.OutputPath != o.OutputPath {
		return false
	}

	if !d.Date.Equal(o.Date) || len(d.Tags) != len(o.Tags) {
		return false
	}

	for i := range d.Tags {
		if d.Tags[i] != o.Tags[i] {
			return false
		}
	}

	return true
}

// stale returns the source paths of next whose recorded dependencies differ
// from c, in sorted order. All paths are stale when the versions differ.
func (c buildCache) stale(next buildCache) []string {
	var paths []string

	for p, doc := range next.Documents {
		old, ok := c.Documents[p]
		if c.Version == next.Version && ok && old.equal(doc) {
			continue
		}
		paths = append(paths, p)
	}

	sort.Strings(paths)

	return paths
}

// removed returns the output paths of entries recorded in c that are gone
// from next. Output paths still owned by an entry of next are kept.
func (c buildCache) removed(next buildCache) []string {
	owned := make(map[string]bool, len(next.Documents))
	for _, doc := range next.Documents {
		owned[doc.OutputPath] = true
	}

	var outputs []string

	for p, doc := range c.Documents {
		if _, ok := next.Documents[p]; ok || owned[doc.OutputPath] {
			continue
		}
		outputs = append(outputs, doc.OutputPath)
	}

	sort.Strings(outputs)

	return outputs
}

func readBuildCache(buildDirectory string) (buildCache, error) {
	var cache buildCache

	payloadBytes, err := os.ReadFile(filepath.Join(buildDirectory, cacheFileName))
	if err != nil {
		return cache, err
	}

	err = json.Unmarshal(payloadBytes, &cache)
	return cache, err
}

func makeBuildCache(state *buildState) buildCache {
	cache := buildCache{
		Version:   cacheVersion,
		Documents: make(map[string]cacheDocument, len(state.store.Documents)),
	}

	for _, doc := range state.store.Documents {
		cdoc := cacheDocument{
			Title:      doc.Title,
			Tags:       tagNames(doc.Tags),
			Date:       doc.Date,
			OutputPath: state.filenamer.EntryFile(doc),
		}

		prev, next := state.neighbors(doc)
		if prev != nil {
			cdoc.Prev = state.filenamer.EntryFile(prev)
		}
		if next != nil {
			cdoc.Next = state.filenamer.EntryFile(next)
		}

		cache.Documents[doc.Path] = cdoc
	}

	return cache
}

func writeBuildCache(state *buildState, cache buildCache) error {
	jsonBytes, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}

	return state.WriteFile(cacheFileName, jsonBytes)
}

func tagNames(tags []document.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.String())
	}
	return names
}
