package data

import (
	"sort"
	"strings"

	"github.com/ak0r/zero-theme/data/document"
)

// FilterDrafts returns the documents that are not drafts.
func FilterDrafts(docs []*document.Document) []*document.Document {
	var result []*document.Document

	for _, doc := range docs {
		if !doc.Draft {
			result = append(result, doc)
		}
	}

	return result
}

// SortByDate returns a copy of docs ordered newest first. Documents of equal
// date keep their order.
func SortByDate(docs []*document.Document) []*document.Document {
	sorted := append([]*document.Document(nil), docs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	return sorted
}

// SortByOrder returns a copy of docs ordered by ascending order field.
func SortByOrder(docs []*document.Document) []*document.Document {
	sorted := append([]*document.Document(nil), docs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	return sorted
}

type YearGroup struct {
	Year      int
	Documents []*document.Document
}

// GroupByYear groups docs by year, newest year first and newest document
// first within each year.
func GroupByYear(docs []*document.Document) []YearGroup {
	byYear := make(map[int][]*document.Document)
	for _, doc := range docs {
		byYear[doc.Date.Year()] = append(byYear[doc.Date.Year()], doc)
	}

	groups := make([]YearGroup, 0, len(byYear))
	for year, yearDocs := range byYear {
		groups = append(groups, YearGroup{Year: year, Documents: SortByDate(yearDocs)})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Year > groups[j].Year
	})

	return groups
}

// UniqueTags returns the tags of docs, each normalized name once, ordered
// by name.
func UniqueTags(docs []*document.Document) []document.Tag {
	seen := make(map[string]bool)

	var tags []document.Tag
	for _, doc := range docs {
		for _, tag := range doc.Tags {
			if name := tag.Normalize(); !seen[name] {
				seen[name] = true
				tags = append(tags, tag)
			}
		}
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Normalize() < tags[j].Normalize()
	})

	return tags
}

type TagCount struct {
	Tag   document.Tag
	Count int
}

// TagCounts counts the documents per tag, ordered by tag name.
func TagCounts(docs []*document.Document) []TagCount {
	counts := make(map[string]int)
	for _, doc := range docs {
		for _, tag := range doc.Tags {
			counts[tag.Normalize()]++
		}
	}

	var result []TagCount
	for _, tag := range UniqueTags(docs) {
		result = append(result, TagCount{Tag: tag, Count: counts[tag.Normalize()]})
	}

	return result
}

// ByTag returns the documents carrying tag.
func ByTag(docs []*document.Document, tag string) []*document.Document {
	var result []*document.Document

	for _, doc := range docs {
		if doc.HasTag(tag) {
			result = append(result, doc)
		}
	}

	return result
}

// Featured returns the featured documents.
func Featured(docs []*document.Document) []*document.Document {
	var result []*document.Document

	for _, doc := range docs {
		if doc.Featured {
			result = append(result, doc)
		}
	}

	return result
}

func indexOf(docs []*document.Document, doc *document.Document) int {
	for i, d := range docs {
		if d == doc {
			return i
		}
	}

	return -1
}

// Adjacent returns the neighbors of doc in docs. Both are nil when doc is
// not part of docs.
func Adjacent(docs []*document.Document, doc *document.Document) (prev, next *document.Document) {
	i := indexOf(docs, doc)
	if i < 0 {
		return nil, nil
	}

	if i > 0 {
		prev = docs[i-1]
	}
	if i+1 < len(docs) {
		next = docs[i+1]
	}

	return prev, next
}

// SeriesEntries returns the documents of series name ordered by series
// order.
func SeriesEntries(docs []*document.Document, name string) []*document.Document {
	var entries []*document.Document
	for _, doc := range docs {
		if doc.Series == name {
			entries = append(entries, doc)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SeriesOrder < entries[j].SeriesOrder
	})

	return entries
}

// AdjacentInSeries returns the neighbors of doc within its series.
func AdjacentInSeries(docs []*document.Document, doc *document.Document) (prev, next *document.Document) {
	if !doc.InSeries() {
		return nil, nil
	}

	return Adjacent(SeriesEntries(docs, doc.Series), doc)
}

type Series struct {
	Name      string
	Documents []*document.Document
}

// AllSeries returns the series with at least two documents, ordered by
// name.
func AllSeries(docs []*document.Document) []Series {
	seen := make(map[string]bool)

	var names []string
	for _, doc := range docs {
		if doc.InSeries() && !seen[doc.Series] {
			seen[doc.Series] = true
			names = append(names, doc.Series)
		}
	}
	sort.Strings(names)

	var result []Series
	for _, name := range names {
		if entries := SeriesEntries(docs, name); len(entries) >= 2 {
			result = append(result, Series{Name: name, Documents: entries})
		}
	}

	return result
}

// LatestSeries returns the series containing the most recent document.
func LatestSeries(docs []*document.Document) (Series, bool) {
	var (
		latest Series
		found  bool
	)

	for _, series := range AllSeries(docs) {
		newest := SortByDate(series.Documents)[0]
		if !found || newest.Date.After(SortByDate(latest.Documents)[0].Date) {
			latest = series
			found = true
		}
	}

	return latest, found
}

// Related returns up to limit documents sharing tags with doc, most shared
// tags first and newer documents first on ties.
func Related(docs []*document.Document, doc *document.Document, limit int) []*document.Document {
	if len(doc.Tags) == 0 || limit <= 0 {
		return nil
	}

	type scored struct {
		doc   *document.Document
		score int
	}

	var candidates []scored
	for _, other := range docs {
		if other == doc {
			continue
		}

		score := 0
		for _, tag := range other.Tags {
			if doc.HasTag(tag.Raw) {
				score++
			}
		}

		if score > 0 {
			candidates = append(candidates, scored{doc: other, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].doc.Date.After(candidates[j].doc.Date)
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	result := make([]*document.Document, len(candidates))
	for i, c := range candidates {
		result[i] = c.doc
	}

	return result
}

// Search returns the documents whose title or description contain query,
// ignoring case.
func Search(docs []*document.Document, query string) []*document.Document {
	query = strings.ToLower(query)

	var result []*document.Document
	for _, doc := range docs {
		if strings.Contains(strings.ToLower(doc.Title), query) ||
			strings.Contains(strings.ToLower(doc.Description), query) {
			result = append(result, doc)
		}
	}

	return result
}

// Page is one page of a paginated document list. Page numbers start at 1.
type Page struct {
	Documents    []*document.Document
	CurrentPage  int
	TotalPages   int
	TotalEntries int
	HasNext      bool
	HasPrev      bool
}

// Paginate returns page number page of docs. Out of range page numbers are
// clamped; an empty list yields an empty first page.
func Paginate(docs []*document.Document, page int, perPage int) Page {
	if perPage < 1 {
		perPage = 1
	}

	total := len(docs)
	totalPages := (total + perPage - 1) / perPage

	current := page
	if current > totalPages {
		current = totalPages
	}
	if current < 1 {
		current = 1
	}

	start := (current - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Documents:    docs[start:end],
		CurrentPage:  current,
		TotalPages:   totalPages,
		TotalEntries: total,
		HasNext:      current < totalPages,
		HasPrev:      current > 1,
	}
}

// PrevPage and NextPage are the neighboring page numbers.
func (p Page) PrevPage() int { return p.CurrentPage - 1 }
func (p Page) NextPage() int { return p.CurrentPage + 1 }
